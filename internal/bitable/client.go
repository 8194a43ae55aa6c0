package bitable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/sunxiaojia123/feishu-duowei-crud/internal/config"
	"github.com/sunxiaojia123/feishu-duowei-crud/internal/record"

	"github.com/rs/zerolog/log"
)

// Client implements the API interface against the Feishu open platform.
// It obtains and refreshes the tenant access token itself; the token cache
// and the call counter are mutex-guarded, so one Client is safe for
// concurrent use.
type Client struct {
	appID     string
	appSecret string
	baseURL   string
	client    *http.Client

	tokenMutex  sync.Mutex
	tenantToken string
	tokenExpiry time.Time

	apiCallCount int64
	apiCallMutex sync.Mutex
}

func NewClient(appID, appSecret string) *Client {
	return &Client{
		appID:     appID,
		appSecret: appSecret,
		baseURL:   config.BaseURL,
		client: &http.Client{
			Timeout: config.HTTPTimeout,
		},
	}
}

// IncrementAPICall safely increments the API call counter
func (c *Client) IncrementAPICall() {
	c.apiCallMutex.Lock()
	c.apiCallCount++
	c.apiCallMutex.Unlock()
}

// GetAPICallCount returns the current API call count
func (c *Client) GetAPICallCount() int64 {
	c.apiCallMutex.Lock()
	defer c.apiCallMutex.Unlock()
	return c.apiCallCount
}

// ResetAPICallCount resets the API call counter to zero
func (c *Client) ResetAPICallCount() {
	c.apiCallMutex.Lock()
	c.apiCallCount = 0
	c.apiCallMutex.Unlock()
}

// tenantAccessToken returns a cached tenant access token, fetching a fresh
// one when the cache is empty or within the expiry margin.
func (c *Client) tenantAccessToken(ctx context.Context) (string, error) {
	c.tokenMutex.Lock()
	defer c.tokenMutex.Unlock()

	if c.tenantToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.tenantToken, nil
	}

	payload, err := json.Marshal(map[string]string{
		"app_id":     c.appID,
		"app_secret": c.appSecret,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode token request: %w", err)
	}

	tokenURL := c.baseURL + "/auth/v3/tenant_access_token/internal"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := c.client.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("url", tokenURL).Msg("Token request failed")
		return "", fmt.Errorf("failed to fetch tenant access token: %w", err)
	}
	c.IncrementAPICall()
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var tokenResp struct {
		Code              int    `json:"code"`
		Msg               string `json:"msg"`
		TenantAccessToken string `json:"tenant_access_token"`
		Expire            int64  `json:"expire"`
	}
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if tokenResp.Code != 0 {
		return "", fmt.Errorf("token request failed with code %d: %s", tokenResp.Code, tokenResp.Msg)
	}

	c.tenantToken = tokenResp.TenantAccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(tokenResp.Expire)*time.Second - config.TokenExpiryMargin)

	log.Debug().
		Int64("expire_seconds", tokenResp.Expire).
		Msg("Refreshed tenant access token")

	return c.tenantToken, nil
}

// doRequest executes one authenticated round trip and decodes the platform
// envelope. HTTP-level failures return plain errors; a non-zero envelope code
// is returned to the caller inside the Response.
func (c *Client) doRequest(ctx context.Context, method, requestURL string, payload interface{}) (*Response, error) {
	token, err := c.tenantAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		log.Debug().
			Err(err).
			Str("url", requestURL).
			Msg("API request failed")
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	c.IncrementAPICall()
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	var envelope Response
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	envelope.LogID = resp.Header.Get("X-Tt-Logid")

	log.Debug().
		Str("method", method).
		Str("url", requestURL).
		Int("code", envelope.Code).
		Str("log_id", envelope.LogID).
		Msg("Completed Bitable round trip")

	return &envelope, nil
}

func (c *Client) recordsURL(appToken, tableID string) string {
	return fmt.Sprintf("%s/bitable/v1/apps/%s/tables/%s/records",
		c.baseURL, url.PathEscape(appToken), url.PathEscape(tableID))
}

// ListRecords fetches one page of records matching the request filter
func (c *Client) ListRecords(ctx context.Context, req ListRecordsRequest) (*Response, error) {
	params := url.Values{}
	if req.Filter != "" {
		params.Set("filter", req.Filter)
	}
	if req.PageSize > 0 {
		params.Set("page_size", strconv.Itoa(req.PageSize))
	}
	if req.PageToken != "" {
		params.Set("page_token", req.PageToken)
	}

	listURL := c.recordsURL(req.AppToken, req.TableID)
	if encoded := params.Encode(); encoded != "" {
		listURL += "?" + encoded
	}

	return c.doRequest(ctx, http.MethodGet, listURL, nil)
}

// BatchCreateRecords creates all records in one batched call
func (c *Client) BatchCreateRecords(ctx context.Context, req BatchCreateRequest) (*Response, error) {
	return c.doRequest(ctx, http.MethodPost,
		c.recordsURL(req.AppToken, req.TableID)+"/batch_create",
		struct {
			Records []record.WireRecord `json:"records"`
		}{Records: req.Records})
}

// BatchUpdateRecords updates all records in one batched call, keyed by record id
func (c *Client) BatchUpdateRecords(ctx context.Context, req BatchUpdateRequest) (*Response, error) {
	return c.doRequest(ctx, http.MethodPost,
		c.recordsURL(req.AppToken, req.TableID)+"/batch_update",
		struct {
			Records []record.WireRecord `json:"records"`
		}{Records: req.Records})
}

// BatchDeleteRecords deletes the listed record ids in one batched call
func (c *Client) BatchDeleteRecords(ctx context.Context, req BatchDeleteRequest) (*Response, error) {
	return c.doRequest(ctx, http.MethodPost,
		c.recordsURL(req.AppToken, req.TableID)+"/batch_delete",
		struct {
			Records []string `json:"records"`
		}{Records: req.RecordIDs})
}
