package table

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sunxiaojia123/feishu-duowei-crud/internal/app"
	"github.com/sunxiaojia123/feishu-duowei-crud/internal/bitable"
	"github.com/sunxiaojia123/feishu-duowei-crud/internal/config"
	"github.com/sunxiaojia123/feishu-duowei-crud/internal/record"

	"github.com/rs/zerolog/log"
)

// Client performs CRUD operations on one Bitable table. All state is set at
// construction and never mutated, so a Client is safe for concurrent use to
// the extent its transport is.
type Client struct {
	appToken string
	tableID  string
	api      bitable.API
}

// NewClient builds a client with its own HTTP transport
func NewClient(cfg *app.Config) *Client {
	return NewClientWithAPI(cfg.AppToken, cfg.TableID, bitable.NewClient(cfg.AppID, cfg.AppSecret))
}

// NewClientWithAPI builds a client over an injected transport
func NewClientWithAPI(appToken, tableID string, api bitable.API) *Client {
	return &Client{
		appToken: appToken,
		tableID:  tableID,
		api:      api,
	}
}

// buildFilter renders the server-side filter expression. A display value is
// normalized and sent as its human label, since the remote store only
// understands labels. Other values are substituted verbatim; callers must
// supply pre-sanitized values.
func buildFilter(key, value string) (string, error) {
	if key == "display" {
		state, err := record.NormalizeDisplay(value)
		if err != nil {
			return "", err
		}
		value = state.Label()
	}
	return fmt.Sprintf(`CurrentValue.[%s] = "%s"`, key, value), nil
}

// QueryRecords returns every record matching key = value, following the
// continuation token through pages of up to 500 records. Records come back in
// server order. Any non-success page aborts the whole query; nothing partial
// is returned.
func (c *Client) QueryRecords(ctx context.Context, key, value string) ([]record.Record, error) {
	filter, err := buildFilter(key, value)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("filter", filter).
		Msg("Querying records")

	var records []record.Record
	pageToken := ""
	pages := 0

	for {
		resp, err := c.api.ListRecords(ctx, bitable.ListRecordsRequest{
			AppToken:  c.appToken,
			TableID:   c.tableID,
			Filter:    filter,
			PageSize:  config.QueryPageSize,
			PageToken: pageToken,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list records for %s=%s: %w", key, value, err)
		}
		if !resp.Success() {
			log.Error().
				Int("code", resp.Code).
				Str("msg", resp.Msg).
				Str("log_id", resp.LogID).
				Msg("List records failed")
			return nil, newRemoteError("list", resp, nil)
		}

		var data bitable.ListData
		if err := json.Unmarshal(resp.Data, &data); err != nil {
			return nil, fmt.Errorf("failed to decode list payload: %w", err)
		}

		for _, item := range data.Items {
			rec, err := record.FromWireRecord(item)
			if err != nil {
				return nil, fmt.Errorf("failed to decode record %s: %w", item.RecordID, err)
			}
			records = append(records, rec)
		}

		pages++
		pageToken = data.PageToken
		if pageToken == "" {
			break
		}
	}

	log.Debug().
		Int("records", len(records)).
		Int("pages", pages).
		Msg("Completed record query")

	return records, nil
}

// AddRecords creates all field sets as new records in one batched call and
// returns the raw response payload. The batch either succeeds or fails as a
// whole; there is no partial-success handling at this layer.
func (c *Client) AddRecords(ctx context.Context, fields []record.FieldSet) (json.RawMessage, error) {
	wire := make([]record.WireRecord, 0, len(fields))
	for _, f := range fields {
		wire = append(wire, record.WireRecord{Fields: record.WireFields(f)})
	}

	resp, err := c.api.BatchCreateRecords(ctx, bitable.BatchCreateRequest{
		AppToken: c.appToken,
		TableID:  c.tableID,
		Records:  wire,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create records: %w", err)
	}
	if !resp.Success() {
		log.Error().
			Int("code", resp.Code).
			Str("msg", resp.Msg).
			Str("log_id", resp.LogID).
			Msg("Batch create failed")
		return nil, newRemoteError("batch_create", resp, wire)
	}

	log.Info().
		Int("records", len(wire)).
		Msg("Created records")

	return resp.Data, nil
}

// UpdateRecords rewrites the fields of existing records in one batched call
// keyed by record id. Every record must carry a non-empty RecordID; a missing
// one fails with ValidationError before any network call.
func (c *Client) UpdateRecords(ctx context.Context, records []record.Record) (json.RawMessage, error) {
	if err := requireRecordIDs(records); err != nil {
		return nil, err
	}

	wire := make([]record.WireRecord, 0, len(records))
	for _, r := range records {
		wire = append(wire, record.WireRecord{
			Fields:   record.WireFields(r.Fields),
			RecordID: r.RecordID,
		})
	}

	resp, err := c.api.BatchUpdateRecords(ctx, bitable.BatchUpdateRequest{
		AppToken: c.appToken,
		TableID:  c.tableID,
		Records:  wire,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update records: %w", err)
	}
	if !resp.Success() {
		log.Error().
			Int("code", resp.Code).
			Str("msg", resp.Msg).
			Str("log_id", resp.LogID).
			Msg("Batch update failed")
		return nil, newRemoteError("batch_update", resp, wire)
	}

	log.Info().
		Int("records", len(wire)).
		Msg("Updated records")

	return resp.Data, nil
}

// DeleteRecords removes the records in one batched call. Same RecordID
// precondition as UpdateRecords.
func (c *Client) DeleteRecords(ctx context.Context, records []record.Record) (json.RawMessage, error) {
	if err := requireRecordIDs(records); err != nil {
		return nil, err
	}

	recordIDs := make([]string, 0, len(records))
	for _, r := range records {
		recordIDs = append(recordIDs, r.RecordID)
	}

	resp, err := c.api.BatchDeleteRecords(ctx, bitable.BatchDeleteRequest{
		AppToken:  c.appToken,
		TableID:   c.tableID,
		RecordIDs: recordIDs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete records: %w", err)
	}
	if !resp.Success() {
		log.Error().
			Int("code", resp.Code).
			Str("msg", resp.Msg).
			Str("log_id", resp.LogID).
			Msg("Batch delete failed")
		return nil, newRemoteError("batch_delete", resp, recordIDs)
	}

	log.Info().
		Int("records", len(recordIDs)).
		Msg("Deleted records")

	return resp.Data, nil
}

func requireRecordIDs(records []record.Record) error {
	for i, r := range records {
		if r.RecordID == "" {
			return &record.ValidationError{
				Field:  "record_id",
				Reason: fmt.Sprintf("record %d has no record_id; only records returned by the server can be mutated", i),
			}
		}
	}
	return nil
}
