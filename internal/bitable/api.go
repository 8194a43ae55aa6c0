package bitable

import (
	"context"
	"encoding/json"

	"github.com/sunxiaojia123/feishu-duowei-crud/internal/record"
)

// API defines the interface for the Bitable record endpoints.
// This separates infrastructure concerns from business logic: the table
// client speaks to this capability and never touches HTTP directly.
//
// Implementations must be safe for concurrent use, or callers must serialize
// access; the table client adds no locking of its own.
type API interface {
	// ListRecords fetches one page of records matching the request filter
	ListRecords(ctx context.Context, req ListRecordsRequest) (*Response, error)

	// BatchCreateRecords creates all records in one batched call
	BatchCreateRecords(ctx context.Context, req BatchCreateRequest) (*Response, error)

	// BatchUpdateRecords updates all records in one batched call, keyed by record id
	BatchUpdateRecords(ctx context.Context, req BatchUpdateRequest) (*Response, error)

	// BatchDeleteRecords deletes the listed record ids in one batched call
	BatchDeleteRecords(ctx context.Context, req BatchDeleteRequest) (*Response, error)
}

// ListRecordsRequest asks for one page of filtered records
type ListRecordsRequest struct {
	AppToken  string
	TableID   string
	Filter    string
	PageSize  int
	PageToken string
}

// BatchCreateRequest creates records that do not yet exist on the server
type BatchCreateRequest struct {
	AppToken string
	TableID  string
	Records  []record.WireRecord
}

// BatchUpdateRequest rewrites the fields of existing records; every wire
// record must carry its record_id
type BatchUpdateRequest struct {
	AppToken string
	TableID  string
	Records  []record.WireRecord
}

// BatchDeleteRequest removes the listed record ids
type BatchDeleteRequest struct {
	AppToken  string
	TableID   string
	RecordIDs []string
}

// Response is the open platform envelope every round trip returns: code 0
// means success, anything else is an application-level failure described by
// Msg. LogID comes from the X-Tt-Logid response header and identifies the
// request in the platform's logs.
type Response struct {
	Code  int             `json:"code"`
	Msg   string          `json:"msg"`
	Data  json.RawMessage `json:"data"`
	LogID string          `json:"-"`
}

// Success reports whether the round trip succeeded at the application level
func (r *Response) Success() bool {
	return r.Code == 0
}

// ListData is the payload of a successful ListRecords response
type ListData struct {
	HasMore   bool                `json:"has_more"`
	PageToken string              `json:"page_token"`
	Total     int                 `json:"total"`
	Items     []record.WireRecord `json:"items"`
}
