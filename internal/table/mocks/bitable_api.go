package mocks

import (
	"context"
	"encoding/json"

	"github.com/sunxiaojia123/feishu-duowei-crud/internal/bitable"
)

// MockBitableAPI is a test double for the bitable transport
type MockBitableAPI struct {
	// Responses to return. ListRecordsResponses is consumed one per call so
	// tests can drive multi-page queries; when exhausted an empty success
	// page is returned.
	ListRecordsResponses []*bitable.Response
	BatchCreateResponse  *bitable.Response
	BatchUpdateResponse  *bitable.Response
	BatchDeleteResponse  *bitable.Response

	// Errors to return
	ListRecordsError error
	BatchCreateError error
	BatchUpdateError error
	BatchDeleteError error

	// Call tracking
	ListRecordsCalls int
	BatchCreateCalls int
	BatchUpdateCalls int
	BatchDeleteCalls int

	// Call parameters tracking
	ListRecordsRequests []bitable.ListRecordsRequest
	BatchCreateRequests []bitable.BatchCreateRequest
	BatchUpdateRequests []bitable.BatchUpdateRequest
	BatchDeleteRequests []bitable.BatchDeleteRequest
}

func (m *MockBitableAPI) ListRecords(ctx context.Context, req bitable.ListRecordsRequest) (*bitable.Response, error) {
	m.ListRecordsCalls++
	m.ListRecordsRequests = append(m.ListRecordsRequests, req)

	if m.ListRecordsError != nil {
		return nil, m.ListRecordsError
	}
	if idx := m.ListRecordsCalls - 1; idx < len(m.ListRecordsResponses) {
		return m.ListRecordsResponses[idx], nil
	}
	return &bitable.Response{Data: json.RawMessage(`{"has_more":false,"total":0,"items":[]}`)}, nil
}

func (m *MockBitableAPI) BatchCreateRecords(ctx context.Context, req bitable.BatchCreateRequest) (*bitable.Response, error) {
	m.BatchCreateCalls++
	m.BatchCreateRequests = append(m.BatchCreateRequests, req)

	if m.BatchCreateError != nil {
		return nil, m.BatchCreateError
	}
	if m.BatchCreateResponse != nil {
		return m.BatchCreateResponse, nil
	}
	return &bitable.Response{Data: json.RawMessage(`{"records":[]}`)}, nil
}

func (m *MockBitableAPI) BatchUpdateRecords(ctx context.Context, req bitable.BatchUpdateRequest) (*bitable.Response, error) {
	m.BatchUpdateCalls++
	m.BatchUpdateRequests = append(m.BatchUpdateRequests, req)

	if m.BatchUpdateError != nil {
		return nil, m.BatchUpdateError
	}
	if m.BatchUpdateResponse != nil {
		return m.BatchUpdateResponse, nil
	}
	return &bitable.Response{Data: json.RawMessage(`{"records":[]}`)}, nil
}

func (m *MockBitableAPI) BatchDeleteRecords(ctx context.Context, req bitable.BatchDeleteRequest) (*bitable.Response, error) {
	m.BatchDeleteCalls++
	m.BatchDeleteRequests = append(m.BatchDeleteRequests, req)

	if m.BatchDeleteError != nil {
		return nil, m.BatchDeleteError
	}
	if m.BatchDeleteResponse != nil {
		return m.BatchDeleteResponse, nil
	}
	return &bitable.Response{Data: json.RawMessage(`{"records":[]}`)}, nil
}

// TotalCalls returns how many round trips the mock has served
func (m *MockBitableAPI) TotalCalls() int {
	return m.ListRecordsCalls + m.BatchCreateCalls + m.BatchUpdateCalls + m.BatchDeleteCalls
}
