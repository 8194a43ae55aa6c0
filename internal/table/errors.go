package table

import (
	"encoding/json"
	"fmt"

	"github.com/sunxiaojia123/feishu-duowei-crud/internal/bitable"
)

// RemoteError reports a transport round trip that came back with a non-zero
// code. It carries the platform's code, message and log id; for write
// operations Request holds the attempted request body for diagnosis. The
// client never retries; the caller decides.
type RemoteError struct {
	Op      string
	Code    int
	Msg     string
	LogID   string
	Request string
}

func (e *RemoteError) Error() string {
	if e.Request != "" {
		return fmt.Sprintf("bitable %s failed, code: %d, msg: %s, log_id: %s, request: %s",
			e.Op, e.Code, e.Msg, e.LogID, e.Request)
	}
	return fmt.Sprintf("bitable %s failed, code: %d, msg: %s, log_id: %s",
		e.Op, e.Code, e.Msg, e.LogID)
}

func newRemoteError(op string, resp *bitable.Response, request interface{}) *RemoteError {
	e := &RemoteError{
		Op:    op,
		Code:  resp.Code,
		Msg:   resp.Msg,
		LogID: resp.LogID,
	}
	if request != nil {
		if body, err := json.Marshal(request); err == nil {
			e.Request = string(body)
		}
	}
	return e
}
