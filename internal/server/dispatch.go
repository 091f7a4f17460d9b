package server

import (
	"encoding/json"
	"fmt"

	"github.com/zeusync/geombridge/internal/bridge"
	"github.com/zeusync/geombridge/internal/core/observability/log"
)

// dispatcher executes frames against a session. Both transports share it.
type dispatcher struct {
	maxMessageSize int
	logger         log.Log
}

// handle runs one request frame and returns the encoded response frame.
func (d *dispatcher) handle(session *bridge.Session, data []byte) []byte {
	if d.maxMessageSize > 0 && len(data) > d.maxMessageSize {
		return d.encode(&Response{Error: errorBody(fmt.Errorf("%w: %d bytes (max %d)", ErrMessageTooLarge, len(data), d.maxMessageSize))})
	}

	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return d.encode(&Response{Error: errorBody(fmt.Errorf("%w: %v", ErrInvalidMessage, err))})
	}

	resp := &Response{ID: req.ID}
	result, err := d.do(session, &req)
	if err != nil {
		resp.Error = errorBody(err)
		return d.encode(resp)
	}

	resp.OK = true
	resp.Result = encodeValue(session.Heap(), result)
	return d.encode(resp)
}

func (d *dispatcher) do(session *bridge.Session, req *Request) (bridge.Value, error) {
	if req.Op == "" {
		return nil, fmt.Errorf("%w: missing op", ErrInvalidMessage)
	}
	breq, err := toBridgeRequest(session.Heap(), req)
	if err != nil {
		return nil, err
	}
	return session.Do(breq)
}

func (d *dispatcher) encode(resp *Response) []byte {
	data, err := json.Marshal(resp)
	if err == nil {
		return data
	}

	d.logger.Warn("Failed to encode response", log.Error(err))
	data, _ = json.Marshal(&Response{
		ID:    resp.ID,
		Error: &ErrorBody{Code: bridge.ErrorCodeInternalError, Message: err.Error()},
	})
	return data
}

func errorBody(err error) *ErrorBody {
	return &ErrorBody{Code: errorCode(err), Message: err.Error()}
}
