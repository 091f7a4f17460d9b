package client

import (
	"errors"
	"fmt"
)

// Client-specific errors
var (
	ErrClientClosed      = errors.New("client is closed")
	ErrNotConnected      = errors.New("client is not connected")
	ErrAlreadyConnected  = errors.New("client is already connected")
	ErrConnectionTimeout = errors.New("connection timeout")
	ErrInvalidConfig     = errors.New("invalid client configuration")
	ErrInvalidMessage    = errors.New("invalid message")
)

// RemoteError is an error reported by the server for one request.
type RemoteError struct {
	Code    int
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("bridge error %d: %s", e.Code, e.Message)
}
