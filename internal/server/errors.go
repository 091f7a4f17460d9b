package server

import (
	"errors"

	"github.com/zeusync/geombridge/internal/bridge"
)

// Server-specific errors
var (
	ErrServerClosed         = errors.New("server is closed")
	ErrServerNotRunning     = errors.New("server is not running")
	ErrServerAlreadyRunning = errors.New("server is already running")
	ErrMaxSessionsReached   = errors.New("maximum sessions reached")
	ErrInvalidMessage       = errors.New("invalid message")
	ErrMessageTooLarge      = errors.New("message too large")
	ErrListenerFailed       = errors.New("failed to create listener")
)

// errorCode extends bridge.CodeOf with the transport errors.
func errorCode(err error) bridge.ErrorCode {
	switch {
	case errors.Is(err, ErrInvalidMessage):
		return bridge.ErrorCodeInvalidMessage
	case errors.Is(err, ErrMessageTooLarge):
		return bridge.ErrorCodeMessageTooLarge
	case errors.Is(err, ErrMaxSessionsReached):
		return bridge.ErrorCodeMaxSessionsReached
	default:
		return bridge.CodeOf(err)
	}
}
