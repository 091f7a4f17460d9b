package bridge

import (
	"errors"
	"time"

	"github.com/zeusync/geombridge/pkg/geom"
)

// Bridge errors
var (
	// Registry errors

	ErrAlreadyRegistered = errors.New("class already registered")
	ErrUnknownClass      = errors.New("unknown class")
	ErrNotConvertible    = errors.New("value is not convertible")

	// Object errors

	ErrUnknownHandle    = errors.New("unknown object handle")
	ErrUnknownAttribute = errors.New("unknown attribute")
	ErrUnknownMethod    = errors.New("unknown method")

	// Call errors

	ErrInvalidArgument    = errors.New("invalid argument")
	ErrUnsupportedOperand = errors.New("unsupported operand")
	ErrIndexOutOfRange    = geom.ErrIndexOutOfRange
)

// ErrorCode is the numeric form of a bridge error carried across transports.
type ErrorCode int

const (
	ErrorCodeSuccess ErrorCode = 0

	// Registry error codes (1000-1999)

	ErrorCodeAlreadyRegistered ErrorCode = 1001
	ErrorCodeUnknownClass      ErrorCode = 1002
	ErrorCodeNotConvertible    ErrorCode = 1003

	// Object error codes (2000-2999)

	ErrorCodeUnknownHandle    ErrorCode = 2001
	ErrorCodeUnknownAttribute ErrorCode = 2002
	ErrorCodeUnknownMethod    ErrorCode = 2003

	// Call error codes (3000-3999)

	ErrorCodeInvalidArgument    ErrorCode = 3001
	ErrorCodeUnsupportedOperand ErrorCode = 3002
	ErrorCodeIndexOutOfRange    ErrorCode = 3003

	// Transport error codes (4000-4999)

	ErrorCodeInvalidMessage     ErrorCode = 4001
	ErrorCodeMessageTooLarge    ErrorCode = 4002
	ErrorCodeMaxSessionsReached ErrorCode = 4003

	ErrorCodeInternalError ErrorCode = 9003
	ErrorCodeUnknownError  ErrorCode = 9999
)

// Error is a bridge error with a stable code and optional context.
type Error struct {
	Code      ErrorCode
	Message   string
	Cause     error
	Context   map[string]any
	Timestamp int64
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a coded bridge error.
func NewError(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:      code,
		Message:   message,
		Cause:     cause,
		Context:   make(map[string]any),
		Timestamp: time.Now().Unix(),
	}
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value any) *Error {
	e.Context[key] = value
	return e
}

var errorCodes = []struct {
	err  error
	code ErrorCode
}{
	{ErrAlreadyRegistered, ErrorCodeAlreadyRegistered},
	{ErrUnknownClass, ErrorCodeUnknownClass},
	{ErrNotConvertible, ErrorCodeNotConvertible},
	{ErrUnknownHandle, ErrorCodeUnknownHandle},
	{ErrUnknownAttribute, ErrorCodeUnknownAttribute},
	{ErrUnknownMethod, ErrorCodeUnknownMethod},
	{ErrInvalidArgument, ErrorCodeInvalidArgument},
	{ErrUnsupportedOperand, ErrorCodeUnsupportedOperand},
	{ErrIndexOutOfRange, ErrorCodeIndexOutOfRange},
}

// CodeOf returns the code for err, looking through wrapping.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ErrorCodeSuccess
	}

	var bridgeErr *Error
	if errors.As(err, &bridgeErr) {
		return bridgeErr.Code
	}

	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return ec.code
		}
	}

	return ErrorCodeUnknownError
}

// WrapError wraps err into a coded bridge error.
func WrapError(err error, message string) *Error {
	return NewError(CodeOf(err), message, err)
}
