package geom

import "errors"

var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrZeroLength      = errors.New("vector has zero length")
)
