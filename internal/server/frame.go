package server

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/zeusync/geombridge/internal/bridge"
)

// Request is one frame sent by a host.
type Request struct {
	ID     json.RawMessage `json:"id,omitempty"`
	Op     string          `json:"op"`
	Class  string          `json:"class,omitempty"`
	Handle string          `json:"handle,omitempty"`
	Name   string          `json:"name,omitempty"`
	Args   []any           `json:"args,omitempty"`
	Kwargs map[string]any  `json:"kwargs,omitempty"`
}

// Response answers the Request with the same ID.
type Response struct {
	ID     json.RawMessage `json:"id,omitempty"`
	OK     bool            `json:"ok"`
	Result any             `json:"result"`
	Error  *ErrorBody      `json:"error,omitempty"`
}

type ErrorBody struct {
	Code    bridge.ErrorCode `json:"code"`
	Message string           `json:"message"`
}

// Ref is the wire form of an object living in a session heap. Hosts only
// need to send Ref back.
type Ref struct {
	Ref   string `json:"$ref"`
	Class string `json:"$class,omitempty"`
	Str   string `json:"$str,omitempty"`
}

// Float is the wire form of a non-finite number, which JSON cannot carry
// as a literal. Value is one of "inf", "-inf" or "nan".
type Float struct {
	Value string `json:"$float"`
}

const (
	refKey   = "$ref"
	floatKey = "$float"
)

// EncodeFloat returns f unchanged when it is finite and its Float form
// otherwise.
func EncodeFloat(f float64) any {
	switch {
	case math.IsNaN(f):
		return Float{Value: "nan"}
	case math.IsInf(f, 1):
		return Float{Value: "inf"}
	case math.IsInf(f, -1):
		return Float{Value: "-inf"}
	default:
		return f
	}
}

// DecodeFloat parses the Value of a Float.
func DecodeFloat(s string) (float64, error) {
	switch s {
	case "nan":
		return math.NaN(), nil
	case "inf":
		return math.Inf(1), nil
	case "-inf":
		return math.Inf(-1), nil
	default:
		return 0, fmt.Errorf("%w: bad %s value %q", ErrInvalidMessage, floatKey, s)
	}
}

// decodeValue turns a decoded JSON value into a bridge value, resolving
// object references against heap.
func decodeValue(heap *bridge.Heap, v any) (bridge.Value, error) {
	switch t := v.(type) {
	case nil, bool, float64, string:
		return t, nil
	case []any:
		out := make([]bridge.Value, len(t))
		for i, item := range t {
			decoded, err := decodeValue(heap, item)
			if err != nil {
				return nil, err
			}
			out[i] = decoded
		}
		return out, nil
	case map[string]any:
		if f, ok := t[floatKey].(string); ok {
			return DecodeFloat(f)
		}
		handle, ok := t[refKey].(string)
		if !ok {
			return nil, fmt.Errorf("%w: objects must be sent as {%q: handle}", ErrInvalidMessage, refKey)
		}
		return heap.Get(handle)
	default:
		return nil, fmt.Errorf("%w: unexpected %T", ErrInvalidMessage, v)
	}
}

func decodeArgs(heap *bridge.Heap, args []any, kwargs map[string]any) ([]bridge.Value, map[string]bridge.Value, error) {
	var positional []bridge.Value
	if len(args) > 0 {
		positional = make([]bridge.Value, len(args))
		for i, a := range args {
			v, err := decodeValue(heap, a)
			if err != nil {
				return nil, nil, err
			}
			positional[i] = v
		}
	}

	var named map[string]bridge.Value
	if len(kwargs) > 0 {
		named = make(map[string]bridge.Value, len(kwargs))
		for k, a := range kwargs {
			v, err := decodeValue(heap, a)
			if err != nil {
				return nil, nil, err
			}
			named[k] = v
		}
	}
	return positional, named, nil
}

// encodeValue is the inverse of decodeValue. Objects are stored in heap so
// the host can refer to them later.
func encodeValue(heap *bridge.Heap, v bridge.Value) any {
	switch t := v.(type) {
	case *bridge.Object:
		return Ref{Ref: heap.Put(t), Class: t.ClassName(), Str: t.String()}
	case []bridge.Value:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = encodeValue(heap, item)
		}
		return out
	case float64:
		return EncodeFloat(t)
	case float32:
		return EncodeFloat(float64(t))
	default:
		return v
	}
}

// toBridgeRequest resolves a wire request against the session heap. For the
// "op" action the left operand is the object named by Handle, or the first
// argument when no handle is given.
func toBridgeRequest(heap *bridge.Heap, req *Request) (bridge.Request, error) {
	args, kwargs, err := decodeArgs(heap, req.Args, req.Kwargs)
	if err != nil {
		return bridge.Request{}, err
	}

	out := bridge.Request{
		Action: req.Op,
		Class:  req.Class,
		Handle: req.Handle,
		Name:   req.Name,
		Args:   args,
		Kwargs: kwargs,
	}

	switch {
	case req.Op == bridge.ActionRelease || req.Op == bridge.ActionClasses:
	case req.Handle != "":
		if out.Target, err = heap.Get(req.Handle); err != nil {
			return bridge.Request{}, err
		}
	case req.Op == bridge.ActionOperate && len(args) == 2:
		out.Target, out.Args = args[0], args[1:]
	}
	return out, nil
}
