package bridge

import (
	"encoding/json"
	"fmt"
)

// Value is anything that crosses the bridge: float64, bool, string, *Object,
// []Value or nil.
type Value = any

// Object is a host-visible instance of a registered class. Ptr points at the
// Go value it wraps, so mutations through the host are seen by every holder
// of the same Object. Objects returned from field getters point into their
// parent's memory.
type Object struct {
	class *Class
	ptr   any
}

// NewObject wraps ptr as an instance of class. ptr must be a pointer to the
// Go type the class was registered for.
func NewObject(class *Class, ptr any) *Object {
	return &Object{class: class, ptr: ptr}
}

func (o *Object) Class() *Class {
	return o.class
}

func (o *Object) ClassName() string {
	return o.class.Name
}

func (o *Object) Ptr() any {
	return o.ptr
}

func (o *Object) String() string {
	if o.class.Str == nil {
		return "<" + o.class.Name + " object>"
	}
	return o.class.Str(o.ptr)
}

// Ptr returns the wrapped pointer of an *Object value as *T.
func Ptr[T any](v Value) (*T, bool) {
	obj, ok := v.(*Object)
	if !ok {
		return nil, false
	}
	p, ok := obj.ptr.(*T)
	return p, ok
}

// Float narrows any host number to float64.
func Float(v Value) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidArgument, n.String())
		}
		return f, nil
	case bool:
		if n {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("%w: expected number, got %s", ErrInvalidArgument, TypeName(v))
	}
}

// Float32 is Float narrowed to single precision.
func Float32(v Value) (float32, error) {
	f, err := Float(v)
	return float32(f), err
}

// Int returns an integral host number.
func Int(v Value) (int, error) {
	f, err := Float(v)
	if err != nil {
		return 0, err
	}
	i := int(f)
	if float64(i) != f {
		return 0, fmt.Errorf("%w: %v is not an integer", ErrInvalidArgument, f)
	}
	return i, nil
}

// List returns v as a host list.
func List(v Value) ([]Value, error) {
	l, ok := v.([]Value)
	if !ok {
		return nil, fmt.Errorf("%w: expected list, got %s", ErrInvalidArgument, TypeName(v))
	}
	return l, nil
}

// TypeName names the host-side type of v for error messages.
func TypeName(v Value) string {
	switch t := v.(type) {
	case nil:
		return "None"
	case *Object:
		return t.class.Name
	case []Value:
		return "list"
	case bool:
		return "bool"
	case string:
		return "str"
	case float64, float32, int, int32, int64, uint32, uint64, json.Number:
		return "float"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// Repr renders v the way the host prints it.
func Repr(v Value) string {
	switch t := v.(type) {
	case nil:
		return "None"
	case *Object:
		return t.String()
	case []Value:
		s := "["
		for i, item := range t {
			if i > 0 {
				s += ", "
			}
			s += Repr(item)
		}
		return s + "]"
	case bool:
		if t {
			return "True"
		}
		return "False"
	case string:
		return t
	default:
		return fmt.Sprint(v)
	}
}
