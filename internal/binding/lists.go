package binding

import (
	"fmt"

	"github.com/zeusync/geombridge/internal/bridge"
	"github.com/zeusync/geombridge/pkg/geom"
)

// sequence binds geom.List[T] as a host list type holding elemClass values.
type sequence[T geom.Element] struct {
	name      string
	elemClass string
	convert   func(bridge.Value) (T, error)
}

func (s sequence[T]) load(v bridge.Value) (*geom.List[T], error) {
	if p, ok := bridge.Ptr[geom.List[T]](v); ok {
		return p, nil
	}
	return nil, mismatch(s.name, v)
}

// elements converts a host list, or another list of this class, to items.
func (s sequence[T]) elements(v bridge.Value) ([]T, error) {
	if l, err := s.load(v); err == nil {
		return l.Items(), nil
	}
	values, err := bridge.List(v)
	if err != nil {
		return nil, mismatch("list", v)
	}
	out := make([]T, len(values))
	for i, item := range values {
		if out[i], err = s.convert(item); err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
	}
	return out, nil
}

func (s sequence[T]) method(p []bridge.Param, fn func(r *bridge.Registry, l *geom.List[T], args []bridge.Value) (bridge.Value, error)) bridge.Method {
	return bridge.Method{
		Params: p,
		Call: func(r *bridge.Registry, obj *bridge.Object, args []bridge.Value) (bridge.Value, error) {
			l, err := self[geom.List[T]](obj)
			if err != nil {
				return nil, err
			}
			return fn(r, l, args)
		},
	}
}

func (s sequence[T]) class() *bridge.Class {
	return &bridge.Class{
		Name: s.name,
		Doc:  "List of " + s.elemClass + " values.",
		Constructors: []bridge.Constructor{{
			Params: []bridge.Param{{Name: "items"}},
			New: func(_ *bridge.Registry, args []bridge.Value) (any, error) {
				if args[0] == nil {
					return geom.NewList[T](), nil
				}
				items, err := s.elements(args[0])
				if err != nil {
					return nil, err
				}
				return geom.NewList(items...), nil
			},
		}},
		Methods: map[string]bridge.Method{
			"__len__": s.method(nil, func(_ *bridge.Registry, l *geom.List[T], _ []bridge.Value) (bridge.Value, error) {
				return float64(l.Len()), nil
			}),
			"__getitem__": s.method(required("index"), func(r *bridge.Registry, l *geom.List[T], args []bridge.Value) (bridge.Value, error) {
				i, err := bridge.Int(args[0])
				if err != nil {
					return nil, err
				}
				item, err := l.Get(i)
				if err != nil {
					return nil, err
				}
				return r.Wrap(s.elemClass, &item)
			}),
			"__setitem__": s.method(required("index", "value"), func(_ *bridge.Registry, l *geom.List[T], args []bridge.Value) (bridge.Value, error) {
				i, err := bridge.Int(args[0])
				if err != nil {
					return nil, err
				}
				item, err := s.convert(args[1])
				if err != nil {
					return nil, err
				}
				return nil, l.Set(i, item)
			}),
			"__delitem__": s.method(required("index"), func(_ *bridge.Registry, l *geom.List[T], args []bridge.Value) (bridge.Value, error) {
				i, err := bridge.Int(args[0])
				if err != nil {
					return nil, err
				}
				return nil, l.Delete(i)
			}),
			"__contains__": s.method(required("value"), func(_ *bridge.Registry, l *geom.List[T], args []bridge.Value) (bridge.Value, error) {
				item, err := s.convert(args[0])
				if err != nil {
					return false, nil
				}
				return l.Contains(item), nil
			}),
			"append": s.method(required("value"), func(_ *bridge.Registry, l *geom.List[T], args []bridge.Value) (bridge.Value, error) {
				item, err := s.convert(args[0])
				if err != nil {
					return nil, err
				}
				l.Append(item)
				return nil, nil
			}),
			"extend": s.method(required("values"), func(_ *bridge.Registry, l *geom.List[T], args []bridge.Value) (bridge.Value, error) {
				items, err := s.elements(args[0])
				if err != nil {
					return nil, err
				}
				l.Append(items...)
				return nil, nil
			}),
		},
		Operators: withEquality(nil, func(v bridge.Value) ([]T, error) {
			l, err := s.load(v)
			if err != nil {
				return nil, err
			}
			return l.Items(), nil
		}, equalItems[T]),
		Str: func(ptr any) string {
			return ptr.(*geom.List[T]).String()
		},
	}
}

func equalItems[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func vector2DListClass() *bridge.Class {
	return sequence[geom.Vector2D]{name: ClassVector2DList, elemClass: ClassVector2D, convert: toVector2D}.class()
}

func transformListClass() *bridge.Class {
	return sequence[geom.Transform]{name: ClassTransformList, elemClass: ClassTransform, convert: toTransform}.class()
}
