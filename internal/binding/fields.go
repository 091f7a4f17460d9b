package binding

import (
	"github.com/zeusync/geombridge/internal/bridge"
)

// floatField exposes a float32 member read and written as a host number.
func floatField[T any](ref func(*T) *float32) bridge.Field {
	return bridge.Field{
		Get: func(_ *bridge.Registry, obj *bridge.Object) (bridge.Value, error) {
			p, err := self[T](obj)
			if err != nil {
				return nil, err
			}
			return float64(*ref(p)), nil
		},
		Set: func(_ *bridge.Registry, obj *bridge.Object, v bridge.Value) error {
			p, err := self[T](obj)
			if err != nil {
				return err
			}
			f, err := bridge.Float32(v)
			if err != nil {
				return err
			}
			*ref(p) = f
			return nil
		},
	}
}

// doubleField is floatField for float64 members.
func doubleField[T any](ref func(*T) *float64) bridge.Field {
	return bridge.Field{
		Get: func(_ *bridge.Registry, obj *bridge.Object) (bridge.Value, error) {
			p, err := self[T](obj)
			if err != nil {
				return nil, err
			}
			return *ref(p), nil
		},
		Set: func(_ *bridge.Registry, obj *bridge.Object, v bridge.Value) error {
			p, err := self[T](obj)
			if err != nil {
				return err
			}
			f, err := bridge.Float(v)
			if err != nil {
				return err
			}
			*ref(p) = f
			return nil
		},
	}
}

// objectField exposes a struct member as an object of class. The getter
// returns a view into the parent, so writes through it change the parent.
func objectField[T, F any](class string, ref func(*T) *F, convert func(bridge.Value) (F, error)) bridge.Field {
	return bridge.Field{
		Get: func(r *bridge.Registry, obj *bridge.Object) (bridge.Value, error) {
			p, err := self[T](obj)
			if err != nil {
				return nil, err
			}
			return r.Wrap(class, ref(p))
		},
		Set: func(_ *bridge.Registry, obj *bridge.Object, v bridge.Value) error {
			p, err := self[T](obj)
			if err != nil {
				return err
			}
			value, err := convert(v)
			if err != nil {
				return err
			}
			*ref(p) = value
			return nil
		},
	}
}
