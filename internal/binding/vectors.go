package binding

import (
	"github.com/zeusync/geombridge/internal/bridge"
	"github.com/zeusync/geombridge/pkg/geom"
)

func vector2DClass() *bridge.Class {
	ops := arithmetic[geom.Vector2D]{
		class: ClassVector2D,
		load:  toVector2D,
		store: func(obj *bridge.Object, v geom.Vector2D) error {
			p, err := self[geom.Vector2D](obj)
			if err != nil {
				return err
			}
			*p = v
			return nil
		},
		add:        geom.Vector2D.Add,
		sub:        geom.Vector2D.Sub,
		scale:      geom.Vector2D.Scale,
		div:        geom.Vector2D.Div,
		reciprocal: geom.Vector2D.Reciprocal,
	}

	return &bridge.Class{
		Name: ClassVector2D,
		Doc:  "Two component float vector.",
		Constructors: []bridge.Constructor{{
			Params: params(0.0, "x", "y"),
			New: func(_ *bridge.Registry, args []bridge.Value) (any, error) {
				f, err := floats32(args)
				if err != nil {
					return nil, err
				}
				v := geom.NewVector2D(f[0], f[1])
				return &v, nil
			},
		}},
		Fields: map[string]bridge.Field{
			"x": floatField(func(v *geom.Vector2D) *float32 { return &v.X }),
			"y": floatField(func(v *geom.Vector2D) *float32 { return &v.Y }),
		},
		Methods: map[string]bridge.Method{
			"length": {Call: func(_ *bridge.Registry, obj *bridge.Object, _ []bridge.Value) (bridge.Value, error) {
				v, err := toVector2D(obj)
				return float64(v.Length()), err
			}},
			"squared_length": {Call: func(_ *bridge.Registry, obj *bridge.Object, _ []bridge.Value) (bridge.Value, error) {
				v, err := toVector2D(obj)
				return float64(v.SquaredLength()), err
			}},
			"make_unit_vector": {Call: func(r *bridge.Registry, obj *bridge.Object, _ []bridge.Value) (bridge.Value, error) {
				v, err := toVector2D(obj)
				if err != nil {
					return nil, err
				}
				unit, err := v.MakeUnitVector()
				if err != nil {
					return nil, err
				}
				return r.Wrap(ClassVector2D, &unit)
			}},
		},
		Operators: withEquality(ops.operators(), toVector2D, geom.Vector2D.Equal),
		Reflected: ops.reflected(),
		Str:       str[geom.Vector2D],
	}
}

func vector3DClass() *bridge.Class {
	ops := arithmetic[geom.Vector3D]{
		class:      ClassVector3D,
		load:       toVector3D,
		store:      storeVector3D,
		add:        geom.Vector3D.Add,
		sub:        geom.Vector3D.Sub,
		scale:      geom.Vector3D.Scale,
		div:        geom.Vector3D.Div,
		reciprocal: geom.Vector3D.Reciprocal,
	}

	return &bridge.Class{
		Name: ClassVector3D,
		Doc:  "Three component float vector.",
		Constructors: []bridge.Constructor{
			{
				Params: required("rhs"),
				New: func(_ *bridge.Registry, args []bridge.Value) (any, error) {
					v, err := toVector3D(args[0])
					if err != nil {
						return nil, err
					}
					return &v, nil
				},
			},
			{
				Params: params(0.0, "x", "y", "z"),
				New: func(_ *bridge.Registry, args []bridge.Value) (any, error) {
					f, err := floats32(args)
					if err != nil {
						return nil, err
					}
					v := geom.NewVector3D(f[0], f[1], f[2])
					return &v, nil
				},
			},
		},
		Fields: map[string]bridge.Field{
			"x": floatField(func(v *geom.Vector3D) *float32 { return &v.X }),
			"y": floatField(func(v *geom.Vector3D) *float32 { return &v.Y }),
			"z": floatField(func(v *geom.Vector3D) *float32 { return &v.Z }),
		},
		Methods: map[string]bridge.Method{
			"length": {Call: func(_ *bridge.Registry, obj *bridge.Object, _ []bridge.Value) (bridge.Value, error) {
				v, err := toVector3D(obj)
				return float64(v.Length()), err
			}},
			"squared_length": {Call: func(_ *bridge.Registry, obj *bridge.Object, _ []bridge.Value) (bridge.Value, error) {
				v, err := toVector3D(obj)
				return float64(v.SquaredLength()), err
			}},
			"make_unit_vector": {Call: func(r *bridge.Registry, obj *bridge.Object, _ []bridge.Value) (bridge.Value, error) {
				v, err := toVector3D(obj)
				if err != nil {
					return nil, err
				}
				unit, err := v.MakeUnitVector()
				if err != nil {
					return nil, err
				}
				return r.Wrap(ClassVector3D, &unit)
			}},
			"dot": {
				Params: required("vector"),
				Call: func(_ *bridge.Registry, obj *bridge.Object, args []bridge.Value) (bridge.Value, error) {
					v, o, err := ops.operands("dot", obj, args[0])
					if err != nil {
						return nil, err
					}
					return float64(v.Dot(o)), nil
				},
			},
			"cross": {
				Params: required("vector"),
				Call: func(r *bridge.Registry, obj *bridge.Object, args []bridge.Value) (bridge.Value, error) {
					v, o, err := ops.operands("cross", obj, args[0])
					if err != nil {
						return nil, err
					}
					c := v.Cross(o)
					return r.Wrap(ClassVector3D, &c)
				},
			},
		},
		Operators: withEquality(ops.operators(), toVector3D, geom.Vector3D.Equal),
		Reflected: ops.reflected(),
		Str:       str[geom.Vector3D],
	}
}

// locationClass derives from Vector3D: arithmetic is inherited and yields
// Vector3D, in-place operators keep the Location.
func locationClass() *bridge.Class {
	return &bridge.Class{
		Name: ClassLocation,
		Base: ClassVector3D,
		Doc:  "A point in world space.",
		Constructors: []bridge.Constructor{
			{
				Params: required("rhs"),
				New: func(_ *bridge.Registry, args []bridge.Value) (any, error) {
					l, err := toLocation(args[0])
					if err != nil {
						return nil, err
					}
					return &l, nil
				},
			},
			{
				Params: params(0.0, "x", "y", "z"),
				New: func(_ *bridge.Registry, args []bridge.Value) (any, error) {
					f, err := floats32(args)
					if err != nil {
						return nil, err
					}
					l := geom.NewLocation(f[0], f[1], f[2])
					return &l, nil
				},
			},
		},
		Fields: map[string]bridge.Field{
			"x": floatField(func(l *geom.Location) *float32 { return &l.X }),
			"y": floatField(func(l *geom.Location) *float32 { return &l.Y }),
			"z": floatField(func(l *geom.Location) *float32 { return &l.Z }),
		},
		Methods: map[string]bridge.Method{
			"distance": {
				Params: required("location"),
				Call: func(_ *bridge.Registry, obj *bridge.Object, args []bridge.Value) (bridge.Value, error) {
					l, o, err := locationPair(obj, args[0])
					if err != nil {
						return nil, err
					}
					return float64(l.Distance(o)), nil
				},
			},
			"distance_squared": {
				Params: required("location"),
				Call: func(_ *bridge.Registry, obj *bridge.Object, args []bridge.Value) (bridge.Value, error) {
					l, o, err := locationPair(obj, args[0])
					if err != nil {
						return nil, err
					}
					return float64(l.DistanceSquared(o)), nil
				},
			},
		},
		Operators: withEquality(nil, toLocation, geom.Location.Equal),
		Str:       str[geom.Location],
	}
}

func locationPair(self *bridge.Object, other bridge.Value) (geom.Location, geom.Location, error) {
	l, err := toLocation(self)
	if err != nil {
		return l, l, err
	}
	o, err := toLocation(other)
	return l, o, err
}
