package binding

import (
	"fmt"

	"github.com/zeusync/geombridge/internal/bridge"
	"github.com/zeusync/geombridge/pkg/geom"
)

type basisFunc func(geom.Rotation) geom.Vector3D

func basisMethod[T any](rotation func(*T) geom.Rotation, basis basisFunc) bridge.Method {
	return bridge.Method{
		Call: func(r *bridge.Registry, obj *bridge.Object, _ []bridge.Value) (bridge.Value, error) {
			p, err := self[T](obj)
			if err != nil {
				return nil, err
			}
			v := basis(rotation(p))
			return r.Wrap(ClassVector3D, &v)
		},
	}
}

func basisMethods[T any](rotation func(*T) geom.Rotation) map[string]bridge.Method {
	return map[string]bridge.Method{
		"get_forward_vector": basisMethod(rotation, geom.Rotation.GetForwardVector),
		"get_right_vector":   basisMethod(rotation, geom.Rotation.GetRightVector),
		"get_up_vector":      basisMethod(rotation, geom.Rotation.GetUpVector),
	}
}

func rotationClass() *bridge.Class {
	return &bridge.Class{
		Name: ClassRotation,
		Doc:  "Pitch, yaw and roll in degrees.",
		Constructors: []bridge.Constructor{{
			Params: params(0.0, "pitch", "yaw", "roll"),
			New: func(_ *bridge.Registry, args []bridge.Value) (any, error) {
				f, err := floats32(args)
				if err != nil {
					return nil, err
				}
				rot := geom.NewRotation(f[0], f[1], f[2])
				return &rot, nil
			},
		}},
		Fields: map[string]bridge.Field{
			"pitch": floatField(func(r *geom.Rotation) *float32 { return &r.Pitch }),
			"yaw":   floatField(func(r *geom.Rotation) *float32 { return &r.Yaw }),
			"roll":  floatField(func(r *geom.Rotation) *float32 { return &r.Roll }),
		},
		Methods:   basisMethods(func(r *geom.Rotation) geom.Rotation { return *r }),
		Operators: withEquality(nil, toRotation, geom.Rotation.Equal),
		Str:       str[geom.Rotation],
	}
}

func transformClass() *bridge.Class {
	methods := basisMethods(func(t *geom.Transform) geom.Rotation { return t.Rotation })
	methods["transform"] = bridge.Method{
		Params: required("in_point"),
		Call: func(r *bridge.Registry, obj *bridge.Object, args []bridge.Value) (bridge.Value, error) {
			t, err := self[geom.Transform](obj)
			if err != nil {
				return nil, err
			}
			if points, isList := args[0].([]bridge.Value); isList {
				return nil, transformList(*t, points, geom.Transform.TransformPoint)
			}
			return transformOne(r, *t, args[0], geom.Transform.TransformPoint)
		},
	}
	methods["inverse_transform"] = bridge.Method{
		Params: required("in_point"),
		Call: func(r *bridge.Registry, obj *bridge.Object, args []bridge.Value) (bridge.Value, error) {
			t, err := self[geom.Transform](obj)
			if err != nil {
				return nil, err
			}
			if points, isList := args[0].([]bridge.Value); isList {
				return nil, transformList(*t, points, geom.Transform.InverseTransformPoint)
			}
			return transformOne(r, *t, args[0], geom.Transform.InverseTransformPoint)
		},
	}

	return &bridge.Class{
		Name: ClassTransform,
		Doc:  "Location and rotation of a frame; maps local points to world.",
		Constructors: []bridge.Constructor{{
			Params: []bridge.Param{{Name: "location"}, {Name: "rotation"}},
			New: func(_ *bridge.Registry, args []bridge.Value) (any, error) {
				l, err := optional(args[0], toLocation)
				if err != nil {
					return nil, err
				}
				rot, err := optional(args[1], toRotation)
				if err != nil {
					return nil, err
				}
				t := geom.NewTransform(l, rot)
				return &t, nil
			},
		}},
		Fields: map[string]bridge.Field{
			"location": objectField(ClassLocation, func(t *geom.Transform) *geom.Location { return &t.Location }, toLocation),
			"rotation": objectField(ClassRotation, func(t *geom.Transform) *geom.Rotation { return &t.Rotation }, toRotation),
		},
		Methods:   methods,
		Operators: withEquality(nil, toTransform, geom.Transform.Equal),
		Str:       str[geom.Transform],
	}
}

type pointFunc func(geom.Transform, *geom.Vector3D)

// transformOne mutates the caller's point and also returns the result as a
// new Vector3D.
func transformOne(r *bridge.Registry, t geom.Transform, arg bridge.Value, apply pointFunc) (bridge.Value, error) {
	point, ok := arg.(*bridge.Object)
	if !ok {
		return nil, mismatch(ClassVector3D, arg)
	}
	p, err := toVector3D(point)
	if err != nil {
		return nil, err
	}
	apply(t, &p)
	if err := storeVector3D(point, p); err != nil {
		return nil, err
	}
	return r.Wrap(ClassVector3D, &p)
}

// transformList mutates every point of a host list in place, in order. The
// whole list is checked first so a bad element leaves every point untouched.
// Each point is re-read just before it is written, so an object listed twice
// is transformed twice.
func transformList(t geom.Transform, points []bridge.Value, apply pointFunc) error {
	objects := make([]*bridge.Object, len(points))
	for i, item := range points {
		obj, ok := item.(*bridge.Object)
		if !ok {
			return fmt.Errorf("element %d: %w", i, mismatch(ClassVector3D, item))
		}
		if _, err := toVector3D(obj); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
		objects[i] = obj
	}

	for i, obj := range objects {
		p, err := toVector3D(obj)
		if err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
		apply(t, &p)
		if err := storeVector3D(obj, p); err != nil {
			return err
		}
	}
	return nil
}
