package binding

import (
	"fmt"

	"github.com/zeusync/geombridge/internal/bridge"
	"github.com/zeusync/geombridge/pkg/geom"
)

// Host class names.
const (
	ClassVector2D      = "Vector2D"
	ClassVector3D      = "Vector3D"
	ClassLocation      = "Location"
	ClassRotation      = "Rotation"
	ClassTransform     = "Transform"
	ClassBoundingBox   = "BoundingBox"
	ClassGeoLocation   = "GeoLocation"
	ClassVector2DList  = "vector_of_vector2D"
	ClassTransformList = "vector_of_transform"
)

func self[T any](obj *bridge.Object) (*T, error) {
	p, ok := obj.Ptr().(*T)
	if !ok {
		var zero T
		return nil, fmt.Errorf("%w: %s does not wrap %T", bridge.ErrInvalidArgument, obj.ClassName(), zero)
	}
	return p, nil
}

func mismatch(want string, got bridge.Value) error {
	return fmt.Errorf("%w: expected %s, got %s", bridge.ErrInvalidArgument, want, bridge.TypeName(got))
}

func toVector2D(v bridge.Value) (geom.Vector2D, error) {
	if p, ok := bridge.Ptr[geom.Vector2D](v); ok {
		return *p, nil
	}
	return geom.Vector2D{}, mismatch(ClassVector2D, v)
}

// toVector3D accepts a Vector3D or anything implicitly convertible to one.
func toVector3D(v bridge.Value) (geom.Vector3D, error) {
	if p, ok := bridge.Ptr[geom.Vector3D](v); ok {
		return *p, nil
	}
	if p, ok := bridge.Ptr[geom.Location](v); ok {
		return p.Vector3D(), nil
	}
	return geom.Vector3D{}, mismatch(ClassVector3D, v)
}

func toLocation(v bridge.Value) (geom.Location, error) {
	p, err := toVector3D(v)
	if err != nil {
		return geom.Location{}, mismatch(ClassLocation, v)
	}
	return p.Location(), nil
}

func toRotation(v bridge.Value) (geom.Rotation, error) {
	if p, ok := bridge.Ptr[geom.Rotation](v); ok {
		return *p, nil
	}
	return geom.Rotation{}, mismatch(ClassRotation, v)
}

func toTransform(v bridge.Value) (geom.Transform, error) {
	if p, ok := bridge.Ptr[geom.Transform](v); ok {
		return *p, nil
	}
	return geom.Transform{}, mismatch(ClassTransform, v)
}

func toBoundingBox(v bridge.Value) (geom.BoundingBox, error) {
	if p, ok := bridge.Ptr[geom.BoundingBox](v); ok {
		return *p, nil
	}
	return geom.BoundingBox{}, mismatch(ClassBoundingBox, v)
}

func toGeoLocation(v bridge.Value) (geom.GeoLocation, error) {
	if p, ok := bridge.Ptr[geom.GeoLocation](v); ok {
		return *p, nil
	}
	return geom.GeoLocation{}, mismatch(ClassGeoLocation, v)
}

// storeVector3D writes p back into a Vector3D or Location object.
func storeVector3D(obj *bridge.Object, p geom.Vector3D) error {
	switch dst := obj.Ptr().(type) {
	case *geom.Vector3D:
		*dst = p
	case *geom.Location:
		*dst = p.Location()
	default:
		return mismatch(ClassVector3D, obj)
	}
	return nil
}

// optional treats a missing argument as the zero value of the target class.
func optional[T any](v bridge.Value, convert func(bridge.Value) (T, error)) (T, error) {
	if v == nil {
		var zero T
		return zero, nil
	}
	return convert(v)
}

func floats32(args []bridge.Value) ([]float32, error) {
	out := make([]float32, len(args))
	for i, a := range args {
		f, err := bridge.Float32(a)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

func floats64(args []bridge.Value) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		f, err := bridge.Float(a)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

func params(defaults bridge.Value, names ...string) []bridge.Param {
	out := make([]bridge.Param, len(names))
	for i, name := range names {
		out[i] = bridge.Param{Name: name, Default: defaults}
	}
	return out
}

func required(names ...string) []bridge.Param {
	out := make([]bridge.Param, len(names))
	for i, name := range names {
		out[i] = bridge.Param{Name: name, Required: true}
	}
	return out
}

func wrapLocations(r *bridge.Registry, locations []geom.Location) []bridge.Value {
	out := make([]bridge.Value, len(locations))
	for i := range locations {
		l := locations[i]
		out[i] = r.MustWrap(ClassLocation, &l)
	}
	return out
}
