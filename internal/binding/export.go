// Package binding exposes the geom types to bridge hosts.
package binding

import (
	"fmt"

	"github.com/zeusync/geombridge/internal/bridge"
	"github.com/zeusync/geombridge/pkg/geom"
)

// Export registers every geometry class with r, leaves first.
func Export(r *bridge.Registry) error {
	classes := []*bridge.Class{
		vector2DClass(),
		vector3DClass(),
		rotationClass(),
		geoLocationClass(),
		locationClass(),
		transformClass(),
		boundingBoxClass(),
		vector2DListClass(),
		transformListClass(),
	}
	for _, c := range classes {
		if err := r.Register(c); err != nil {
			return fmt.Errorf("export %s: %w", c.Name, err)
		}
	}

	r.RegisterConversion(ClassLocation, ClassVector3D, func(ptr any) any {
		v := ptr.(*geom.Location).Vector3D()
		return &v
	})
	r.RegisterConversion(ClassVector3D, ClassLocation, func(ptr any) any {
		l := ptr.(*geom.Vector3D).Location()
		return &l
	})
	return nil
}

// NewRegistry returns a registry with every geometry class exported.
func NewRegistry() (*bridge.Registry, error) {
	r := bridge.NewRegistry()
	if err := Export(r); err != nil {
		return nil, err
	}
	return r, nil
}
