package binding

import (
	"github.com/zeusync/geombridge/internal/bridge"
	"github.com/zeusync/geombridge/pkg/geom"
)

func geoLocationClass() *bridge.Class {
	return &bridge.Class{
		Name: ClassGeoLocation,
		Doc:  "Latitude and longitude in degrees, altitude in metres.",
		Constructors: []bridge.Constructor{{
			Params: params(0.0, "latitude", "longitude", "altitude"),
			New: func(_ *bridge.Registry, args []bridge.Value) (any, error) {
				f, err := floats64(args)
				if err != nil {
					return nil, err
				}
				g := geom.NewGeoLocation(f[0], f[1], f[2])
				return &g, nil
			},
		}},
		Fields: map[string]bridge.Field{
			"latitude":  doubleField(func(g *geom.GeoLocation) *float64 { return &g.Latitude }),
			"longitude": doubleField(func(g *geom.GeoLocation) *float64 { return &g.Longitude }),
			"altitude":  doubleField(func(g *geom.GeoLocation) *float64 { return &g.Altitude }),
		},
		Methods: map[string]bridge.Method{
			"transform": {
				Params: required("location"),
				Call: func(r *bridge.Registry, obj *bridge.Object, args []bridge.Value) (bridge.Value, error) {
					g, err := self[geom.GeoLocation](obj)
					if err != nil {
						return nil, err
					}
					l, err := toLocation(args[0])
					if err != nil {
						return nil, err
					}
					out := g.Transform(l)
					return r.Wrap(ClassGeoLocation, &out)
				},
			},
		},
		Operators: withEquality(nil, toGeoLocation, geom.GeoLocation.Equal),
		Str:       str[geom.GeoLocation],
	}
}
