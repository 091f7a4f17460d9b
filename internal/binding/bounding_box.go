package binding

import (
	"github.com/zeusync/geombridge/internal/bridge"
	"github.com/zeusync/geombridge/pkg/geom"
)

func boundingBoxClass() *bridge.Class {
	return &bridge.Class{
		Name: ClassBoundingBox,
		Doc:  "Box given by its center location and half-extent.",
		Constructors: []bridge.Constructor{{
			Params: []bridge.Param{{Name: "location"}, {Name: "extent"}},
			New: func(_ *bridge.Registry, args []bridge.Value) (any, error) {
				l, err := optional(args[0], toLocation)
				if err != nil {
					return nil, err
				}
				e, err := optional(args[1], toVector3D)
				if err != nil {
					return nil, err
				}
				b := geom.NewBoundingBox(l, e)
				return &b, nil
			},
		}},
		Fields: map[string]bridge.Field{
			"location": objectField(ClassLocation, func(b *geom.BoundingBox) *geom.Location { return &b.Location }, toLocation),
			"extent":   objectField(ClassVector3D, func(b *geom.BoundingBox) *geom.Vector3D { return &b.Extent }, toVector3D),
		},
		Methods: map[string]bridge.Method{
			"contains": {
				Params: required("point", "bbox_transform"),
				Call: func(_ *bridge.Registry, obj *bridge.Object, args []bridge.Value) (bridge.Value, error) {
					b, err := self[geom.BoundingBox](obj)
					if err != nil {
						return nil, err
					}
					point, err := toLocation(args[0])
					if err != nil {
						return nil, err
					}
					t, err := toTransform(args[1])
					if err != nil {
						return nil, err
					}
					return b.Contains(point, t), nil
				},
			},
			"get_local_vertices": {
				Call: func(r *bridge.Registry, obj *bridge.Object, _ []bridge.Value) (bridge.Value, error) {
					b, err := self[geom.BoundingBox](obj)
					if err != nil {
						return nil, err
					}
					vertices := b.GetLocalVertices()
					return wrapLocations(r, vertices[:]), nil
				},
			},
			"get_world_vertices": {
				Params: required("bbox_transform"),
				Call: func(r *bridge.Registry, obj *bridge.Object, args []bridge.Value) (bridge.Value, error) {
					b, err := self[geom.BoundingBox](obj)
					if err != nil {
						return nil, err
					}
					t, err := toTransform(args[0])
					if err != nil {
						return nil, err
					}
					vertices := b.GetWorldVertices(t)
					return wrapLocations(r, vertices[:]), nil
				},
			},
		},
		Operators: withEquality(nil, toBoundingBox, geom.BoundingBox.Equal),
		Str:       str[geom.BoundingBox],
	}
}
