package geom

// BoundingBox is an oriented box given by its center and half-dimensions.
// Extent is expected to be non-negative but this is not enforced.
type BoundingBox struct {
	Location Location `json:"location" yaml:"location"`
	Extent   Vector3D `json:"extent" yaml:"extent"`
}

func NewBoundingBox(location Location, extent Vector3D) BoundingBox {
	return BoundingBox{Location: location, Extent: extent}
}

// Contains reports whether worldPoint lies inside the box once it is brought
// into the box frame described by boxToWorld. Faces count as inside.
func (b BoundingBox) Contains(worldPoint Location, boxToWorld Transform) bool {
	p := worldPoint.Vector3D()
	boxToWorld.InverseTransformPoint(&p)
	p.SubAssign(b.Location.Vector3D())

	return p.X >= -b.Extent.X && p.X <= b.Extent.X &&
		p.Y >= -b.Extent.Y && p.Y <= b.Extent.Y &&
		p.Z >= -b.Extent.Z && p.Z <= b.Extent.Z
}

// GetLocalVertices returns the eight corners in the box's own frame.
//
// Order is by sign of (x, y, z) with z varying fastest:
// ---, --+, -+-, -++, +--, +-+, ++-, +++.
func (b BoundingBox) GetLocalVertices() [8]Location {
	var out [8]Location
	e := b.Extent
	for i := range out {
		corner := Vector3D{X: -e.X, Y: -e.Y, Z: -e.Z}
		if i&4 != 0 {
			corner.X = e.X
		}
		if i&2 != 0 {
			corner.Y = e.Y
		}
		if i&1 != 0 {
			corner.Z = e.Z
		}
		out[i] = b.Location.Add(corner)
	}
	return out
}

// GetWorldVertices returns GetLocalVertices mapped through boxToWorld, in
// the same order.
func (b BoundingBox) GetWorldVertices(boxToWorld Transform) [8]Location {
	out := b.GetLocalVertices()
	for i := range out {
		out[i] = boxToWorld.TransformLocation(out[i])
	}
	return out
}

func (b BoundingBox) Equal(o BoundingBox) bool {
	return b.Location.Equal(o.Location) && b.Extent.Equal(o.Extent)
}

func (b BoundingBox) String() string {
	return "BoundingBox(" + b.Location.String() + ", " + formatXYZ("Extent", b.Extent) + ")"
}
