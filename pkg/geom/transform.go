package geom

// Transform places a local frame in the world: rotate, then translate.
type Transform struct {
	Location Location `json:"location" yaml:"location"`
	Rotation Rotation `json:"rotation" yaml:"rotation"`
}

func NewTransform(location Location, rotation Rotation) Transform {
	return Transform{Location: location, Rotation: rotation}
}

func (t Transform) GetForwardVector() Vector3D {
	return t.Rotation.GetForwardVector()
}

func (t Transform) GetRightVector() Vector3D {
	return t.Rotation.GetRightVector()
}

func (t Transform) GetUpVector() Vector3D {
	return t.Rotation.GetUpVector()
}

// TransformPoint maps p from the local frame into the world, writing the
// result back through p.
func (t Transform) TransformPoint(p *Vector3D) {
	out := t.Rotation.RotateVector(*p)
	out.AddAssign(t.Location.Vector3D())
	*p = out
}

// InverseTransformPoint maps p from the world into the local frame, writing
// the result back through p.
func (t Transform) InverseTransformPoint(p *Vector3D) {
	out := p.Sub(t.Location.Vector3D())
	*p = t.Rotation.InverseRotateVector(out)
}

// TransformPoints applies TransformPoint to every element of points in
// order. The caller's slice is mutated; its length and order are unchanged.
func (t Transform) TransformPoints(points []Vector3D) {
	for i := range points {
		t.TransformPoint(&points[i])
	}
}

// TransformLocation is TransformPoint for a value, leaving the input as is.
func (t Transform) TransformLocation(l Location) Location {
	p := l.Vector3D()
	t.TransformPoint(&p)
	return p.Location()
}

// InverseTransformLocation is InverseTransformPoint for a value.
func (t Transform) InverseTransformLocation(l Location) Location {
	p := l.Vector3D()
	t.InverseTransformPoint(&p)
	return p.Location()
}

func (t Transform) Equal(o Transform) bool {
	return t.Location.Equal(o.Location) && t.Rotation.Equal(o.Rotation)
}

func (t Transform) String() string {
	return "Transform(" + t.Location.String() + ", " + t.Rotation.String() + ")"
}
