package geom

// Location is a point in world space. It mirrors the Vector3D layout and
// converts to and from it without loss; arithmetic goes through Vector3D.
type Location struct {
	X float32 `json:"x" yaml:"x"`
	Y float32 `json:"y" yaml:"y"`
	Z float32 `json:"z" yaml:"z"`
}

func NewLocation(x, y, z float32) Location {
	return Location{X: x, Y: y, Z: z}
}

// Vector3D reinterprets l as a displacement from the origin.
func (l Location) Vector3D() Vector3D {
	return Vector3D{X: l.X, Y: l.Y, Z: l.Z}
}

// Add returns l translated by o.
func (l Location) Add(o Vector3D) Location {
	return l.Vector3D().Add(o).Location()
}

// Sub returns l translated by -o.
func (l Location) Sub(o Vector3D) Location {
	return l.Vector3D().Sub(o).Location()
}

// DistanceSquared returns the squared Euclidean distance between l and o.
func (l Location) DistanceSquared(o Location) float32 {
	return l.Vector3D().Sub(o.Vector3D()).SquaredLength()
}

// Distance returns the Euclidean distance between l and o.
func (l Location) Distance(o Location) float32 {
	return l.Vector3D().Sub(o.Vector3D()).Length()
}

// Equal compares components exactly.
func (l Location) Equal(o Location) bool {
	return l.X == o.X && l.Y == o.Y && l.Z == o.Z
}

func (l Location) String() string {
	return formatXYZ("Location", l.Vector3D())
}
