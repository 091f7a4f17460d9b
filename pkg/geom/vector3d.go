package geom

// Vector3D is a three component float vector, a displacement rather than a
// position. See Location for the positional counterpart.
type Vector3D struct {
	X float32 `json:"x" yaml:"x"`
	Y float32 `json:"y" yaml:"y"`
	Z float32 `json:"z" yaml:"z"`
}

func NewVector3D(x, y, z float32) Vector3D {
	return Vector3D{X: x, Y: y, Z: z}
}

// Add returns v + o.
func (v Vector3D) Add(o Vector3D) Vector3D {
	return Vector3D{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Sub returns v - o.
func (v Vector3D) Sub(o Vector3D) Vector3D {
	return Vector3D{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Scale returns v * s.
func (v Vector3D) Scale(s float32) Vector3D {
	return Vector3D{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Div returns v / s. Division by zero follows IEEE 754.
func (v Vector3D) Div(s float32) Vector3D {
	return Vector3D{X: v.X / s, Y: v.Y / s, Z: v.Z / s}
}

// Reciprocal returns s / v, component-wise.
func (v Vector3D) Reciprocal(s float32) Vector3D {
	return Vector3D{X: s / v.X, Y: s / v.Y, Z: s / v.Z}
}

func (v *Vector3D) AddAssign(o Vector3D) {
	v.X += o.X
	v.Y += o.Y
	v.Z += o.Z
}

func (v *Vector3D) SubAssign(o Vector3D) {
	v.X -= o.X
	v.Y -= o.Y
	v.Z -= o.Z
}

func (v *Vector3D) ScaleAssign(s float32) {
	v.X *= s
	v.Y *= s
	v.Z *= s
}

func (v *Vector3D) DivAssign(s float32) {
	v.X /= s
	v.Y /= s
	v.Z /= s
}

// Dot returns the dot product of v and o.
func (v Vector3D) Dot(o Vector3D) float32 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the cross product of v and o.
func (v Vector3D) Cross(o Vector3D) Vector3D {
	return Vector3D{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

func (v Vector3D) SquaredLength() float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func (v Vector3D) Length() float32 {
	return sqrt32(v.SquaredLength())
}

// MakeUnitVector returns v scaled to length one.
func (v Vector3D) MakeUnitVector() (Vector3D, error) {
	length := v.Length()
	if length == 0 {
		return Vector3D{}, ErrZeroLength
	}
	return v.Scale(1 / length), nil
}

// Location reinterprets v as a world position. The conversion is lossless.
func (v Vector3D) Location() Location {
	return Location{X: v.X, Y: v.Y, Z: v.Z}
}

// Equal compares components exactly.
func (v Vector3D) Equal(o Vector3D) bool {
	return v.X == o.X && v.Y == o.Y && v.Z == o.Z
}

func (v Vector3D) String() string {
	return formatXYZ("Vector3D", v)
}

func formatXYZ(name string, v Vector3D) string {
	return name +
		"(x=" + formatFloat(float64(v.X)) +
		", y=" + formatFloat(float64(v.Y)) +
		", z=" + formatFloat(float64(v.Z)) + ")"
}
