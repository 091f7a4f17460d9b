package geom

// Vector2D is a two component float vector.
type Vector2D struct {
	X float32 `json:"x" yaml:"x"`
	Y float32 `json:"y" yaml:"y"`
}

func NewVector2D(x, y float32) Vector2D {
	return Vector2D{X: x, Y: y}
}

// Add returns v + o.
func (v Vector2D) Add(o Vector2D) Vector2D {
	return Vector2D{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vector2D) Sub(o Vector2D) Vector2D {
	return Vector2D{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v * s.
func (v Vector2D) Scale(s float32) Vector2D {
	return Vector2D{X: v.X * s, Y: v.Y * s}
}

// Div returns v / s. Division by zero follows IEEE 754.
func (v Vector2D) Div(s float32) Vector2D {
	return Vector2D{X: v.X / s, Y: v.Y / s}
}

// Reciprocal returns s / v, component-wise.
func (v Vector2D) Reciprocal(s float32) Vector2D {
	return Vector2D{X: s / v.X, Y: s / v.Y}
}

func (v *Vector2D) AddAssign(o Vector2D) {
	v.X += o.X
	v.Y += o.Y
}

func (v *Vector2D) SubAssign(o Vector2D) {
	v.X -= o.X
	v.Y -= o.Y
}

func (v *Vector2D) ScaleAssign(s float32) {
	v.X *= s
	v.Y *= s
}

func (v *Vector2D) DivAssign(s float32) {
	v.X /= s
	v.Y /= s
}

func (v Vector2D) SquaredLength() float32 {
	return v.X*v.X + v.Y*v.Y
}

func (v Vector2D) Length() float32 {
	return sqrt32(v.SquaredLength())
}

// MakeUnitVector returns v scaled to length one.
func (v Vector2D) MakeUnitVector() (Vector2D, error) {
	length := v.Length()
	if length == 0 {
		return Vector2D{}, ErrZeroLength
	}
	return v.Scale(1 / length), nil
}

// Equal compares components exactly.
func (v Vector2D) Equal(o Vector2D) bool {
	return v.X == o.X && v.Y == o.Y
}

func (v Vector2D) String() string {
	return "Vector2D(x=" + formatFloat(float64(v.X)) + ", y=" + formatFloat(float64(v.Y)) + ")"
}
