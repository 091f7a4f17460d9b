package geom

// Rotation holds pitch, yaw and roll in degrees. Angles are not wrapped.
//
// The axis convention is left-handed, Z up: yaw turns around Z, pitch around
// Y and roll around X, applied as Rz(yaw) * Ry(pitch) * Rx(roll).
type Rotation struct {
	Pitch float32 `json:"pitch" yaml:"pitch"`
	Yaw   float32 `json:"yaw" yaml:"yaw"`
	Roll  float32 `json:"roll" yaml:"roll"`
}

func NewRotation(pitch, yaw, roll float32) Rotation {
	return Rotation{Pitch: pitch, Yaw: yaw, Roll: roll}
}

type rotationTerms struct {
	sp, cp, sy, cy, sr, cr float32
}

func (r Rotation) terms() rotationTerms {
	var t rotationTerms
	t.sp, t.cp = sincos(r.Pitch)
	t.sy, t.cy = sincos(r.Yaw)
	t.sr, t.cr = sincos(r.Roll)
	return t
}

// GetForwardVector returns the unit X axis rotated by r.
func (r Rotation) GetForwardVector() Vector3D {
	t := r.terms()
	return Vector3D{X: t.cy * t.cp, Y: t.sy * t.cp, Z: t.sp}
}

// GetRightVector returns the unit Y axis rotated by r.
func (r Rotation) GetRightVector() Vector3D {
	t := r.terms()
	return Vector3D{
		X: t.cy*t.sp*t.sr - t.sy*t.cr,
		Y: t.sy*t.sp*t.sr + t.cy*t.cr,
		Z: -t.cp * t.sr,
	}
}

// GetUpVector returns the unit Z axis rotated by r.
func (r Rotation) GetUpVector() Vector3D {
	t := r.terms()
	return Vector3D{
		X: -t.cy*t.sp*t.cr - t.sy*t.sr,
		Y: -t.sy*t.sp*t.cr + t.cy*t.sr,
		Z: t.cp * t.cr,
	}
}

// RotateVector returns p rotated by r.
func (r Rotation) RotateVector(p Vector3D) Vector3D {
	t := r.terms()
	return Vector3D{
		X: p.X*(t.cp*t.cy) + p.Y*(t.cy*t.sp*t.sr-t.sy*t.cr) + p.Z*(-t.cy*t.sp*t.cr-t.sy*t.sr),
		Y: p.X*(t.cp*t.sy) + p.Y*(t.sy*t.sp*t.sr+t.cy*t.cr) + p.Z*(-t.sy*t.sp*t.cr+t.cy*t.sr),
		Z: p.X*t.sp + p.Y*(-t.cp*t.sr) + p.Z*(t.cp*t.cr),
	}
}

// InverseRotateVector undoes RotateVector by applying the transposed matrix.
func (r Rotation) InverseRotateVector(p Vector3D) Vector3D {
	return Vector3D{
		X: p.Dot(r.GetForwardVector()),
		Y: p.Dot(r.GetRightVector()),
		Z: p.Dot(r.GetUpVector()),
	}
}

// Equal compares angles exactly.
func (r Rotation) Equal(o Rotation) bool {
	return r.Pitch == o.Pitch && r.Yaw == o.Yaw && r.Roll == o.Roll
}

func (r Rotation) String() string {
	return "Rotation(pitch=" + formatFloat(float64(r.Pitch)) +
		", yaw=" + formatFloat(float64(r.Yaw)) +
		", roll=" + formatFloat(float64(r.Roll)) + ")"
}
