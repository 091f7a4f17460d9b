package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocation_Vector3DConversion(t *testing.T) {
	v := NewVector3D(1.25, -3.5, 1e6)
	l := v.Location()

	assert.Equal(t, NewLocation(1.25, -3.5, 1e6), l)
	assert.Equal(t, v, l.Vector3D())
}

func TestLocation_Distance(t *testing.T) {
	a := NewLocation(1, 1, 1)
	b := NewLocation(4, 5, 1)

	assert.Equal(t, float32(5), a.Distance(b))
	assert.Equal(t, float32(25), a.DistanceSquared(b))
	assert.Equal(t, float32(0), a.Distance(a))
}

func TestRotation_ForwardVector(t *testing.T) {
	tests := []struct {
		name     string
		rotation Rotation
		expected Vector3D
	}{
		{"identity", Rotation{}, NewVector3D(1, 0, 0)},
		{"yaw 90", NewRotation(0, 90, 0), NewVector3D(0, 1, 0)},
		{"yaw 180", NewRotation(0, 180, 0), NewVector3D(-1, 0, 0)},
		{"pitch 90", NewRotation(90, 0, 0), NewVector3D(0, 0, 1)},
		{"roll ignored", NewRotation(0, 0, 45), NewVector3D(1, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertVector3DInDelta(t, tt.expected, tt.rotation.GetForwardVector())
		})
	}
}

func TestRotation_BasisIsOrthonormal(t *testing.T) {
	r := NewRotation(12, -73, 31)
	f, rt, up := r.GetForwardVector(), r.GetRightVector(), r.GetUpVector()

	assert.InDelta(t, 1, f.Length(), tolerance)
	assert.InDelta(t, 1, rt.Length(), tolerance)
	assert.InDelta(t, 1, up.Length(), tolerance)
	assert.InDelta(t, 0, f.Dot(rt), tolerance)
	assert.InDelta(t, 0, f.Dot(up), tolerance)
	assert.InDelta(t, 0, rt.Dot(up), tolerance)
}

func TestRotation_RotateMatchesBasis(t *testing.T) {
	r := NewRotation(20, 45, -10)

	assertVector3DInDelta(t, r.GetForwardVector(), r.RotateVector(NewVector3D(1, 0, 0)))
	assertVector3DInDelta(t, r.GetRightVector(), r.RotateVector(NewVector3D(0, 1, 0)))
	assertVector3DInDelta(t, r.GetUpVector(), r.RotateVector(NewVector3D(0, 0, 1)))
}

func TestRotation_InverseRotate(t *testing.T) {
	r := NewRotation(-33, 120, 7)
	p := NewVector3D(3, -2, 5)

	assertVector3DInDelta(t, p, r.InverseRotateVector(r.RotateVector(p)))
}

func TestRotation_StringAndEquality(t *testing.T) {
	r := NewRotation(1, 2, 3)
	assert.Equal(t, "Rotation(pitch=1.000000, yaw=2.000000, roll=3.000000)", r.String())
	assert.True(t, r.Equal(NewRotation(1, 2, 3)))
	assert.False(t, r.Equal(NewRotation(1, 2, 4)))
}

func TestTransform_IdentityLeavesPointsAlone(t *testing.T) {
	identity := Transform{}
	for _, p := range []Vector3D{{}, NewVector3D(1, 2, 3), NewVector3D(-7.5, 1e4, -0.25)} {
		got := p
		identity.TransformPoint(&got)
		assert.Equal(t, p, got)
	}
}

func TestTransform_RotateThenTranslate(t *testing.T) {
	tr := NewTransform(NewLocation(10, 0, 0), NewRotation(0, 90, 0))
	p := NewVector3D(1, 0, 0)
	tr.TransformPoint(&p)

	assertVector3DInDelta(t, NewVector3D(10, 1, 0), p)

	tr.InverseTransformPoint(&p)
	assertVector3DInDelta(t, NewVector3D(1, 0, 0), p)
}

func TestTransform_TransformPointsInPlace(t *testing.T) {
	tr := NewTransform(NewLocation(1, 2, 3), Rotation{})
	points := []Vector3D{NewVector3D(0, 0, 0), NewVector3D(1, 1, 1), NewVector3D(-1, 0, 2)}

	tr.TransformPoints(points)

	assert.Equal(t, []Vector3D{
		NewVector3D(1, 2, 3),
		NewVector3D(2, 3, 4),
		NewVector3D(0, 2, 5),
	}, points)
}

func TestTransform_TransformLocationReturnsCopy(t *testing.T) {
	tr := NewTransform(NewLocation(0, 0, 5), Rotation{})
	l := NewLocation(1, 1, 1)

	assert.Equal(t, NewLocation(1, 1, 6), tr.TransformLocation(l))
	assert.Equal(t, NewLocation(1, 1, 1), l)
}

func TestTransform_InverseTransformLocationRoundTrip(t *testing.T) {
	tr := NewTransform(NewLocation(3, -2, 1), NewRotation(10, 45, -20))
	l := NewLocation(4, 5, 6)

	back := tr.InverseTransformLocation(tr.TransformLocation(l))
	assert.InDelta(t, l.X, back.X, 1e-4)
	assert.InDelta(t, l.Y, back.Y, 1e-4)
	assert.InDelta(t, l.Z, back.Z, 1e-4)
}

func TestTransform_String(t *testing.T) {
	tr := NewTransform(NewLocation(1, 2, 3), NewRotation(4, 5, 6))
	assert.Equal(t,
		"Transform(Location(x=1.000000, y=2.000000, z=3.000000), Rotation(pitch=4.000000, yaw=5.000000, roll=6.000000))",
		tr.String())
	assert.True(t, tr.Equal(tr))
	assert.False(t, tr.Equal(Transform{}))
}
