package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoundingBox_Contains(t *testing.T) {
	box := NewBoundingBox(Location{}, NewVector3D(1, 1, 1))
	identity := Transform{}

	assert.True(t, box.Contains(NewLocation(0.5, 0.5, 0.5), identity))
	assert.True(t, box.Contains(NewLocation(1, -1, 1), identity), "faces are inside")
	assert.False(t, box.Contains(NewLocation(2, 0, 0), identity))
	assert.False(t, box.Contains(NewLocation(0, 0, -1.01), identity))
}

func TestBoundingBox_ContainsWithTransform(t *testing.T) {
	box := NewBoundingBox(Location{}, NewVector3D(2, 0.5, 1))
	boxToWorld := NewTransform(NewLocation(100, 0, 0), NewRotation(0, 90, 0))

	// The long axis now points along world Y.
	assert.True(t, box.Contains(NewLocation(100, 1.5, 0), boxToWorld))
	assert.False(t, box.Contains(NewLocation(101.5, 0, 0), boxToWorld))
}

func TestBoundingBox_ContainsOffsetCenter(t *testing.T) {
	box := NewBoundingBox(NewLocation(0, 0, 1), NewVector3D(1, 1, 1))

	assert.True(t, box.Contains(NewLocation(0, 0, 1.9), Transform{}))
	assert.False(t, box.Contains(NewLocation(0, 0, -0.5), Transform{}))
}

func TestBoundingBox_GetLocalVertices(t *testing.T) {
	box := NewBoundingBox(Location{}, NewVector3D(1, 2, 3))

	assert.Equal(t, [8]Location{
		NewLocation(-1, -2, -3),
		NewLocation(-1, -2, 3),
		NewLocation(-1, 2, -3),
		NewLocation(-1, 2, 3),
		NewLocation(1, -2, -3),
		NewLocation(1, -2, 3),
		NewLocation(1, 2, -3),
		NewLocation(1, 2, 3),
	}, box.GetLocalVertices())
}

func TestBoundingBox_GetWorldVertices(t *testing.T) {
	box := NewBoundingBox(NewLocation(1, 0, 0), NewVector3D(1, 1, 1))
	boxToWorld := NewTransform(NewLocation(0, 0, 10), Rotation{})

	local := box.GetLocalVertices()
	world := box.GetWorldVertices(boxToWorld)
	for i := range world {
		assert.Equal(t, local[i].Add(NewVector3D(0, 0, 10)), world[i])
		assert.True(t, box.Contains(world[i], boxToWorld))
	}
}

func TestBoundingBox_String(t *testing.T) {
	box := NewBoundingBox(NewLocation(1, 2, 3), NewVector3D(4, 5, 6))
	assert.Equal(t,
		"BoundingBox(Location(x=1.000000, y=2.000000, z=3.000000), Extent(x=4.000000, y=5.000000, z=6.000000))",
		box.String())
	assert.True(t, box.Equal(box))
	assert.False(t, box.Equal(BoundingBox{}))
}
