package gamemath

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeBoundingVolumeUnionsParts(t *testing.T) {
	parts := []Part{
		{Name: "fuselage", Corners: []math32.Vector3{math32.Vec3(-2, -1, -3), math32.Vec3(1, 0, 0)}},
		{Name: "wing", Corners: []math32.Vector3{math32.Vec3(0, 0, 0), math32.Vec3(2, 1, 3)}},
	}

	bv, err := ComputeBoundingVolume(parts)
	require.NoError(t, err)

	assert.Equal(t, math32.Vec3(-2, -1, -3), bv.Min)
	assert.Equal(t, math32.Vec3(2, 1, 3), bv.Max)
	assert.Equal(t, math32.Vec3(0, 0, 0), bv.Center())
	assert.Equal(t, math32.Vec3(4, 2, 6), bv.Size())
	assert.InDelta(t, 7.483, bv.Diagonal(), 0.001)
}

func TestComputeBoundingVolumeWithoutParts(t *testing.T) {
	bv, err := ComputeBoundingVolume(nil)
	assert.ErrorIs(t, err, ErrDegenerateGeometry)
	assert.True(t, bv.IsDegenerate())

	_, err = ComputeBoundingVolume([]Part{{Name: "empty"}})
	assert.ErrorIs(t, err, ErrDegenerateGeometry)
}

func TestSinglePointVolumeIsDegenerate(t *testing.T) {
	bv, err := ComputeBoundingVolume([]Part{{Corners: []math32.Vector3{math32.Vec3(1, 1, 1)}}})
	require.NoError(t, err)
	assert.True(t, bv.IsDegenerate())
	assert.Equal(t, math32.Vec3(1, 1, 1), bv.Center())
}

func TestCornersSpanVolume(t *testing.T) {
	bv := NewBoundingVolume(math32.Vec3(-1, -2, -3), math32.Vec3(1, 2, 3))
	corners := bv.Corners()

	again, err := ComputeBoundingVolume([]Part{{Corners: corners[:]}})
	require.NoError(t, err)
	assert.Equal(t, bv, again)

	for _, e := range BoxEdges {
		a, b := corners[e[0]], corners[e[1]]
		diff := b.Sub(a)
		nonZero := 0
		for _, c := range []float32{diff.X, diff.Y, diff.Z} {
			if c != 0 {
				nonZero++
			}
		}
		assert.Equal(t, 1, nonZero, "edge %v must be axis aligned", e)
	}
}

func TestBoxFacesPointOutward(t *testing.T) {
	b := NewBoundingVolume(math32.Vec3(-1, -2, -3), math32.Vec3(1, 2, 3))
	c := b.Corners()
	center := b.Center()
	for i, f := range BoxFaces {
		a, p, q := c[f[0]], c[f[1]], c[f[2]]
		n := p.Sub(a).Cross(q.Sub(a))
		mid := a.Add(q).MulScalar(0.5)
		assert.Greater(t, n.Dot(mid.Sub(center)), float32(0), "face %d", i)
	}
}
