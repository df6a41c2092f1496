package gamemath

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceForFieldOfViewMatchesTangent(t *testing.T) {
	fov := math32.DegToRad(45)
	for _, half := range []float32{0.01, 1, 3.74, 250} {
		d, err := DistanceForFieldOfView(half, fov)
		require.NoError(t, err)
		assert.Greater(t, d, float32(0))
		// projected half extent at distance d must equal the requested one
		assert.InDelta(t, half, d*math32.Tan(fov/2), float64(half)*1e-5)
	}
}

func TestDistanceForFieldOfViewScenario(t *testing.T) {
	bv := NewBoundingVolume(math32.Vec3(-2, -1, -3), math32.Vec3(2, 1, 3))
	d, err := DistanceForFieldOfView(bv.Diagonal()*0.5, math32.DegToRad(45))
	require.NoError(t, err)
	assert.InDelta(t, 9.03, d, 0.01)
}

func TestDistanceForFieldOfViewRejectsInvalidInput(t *testing.T) {
	_, err := DistanceForFieldOfView(1, 0)
	assert.ErrorIs(t, err, ErrInvalidFieldOfView)
	_, err = DistanceForFieldOfView(1, math32.Pi)
	assert.ErrorIs(t, err, ErrInvalidFieldOfView)
	_, err = DistanceForFieldOfView(0, 1)
	assert.ErrorIs(t, err, ErrDegenerateGeometry)
	_, err = DistanceForFieldOfView(-2, 1)
	assert.ErrorIs(t, err, ErrDegenerateGeometry)
}

func TestDirectionBetween(t *testing.T) {
	d := DirectionBetween(math32.Vec3(0, 0, 0), math32.Vec3(0, 3, 4))
	assert.InDelta(t, 1, d.Length(), 1e-6)
	assert.InDelta(t, 0.6, d.Y, 1e-6)
	assert.InDelta(t, 0.8, d.Z, 1e-6)

	same := math32.Vec3(1, 2, 3)
	assert.Equal(t, FallbackAxis, DirectionBetween(same, same))
}

func TestTransformApplyOrder(t *testing.T) {
	tr := Transform{
		Position: math32.Vec3(0, 1, 0),
		Rotation: math32.Vec3(0, 0, math32.Pi/2),
		Scale:    math32.Vec3(2, 2, 2),
	}
	// scale to (2,0,0), rotate 90° about z to (0,2,0), translate to (0,3,0)
	p := tr.Apply(math32.Vec3(1, 0, 0))
	assert.InDelta(t, 0, p.X, 1e-5)
	assert.InDelta(t, 3, p.Y, 1e-5)
	assert.InDelta(t, 0, p.Z, 1e-5)

	assert.Equal(t, math32.Vec3(5, 6, 7), IdentityTransform().Apply(math32.Vec3(5, 6, 7)))
}

func TestProjectorCentersTarget(t *testing.T) {
	p := NewProjector(math32.Vec3(0, 0, 10), math32.Vec3(0, 0, 0), math32.Vec3(0, 1, 0), 45, 1.5, 0.1, 100)

	x, y, depth, ok := p.Project(math32.Vec3(0, 0, 0))
	require.True(t, ok)
	assert.InDelta(t, 0, x, 1e-6)
	assert.InDelta(t, 0, y, 1e-6)
	assert.InDelta(t, 10, depth, 1e-5)

	// a point at the top edge of the vertical field of view lands on y=1
	top := 10 * math32.Tan(math32.DegToRad(22.5))
	_, y, _, ok = p.Project(math32.Vec3(0, top, 0))
	require.True(t, ok)
	assert.InDelta(t, 1, y, 1e-4)

	_, _, _, ok = p.Project(math32.Vec3(0, 0, 20))
	assert.False(t, ok, "points behind the camera are clipped")
}

func TestProjectorDefaultsZeroUp(t *testing.T) {
	eye, target := math32.Vec3(3, 2, 10), math32.Vec3(0, 0, 0)
	want := NewProjector(eye, target, math32.Vec3(0, 1, 0), 45, 1, 0.1, 100)
	got := NewProjector(eye, target, math32.Vector3{}, 45, 1, 0.1, 100)

	pt := math32.Vec3(1, 1, 0)
	wx, wy, _, _ := want.Project(pt)
	gx, gy, _, ok := got.Project(pt)
	require.True(t, ok)
	assert.InDelta(t, wx, gx, 1e-6)
	assert.InDelta(t, wy, gy, 1e-6)
}

func TestZeroRotationIsSkipped(t *testing.T) {
	tr := Transform{Position: math32.Vec3(1, 0, 0), Scale: math32.Vec3(1, 1, 1)}
	assert.Equal(t, math32.Vec3(2, 2, 2), tr.Apply(math32.Vec3(1, 2, 2)))
}

func TestToScreen(t *testing.T) {
	x, y := ToScreen(0, 0, 640, 360)
	assert.Equal(t, float32(320), x)
	assert.Equal(t, float32(180), y)
	x, y = ToScreen(-1, 1, 640, 360)
	assert.Equal(t, float32(0), x)
	assert.Equal(t, float32(0), y)
}

func TestEulerFromQuat(t *testing.T) {
	half := math32.DegToRad(30) / 2
	e := EulerFromQuat(math32.Sin(half), 0, 0, math32.Cos(half))
	assert.InDelta(t, math32.DegToRad(30), e.X, 1e-5)
	assert.InDelta(t, 0, e.Y, 1e-5)
	assert.InDelta(t, 0, e.Z, 1e-5)

	half = math32.DegToRad(-45) / 2
	e = EulerFromQuat(0, 0, math32.Sin(half), math32.Cos(half))
	assert.InDelta(t, math32.DegToRad(-45), e.Z, 1e-5)

	assert.Equal(t, math32.Vector3{}, EulerFromQuat(0, 0, 0, 1))
}
