package framing

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/automoto/flyby/components"
	"github.com/automoto/flyby/shared/gamemath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func camera() components.CameraData {
	return components.CameraData{
		Position: math32.Vec3(0, 0, -10),
		FOV:      45,
		Near:     0.1,
		Far:      10000,
		Aspect:   16.0 / 9,
	}
}

func scenarioBox() gamemath.BoundingVolume {
	return gamemath.NewBoundingVolume(math32.Vec3(-2, -1, -3), math32.Vec3(2, 1, 3))
}

func TestFrameScenario(t *testing.T) {
	res, err := Frame(scenarioBox(), camera(), DefaultOptions())
	require.NoError(t, err)

	assert.InDelta(t, 7.483, res.Size, 1e-3)
	assert.InDelta(t, 9.03, res.Distance, 1e-2)
	assert.False(t, res.Degenerate)

	// seed sits at -Z, so toward-center continues to +Z
	assert.InDelta(t, 0, res.Position.X, 1e-5)
	assert.InDelta(t, res.Distance, res.Position.Z, 1e-4)
	assert.Equal(t, math32.Vec3(0, 0, 0), res.Target)

	assert.InDelta(t, res.Distance, res.Position.Sub(res.Target).Length(), 1e-4)
	assert.Less(t, res.Near, res.Distance-res.Size/2, "near plane never clips the asset")
	assert.Greater(t, res.Far, res.Distance+res.Size/2)
}

func TestFrameFillsRequestedShare(t *testing.T) {
	cam := camera()
	res, err := Frame(scenarioBox(), cam, DefaultOptions())
	require.NoError(t, err)

	// a point half the diagonal above the center lands on the top edge
	p := gamemath.NewProjector(res.Position, res.Target, math32.Vec3(0, 1, 0), cam.FOV, 1, res.Near, res.Far)
	_, y, _, ok := p.Project(res.Target.Add(math32.Vec3(0, res.Size*0.5, 0)))
	require.True(t, ok)
	assert.InDelta(t, 1, y, 1e-4)
}

func TestFrameIsIdempotent(t *testing.T) {
	a, err := Frame(scenarioBox(), camera(), DefaultOptions())
	require.NoError(t, err)
	b, err := Frame(scenarioBox(), camera(), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, a, b)

	// applying the result and framing again from the placed camera keeps the distance
	cam := camera()
	a.Apply(&cam)
	assert.True(t, cam.Framed)
	c, err := Frame(scenarioBox(), cam, Options{Mode: AwayFromCenter, Factor: 0.5, DefaultDistance: 10})
	require.NoError(t, err)
	assert.InDelta(t, a.Position.Z, c.Position.Z, 1e-4)
}

func TestDegenerateBoundsFallBack(t *testing.T) {
	point := gamemath.NewBoundingVolume(math32.Vec3(1, 2, 3), math32.Vec3(1, 2, 3))
	opt := DefaultOptions()
	opt.DefaultDistance = 12

	res, err := Frame(point, camera(), opt)
	require.NoError(t, err)
	assert.True(t, res.Degenerate)
	assert.Equal(t, float32(12), res.Distance)
	for _, v := range []float32{res.Position.X, res.Position.Y, res.Position.Z, res.Near, res.Far} {
		assert.False(t, math32.IsNaN(v) || math32.IsInf(v, 0))
	}
	assert.InDelta(t, 12, res.Position.Sub(math32.Vec3(1, 2, 3)).Length(), 1e-4)
	assert.Greater(t, res.Far, res.Near)

	empty, err := Frame(gamemath.BoundingVolume{}, camera(), opt)
	require.NoError(t, err)
	assert.True(t, empty.Degenerate)
}

func TestSeedAtCenterUsesFallbackAxis(t *testing.T) {
	cam := camera()
	cam.Position = math32.Vec3(0, 0, 0)
	res, err := Frame(scenarioBox(), cam, DefaultOptions())
	require.NoError(t, err)
	assert.InDelta(t, res.Distance, res.Position.Z, 1e-4)
}

func TestInvalidFOVFallsBack(t *testing.T) {
	cam := camera()
	cam.FOV = 0
	res, err := Frame(scenarioBox(), cam, DefaultOptions())
	require.NoError(t, err)
	assert.True(t, res.FOVFallback)
	assert.InDelta(t, 9.03, res.Distance, 1e-2)

	res.Apply(&cam)
	assert.Equal(t, DefaultFOV, cam.FOV)
}

func TestModes(t *testing.T) {
	opt := DefaultOptions()

	opt.Mode = AwayFromCenter
	away, err := Frame(scenarioBox(), camera(), opt)
	require.NoError(t, err)
	assert.Less(t, away.Position.Z, float32(0), "stays on the seed side")

	opt.Mode = OffsetAngle
	opt.Yaw = 90
	side, err := Frame(scenarioBox(), camera(), opt)
	require.NoError(t, err)
	assert.InDelta(t, side.Distance, side.Position.X, 1e-3)
	assert.InDelta(t, 0, side.Position.Z, 1e-3)

	opt.Yaw = 0
	opt.Pitch = 30
	above, err := Frame(scenarioBox(), camera(), opt)
	require.NoError(t, err)
	assert.InDelta(t, above.Distance*0.5, above.Position.Y, 1e-3)

	opt.Pitch = 0
	opt.Offset = math32.Vec3(0, 1, 0)
	offset, err := Frame(scenarioBox(), camera(), opt)
	require.NoError(t, err)
	assert.InDelta(t, 1, offset.Position.Y, 1e-4)
}

func TestLightPlacement(t *testing.T) {
	res, err := Frame(scenarioBox(), camera(), DefaultOptions())
	require.NoError(t, err)
	s := res.Size
	assert.InDelta(t, 2, res.Light.Position.X, 1e-4)
	assert.InDelta(t, 2*s, res.Light.Position.Y, 1e-4)
	assert.InDelta(t, 1.5*s, res.Light.Position.Z, 1e-4)
	assert.InDelta(t, 10*s, res.Light.Range, 1e-3)
}

func TestInvalidOptions(t *testing.T) {
	_, err := Frame(scenarioBox(), camera(), Options{Factor: 0, DefaultDistance: 1})
	assert.Error(t, err)
	_, err = Frame(scenarioBox(), camera(), Options{Factor: 0.5})
	assert.Error(t, err)

	m, err := ParseMode("offset-angle")
	require.NoError(t, err)
	assert.Equal(t, OffsetAngle, m)
	_, err = ParseMode("orbit")
	assert.Error(t, err)
}
