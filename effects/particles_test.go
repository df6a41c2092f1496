package effects

import (
	"image/color"
	"math/rand/v2"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldConfig() FieldConfig {
	return FieldConfig{
		Count:     1000,
		Spread:    math32.Vec3(100, 50, 100),
		DriftXZ:   0.6,
		DriftY:    0.6,
		LifeMin:   2,
		LifeMax:   4,
		Size:      0.15,
		Opacity:   0.6,
		FadeShare: 0.2,
		Color:     color.RGBA{R: 0x88, G: 0xcc, B: 0xff, A: 0xff},
	}
}

func TestParticleFieldStaysInsideVolume(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	cfg := fieldConfig()
	f := NewParticleField(cfg, rng)
	require.Len(t, f.Positions, 1000)
	assert.Equal(t, math32.Vec3(-50, 0, -50), f.Min)
	assert.Equal(t, math32.Vec3(50, 50, 50), f.Max)

	first := &f.Positions[0]
	for i := 0; i < 600; i++ {
		StepParticleField(&f, cfg, 1.0/60, rng)
	}
	assert.Same(t, first, &f.Positions[0], "stepping never reallocates")
	assert.Greater(t, f.Recycled, 0)

	for i, p := range f.Positions {
		assert.True(t, inside(&f, p), "particle %d left the volume: %v", i, p)
		assert.Less(t, f.Age[i], f.Life[i])
		v := f.Velocities[i]
		assert.LessOrEqual(t, math32.Abs(v.X), cfg.DriftXZ)
		assert.GreaterOrEqual(t, v.Y, float32(0))
		assert.LessOrEqual(t, v.Y, cfg.DriftY)
	}
}

func TestParticleAlphaFades(t *testing.T) {
	f := NewParticleField(fieldConfig(), nil)
	f.Life[0] = 10

	f.Age[0] = 0
	assert.Equal(t, float32(0), ParticleAlpha(&f, 0))
	f.Age[0] = 1
	assert.InDelta(t, 0.3, ParticleAlpha(&f, 0), 1e-6)
	f.Age[0] = 5
	assert.InDelta(t, 0.6, ParticleAlpha(&f, 0), 1e-6)
	f.Age[0] = 9
	assert.InDelta(t, 0.3, ParticleAlpha(&f, 0), 1e-6)

	f.FadeShare = 0
	assert.InDelta(t, 0.6, ParticleAlpha(&f, 0), 1e-6)
}

func TestEmptyField(t *testing.T) {
	cfg := fieldConfig()
	cfg.Count = 0
	f := NewParticleField(cfg, nil)
	assert.Empty(t, f.Positions)
	StepParticleField(&f, cfg, 1, nil)
}
