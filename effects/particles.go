package effects

import (
	"image/color"
	"math/rand/v2"

	"cogentcore.org/core/math32"
	"github.com/automoto/flyby/components"
)

// FieldConfig describes an ambient particle field.
type FieldConfig struct {
	Count     int
	Spread    math32.Vector3 // x and z are centered on the origin, y runs up from 0
	DriftXZ   float32        // horizontal speed is uniform in [-DriftXZ, DriftXZ]
	DriftY    float32        // vertical speed is uniform in [0, DriftY]
	LifeMin   float32
	LifeMax   float32
	Size      float32
	Opacity   float32
	FadeShare float32
	Color     color.RGBA
}

// NewParticleField allocates every particle once. Nothing is allocated while stepping.
func NewParticleField(cfg FieldConfig, rng *rand.Rand) components.ParticleFieldData {
	if rng == nil {
		rng = rand.New(rand.NewPCG(3, 4))
	}
	n := max(cfg.Count, 0)
	f := components.ParticleFieldData{
		Positions:  make([]math32.Vector3, n),
		Velocities: make([]math32.Vector3, n),
		Age:        make([]float32, n),
		Life:       make([]float32, n),
		Min:        math32.Vec3(-cfg.Spread.X/2, 0, -cfg.Spread.Z/2),
		Max:        math32.Vec3(cfg.Spread.X/2, cfg.Spread.Y, cfg.Spread.Z/2),
		Size:       cfg.Size,
		Opacity:    cfg.Opacity,
		FadeShare:  cfg.FadeShare,
		Color:      cfg.Color,
	}
	for i := range n {
		respawn(&f, i, cfg, rng)
		// spread initial ages so the field does not pulse in unison
		f.Age[i] = rng.Float32() * f.Life[i]
	}
	return f
}

func respawn(f *components.ParticleFieldData, i int, cfg FieldConfig, rng *rand.Rand) {
	f.Positions[i] = math32.Vec3(
		f.Min.X+rng.Float32()*(f.Max.X-f.Min.X),
		f.Min.Y+rng.Float32()*(f.Max.Y-f.Min.Y),
		f.Min.Z+rng.Float32()*(f.Max.Z-f.Min.Z),
	)
	f.Velocities[i] = math32.Vec3(
		(rng.Float32()*2-1)*cfg.DriftXZ,
		rng.Float32()*cfg.DriftY,
		(rng.Float32()*2-1)*cfg.DriftXZ,
	)
	f.Age[i] = 0
	life := cfg.LifeMin
	if cfg.LifeMax > cfg.LifeMin {
		life += rng.Float32() * (cfg.LifeMax - cfg.LifeMin)
	}
	f.Life[i] = max(life, 0.001)
}

// StepParticleField moves every particle by its velocity and recycles those
// that outlived their lifetime or left the field volume.
func StepParticleField(f *components.ParticleFieldData, cfg FieldConfig, dt float32, rng *rand.Rand) {
	for i := range f.Positions {
		p := f.Positions[i].Add(f.Velocities[i].MulScalar(dt))
		f.Positions[i] = p
		f.Age[i] += dt
		if f.Age[i] >= f.Life[i] || !inside(f, p) {
			respawn(f, i, cfg, rng)
			f.Recycled++
		}
	}
}

func inside(f *components.ParticleFieldData, p math32.Vector3) bool {
	return p.X >= f.Min.X && p.X <= f.Max.X &&
		p.Y >= f.Min.Y && p.Y <= f.Max.Y &&
		p.Z >= f.Min.Z && p.Z <= f.Max.Z
}

// ParticleAlpha is the opacity of particle i, faded in and out over FadeShare
// of its lifetime.
func ParticleAlpha(f *components.ParticleFieldData, i int) float32 {
	share := f.FadeShare
	if share <= 0 {
		return f.Opacity
	}
	t := f.Age[i] / f.Life[i]
	switch {
	case t < share:
		return f.Opacity * t / share
	case t > 1-share:
		return f.Opacity * max(0, 1-t) / share
	}
	return f.Opacity
}
