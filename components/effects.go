package components

import (
	"image/color"

	"cogentcore.org/core/math32"
	"github.com/yohamta/donburi"
)

// EffectData is one short-lived visual instance (a ripple ring, a falling star).
type EffectData struct {
	Population string
	BirthTime  float64 // game seconds
	Duration   float64 // seconds until retirement
	Scale      float32
	Opacity    float32
	Large      bool // accent variant, drawn bigger
	Disposed   bool
}

var Effect = donburi.NewComponentType[EffectData]()

// RingData describes the drawable ring geometry of a ripple at scale 1.
type RingData struct {
	InnerRadius float32
	OuterRadius float32
	Color       color.RGBA
}

var Ring = donburi.NewComponentType[RingData]()

// ParticleFieldData is a fixed pool of drifting points inside Min..Max.
// Slices are parallel and sized once at creation.
type ParticleFieldData struct {
	Positions  []math32.Vector3
	Velocities []math32.Vector3 // units per second
	Age        []float32
	Life       []float32

	Min, Max  math32.Vector3
	Size      float32
	Opacity   float32
	FadeShare float32 // share of a lifetime spent fading in, and again fading out
	Color     color.RGBA

	Recycled int // total respawns, for the debug overlay
}

var ParticleField = donburi.NewComponentType[ParticleFieldData]()
