package components

import (
	"image/color"

	"cogentcore.org/core/math32"
	"github.com/automoto/flyby/shared/gamemath"
	"github.com/yohamta/donburi"
)

// LightData is the key light placed by auto-framing.
type LightData struct {
	Position math32.Vector3
	Target   math32.Vector3
	Range    float32
}

// ModelData describes the loaded asset attached under the model root.
// Bounds are in world space at the moment the asset was framed; Center is
// the same point in model-root space, for following the model as it moves.
type ModelData struct {
	Name       string
	Parts      int
	Bounds     gamemath.BoundingVolume
	Center     math32.Vector3
	Light      LightData
	Loaded     bool
	Degenerate bool
}

var Model = donburi.NewComponentType[ModelData]()

// PartData is the drawable box of one model node, in node space.
type PartData struct {
	Min, Max math32.Vector3
	Color    color.RGBA
}

var Part = donburi.NewComponentType[PartData]()
