package components

import (
	"github.com/automoto/flyby/shared/gamemath"
	"github.com/yohamta/donburi"
)

// TransformData is the local transform of a node relative to its parent.
type TransformData struct {
	gamemath.Transform
}

var Transform = donburi.NewComponentType[TransformData]()
