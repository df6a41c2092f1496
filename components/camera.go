package components

import (
	"cogentcore.org/core/math32"
	"github.com/yohamta/donburi"
)

// CameraData is the perspective camera state. FOV is the vertical field of view in degrees.
type CameraData struct {
	Position math32.Vector3
	Target   math32.Vector3
	Up       math32.Vector3
	FOV      float32
	Near     float32
	Far      float32
	Aspect   float32

	Follow bool // re-aim at the model every frame
	Framed bool // auto-framing has placed the camera
}

var Camera = donburi.NewComponentType[CameraData]()
