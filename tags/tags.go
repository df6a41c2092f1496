package tags

import "github.com/yohamta/donburi"

var (
	SceneRoot     = donburi.NewTag().SetName("SceneRoot")
	DragWrapper   = donburi.NewTag().SetName("DragWrapper")
	ModelWrapper  = donburi.NewTag().SetName("ModelWrapper")
	ModelRoot     = donburi.NewTag().SetName("ModelRoot")
	ModelPart     = donburi.NewTag().SetName("ModelPart")
	RippleGroup   = donburi.NewTag().SetName("RippleGroup")
	Ripple        = donburi.NewTag().SetName("Ripple")
	StarLayer     = donburi.NewTag().SetName("StarLayer")
	Star          = donburi.NewTag().SetName("Star")
	CloudLayer    = donburi.NewTag().SetName("CloudLayer")
	ParticleField = donburi.NewTag().SetName("ParticleField")
	Camera        = donburi.NewTag().SetName("Camera")
)

// Node names used to look groups up in the scene graph
const (
	NameSceneRoot    = "scene"
	NameDragWrapper  = "drag-wrapper"
	NameModelWrapper = "model-wrapper"
	NameModelRoot    = "model-root"
	NameRippleGroup  = "ripple-group"
	NameParticles    = "particles"
	NameStarLayer    = "stars"
	NameCloudLayer   = "clouds"
)
