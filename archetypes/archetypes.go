package archetypes

import (
	"github.com/automoto/flyby/components"
	cfg "github.com/automoto/flyby/config"
	"github.com/automoto/flyby/scenegraph"
	"github.com/automoto/flyby/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	SceneRoot = newArchetype(
		tags.SceneRoot,
	)
	DragWrapper = newArchetype(
		tags.DragWrapper,
	)
	ModelWrapper = newArchetype(
		tags.ModelWrapper,
	)
	ModelRoot = newArchetype(
		tags.ModelRoot,
		components.Model,
	)
	ModelPart = newArchetype(
		tags.ModelPart,
		components.Part,
	)
	RippleGroup = newArchetype(
		tags.RippleGroup,
	)
	Ripple = newArchetype(
		tags.Ripple,
		components.Ring,
	)
	ParticleField = newArchetype(
		tags.ParticleField,
		components.ParticleField,
	)
	StarLayer = newArchetype(
		tags.StarLayer,
		components.Layer,
	)
	Star = newArchetype(
		tags.Star,
	)
	CloudLayer = newArchetype(
		tags.CloudLayer,
		components.Layer,
	)
	Camera = newArchetype(
		tags.Camera,
		components.Camera,
	)
	LoadProgress = newArchetype(
		components.LoadProgress,
	)
	Settings = newArchetype(
		components.Settings,
	)
	Input = newArchetype(
		components.Input,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

// Components returns a copy of the archetype's component list.
func (a *archetype) Components() []donburi.IComponentType {
	return append([]donburi.IComponentType(nil), a.components...)
}

// Spawn creates a plain entity on the default layer of ecs.
func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		cfg.Default,
		append(a.Components(), cs...)...,
	))
	return e
}

// Create makes a plain entity directly in w.
func (a *archetype) Create(w donburi.World, cs ...donburi.IComponentType) *donburi.Entry {
	return w.Entry(w.Create(append(a.Components(), cs...)...))
}

// Node creates a scene graph node under parent carrying the archetype's components.
func (a *archetype) Node(w donburi.World, name string, parent donburi.Entity) donburi.Entity {
	return scenegraph.NewNode(w, name, parent, a.components...)
}
