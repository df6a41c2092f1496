package factory

import (
	"github.com/automoto/flyby/archetypes"
	"github.com/automoto/flyby/components"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateSettings spawns the settings singleton holding the viewer toggles.
func CreateSettings(ecs *ecs.ECS, s components.SettingsData) *donburi.Entry {
	settings := archetypes.Settings.Spawn(ecs)
	components.Settings.SetValue(settings, s)
	return settings
}

// CreateInput spawns the input singleton. The zero value means no action
// is held and the page sits at the top.
func CreateInput(ecs *ecs.ECS) *donburi.Entry {
	return archetypes.Input.Spawn(ecs)
}
