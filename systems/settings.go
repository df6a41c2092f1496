package systems

import (
	"github.com/automoto/flyby/components"
	cfg "github.com/automoto/flyby/config"
	"github.com/yohamta/donburi/ecs"
)

// GetOrCreateSettings returns the singleton Settings component, seeding it
// from the config globals on first use.
func GetOrCreateSettings(e *ecs.ECS) *components.SettingsData {
	entry, ok := components.Settings.First(e.World)
	if !ok {
		entry = e.World.Entry(e.World.Create(components.Settings))
		components.Settings.SetValue(entry, components.SettingsData{
			Variant: cfg.ActiveVariant,
			Follow:  cfg.Camera.Follow,
			Debug:   cfg.Debug.Enabled,
		})
	}
	return components.Settings.Get(entry)
}

// UpdateSettings handles the debug overlay toggle.
func UpdateSettings(e *ecs.ECS) {
	input := getOrCreateInput(e)
	settings := GetOrCreateSettings(e)

	if GetAction(input, cfg.ActionToggleDebug).JustPressed {
		settings.Debug = !settings.Debug
		cfg.Debug.Enabled = settings.Debug
		SaveCurrentSettings(settings)
	}
}

// VariantRequested reports whether the next-variant action fired this frame.
func VariantRequested(e *ecs.ECS) bool {
	return GetAction(getOrCreateInput(e), cfg.ActionNextVariant).JustPressed
}

// QuitRequested reports whether the quit action fired this frame.
func QuitRequested(e *ecs.ECS) bool {
	return GetAction(getOrCreateInput(e), cfg.ActionQuit).JustPressed
}
