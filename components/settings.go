package components

import "github.com/yohamta/donburi"

// SettingsData holds viewer toggles that survive scene restarts.
type SettingsData struct {
	Variant string
	Follow  bool
	Debug   bool
}

var Settings = donburi.NewComponentType[SettingsData]()
