package systems

import (
	"encoding/json"
	"log"

	"github.com/automoto/flyby/components"
	cfg "github.com/automoto/flyby/config"
	"github.com/quasilyte/gdata"
)

// SavedSettings represents the viewer toggles stored on disk
type SavedSettings struct {
	Variant string `json:"variant"`
	Follow  bool   `json:"follow"`
	Debug   bool   `json:"debug"`
}

var gdataManager *gdata.Manager
var gdataInitialized bool

// InitPersistence initializes the gdata manager for settings storage
func InitPersistence() error {
	m, err := gdata.Open(gdata.Config{
		AppName: "flyby",
	})
	if err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
		return err
	}
	gdataManager = m
	gdataInitialized = true
	return nil
}

// LoadSettings loads settings from disk. It returns nil when nothing was saved.
func LoadSettings() (*SavedSettings, error) {
	if !gdataInitialized || gdataManager == nil {
		return nil, nil
	}

	data, err := gdataManager.LoadItem("settings")
	if err != nil {
		log.Printf("Warning: Could not load settings: %v", err)
		return nil, nil
	}
	if len(data) == 0 {
		return nil, nil
	}

	return decodeSettings(data)
}

func decodeSettings(data []byte) (*SavedSettings, error) {
	var settings SavedSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		log.Printf("Warning: Could not parse saved settings: %v", err)
		return nil, err
	}
	return &settings, nil
}

// SaveSettings saves settings to disk
func SaveSettings(s *SavedSettings) error {
	if !gdataInitialized || gdataManager == nil {
		return nil
	}

	data, err := json.Marshal(s)
	if err != nil {
		log.Printf("Warning: Could not serialize settings: %v", err)
		return err
	}

	if err := gdataManager.SaveItem("settings", data); err != nil {
		log.Printf("Warning: Could not save settings: %v", err)
		return err
	}
	return nil
}

// SaveCurrentSettings saves the toggles held by the Settings component
func SaveCurrentSettings(s *components.SettingsData) {
	_ = SaveSettings(&SavedSettings{
		Variant: s.Variant,
		Follow:  s.Follow,
		Debug:   s.Debug,
	})
}

// ApplySavedSettingsGlobal applies settings without needing an ECS reference.
// Used during startup before the first scene is created. An unknown saved
// variant is ignored.
func ApplySavedSettingsGlobal(saved *SavedSettings) {
	if saved == nil {
		return
	}
	if saved.Variant != "" {
		if err := cfg.ApplyVariant(saved.Variant); err != nil {
			log.Printf("Warning: saved variant: %v", err)
		}
	}
	cfg.Camera.Follow = saved.Follow
	cfg.Debug.Enabled = saved.Debug
}
