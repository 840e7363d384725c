package systems

import (
	"encoding/json"
	"log"

	"github.com/quasilyte/gdata"
	"github.com/yohamta/donburi/ecs"
)

// SavedSettings represents the audio settings stored on disk
type SavedSettings struct {
	Volume float64 `json:"volume"`
	Muted  bool    `json:"muted"`
}

const settingsKey = "settings"

var gdataManager *gdata.Manager

// InitPersistence initializes the gdata manager for settings storage
func InitPersistence(appName string) error {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return err
	}
	gdataManager = m
	return nil
}

// LoadSettings loads settings from disk. Returns nil, nil when nothing is saved yet.
func LoadSettings() (*SavedSettings, error) {
	if gdataManager == nil {
		return nil, nil
	}

	data, err := gdataManager.LoadItem(settingsKey)
	if err != nil {
		log.Printf("Warning: Could not load settings: %v", err)
		return nil, nil
	}
	if len(data) == 0 {
		return nil, nil
	}

	return decodeSettings(data)
}

// SaveSettings saves settings to disk
func SaveSettings(s *SavedSettings) error {
	if gdataManager == nil {
		return nil
	}

	data, err := json.Marshal(s)
	if err != nil {
		log.Printf("Warning: Could not serialize settings: %v", err)
		return err
	}

	if err := gdataManager.SaveItem(settingsKey, data); err != nil {
		log.Printf("Warning: Could not save settings: %v", err)
		return err
	}
	return nil
}

// SaveCurrentSettings saves the current master volume and mute state
func SaveCurrentSettings() {
	_ = SaveSettings(&SavedSettings{
		Volume: globalVolume,
		Muted:  globalMuted,
	})
}

// ApplySavedSettings applies loaded settings to the world's registry
func ApplySavedSettings(e *ecs.ECS, saved *SavedSettings) {
	if saved == nil {
		return
	}
	SetVolume(e, saved.Volume)
	SetMuted(e, saved.Muted)
}

// RestoreSettings applies the persisted volume and mute state to the world's
// registry. Without saved settings the current master volume is pushed instead.
func RestoreSettings(e *ecs.ECS) {
	saved, err := LoadSettings()
	if err != nil || saved == nil {
		saved = &SavedSettings{Volume: globalVolume, Muted: globalMuted}
	}
	ApplySavedSettings(e, saved)
}

func decodeSettings(data []byte) (*SavedSettings, error) {
	var settings SavedSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		log.Printf("Warning: Could not parse saved settings: %v", err)
		return nil, err
	}
	settings.Volume = clampVolume(settings.Volume)
	return &settings, nil
}
