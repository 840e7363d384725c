package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Settings holds the soundboard's file/env/flag configuration
type Settings struct {
	Catalog    string       `mapstructure:"catalog"` // YAML catalog path, empty for the built-in one
	Assets     string       `mapstructure:"assets"`  // directory clip paths are resolved against
	SampleRate int          `mapstructure:"sample_rate"`
	Window     WindowConfig `mapstructure:"window"`
}

// WindowConfig contains soundboard window dimensions
type WindowConfig struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
}

// SetDefaults registers default values on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("catalog", "")
	v.SetDefault("assets", "assets")
	v.SetDefault("sample_rate", Audio.SampleRate)
	v.SetDefault("window.width", 640)
	v.SetDefault("window.height", 480)
	v.SetDefault("window.title", "SimpleAudio Soundboard")
}

// LoadSettings reads the optional config file and unmarshals v into Settings.
// A missing default config file is not an error; an explicitly named one is.
func LoadSettings(v *viper.Viper) (*Settings, error) {
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if s.SampleRate <= 0 {
		s.SampleRate = Audio.SampleRate
	}
	return &s, nil
}

// Load reads the settings and the catalog they point at, falling back to the
// built-in catalog. The returned catalog has been validated.
func Load(v *viper.Viper) (*Settings, *Catalog, error) {
	settings, err := LoadSettings(v)
	if err != nil {
		return nil, nil, err
	}

	catalog := &Sound
	if settings.Catalog != "" {
		catalog, err = LoadCatalogFile(os.DirFS(filepath.Dir(settings.Catalog)), filepath.Base(settings.Catalog))
		if err != nil {
			return nil, nil, err
		}
	}
	catalog.Validate()
	return settings, catalog, nil
}
