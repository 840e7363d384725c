package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// Catalog is the ordered list of sounds a registry is built from
type Catalog struct {
	Sounds []SoundEntry
}

// Sound is the built-in catalog used when no catalog file is given
var Sound Catalog

func init() {
	Sound = Catalog{
		Sounds: []SoundEntry{
			{Name: "explosion", Clip: "sfx/explosion.wav", Volume: 1.0, Pitch: 1.0},
			{Name: "footstep", Clip: "sfx/footstep.wav", Volume: 0.6, Pitch: 1.0},
			{Name: "jump", Clip: "sfx/jump.wav", Volume: 0.8, Pitch: 1.2},
			{Name: "coin", Clip: "sfx/coin.wav", Volume: 0.7, Pitch: 1.0},
			{Name: "theme", Clip: "music/theme.ogg", Volume: 0.75, Pitch: 1.0, Loop: true, FadeOutFrames: 60},
		},
	}
}

// catalogFile mirrors the YAML layout. Pointers tell "absent" apart from zero
// so omitted volume and pitch default to 1.
type catalogFile struct {
	Sounds []struct {
		Name          string   `yaml:"name"`
		Clip          string   `yaml:"clip"`
		Volume        *float64 `yaml:"volume"`
		Pitch         *float64 `yaml:"pitch"`
		Loop          bool     `yaml:"loop"`
		FadeOutFrames int      `yaml:"fade_out_frames"`
	} `yaml:"sounds"`
}

// LoadCatalog decodes a YAML catalog. Unknown keys are rejected.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file catalogFile
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return &Catalog{}, nil
		}
		return nil, fmt.Errorf("failed to parse sound catalog: %w", err)
	}

	c := &Catalog{Sounds: make([]SoundEntry, 0, len(file.Sounds))}
	for _, s := range file.Sounds {
		entry := SoundEntry{
			Name:          s.Name,
			Clip:          s.Clip,
			Volume:        1.0,
			Pitch:         1.0,
			Loop:          s.Loop,
			FadeOutFrames: s.FadeOutFrames,
		}
		if s.Volume != nil {
			entry.Volume = *s.Volume
		}
		if s.Pitch != nil {
			entry.Pitch = *s.Pitch
		}
		c.Sounds = append(c.Sounds, entry)
	}
	return c, nil
}

// LoadCatalogFile reads and decodes a YAML catalog from fsys
func LoadCatalogFile(fsys fs.FS, path string) (*Catalog, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sound catalog %s: %w", path, err)
	}
	defer f.Close()

	c, err := LoadCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Validate runs the validation hook on every entry
func (c *Catalog) Validate() {
	for i := range c.Sounds {
		c.Sounds[i].Validate()
	}
}

// Duplicates returns names that appear more than once, in first-seen order
func (c *Catalog) Duplicates() []string {
	seen := make(map[string]int, len(c.Sounds))
	var dups []string
	for _, s := range c.Sounds {
		seen[s.Name]++
		if seen[s.Name] == 2 {
			dups = append(dups, s.Name)
		}
	}
	return dups
}

// Clips returns the distinct clip paths referenced by the catalog
func (c *Catalog) Clips() []string {
	seen := make(map[string]bool, len(c.Sounds))
	paths := make([]string, 0, len(c.Sounds))
	for _, s := range c.Sounds {
		if s.Clip == "" || seen[s.Clip] {
			continue
		}
		seen[s.Clip] = true
		paths = append(paths, s.Clip)
	}
	return paths
}
