package config

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCatalog_DefaultsAndOrder(t *testing.T) {
	catalogYAML := `
sounds:
  - name: explosion
    clip: sfx/explosion.wav
  - name: footstep
    clip: sfx/footstep.wav
    volume: 0.5
    pitch: 1.5
  - name: theme
    clip: music/theme.ogg
    loop: true
    fade_out_frames: 30
`
	c, err := LoadCatalog(strings.NewReader(catalogYAML))
	require.NoError(t, err)
	require.Len(t, c.Sounds, 3)

	assert.Equal(t, "explosion", c.Sounds[0].Name)
	assert.Equal(t, 1.0, c.Sounds[0].Volume, "omitted volume defaults to 1")
	assert.Equal(t, 1.0, c.Sounds[0].Pitch, "omitted pitch defaults to 1")

	assert.Equal(t, 0.5, c.Sounds[1].Volume)
	assert.Equal(t, 1.5, c.Sounds[1].Pitch)

	assert.True(t, c.Sounds[2].Loop)
	assert.Equal(t, 30, c.Sounds[2].FadeOutFrames)
}

func TestLoadCatalog_ExplicitZeroVolume(t *testing.T) {
	c, err := LoadCatalog(strings.NewReader("sounds:\n  - name: silent\n    clip: a.wav\n    volume: 0\n"))
	require.NoError(t, err)
	require.Len(t, c.Sounds, 1)
	assert.Equal(t, 0.0, c.Sounds[0].Volume)
}

func TestLoadCatalog_RejectsUnknownFields(t *testing.T) {
	_, err := LoadCatalog(strings.NewReader("sounds:\n  - name: a\n    colume: 1\n"))
	require.Error(t, err)
}

func TestLoadCatalog_Empty(t *testing.T) {
	c, err := LoadCatalog(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, c.Sounds)
}

func TestLoadCatalogFile(t *testing.T) {
	fsys := fstest.MapFS{
		"sounds.yaml": &fstest.MapFile{Data: []byte("sounds:\n  - name: jump\n    clip: sfx/jump.wav\n")},
	}

	c, err := LoadCatalogFile(fsys, "sounds.yaml")
	require.NoError(t, err)
	require.Len(t, c.Sounds, 1)
	assert.Equal(t, "jump", c.Sounds[0].Name)

	_, err = LoadCatalogFile(fsys, "missing.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.yaml")
}

func TestCatalog_Duplicates(t *testing.T) {
	c := Catalog{Sounds: []SoundEntry{
		{Name: "a"}, {Name: "b"}, {Name: "a"}, {Name: "a"}, {Name: "c"}, {Name: "b"},
	}}
	assert.Equal(t, []string{"a", "b"}, c.Duplicates())

	assert.Empty(t, Sound.Duplicates(), "built-in catalog has unique names")
}

func TestCatalog_Clips(t *testing.T) {
	c := Catalog{Sounds: []SoundEntry{
		{Name: "a", Clip: "x.wav"},
		{Name: "b", Clip: "y.ogg"},
		{Name: "c", Clip: "x.wav"},
		{Name: "d"},
	}}
	assert.Equal(t, []string{"x.wav", "y.ogg"}, c.Clips())
}

func TestCatalog_Validate(t *testing.T) {
	c := Catalog{Sounds: []SoundEntry{
		{Name: " a ", Volume: 2},
		{Name: "b", Volume: -1, Pitch: 10},
	}}
	c.Validate()

	assert.Equal(t, "a", c.Sounds[0].Name)
	assert.Equal(t, 1.0, c.Sounds[0].Volume)
	assert.Equal(t, 0.0, c.Sounds[1].Volume)
	assert.Equal(t, Audio.MaxPitch, c.Sounds[1].Pitch)
}
