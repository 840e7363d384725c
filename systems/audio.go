package systems

import (
	"errors"
	"io/fs"
	"log"
	"sync"

	"github.com/automoto/simpleaudio/assets"
	"github.com/automoto/simpleaudio/components"
	cfg "github.com/automoto/simpleaudio/config"
	"github.com/automoto/simpleaudio/sound"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/yohamta/donburi/ecs"
)

// ErrNoRegistry is returned when a world has no registry attached
var ErrNoRegistry = errors.New("no sound registry attached to this world")

// Global audio state - created once and shared across all scenes
var (
	globalAudioContext *audio.Context
	audioInitOnce      sync.Once

	registryMu     sync.Mutex
	globalRegistry *sound.Registry

	globalVolume float64 = cfg.Audio.DefaultVolume
	globalMuted  bool
)

// initGlobalAudio initializes the global audio context (called once).
// ebiten allows a single context per process.
func initGlobalAudio(sampleRate int) {
	audioInitOnce.Do(func() {
		globalAudioContext = audio.NewContext(sampleRate)
	})
}

// NewPlayerFactory returns an ebiten-backed handle factory reading clips from fsys
func NewPlayerFactory(fsys fs.FS, sampleRate int) *sound.PlayerFactory {
	initGlobalAudio(sampleRate)

	loader := assets.NewClipLoader(fsys, globalAudioContext.SampleRate())
	factory := sound.NewPlayerFactory(globalAudioContext, loader)
	factory.SetMasterVolume(effectiveVolume())
	return factory
}

// StartAudio builds the process sound registry from catalog. Only the first
// call builds one; later calls log a warning and return the first registry.
func StartAudio(factory sound.HandleFactory, catalog *cfg.Catalog) (*sound.Registry, error) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if globalRegistry != nil {
		log.Printf("Warning: audio already started, keeping the existing sound registry")
		return globalRegistry, nil
	}

	reg, err := sound.NewRegistry(factory, catalog.Sounds)
	if err != nil {
		return nil, err
	}
	reg.SetVolume(effectiveVolume())

	globalRegistry = reg
	return reg, nil
}

// StopAudio releases the process registry. A later StartAudio builds a new one.
func StopAudio() error {
	registryMu.Lock()
	defer registryMu.Unlock()

	if globalRegistry == nil {
		return nil
	}
	err := globalRegistry.Close()
	globalRegistry = nil
	return err
}

// AttachSounds makes reg available to systems running in this ECS.
// A world that already has a registry keeps it.
func AttachSounds(e *ecs.ECS, reg *sound.Registry) *components.SoundsData {
	data := GetOrCreateSounds(e)
	if data.Registry == nil {
		data.Registry = reg
	}
	return data
}

// GetOrCreateSounds returns the singleton Sounds component for this ECS, creating it if needed
func GetOrCreateSounds(e *ecs.ECS) *components.SoundsData {
	entry, ok := components.Sounds.First(e.World)
	if !ok {
		entry = e.World.Entry(e.World.Create(components.Sounds))
		components.Sounds.SetValue(entry, components.SoundsData{
			Volume: globalVolume,
			Muted:  globalMuted,
		})
	}
	return components.Sounds.Get(entry)
}

// PlaySound plays a registered sound by name
func PlaySound(e *ecs.ECS, name string) bool {
	data, ok := soundsOf(e)
	if !ok {
		return false
	}
	data.LastName = name
	data.LastOK = data.Registry.Play(name)
	return data.LastOK
}

// StopSound stops a registered sound by name
func StopSound(e *ecs.ECS, name string) bool {
	data, ok := soundsOf(e)
	if !ok {
		return false
	}
	data.LastName = name
	data.LastOK = data.Registry.Stop(name)
	return data.LastOK
}

// LookupSound reports whether name is registered in this world without
// logging a miss. The error wraps sound.ErrNameNotFound.
func LookupSound(e *ecs.ECS, name string) error {
	data, ok := soundsOf(e)
	if !ok {
		return ErrNoRegistry
	}
	_, err := data.Registry.Lookup(name)
	return err
}

func soundsOf(e *ecs.ECS) (*components.SoundsData, bool) {
	entry, ok := components.Sounds.First(e.World)
	if !ok {
		log.Printf("Warning: no sound registry attached to this world")
		return nil, false
	}
	data := components.Sounds.Get(entry)
	if data.Registry == nil {
		log.Printf("Warning: no sound registry attached to this world")
		return nil, false
	}
	return data, true
}

// UpdateAudio advances fades on the world's registry
func UpdateAudio(e *ecs.ECS) {
	entry, ok := components.Sounds.First(e.World)
	if !ok {
		return
	}
	if data := components.Sounds.Get(entry); data.Registry != nil {
		data.Registry.Update()
	}
}

// SetVolume changes the master volume (0.0 - 1.0)
func SetVolume(e *ecs.ECS, volume float64) {
	globalVolume = clampVolume(volume)
	applyVolume(e)
}

// SetMuted silences all sounds without forgetting the volume
func SetMuted(e *ecs.ECS, muted bool) {
	globalMuted = muted
	applyVolume(e)
}

// GetVolume returns the current master volume (0.0 - 1.0)
func GetVolume() float64 {
	return globalVolume
}

// IsMuted reports whether sound is muted
func IsMuted() bool {
	return globalMuted
}

func applyVolume(e *ecs.ECS) {
	data := GetOrCreateSounds(e)
	data.Volume = globalVolume
	data.Muted = globalMuted
	if data.Registry != nil {
		data.Registry.SetVolume(effectiveVolume())
	}
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func effectiveVolume() float64 {
	if globalMuted {
		return 0
	}
	return globalVolume
}
