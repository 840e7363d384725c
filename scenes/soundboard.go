package scenes

import (
	"image/color"
	"sync"

	cfg "github.com/automoto/simpleaudio/config"
	"github.com/automoto/simpleaudio/sound"
	"github.com/automoto/simpleaudio/systems"
	"github.com/automoto/simpleaudio/ui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// SoundboardScene lists every registered sound with play/stop controls
type SoundboardScene struct {
	ecs      *ecs.ECS
	registry *sound.Registry
	boardUI  *ui.SoundboardUI
	once     sync.Once
}

// NewSoundboardScene creates a soundboard driving reg
func NewSoundboardScene(reg *sound.Registry) *SoundboardScene {
	return &SoundboardScene{registry: reg}
}

func (ss *SoundboardScene) Update() {
	ss.once.Do(ss.configure)

	// Update ECS for audio fades
	ss.ecs.Update()

	ss.boardUI.Update()
}

func (ss *SoundboardScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{20, 20, 30, 255})

	if ss.ecs == nil {
		return
	}

	ss.boardUI.UI.Draw(screen)
}

func (ss *SoundboardScene) configure() {
	ss.ecs = ecs.NewECS(donburi.NewWorld())

	// Audio system
	ss.ecs.AddSystem(systems.UpdateAudio)

	systems.AttachSounds(ss.ecs, ss.registry)
	systems.RestoreSettings(ss.ecs)

	ss.boardUI = ui.NewSoundboardUI(ss.registry.Names(), ui.SoundboardActions{
		Play: func(name string) error { return ss.trigger(name, systems.PlaySound) },
		Stop: func(name string) error { return ss.trigger(name, systems.StopSound) },
		ChangeVol: func(delta float64) {
			systems.SetVolume(ss.ecs, systems.GetVolume()+delta*cfg.Audio.VolumeStep)
			ss.refreshVolume()
			systems.SaveCurrentSettings()
		},
		ToggleMute: func() {
			systems.SetMuted(ss.ecs, !systems.IsMuted())
			ss.refreshVolume()
			systems.SaveCurrentSettings()
		},
	})
	ss.refreshVolume()
}

// trigger runs op for a registered name; unknown names come back as the
// registry's lookup error so the status line can show it
func (ss *SoundboardScene) trigger(name string, op func(*ecs.ECS, string) bool) error {
	if err := systems.LookupSound(ss.ecs, name); err != nil {
		return err
	}
	op(ss.ecs, name)
	return nil
}

func (ss *SoundboardScene) refreshVolume() {
	ss.boardUI.SetVolume(systems.GetVolume(), systems.IsMuted())
}
