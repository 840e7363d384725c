package components

import (
	"github.com/automoto/simpleaudio/sound"
	"github.com/yohamta/donburi"
)

// SoundsData carries the process sound registry into a world (singleton component)
type SoundsData struct {
	Registry *sound.Registry
	Volume   float64 // master volume 0.0 - 1.0
	Muted    bool
	LastName string // last name passed to PlaySound/StopSound
	LastOK   bool   // whether that lookup succeeded
}

var Sounds = donburi.NewComponentType[SoundsData]()
