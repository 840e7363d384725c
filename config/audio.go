package config

import "strings"

// AudioConfig contains audio-related configuration values
type AudioConfig struct {
	SampleRate    int
	DefaultVolume float64 // master volume 0.0 - 1.0
	VolumeStep    float64 // increment used by the soundboard -/+ buttons

	// Parameter limits applied by SoundEntry.Validate
	MinPitch float64
	MaxPitch float64
}

// SoundEntry is a named, pre-configured clip plus its playback parameters
type SoundEntry struct {
	Name          string
	Clip          string
	Volume        float64
	Pitch         float64
	Loop          bool
	FadeOutFrames int // frames for fade out on stop (60 = 1 second at 60fps)
}

var Audio AudioConfig

func init() {
	Audio = AudioConfig{
		SampleRate:    44100,
		DefaultVolume: 1.0,
		VolumeStep:    0.25,
		MinPitch:      0.1,
		MaxPitch:      3.0,
	}
}

// Validate normalizes the entry in place. It never fails: out of range
// values are clamped and a zero pitch means "unchanged".
func (s *SoundEntry) Validate() {
	s.Name = strings.TrimSpace(s.Name)
	s.Clip = strings.TrimSpace(s.Clip)

	s.Volume = clamp(s.Volume, 0, 1)

	if s.Pitch == 0 {
		s.Pitch = 1
	}
	s.Pitch = clamp(s.Pitch, Audio.MinPitch, Audio.MaxPitch)

	if s.FadeOutFrames < 0 {
		s.FadeOutFrames = 0
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
