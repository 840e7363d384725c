package sound

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/automoto/simpleaudio/assets"
	cfg "github.com/automoto/simpleaudio/config"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// bytesPerFrame is the size of one 16-bit stereo sample frame
const bytesPerFrame = 4

// player is the subset of *audio.Player a PlayerHandle drives
type player interface {
	Play()
	Pause()
	IsPlaying() bool
	Rewind() error
	SetVolume(volume float64)
	Close() error
}

// PlayerFactory hands out ebiten-backed handles sharing one audio context
type PlayerFactory struct {
	loader    *assets.ClipLoader
	newPlayer func(src io.Reader) (player, error)
	master    float64
}

// NewPlayerFactory creates a factory whose handles decode through loader and
// play on ctx. The loader and context must use the same sample rate.
func NewPlayerFactory(ctx *audio.Context, loader *assets.ClipLoader) *PlayerFactory {
	return &PlayerFactory{
		loader: loader,
		newPlayer: func(src io.Reader) (player, error) {
			return ctx.NewPlayer(src)
		},
		master: cfg.Audio.DefaultVolume,
	}
}

// SetMasterVolume sets the master volume new handles start with
func (f *PlayerFactory) SetMasterVolume(master float64) {
	f.master = master
}

func (f *PlayerFactory) NewHandle() Handle {
	return &PlayerHandle{factory: f, master: f.master}
}

// PlayerHandle plays one configured entry through an ebiten audio player
type PlayerHandle struct {
	factory *PlayerFactory
	player  player
	entry   cfg.SoundEntry
	master  float64
	fade    *gween.Tween
}

// Bind loads the entry's clip and prepares a player for it
func (h *PlayerHandle) Bind(entry cfg.SoundEntry) error {
	if h.player != nil {
		return errors.New("handle already bound")
	}

	data, err := h.factory.loader.Load(entry.Clip)
	if err != nil {
		return err
	}

	src, length := pitched(data, entry.Pitch, h.factory.loader.SampleRate())

	var stream io.Reader = src
	if entry.Loop {
		stream = audio.NewInfiniteLoop(src, length)
	}

	p, err := h.factory.newPlayer(stream)
	if err != nil {
		return fmt.Errorf("failed to create player for %s: %w", entry.Clip, err)
	}

	h.player = p
	h.entry = entry
	h.player.SetVolume(h.volume())
	return nil
}

// Play restarts the clip from the beginning, cancelling any fade out
func (h *PlayerHandle) Play() {
	if h.player == nil {
		return
	}
	h.fade = nil
	h.player.SetVolume(h.volume())
	_ = h.player.Rewind()
	h.player.Play()
}

// Stop halts playback, fading out first when the entry asks for it
func (h *PlayerHandle) Stop() {
	if h.player == nil {
		return
	}
	if h.entry.FadeOutFrames > 0 && h.player.IsPlaying() {
		if h.fade == nil {
			h.fade = gween.New(float32(h.volume()), 0, float32(h.entry.FadeOutFrames), ease.Linear)
		}
		return
	}
	h.halt()
}

// Update advances a running fade out by one frame
func (h *PlayerHandle) Update() {
	if h.fade == nil {
		return
	}
	v, done := h.fade.Update(1)
	if done {
		h.halt()
		return
	}
	h.player.SetVolume(float64(v))
}

// Fading reports whether a fade out is in progress
func (h *PlayerHandle) Fading() bool {
	return h.fade != nil
}

// SetVolume applies a new master volume (0.0 - 1.0)
func (h *PlayerHandle) SetVolume(master float64) {
	h.master = master
	if h.player != nil && h.fade == nil {
		h.player.SetVolume(h.volume())
	}
}

func (h *PlayerHandle) Close() error {
	if h.player == nil {
		return nil
	}
	err := h.player.Close()
	h.player = nil
	h.fade = nil
	return err
}

func (h *PlayerHandle) halt() {
	h.fade = nil
	h.player.Pause()
	_ = h.player.Rewind()
	h.player.SetVolume(h.volume())
}

func (h *PlayerHandle) volume() float64 {
	return h.entry.Volume * h.master
}

// pitched returns data as a seekable stream, resampled so that it plays back
// pitch times faster at sampleRate, along with the stream length in bytes.
func pitched(data []byte, pitch float64, sampleRate int) (io.ReadSeeker, int64) {
	size := int64(len(data))
	src := bytes.NewReader(data)
	from := pitchedRate(sampleRate, pitch)
	if from == sampleRate {
		return src, size
	}
	return audio.Resample(src, size, from, sampleRate), resampledLength(size, from, sampleRate)
}

// resampledLength is the byte length of a size-byte stream converted from one
// rate to another, truncated to whole frames
func resampledLength(size int64, from, to int) int64 {
	n := int64(float64(size) * float64(to) / float64(from))
	return n / bytesPerFrame * bytesPerFrame
}

// pitchedRate is the rate a clip must be treated as having for it to sound
// pitch times higher when played at sampleRate
func pitchedRate(sampleRate int, pitch float64) int {
	if pitch <= 0 {
		return sampleRate
	}
	return int(float64(sampleRate) * pitch)
}
