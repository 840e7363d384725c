package assets

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// ClipLoader handles loading and caching of decoded audio clips
type ClipLoader struct {
	fsys       fs.FS
	sampleRate int
	cache      map[string][]byte // decoded 16-bit stereo PCM per clip path
}

// NewClipLoader creates a loader reading clips from fsys, resampled to sampleRate
func NewClipLoader(fsys fs.FS, sampleRate int) *ClipLoader {
	return &ClipLoader{
		fsys:       fsys,
		sampleRate: sampleRate,
		cache:      make(map[string][]byte),
	}
}

// SampleRate returns the rate clips are decoded to
func (l *ClipLoader) SampleRate() int {
	return l.sampleRate
}

// Load returns the decoded bytes for a clip, decoding it on first use
func (l *ClipLoader) Load(clip string) ([]byte, error) {
	if cached, ok := l.cache[clip]; ok {
		return cached, nil
	}

	data, err := fs.ReadFile(l.fsys, clip)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file %s: %w", clip, err)
	}

	decoded, err := l.decode(clip, data)
	if err != nil {
		return nil, err
	}

	l.cache[clip] = decoded
	return decoded, nil
}

// Preload decodes every clip up front to avoid decode lag on first play.
// All failures are returned joined; successfully decoded clips stay cached.
func (l *ClipLoader) Preload(clips []string) error {
	var errs []error
	for _, clip := range clips {
		if _, err := l.Load(clip); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Cached reports whether clip has already been decoded
func (l *ClipLoader) Cached(clip string) bool {
	_, ok := l.cache[clip]
	return ok
}

func (l *ClipLoader) decode(clip string, data []byte) ([]byte, error) {
	var stream io.Reader

	switch ext := strings.ToLower(path.Ext(clip)); ext {
	case ".ogg":
		s, err := vorbis.DecodeWithSampleRate(l.sampleRate, bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode ogg %s: %w", clip, err)
		}
		stream = s

	case ".wav":
		s, err := wav.DecodeWithSampleRate(l.sampleRate, bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode wav %s: %w", clip, err)
		}
		stream = s

	default:
		return nil, fmt.Errorf("unsupported audio format: %s", ext)
	}

	decoded, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to read decoded audio %s: %w", clip, err)
	}
	return decoded, nil
}
