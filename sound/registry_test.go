package sound

import (
	"bytes"
	"errors"
	"log"
	"testing"

	cfg "github.com/automoto/simpleaudio/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// fakeHandle records the calls a registry makes on it
type fakeHandle struct {
	bound   cfg.SoundEntry
	bindErr error
	plays   int
	stops   int
	updates int
	volume  float64
	closed  bool
}

func (h *fakeHandle) Bind(entry cfg.SoundEntry) error {
	if h.bindErr != nil {
		return h.bindErr
	}
	h.bound = entry
	return nil
}

func (h *fakeHandle) Play()                    { h.plays++ }
func (h *fakeHandle) Stop()                    { h.stops++ }
func (h *fakeHandle) Update()                  { h.updates++ }
func (h *fakeHandle) SetVolume(master float64) { h.volume = master }
func (h *fakeHandle) Close() error {
	h.closed = true
	return nil
}

// fakeFactory hands out fakeHandles and keeps them in acquisition order
type fakeFactory struct {
	handles []*fakeHandle
	failOn  map[int]error
}

func (f *fakeFactory) NewHandle() Handle {
	h := &fakeHandle{bindErr: f.failOn[len(f.handles)]}
	f.handles = append(f.handles, h)
	return h
}

func entries(names ...string) []cfg.SoundEntry {
	out := make([]cfg.SoundEntry, len(names))
	for i, n := range names {
		out[i] = cfg.SoundEntry{Name: n, Clip: n + ".wav", Volume: 1, Pitch: 1}
	}
	return out
}

func newTestRegistry(t *testing.T, names ...string) (*Registry, *fakeFactory, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	f := &fakeFactory{}
	r, err := NewRegistry(f, entries(names...), WithLogger(log.New(&logs, "", 0)))
	require.NoError(t, err)
	return r, f, &logs
}

func TestRegistry_PlayKnownAndUnknown(t *testing.T) {
	r, f, logs := newTestRegistry(t, "explosion", "footstep")

	assert.True(t, r.Play("explosion"))
	assert.Equal(t, 1, f.handles[0].plays)
	assert.Empty(t, logs.String())

	assert.False(t, r.Play("jump"))
	assert.Contains(t, logs.String(), "Warning: Sound: jump not found!")
	assert.Equal(t, 1, f.handles[0].plays)
	assert.Equal(t, 0, f.handles[1].plays)
}

func TestRegistry_StopAfterPlay(t *testing.T) {
	r, f, _ := newTestRegistry(t, "explosion", "footstep")

	require.True(t, r.Play("footstep"))
	assert.True(t, r.Stop("footstep"))

	footstep := f.handles[1]
	assert.Equal(t, 1, footstep.plays)
	assert.Equal(t, 1, footstep.stops)
	assert.Equal(t, 0, f.handles[0].stops)
}

func TestRegistry_StopUnknown(t *testing.T) {
	r, f, logs := newTestRegistry(t, "explosion")

	assert.False(t, r.Stop("jump"))
	assert.Contains(t, logs.String(), "jump not found")
	assert.Equal(t, 0, f.handles[0].stops)
}

func TestRegistry_BindsValidatedEntries(t *testing.T) {
	f := &fakeFactory{}
	_, err := NewRegistry(f, []cfg.SoundEntry{
		{Name: " loud ", Clip: "loud.wav", Volume: 4},
	}, WithLogger(log.New(&bytes.Buffer{}, "", 0)))
	require.NoError(t, err)

	require.Len(t, f.handles, 1)
	assert.Equal(t, "loud", f.handles[0].bound.Name)
	assert.Equal(t, 1.0, f.handles[0].bound.Volume)
	assert.Equal(t, 1.0, f.handles[0].bound.Pitch)
}

func TestRegistry_DoesNotMutateInput(t *testing.T) {
	in := []cfg.SoundEntry{{Name: " a ", Volume: 9}}
	_, err := NewRegistry(&fakeFactory{}, in, WithLogger(log.New(&bytes.Buffer{}, "", 0)))
	require.NoError(t, err)
	assert.Equal(t, " a ", in[0].Name)
	assert.Equal(t, 9.0, in[0].Volume)
}

func TestRegistry_RejectsDuplicateNames(t *testing.T) {
	_, err := NewRegistry(&fakeFactory{}, entries("explosion", "footstep", "explosion"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateName)
	assert.Contains(t, err.Error(), "explosion")
}

func TestRegistry_DuplicateAfterTrim(t *testing.T) {
	_, err := NewRegistry(&fakeFactory{}, []cfg.SoundEntry{{Name: "a"}, {Name: " a"}})
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestRegistry_RejectsEmptyName(t *testing.T) {
	_, err := NewRegistry(&fakeFactory{}, []cfg.SoundEntry{{Name: "ok"}, {Name: "   "}})
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestRegistry_SkipsEntriesThatFailToBind(t *testing.T) {
	var logs bytes.Buffer
	f := &fakeFactory{failOn: map[int]error{1: errors.New("failed to read audio file")}}

	r, err := NewRegistry(f, entries("explosion", "missing", "footstep"), WithLogger(log.New(&logs, "", 0)))
	require.NoError(t, err)

	assert.Equal(t, []string{"explosion", "footstep"}, r.Names())
	assert.Equal(t, 2, r.Len())
	assert.False(t, r.Has("missing"))
	assert.Contains(t, logs.String(), "Warning: Sound: missing skipped")

	assert.False(t, r.Play("missing"))
	assert.Equal(t, 0, f.handles[1].plays)
}

func TestRegistry_NamesKeepCatalogOrder(t *testing.T) {
	r, _, _ := newTestRegistry(t, "c", "a", "b")
	names := r.Names()
	assert.Equal(t, []string{"c", "a", "b"}, names)

	names[0] = "changed"
	assert.Equal(t, "c", r.Names()[0], "Names returns a copy")
}

func TestRegistry_Lookup(t *testing.T) {
	r, f, logs := newTestRegistry(t, "explosion")

	e, err := r.Lookup("explosion")
	require.NoError(t, err)
	assert.Equal(t, "explosion", e.Name)
	assert.Same(t, f.handles[0], e.Handle)

	_, err = r.Lookup("jump")
	assert.ErrorIs(t, err, ErrNameNotFound)
	assert.Empty(t, logs.String(), "Lookup does not log")
}

func TestRegistry_ForwardsVolumeUpdateAndClose(t *testing.T) {
	r, f, _ := newTestRegistry(t, "a", "b")

	r.SetVolume(0.25)
	r.Update()
	r.Update()
	require.NoError(t, r.Close())

	for _, h := range f.handles {
		assert.Equal(t, 0.25, h.volume)
		assert.Equal(t, 2, h.updates)
		assert.True(t, h.closed)
	}
}

// minimalHandle implements only Handle
type minimalHandle struct{ plays int }

func (h *minimalHandle) Bind(cfg.SoundEntry) error { return nil }
func (h *minimalHandle) Play()                     { h.plays++ }
func (h *minimalHandle) Stop()                     {}

func TestRegistry_OptionalHandleInterfaces(t *testing.T) {
	h := &minimalHandle{}
	r, err := NewRegistry(HandleFactoryFunc(func() Handle { return h }), entries("a"))
	require.NoError(t, err)

	r.SetVolume(0.5)
	r.Update()
	require.NoError(t, r.Close())

	assert.True(t, r.Play("a"))
	assert.Equal(t, 1, h.plays)
}

func TestRegistry_PlayProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		names := rapid.SliceOfDistinct(
			rapid.StringMatching(`[a-z]{1,8}`),
			func(s string) string { return s },
		).Draw(t, "names")
		query := rapid.StringMatching(`[a-z]{1,8}`).Draw(t, "name")

		var logs bytes.Buffer
		f := &fakeFactory{}
		r, err := NewRegistry(f, entries(names...), WithLogger(log.New(&logs, "", 0)))
		if err != nil {
			t.Fatalf("NewRegistry: %v", err)
		}

		index := -1
		for i, n := range names {
			if n == query {
				index = i
			}
		}

		played := r.Play(query)
		stopped := r.Stop(query)

		if index >= 0 {
			if !played || !stopped {
				t.Fatalf("registered %q: play=%v stop=%v", query, played, stopped)
			}
			if f.handles[index].plays != 1 || f.handles[index].stops != 1 {
				t.Fatalf("registered %q: plays=%d stops=%d", query, f.handles[index].plays, f.handles[index].stops)
			}
			if logs.Len() != 0 {
				t.Fatalf("unexpected diagnostics: %s", logs.String())
			}
		} else {
			if played || stopped {
				t.Fatalf("unregistered %q reported success", query)
			}
			if logs.Len() == 0 {
				t.Fatalf("no diagnostic for %q", query)
			}
		}

		for i, h := range f.handles {
			if i == index {
				continue
			}
			if h.plays != 0 || h.stops != 0 {
				t.Fatalf("handle %q was touched", names[i])
			}
		}
	})
}
