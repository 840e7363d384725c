// Package sound maps sound names to configured playback handles.
//
// A Registry is built once from a catalog and is read-only afterwards.
// Play and Stop report a miss with a warning log line and a false return;
// everything else about playback is up to the Handle.
package sound

import (
	"errors"
	"fmt"
	"io"
	"log"

	cfg "github.com/automoto/simpleaudio/config"
)

var (
	ErrNameNotFound  = errors.New("sound not found")
	ErrDuplicateName = errors.New("duplicate sound name")
	ErrEmptyName     = errors.New("empty sound name")
)

// Handle starts and stops audio output for a single entry
type Handle interface {
	Bind(entry cfg.SoundEntry) error
	Play()
	Stop()
}

// HandleFactory acquires a new, unbound handle from the audio layer
type HandleFactory interface {
	NewHandle() Handle
}

// HandleFactoryFunc adapts a function to HandleFactory
type HandleFactoryFunc func() Handle

func (f HandleFactoryFunc) NewHandle() Handle { return f() }

// Updater is implemented by handles that need a per-frame tick (fades)
type Updater interface {
	Update()
}

// VolumeSetter is implemented by handles that follow the master volume
type VolumeSetter interface {
	SetVolume(master float64)
}

// Entry is a registered sound and the handle bound to it
type Entry struct {
	cfg.SoundEntry
	Handle Handle
}

// Registry is the name to entry lookup table
type Registry struct {
	entries map[string]*Entry
	order   []string
	logger  *log.Logger
}

// Option configures a Registry
type Option func(*Registry)

// WithLogger sets the diagnostics sink. Defaults to the standard logger.
func WithLogger(l *log.Logger) Option {
	return func(r *Registry) {
		r.logger = l
	}
}

// NewRegistry validates each entry, binds it to a fresh handle from factory
// and registers it under its name. Duplicate or empty names abort with an
// error; an entry whose handle fails to bind is skipped with a warning.
func NewRegistry(factory HandleFactory, entries []cfg.SoundEntry, opts ...Option) (*Registry, error) {
	r := &Registry{
		entries: make(map[string]*Entry, len(entries)),
		order:   make([]string, 0, len(entries)),
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}

	seen := make(map[string]bool, len(entries))
	for i := range entries {
		entry := entries[i]
		entry.Validate()

		if entry.Name == "" {
			return nil, fmt.Errorf("sound #%d: %w", i, ErrEmptyName)
		}
		if seen[entry.Name] {
			return nil, fmt.Errorf("sound %q: %w", entry.Name, ErrDuplicateName)
		}
		seen[entry.Name] = true

		handle := factory.NewHandle()
		if err := handle.Bind(entry); err != nil {
			r.logger.Printf("Warning: Sound: %s skipped: %v", entry.Name, err)
			continue
		}

		r.entries[entry.Name] = &Entry{SoundEntry: entry, Handle: handle}
		r.order = append(r.order, entry.Name)
	}

	return r, nil
}

// Play starts the named sound. Returns false if no such sound is registered.
func (r *Registry) Play(name string) bool {
	e, ok := r.lookup(name)
	if !ok {
		return false
	}
	e.Handle.Play()
	return true
}

// Stop stops the named sound. Returns false if no such sound is registered.
func (r *Registry) Stop(name string) bool {
	e, ok := r.lookup(name)
	if !ok {
		return false
	}
	e.Handle.Stop()
	return true
}

// Lookup returns the entry registered under name without logging on a miss
func (r *Registry) Lookup(name string) (*Entry, error) {
	e, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrNameNotFound)
	}
	return e, nil
}

func (r *Registry) lookup(name string) (*Entry, bool) {
	e, ok := r.entries[name]
	if !ok {
		r.logger.Printf("Warning: Sound: %s not found!", name)
	}
	return e, ok
}

// Has reports whether name is registered
func (r *Registry) Has(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// Names returns registered names in catalog order
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Len returns the number of registered sounds
func (r *Registry) Len() int {
	return len(r.entries)
}

// SetVolume forwards the master volume (0.0 - 1.0) to handles that support it
func (r *Registry) SetVolume(master float64) {
	for _, name := range r.order {
		if vs, ok := r.entries[name].Handle.(VolumeSetter); ok {
			vs.SetVolume(master)
		}
	}
}

// Update advances per-frame handle state. Call once per game tick.
func (r *Registry) Update() {
	for _, name := range r.order {
		if u, ok := r.entries[name].Handle.(Updater); ok {
			u.Update()
		}
	}
}

// Close releases every handle that holds resources
func (r *Registry) Close() error {
	var errs []error
	for _, name := range r.order {
		if c, ok := r.entries[name].Handle.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close %s: %w", name, err))
			}
		}
	}
	return errors.Join(errs...)
}
