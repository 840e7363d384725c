package systems

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/automoto/simpleaudio/assets"
	cfg "github.com/automoto/simpleaudio/config"
	"github.com/automoto/simpleaudio/sound"
)

// CheckCatalog reports every duplicate name and every clip in fsys that
// cannot be decoded, joined into one error
func CheckCatalog(catalog *cfg.Catalog, fsys fs.FS, sampleRate int) error {
	var errs []error
	for _, name := range catalog.Duplicates() {
		errs = append(errs, fmt.Errorf("sound %q: %w", name, sound.ErrDuplicateName))
	}

	loader := assets.NewClipLoader(fsys, sampleRate)
	if err := loader.Preload(catalog.Clips()); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
