package fonts

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

type FontName string

const (
	Title  FontName = "title"
	Normal FontName = "normal"
	Small  FontName = "small"
)

func (f FontName) Get() text.Face {
	return getFont(f)
}

var (
	source *text.GoTextFaceSource
	fonts  = map[FontName]text.Face{}
)

// LoadDefaults registers the soundboard faces from the Go regular font
func LoadDefaults() error {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return fmt.Errorf("failed to load UI font: %w", err)
	}
	source = src

	LoadFontWithSize(Title, 18)
	LoadFontWithSize(Normal, 12)
	LoadFontWithSize(Small, 10)
	return nil
}

func LoadFontWithSize(name FontName, size float64) {
	fonts[name] = &text.GoTextFace{Source: source, Size: size}
}

func getFont(name FontName) text.Face {
	f, ok := fonts[name]
	if !ok {
		panic(fmt.Sprintf("Font %s not found", name))
	}
	return f
}
