package giornale

import (
	"fmt"
	"os"

	"github.com/tdewolff/canvas"
	"golang.org/x/image/font/sfnt"
)

const fallbackFontName = "DejaVu Sans"

// fontFamilyName validates the file as a font and returns its family name.
func fontFamilyName(fontPath string) (string, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return "", fmt.Errorf("reading file: %w", err)
	}

	font, err := sfnt.Parse(fontBytes)
	if err != nil {
		return "", fmt.Errorf("parsing font: %w", err)
	}

	name, err := font.Name(nil, sfnt.NameIDFamily)
	if err != nil {
		return "", fmt.Errorf("retrieving font name: %w", err)
	}

	return name, nil
}

// LoadFontFamily loads the font at fontPath, falling back to a system font
// when the path is empty.
func LoadFontFamily(fontPath string) (*canvas.FontFamily, error) {
	if fontPath == "" {
		fontFamily := canvas.NewFontFamily(fallbackFontName)
		if err := fontFamily.LoadSystemFont(fallbackFontName, canvas.FontRegular); err != nil {
			return nil, fmt.Errorf("failed to load system font: %w", err)
		}
		return fontFamily, nil
	}

	name, err := fontFamilyName(fontPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get font metadata: %w", err)
	}

	fontFamily := canvas.NewFontFamily(name)
	if err := fontFamily.LoadFontFile(fontPath, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("failed to load font file: %w", err)
	}

	return fontFamily, nil
}
