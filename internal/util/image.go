package util

import (
	"fmt"
	"strings"

	"github.com/noelyahan/impexp"
	"github.com/noelyahan/mergi"
)

const thumbnailMaxSide = 320

func IsImageContentType(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}

// MakeThumbnail reads an image from inPath, scales its longest side down to
// 320px keeping the aspect ratio, and writes the result to outPath. The
// original is shrunk by the client before upload; the thumbnail is what the
// log views embed.
func MakeThumbnail(inPath, outPath string) error {
	img, err := mergi.Import(impexp.NewFileImporter(inPath))
	if err != nil {
		return fmt.Errorf("failed to read image %s: %w", inPath, err)
	}

	bounds := img.Bounds()
	width := uint(bounds.Dx())
	height := uint(bounds.Dy())
	if width == 0 || height == 0 {
		return fmt.Errorf("image %s has empty bounds", inPath)
	}

	if width > height {
		height = height * thumbnailMaxSide / width
		width = thumbnailMaxSide
	} else {
		width = width * thumbnailMaxSide / height
		height = thumbnailMaxSide
	}

	resized, err := mergi.Resize(img, width, height)
	if err != nil {
		return fmt.Errorf("failed to resize image %s: %w", inPath, err)
	}

	if err := mergi.Export(impexp.NewFileExporter(resized, outPath)); err != nil {
		return fmt.Errorf("failed to write thumbnail %s: %w", outPath, err)
	}

	return nil
}
