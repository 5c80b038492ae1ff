// Package image provides image loading, Mat conversion, and panel compositing.
package image

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/tiff"
)

// ErrEmpty is returned for images without pixels.
var ErrEmpty = errors.New("image has no pixels")

// Source is a decoded input photograph.
type Source struct {
	Path   string      // Original file path
	Format string      // Decoder name reported by image.Decode
	Image  image.Image // Decoded image data, display (RGB) order
}

// Load loads an image from the specified path.
func Load(path string) (*Source, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	b := img.Bounds()
	if b.Dx() < 1 || b.Dy() < 1 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmpty)
	}

	return &Source{Path: path, Format: format, Image: img}, nil
}

// Width returns the image width in pixels.
func (s *Source) Width() int {
	if s.Image == nil {
		return 0
	}
	return s.Image.Bounds().Dx()
}

// Height returns the image height in pixels.
func (s *Source) Height() int {
	if s.Image == nil {
		return 0
	}
	return s.Image.Bounds().Dy()
}

// DefaultExtensions lists the file extensions picked up by a folder scan.
func DefaultExtensions() []string {
	return []string{".jpg", ".jpeg", ".png"}
}

// SupportedFormats returns every extension Load can decode.
func SupportedFormats() []string {
	return []string{".jpg", ".jpeg", ".png", ".tiff", ".tif"}
}

// HasExtension checks whether path ends in one of exts, ignoring case.
func HasExtension(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}
