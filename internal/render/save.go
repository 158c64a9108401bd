package render

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

// SaveImage writes img to path as PNG or JPEG, depending on the extension.
func SaveImage(path string, img image.Image) error {
	var encode func(f *os.File) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		encode = func(f *os.File) error { return png.Encode(f, img) }
	case ".jpg", ".jpeg":
		encode = func(f *os.File) error { return jpeg.Encode(f, img, &jpeg.Options{Quality: 95}) }
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := encode(out); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}
