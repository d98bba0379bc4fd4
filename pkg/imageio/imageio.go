package imageio

import (
	"bufio"
	"fmt"
	"image"
	_ "image/gif"  // Support GIF carriers (first frame)
	_ "image/jpeg" // Support JPEG carriers
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"

	"github.com/Beastly713/steg/pkg/raster"
	"github.com/Beastly713/steg/pkg/stego"
)

// Format is a lossless output format for stego images.
type Format string

const (
	PNG Format = "png"
	BMP Format = "bmp"
)

// Decode reads any registered image format (PNG, BMP, JPEG, GIF) into a raster.
// It returns the raster and the format name reported by the decoder.
func Decode(r io.Reader) (*raster.Image, string, error) {
	img, name, err := image.Decode(bufio.NewReader(r))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", stego.ErrImageLoad, err)
	}
	bounds := img.Bounds()
	if bounds.Dx() < 1 || bounds.Dy() < 1 {
		return nil, "", fmt.Errorf("%w: empty image", stego.ErrImageLoad)
	}
	return raster.FromImage(img), name, nil
}

// Load opens and decodes the image at path.
func Load(path string) (*raster.Image, string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", stego.ErrImageLoad, err)
	}
	defer file.Close()

	img, name, err := Decode(file)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return img, name, nil
}

// FormatFromPath picks the output format from the file extension.
// Only lossless formats are accepted, since lossy compression destroys LSB data.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return PNG, nil
	case ".bmp":
		return BMP, nil
	default:
		return "", fmt.Errorf("%w: %q is not a lossless format, use .png or .bmp", stego.ErrOutputWrite, filepath.Ext(path))
	}
}

// Encode serializes the raster in the given format.
func Encode(w io.Writer, img *raster.Image, format Format) error {
	var err error
	switch format {
	case PNG:
		encoder := png.Encoder{CompressionLevel: png.BestCompression}
		err = encoder.Encode(w, img.NRGBA())
	case BMP:
		err = bmp.Encode(w, img.NRGBA())
	default:
		return fmt.Errorf("%w: unsupported format %q", stego.ErrOutputWrite, format)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", stego.ErrOutputWrite, err)
	}
	return nil
}

// Save writes the raster to path, choosing the format from the extension.
func Save(path string, img *raster.Image) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", stego.ErrOutputWrite, err)
	}

	w := bufio.NewWriter(file)
	if err := Encode(w, img, format); err != nil {
		file.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("%w: %v", stego.ErrOutputWrite, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("%w: %v", stego.ErrOutputWrite, err)
	}
	return nil
}
