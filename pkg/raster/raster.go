package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// Image is a dense, row-major pixel buffer with 8 bits per channel.
// Channels 0, 1, 2 are red, green and blue; an optional channel 3 is alpha.
type Image struct {
	Width    int
	Height   int
	Channels int
	Pix      []uint8
}

// New allocates a zeroed raster. Channels must be 3 (RGB) or 4 (RGBA).
func New(width, height, channels int) (*Image, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("invalid dimensions %dx%d", width, height)
	}
	if channels != 3 && channels != 4 {
		return nil, fmt.Errorf("unsupported channel count %d (want 3 or 4)", channels)
	}
	return &Image{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]uint8, width*height*channels),
	}, nil
}

// FromImage copies any decoded image into a 4-channel raster.
// The raster's (0, 0) is the image's Bounds().Min.
func FromImage(img image.Image) *Image {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	src, ok := img.(*image.NRGBA)
	if !ok {
		// Convert everything else through draw so alpha is un-premultiplied once.
		src = image.NewNRGBA(image.Rect(0, 0, width, height))
		draw.Draw(src, src.Bounds(), img, bounds.Min, draw.Src)
	}

	out := &Image{
		Width:    width,
		Height:   height,
		Channels: 4,
		Pix:      make([]uint8, width*height*4),
	}
	rowLen := width * 4
	for y := 0; y < height; y++ {
		start := src.PixOffset(src.Rect.Min.X, src.Rect.Min.Y+y)
		copy(out.Pix[y*rowLen:(y+1)*rowLen], src.Pix[start:start+rowLen])
	}
	return out
}

// NRGBA converts the raster back into a standard library image anchored at (0, 0).
// 3-channel rasters become fully opaque.
func (m *Image) NRGBA() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, m.Width, m.Height))
	if m.Channels == 4 {
		copy(out.Pix, m.Pix)
		return out
	}
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			i := m.Offset(x, y, 0)
			out.SetNRGBA(x, y, color.NRGBA{R: m.Pix[i], G: m.Pix[i+1], B: m.Pix[i+2], A: 0xff})
		}
	}
	return out
}

// Offset returns the index into Pix of the given channel of pixel (x, y).
func (m *Image) Offset(x, y, channel int) int {
	return (y*m.Width+x)*m.Channels + channel
}

// Clone returns a deep copy.
func (m *Image) Clone() *Image {
	pix := make([]uint8, len(m.Pix))
	copy(pix, m.Pix)
	return &Image{
		Width:    m.Width,
		Height:   m.Height,
		Channels: m.Channels,
		Pix:      pix,
	}
}
