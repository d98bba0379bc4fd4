package imageio

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Beastly713/steg/pkg/raster"
	"github.com/Beastly713/steg/pkg/stego"
)

func testRaster(t *testing.T, opaque bool) *raster.Image {
	t.Helper()
	img, err := raster.New(6, 5, 4)
	require.NoError(t, err)
	for i := range img.Pix {
		img.Pix[i] = uint8(i*31 + 3)
		if i%4 == 3 && opaque {
			img.Pix[i] = 0xff
		}
	}
	return img
}

func TestPNGRoundTrip(t *testing.T) {
	img := testRaster(t, false)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, img, PNG))

	back, name, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, "png", name)
	assert.Equal(t, img, back)
}

func TestBMPRoundTrip(t *testing.T) {
	img := testRaster(t, true)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, img, BMP))

	back, name, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, "bmp", name)
	assert.Equal(t, img, back)
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	img := testRaster(t, true)

	for _, name := range []string{"out.png", "OUT.BMP"} {
		path := filepath.Join(dir, name)
		require.NoError(t, Save(path, img))

		back, _, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, img, back, name)
	}
}

func TestSaveRejectsLossyFormats(t *testing.T) {
	dir := t.TempDir()
	img := testRaster(t, true)

	for _, name := range []string{"out.jpg", "out.jpeg", "out.gif", "out"} {
		path := filepath.Join(dir, name)
		err := Save(path, img)
		require.True(t, errors.Is(err, stego.ErrOutputWrite), "%s: %v", name, err)

		_, statErr := os.Stat(path)
		assert.True(t, os.IsNotExist(statErr), "%s should not be created", name)
	}
}

func TestSaveToMissingDirectory(t *testing.T) {
	img := testRaster(t, true)
	err := Save(filepath.Join(t.TempDir(), "missing", "out.png"), img)
	require.True(t, errors.Is(err, stego.ErrOutputWrite), "got %v", err)
}

func TestDecodeGarbage(t *testing.T) {
	_, _, err := Decode(bytes.NewReader([]byte("definitely not an image")))
	require.True(t, errors.Is(err, stego.ErrImageLoad), "got %v", err)
}

func TestLoadMissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope.png"))
	require.True(t, errors.Is(err, stego.ErrImageLoad), "got %v", err)
}

func TestDecodeJPEGCarrier(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			src.SetRGBA(x, y, color.RGBA{R: 120, G: 60, B: 30, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, src, nil))

	img, name, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", name)
	assert.Equal(t, 8, img.Width)
	assert.Equal(t, 8, img.Height)
}

func TestFormatFromPath(t *testing.T) {
	f, err := FormatFromPath("a/b/c.PNG")
	require.NoError(t, err)
	assert.Equal(t, PNG, f)

	f, err = FormatFromPath("x.bmp")
	require.NoError(t, err)
	assert.Equal(t, BMP, f)

	_, err = FormatFromPath("x.webp")
	require.True(t, errors.Is(err, stego.ErrOutputWrite))
}
