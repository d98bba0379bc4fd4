package pipeline

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Beastly713/steg/pkg/imageio"
	"github.com/Beastly713/steg/pkg/raster"
	"github.com/Beastly713/steg/pkg/stego"
)

// carrierPNG returns an encoded PNG of the given size filled with noise.
func carrierPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img, err := raster.New(width, height, 4)
	require.NoError(t, err)
	r := rand.New(rand.NewSource(int64(width*height + 1)))
	r.Read(img.Pix)
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}

	var buf bytes.Buffer
	require.NoError(t, imageio.Encode(&buf, img, imageio.PNG))
	return buf.Bytes()
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

type failingWriter struct{}

type countingWriter struct {
	bytes.Buffer
	writes int
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.writes++
	return w.Buffer.Write(p)
}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestHideAndReveal(t *testing.T) {
	secret := []byte("This is a secret message that is hidden in the pixels.")

	var stegoPNG bytes.Buffer
	stats, err := Hide(bytes.NewReader(carrierPNG(t, 32, 32)), bytes.NewReader(secret), &stegoPNG, imageio.PNG)
	require.NoError(t, err)
	assert.Equal(t, 32, stats.Width)
	assert.Equal(t, uint64(32*32*3), stats.CapacityBits)
	assert.Equal(t, len(secret), stats.PayloadBytes)
	assert.Equal(t, uint64(32+8*len(secret)), stats.FrameBits)

	var out bytes.Buffer
	n, err := Reveal(&stegoPNG, &out)
	require.NoError(t, err)
	assert.Equal(t, len(secret), n)
	assert.Equal(t, secret, out.Bytes())
}

func TestHideAndRevealBMP(t *testing.T) {
	secret := []byte("bitmaps are lossless too")

	var stegoBMP bytes.Buffer
	_, err := Hide(bytes.NewReader(carrierPNG(t, 20, 10)), bytes.NewReader(secret), &stegoBMP, imageio.BMP)
	require.NoError(t, err)

	var out bytes.Buffer
	_, err = Reveal(&stegoBMP, &out)
	require.NoError(t, err)
	assert.Equal(t, secret, out.Bytes())
}

func TestHideErrors(t *testing.T) {
	t.Run("carrier not an image", func(t *testing.T) {
		var out bytes.Buffer
		_, err := Hide(bytes.NewReader([]byte("nope")), bytes.NewReader([]byte("x")), &out, imageio.PNG)
		require.True(t, errors.Is(err, stego.ErrImageLoad), "got %v", err)
		assert.Zero(t, out.Len())
	})

	t.Run("payload unreadable", func(t *testing.T) {
		var out bytes.Buffer
		_, err := Hide(bytes.NewReader(carrierPNG(t, 8, 8)), failingReader{}, &out, imageio.PNG)
		require.True(t, errors.Is(err, stego.ErrPayloadRead), "got %v", err)
		assert.Zero(t, out.Len())
	})

	t.Run("carrier too small", func(t *testing.T) {
		var out bytes.Buffer
		_, err := Hide(bytes.NewReader(carrierPNG(t, 2, 2)), bytes.NewReader(nil), &out, imageio.PNG)
		require.True(t, errors.Is(err, stego.ErrInsufficientCapacity), "got %v", err)
		assert.Zero(t, out.Len())
	})

	t.Run("sink rejects", func(t *testing.T) {
		_, err := Hide(bytes.NewReader(carrierPNG(t, 8, 8)), bytes.NewReader([]byte("x")), failingWriter{}, imageio.PNG)
		require.True(t, errors.Is(err, stego.ErrOutputWrite), "got %v", err)
	})
}

func TestHideWritesOnce(t *testing.T) {
	out := &countingWriter{}
	_, err := Hide(bytes.NewReader(carrierPNG(t, 64, 64)), bytes.NewReader(make([]byte, 1000)), out, imageio.PNG)
	require.NoError(t, err)
	assert.Equal(t, 1, out.writes)

	img, _, err := imageio.Decode(&out.Buffer)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Width)
}

func TestEmbed(t *testing.T) {
	carrier, _, err := imageio.Decode(bytes.NewReader(carrierPNG(t, 16, 16)))
	require.NoError(t, err)
	before := carrier.Clone()

	stegoImg, stats, err := Embed(carrier, bytes.NewReader([]byte("hello")))
	require.NoError(t, err)
	assert.Equal(t, before.Pix, carrier.Pix, "carrier must not change")
	assert.Equal(t, 5, stats.PayloadBytes)
	assert.Equal(t, uint64(32+40), stats.FrameBits)

	data, err := stego.Decode(stegoImg)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)

	_, _, err = Embed(carrier, failingReader{})
	assert.ErrorIs(t, err, stego.ErrPayloadRead)
}

func TestRevealEmptyPayload(t *testing.T) {
	var stegoPNG bytes.Buffer
	_, err := Hide(bytes.NewReader(carrierPNG(t, 4, 3)), bytes.NewReader(nil), &stegoPNG, imageio.PNG)
	require.NoError(t, err)

	var out bytes.Buffer
	n, err := Reveal(&stegoPNG, &out)
	require.True(t, errors.Is(err, stego.ErrEmptyPayload), "got %v", err)
	assert.True(t, stego.IsWarning(err))
	assert.Zero(t, n)
	assert.Zero(t, out.Len())
}

func TestRevealSinkRejects(t *testing.T) {
	var stegoPNG bytes.Buffer
	_, err := Hide(bytes.NewReader(carrierPNG(t, 8, 8)), bytes.NewReader([]byte("abc")), &stegoPNG, imageio.PNG)
	require.NoError(t, err)

	_, err = Reveal(&stegoPNG, failingWriter{})
	require.True(t, errors.Is(err, stego.ErrOutputWrite), "got %v", err)
}

func TestInspect(t *testing.T) {
	stats, err := Inspect(bytes.NewReader(carrierPNG(t, 10, 10)))
	require.NoError(t, err)
	assert.Equal(t, 10, stats.Width)
	assert.Equal(t, 10, stats.Height)
	assert.Equal(t, uint64(300), stats.CapacityBits)
	assert.Equal(t, uint64(33), stats.MaxPayload)
}
