package pipeline

import (
	"bytes"
	"fmt"
	"io"

	"github.com/Beastly713/steg/pkg/imageio"
	"github.com/Beastly713/steg/pkg/raster"
	"github.com/Beastly713/steg/pkg/stego"
)

// Stats describes a carrier and, after Hide, how much of it the frame used.
type Stats struct {
	Width        int
	Height       int
	CapacityBits uint64
	MaxPayload   uint64
	PayloadBytes int
	FrameBits    uint64
}

func newStats(width, height int) Stats {
	return Stats{
		Width:        width,
		Height:       height,
		CapacityBits: stego.CapacityBits(width, height),
		MaxPayload:   stego.MaxPayload(width, height),
	}
}

// Embed runs the in-memory half of Hide on an already loaded carrier:
// Read payload -> Encode. The carrier is not modified.
func Embed(carrier *raster.Image, payload io.Reader) (*raster.Image, Stats, error) {
	if carrier == nil {
		return nil, Stats{}, fmt.Errorf("%w: no image", stego.ErrImageLoad)
	}
	stats := newStats(carrier.Width, carrier.Height)

	// 1. Read the payload
	data, err := io.ReadAll(payload)
	if err != nil {
		return nil, stats, fmt.Errorf("%w: %v", stego.ErrPayloadRead, err)
	}
	stats.PayloadBytes = len(data)

	// 2. Embed (length and capacity are validated before any pixel changes)
	stegoImg, err := stego.Encode(carrier, data)
	if err != nil {
		return nil, stats, err
	}
	stats.FrameBits, _ = stego.FrameBits(uint64(len(data)))

	return stegoImg, stats, nil
}

// Hide orchestrates the flow: Load carrier -> Read payload -> Encode -> Serialize.
// The image is serialized in memory and handed to out in a single Write, so
// out sees nothing when an earlier step fails.
func Hide(carrier io.Reader, payload io.Reader, out io.Writer, format imageio.Format) (Stats, error) {
	// 1. Load the carrier
	img, _, err := imageio.Decode(carrier)
	if err != nil {
		return Stats{}, err
	}

	// 2. Read and embed the payload
	stegoImg, stats, err := Embed(img, payload)
	if err != nil {
		return stats, err
	}

	// 3. Serialize
	var buf bytes.Buffer
	if err := imageio.Encode(&buf, stegoImg, format); err != nil {
		return stats, err
	}
	if _, err := out.Write(buf.Bytes()); err != nil {
		return stats, fmt.Errorf("%w: %v", stego.ErrOutputWrite, err)
	}

	return stats, nil
}

// Reveal orchestrates the reverse: Load stego image -> Decode -> Write payload.
// On ErrEmptyPayload nothing is written and 0 is returned with the warning.
func Reveal(stegoImage io.Reader, out io.Writer) (int, error) {
	// 1. Load the image
	img, _, err := imageio.Decode(stegoImage)
	if err != nil {
		return 0, err
	}

	// 2. Extract
	data, err := stego.Decode(img)
	if err != nil {
		return 0, err
	}

	// 3. Write
	n, err := out.Write(data)
	if err != nil {
		return n, fmt.Errorf("%w: %v", stego.ErrOutputWrite, err)
	}

	return n, nil
}

// Inspect reports the dimensions and capacity of an image without changing it.
func Inspect(img io.Reader) (Stats, error) {
	r, _, err := imageio.Decode(img)
	if err != nil {
		return Stats{}, err
	}
	return newStats(r.Width, r.Height), nil
}
