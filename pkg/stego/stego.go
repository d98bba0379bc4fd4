package stego

import (
	"fmt"

	"github.com/Beastly713/steg/pkg/raster"
)

// Encode hides payload inside the carrier using LSB encoding.
// It returns a new image containing the hidden data; the carrier is not modified.
//
// The payload is framed as a 32-bit length followed by the bytes themselves,
// every value emitted least-significant bit first.
func Encode(carrier *raster.Image, payload []byte) (*raster.Image, error) {
	if err := checkRaster(carrier); err != nil {
		return nil, err
	}

	frameBits, err := FrameBits(uint64(len(payload)))
	if err != nil {
		return nil, err
	}

	capacity := CapacityBits(carrier.Width, carrier.Height)
	if capacity < frameBits {
		return nil, fmt.Errorf("%w: need %d bits, have %d", ErrInsufficientCapacity, frameBits, capacity)
	}

	output := carrier.Clone()
	w := newBitWriter(output)
	w.writeBits(uint64(len(payload)), LengthPrefixBits)
	for _, b := range payload {
		w.writeBits(uint64(b), bitsPerByte)
	}

	return output, nil
}

// Decode retrieves the hidden payload from a stego image.
//
// A zero length prefix yields ErrEmptyPayload, which is a Warning rather
// than a failure. A prefix describing more data than the image can hold
// yields ErrInvalidLength.
func Decode(stegoImage *raster.Image) ([]byte, error) {
	if err := checkRaster(stegoImage); err != nil {
		return nil, err
	}

	capacity := CapacityBits(stegoImage.Width, stegoImage.Height)
	if capacity < LengthPrefixBits {
		return nil, fmt.Errorf("%w: image holds %d bits, a length prefix needs %d", ErrInvalidLength, capacity, LengthPrefixBits)
	}

	r := newBitReader(stegoImage)
	dataLen := r.readBits(LengthPrefixBits)

	// dataLen came from 32 bits, so FrameBits cannot fail here.
	frameBits, _ := FrameBits(dataLen)
	if frameBits > capacity {
		return nil, fmt.Errorf("%w: prefix declares %d bytes, image holds %d bits", ErrInvalidLength, dataLen, capacity)
	}

	if dataLen == 0 {
		return nil, ErrEmptyPayload
	}

	data := make([]byte, dataLen)
	for i := range data {
		data[i] = byte(r.readBits(bitsPerByte))
	}

	return data, nil
}

func checkRaster(img *raster.Image) error {
	if img == nil {
		return fmt.Errorf("%w: no image", ErrImageLoad)
	}
	if img.Width < 1 || img.Height < 1 {
		return fmt.Errorf("%w: invalid dimensions %dx%d", ErrImageLoad, img.Width, img.Height)
	}
	if img.Channels < ChannelsPerPixel {
		return fmt.Errorf("%w: %d channels per pixel, need at least %d", ErrImageLoad, img.Channels, ChannelsPerPixel)
	}
	if len(img.Pix) < img.Width*img.Height*img.Channels {
		return fmt.Errorf("%w: pixel buffer too short", ErrImageLoad)
	}
	return nil
}

// bitWriter overwrites channel LSBs in traversal order.
type bitWriter struct {
	img    *raster.Image
	cursor *Cursor
}

func newBitWriter(img *raster.Image) *bitWriter {
	return &bitWriter{img: img, cursor: NewCursor(img.Width)}
}

// writeBits emits the low n bits of v, least-significant first.
func (w *bitWriter) writeBits(v uint64, n int) {
	for i := 0; i < n; i++ {
		bit := uint8(v>>i) & 1
		a := w.cursor.Next()
		idx := w.img.Offset(a.X, a.Y, a.Channel)
		w.img.Pix[idx] = (w.img.Pix[idx] & 0xFE) | bit
	}
}

// bitReader collects channel LSBs in traversal order.
type bitReader struct {
	img    *raster.Image
	cursor *Cursor
}

func newBitReader(img *raster.Image) *bitReader {
	return &bitReader{img: img, cursor: NewCursor(img.Width)}
}

// readBits reassembles n bits into a value, the first bit read being bit 0.
func (r *bitReader) readBits(n int) uint64 {
	var v uint64
	for i := 0; i < n; i++ {
		a := r.cursor.Next()
		bit := r.img.Pix[r.img.Offset(a.X, a.Y, a.Channel)] & 1
		v |= uint64(bit) << i
	}
	return v
}
