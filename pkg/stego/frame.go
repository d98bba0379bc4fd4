package stego

import (
	"fmt"
	"math"
)

// Frame layout:
//
// +----------------------+------------------------------+
// | length L (LSB first) | L payload bytes (LSB first)  |
// +----------------------+------------------------------+
// |       32 bits        |          8*L bits            |
// +----------------------+------------------------------+
const (
	// LengthPrefixBits is the size of the length prefix at the start of every frame.
	LengthPrefixBits = 32

	// ChannelsPerPixel is the number of channels (R, G, B) carrying one bit each.
	ChannelsPerPixel = 3

	bitsPerByte = 8
)

// CapacityBits returns the number of LSB slots in a width x height image.
func CapacityBits(width, height int) uint64 {
	if width <= 0 || height <= 0 {
		return 0
	}
	return uint64(width) * uint64(height) * ChannelsPerPixel
}

// FrameBits returns the number of bits needed to embed a payload of
// payloadLen bytes, including the length prefix.
func FrameBits(payloadLen uint64) (uint64, error) {
	if payloadLen > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, payloadLen)
	}
	return LengthPrefixBits + payloadLen*bitsPerByte, nil
}

// MaxPayload returns the largest payload, in bytes, that fits in a
// width x height image.
func MaxPayload(width, height int) uint64 {
	capacity := CapacityBits(width, height)
	if capacity < LengthPrefixBits {
		return 0
	}
	n := (capacity - LengthPrefixBits) / bitsPerByte
	if n > math.MaxUint32 {
		n = math.MaxUint32
	}
	return n
}
