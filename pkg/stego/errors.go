package stego

import "errors"

// ErrImageLoad indicates the source bytes could not be decoded as an image.
var ErrImageLoad = errors.New("could not load image")

// ErrPayloadRead indicates the payload source could not be read.
var ErrPayloadRead = errors.New("could not read payload")

// ErrPayloadTooLarge indicates the payload length does not fit the 32-bit length prefix.
var ErrPayloadTooLarge = errors.New("payload too large for 32-bit length prefix")

// ErrInsufficientCapacity indicates the carrier image is too small to hold the framed payload.
var ErrInsufficientCapacity = errors.New("message too large for carrier image")

// ErrInvalidLength indicates the decoded length prefix describes a frame the
// image could not hold. Either the image carries no hidden data or it is corrupted.
var ErrInvalidLength = errors.New("could not extract hidden data (invalid length prefix)")

// ErrOutputWrite indicates the destination rejected the encoded image or payload.
var ErrOutputWrite = errors.New("could not write output")

// Warning is an outcome that is reported through the error channel but is
// not a failure. Callers typically show it as an informational message.
type Warning struct {
	msg string
}

func (w *Warning) Error() string {
	return w.msg
}

// ErrEmptyPayload is returned by Decode when the length prefix is zero.
// There is nothing to extract, but the image is a valid stego image.
var ErrEmptyPayload error = &Warning{msg: "decoded size is 0, nothing to extract"}

// IsWarning reports whether err (or anything it wraps) is a Warning.
func IsWarning(err error) bool {
	var w *Warning
	return errors.As(err, &w)
}
