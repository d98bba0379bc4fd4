package stego

// Address identifies a single LSB slot: one channel of one pixel.
type Address struct {
	X       int
	Y       int
	Channel int
}

// Locate maps a global bit index to its slot in an image of the given width.
// Three consecutive bits share a pixel (channels 0, 1, 2) and pixels are
// visited row-major. Locate does not check the index against the image
// height; staying below the capacity is up to the caller.
func Locate(bit uint64, width int) Address {
	w := uint64(width)
	pixel := bit / ChannelsPerPixel
	return Address{
		X:       int(pixel % w),
		Y:       int(pixel / w),
		Channel: int(bit % ChannelsPerPixel),
	}
}

// Cursor hands out slot addresses for bit indices 0, 1, 2, … in order.
// It is local to one encode or decode call.
type Cursor struct {
	width int
	bit   uint64
}

// NewCursor returns a cursor positioned at bit 0 for an image of the given width.
func NewCursor(width int) *Cursor {
	return &Cursor{width: width}
}

// Next returns the address of the current bit and advances by one.
func (c *Cursor) Next() Address {
	a := Locate(c.bit, c.width)
	c.bit++
	return a
}

// Pos returns the index of the next bit to be handed out.
func (c *Cursor) Pos() uint64 {
	return c.bit
}
