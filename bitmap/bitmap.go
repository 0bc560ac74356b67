// Package bitmap exchanges grids with flat byte buffers and with the
// standard library's image types.
//
// Color buffers hold 4 bytes per pixel in R, G, B, A order with the color
// channels premultiplied by alpha. Encoding rounds the premultiplication
// to nearest, decoding rounds the reversal, so fully opaque pixels
// round-trip exactly while translucent ones lose the bits scaling
// discards. Alpha zero decodes as the fully transparent zero pixel.
package bitmap

import (
	"errors"
	"fmt"

	"pixgrid/grid"
	"pixgrid/pixel"
)

// ErrZeroArea reports a decode attempt with no pixels to produce.
var ErrZeroArea = errors.New("bitmap: zero-area image")

// EncodeRGBA flattens the grid row-major to 4 bytes per pixel of
// premultiplied RGBA. A zero-area grid encodes to an empty buffer.
func EncodeRGBA(g *grid.Grid[pixel.RGBA]) []byte {
	buf := make([]byte, 0, g.Width()*g.Height()*4)
	for p := range g.Values() {
		buf = append(buf, scale(p.R, p.A), scale(p.G, p.A), scale(p.B, p.A), p.A)
	}
	return buf
}

// DecodeRGBA builds a color grid from a flat buffer of width*height
// premultiplied RGBA pixels. Excess bytes are ignored; a short buffer is
// an error wrapping grid.ErrShortBuffer.
func DecodeRGBA(width, height int, buf []byte) (*grid.Grid[pixel.RGBA], error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrZeroArea, width, height)
	}
	if need := width * height * 4; len(buf) < need {
		return nil, fmt.Errorf("bitmap: %d bytes, need %d for %dx%d rgba: %w",
			len(buf), need, width, height, grid.ErrShortBuffer)
	}
	pix := make([]pixel.RGBA, width*height)
	for i := range pix {
		o := i * 4
		pix[i] = unpremultiply(buf[o], buf[o+1], buf[o+2], buf[o+3])
	}
	return grid.FromPix(width, height, pix)
}

// EncodeGray flattens a grayscale grid to one byte per pixel, row-major.
func EncodeGray(g *grid.Grid[pixel.Gray]) []byte {
	buf := make([]byte, 0, g.Width()*g.Height())
	for p := range g.Values() {
		buf = append(buf, uint8(p))
	}
	return buf
}

// DecodeGray builds a grayscale grid from one byte per pixel, row-major.
// Excess bytes are ignored; a short buffer is an error wrapping
// grid.ErrShortBuffer.
func DecodeGray(width, height int, buf []byte) (*grid.Grid[pixel.Gray], error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrZeroArea, width, height)
	}
	if need := width * height; len(buf) < need {
		return nil, fmt.Errorf("bitmap: %d bytes, need %d for %dx%d gray: %w",
			len(buf), need, width, height, grid.ErrShortBuffer)
	}
	pix := make([]pixel.Gray, width*height)
	for i := range pix {
		pix[i] = pixel.Gray(buf[i])
	}
	return grid.FromPix(width, height, pix)
}

// scale premultiplies one straight-alpha channel, rounding to nearest:
// (2*c*a + 255) / 510 == round(c*a/255).
func scale(c, a uint8) uint8 {
	return uint8((2*uint32(c)*uint32(a) + 255) / 510)
}

func unpremultiply(r, g, b, a uint8) pixel.RGBA {
	if a == 0 {
		return pixel.RGBA{}
	}
	return pixel.RGBA{R: unscale(r, a), G: unscale(g, a), B: unscale(b, a), A: a}
}

// unscale recovers a straight channel from its premultiplied form,
// rounding to nearest. Inputs that scale produced never exceed 255 after
// division; ones from foreign buffers can, and clamp.
func unscale(c, a uint8) uint8 {
	v := (510*uint32(c) + uint32(a)) / (2 * uint32(a))
	return uint8(min(v, 255))
}
