// Package pixel defines the element types pixgrid containers hold and the
// weighted-sum algebra used to average them.
//
// Every pixel type P is paired with a sum type S wide enough to accumulate
// many weighted samples without overflow. The Summable and Sum constraints
// tie the pair together so averaging code is checked entirely at compile
// time; there is no runtime capability dispatch.
package pixel

// Gray is a single 8-bit luminance channel.
type Gray uint8

// Int is a signed integer sample. It doubles as the weight element of
// convolution kernels.
type Int int

// Float32 is a single-precision scalar sample.
type Float32 float32

// Float64 is a double-precision scalar sample.
type Float64 float64

// RGBA is an 8-bit-per-channel color with straight (not premultiplied)
// alpha. The zero value is fully transparent.
type RGBA struct {
	R, G, B, A uint8
}

// Luma reduces the color to its BT.601 luminance, ignoring alpha.
func (p RGBA) Luma() Gray {
	return Gray((299*int(p.R) + 587*int(p.G) + 114*int(p.B) + 500) / 1000)
}
