// Package grid provides a generic two-dimensional pixel container backed
// by a flat row-major buffer.
//
// Cropping never copies pixels: a crop is a view over the parent's buffer
// that maps coordinates through a constant offset. Creating a view marks
// both holders as sharing, and the first mutation through either one
// copies its visible region first, so holders never observe each other's
// writes. The package performs no locking; grids handed to another
// goroutine should be cloned first.
package grid

import (
	"errors"
	"fmt"
	"iter"
)

// ErrShortBuffer reports a construction buffer with fewer elements than
// the requested dimensions need.
var ErrShortBuffer = errors.New("grid: buffer shorter than width*height")

// Point addresses one cell, x growing rightward and y growing downward.
type Point struct {
	X, Y int
}

// Range is a half-open index interval [Lo, Hi).
type Range struct {
	Lo, Hi int
}

// Len returns the number of indices the range spans.
func (r Range) Len() int {
	if r.Hi <= r.Lo {
		return 0
	}
	return r.Hi - r.Lo
}

// within reports whether the range selects a non-empty window inside a
// dimension of the given size.
func (r Range) within(size int) bool {
	return r.Lo >= 0 && r.Lo < r.Hi && r.Hi <= size
}

// index maps container coordinates onto the backing buffer. The zero
// offsets describe a buffer the container fills outright; cropped views
// carry the buffer's real dimensions plus a constant offset. Composing
// crops only ever adds offsets, so lookups stay O(1) however deeply views
// nest.
type index struct {
	ox, oy     int
	rawW, rawH int
}

func direct(w, h int) index { return index{rawW: w, rawH: h} }

func (ix index) at(x, y int) int { return (y+ix.oy)*ix.rawW + x + ix.ox }

func (ix index) shifted(dx, dy int) index {
	ix.ox += dx
	ix.oy += dy
	return ix
}

// Grid is a width x height pixel container. The zero value is an empty
// grid; use the constructors for anything else.
//
// Invariant: a grid that is not marked shared owns a compact buffer of
// exactly width*height elements with zero index offsets.
type Grid[T any] struct {
	width  int
	height int
	idx    index
	pix    []T
	shared bool
}

// New returns a w x h grid of zero values. Dimensions below zero are
// clamped to zero.
func New[T any](w, h int) *Grid[T] {
	w, h = max(w, 0), max(h, 0)
	return &Grid[T]{width: w, height: h, idx: direct(w, h), pix: make([]T, w*h)}
}

// NewFilled returns a w x h grid with every cell set to fill.
func NewFilled[T any](w, h int, fill T) *Grid[T] {
	g := New[T](w, h)
	for i := range g.pix {
		g.pix[i] = fill
	}
	return g
}

// FromPix builds a w x h grid from pix in row-major order. The buffer is
// copied, so the caller keeps ownership of pix. Excess elements are
// ignored; too few is an error wrapping ErrShortBuffer.
func FromPix[T any](w, h int, pix []T) (*Grid[T], error) {
	w, h = max(w, 0), max(h, 0)
	if len(pix) < w*h {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrShortBuffer, len(pix), w*h)
	}
	g := New[T](w, h)
	copy(g.pix, pix[:w*h])
	return g, nil
}

// MustFromPix is FromPix for buffers known to be large enough; it panics
// on error. Handy for fixed kernels.
func MustFromPix[T any](w, h int, pix []T) *Grid[T] {
	g, err := FromPix(w, h, pix)
	if err != nil {
		panic(err)
	}
	return g
}

// Width returns the horizontal extent in pixels.
func (g *Grid[T]) Width() int { return g.width }

// Height returns the vertical extent in pixels.
func (g *Grid[T]) Height() int { return g.height }

// Contains reports whether (x, y) addresses a cell of the grid.
func (g *Grid[T]) Contains(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Index maps (x, y) to its position in the backing buffer, or false when
// the coordinate is out of bounds. For cropped views the position is
// relative to the shared parent buffer.
func (g *Grid[T]) Index(x, y int) (int, bool) {
	if !g.Contains(x, y) {
		return 0, false
	}
	return g.idx.at(x, y), true
}

// Get returns the pixel at (x, y), or false when out of bounds.
func (g *Grid[T]) Get(x, y int) (T, bool) {
	if !g.Contains(x, y) {
		var zero T
		return zero, false
	}
	return g.pix[g.idx.at(x, y)], true
}

// Set writes the pixel at (x, y). Writes outside the bounds are ignored.
// A grid sharing its buffer copies the visible region before the write.
func (g *Grid[T]) Set(x, y int, v T) {
	if !g.Contains(x, y) {
		return
	}
	g.privatize()
	g.pix[g.idx.at(x, y)] = v
}

// privatize gives g sole ownership of its pixels by compacting the
// visible region into a fresh buffer with direct indexing.
func (g *Grid[T]) privatize() {
	if !g.shared {
		return
	}
	pix := make([]T, g.width*g.height)
	for y := range g.height {
		row := g.idx.at(0, y)
		copy(pix[y*g.width:], g.pix[row:row+g.width])
	}
	g.pix = pix
	g.idx = direct(g.width, g.height)
	g.shared = false
}

// Crop returns the sub-rectangle selected by the two half-open ranges as
// a view sharing g's buffer; no pixels are copied and the cost does not
// grow with nesting depth. The result reports false when either range is
// empty, reversed, or reaches outside the grid. Both g and the view turn
// copy-on-write: whichever side is written first copies its region, after
// which the two diverge.
func (g *Grid[T]) Crop(xr, yr Range) (*Grid[T], bool) {
	if !xr.within(g.width) || !yr.within(g.height) {
		return nil, false
	}
	g.shared = true
	return &Grid[T]{
		width:  xr.Len(),
		height: yr.Len(),
		idx:    g.idx.shifted(xr.Lo, yr.Lo),
		pix:    g.pix,
		shared: true,
	}, true
}

// Clone returns a deep copy with its own compact buffer.
func (g *Grid[T]) Clone() *Grid[T] {
	out := New[T](g.width, g.height)
	for y := range g.height {
		row := g.idx.at(0, y)
		copy(out.pix[y*g.width:], g.pix[row:row+g.width])
	}
	return out
}

// Fill overwrites every cell with v.
func (g *Grid[T]) Fill(v T) {
	g.Update(func(T) T { return v })
}

// Update rewrites every cell in place through f, visiting row-major.
func (g *Grid[T]) Update(f func(T) T) {
	if g.width == 0 || g.height == 0 {
		return
	}
	g.privatize()
	for i, v := range g.pix {
		g.pix[i] = f(v)
	}
}

// Values yields the pixels in row-major order. The sequence can be ranged
// over any number of times; each range restarts at the first pixel.
func (g *Grid[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for y := range g.height {
			row := g.idx.at(0, y)
			for x := range g.width {
				if !yield(g.pix[row+x]) {
					return
				}
			}
		}
	}
}

// All yields (coordinate, pixel) pairs in row-major order.
func (g *Grid[T]) All() iter.Seq2[Point, T] {
	return func(yield func(Point, T) bool) {
		for y := range g.height {
			row := g.idx.at(0, y)
			for x := range g.width {
				if !yield(Point{x, y}, g.pix[row+x]) {
					return
				}
			}
		}
	}
}

// Equal reports whether a and b have the same dimensions and pixels.
func Equal[T comparable](a, b *Grid[T]) bool {
	if a.width != b.width || a.height != b.height {
		return false
	}
	for y := range a.height {
		ra, rb := a.idx.at(0, y), b.idx.at(0, y)
		for x := range a.width {
			if a.pix[ra+x] != b.pix[rb+x] {
				return false
			}
		}
	}
	return true
}
