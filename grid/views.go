package grid

import "iter"

// Row is a one-dimensional horizontal slice of a grid. It captures the
// grid by value when created, so writes to the source made afterwards are
// not visible through the row, and writes through Set stay local to the
// row until pushed back with Grid.SetRow.
type Row[T any] struct {
	src Grid[T]
	y   int
}

// Row returns the horizontal slice at row y. Any y is accepted; a row
// outside the grid has length zero and yields no pixels.
func (g *Grid[T]) Row(y int) Row[T] {
	g.shared = true
	return Row[T]{src: *g, y: y}
}

// Len returns the number of pixels in the row: the grid width, or zero
// for a row outside the grid.
func (r Row[T]) Len() int {
	if r.y < 0 || r.y >= r.src.height {
		return 0
	}
	return r.src.width
}

// Get returns the pixel at column x, or false when x or the row itself
// lies outside the captured grid.
func (r Row[T]) Get(x int) (T, bool) {
	return r.src.Get(x, r.y)
}

// Set writes the pixel at column x into the row's private copy, leaving
// the source grid untouched. Writes outside the row are ignored.
func (r *Row[T]) Set(x int, v T) {
	r.src.Set(x, r.y, v)
}

// Values yields the row's pixels left to right.
func (r Row[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for x := range r.Len() {
			v, _ := r.src.Get(x, r.y)
			if !yield(v) {
				return
			}
		}
	}
}

// SetRow copies the pixels of row into the grid at row y, the one way a
// modified Row flows back into a container. Columns beyond the shorter of
// the two widths and rows outside the grid are ignored.
func (g *Grid[T]) SetRow(y int, row Row[T]) {
	if y < 0 || y >= g.height {
		return
	}
	n := min(row.Len(), g.width)
	if n == 0 {
		return
	}
	g.privatize()
	for x := range n {
		v, _ := row.Get(x)
		g.pix[g.idx.at(x, y)] = v
	}
}

// Column is the vertical counterpart of Row, with the same capture
// semantics.
type Column[T any] struct {
	src Grid[T]
	x   int
}

// Column returns the vertical slice at column x.
func (g *Grid[T]) Column(x int) Column[T] {
	g.shared = true
	return Column[T]{src: *g, x: x}
}

// Len returns the number of pixels in the column: the grid height, or
// zero for a column outside the grid.
func (c Column[T]) Len() int {
	if c.x < 0 || c.x >= c.src.width {
		return 0
	}
	return c.src.height
}

// Get returns the pixel at row y, or false when y or the column itself
// lies outside the captured grid.
func (c Column[T]) Get(y int) (T, bool) {
	return c.src.Get(c.x, y)
}

// Set writes the pixel at row y into the column's private copy, leaving
// the source grid untouched.
func (c *Column[T]) Set(y int, v T) {
	c.src.Set(c.x, y, v)
}

// Values yields the column's pixels top to bottom.
func (c Column[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for y := range c.Len() {
			v, _ := c.src.Get(c.x, y)
			if !yield(v) {
				return
			}
		}
	}
}

// RowRange is a band of consecutive rows captured by value from a grid.
type RowRange[T any] struct {
	src Grid[T]
	yr  Range
}

// Rows returns the band of rows selected by yr. Like Row, the band
// captures the grid by value; rows reaching outside the grid read as
// absent.
func (g *Grid[T]) Rows(yr Range) RowRange[T] {
	g.shared = true
	return RowRange[T]{src: *g, yr: yr}
}

// Len returns the number of rows the band spans.
func (rr RowRange[T]) Len() int { return rr.yr.Len() }

// Row returns the i'th row of the band counting from the top, or false
// when i is outside 0..Len()-1.
func (rr RowRange[T]) Row(i int) (Row[T], bool) {
	if i < 0 || i >= rr.yr.Len() {
		return Row[T]{}, false
	}
	return Row[T]{src: rr.src, y: rr.yr.Lo + i}, true
}

// Slice restricts the band horizontally, producing the same grid that
// cropping the source with (xr, yr) would.
func (rr RowRange[T]) Slice(xr Range) (*Grid[T], bool) {
	return rr.src.Crop(xr, rr.yr)
}
