package grid

// FlipHorizontal returns a new grid mirrored around the vertical axis.
func (g *Grid[T]) FlipHorizontal() *Grid[T] {
	out := New[T](g.width, g.height)
	for y := range g.height {
		row := g.idx.at(0, y)
		o := y * g.width
		for x := range g.width {
			out.pix[o+g.width-1-x] = g.pix[row+x]
		}
	}
	return out
}

// FlipVertical returns a new grid mirrored around the horizontal axis.
func (g *Grid[T]) FlipVertical() *Grid[T] {
	out := New[T](g.width, g.height)
	for y := range g.height {
		row := g.idx.at(0, y)
		copy(out.pix[(g.height-1-y)*g.width:], g.pix[row:row+g.width])
	}
	return out
}

// Rotate returns a copy turned by times quarter turns, clockwise when
// positive and counter-clockwise when negative. Only times mod 4 matters;
// odd counts swap the dimensions. Each case reads the source through a
// closed-form coordinate remap, so rotating costs one pass regardless of
// the count.
func (g *Grid[T]) Rotate(times int) *Grid[T] {
	switch ((times % 4) + 4) % 4 {
	case 1:
		out := New[T](g.height, g.width)
		for y := range out.height {
			o := y * out.width
			for x := range out.width {
				out.pix[o+x] = g.pix[g.idx.at(y, g.height-1-x)]
			}
		}
		return out
	case 2:
		out := New[T](g.width, g.height)
		for y := range g.height {
			o := y * g.width
			for x := range g.width {
				out.pix[o+x] = g.pix[g.idx.at(g.width-1-x, g.height-1-y)]
			}
		}
		return out
	case 3:
		out := New[T](g.height, g.width)
		for y := range out.height {
			o := y * out.width
			for x := range out.width {
				out.pix[o+x] = g.pix[g.idx.at(g.width-1-y, x)]
			}
		}
		return out
	default:
		return g.Clone()
	}
}
