package grid

// Map builds a new grid of the same dimensions by applying f to every
// pixel in row-major order. The element type may change, which is why Map
// is a function rather than a method.
func Map[T, U any](g *Grid[T], f func(T) U) *Grid[U] {
	out := New[U](g.width, g.height)
	i := 0
	for v := range g.Values() {
		out.pix[i] = f(v)
		i++
	}
	return out
}

// MapIndexed is Map with the pixel coordinate passed alongside the value.
func MapIndexed[T, U any](g *Grid[T], f func(x, y int, v T) U) *Grid[U] {
	out := New[U](g.width, g.height)
	i := 0
	for p, v := range g.All() {
		out.pix[i] = f(p.X, p.Y, v)
		i++
	}
	return out
}

// Reduce folds the pixels in row-major order, starting from init.
func Reduce[T, U any](g *Grid[T], init U, f func(U, T) U) U {
	acc := init
	for v := range g.Values() {
		acc = f(acc, v)
	}
	return acc
}
