package grid

import "pixgrid/pixel"

// Convolve slides kernel across src and returns the filtered grid. Each
// output pixel is the weighted mean of the kernel-sized neighborhood
// centered on it (kernel center at kw/2, kh/2). Wherever the neighborhood
// would reach outside src the original pixel passes through unchanged, so
// borders are preserved rather than extrapolated.
//
// The kernel weights must sum to a positive value; Convolve panics before
// touching any pixels otherwise. Spell both type arguments at the call
// site, e.g. Convolve[pixel.Gray, pixel.GraySum](src, k).
func Convolve[P pixel.Summable[P, S], S pixel.Sum[S, P]](src *Grid[P], kernel *Grid[pixel.Int]) *Grid[P] {
	total := 0
	for w := range kernel.Values() {
		total += int(w)
	}
	if total <= 0 {
		panic("grid: kernel weights must sum to a positive value")
	}

	kw, kh := kernel.width, kernel.height
	cx, cy := kw/2, kh/2
	out := New[P](src.width, src.height)
	for y := range src.height {
		o := y * src.width
		for x := range src.width {
			x0, y0 := x-cx, y-cy
			if x0 < 0 || y0 < 0 || x0+kw > src.width || y0+kh > src.height {
				out.pix[o+x] = src.pix[src.idx.at(x, y)]
				continue
			}
			var acc S
			for ky := range kh {
				krow := kernel.idx.at(0, ky)
				srow := src.idx.at(x0, y0+ky)
				for kx := range kw {
					acc = acc.Plus(src.pix[srow+kx].Weighted(int(kernel.pix[krow+kx])))
				}
			}
			out.pix[o+x] = acc.Mean(total)
		}
	}
	return out
}

// BoxKernel returns the (2*radius+1) square all-ones kernel that turns
// Convolve into a box blur. A radius below zero degrades to the 1x1
// identity kernel.
func BoxKernel(radius int) *Grid[pixel.Int] {
	size := 2*max(radius, 0) + 1
	return NewFilled(size, size, pixel.Int(1))
}
