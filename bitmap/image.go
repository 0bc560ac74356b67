package bitmap

import (
	"fmt"
	"image"

	"pixgrid/grid"
	"pixgrid/pixel"

	"golang.org/x/image/draw"
)

// FromImage converts any image into a straight-alpha color grid. Sources
// that are not already zero-origin NRGBA are redrawn into one first;
// premultiplied source formats survive that with the usual rounding loss.
func FromImage(img image.Image) (*grid.Grid[pixel.RGBA], error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrZeroArea, w, h)
	}

	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Stride != w*4 || !b.Min.Eq(image.Point{}) {
		dst := image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
		nrgba = dst
	}

	pix := make([]pixel.RGBA, w*h)
	for i := range pix {
		o := i * 4
		pix[i] = pixel.RGBA{R: nrgba.Pix[o], G: nrgba.Pix[o+1], B: nrgba.Pix[o+2], A: nrgba.Pix[o+3]}
	}
	return grid.FromPix(w, h, pix)
}

// ToImage renders the grid into a standard NRGBA image.
func ToImage(g *grid.Grid[pixel.RGBA]) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, g.Width(), g.Height()))
	i := 0
	for p := range g.Values() {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = p.R, p.G, p.B, p.A
		i += 4
	}
	return img
}

// ToGrayImage renders a grayscale grid into a standard Gray image.
func ToGrayImage(g *grid.Grid[pixel.Gray]) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, g.Width(), g.Height()))
	i := 0
	for p := range g.Values() {
		img.Pix[i] = uint8(p)
		i++
	}
	return img
}
