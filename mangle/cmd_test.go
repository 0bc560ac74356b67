package mangle

import (
	"log/slog"
	"testing"

	"pixgrid/grid"
	"pixgrid/pixel"
)

func TestParseCrop(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		xr, yr  grid.Range
		wantErr bool
	}{
		{"plain", "1,2,3,4", grid.Range{Lo: 1, Hi: 3}, grid.Range{Lo: 2, Hi: 4}, false},
		{"spaces", " 0, 0, 10, 5 ", grid.Range{Lo: 0, Hi: 10}, grid.Range{Lo: 0, Hi: 5}, false},
		{"too few fields", "1,2,3", grid.Range{}, grid.Range{}, true},
		{"too many fields", "1,2,3,4,5", grid.Range{}, grid.Range{}, true},
		{"not a number", "a,0,1,1", grid.Range{}, grid.Range{}, true},
		{"empty window", "2,0,2,4", grid.Range{}, grid.Range{}, true},
		{"reversed window", "3,0,1,4", grid.Range{}, grid.Range{}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			xr, yr, err := parseCrop(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("parseCrop(%q) error = %v, wantErr %t", tc.in, err, tc.wantErr)
			}
			if err != nil {
				return
			}
			if xr != tc.xr || yr != tc.yr {
				t.Errorf("parseCrop(%q) = %v, %v, want %v, %v", tc.in, xr, yr, tc.xr, tc.yr)
			}
		})
	}
}

func TestOutputType(t *testing.T) {
	tests := []struct {
		name, imgType, format, want string
	}{
		{"forced png", "jpeg", "png", "png"},
		{"same keeps type", "bmp", "same", "bmp"},
		{"unsup leaves supported alone", "jpeg", "unsup:png", "jpeg"},
		{"unsup converts webp", "webp", "unsup:png", "png"},
		{"unsup keeps qoi", "qoi", "unsup:png", "qoi"},
		{"forced qoi", "png", "qoi", "qoi"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := outputType(tc.imgType, tc.format); got != tc.want {
				t.Errorf("outputType(%q, %q) = %q, want %q", tc.imgType, tc.format, got, tc.want)
			}
		})
	}
}

func TestSharpenLeavesFlatRegions(t *testing.T) {
	flat := grid.NewFilled(5, 5, pixel.RGBA{R: 80, G: 90, B: 100, A: 255})
	got := grid.Convolve[pixel.RGBA, pixel.RGBASum](flat, sharpenKernel())
	if !grid.Equal(got, flat) {
		t.Error("sharpening a flat image changed it")
	}
}

func TestTransformCropsBeforeRotating(t *testing.T) {
	c := &CLICmd{
		Crop:   "0,0,2,1",
		Rotate: 1,
		cropX:  grid.Range{Lo: 0, Hi: 2},
		cropY:  grid.Range{Lo: 0, Hi: 1},
	}
	src := grid.MustFromPix(2, 2, []pixel.RGBA{
		{R: 1}, {R: 2},
		{R: 3}, {R: 4},
	})

	out, err := c.transform(slog.Default(), src)
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	// Cropping to the top row first, then turning it upright.
	if out.Width() != 1 || out.Height() != 2 {
		t.Fatalf("dimensions = %dx%d, want 1x2", out.Width(), out.Height())
	}
	if v, _ := out.Get(0, 0); v.R != 1 {
		t.Errorf("top pixel R = %d, want 1", v.R)
	}
	if v, _ := out.Get(0, 1); v.R != 2 {
		t.Errorf("bottom pixel R = %d, want 2", v.R)
	}
}

func TestTransformRejectsCropOutsideImage(t *testing.T) {
	c := &CLICmd{
		Crop:  "0,0,5,5",
		cropX: grid.Range{Lo: 0, Hi: 5},
		cropY: grid.Range{Lo: 0, Hi: 5},
	}
	src := grid.NewFilled(2, 2, pixel.RGBA{A: 255})
	if _, err := c.transform(slog.Default(), src); err == nil {
		t.Error("transform accepted a crop window larger than the image")
	}
}
