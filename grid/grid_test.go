package grid

import (
	"errors"
	"slices"
	"testing"
)

func mustGrid[T any](t *testing.T, w, h int, pix []T) *Grid[T] {
	t.Helper()
	g, err := FromPix(w, h, pix)
	if err != nil {
		t.Fatalf("FromPix(%d, %d, %d elems): %v", w, h, len(pix), err)
	}
	return g
}

func collect[T any](g *Grid[T]) []T {
	return slices.Collect(g.Values())
}

func iota2D(t *testing.T, w, h int) *Grid[int] {
	t.Helper()
	pix := make([]int, w*h)
	for i := range pix {
		pix[i] = i
	}
	return mustGrid(t, w, h, pix)
}

func TestFromPix(t *testing.T) {
	g := mustGrid(t, 2, 2, []int{10, 20, 30, 40})
	if g.Width() != 2 || g.Height() != 2 {
		t.Fatalf("dimensions = %dx%d, want 2x2", g.Width(), g.Height())
	}
	if got, ok := g.Get(1, 0); !ok || got != 20 {
		t.Errorf("Get(1, 0) = %d, %t, want 20, true", got, ok)
	}
	if got, ok := g.Get(0, 1); !ok || got != 30 {
		t.Errorf("Get(0, 1) = %d, %t, want 30, true", got, ok)
	}
}

func TestFromPixShortBuffer(t *testing.T) {
	if _, err := FromPix(2, 2, []int{1, 2, 3}); !errors.Is(err, ErrShortBuffer) {
		t.Fatalf("FromPix with 3 of 4 elements: err = %v, want ErrShortBuffer", err)
	}
}

func TestFromPixIgnoresExcess(t *testing.T) {
	g := mustGrid(t, 2, 1, []int{1, 2, 3, 4})
	if got := collect(g); !slices.Equal(got, []int{1, 2}) {
		t.Errorf("pixels = %v, want [1 2]", got)
	}
}

func TestFromPixCopiesBuffer(t *testing.T) {
	buf := []int{1, 2, 3, 4}
	g := mustGrid(t, 2, 2, buf)
	buf[0] = 99
	if got, _ := g.Get(0, 0); got != 1 {
		t.Errorf("grid observed caller's buffer mutation: got %d, want 1", got)
	}
}

func TestNegativeDimensionsClampToEmpty(t *testing.T) {
	g := New[int](-3, 4)
	if g.Width() != 0 || g.Height() != 4 {
		t.Errorf("dimensions = %dx%d, want 0x4", g.Width(), g.Height())
	}
	if _, ok := g.Get(0, 0); ok {
		t.Error("Get on an empty grid succeeded")
	}
	if _, err := FromPix(-1, 2, []int(nil)); err != nil {
		t.Errorf("FromPix with clamped dimensions: %v", err)
	}
}

func TestNewFilled(t *testing.T) {
	g := NewFilled(3, 2, 7)
	for p, v := range g.All() {
		if v != 7 {
			t.Fatalf("pixel at %v = %d, want 7", p, v)
		}
	}
}

func TestSetAndGet(t *testing.T) {
	g := New[int](2, 2)
	g.Set(1, 1, 42)
	if got, ok := g.Get(1, 1); !ok || got != 42 {
		t.Errorf("Get(1, 1) = %d, %t, want 42, true", got, ok)
	}

	g.Set(2, 0, 9)
	g.Set(0, -1, 9)
	if got := collect(g); !slices.Equal(got, []int{0, 0, 0, 42}) {
		t.Errorf("out-of-bounds writes changed pixels: %v", got)
	}

	if _, ok := g.Get(2, 0); ok {
		t.Error("Get(2, 0) succeeded on a 2x2 grid")
	}
}

func TestIndex(t *testing.T) {
	g := iota2D(t, 3, 2)
	if idx, ok := g.Index(2, 1); !ok || idx != 5 {
		t.Errorf("Index(2, 1) = %d, %t, want 5, true", idx, ok)
	}
	if _, ok := g.Index(3, 0); ok {
		t.Error("Index(3, 0) succeeded on a 3x2 grid")
	}
	if _, ok := g.Index(0, -1); ok {
		t.Error("Index(0, -1) succeeded")
	}

	// A cropped view maps through the parent's buffer.
	sub, ok := g.Crop(Range{1, 3}, Range{1, 2})
	if !ok {
		t.Fatal("crop rejected")
	}
	if idx, ok := sub.Index(0, 0); !ok || idx != 4 {
		t.Errorf("view Index(0, 0) = %d, %t, want 4, true", idx, ok)
	}
}

func TestCrop(t *testing.T) {
	g := iota2D(t, 4, 4)

	sub, ok := g.Crop(Range{1, 3}, Range{1, 3})
	if !ok {
		t.Fatal("crop rejected")
	}
	if sub.Width() != 2 || sub.Height() != 2 {
		t.Fatalf("view dimensions = %dx%d, want 2x2", sub.Width(), sub.Height())
	}
	if got, _ := sub.Get(0, 0); got != 5 {
		t.Errorf("view (0,0) = %d, want source (1,1) = 5", got)
	}
	if got := collect(sub); !slices.Equal(got, []int{5, 6, 9, 10}) {
		t.Errorf("view pixels = %v, want [5 6 9 10]", got)
	}
}

func TestCropRejectsBadRanges(t *testing.T) {
	g := New[int](4, 4)
	tests := []struct {
		name   string
		xr, yr Range
	}{
		{"x start negative", Range{-1, 2}, Range{0, 2}},
		{"x end past width", Range{0, 5}, Range{0, 2}},
		{"empty x", Range{2, 2}, Range{0, 2}},
		{"reversed y", Range{0, 2}, Range{3, 1}},
		{"y end past height", Range{0, 2}, Range{2, 5}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, ok := g.Crop(tc.xr, tc.yr); ok {
				t.Errorf("Crop(%v, %v) succeeded, want rejection", tc.xr, tc.yr)
			}
		})
	}
}

func TestCropSharesBuffer(t *testing.T) {
	g := iota2D(t, 4, 4)
	sub, _ := g.Crop(Range{1, 3}, Range{1, 3})
	if &sub.pix[0] != &g.pix[0] {
		t.Error("crop copied the backing buffer")
	}
}

func TestCropOfCropComposesOffsets(t *testing.T) {
	g := iota2D(t, 6, 6)

	inner, ok := g.Crop(Range{1, 5}, Range{2, 6})
	if !ok {
		t.Fatal("outer crop rejected")
	}
	nested, ok := inner.Crop(Range{1, 3}, Range{1, 4})
	if !ok {
		t.Fatal("nested crop rejected")
	}

	direct, ok := g.Crop(Range{2, 4}, Range{3, 6})
	if !ok {
		t.Fatal("direct crop rejected")
	}
	if !Equal(nested, direct) {
		t.Errorf("nested crop = %v, want %v", collect(nested), collect(direct))
	}

	// The nested view still addresses the original buffer in one hop.
	if idx, ok := nested.Index(0, 0); !ok || idx != 3*6+2 {
		t.Errorf("nested Index(0, 0) = %d, want %d", idx, 3*6+2)
	}
}

func TestWriteToSourceLeavesView(t *testing.T) {
	g := mustGrid(t, 2, 2, []int{1, 2, 3, 4})
	sub, _ := g.Crop(Range{0, 2}, Range{0, 1})

	g.Set(0, 0, 99)
	if got, _ := sub.Get(0, 0); got != 1 {
		t.Errorf("view observed source mutation: got %d, want 1", got)
	}
	if got, _ := g.Get(0, 0); got != 99 {
		t.Errorf("source write lost: got %d, want 99", got)
	}
}

func TestWriteToViewLeavesSource(t *testing.T) {
	g := mustGrid(t, 2, 2, []int{1, 2, 3, 4})
	sub, _ := g.Crop(Range{0, 2}, Range{0, 1})

	sub.Set(1, 0, 99)
	if got, _ := g.Get(1, 0); got != 2 {
		t.Errorf("source observed view mutation: got %d, want 2", got)
	}
	if got, _ := sub.Get(1, 0); got != 99 {
		t.Errorf("view write lost: got %d, want 99", got)
	}
}

func TestTwoViewsDivergeIndependently(t *testing.T) {
	g := iota2D(t, 3, 1)
	a, _ := g.Crop(Range{0, 2}, Range{0, 1})
	b, _ := g.Crop(Range{1, 3}, Range{0, 1})

	a.Set(1, 0, 77)
	if got, _ := b.Get(0, 0); got != 1 {
		t.Errorf("sibling view observed write: got %d, want 1", got)
	}
	if got, _ := g.Get(1, 0); got != 1 {
		t.Errorf("source observed view write: got %d, want 1", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := mustGrid(t, 2, 1, []int{1, 2})
	c := g.Clone()
	g.Set(0, 0, 9)
	if got, _ := c.Get(0, 0); got != 1 {
		t.Errorf("clone observed source mutation: got %d, want 1", got)
	}

	sub, _ := g.Crop(Range{1, 2}, Range{0, 1})
	cc := sub.Clone()
	if got := collect(cc); !slices.Equal(got, []int{2}) {
		t.Errorf("clone of view = %v, want [2]", got)
	}
}

func TestEqual(t *testing.T) {
	a := mustGrid(t, 2, 2, []int{1, 2, 3, 4})
	b := mustGrid(t, 2, 2, []int{1, 2, 3, 4})
	if !Equal(a, b) {
		t.Error("identical grids reported unequal")
	}

	b.Set(1, 1, 5)
	if Equal(a, b) {
		t.Error("differing grids reported equal")
	}

	if Equal(a, mustGrid(t, 4, 1, []int{1, 2, 3, 4})) {
		t.Error("grids with different dimensions reported equal")
	}

	// A view equals the compact grid with the same pixels.
	g := iota2D(t, 4, 4)
	sub, _ := g.Crop(Range{1, 3}, Range{1, 3})
	if !Equal(sub, mustGrid(t, 2, 2, []int{5, 6, 9, 10})) {
		t.Error("view compared unequal to its compact equivalent")
	}
}

func TestValuesOrderAndRestart(t *testing.T) {
	g := mustGrid(t, 3, 2, []int{1, 2, 3, 4, 5, 6})
	want := []int{1, 2, 3, 4, 5, 6}

	seq := g.Values()
	if got := slices.Collect(seq); !slices.Equal(got, want) {
		t.Fatalf("first pass = %v, want %v", got, want)
	}
	if got := slices.Collect(seq); !slices.Equal(got, want) {
		t.Errorf("second pass = %v, want %v (sequence must restart)", got, want)
	}

	for range seq {
		break
	}
	if got := slices.Collect(seq); !slices.Equal(got, want) {
		t.Errorf("pass after early break = %v, want %v", got, want)
	}
}

func TestAllYieldsCoordinates(t *testing.T) {
	g := iota2D(t, 2, 2)
	n := 0
	for p, v := range g.All() {
		if want := p.Y*2 + p.X; v != want {
			t.Errorf("All() at %v = %d, want %d", p, v, want)
		}
		n++
	}
	if n != 4 {
		t.Errorf("All() yielded %d pairs, want 4", n)
	}
}

func TestZeroAreaGrid(t *testing.T) {
	g := New[int](0, 5)
	if _, ok := g.Get(0, 0); ok {
		t.Error("Get succeeded on a zero-area grid")
	}
	if got := collect(g); len(got) != 0 {
		t.Errorf("zero-area grid yielded %v", got)
	}
	g.Set(0, 0, 1) // must be a no-op, not a panic
	if _, ok := g.Crop(Range{0, 1}, Range{0, 1}); ok {
		t.Error("crop succeeded on a zero-width grid")
	}
}

func TestFillAndUpdate(t *testing.T) {
	g := New[int](2, 2)
	g.Fill(7)
	if got := collect(g); !slices.Equal(got, []int{7, 7, 7, 7}) {
		t.Fatalf("after Fill = %v", got)
	}

	g.Update(func(v int) int { return v + 1 })
	if got := collect(g); !slices.Equal(got, []int{8, 8, 8, 8}) {
		t.Errorf("after Update = %v", got)
	}
}

func TestUpdateOnViewLeavesSource(t *testing.T) {
	g := iota2D(t, 3, 3)
	sub, _ := g.Crop(Range{0, 1}, Range{0, 3})

	sub.Update(func(v int) int { return v * 10 })
	if got := collect(sub); !slices.Equal(got, []int{0, 30, 60}) {
		t.Errorf("updated view = %v, want [0 30 60]", got)
	}
	if got, _ := g.Get(0, 1); got != 3 {
		t.Errorf("source observed view update: got %d, want 3", got)
	}
}
