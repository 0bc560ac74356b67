package pixel

// Summable ties a pixel type P to its accumulator type S. Weighted lifts
// the pixel into the accumulator, scaled by an integer weight.
type Summable[P, S any] interface {
	Weighted(weight int) S
}

// Sum is the accumulator side of the pairing: sums combine with Plus and
// collapse back to a pixel with Mean. The zero value of an implementation
// is the empty sum.
type Sum[S, P any] interface {
	Plus(S) S
	Mean(weightSum int) P
}

// Sample pairs a pixel value with the integer weight it contributes to an
// average.
type Sample[P any] struct {
	Weight int
	Value  P
}

// WeightedMean folds the samples into sum(weight*value)/sum(weight),
// evaluated channel-wise for multi-channel pixels. Integer pixel types
// divide truncating toward zero; byte-channel types clamp to 0..255. The
// weight total must be positive: WeightedMean panics otherwise, including
// for an empty sample list. Type inference cannot derive S from P, so
// call sites spell both arguments, e.g. WeightedMean[Gray, GraySum](s).
func WeightedMean[P Summable[P, S], S Sum[S, P]](samples []Sample[P]) P {
	var acc S
	total := 0
	for _, smp := range samples {
		acc = acc.Plus(smp.Value.Weighted(smp.Weight))
		total += smp.Weight
	}
	if total <= 0 {
		panic("pixel: weight sum must be positive")
	}
	return acc.Mean(total)
}

// GraySum accumulates weighted Gray samples.
type GraySum int64

func (p Gray) Weighted(weight int) GraySum { return GraySum(int64(p) * int64(weight)) }

func (s GraySum) Plus(o GraySum) GraySum { return s + o }

// Mean divides by the weight total, truncating toward zero and clamping
// to the 0..255 channel range.
func (s GraySum) Mean(weightSum int) Gray {
	return Gray(clamp8(int64(s) / int64(weightSum)))
}

// IntSum accumulates weighted Int samples.
type IntSum int64

func (p Int) Weighted(weight int) IntSum { return IntSum(int64(p) * int64(weight)) }

func (s IntSum) Plus(o IntSum) IntSum { return s + o }

func (s IntSum) Mean(weightSum int) Int { return Int(int64(s) / int64(weightSum)) }

// Float32Sum accumulates weighted Float32 samples in double precision.
type Float32Sum float64

func (p Float32) Weighted(weight int) Float32Sum {
	return Float32Sum(float64(p) * float64(weight))
}

func (s Float32Sum) Plus(o Float32Sum) Float32Sum { return s + o }

func (s Float32Sum) Mean(weightSum int) Float32 {
	return Float32(float64(s) / float64(weightSum))
}

// Float64Sum accumulates weighted Float64 samples.
type Float64Sum float64

func (p Float64) Weighted(weight int) Float64Sum {
	return Float64Sum(float64(p) * float64(weight))
}

func (s Float64Sum) Plus(o Float64Sum) Float64Sum { return s + o }

func (s Float64Sum) Mean(weightSum int) Float64 {
	return Float64(float64(s) / float64(weightSum))
}

// RGBASum accumulates weighted RGBA samples channel by channel, alpha
// included.
type RGBASum struct {
	R, G, B, A int64
}

func (p RGBA) Weighted(weight int) RGBASum {
	w := int64(weight)
	return RGBASum{
		R: int64(p.R) * w,
		G: int64(p.G) * w,
		B: int64(p.B) * w,
		A: int64(p.A) * w,
	}
}

func (s RGBASum) Plus(o RGBASum) RGBASum {
	return RGBASum{R: s.R + o.R, G: s.G + o.G, B: s.B + o.B, A: s.A + o.A}
}

func (s RGBASum) Mean(weightSum int) RGBA {
	w := int64(weightSum)
	return RGBA{
		R: clamp8(s.R / w),
		G: clamp8(s.G / w),
		B: clamp8(s.B / w),
		A: clamp8(s.A / w),
	}
}

// clamp8 squeezes a channel mean into the representable byte range.
// Kernels with negative weights can push means outside it.
func clamp8(v int64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
