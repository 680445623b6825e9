package recorder

import "math"

const (
	Before = -1
	After  = 1
)

// Synthesizer fabricates the neighbour that is missing next to anchor at a range
// edge. dir is Before or After. The fabricated sample keeps anchor's y, which
// makes the stencil see a flat extension beyond the recorded range.
type Synthesizer func(anchor Sample, dir int) Sample

// ShiftSynthesizer places the virtual neighbour shift away from anchor.
func ShiftSynthesizer(shift float64) Synthesizer {
	if shift <= 0 {
		shift = 1
	}

	return func(anchor Sample, dir int) Sample {
		return anchor.shifted(float64(dir) * shift)
	}
}

var (
	// UnitShift puts virtual neighbours one unit of x away.
	UnitShift = ShiftSynthesizer(1)

	// WideShift puts virtual neighbours 100 units away, so an isolated sample at x
	// gets p0 = x-100, p2 = x+100, p3 = x+200.
	WideShift = ShiftSynthesizer(100)
)

// neighbour runs synthesize and falls back to UnitShift unless the result lies
// strictly on the dir side of anchor at a finite x. The stencil divides by
// these distances.
func neighbour(synthesize Synthesizer, anchor Sample, dir int) Sample {
	s := synthesize(anchor, dir)

	if d := (s.X - anchor.X) * float64(dir); !(d > 0) || math.IsInf(s.X, 0) {
		return UnitShift(anchor, dir)
	}

	return s
}
