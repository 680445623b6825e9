package recorder

// stencil holds p0 <= p1 <= x <= p2 <= p3 around a query. p1 is always a real
// sample, the others are synthesized when the store runs out.
type stencil struct {
	p0, p1, p2, p3 Sample
}

func (s *pointStore) stencil(idx int, synthesize Synthesizer) (st stencil) {
	n := len(s.ps)

	st.p1 = s.ps[idx]

	if idx > 0 {
		st.p0 = s.ps[idx-1]
	} else {
		st.p0 = neighbour(synthesize, st.p1, Before)
	}

	if idx+1 < n {
		st.p2 = s.ps[idx+1]
	} else {
		st.p2 = neighbour(synthesize, st.p1, After)
	}

	if idx+2 < n {
		st.p3 = s.ps[idx+2]
	} else {
		st.p3 = neighbour(synthesize, st.p2, After)
	}

	return
}

// blend interpolates linearly between a at p1.X and b at p2.X.
func (st *stencil) blend(x, a, b float64) float64 {
	return ((x-st.p1.X)*b + (st.p2.X-x)*a) / (st.p2.X - st.p1.X)
}

func secant(a, b Sample) float64 {
	return (b.Y - a.Y) / (b.X - a.X)
}

func (st *stencil) secants() (vA, vB, vC float64) {
	return secant(st.p0, st.p1), secant(st.p1, st.p2), secant(st.p2, st.p3)
}

func (st *stencil) value(x float64) float64 {
	return st.blend(x, st.p1.Y, st.p2.Y)
}

func (st *stencil) slope(x float64) float64 {
	vA, vB, vC := st.secants()

	return st.blend(x, 0.5*(vA+vB), 0.5*(vB+vC))
}

func (st *stencil) curvature(x float64) float64 {
	vA, vB, vC := st.secants()

	a1 := 2.0 * (vB - vA) / (st.p2.X - st.p0.X)
	a2 := 2.0 * (vC - vB) / (st.p3.X - st.p1.X)

	return st.blend(x, a1, a2)
}
