package recorder

import "math"

// pointStore keeps samples sorted by strictly increasing x, no two of them
// within Epsilon. The slice order is the only index.
type pointStore struct {
	ps []Sample
}

func (s *pointStore) len() int {
	return len(s.ps)
}

func (s *pointStore) clone() pointStore {
	if len(s.ps) == 0 {
		return pointStore{}
	}

	ps := make([]Sample, len(s.ps))
	copy(ps, s.ps)

	return pointStore{ps: ps}
}

// seek walks from start towards x and returns the insertion index: the walk
// goes forward when the sample at start lies below x, backward otherwise.
func (s *pointStore) seek(start int, x float64) int {
	idx := start

	if s.ps[start].X < x {
		for idx < len(s.ps) && s.ps[idx].X < x {
			idx++
		}

		return idx
	}

	for idx >= 0 && s.ps[idx].X > x {
		idx--
	}

	return idx + 1
}

// match reports the sample on either side of ins that lies within Epsilon of
// x. When both qualify the nearer wins, ties go to the larger x.
func (s *pointStore) match(ins int, x float64) (idx int, ok bool) {
	bestDist := Epsilon

	for _, i := range [2]int{ins, ins - 1} {
		if i < 0 || i >= len(s.ps) {
			continue
		}

		if d := math.Abs(s.ps[i].X - x); d < bestDist {
			idx, ok, bestDist = i, true, d
		}
	}

	return
}

// put inserts smp or overwrites the y and w of the sample sharing its key. The
// stored x of an overwritten sample is kept so neighbour spacing never shrinks.
func (s *pointStore) put(start int, smp Sample) (idx int, overwritten bool) {
	if len(s.ps) == 0 {
		s.ps = append(s.ps, smp)

		return 0, false
	}

	ins := s.seek(start, smp.X)

	if idx, overwritten = s.match(ins, smp.X); overwritten {
		s.ps[idx].Y = smp.Y
		s.ps[idx].W = smp.W

		return
	}

	s.ps = append(s.ps, Sample{})
	copy(s.ps[ins+1:], s.ps[ins:])
	s.ps[ins] = smp

	return ins, false
}

// pruneAfter drops every sample after idx lying closer than window to x and
// returns how many were removed.
func (s *pointStore) pruneAfter(idx int, x, window float64) int {
	if window <= 0 {
		return 0
	}

	end := idx + 1
	for end < len(s.ps) && s.ps[end].X-x < window {
		end++
	}

	removed := end - idx - 1
	if removed > 0 {
		s.ps = append(s.ps[:idx+1], s.ps[end:]...)
	}

	return removed
}

// floor returns the index of the greatest sample with X <= x. x must not lie
// below the first sample.
func (s *pointStore) floor(start int, x float64) int {
	idx := start

	if s.ps[idx].X < x {
		for idx+1 < len(s.ps) && s.ps[idx+1].X <= x {
			idx++
		}

		return idx
	}

	for idx > 0 && s.ps[idx].X > x {
		idx--
	}

	return idx
}

func (s *pointStore) covers(x float64) bool {
	if len(s.ps) == 0 || math.IsNaN(x) {
		return false
	}

	return x >= s.ps[0].X && x <= s.ps[len(s.ps)-1].X
}
