package recorder

import (
	"math"

	"github.com/sgostarter/i/l"
	"github.com/spf13/cast"
)

// Recorder is a function sampled at discrete x. Values between samples are
// interpolated linearly, derivatives come from a four-sample stencil.
//
// Searches walk the samples starting from the last touched one instead of
// bisecting: monotone or local access costs O(1) amortized, an arbitrary jump
// costs O(n). Every evaluation updates the internal cursor, so a Recorder must
// not be used from several goroutines without external locking, not even for
// reads. Readers that need their own hint use the *With methods.
type Recorder struct {
	opts   *Options
	logger l.Wrapper

	store  pointStore
	cursor Cursor
}

func NewRecorder(options ...Option) *Recorder {
	opts := optionNew(options...)

	r := &Recorder{
		opts:   opts,
		logger: opts.logger.WithFields(l.StringField(l.ClsKey, "Recorder")),
	}

	if opts.capacity > 0 {
		r.store.ps = make([]Sample, 0, opts.capacity)
	}

	return r
}

// AddPoint records (x, y, w), walking back from the last sample. A sample
// already at x (within Epsilon) gets its y and w overwritten.
func (r *Recorder) AddPoint(x, y, w float64) bool {
	if math.IsNaN(x) {
		r.logger.WithFields(l.StringField("y", cast.ToString(y))).Error("add point: x is NaN")

		return false
	}

	idx, _ := r.store.put(r.store.len()-1, Sample{X: x, Y: y, W: w})
	r.cursor.moveTo(idx)

	return true
}

// AddPointClean records (x, y) with zero weight, searching from the cursor,
// then drops every following sample closer than window to x. window <= 0 keeps
// them all.
func (r *Recorder) AddPointClean(x, y, window float64) bool {
	if math.IsNaN(x) {
		r.logger.WithFields(l.StringField("y", cast.ToString(y))).Error("add point clean: x is NaN")

		return false
	}

	idx, _ := r.store.put(r.cursor.start(r.store.len()), Sample{X: x, Y: y})
	r.cursor.moveTo(idx)

	if removed := r.store.pruneAfter(idx, x, window); removed > 0 {
		r.logger.WithFields(l.StringField("x", cast.ToString(x)), l.IntField("removed", removed)).Debug("pruned")
	}

	return true
}

func (r *Recorder) locate(c *Cursor, x float64) (idx int, ok bool) {
	if !r.store.covers(x) {
		return
	}

	if c == nil {
		c = &Cursor{}
	}

	idx = r.store.floor(c.start(r.store.len()), x)
	c.moveTo(idx)

	return idx, true
}

func (r *Recorder) Y(x float64) float64 {
	return r.YWith(&r.cursor, x)
}

func (r *Recorder) YDx(x float64) float64 {
	return r.YDxWith(&r.cursor, x)
}

func (r *Recorder) YDxDx(x float64) float64 {
	return r.YDxDxWith(&r.cursor, x)
}

// YWith evaluates the function at x using c as the search hint. A nil c means a
// cold search from the head. Outside the recorded range the result is 0.
func (r *Recorder) YWith(c *Cursor, x float64) float64 {
	idx, ok := r.locate(c, x)
	if !ok {
		return 0
	}

	st := r.store.stencil(idx, r.opts.synthesizer)

	return st.value(x)
}

func (r *Recorder) YDxWith(c *Cursor, x float64) float64 {
	idx, ok := r.locate(c, x)
	if !ok {
		return 0
	}

	st := r.store.stencil(idx, r.opts.synthesizer)

	return st.slope(x)
}

func (r *Recorder) YDxDxWith(c *Cursor, x float64) float64 {
	idx, ok := r.locate(c, x)
	if !ok {
		return 0
	}

	st := r.store.stencil(idx, r.opts.synthesizer)

	return st.curvature(x)
}

// Derivative evaluates the derivative of the given order. Orders above 2 are 0.
func (r *Recorder) Derivative(x float64, order int) float64 {
	switch order {
	case 0:
		return r.Y(x)
	case 1:
		return r.YDx(x)
	case 2:
		return r.YDxDx(x)
	default:
		return 0
	}
}

// EvalAll evaluates Y at every x. If an output slice is given the values are
// written to it (and it is returned as a convenience); only the first one is used.
func (r *Recorder) EvalAll(xs []float64, out ...[]float64) []float64 {
	if len(out) == 0 || len(out[0]) < len(xs) {
		out = [][]float64{make([]float64, len(xs))}
	}

	for i, x := range xs {
		out[0][i] = r.Y(x)
	}

	return out[0][:len(xs)]
}

// EstimateXRange reports the recorded x range. An empty recorder reports
// [DefaultRangeMin, DefaultRangeMax]; a zero-width range is widened by
// DegenerateRangeWidth.
func (r *Recorder) EstimateXRange() (xMin, xMax float64) {
	n := r.store.len()
	if n == 0 {
		return DefaultRangeMin, DefaultRangeMax
	}

	xMin, xMax = r.store.ps[0].X, r.store.ps[n-1].X
	if xMin == xMax {
		xMax = xMin + DegenerateRangeWidth
	}

	return
}

// CursorIndex reports the position of the internal cursor, -1 when unset.
func (r *Recorder) CursorIndex() int {
	return r.cursor.Index()
}

func (r *Recorder) Type() FunctionType {
	return FunctionTypeRecorder
}

func (r *Recorder) Len() int {
	return r.store.len()
}

// Samples returns a copy of the samples in increasing x.
func (r *Recorder) Samples() []Sample {
	return r.store.clone().ps
}

func (r *Recorder) Reset() {
	r.store.ps = r.store.ps[:0]
	r.cursor.Reset()
}

// Replace drops all samples and records ss through AddPoint, so duplicated or
// unsorted input still ends up ordered and deduplicated. The cursor is unset
// afterwards.
func (r *Recorder) Replace(ss []Sample) {
	r.Reset()

	for _, s := range ss {
		r.AddPoint(s.X, s.Y, s.W)
	}

	r.cursor.Reset()
}

// Clone deep-copies the samples. The copy starts with an unset cursor.
func (r *Recorder) Clone() *Recorder {
	return &Recorder{
		opts:   r.opts,
		logger: r.logger,
		store:  r.store.clone(),
	}
}
