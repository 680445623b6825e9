package recorder

// Function is a scalar function of x with first and second derivatives.
type Function interface {
	Y(x float64) float64
	YDx(x float64) float64
	YDxDx(x float64) float64

	EstimateXRange() (xMin, xMax float64)
	Type() FunctionType
}

var _ Function = (*Recorder)(nil)
