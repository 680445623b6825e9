package recorder

const (
	// Epsilon is the key tolerance: two x closer than Epsilon address the same sample.
	Epsilon = 1e-10

	DefaultRangeMin = 0.0
	DefaultRangeMax = 1.2

	// DegenerateRangeWidth widens the reported range when every sample shares one x.
	DegenerateRangeWidth = 0.5
)

type FunctionType int

const (
	FunctionTypeUnknown FunctionType = iota
	FunctionTypeRecorder
)

func (t FunctionType) String() string {
	switch t {
	case FunctionTypeRecorder:
		return "recorder"
	default:
		return "unknown"
	}
}

// Sample is one recorded (x, y, weight) triple. W is carried along but does not
// take part in interpolation.
type Sample struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	W float64 `json:"w" yaml:"w"`
}

func (s Sample) shifted(dx float64) Sample {
	s.X += dx

	return s
}
