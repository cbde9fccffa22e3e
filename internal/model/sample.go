package model

import (
	"fmt"
	"math"
)

// Point is a single (x, y) observation.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Range is a closed interval of x values.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Validate checks that the range is finite and not inverted.
func (r Range) Validate() error {
	if math.IsNaN(r.Min) || math.IsNaN(r.Max) || math.IsInf(r.Min, 0) || math.IsInf(r.Max, 0) {
		return fmt.Errorf("range [%v,%v] must be finite: %w", r.Min, r.Max, ErrInvalidConfig)
	}
	if r.Min > r.Max {
		return fmt.Errorf("range min %v exceeds max %v: %w", r.Min, r.Max, ErrInvalidConfig)
	}
	return nil
}

func (r Range) String() string {
	return fmt.Sprintf("[%g,%g]", r.Min, r.Max)
}

// Noise describes the gaussian noise added to each observation.
type Noise struct {
	Mu    float64 `json:"mu"`
	Sigma float64 `json:"sigma"`
}

// Validate checks that the noise parameters can be sampled.
func (n Noise) Validate() error {
	if math.IsNaN(n.Mu) || math.IsInf(n.Mu, 0) {
		return fmt.Errorf("noise mean %v must be finite: %w", n.Mu, ErrInvalidConfig)
	}
	if math.IsNaN(n.Sigma) || math.IsInf(n.Sigma, 0) || n.Sigma < 0 {
		return fmt.Errorf("noise sigma %v must be finite and non-negative: %w", n.Sigma, ErrInvalidConfig)
	}
	return nil
}

// SampleSet is an ordered, immutable sequence of observations
// together with the parameters that generated it.
type SampleSet struct {
	Function FunctionName
	Range    Range
	Noise    Noise
	points   []Point
}

// NewSampleSet creates a sample set from the given x and y values.
// The values are copied.
func NewSampleSet(f FunctionName, r Range, noise Noise, xx, yy []float64) (SampleSet, error) {
	if len(xx) != len(yy) {
		return SampleSet{}, fmt.Errorf("inconsistent dimensions %d vs %d: %w", len(xx), len(yy), ErrInvalidConfig)
	}
	points := make([]Point, len(xx))
	for i := range xx {
		points[i] = Point{X: xx[i], Y: yy[i]}
	}
	return SampleSet{
		Function: f,
		Range:    r,
		Noise:    noise,
		points:   points,
	}, nil
}

// Len returns the number of observations.
func (s SampleSet) Len() int {
	return len(s.points)
}

// Points returns a copy of the observations.
func (s SampleSet) Points() []Point {
	pp := make([]Point, len(s.points))
	copy(pp, s.points)
	return pp
}

// XY returns copies of the x and y values.
func (s SampleSet) XY() (xx, yy []float64) {
	xx = make([]float64, len(s.points))
	yy = make([]float64, len(s.points))
	for i, p := range s.points {
		xx[i] = p.X
		yy[i] = p.Y
	}
	return xx, yy
}

func (s SampleSet) String() string {
	return fmt.Sprintf("func%s n=%d x=%s mu=%g sigma=%g", s.Function, len(s.points), s.Range, s.Noise.Mu, s.Noise.Sigma)
}
