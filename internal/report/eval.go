package report

import (
	"fmt"

	"github.com/drakos74/polyfit/internal/math"
	"github.com/drakos74/polyfit/internal/model"
)

// Evaluate evaluates the polynomial on nPoints evenly spaced values over [xMin, xMax].
func Evaluate(p math.Polynomial, xMin, xMax float64, nPoints int) ([]model.Point, error) {
	if err := (model.Range{Min: xMin, Max: xMax}).Validate(); err != nil {
		return nil, err
	}
	if nPoints < 1 {
		return nil, fmt.Errorf("grid size %d must be positive: %w", nPoints, model.ErrInvalidConfig)
	}
	xx := math.Linspace(xMin, xMax, nPoints)
	points := make([]model.Point, len(xx))
	for i, x := range xx {
		points[i] = model.Point{X: x, Y: p.Eval(x)}
	}
	return points, nil
}

// Format renders the coefficients of the polynomial in ascending powers of x.
func Format(p math.Polynomial) string {
	return p.String()
}

// Oscillation describes the deviation of a fitted polynomial from its reference function.
type Oscillation struct {
	// MaxDeviation is the largest absolute deviation on the grid.
	MaxDeviation float64
	// Dominant is the frequency index of the strongest non-constant deviation component.
	Dominant int
	// HighFrequency is the share of the deviation amplitude in the upper half of the spectrum.
	HighFrequency float64
}

// Oscillate analyses the spectrum of the deviation between the polynomial and the reference
// function over nPoints evenly spaced values of the given range.
func Oscillate(p math.Polynomial, f model.Function, r model.Range, nPoints int) (Oscillation, error) {
	if nPoints < 2 {
		return Oscillation{}, fmt.Errorf("grid size %d must be at least 2: %w", nPoints, model.ErrInvalidConfig)
	}
	points, err := Evaluate(p, r.Min, r.Max, nPoints)
	if err != nil {
		return Oscillation{}, err
	}
	deviation := make([]float64, len(points))
	var o Oscillation
	for i, pt := range points {
		d := pt.Y - f.Eval(pt.X)
		deviation[i] = d
		if d < 0 {
			d = -d
		}
		if d > o.MaxDeviation {
			o.MaxDeviation = d
		}
	}
	spectrum := math.FFT(deviation)
	if dominant, ok := spectrum.Dominant(); ok {
		o.Dominant = dominant.Frequency
	}
	o.HighFrequency = spectrum.HighFrequency()
	return o, nil
}
