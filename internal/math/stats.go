package math

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats collects a series of values and summarises them.
type Stats struct {
	values []float64
}

// NewStats creates a new Stats.
func NewStats() *Stats {
	return &Stats{values: make([]float64, 0)}
}

// Push adds another element to the set.
func (s *Stats) Push(v float64) {
	s.values = append(s.values, v)
}

// Values returns a copy of the collected values.
func (s Stats) Values() []float64 {
	vv := make([]float64, len(s.values))
	copy(vv, s.values)
	return vv
}

// Count returns the number of elements.
func (s Stats) Count() int {
	return len(s.values)
}

// Sum returns the sum of the set.
func (s Stats) Sum() float64 {
	return floats.Sum(s.values)
}

// Avg returns the average value of the set, 0 for an empty set.
func (s Stats) Avg() float64 {
	if len(s.values) == 0 {
		return 0
	}
	return stat.Mean(s.values, nil)
}

// Min returns the smallest element, 0 for an empty set.
func (s Stats) Min() float64 {
	if len(s.values) == 0 {
		return 0
	}
	return floats.Min(s.values)
}

// Max returns the largest element, 0 for an empty set.
func (s Stats) Max() float64 {
	if len(s.values) == 0 {
		return 0
	}
	return floats.Max(s.values)
}

// StDev is the population standard deviation of the set.
func (s Stats) StDev() float64 {
	if len(s.values) == 0 {
		return 0
	}
	_, std := stat.PopMeanStdDev(s.values, nil)
	return std
}

// SampleStDev is the sample standard deviation of the set.
// It is 0 for less than two elements.
func (s Stats) SampleStDev() float64 {
	if len(s.values) < 2 {
		return 0
	}
	_, std := stat.MeanStdDev(s.values, nil)
	return std
}
