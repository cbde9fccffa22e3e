package math

import (
	"fmt"

	"github.com/drakos74/polyfit/internal/model"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Generator produces sample sets from the reference functions.
// It owns a seeded random source that is consumed sequentially,
// so a Generator must not be shared between goroutines.
type Generator struct {
	seed uint64
	src  rand.Source
}

// NewGenerator creates a new Generator seeded with the given value.
func NewGenerator(seed uint64) *Generator {
	return &Generator{
		seed: seed,
		src:  rand.NewSource(seed),
	}
}

// Seed returns the seed the generator was created with.
func (g *Generator) Seed() uint64 {
	return g.seed
}

// Draw draws n independent values uniformly from the given range.
func (g *Generator) Draw(r model.Range, n int) ([]float64, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, fmt.Errorf("sample count %d must be positive: %w", n, model.ErrInvalidConfig)
	}
	xx := make([]float64, n)
	if r.Min == r.Max {
		// distuv.Uniform is undefined for an empty interval
		for i := range xx {
			xx[i] = r.Min
		}
		return xx, nil
	}
	u := distuv.Uniform{
		Min: r.Min,
		Max: r.Max,
		Src: g.src,
	}
	for i := range xx {
		xx[i] = u.Rand()
	}
	return xx, nil
}

// Observe evaluates the function at the given x values and adds
// independent gaussian noise to each of them.
func (g *Generator) Observe(f model.Function, r model.Range, noise model.Noise, xx []float64) (model.SampleSet, error) {
	if err := noise.Validate(); err != nil {
		return model.SampleSet{}, err
	}
	nd := distuv.Normal{
		Mu:    noise.Mu,
		Sigma: noise.Sigma,
		Src:   g.src,
	}
	yy := f.Map(xx)
	// NOTE : with sigma = 0 the draw still advances the source and yields exactly mu
	for i := range yy {
		yy[i] += nd.Rand()
	}
	return model.NewSampleSet(f.Name, r, noise, xx, yy)
}

// Generate draws n samples of the named function in the given range with the given noise.
func (g *Generator) Generate(r model.Range, n int, name string, noise model.Noise) (model.SampleSet, error) {
	f, err := model.LookupFunction(name)
	if err != nil {
		return model.SampleSet{}, err
	}
	if err := noise.Validate(); err != nil {
		return model.SampleSet{}, err
	}
	xx, err := g.Draw(r, n)
	if err != nil {
		return model.SampleSet{}, err
	}
	return g.Observe(f, r, noise, xx)
}

// Linspace returns n evenly spaced values over the closed interval [min, max].
func Linspace(min, max float64, n int) []float64 {
	switch {
	case n < 1:
		return []float64{}
	case n == 1:
		return []float64{min}
	}
	xx := floats.Span(make([]float64, n), min, max)
	// avoid the rounding of the last step
	xx[n-1] = max
	return xx
}
