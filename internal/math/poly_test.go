package math

import (
	"fmt"
	"math"
	"testing"

	"github.com/drakos74/polyfit/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samples(t *testing.T, seed uint64, r model.Range, n int, name string, noise model.Noise) model.SampleSet {
	s, err := NewGenerator(seed).Generate(r, n, name, noise)
	require.NoError(t, err)
	return s
}

func TestFit(t *testing.T) {

	xx := []float64{1, 2, 3, 4, 5}
	yy := []float64{1, 4, 9, 16, 25}

	result, err := Fit(xx, yy, 2)
	require.NoError(t, err)

	c := result.Polynomial.Coefficients()
	assert.Len(t, c, 3)
	assert.InDelta(t, 0, c[0], 1e-9)
	assert.InDelta(t, 0, c[1], 1e-9)
	assert.InDelta(t, 1, c[2], 1e-9)
	assert.Equal(t, MethodQR, result.Diagnostics.Method)
	assert.False(t, result.Diagnostics.IllConditioned())
	assert.Equal(t, model.Range{Min: 1, Max: 5}, result.Domain)

}

func TestFit_Linear(t *testing.T) {

	s := samples(t, 1, model.Range{Min: 0, Max: 1}, 10, "A", model.Noise{})

	result, err := FitSamples(s, 1)
	require.NoError(t, err)

	c := result.Polynomial.Coefficients()
	require.Len(t, c, 2)
	assert.InDelta(t, 0, c[0], 1e-9)
	assert.InDelta(t, 2, c[1], 1e-9)
	assert.InDelta(t, 1, result.Diagnostics.R2, 1e-12)
	assert.Less(t, result.Diagnostics.RSS, 1e-18)

}

func TestFit_LinearHigherDegrees(t *testing.T) {

	s := samples(t, 5, model.Range{Min: 0, Max: 1}, 10, "A", model.Noise{})

	for _, degree := range []int{1, 2, 3, 5} {
		t.Run(fmt.Sprintf("%d", degree), func(t *testing.T) {
			result, err := FitSamples(s, degree)
			require.NoError(t, err)
			assert.False(t, result.Diagnostics.IllConditioned())
			p := result.Polynomial
			assert.Equal(t, degree, p.Degree())
			assert.InDelta(t, 0, p.Coefficient(0), 1e-6)
			assert.InDelta(t, 2, p.Coefficient(1), 1e-6)
			for i := 2; i <= degree; i++ {
				assert.InDelta(t, 0, p.Coefficient(i), 1e-6, "coefficient %d", i)
			}
		})
	}

}

func TestFit_RoundTrip(t *testing.T) {

	type test struct {
		r      model.Range
		n      int
		name   string
		degree int
	}

	tests := map[string]test{
		"A-1": {
			r:      model.Range{Min: 0, Max: 1},
			n:      10,
			name:   "A",
			degree: 1,
		},
		"A-3": {
			r:      model.Range{Min: 0, Max: 1.25},
			n:      20,
			name:   "A",
			degree: 3,
		},
		"B-10": {
			r:      model.Range{Min: 0, Max: 1.25},
			n:      40,
			name:   "B",
			degree: 10,
		},
		"B-12": {
			r:      model.Range{Min: 0, Max: 1},
			n:      40,
			name:   "B",
			degree: 12,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s := samples(t, 17, tt.r, tt.n, tt.name, model.Noise{})
			result, err := FitSamples(s, tt.degree)
			require.NoError(t, err)
			for _, p := range s.Points() {
				assert.InDelta(t, p.Y, result.Polynomial.Eval(p.X), 1e-6*(1+math.Abs(p.Y)))
			}
		})
	}

}

func TestFit_Underdetermined(t *testing.T) {

	for _, name := range []string{"A", "B"} {
		t.Run(name, func(t *testing.T) {
			s := samples(t, 1, model.Range{Min: 0, Max: 1}, 10, name, model.Noise{})

			result, err := FitSamples(s, 10)
			require.NoError(t, err)

			d := result.Diagnostics
			assert.True(t, d.Underdetermined)
			assert.True(t, d.RankDeficient)
			assert.True(t, d.IllConditioned())
			assert.True(t, d.Finite)
			assert.Equal(t, MethodSVD, d.Method)
			assert.Equal(t, 11, d.Order)
			assert.LessOrEqual(t, d.Rank, 10)
			assert.Len(t, result.Polynomial.Coefficients(), 11)
			assert.Contains(t, d.String(), "underdetermined")
		})
	}

}

func TestFit_Methods(t *testing.T) {

	s := samples(t, 23, model.Range{Min: -1, Max: 2}, 30, "B", model.Noise{Sigma: 0.2})

	qr, err := FitSamples(s, 4, WithMethod(MethodQR))
	require.NoError(t, err)
	svd, err := FitSamples(s, 4, WithMethod(MethodSVD))
	require.NoError(t, err)

	assert.Equal(t, MethodQR, qr.Diagnostics.Method)
	assert.Equal(t, MethodSVD, svd.Diagnostics.Method)
	for i := 0; i <= 4; i++ {
		assert.InDelta(t, qr.Polynomial.Coefficient(i), svd.Polynomial.Coefficient(i), 1e-6*(1+math.Abs(qr.Polynomial.Coefficient(i))))
	}
	assert.InDelta(t, qr.Diagnostics.RSS, svd.Diagnostics.RSS, 1e-9*(1+qr.Diagnostics.RSS))

	// QR cannot solve the underdetermined system
	under, err := FitSamples(s, 40, WithMethod(MethodQR))
	require.NoError(t, err)
	assert.Equal(t, MethodSVD, under.Diagnostics.Method)

}

func TestFit_DuplicateX(t *testing.T) {

	xx := []float64{0.5, 0.5, 0.5, 0.5, 0.5}
	yy := []float64{1, 1, 1, 1, 1}

	for _, m := range []Method{MethodAuto, MethodQR, MethodSVD} {
		t.Run(m.String(), func(t *testing.T) {
			result, err := Fit(xx, yy, 2, WithMethod(m))
			require.NoError(t, err)
			d := result.Diagnostics
			assert.True(t, d.RankDeficient)
			assert.False(t, d.Underdetermined)
			assert.Equal(t, 1, d.Rank)
			assert.Equal(t, MethodSVD, d.Method)
			assert.InDelta(t, 1, result.Polynomial.Eval(0.5), 1e-12)
		})
	}

}

func TestFit_Errors(t *testing.T) {

	type test struct {
		x      []float64
		y      []float64
		degree int
		err    error
	}

	tests := map[string]test{
		"negative-degree": {
			x:      []float64{0, 1},
			y:      []float64{0, 2},
			degree: -1,
			err:    model.ErrInvalidDegree,
		},
		"empty": {
			x:      []float64{},
			y:      []float64{},
			degree: 1,
			err:    model.ErrEmptySampleSet,
		},
		"mismatch": {
			x:      []float64{0, 1},
			y:      []float64{0},
			degree: 1,
			err:    model.ErrInvalidConfig,
		},
		"nan": {
			x:      []float64{0, math.NaN()},
			y:      []float64{0, 1},
			degree: 1,
			err:    model.ErrNonFinite,
		},
		"inf": {
			x:      []float64{0, 1},
			y:      []float64{0, math.Inf(1)},
			degree: 1,
			err:    model.ErrNonFinite,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Fit(tt.x, tt.y, tt.degree)
			assert.ErrorIs(t, err, tt.err)
		})
	}

}

func TestFit_SingleSample(t *testing.T) {

	result, err := Fit([]float64{0.3}, []float64{0.6}, 0)
	require.NoError(t, err)
	assert.InDelta(t, 0.6, result.Polynomial.Coefficient(0), 1e-12)
	assert.False(t, result.Diagnostics.IllConditioned())

	result, err = Fit([]float64{0.3}, []float64{0.6}, 1)
	require.NoError(t, err)
	assert.True(t, result.Diagnostics.Underdetermined)
	assert.InDelta(t, 0.6, result.Polynomial.Eval(0.3), 1e-12)

}

func TestFit_Determinism(t *testing.T) {

	fit := func() []float64 {
		s := samples(t, 2024, model.Range{Min: 0, Max: 1.25}, 20, "B", model.Noise{Sigma: 0.1})
		result, err := FitSamples(s, 3)
		require.NoError(t, err)
		return result.Polynomial.Coefficients()
	}

	assert.Equal(t, fit(), fit())

}

func TestFit_ResidualsDecreaseWithDegree(t *testing.T) {

	for trial := uint64(0); trial < 10; trial++ {
		s := samples(t, 100+trial, model.Range{Min: 0, Max: 1.25}, 20, "B", model.Noise{Sigma: 0.5})
		last := math.MaxFloat64
		for degree := 0; degree < 12; degree++ {
			result, err := FitSamples(s, degree)
			require.NoError(t, err)
			rss := result.Diagnostics.RSS
			assert.LessOrEqual(t, rss, last*(1+1e-9)+1e-12, "trial %d degree %d", trial, degree)
			assert.InDelta(t, RSS(result.Polynomial, s), rss, 1e-12*(1+rss))
			last = rss
		}
	}

}

func TestParseMethod(t *testing.T) {

	for _, m := range []Method{MethodAuto, MethodQR, MethodSVD} {
		parsed, err := ParseMethod(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}

	_, err := ParseMethod("lu")
	assert.ErrorIs(t, err, model.ErrInvalidConfig)

}
