package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolynomial_Eval(t *testing.T) {

	type test struct {
		c   []float64
		x   float64
		out float64
	}

	tests := map[string]test{
		"empty": {
			c:   []float64{},
			x:   3,
			out: 0,
		},
		"constant": {
			c:   []float64{4},
			x:   3,
			out: 4,
		},
		"linear": {
			c:   []float64{0, 2},
			x:   3,
			out: 6,
		},
		"cubic": {
			// 1 - x + 2x^3
			c:   []float64{1, -1, 0, 2},
			x:   2,
			out: 15,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p := NewPolynomial(tt.c...)
			assert.Equal(t, tt.out, p.Eval(tt.x))
			assert.Equal(t, len(tt.c)-1, p.Degree())
		})
	}

}

func TestPolynomial_Immutable(t *testing.T) {

	c := []float64{1, 2, 3}
	p := NewPolynomial(c...)
	c[0] = 100
	assert.Equal(t, 1.0, p.Coefficient(0))

	cc := p.Coefficients()
	cc[1] = 100
	assert.Equal(t, 2.0, p.Coefficient(1))

	assert.Equal(t, 0.0, p.Coefficient(5))
	assert.Equal(t, 0.0, p.Coefficient(-1))

}

func TestPolynomial_String(t *testing.T) {

	type test struct {
		c   []float64
		out string
	}

	tests := map[string]test{
		"empty": {
			c:   []float64{},
			out: "0",
		},
		"linear": {
			c:   []float64{0, 2},
			out: "0 + 2·x",
		},
		"negative": {
			c:   []float64{1.5, -2, 0.25},
			out: "1.5 - 2·x + 0.25·x^2",
		},
		"tiny": {
			c:   []float64{-1e-15, 2, 3e-16},
			out: "-1e-15 + 2·x + 3e-16·x^2",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.out, NewPolynomial(tt.c...).String())
		})
	}

}

func TestCompose(t *testing.T) {

	// q(t) = 1 + t^2 , t = -1 + 2x => 1 + 1 - 4x + 4x^2
	assert.Equal(t, []float64{2, -4, 4}, compose([]float64{1, 0, 1}, -1, 2))

	// identity map
	assert.Equal(t, []float64{3, 2, 1}, compose([]float64{3, 2, 1}, 0, 1))

	q := []float64{0.5, -1, 2, 0.25}
	p := NewPolynomial(compose(q, 0.3, 1.7)...)
	for _, x := range []float64{-1, 0, 0.5, 2} {
		assert.InDelta(t, NewPolynomial(q...).Eval(0.3+1.7*x), p.Eval(x), 1e-12)
	}

	assert.Equal(t, []float64{}, compose([]float64{}, 1, 1))

}

func TestPolynomial_Finite(t *testing.T) {
	assert.True(t, NewPolynomial(1, 2).Finite())
	assert.False(t, NewPolynomial(1, 1/zero()).Finite())
}

func zero() float64 {
	return 0
}
