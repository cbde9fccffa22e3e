package math

import (
	"math"
	"strings"
)

// Polynomial is an immutable polynomial in the power basis.
// Coefficients are kept in ascending order of power
// c[0] + c[1]x + c[2]x^2 + c[3]x^3 + ...
type Polynomial struct {
	c []float64
}

// NewPolynomial creates a polynomial from the given ascending coefficients.
// The coefficients are copied.
func NewPolynomial(c ...float64) Polynomial {
	cc := make([]float64, len(c))
	copy(cc, c)
	return Polynomial{c: cc}
}

// Degree returns the degree the polynomial was constructed with,
// i.e. the number of coefficients minus one, even if the leading coefficients are 0.
func (p Polynomial) Degree() int {
	return len(p.c) - 1
}

// Coefficients returns a copy of the ascending coefficients.
func (p Polynomial) Coefficients() []float64 {
	cc := make([]float64, len(p.c))
	copy(cc, p.c)
	return cc
}

// Coefficient returns the coefficient of x^i, or 0 if i is beyond the degree.
func (p Polynomial) Coefficient(i int) float64 {
	if i < 0 || i >= len(p.c) {
		return 0
	}
	return p.c[i]
}

// Eval evaluates the polynomial at x with Horner's scheme.
func (p Polynomial) Eval(x float64) float64 {
	y := 0.0
	for i := len(p.c) - 1; i >= 0; i-- {
		y = y*x + p.c[i]
	}
	return y
}

// Map evaluates the polynomial for each of the given values.
func (p Polynomial) Map(xx []float64) []float64 {
	yy := make([]float64, len(xx))
	for i, x := range xx {
		yy[i] = p.Eval(x)
	}
	return yy
}

// Finite reports whether all coefficients are finite numbers.
func (p Polynomial) Finite() bool {
	for _, c := range p.c {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// String renders the polynomial in ascending powers e.g. '0 + 2·x + 1e-15·x^2'.
func (p Polynomial) String() string {
	if len(p.c) == 0 {
		return "0"
	}
	var sb strings.Builder
	for i, c := range p.c {
		if i > 0 {
			if math.Signbit(c) {
				sb.WriteString(" - ")
				c = -c
			} else {
				sb.WriteString(" + ")
			}
		}
		sb.WriteString(FormatG(c))
		switch i {
		case 0:
		case 1:
			sb.WriteString("·x")
		default:
			sb.WriteString("·x^")
			sb.WriteString(FormatInt(i))
		}
	}
	return sb.String()
}

// compose returns the coefficients of q(off + scl*x) for the ascending coefficients of q.
func compose(q []float64, off, scl float64) []float64 {
	out := make([]float64, len(q))
	if len(q) == 0 {
		return out
	}
	// Horner on polynomials: out = out*(off + scl*x) + q[i]
	out[0] = q[len(q)-1]
	deg := 0
	for i := len(q) - 2; i >= 0; i-- {
		for k := deg + 1; k >= 0; k-- {
			v := off * out[k]
			if k > 0 {
				v += scl * out[k-1]
			}
			out[k] = v
		}
		out[0] += q[i]
		deg++
	}
	return out
}
