package math

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/drakos74/polyfit/internal/model"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Method is the solver used for the least squares problem.
type Method int

const (
	// MethodAuto uses QR for full rank overdetermined systems and SVD otherwise.
	MethodAuto Method = iota
	// MethodQR solves through a QR factorization of the vandermonde matrix.
	MethodQR
	// MethodSVD solves through a truncated singular value decomposition.
	MethodSVD
)

func (m Method) String() string {
	switch m {
	case MethodAuto:
		return "auto"
	case MethodQR:
		return "qr"
	case MethodSVD:
		return "svd"
	}
	return fmt.Sprintf("method(%d)", int(m))
}

// ParseMethod parses the name of a solver method.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return MethodAuto, nil
	case "qr":
		return MethodQR, nil
	case "svd":
		return MethodSVD, nil
	}
	return MethodAuto, fmt.Errorf("unknown solver method '%s': %w", s, model.ErrInvalidConfig)
}

// Diagnostics describes the numerical condition of a fit.
// None of these conditions is an error: the fit still carries a best-effort solution.
type Diagnostics struct {
	// Method is the solver that produced the coefficients.
	Method Method
	// Rank is the numerical rank of the scaled vandermonde matrix.
	Rank int
	// Order is the number of coefficients i.e. degree + 1.
	Order int
	// Condition is the ratio of the largest to the smallest singular value.
	Condition      float64
	SingularValues []float64
	// RSS is the residual sum of squares on the fitted samples.
	RSS float64
	// R2 is the coefficient of determination on the fitted samples.
	// It is NaN for constant observations.
	R2 float64
	// RankDeficient is set when Rank < Order.
	RankDeficient bool
	// Underdetermined is set when the degree is not smaller than the number of samples.
	Underdetermined bool
	// Finite is set when all coefficients are finite.
	Finite bool
}

// IllConditioned reports whether the fit coefficients should be treated as unstable.
func (d Diagnostics) IllConditioned() bool {
	return d.RankDeficient || d.Underdetermined || !d.Finite
}

// Reasons lists the conditions that make the fit unstable.
func (d Diagnostics) Reasons() []string {
	rr := make([]string, 0)
	if d.Underdetermined {
		rr = append(rr, "underdetermined")
	}
	if d.RankDeficient {
		rr = append(rr, "rank-deficient")
	}
	if !d.Finite {
		rr = append(rr, "non-finite")
	}
	return rr
}

func (d Diagnostics) String() string {
	s := fmt.Sprintf("rank %d/%d cond %s rss %s", d.Rank, d.Order, FormatE(d.Condition), FormatE(d.RSS))
	if rr := d.Reasons(); len(rr) > 0 {
		s = fmt.Sprintf("%s [%s]", s, strings.Join(rr, ","))
	}
	return s
}

// Result is a fitted polynomial together with the diagnostics of its fit.
type Result struct {
	Polynomial  Polynomial
	Degree      int
	Domain      model.Range
	Diagnostics Diagnostics
}

type fitConfig struct {
	method Method
	rcond  float64
}

// Option configures the fit.
type Option func(cfg *fitConfig)

// WithMethod selects the solver.
func WithMethod(m Method) Option {
	return func(cfg *fitConfig) {
		cfg.method = m
	}
}

// WithRcond sets the relative threshold below which singular values are
// treated as zero. Non-positive values select the default len(x)*eps.
func WithRcond(rcond float64) Option {
	return func(cfg *fitConfig) {
		cfg.rcond = rcond
	}
}

// FitSamples fits the sample set into a polynomial of the given degree.
func FitSamples(s model.SampleSet, degree int, opts ...Option) (Result, error) {
	xx, yy := s.XY()
	return Fit(xx, yy, degree, opts...)
}

// Fit fits the given series of x and y into a polynomial function of the given degree
// minimizing the sum of squared residuals.
// The output polynomial holds the coefficients of the corresponding powers of x
// c[0] + c[1]x + c[2]x^2 + c[3]x^3 + ...
// x is mapped onto [-1,1] and the vandermonde columns are scaled to unit norm before solving,
// the coefficients are then converted back to the powers of the original x.
// A degree that is not smaller than the number of samples yields the minimum norm solution
// and is reported through the diagnostics.
func Fit(x, y []float64, degree int, opts ...Option) (Result, error) {
	cfg := &fitConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if degree < 0 {
		return Result{}, fmt.Errorf("degree %d must not be negative: %w", degree, model.ErrInvalidDegree)
	}
	if len(x) != len(y) {
		return Result{}, fmt.Errorf("inconsistent dimensions %d vs %d: %w", len(x), len(y), model.ErrInvalidConfig)
	}
	if len(x) == 0 {
		return Result{}, model.ErrEmptySampleSet
	}
	if !finite(x) || !finite(y) {
		return Result{}, fmt.Errorf("samples must be finite: %w", model.ErrNonFinite)
	}

	n := len(x)
	order := degree + 1

	domain := model.Range{Min: floats.Min(x), Max: floats.Max(x)}
	off, scl := mapDomain(domain)
	t := make([]float64, n)
	for i := range x {
		t[i] = off + scl*x[i]
	}

	a := vandermonde(t, degree)
	norms := normalize(a)
	b := mat.NewDense(n, 1, y)

	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDThin) {
		return Result{}, fmt.Errorf("singular value decomposition did not converge for degree %d on %d samples", degree, n)
	}
	sv := svd.Values(nil)
	rcond := cfg.rcond
	if rcond <= 0 {
		rcond = float64(n) * eps
	}
	rank := svd.Rank(rcond)

	diagnostics := Diagnostics{
		Rank:            rank,
		Order:           order,
		Condition:       condition(sv),
		SingularValues:  sv,
		RankDeficient:   rank < order,
		Underdetermined: degree >= n,
	}

	method := cfg.method
	if method == MethodAuto {
		method = MethodQR
		if diagnostics.RankDeficient {
			method = MethodSVD
		}
	}
	if n < order {
		// QR can only solve the overdetermined system
		method = MethodSVD
	}

	c := mat.NewDense(order, 1, nil)
	if method == MethodQR {
		qr := new(mat.QR)
		qr.Factorize(a)
		err := qr.SolveTo(c, false, b)
		var cond mat.Condition
		if errors.As(err, &cond) {
			if math.IsInf(float64(cond), 1) {
				// exactly singular, the solution has not been written
				method = MethodSVD
			}
		} else if err != nil {
			return Result{}, fmt.Errorf("could not solve QR for degree %d: %w", degree, err)
		}
	}
	if method == MethodSVD {
		if rank < 1 {
			rank = 1
		}
		svd.SolveTo(c, b, rank)
	}
	diagnostics.Method = method

	q := make([]float64, order)
	for j := range q {
		q[j] = c.At(j, 0) / norms[j]
	}
	p := Polynomial{c: compose(q, off, scl)}

	estimates := p.Map(x)
	diagnostics.RSS = rss(estimates, y)
	diagnostics.R2 = stat.RSquaredFrom(estimates, y, nil)
	diagnostics.Finite = p.Finite()

	return Result{
		Polynomial:  p,
		Degree:      degree,
		Domain:      domain,
		Diagnostics: diagnostics,
	}, nil
}

var eps = math.Nextafter(1, 2) - 1

// mapDomain returns the linear map off + scl*x that sends the domain onto [-1,1].
// A domain of zero width is only shifted.
func mapDomain(domain model.Range) (off, scl float64) {
	width := domain.Max - domain.Min
	if width == 0 {
		return -domain.Min, 1
	}
	return -(domain.Max + domain.Min) / width, 2 / width
}

func vandermonde(a []float64, degree int) *mat.Dense {
	x := mat.NewDense(len(a), degree+1, nil)
	for i := range a {
		for j, p := 0, 1.; j <= degree; j, p = j+1, p*a[i] {
			x.Set(i, j, p)
		}
	}
	return x
}

// normalize scales the columns of a to unit euclidean norm in place
// and returns the original norms. Zero columns are left untouched.
func normalize(a *mat.Dense) []float64 {
	r, c := a.Dims()
	norms := make([]float64, c)
	for j := 0; j < c; j++ {
		norm := mat.Norm(a.ColView(j), 2)
		if norm == 0 {
			norm = 1
		}
		norms[j] = norm
		for i := 0; i < r; i++ {
			a.Set(i, j, a.At(i, j)/norm)
		}
	}
	return norms
}

func condition(sv []float64) float64 {
	if len(sv) == 0 {
		return math.Inf(1)
	}
	last := sv[len(sv)-1]
	if last == 0 {
		return math.Inf(1)
	}
	return sv[0] / last
}

func rss(estimates, values []float64) float64 {
	s := 0.0
	for i := range values {
		d := values[i] - estimates[i]
		s += d * d
	}
	return s
}

// RSS returns the residual sum of squares of the polynomial over the sample set.
func RSS(p Polynomial, s model.SampleSet) float64 {
	xx, yy := s.XY()
	return rss(p.Map(xx), yy)
}

func finite(xx []float64) bool {
	for _, x := range xx {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
