package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/olekukonko/tablewriter"

	"github.com/drakos74/polyfit/internal/math"
	"github.com/drakos74/polyfit/internal/model"
	"github.com/drakos74/polyfit/internal/sweep"
)

const graphWidth = 60

// writer keeps the first write error and skips all writes after it.
type writer struct {
	w   io.Writer
	err error
}

func (w *writer) Write(b []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := w.w.Write(b)
	w.err = err
	return n, err
}

// Printer writes the fitted coefficients of a sweep as text.
type Printer struct {
	w           *writer
	diagnostics bool
	graph       int
	function    model.FunctionName
}

// NewPrinter creates a new Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: &writer{w: w}}
}

// WithDiagnostics adds the numerical diagnostics below every ill-conditioned fit.
func (p *Printer) WithDiagnostics(diagnostics bool) *Printer {
	p.diagnostics = diagnostics
	return p
}

// WithGraph draws every fitted polynomial over its stage range as an ascii graph
// of the given height. A height of 0 disables the graph.
func (p *Printer) WithGraph(height int) *Printer {
	p.graph = height
	return p
}

func (p *Printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, format, args...)
}

// flush returns and resets the first write error.
func (p *Printer) flush() error {
	err := p.w.err
	p.w.err = nil
	return err
}

// Header prints the run identity and the sweep configuration.
func (p *Printer) Header(run string, config sweep.Config) error {
	p.printf("run %s seed %d\n", run, config.Seed)
	p.printf("functions %s degrees %s mu %s sigma %s\n\n",
		strings.Join(config.Functions, ","),
		joinInts(config.Degrees),
		math.FormatG(config.Noise.Mu),
		math.FormatG(config.Noise.Sigma))
	return p.flush()
}

// Stage prints the header of a stage.
func (p *Printer) Stage(index int, stage sweep.Stage) error {
	p.function = model.NoFunction
	p.printf("=== (%d) generate %d pairs with x in %s\n", index, stage.N, stage.Range)
	return p.flush()
}

// Result prints the fitted polynomial, preceded by the function header on a function change.
func (p *Printer) Result(result sweep.Result) error {
	if result.Function.Name != p.function {
		p.function = result.Function.Name
		p.printf("\n--- Printing results for function %s\n\n", result.Function.Name)
	} else {
		p.printf("\n")
	}
	p.printf("%s\n", Format(result.Fit.Polynomial))
	if d := result.Fit.Diagnostics; p.diagnostics && d.IllConditioned() {
		p.printf("  # degree %d %s\n", result.Fit.Degree, d)
	}
	if p.graph > 0 && result.Fit.Polynomial.Finite() {
		p.plot(result)
	}
	return p.flush()
}

func (p *Printer) plot(result sweep.Result) {
	r := result.Stage.Range
	points, err := Evaluate(result.Fit.Polynomial, r.Min, r.Max, graphWidth)
	if err != nil {
		p.w.err = err
		return
	}
	yy := make([]float64, len(points))
	for i, pt := range points {
		yy[i] = pt.Y
	}
	p.printf("%s\n", asciigraph.Plot(yy,
		asciigraph.Height(p.graph),
		asciigraph.Caption(fmt.Sprintf("degree %d on %s", result.Fit.Degree, r))))
}

// StageDone closes the stage.
func (p *Printer) StageDone(index int) error {
	p.printf("\n")
	return p.flush()
}

// Study prints the mean training residual per degree of the study.
func (p *Printer) Study(st sweep.Study) error {
	p.printf("=== (%d) residuals of function %s over %d trials, %s\n", st.Index, st.Function, st.Trials, st.Stage)
	if err := p.flush(); err != nil {
		return err
	}

	table := tablewriter.NewWriter(p.w)
	table.SetHeader([]string{"degree", "mean rss", "std rss", "min rss", "max rss", "ill-conditioned"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, d := range st.Degrees {
		stats := st.RSS[d]
		table.Append([]string{
			math.FormatInt(d),
			math.FormatG(stats.Avg()),
			math.FormatG(stats.StDev()),
			math.FormatG(stats.Min()),
			math.FormatG(stats.Max()),
			math.FormatInt(st.IllConditioned[d]),
		})
	}
	table.Render()

	p.printf("non-increasing with degree: %t\n\n", st.Monotonic(1e-9))
	return p.flush()
}

func joinInts(ii []int) string {
	ss := make([]string, len(ii))
	for i, v := range ii {
		ss[i] = math.FormatInt(v)
	}
	return strings.Join(ss, ",")
}
