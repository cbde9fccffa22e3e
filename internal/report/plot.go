package report

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/drakos74/polyfit/internal/math"
	"github.com/drakos74/polyfit/internal/model"
	"github.com/drakos74/polyfit/internal/sweep"
)

const (
	// DefaultGrid is the default number of points the curves are drawn with.
	DefaultGrid = 200
	// PNG renders the plots as png images
	PNG = "png"
	// SVG renders the plots as svg documents
	SVG = "svg"
)

// Plot draws the samples, the reference function and the fitted polynomials
// of the results of one function in one stage.
// Fitted curves are drawn over a grid of the given size, and the y axis is bound to the
// samples and the reference function, so that unstable fits do not hide the data.
func Plot(results []sweep.Result, grid int) (*plot.Plot, error) {
	if len(results) == 0 {
		return nil, fmt.Errorf("no results to plot: %w", model.ErrInvalidConfig)
	}
	if grid < 2 {
		return nil, fmt.Errorf("grid size %d must be at least 2: %w", grid, model.ErrInvalidConfig)
	}

	first := results[0]
	if first.Samples.Len() == 0 {
		return nil, fmt.Errorf("no samples to plot: %w", model.ErrEmptySampleSet)
	}
	r := first.Stage.Range
	f := first.Function

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Function %s, %d samples, x in %s", f.Name, first.Samples.Len(), r)
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Legend.Top = true
	p.Legend.Left = true

	// Plot the data points.
	samples := first.Samples.Points()
	pts := make(plotter.XYs, len(samples))
	ymin, ymax := samples[0].Y, samples[0].Y
	for i, s := range samples {
		pts[i].X = s.X
		pts[i].Y = s.Y
		ymin, ymax = bound(ymin, ymax, s.Y)
	}
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, fmt.Errorf("could not plot samples: %w", err)
	}
	scatter.Color = color.RGBA{B: 255, A: 255, R: 50, G: 50}
	p.Add(scatter)
	p.Legend.Add("samples", scatter)

	// Plot the reference function.
	for _, x := range math.Linspace(r.Min, r.Max, grid) {
		ymin, ymax = bound(ymin, ymax, f.Eval(x))
	}
	reference := plotter.NewFunction(f.Eval)
	reference.XMin = r.Min
	reference.XMax = r.Max
	reference.Samples = grid
	reference.Color = color.Black
	reference.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	p.Add(reference)
	p.Legend.Add(fmt.Sprintf("func%s", f.Name), reference)

	// Plot the fitted polynomials.
	for i, result := range results {
		if !result.Fit.Polynomial.Finite() {
			log.Warn().
				Str("function", string(f.Name)).
				Int("degree", result.Fit.Degree).
				Msg("skipping non-finite polynomial")
			continue
		}
		points, err := Evaluate(result.Fit.Polynomial, r.Min, r.Max, grid)
		if err != nil {
			return nil, fmt.Errorf("could not evaluate degree %d: %w", result.Fit.Degree, err)
		}
		xys := make(plotter.XYs, len(points))
		for j, pt := range points {
			xys[j].X = pt.X
			xys[j].Y = pt.Y
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, fmt.Errorf("could not plot degree %d: %w", result.Fit.Degree, err)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(legend(result, grid), line)
	}

	pad := 0.1 * (ymax - ymin)
	if pad == 0 {
		pad = 1
	}
	p.Y.Min = ymin - pad
	p.Y.Max = ymax + pad
	if r.Min == r.Max {
		p.X.Min = r.Min - 1
		p.X.Max = r.Max + 1
	} else {
		p.X.Min = r.Min
		p.X.Max = r.Max
	}

	return p, nil
}

func legend(result sweep.Result, grid int) string {
	label := fmt.Sprintf("degree %d", result.Fit.Degree)
	if o, err := Oscillate(result.Fit.Polynomial, result.Function, result.Stage.Range, grid); err == nil {
		label = fmt.Sprintf("%s hf %s", label, math.Format(o.HighFrequency))
	}
	if result.Fit.Diagnostics.IllConditioned() {
		label = fmt.Sprintf("%s (ill-conditioned)", label)
	}
	return label
}

func bound(min, max, v float64) (float64, float64) {
	if v < min {
		min = v
	}
	if v > max {
		max = v
	}
	return min, max
}

// Plotter renders one plot file per function at the end of every stage.
type Plotter struct {
	dir           string
	format        string
	grid          int
	width, height vg.Length
	results       map[model.FunctionName][]sweep.Result
	functions     []model.FunctionName
	files         []string
}

// NewPlotter creates a new Plotter writing into the given directory.
func NewPlotter(dir string) *Plotter {
	return &Plotter{
		dir:    dir,
		format: PNG,
		grid:   DefaultGrid,
		width:  6 * vg.Inch,
		height: 4 * vg.Inch,
		files:  make([]string, 0),
	}
}

// WithFormat sets the image format, PNG or SVG.
func (p *Plotter) WithFormat(format string) *Plotter {
	p.format = format
	return p
}

// WithGrid sets the number of points the curves are drawn with.
func (p *Plotter) WithGrid(grid int) *Plotter {
	p.grid = grid
	return p
}

// Files returns the files written so far.
func (p *Plotter) Files() []string {
	return p.files
}

// Stage prepares the plotter for a new stage.
func (p *Plotter) Stage(index int, stage sweep.Stage) error {
	if p.format != PNG && p.format != SVG {
		return fmt.Errorf("unsupported plot format '%s': %w", p.format, model.ErrInvalidConfig)
	}
	if err := os.MkdirAll(p.dir, 0755); err != nil {
		return fmt.Errorf("could not create plot directory: %w", err)
	}
	p.results = make(map[model.FunctionName][]sweep.Result)
	p.functions = make([]model.FunctionName, 0)
	return nil
}

// Result collects the result for the stage plot of its function.
func (p *Plotter) Result(result sweep.Result) error {
	name := result.Function.Name
	if _, ok := p.results[name]; !ok {
		p.functions = append(p.functions, name)
	}
	p.results[name] = append(p.results[name], result)
	return nil
}

// StageDone writes the plots of the stage.
func (p *Plotter) StageDone(index int) error {
	for _, name := range p.functions {
		pl, err := Plot(p.results[name], p.grid)
		if err != nil {
			return err
		}
		file := filepath.Join(p.dir, fmt.Sprintf("stage-%d-func%s.%s", index, name, p.format))
		if err := pl.Save(p.width, p.height, file); err != nil {
			return fmt.Errorf("could not save plot: %w", err)
		}
		log.Info().Str("file", file).Msg("saved plot")
		p.files = append(p.files, file)
	}
	return nil
}
