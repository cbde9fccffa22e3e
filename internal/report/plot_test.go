package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/drakos74/polyfit/internal/model"
	"github.com/drakos74/polyfit/internal/sweep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"
)

type results struct {
	results []sweep.Result
}

func (r *results) Stage(index int, stage sweep.Stage) error { return nil }

func (r *results) Result(result sweep.Result) error {
	r.results = append(r.results, result)
	return nil
}

func (r *results) StageDone(index int) error { return nil }

func TestPlot(t *testing.T) {

	config := sweep.DefaultConfig()
	config.Seed = 42
	config.Noise = model.Noise{Sigma: 0.1}
	config.Functions = []string{"B"}
	config.Stages = config.Stages[:1]

	s, err := sweep.New(config)
	require.NoError(t, err)
	r := &results{}
	require.NoError(t, s.WithListener(r).Run())
	require.Len(t, r.results, 3)

	p, err := Plot(r.results, 50)
	require.NoError(t, err)
	assert.Contains(t, p.Title.Text, "Function B")
	assert.Less(t, p.Y.Min, p.Y.Max)
	assert.Equal(t, 0.0, p.X.Min)
	assert.Equal(t, 1.0, p.X.Max)

	w, err := p.WriterTo(4*vg.Inch, 3*vg.Inch, "png")
	require.NoError(t, err)
	var buffer bytes.Buffer
	_, err = w.WriteTo(&buffer)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buffer.Bytes(), []byte("\x89PNG")))

	_, err = Plot(nil, 50)
	assert.ErrorIs(t, err, model.ErrInvalidConfig)
	_, err = Plot(r.results, 1)
	assert.ErrorIs(t, err, model.ErrInvalidConfig)
	_, err = Plot([]sweep.Result{{Function: model.Functions[model.FuncA]}}, 50)
	assert.ErrorIs(t, err, model.ErrEmptySampleSet)

}

func TestPlotter(t *testing.T) {

	type test struct {
		format string
		err    error
	}

	tests := map[string]test{
		"png": {
			format: PNG,
		},
		"svg": {
			format: SVG,
		},
		"unknown": {
			format: "gif",
			err:    model.ErrInvalidConfig,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			config := sweep.DefaultConfig()
			config.Seed = 11
			config.Grid = 20
			config.Noise = model.Noise{Sigma: 0.2}

			s, err := sweep.New(config)
			require.NoError(t, err)

			dir := filepath.Join(t.TempDir(), "plots")
			plotter := NewPlotter(dir).WithFormat(tt.format).WithGrid(config.Grid)
			err = s.WithListener(plotter).Run()
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				assert.Empty(t, plotter.Files())
				return
			}
			require.NoError(t, err)

			// one plot per stage and function
			assert.Equal(t, []string{
				filepath.Join(dir, "stage-1-funcA."+tt.format),
				filepath.Join(dir, "stage-1-funcB."+tt.format),
				filepath.Join(dir, "stage-2-funcA."+tt.format),
				filepath.Join(dir, "stage-2-funcB."+tt.format),
			}, plotter.Files())
			for _, file := range plotter.Files() {
				info, err := os.Stat(file)
				require.NoError(t, err)
				assert.Greater(t, info.Size(), int64(0))
			}
		})
	}

}
