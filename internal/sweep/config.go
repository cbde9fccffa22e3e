package sweep

import (
	"fmt"

	"github.com/drakos74/polyfit/internal/math"
	"github.com/drakos74/polyfit/internal/model"
)

// ConfigKey is the key of the default sweep config file.
const ConfigKey = "sweep"

// Stage is a block of the sweep with a fixed x range and sample count.
// All functions of a stage are observed on the same x values.
type Stage struct {
	Range model.Range `json:"range"`
	N     int         `json:"n"`
}

func (s Stage) String() string {
	return fmt.Sprintf("n=%d x=%s", s.N, s.Range)
}

// Validate checks the stage parameters.
func (s Stage) Validate() error {
	if err := s.Range.Validate(); err != nil {
		return err
	}
	if s.N < 1 {
		return fmt.Errorf("sample count %d must be positive: %w", s.N, model.ErrInvalidConfig)
	}
	return nil
}

// Config defines the sweep over functions, degrees and stages.
type Config struct {
	// Seed seeds the random source. 0 asks for a seed derived from the clock.
	Seed      uint64      `json:"seed"`
	Noise     model.Noise `json:"noise"`
	Functions []string    `json:"functions"`
	Degrees   []int       `json:"degrees"`
	Stages    []Stage     `json:"stages"`
	// Grid is the number of points the fitted polynomials are evaluated on for plotting.
	Grid int `json:"grid"`
	// Trials is the number of repetitions for the residual study, 0 disables it.
	Trials int    `json:"trials"`
	Method string `json:"method"`
}

// DefaultConfig returns the sweep of the original exercise.
func DefaultConfig() Config {
	return Config{
		Functions: []string{string(model.FuncA), string(model.FuncB)},
		Degrees:   []int{1, 3, 10},
		Stages: []Stage{
			{
				Range: model.Range{Min: 0, Max: 1},
				N:     10,
			},
			{
				Range: model.Range{Min: 0, Max: 1.25},
				N:     20,
			},
		},
		Grid:   200,
		Method: math.MethodAuto.String(),
	}
}

// Validate checks the whole configuration, so that a run fails before doing any work.
func (c Config) Validate() error {
	if len(c.Functions) == 0 {
		return fmt.Errorf("no functions given: %w", model.ErrInvalidConfig)
	}
	for _, f := range c.Functions {
		if _, err := model.LookupFunction(f); err != nil {
			return err
		}
	}
	if len(c.Degrees) == 0 {
		return fmt.Errorf("no degrees given: %w", model.ErrInvalidConfig)
	}
	for _, d := range c.Degrees {
		if d < 0 {
			return fmt.Errorf("degree %d must not be negative: %w", d, model.ErrInvalidDegree)
		}
	}
	if len(c.Stages) == 0 {
		return fmt.Errorf("no stages given: %w", model.ErrInvalidConfig)
	}
	for i, s := range c.Stages {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("stage %d: %w", i+1, err)
		}
	}
	if err := c.Noise.Validate(); err != nil {
		return err
	}
	if c.Grid < 2 {
		return fmt.Errorf("grid size %d must be at least 2: %w", c.Grid, model.ErrInvalidConfig)
	}
	if c.Trials < 0 {
		return fmt.Errorf("trials %d must not be negative: %w", c.Trials, model.ErrInvalidConfig)
	}
	if _, err := math.ParseMethod(c.Method); err != nil {
		return err
	}
	return nil
}
