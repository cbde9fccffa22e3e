package sweep

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/drakos74/polyfit/internal/math"
	"github.com/drakos74/polyfit/internal/model"
)

// Result is the fit of one degree, for one function of a stage.
type Result struct {
	Run string
	// Index is the 1-based position of the stage in the sweep.
	Index    int
	Stage    Stage
	Function model.Function
	Samples  model.SampleSet
	Fit      math.Result
}

// Listener receives the events of a sweep in order.
type Listener interface {
	Stage(index int, stage Stage) error
	Result(result Result) error
	StageDone(index int) error
}

// Sweep runs the generate-fit pipeline over all configured stages, functions and degrees.
// A Sweep owns its random source and is not safe for concurrent use.
type Sweep struct {
	id        uuid.UUID
	config    Config
	method    math.Method
	functions []model.Function
	generator *math.Generator
	listeners []Listener
}

// New creates a new sweep for the given config.
// The config is validated before anything else, and any error is a configuration error.
func New(config Config) (*Sweep, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	method, err := math.ParseMethod(config.Method)
	if err != nil {
		return nil, err
	}
	functions := make([]model.Function, len(config.Functions))
	for i, name := range config.Functions {
		f, err := model.LookupFunction(name)
		if err != nil {
			return nil, err
		}
		functions[i] = f
	}
	if config.Seed == 0 {
		config.Seed = uint64(time.Now().UnixNano())
	}
	return &Sweep{
		id:        uuid.New(),
		config:    config,
		method:    method,
		functions: functions,
		generator: math.NewGenerator(config.Seed),
		listeners: make([]Listener, 0),
	}, nil
}

// WithListener adds listeners to the sweep events.
func (s *Sweep) WithListener(listeners ...Listener) *Sweep {
	s.listeners = append(s.listeners, listeners...)
	return s
}

// ID returns the unique id of the run.
func (s *Sweep) ID() string {
	return s.id.String()
}

// Seed returns the effective seed of the run.
func (s *Sweep) Seed() uint64 {
	return s.config.Seed
}

// Config returns the effective config of the run.
func (s *Sweep) Config() Config {
	return s.config
}

// Run executes all stages of the sweep.
func (s *Sweep) Run() error {
	log.Info().
		Str("run", s.ID()).
		Uint64("seed", s.config.Seed).
		Int("stages", len(s.config.Stages)).
		Strs("functions", s.config.Functions).
		Ints("degrees", s.config.Degrees).
		Str("method", s.method.String()).
		Msg("starting sweep")

	for i, stage := range s.config.Stages {
		index := i + 1
		err := s.runStage(index, stage)
		if err != nil {
			return fmt.Errorf("stage %d: %w", index, err)
		}
	}
	return nil
}

func (s *Sweep) runStage(index int, stage Stage) error {
	for _, l := range s.listeners {
		if err := l.Stage(index, stage); err != nil {
			return fmt.Errorf("could not start stage: %w", err)
		}
	}

	// NOTE : all functions are observed on the same x values
	xx, err := s.generator.Draw(stage.Range, stage.N)
	if err != nil {
		return fmt.Errorf("could not draw samples: %w", err)
	}

	for _, f := range s.functions {
		samples, err := s.generator.Observe(f, stage.Range, s.config.Noise, xx)
		if err != nil {
			return fmt.Errorf("could not observe func%s: %w", f.Name, err)
		}
		for _, degree := range s.config.Degrees {
			fit, err := math.FitSamples(samples, degree, math.WithMethod(s.method))
			if err != nil {
				return fmt.Errorf("could not fit func%s with degree %d: %w", f.Name, degree, err)
			}
			s.logFit(index, f, fit)
			result := Result{
				Run:      s.ID(),
				Index:    index,
				Stage:    stage,
				Function: f,
				Samples:  samples,
				Fit:      fit,
			}
			for _, l := range s.listeners {
				if err := l.Result(result); err != nil {
					return fmt.Errorf("could not process func%s with degree %d: %w", f.Name, degree, err)
				}
			}
		}
	}

	for _, l := range s.listeners {
		if err := l.StageDone(index); err != nil {
			return fmt.Errorf("could not complete stage: %w", err)
		}
	}
	return nil
}

func (s *Sweep) logFit(index int, f model.Function, fit math.Result) {
	d := fit.Diagnostics
	if d.IllConditioned() {
		log.Warn().
			Str("run", s.ID()).
			Int("stage", index).
			Str("function", string(f.Name)).
			Int("degree", fit.Degree).
			Int("rank", d.Rank).
			Float64("condition", d.Condition).
			Strs("reasons", d.Reasons()).
			Msg("ill-conditioned fit")
		return
	}
	log.Debug().
		Str("run", s.ID()).
		Int("stage", index).
		Str("function", string(f.Name)).
		Int("degree", fit.Degree).
		Str("method", d.Method.String()).
		Float64("rss", d.RSS).
		Msg("fit")
}
