package sweep

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/drakos74/polyfit/internal/math"
	"github.com/drakos74/polyfit/internal/model"
)

// Study aggregates the training residuals per degree over repeated independent trials.
type Study struct {
	Index    int
	Stage    Stage
	Function model.FunctionName
	Trials   int
	// Degrees are all degrees from 0 up to the largest configured one.
	Degrees []int
	RSS     map[int]*math.Stats
	// IllConditioned counts the ill-conditioned fits per degree.
	IllConditioned map[int]int
}

// Monotonic reports whether the mean residual does not increase with the degree,
// allowing for the given relative tolerance.
// Only degrees below the sample count of the stage are compared.
func (st Study) Monotonic(tolerance float64) bool {
	for i := 1; i < len(st.Degrees); i++ {
		if st.Degrees[i] >= st.Stage.N {
			break
		}
		prev := st.RSS[st.Degrees[i-1]].Avg()
		curr := st.RSS[st.Degrees[i]].Avg()
		if curr > prev*(1+tolerance)+tolerance {
			return false
		}
	}
	return true
}

// Studies runs the residual study for every stage and function of the config.
// It returns no studies if the config has no trials.
func (s *Sweep) Studies() ([]Study, error) {
	studies := make([]Study, 0)
	if s.config.Trials == 0 {
		return studies, nil
	}
	for i, stage := range s.config.Stages {
		for _, f := range s.functions {
			st, err := s.Study(i+1, stage, f)
			if err != nil {
				return nil, err
			}
			studies = append(studies, st)
		}
	}
	return studies, nil
}

// Study repeats the generation and fit of the stage for the configured number of trials.
// Every trial draws new x values and new noise.
func (s *Sweep) Study(index int, stage Stage, f model.Function) (Study, error) {
	trials := s.config.Trials
	if trials < 1 {
		return Study{}, fmt.Errorf("study needs at least one trial, got %d: %w", trials, model.ErrInvalidConfig)
	}

	top := 0
	for _, d := range s.config.Degrees {
		if d > top {
			top = d
		}
	}
	st := Study{
		Index:          index,
		Stage:          stage,
		Function:       f.Name,
		Trials:         trials,
		Degrees:        make([]int, top+1),
		RSS:            make(map[int]*math.Stats),
		IllConditioned: make(map[int]int),
	}
	for d := 0; d <= top; d++ {
		st.Degrees[d] = d
		st.RSS[d] = math.NewStats()
	}

	for trial := 0; trial < trials; trial++ {
		samples, err := s.generator.Generate(stage.Range, stage.N, string(f.Name), s.config.Noise)
		if err != nil {
			return Study{}, fmt.Errorf("could not generate trial %d: %w", trial, err)
		}
		for _, d := range st.Degrees {
			fit, err := math.FitSamples(samples, d, math.WithMethod(s.method))
			if err != nil {
				return Study{}, fmt.Errorf("could not fit trial %d with degree %d: %w", trial, d, err)
			}
			st.RSS[d].Push(fit.Diagnostics.RSS)
			if fit.Diagnostics.IllConditioned() {
				st.IllConditioned[d]++
			}
		}
	}

	log.Info().
		Str("run", s.ID()).
		Int("stage", index).
		Str("function", string(f.Name)).
		Int("trials", trials).
		Bool("monotonic", st.Monotonic(1e-9)).
		Msg("study completed")

	return st, nil
}
