package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/drakos74/polyfit/internal/math"
	"github.com/drakos74/polyfit/internal/sweep"
)

// Metrics records the fits of a sweep.
type Metrics struct {
	prometheus Prometheus
}

// New creates a new Metrics listener with a fresh registry.
func New() *Metrics {
	return &Metrics{
		prometheus: NewPrometheusMetrics(),
	}
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.prometheus.registry
}

// Collectors returns the sweep collectors.
func (m *Metrics) Collectors() Prometheus {
	return m.prometheus
}

func (m *Metrics) Stage(index int, stage sweep.Stage) error {
	return nil
}

func (m *Metrics) Result(result sweep.Result) error {
	function := string(result.Function.Name)
	degree := math.FormatInt(result.Fit.Degree)
	stage := math.FormatInt(result.Index)
	d := result.Fit.Diagnostics

	m.prometheus.Fits.WithLabelValues(function, degree).Inc()
	for _, reason := range d.Reasons() {
		m.prometheus.IllConditioned.WithLabelValues(function, reason).Inc()
	}
	m.prometheus.RSS.WithLabelValues(stage, function, degree).Set(d.RSS)
	m.prometheus.Condition.WithLabelValues(stage, function, degree).Set(d.Condition)
	return nil
}

func (m *Metrics) StageDone(index int) error {
	return nil
}

// Write writes the current values in the text exposition format.
func (m *Metrics) Write(path string) error {
	if err := prometheus.WriteToTextfile(path, m.prometheus.registry); err != nil {
		return fmt.Errorf("could not write metrics: %w", err)
	}
	log.Info().Str("file", path).Msg("saved metrics")
	return nil
}
