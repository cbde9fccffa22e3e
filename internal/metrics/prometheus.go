package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "polyfit"

// Prometheus holds the collectors of a sweep, registered on their own registry.
type Prometheus struct {
	registry       *prometheus.Registry
	Fits           *prometheus.CounterVec
	IllConditioned *prometheus.CounterVec
	RSS            *prometheus.GaugeVec
	Condition      *prometheus.GaugeVec
}

// NewPrometheusMetrics creates and registers the sweep collectors.
func NewPrometheusMetrics() Prometheus {
	p := Prometheus{
		registry: prometheus.NewRegistry(),
		Fits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "fits_total",
				Help:      "Number of polynomial fits.",
			}, []string{"function", "degree"}),
		IllConditioned: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ill_conditioned_total",
				Help:      "Number of ill-conditioned fits per reason.",
			}, []string{"function", "reason"}),
		RSS: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "rss",
				Help:      "Residual sum of squares of the last fit.",
			}, []string{"stage", "function", "degree"}),
		Condition: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "condition",
				Help:      "Condition number of the scaled vandermonde matrix of the last fit.",
			}, []string{"stage", "function", "degree"}),
	}
	p.registry.MustRegister(p.Fits, p.IllConditioned, p.RSS, p.Condition)
	return p
}
