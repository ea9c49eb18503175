// Package observability provides Prometheus metrics for the dashboard.
package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ChurnSentinel/internal/model"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	registry *prometheus.Registry

	// Scoring metrics
	ScoringRequests *prometheus.CounterVec
	ScoringDuration *prometheus.HistogramVec
	RiskBuckets     *prometheus.CounterVec
	Simulations     prometheus.Counter

	// Artifact metrics
	ArtifactChecks *prometheus.CounterVec
}

// NewMetrics creates a Metrics instance on its own registry.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "churn_sentinel"
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		ScoringRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scoring",
			Name:      "requests_total",
			Help:      "Total number of model scoring calls by model and outcome",
		}, []string{"model", "outcome"}),
		ScoringDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "scoring",
			Name:      "duration_seconds",
			Help:      "Model scoring latency",
			Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01},
		}, []string{"model"}),
		RiskBuckets: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scoring",
			Name:      "risk_bucket_total",
			Help:      "Total number of assessments by risk bucket",
		}, []string{"bucket"}),
		Simulations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scoring",
			Name:      "simulations_total",
			Help:      "Total number of what-if simulations",
		}),

		ArtifactChecks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "artifacts",
			Name:      "checks_total",
			Help:      "Total number of artifact integrity checks by artifact and result",
		}, []string{"artifact", "result"}),
	}
}

// ObserveScore records one scoring call.
func (m *Metrics) ObserveScore(modelName string, elapsed time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.ScoringRequests.WithLabelValues(modelName, outcome).Inc()
	m.ScoringDuration.WithLabelValues(modelName).Observe(elapsed.Seconds())
}

// ObserveRisk counts an assessment in its bucket.
func (m *Metrics) ObserveRisk(level model.RiskLevel) {
	m.RiskBuckets.WithLabelValues(string(level)).Inc()
}

// ObserveSimulation counts a what-if run.
func (m *Metrics) ObserveSimulation() {
	m.Simulations.Inc()
}

// ObserveArtifactCheck counts an integrity check result.
func (m *Metrics) ObserveArtifactCheck(artifact, result string) {
	m.ArtifactChecks.WithLabelValues(artifact, result).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
