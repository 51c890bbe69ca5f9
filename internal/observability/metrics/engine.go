package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type EngineMetrics struct {
	service  string
	registry *prometheus.Registry

	runsTotal       *prometheus.CounterVec
	runDuration     *prometheus.HistogramVec
	runsInFlight    prometheus.Gauge
	filesProcessed  prometheus.Counter
	extractTotal    *prometheus.CounterVec
	extractDuration *prometheus.HistogramVec
}

func NewEngineMetrics(service string) *EngineMetrics {
	registry := prometheus.NewRegistry()

	runsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "smeta",
			Subsystem: "engine",
			Name:      "runs_total",
			Help:      "Total finished classification runs by status.",
		},
		[]string{"service", "status"},
	)
	runDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "smeta",
			Subsystem: "engine",
			Name:      "run_duration_seconds",
			Help:      "Classification run duration in seconds by status.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"service", "status"},
	)
	runsInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "smeta",
			Subsystem: "engine",
			Name:      "runs_in_flight",
			Help:      "Number of classification runs currently executing.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	filesProcessed := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "smeta",
			Subsystem: "engine",
			Name:      "files_processed_total",
			Help:      "Total files examined by finished runs.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	extractTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "smeta",
			Subsystem: "extract",
			Name:      "requests_total",
			Help:      "Total content extractions by source kind and status.",
		},
		[]string{"service", "kind", "status"},
	)
	extractDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "smeta",
			Subsystem: "extract",
			Name:      "duration_seconds",
			Help:      "Content extraction duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "kind"},
	)

	registry.MustRegister(
		runsTotal,
		runDuration,
		runsInFlight,
		filesProcessed,
		extractTotal,
		extractDuration,
	)

	return &EngineMetrics{
		service:         service,
		registry:        registry,
		runsTotal:       runsTotal,
		runDuration:     runDuration,
		runsInFlight:    runsInFlight,
		filesProcessed:  filesProcessed,
		extractTotal:    extractTotal,
		extractDuration: extractDuration,
	}
}

func (m *EngineMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *EngineMetrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *EngineMetrics) RunStarted() {
	m.runsInFlight.Inc()
}

func (m *EngineMetrics) RunFinished(status string, duration time.Duration, files int) {
	m.runsInFlight.Dec()

	if status == "" {
		status = "unknown"
	}
	m.runsTotal.WithLabelValues(m.service, status).Inc()
	m.runDuration.WithLabelValues(m.service, status).Observe(duration.Seconds())
	if files > 0 {
		m.filesProcessed.Add(float64(files))
	}
}

func (m *EngineMetrics) ObserveExtraction(kind string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	m.extractTotal.WithLabelValues(m.service, kind, status).Inc()
	m.extractDuration.WithLabelValues(m.service, kind).Observe(duration.Seconds())
}
