package handler

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"checkin-example-app/internal/checkin"
)

const metricsNamespace = "checkin"

// Metrics counts served reports by outcome on a dedicated registry.
type Metrics struct {
	registry *prometheus.Registry
	reports  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "reports_total",
			Help:      "Status reports served, by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "report_duration_seconds",
			Help:      "Time spent producing a status report.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
	}
	m.registry.MustRegister(m.reports, m.duration)
	return m
}

func (m *Metrics) observe(res checkin.Result, elapsed time.Duration) {
	if m == nil {
		return
	}
	outcome := "ok"
	if res.Error != nil {
		outcome = res.Error.Kind.String()
	}
	m.reports.WithLabelValues(outcome).Inc()
	m.duration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
