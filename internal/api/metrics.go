package api

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	duration *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "campus_events",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Duration of backend API calls by operation and status code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op", "code"}),
	}

	reg.MustRegister(m.duration)

	return m
}

func (m *Metrics) observe(op, code string, d time.Duration) {
	if m == nil {
		return
	}

	m.duration.WithLabelValues(op, code).Observe(d.Seconds())
}
