package auth

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	AuthRequestsTotal *prometheus.CounterVec   // Количество проверок сессии
	AuthLatency       *prometheus.HistogramVec // Латентность проверки сессии
}

var (
	metricsOnce sync.Once
	metrics     *Metrics
)

// NewMetrics возвращает метрики модуля, регистрируя их при первом вызове
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		metrics = &Metrics{
			AuthRequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "lumiere_auth_requests_total",
					Help: "Total number of session authorization checks",
				},
				[]string{"result"}, // allow/deny
			),
			AuthLatency: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "lumiere_auth_latency_seconds",
					Help:    "Latency of session authorization checks in seconds",
					Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
				},
				[]string{"result"},
			),
		}
	})
	return metrics
}
