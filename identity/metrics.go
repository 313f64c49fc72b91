package identity

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	RequestsTotal  *prometheus.CounterVec   // Количество вызовов провайдера идентификации
	RequestLatency *prometheus.HistogramVec // Латентность вызовов провайдера
}

var (
	metricsOnce sync.Once
	metrics     *Metrics
)

// NewMetrics возвращает метрики модуля, регистрируя их при первом вызове
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		metrics = &Metrics{
			RequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "lumiere_identity_requests_total",
					Help: "Total number of identity provider calls",
				},
				[]string{"operation", "result"}, // success/failure
			),
			RequestLatency: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "lumiere_identity_latency_seconds",
					Help:    "Latency of identity provider calls in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"operation"},
			),
		}
	})
	return metrics
}
