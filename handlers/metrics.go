package handlers

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	InvocationsTotal  *prometheus.CounterVec   // Количество вызовов функций
	InvocationLatency *prometheus.HistogramVec // Латентность вызовов функций
	FailuresTotal     *prometheus.CounterVec   // Количество ошибок по видам
}

var (
	metricsOnce sync.Once
	metrics     *Metrics
)

// NewMetrics возвращает метрики модуля, регистрируя их при первом вызове
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		metrics = &Metrics{
			InvocationsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "lumiere_handler_invocations_total",
					Help: "Total number of handler invocations",
				},
				[]string{"function", "code"},
			),
			InvocationLatency: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "lumiere_handler_latency_seconds",
					Help:    "Latency of handler invocations in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"function"},
			),
			FailuresTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "lumiere_handler_failures_total",
					Help: "Total number of failures shaped into responses, by kind",
				},
				[]string{"function", "kind"},
			),
		}
	})
	return metrics
}
