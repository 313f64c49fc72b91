package apigw

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// Общие метрики запросов
	RequestsTotal  *prometheus.CounterVec   // Общее количество обработанных HTTP запросов
	RequestLatency *prometheus.HistogramVec // Латентность HTTP запросов
}

var (
	metricsOnce sync.Once
	metrics     *Metrics
)

// NewMetrics регистрирует метрики шлюза один раз на процесс
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		metrics = &Metrics{
			RequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "lumiere_apigw_requests_total",
					Help: "Total number of processed HTTP requests",
				},
				[]string{"method", "code"},
			),
			RequestLatency: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "lumiere_apigw_request_latency_seconds",
					Help:    "Latency of HTTP requests in seconds",
					Buckets: prometheus.DefBuckets, // Стандартные бакеты времени
				},
				[]string{"method"},
			),
		}
	})
	return metrics
}
