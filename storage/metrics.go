package storage

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	PresignTotal    *prometheus.CounterVec   // Количество подписанных ссылок
	BatchSize       *prometheus.HistogramVec // Размер пакетов
	BatchLatency    *prometheus.HistogramVec // Латентность пакетной подписи
	BucketReachable prometheus.Gauge         // Результат последней проверки бакета (1/0)
}

var (
	metricsOnce sync.Once
	metrics     *Metrics
)

// NewMetrics возвращает метрики модуля, регистрируя их при первом вызове
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		metrics = &Metrics{
			PresignTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "lumiere_storage_presign_total",
					Help: "Total number of presigned URLs requested",
				},
				[]string{"operation", "result"},
			),
			BatchSize: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "lumiere_storage_batch_size",
					Help:    "Number of items per presign batch",
					Buckets: []float64{1, 2, 5, 10, 25, 50, 100},
				},
				[]string{"operation"},
			),
			BatchLatency: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "lumiere_storage_batch_latency_seconds",
					Help:    "Latency of presign batches in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"operation"},
			),
			BucketReachable: promauto.NewGauge(
				prometheus.GaugeOpts{
					Name: "lumiere_storage_bucket_reachable",
					Help: "Result of the last bucket reachability check (1=reachable, 0=unreachable)",
				},
			),
		}
	})
	return metrics
}
