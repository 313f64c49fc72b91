package monitoring

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics - метрики процесса и проверок готовности.
// Метрики обработчиков и хранилища регистрируются в своих пакетах.
type Metrics struct {
	// Проверки готовности
	ReadinessChecksTotal *prometheus.CounterVec // Количество проверок готовности по результату

	// Системные метрики
	MemoryUsage prometheus.Gauge // Использование памяти
	Goroutines  prometheus.Gauge // Количество горутин
}

var (
	metricsOnce sync.Once
	metrics     *Metrics
)

// NewMetrics создает и регистрирует метрики в Prometheus.
// Использует promauto для автоматической регистрации метрик в default registry.
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		metrics = &Metrics{
			ReadinessChecksTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "lumiere_readiness_checks_total",
					Help: "Total number of readiness checks",
				},
				[]string{"result"}, // ready/not_ready/shutting_down
			),
			MemoryUsage: promauto.NewGauge(
				prometheus.GaugeOpts{
					Name: "lumiere_memory_usage_bytes",
					Help: "Current heap memory usage in bytes",
				},
			),
			Goroutines: promauto.NewGauge(
				prometheus.GaugeOpts{
					Name: "lumiere_goroutines",
					Help: "Current number of goroutines",
				},
			),
		}
	})
	return metrics
}
