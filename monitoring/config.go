package monitoring

import (
	"fmt"
	"time"
)

// Config - сервер метрик и проб для режима serve
type Config struct {
	Enabled bool `yaml:"enabled"`

	// ListenAddress отделен от адреса шлюза, чтобы /metrics не торчал наружу
	ListenAddress string `yaml:"listen_address"`
	MetricsPath   string `yaml:"metrics_path"`

	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// Память и число горутин, снимаются раз в SystemMetricsInterval
	EnableSystemMetrics   bool          `yaml:"enable_system_metrics"`
	SystemMetricsInterval time.Duration `yaml:"system_metrics_interval"`

	// ReadinessTimeout ограничивает одну проверку бакета; 0 - без ограничения
	ReadinessTimeout time.Duration `yaml:"readiness_timeout"`
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:               true,
		ListenAddress:         ":9091",
		MetricsPath:           "/metrics",
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		EnableSystemMetrics:   true,
		SystemMetricsInterval: 15 * time.Second,
		ReadinessTimeout:      5 * time.Second,
	}
}

// Validate проверяет конфигурацию; выключенный мониторинг не проверяется
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}

	switch {
	case c.ListenAddress == "":
		return fmt.Errorf("monitoring listen_address cannot be empty")
	case c.MetricsPath == "" || c.MetricsPath[0] != '/':
		return fmt.Errorf("monitoring metrics_path must start with '/'")
	case c.ReadTimeout <= 0 || c.WriteTimeout <= 0:
		return fmt.Errorf("monitoring read_timeout and write_timeout must be positive")
	case c.ReadinessTimeout < 0:
		return fmt.Errorf("monitoring readiness_timeout cannot be negative")
	case c.EnableSystemMetrics && c.SystemMetricsInterval <= 0:
		return fmt.Errorf("monitoring system_metrics_interval must be positive when system metrics are enabled")
	}
	return nil
}
