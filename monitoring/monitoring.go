package monitoring

import (
	"context"
	"fmt"

	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/logger"
)

// Monitor обслуживает /metrics и пробы живости/готовности локального режима
type Monitor struct {
	config *Config
	server *Server
}

// New собирает монитор. checker отвечает на /health/ready; nil означает "всегда готов".
func New(config *Config, checker ReadinessChecker) (*Monitor, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid monitoring config: %w", err)
	}

	if checker == nil {
		logger.Warn("No readiness checker configured, /health/ready always reports ready")
	}
	logger.Debug("Monitoring config: enabled=%v, listen=%s, path=%s, readiness_timeout=%s",
		config.Enabled, config.ListenAddress, config.MetricsPath, config.ReadinessTimeout)

	return &Monitor{
		config: config,
		server: NewServer(config, checker),
	}, nil
}

// Start поднимает HTTP сервер метрик; для выключенного мониторинга ничего не делает
func (m *Monitor) Start() error {
	if !m.config.Enabled {
		logger.Info("Monitoring is disabled")
		return nil
	}
	if err := m.server.Start(); err != nil {
		return fmt.Errorf("failed to start metrics server: %w", err)
	}
	logger.Info("Metrics available at %s%s", m.config.ListenAddress, m.config.MetricsPath)
	return nil
}

// Stop гасит сервер метрик и сборщик системных метрик
func (m *Monitor) Stop(ctx context.Context) error {
	if !m.config.Enabled {
		return nil
	}
	if err := m.server.Stop(ctx); err != nil {
		return fmt.Errorf("failed to stop metrics server: %w", err)
	}
	logger.Info("Monitoring stopped")
	return nil
}

// MarkShuttingDown переводит /health/ready в 503 до остановки шлюза
func (m *Monitor) MarkShuttingDown() {
	m.server.MarkShuttingDown()
}

// IsEnabled сообщает, включен ли мониторинг
func (m *Monitor) IsEnabled() bool {
	return m.config.Enabled
}
