package monitoring

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/logger"
)

// ReadinessChecker - зависимость, без которой сервис не готов принимать запросы
type ReadinessChecker interface {
	Ping(ctx context.Context) error
}

// Server представляет HTTP сервер для экспорта метрик Prometheus и проверок здоровья
type Server struct {
	config       *Config
	server       *http.Server
	checker      ReadinessChecker
	metrics      *Metrics
	shuttingDown atomic.Bool

	// Канал для остановки сбора системных метрик
	stopSystemMetrics chan struct{}
	stopOnce          sync.Once
}

// NewServer создает новый сервер метрик. checker может быть nil.
func NewServer(config *Config, checker ReadinessChecker) *Server {
	if config == nil {
		config = DefaultConfig()
	}

	return &Server{
		config:            config,
		checker:           checker,
		metrics:           NewMetrics(),
		stopSystemMetrics: make(chan struct{}),
	}
}

// Handler возвращает мультиплексор с метриками и проверками здоровья
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Регистрируем обработчик метрик
	mux.Handle(s.config.MetricsPath, promhttp.Handler())

	// Добавляем health check эндпоинты
	mux.HandleFunc("/health/live", s.liveHealthHandler)
	mux.HandleFunc("/health/ready", s.readyHealthHandler)
	return mux
}

// Start запускает HTTP сервер для метрик
func (s *Server) Start() error {
	if !s.config.Enabled {
		logger.Info("Monitoring is disabled, skipping metrics server start")
		return nil
	}

	logger.Info("Starting metrics server on %s", s.config.ListenAddress)

	listener, err := net.Listen("tcp", s.config.ListenAddress)
	if err != nil {
		return err
	}

	s.server = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	// Запускаем сервер в отдельной горутине
	go func() {
		logger.Info("Metrics server listening on %s%s", listener.Addr(), s.config.MetricsPath)
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("Metrics server failed: %v", err)
		}
	}()

	if s.config.EnableSystemMetrics {
		go s.collectSystemMetrics()
	}

	return nil
}

// MarkShuttingDown переводит readiness в состояние остановки
func (s *Server) MarkShuttingDown() {
	s.shuttingDown.Store(true)
}

// Stop останавливает HTTP сервер метрик
func (s *Server) Stop(ctx context.Context) error {
	if !s.config.Enabled || s.server == nil {
		return nil
	}

	logger.Info("Stopping metrics server...")
	s.MarkShuttingDown()

	// Останавливаем сбор системных метрик
	s.stopOnce.Do(func() { close(s.stopSystemMetrics) })

	return s.server.Shutdown(ctx)
}

func (s *Server) collectSystemMetrics() {
	ticker := time.NewTicker(s.config.SystemMetricsInterval)
	defer ticker.Stop()

	for {
		s.updateSystemMetrics()
		select {
		case <-ticker.C:
		case <-s.stopSystemMetrics:
			return
		}
	}
}

func (s *Server) updateSystemMetrics() {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	s.metrics.MemoryUsage.Set(float64(mem.HeapAlloc))
	s.metrics.Goroutines.Set(float64(runtime.NumGoroutine()))
}

// liveHealthHandler обрабатывает запросы /health/live
func (s *Server) liveHealthHandler(w http.ResponseWriter, r *http.Request) {
	writeStatus(w, http.StatusOK, "ok")
}

// readyHealthHandler обрабатывает запросы /health/ready
func (s *Server) readyHealthHandler(w http.ResponseWriter, r *http.Request) {
	// Проверяем, не находимся ли мы в состоянии graceful shutdown
	if s.shuttingDown.Load() {
		s.metrics.ReadinessChecksTotal.WithLabelValues("shutting_down").Inc()
		writeStatus(w, http.StatusServiceUnavailable, "shutting down")
		return
	}

	if s.checker != nil {
		ctx := r.Context()
		if s.config.ReadinessTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.config.ReadinessTimeout)
			defer cancel()
		}

		if err := s.checker.Ping(ctx); err != nil {
			logger.Warn("Readiness check failed: %v", err)
			s.metrics.ReadinessChecksTotal.WithLabelValues("not_ready").Inc()
			writeStatus(w, http.StatusServiceUnavailable, "storage unavailable")
			return
		}
	}

	s.metrics.ReadinessChecksTotal.WithLabelValues("ready").Inc()
	writeStatus(w, http.StatusOK, "ok")
}

func writeStatus(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"status": message}); err != nil {
		logger.Debug("Failed to write health response: %v", err)
	}
}
