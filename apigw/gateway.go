package apigw

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/logger"
)

// Gateway - локальная замена API Gateway: HTTP запрос превращается в прокси-событие
type Gateway struct {
	config         Config
	handler        RequestHandler
	parser         *RequestParser
	responseWriter *ResponseWriter
	server         *http.Server
	metrics        *Metrics
}

// New создает новый экземпляр API Gateway
func New(config Config, handler RequestHandler) *Gateway {
	return &Gateway{
		config:         config,
		handler:        handler,
		parser:         NewRequestParser(config.MaxBodySize),
		responseWriter: NewResponseWriter(),
		metrics:        NewMetrics(),
	}
}

// ServeHTTP реализует интерфейс http.Handler
func (gw *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req, err := gw.parser.Parse(r)
	if err != nil {
		logger.Warn("Rejecting %s %s: %v", r.Method, r.URL.Path, err)
		status := http.StatusRequestEntityTooLarge
		if writeErr := gw.responseWriter.WriteError(w, status, "Request Too Long"); writeErr != nil {
			logger.Error("Failed to write response: %v", writeErr)
		}
		gw.observe(r.Method, status, start)
		return
	}

	requestID := req.RequestContext.RequestID
	logger.Info("Incoming request %s: %s %s", requestID, req.HTTPMethod, req.Path)

	resp := gw.handler.Handle(r.Context(), req)

	w.Header().Set(RequestIDHeader, requestID)
	if err := gw.responseWriter.WriteResponse(w, resp); err != nil {
		logger.Error("Failed to write response: %v", err)
	}

	logger.Info("Request %s completed: %d, %.3f ms", requestID, resp.StatusCode, float64(time.Since(start).Microseconds())/1000.0)
	gw.observe(r.Method, resp.StatusCode, start)
}

func (gw *Gateway) observe(method string, status int, start time.Time) {
	gw.metrics.RequestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
	gw.metrics.RequestLatency.WithLabelValues(method).Observe(time.Since(start).Seconds())
}

// Start блокируется до остановки сервера; после Stop возвращает http.ErrServerClosed
func (gw *Gateway) Start() error {
	gw.server = &http.Server{
		Addr:         gw.config.ListenAddress,
		Handler:      gw,
		ReadTimeout:  gw.config.ReadTimeout,
		WriteTimeout: gw.config.WriteTimeout,
	}

	if gw.config.TLSCertFile != "" && gw.config.TLSKeyFile != "" {
		logger.Info("Local API Gateway listening on https://%s (stage %s)", gw.config.ListenAddress, LocalStage)
		return gw.server.ListenAndServeTLS(gw.config.TLSCertFile, gw.config.TLSKeyFile)
	}

	logger.Info("Local API Gateway listening on http://%s (stage %s)", gw.config.ListenAddress, LocalStage)
	return gw.server.ListenAndServe()
}

// Stop останавливает сервер
func (gw *Gateway) Stop(ctx context.Context) error {
	if gw.server == nil {
		return nil
	}

	logger.Info("Stopping local API Gateway")
	return gw.server.Shutdown(ctx)
}
