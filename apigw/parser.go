package apigw

import (
	"encoding/base64"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/logger"
)

// RequestParser отвечает за преобразование HTTP запросов в прокси-событие шлюза
type RequestParser struct {
	maxBodySize int64
}

// NewRequestParser создает новый экземпляр парсера
func NewRequestParser(maxBodySize int64) *RequestParser {
	if maxBodySize <= 0 {
		maxBodySize = DefaultConfig().MaxBodySize
	}
	return &RequestParser{maxBodySize: maxBodySize}
}

// Parse анализирует HTTP запрос и создает APIGatewayProxyRequest.
// Параметры пути и Resource заполняет таблица маршрутов.
func (p *RequestParser) Parse(r *http.Request) (events.APIGatewayProxyRequest, error) {
	logger.Debug("Parsing HTTP request: %s %s", r.Method, r.URL.Path)

	body, isBase64, err := p.readBody(r)
	if err != nil {
		return events.APIGatewayProxyRequest{}, err
	}

	requestID := uuid.NewString()
	headers, multiHeaders := flattenHeaders(r)
	query, multiQuery := flattenQuery(r)

	req := events.APIGatewayProxyRequest{
		HTTPMethod:                      r.Method,
		Path:                            r.URL.Path,
		Headers:                         headers,
		MultiValueHeaders:               multiHeaders,
		QueryStringParameters:           query,
		MultiValueQueryStringParameters: multiQuery,
		Body:                            body,
		IsBase64Encoded:                 isBase64,
		RequestContext: events.APIGatewayProxyRequestContext{
			RequestID:        requestID,
			Stage:            LocalStage,
			HTTPMethod:       r.Method,
			Path:             r.URL.Path,
			Protocol:         r.Proto,
			RequestTimeEpoch: time.Now().UnixMilli(),
			Identity: events.APIGatewayRequestIdentity{
				SourceIP:  sourceIP(r),
				UserAgent: r.UserAgent(),
			},
		},
	}

	logger.Debug("Parsed request %s: %d headers, %d query params, %d body bytes",
		requestID, len(headers), len(query), len(body))
	return req, nil
}

// readBody читает тело целиком. Не-UTF-8 содержимое передается в base64, как это делает шлюз.
func (p *RequestParser) readBody(r *http.Request) (string, bool, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return "", false, nil
	}
	defer r.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(r.Body, p.maxBodySize+1))
	if err != nil {
		return "", false, fmt.Errorf("failed to read request body: %w", err)
	}
	if int64(len(raw)) > p.maxBodySize {
		return "", false, fmt.Errorf("request body exceeds %d bytes", p.maxBodySize)
	}

	if utf8.Valid(raw) {
		return string(raw), false, nil
	}
	return base64.StdEncoding.EncodeToString(raw), true, nil
}

// flattenHeaders повторяет поведение шлюза: в Headers попадает последнее значение
func flattenHeaders(r *http.Request) (map[string]string, map[string][]string) {
	single := make(map[string]string, len(r.Header)+1)
	multi := make(map[string][]string, len(r.Header)+1)
	for name, values := range r.Header {
		if len(values) == 0 {
			continue
		}
		single[name] = values[len(values)-1]
		multi[name] = append([]string(nil), values...)
	}
	// Host в Go вынесен из r.Header
	if r.Host != "" {
		single["Host"] = r.Host
		multi["Host"] = []string{r.Host}
	}
	return single, multi
}

func flattenQuery(r *http.Request) (map[string]string, map[string][]string) {
	values := r.URL.Query()
	if len(values) == 0 {
		return nil, nil
	}
	single := make(map[string]string, len(values))
	multi := make(map[string][]string, len(values))
	for name, v := range values {
		if len(v) == 0 {
			continue
		}
		single[name] = v[len(v)-1]
		multi[name] = append([]string(nil), v...)
	}
	return single, multi
}

func sourceIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
