package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/failure"
	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/logger"
)

// MessageBody - тело ответа с сообщением
type MessageBody struct {
	Message string `json:"message"`
}

// ErrorBody - тело ответа об ошибке
type ErrorBody struct {
	Message   string `json:"message"`
	ErrorCode string `json:"errorCode"`
}

// base - общие зависимости обработчика: имя функции, логгер и метрики
type base struct {
	name    string
	log     *logger.Logger
	metrics *Metrics
}

func newBase(name string) base {
	return base{
		name:    name,
		log:     logger.ForApp(name),
		metrics: NewMetrics(),
	}
}

// Name возвращает имя функции
func (b base) Name() string {
	return b.name
}

// finish фиксирует метрики вызова
func (b base) finish(start time.Time, resp events.APIGatewayProxyResponse) (events.APIGatewayProxyResponse, error) {
	b.observe(start, strconv.Itoa(resp.StatusCode))
	return resp, nil
}

func (b base) observe(start time.Time, code string) {
	b.metrics.InvocationsTotal.WithLabelValues(b.name, code).Inc()
	b.metrics.InvocationLatency.WithLabelValues(b.name).Observe(time.Since(start).Seconds())
}

// report логирует ошибку как {message, kind, reason, stack} и возвращает ее Failure
func (b base) report(err error) *failure.Failure {
	f := failure.From(err)
	if f == nil {
		f = failure.Unexpected("")
	}

	b.log.WithFields(logger.Fields{
		"kind":   f.Kind.String(),
		"reason": f.Reason,
		"stack":  f.Stack,
	}).Error("%s", f.Message())
	b.metrics.FailuresTotal.WithLabelValues(b.name, f.Kind.String()).Inc()
	return f
}

// fail - единственная точка преобразования ошибки в ответ {message, errorCode}
func (b base) fail(err error, headers map[string]string) events.APIGatewayProxyResponse {
	f := b.report(err)
	return jsonResponse(f.StatusCode(), ErrorBody{Message: f.Message(), ErrorCode: f.Kind.String()}, headers)
}

// jsonResponse сериализует тело в JSON
func jsonResponse(status int, body interface{}, headers map[string]string) events.APIGatewayProxyResponse {
	h := map[string]string{"Content-Type": "application/json"}
	for k, v := range headers {
		h[k] = v
	}

	data, err := json.Marshal(body)
	if err != nil {
		logger.Error("Failed to marshal response body: %v", err)
		status = http.StatusInternalServerError
		data, _ = json.Marshal(ErrorBody{
			Message:   failure.KindUnexpected.Message(),
			ErrorCode: failure.KindUnexpected.String(),
		})
	}

	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    h,
		Body:       string(data),
	}
}

// decodeBody разбирает JSON тело запроса. Пустое тело оставляет v без изменений.
func decodeBody(req events.APIGatewayProxyRequest, v interface{}) error {
	body := req.Body
	if req.IsBase64Encoded && body != "" {
		raw, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return err
		}
		body = string(raw)
	}
	if strings.TrimSpace(body) == "" {
		return nil
	}
	return json.Unmarshal([]byte(body), v)
}

// authorizerValue читает строковое значение из контекста авторизатора шлюза
func authorizerValue(req events.APIGatewayProxyRequest, key string) string {
	if req.RequestContext.Authorizer == nil {
		return ""
	}
	s, _ := req.RequestContext.Authorizer[key].(string)
	return s
}
