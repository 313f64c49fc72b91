package apigw

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
)

// LocalStage - имя стадии, которое получает обработчик при локальном запуске
const LocalStage = "local"

// RequestIDHeader - заголовок с идентификатором запроса в ответе
const RequestIDHeader = "X-Request-Id"

// RequestHandler - это интерфейс, который должен реализовывать
// следующий по цепочке модуль (таблица маршрутов).
type RequestHandler interface {
	// Handle принимает прокси-событие шлюза и возвращает готовый ответ.
	// Ошибки обработчиков уже преобразованы в ответ.
	Handle(ctx context.Context, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse
}

// HandlerFunc позволяет использовать функцию как RequestHandler
type HandlerFunc func(ctx context.Context, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse

// Handle реализует RequestHandler
func (f HandlerFunc) Handle(ctx context.Context, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	return f(ctx, req)
}
