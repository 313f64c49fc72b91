package routing

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

// HandlerFunc - функция Lambda с прокси-интеграцией
type HandlerFunc func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// AuthorizerFunc - функция Lambda-авторизатора типа REQUEST
type AuthorizerFunc func(ctx context.Context, req events.APIGatewayCustomAuthorizerRequestTypeRequest) (events.APIGatewayCustomAuthorizerResponse, error)

// Route описывает один маршрут шлюза
type Route struct {
	// Method - HTTP метод маршрута
	Method string

	// Pattern - шаблон пути, сегменты вида {name} становятся параметрами пути
	Pattern string

	// Function - имя функции (для логов)
	Function string

	// Protected - маршрут требует успешного решения авторизатора
	Protected bool

	// Handler - обработчик маршрута
	Handler HandlerFunc
}

// Config содержит конфигурацию таблицы маршрутов
type Config struct {
	// BasePath - префикс пути стадии, который отрезается перед сопоставлением (например, "/dev")
	BasePath string `yaml:"base_path"`
}

// DefaultConfig возвращает конфигурацию по умолчанию
func DefaultConfig() *Config {
	return &Config{}
}

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	if c.BasePath != "" && !strings.HasPrefix(c.BasePath, "/") {
		return fmt.Errorf("base_path must start with '/'")
	}
	return nil
}
