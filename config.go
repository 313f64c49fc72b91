package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/apigw"
	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/auth"
	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/identity"
	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/logger"
	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/monitoring"
	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/routing"
	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/storage"
)

// AppConfig содержит полную конфигурацию приложения
type AppConfig struct {
	// Конфигурация локального API Gateway
	Server ServerConfig `yaml:"server"`

	// Конфигурация логирования
	Logging LoggingConfig `yaml:"logging"`

	// Конфигурация провайдера идентификации
	Identity identity.Config `yaml:"identity"`

	// Конфигурация хранилища объектов
	Storage storage.Config `yaml:"storage"`

	// Конфигурация сессионной cookie
	Auth auth.Config `yaml:"auth"`

	// Конфигурация мониторинга
	Monitoring monitoring.Config `yaml:"monitoring"`

	// Конфигурация таблицы маршрутов
	Routing routing.Config `yaml:"routing"`
}

// ServerConfig содержит конфигурацию HTTP сервера
type ServerConfig struct {
	ListenAddress string        `yaml:"listen_address"`
	TLSCertFile   string        `yaml:"tls_cert_file"`
	TLSKeyFile    string        `yaml:"tls_key_file"`
	ReadTimeout   time.Duration `yaml:"read_timeout"`
	WriteTimeout  time.Duration `yaml:"write_timeout"`
	MaxBodySize   int64         `yaml:"max_body_size"`
}

// LoggingConfig содержит конфигурацию логирования
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Environment string `yaml:"environment"`
}

// DefaultAppConfig возвращает конфигурацию по умолчанию
func DefaultAppConfig() *AppConfig {
	gateway := apigw.DefaultConfig()
	return &AppConfig{
		Server: ServerConfig{
			ListenAddress: gateway.ListenAddress,
			ReadTimeout:   gateway.ReadTimeout,
			WriteTimeout:  gateway.WriteTimeout,
			MaxBodySize:   gateway.MaxBodySize,
		},
		Logging: LoggingConfig{
			Level:       "info",
			Environment: "development",
		},
		Identity:   identity.DefaultConfig(),
		Storage:    storage.DefaultConfig(),
		Auth:       auth.DefaultConfig(),
		Monitoring: *monitoring.DefaultConfig(),
		Routing:    *routing.DefaultConfig(),
	}
}

// LoadConfig собирает конфигурацию: значения по умолчанию, затем файл (если указан), затем окружение
func LoadConfig(filename string) (*AppConfig, error) {
	// Начинаем с конфигурации по умолчанию
	config := DefaultAppConfig()

	if filename != "" {
		data, err := os.ReadFile(filename)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", filename, err)
		}

		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", filename, err)
		}
	}

	config.applyEnv(os.LookupEnv)

	// Валидируем конфигурацию
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// applyEnv применяет переменные окружения функций поверх файла
func (c *AppConfig) applyEnv(lookup func(string) (string, bool)) {
	set := func(name string, target *string) {
		if v, ok := lookup(name); ok && v != "" {
			*target = v
			logger.Debug("Override from environment: %s", name)
		}
	}

	set("AUTH_CLIENT_ID", &c.Identity.ClientID)
	set("AUTH_CLIENT_SECRET", &c.Identity.ClientSecret)
	set("BUCKET_NAME", &c.Storage.Bucket)
	set("AWS_REGION", &c.Identity.Region)
	set("AWS_REGION", &c.Storage.Region)
	set("LOG_LEVEL", &c.Logging.Level)
	set("NODE_ENV", &c.Logging.Environment)
	set("COGNITO_DOMAIN", &c.Identity.OAuth.Domain)
	set("COGNITO_APP_CLIENT_ID", &c.Identity.OAuth.ClientID)
	set("AUTH_CALLBACK_URL", &c.Identity.OAuth.CallbackURL)
	set("STORAGE_PROVIDER", &c.Storage.Provider)
	set("STORAGE_ENDPOINT", &c.Storage.Endpoint)
}

// Validate проверяет корректность конфигурации
func (c *AppConfig) Validate() error {
	// Валидируем server конфигурацию
	if err := c.ToAPIGatewayConfig().Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server.read_timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server.write_timeout must be positive")
	}

	// Валидируем уровень логирования
	if !isValidLogLevel(c.Logging.Level) {
		return fmt.Errorf("invalid logging level: %s", c.Logging.Level)
	}

	// Валидируем конфигурации модулей
	if err := c.Identity.Validate(); err != nil {
		return fmt.Errorf("identity config: %w", err)
	}

	if err := c.Storage.Validate(); err != nil {
		return fmt.Errorf("storage config: %w", err)
	}

	if err := c.Auth.Validate(); err != nil {
		return fmt.Errorf("auth config: %w", err)
	}

	if err := c.Monitoring.Validate(); err != nil {
		return fmt.Errorf("monitoring config: %w", err)
	}

	if err := c.Routing.Validate(); err != nil {
		return fmt.Errorf("routing config: %w", err)
	}

	return nil
}

// ToAPIGatewayConfig преобразует в конфигурацию API Gateway
func (c *AppConfig) ToAPIGatewayConfig() apigw.Config {
	return apigw.Config{
		ListenAddress: c.Server.ListenAddress,
		TLSCertFile:   c.Server.TLSCertFile,
		TLSKeyFile:    c.Server.TLSKeyFile,
		ReadTimeout:   c.Server.ReadTimeout,
		WriteTimeout:  c.Server.WriteTimeout,
		MaxBodySize:   c.Server.MaxBodySize,
	}
}

// isValidLogLevel проверяет корректность уровня логирования
func isValidLogLevel(level string) bool {
	validLevels := []string{"trace", "debug", "info", "warn", "warning", "error", "fatal"}
	for _, valid := range validLevels {
		if strings.EqualFold(level, valid) {
			return true
		}
	}
	return false
}

// SaveConfig сохраняет конфигурацию в файл (для генерации примера).
// Секреты в файл не попадают.
func (c *AppConfig) SaveConfig(filename string) error {
	redacted := *c
	redacted.Identity.ClientSecret = ""
	redacted.Identity.SecretKey = ""
	redacted.Storage.SecretKey = ""

	data, err := yaml.Marshal(&redacted)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if filename == "" || filename == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", filename, err)
	}

	return nil
}
