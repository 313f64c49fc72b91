package storage

import (
	"fmt"
	"time"
)

const (
	ProviderS3    = "s3"
	ProviderMinio = "minio"
)

// Config содержит конфигурацию хранилища объектов
type Config struct {
	// Provider - реализация подписи URL: "s3" или "minio"
	Provider string `yaml:"provider"`

	// Bucket - имя бакета (BUCKET_NAME)
	Bucket string `yaml:"bucket"`

	// Region - регион бакета
	Region string `yaml:"region"`

	// Endpoint - эндпоинт S3-совместимого хранилища; пусто для AWS S3
	Endpoint string `yaml:"endpoint,omitempty"`

	// AccessKey/SecretKey - статические ключи; для s3 опциональны
	AccessKey string `yaml:"access_key,omitempty"`
	SecretKey string `yaml:"secret_key,omitempty"`

	// UsePathStyle - адресация бакета в пути URL (нужно для MinIO и эмуляторов)
	UsePathStyle bool `yaml:"use_path_style"`

	// DefaultExpiry - срок жизни подписанной ссылки по умолчанию
	DefaultExpiry time.Duration `yaml:"default_expiry"`

	// MaxConcurrentOperations - ограничение параллельных подписей в одном пакете
	MaxConcurrentOperations int `yaml:"max_concurrent_operations"`

	// CheckTimeout - таймаут проверки доступности бакета
	CheckTimeout time.Duration `yaml:"check_timeout"`
}

// DefaultConfig возвращает конфигурацию по умолчанию
func DefaultConfig() Config {
	return Config{
		Provider:                ProviderS3,
		Region:                  "us-east-1",
		DefaultExpiry:           300 * time.Second,
		MaxConcurrentOperations: 16,
		CheckTimeout:            5 * time.Second,
	}
}

// Validate проверяет корректность конфигурации.
// Пустой Bucket проверяется в NewService.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderS3:
	case ProviderMinio:
		if c.Endpoint == "" {
			return fmt.Errorf("endpoint cannot be empty for provider %s", c.Provider)
		}
		if c.AccessKey == "" || c.SecretKey == "" {
			return fmt.Errorf("access_key and secret_key are required for provider %s", c.Provider)
		}
	default:
		return fmt.Errorf("unknown storage provider: %q", c.Provider)
	}

	if c.Region == "" {
		return fmt.Errorf("region cannot be empty")
	}

	if c.DefaultExpiry <= 0 {
		return fmt.Errorf("default_expiry must be positive")
	}

	if c.MaxConcurrentOperations <= 0 {
		return fmt.Errorf("max_concurrent_operations must be positive")
	}

	if c.CheckTimeout <= 0 {
		return fmt.Errorf("check_timeout must be positive")
	}

	return nil
}
