package identity

import (
	"fmt"
	"time"
)

// Config содержит конфигурацию провайдера идентификации (Cognito)
type Config struct {
	// ClientID - идентификатор клиента пула пользователей (AUTH_CLIENT_ID)
	ClientID string `yaml:"client_id"`

	// ClientSecret - секрет клиента пула пользователей (AUTH_CLIENT_SECRET)
	ClientSecret string `yaml:"client_secret"`

	// Region - регион AWS
	Region string `yaml:"region"`

	// Endpoint - альтернативный эндпоинт (локальные эмуляторы), опционально
	Endpoint string `yaml:"endpoint,omitempty"`

	// AccessKey/SecretKey - статические ключи; если пусты, используется цепочка по умолчанию
	AccessKey string `yaml:"access_key,omitempty"`
	SecretKey string `yaml:"secret_key,omitempty"`

	// OAuth - настройки обмена кода авторизации на токены
	OAuth OAuthConfig `yaml:"oauth"`
}

// OAuthConfig содержит настройки hosted UI домена
type OAuthConfig struct {
	// Domain - базовый URL домена (COGNITO_DOMAIN)
	Domain string `yaml:"domain"`

	// ClientID - клиент приложения (COGNITO_APP_CLIENT_ID)
	ClientID string `yaml:"client_id"`

	// CallbackURL - redirect_uri, зарегистрированный у провайдера (AUTH_CALLBACK_URL)
	CallbackURL string `yaml:"callback_url"`

	// Timeout - таймаут запроса к token endpoint
	Timeout time.Duration `yaml:"timeout"`
}

// DefaultConfig возвращает конфигурацию по умолчанию
func DefaultConfig() Config {
	return Config{
		Region: "us-east-1",
		OAuth: OAuthConfig{
			Timeout: 10 * time.Second,
		},
	}
}

// Validate проверяет корректность конфигурации.
// Отсутствие ClientID/ClientSecret не ошибка конфигурации: о нем сообщает NewService.
func (c *Config) Validate() error {
	if c.Region == "" {
		return fmt.Errorf("region cannot be empty")
	}
	if (c.AccessKey == "") != (c.SecretKey == "") {
		return fmt.Errorf("access_key and secret_key must be set together")
	}
	if c.OAuth.Timeout < 0 {
		return fmt.Errorf("oauth.timeout cannot be negative")
	}
	return nil
}
