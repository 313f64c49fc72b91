package auth

import (
	"fmt"
)

// Config содержит конфигурацию сессионной cookie
type Config struct {
	// CookieName - имя cookie с access token
	CookieName string `yaml:"cookie_name"`

	// CookiePath - атрибут Path
	CookiePath string `yaml:"cookie_path"`

	// SameSite - атрибут SameSite (Lax, Strict, None)
	SameSite string `yaml:"same_site"`

	// LoginRedirect - куда перенаправлять после входа через hosted UI
	LoginRedirect string `yaml:"login_redirect"`
}

// DefaultConfig возвращает конфигурацию по умолчанию
func DefaultConfig() Config {
	return Config{
		CookieName:    "accessToken",
		CookiePath:    "/",
		SameSite:      "Lax",
		LoginRedirect: "/",
	}
}

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	if c.CookieName == "" {
		return fmt.Errorf("cookie_name cannot be empty")
	}

	if c.CookiePath == "" {
		return fmt.Errorf("cookie_path cannot be empty")
	}

	switch c.SameSite {
	case "Lax", "Strict", "None":
	default:
		return fmt.Errorf("same_site must be one of: Lax, Strict, None")
	}

	return nil
}
