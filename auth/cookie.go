package auth

import (
	"fmt"
	"strings"
)

// Cookies формирует и разбирает сессионную cookie
type Cookies struct {
	config Config
}

// NewCookies создает помощник; пустые поля конфигурации заменяются значениями по умолчанию
func NewCookies(cfg Config) *Cookies {
	defaults := DefaultConfig()
	if cfg.CookieName == "" {
		cfg.CookieName = defaults.CookieName
	}
	if cfg.CookiePath == "" {
		cfg.CookiePath = defaults.CookiePath
	}
	if cfg.SameSite == "" {
		cfg.SameSite = defaults.SameSite
	}
	return &Cookies{config: cfg}
}

// Name возвращает имя сессионной cookie
func (c *Cookies) Name() string {
	return c.config.CookieName
}

// Token извлекает access token из значения заголовка Cookie
func (c *Cookies) Token(cookieHeader string) string {
	return GetCookie(cookieHeader, c.config.CookieName)
}

// SetCookie - значение Set-Cookie с access token
func (c *Cookies) SetCookie(token string) string {
	return fmt.Sprintf("%s=%s; Secure; HttpOnly; SameSite=%s; Path=%s",
		c.config.CookieName, token, c.config.SameSite, c.config.CookiePath)
}

// ClearCookie - значение Set-Cookie, удаляющее сессию
func (c *Cookies) ClearCookie() string {
	return fmt.Sprintf("%s=; HttpOnly; Secure; SameSite=%s; Path=%s; Max-Age=0",
		c.config.CookieName, c.config.SameSite, c.config.CookiePath)
}

// ParseCookies разбирает заголовок Cookie. Значение берется после первого '=' как есть.
func ParseCookies(cookieHeader string) map[string]string {
	cookies := make(map[string]string)
	if cookieHeader == "" {
		return cookies
	}

	for _, part := range strings.Split(cookieHeader, ";") {
		name, value, _ := strings.Cut(part, "=")
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		cookies[name] = value
	}
	return cookies
}

// GetCookie возвращает значение cookie по имени или пустую строку
func GetCookie(cookieHeader, name string) string {
	return ParseCookies(cookieHeader)[name]
}

// CookieHeader ищет заголовок Cookie без учета регистра
func CookieHeader(headers map[string]string) string {
	if v, ok := headers["Cookie"]; ok {
		return v
	}
	if v, ok := headers["cookie"]; ok {
		return v
	}
	for k, v := range headers {
		if strings.EqualFold(k, "cookie") {
			return v
		}
	}
	return ""
}

// SessionCookie извлекает access token с именем cookie по умолчанию
func SessionCookie(cookieHeader string) string {
	return GetCookie(cookieHeader, DefaultConfig().CookieName)
}
