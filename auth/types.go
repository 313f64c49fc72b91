package auth

import (
	"context"
	"errors"
)

// AttributeFetcher - поиск атрибутов пользователя по access token у провайдера
type AttributeFetcher interface {
	FetchUserAttributes(ctx context.Context, accessToken string) (map[string]string, error)
}

// UserIdentity представляет подтвержденную личность пользователя.
// Передается дальше в контекст авторизатора шлюза.
type UserIdentity struct {
	// Уникальный идентификатор пользователя (атрибут sub)
	UserID string

	// Email пользователя
	Email string
}

// Пользовательские ошибки для точной диагностики
var (
	// ErrMissingSessionCookie - в заголовке Cookie нет access token.
	ErrMissingSessionCookie = errors.New("missing session cookie")
	// ErrMissingSubject - провайдер не вернул идентификатор пользователя.
	ErrMissingSubject = errors.New("identity provider returned no subject")
)
