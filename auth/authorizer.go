package auth

import (
	"context"
	"time"

	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/failure"
	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/logger"
)

// Authorizer проверяет сессию по cookie через провайдера идентификации
type Authorizer struct {
	fetcher AttributeFetcher
	cookies *Cookies
	metrics *Metrics
}

// NewAuthorizer создает проверку сессии
func NewAuthorizer(fetcher AttributeFetcher, cfg Config) *Authorizer {
	return &Authorizer{
		fetcher: fetcher,
		cookies: NewCookies(cfg),
		metrics: NewMetrics(),
	}
}

// Cookies возвращает помощник cookie, которым пользуется проверка
func (a *Authorizer) Cookies() *Cookies {
	return a.cookies
}

// Authorize извлекает access token из заголовка Cookie и разрешает его в личность.
// Ошибки возвращаются как *failure.Failure.
func (a *Authorizer) Authorize(ctx context.Context, cookieHeader string) (*UserIdentity, error) {
	start := time.Now()

	identity, err := a.authorize(ctx, cookieHeader)

	result := "allow"
	if err != nil {
		result = "deny"
	}
	a.metrics.AuthRequestsTotal.WithLabelValues(result).Inc()
	a.metrics.AuthLatency.WithLabelValues(result).Observe(time.Since(start).Seconds())

	return identity, err
}

func (a *Authorizer) authorize(ctx context.Context, cookieHeader string) (*UserIdentity, error) {
	token := a.cookies.Token(cookieHeader)
	if token == "" {
		logger.Debug("No %s cookie in request", a.cookies.Name())
		return nil, failure.NotAuthorized("").WithCause(ErrMissingSessionCookie)
	}

	if a.fetcher == nil {
		return nil, failure.Unexpected("identity provider is not configured")
	}

	attrs, err := a.fetcher.FetchUserAttributes(ctx, token)
	if err != nil {
		return nil, failure.From(err)
	}

	sub := attrs["sub"]
	if sub == "" {
		return nil, failure.NotAuthorized("Identity provider returned no subject for the access token.").WithCause(ErrMissingSubject)
	}

	logger.Debug("Session authorized for user %s", sub)
	return &UserIdentity{UserID: sub, Email: attrs["email"]}, nil
}
