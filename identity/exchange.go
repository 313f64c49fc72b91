package identity

import (
	"context"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/failure"
	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/logger"
)

// CodeExchanger обменивает код авторизации на токены через {domain}/oauth2/token
type CodeExchanger struct {
	oauth      *oauth2.Config
	httpClient *http.Client
	metrics    *Metrics
}

// NewCodeExchanger создает обменник. httpClient может быть nil.
func NewCodeExchanger(cfg OAuthConfig, httpClient *http.Client) (*CodeExchanger, error) {
	if cfg.Domain == "" {
		return nil, failure.Unexpected("Error instantiating the code exchanger: domain is missing")
	}
	if cfg.ClientID == "" {
		return nil, failure.Unexpected("Error instantiating the code exchanger: app client ID is missing")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &CodeExchanger{
		oauth: &oauth2.Config{
			ClientID:    cfg.ClientID,
			RedirectURL: cfg.CallbackURL,
			Endpoint: oauth2.Endpoint{
				TokenURL:  strings.TrimRight(cfg.Domain, "/") + "/oauth2/token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		httpClient: httpClient,
		metrics:    NewMetrics(),
	}, nil
}

// Exchange выполняет grant_type=authorization_code
func (e *CodeExchanger) Exchange(ctx context.Context, code string) (*AuthTokens, error) {
	start := time.Now()
	ctx = context.WithValue(ctx, oauth2.HTTPClient, e.httpClient)

	token, err := e.oauth.Exchange(ctx, code)
	e.metrics.RequestLatency.WithLabelValues("code_exchange").Observe(time.Since(start).Seconds())
	if err != nil {
		e.metrics.RequestsTotal.WithLabelValues("code_exchange", "failure").Inc()
		logger.Debug("Authorization code exchange failed: %v", err)
		return nil, failure.ServiceProvider(err.Error(), err)
	}
	e.metrics.RequestsTotal.WithLabelValues("code_exchange", "success").Inc()

	tokens := &AuthTokens{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
	}
	if idToken, ok := token.Extra("id_token").(string); ok {
		tokens.IDToken = idToken
	}
	if !token.Expiry.IsZero() {
		tokens.ExpiresIn = int32(time.Until(token.Expiry).Round(time.Second).Seconds())
	}
	return tokens, nil
}
