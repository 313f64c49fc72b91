package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/auth"
	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/failure"
	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/identity"
)

// OAuthCallbackHandler завершает вход через hosted UI: код меняется на токены
type OAuthCallbackHandler struct {
	base
	exchanger identity.Exchanger
	cookies   *auth.Cookies
	redirect  string
}

// NewOAuthCallbackHandler создает обработчик. Пустой redirect означает "/".
func NewOAuthCallbackHandler(exchanger identity.Exchanger, cookies *auth.Cookies, redirect string) *OAuthCallbackHandler {
	if redirect == "" {
		redirect = "/"
	}
	return &OAuthCallbackHandler{
		base:      newBase("OAuthCallbackFunction"),
		exchanger: exchanger,
		cookies:   cookies,
		redirect:  redirect,
	}
}

// Handle обрабатывает GET auth/callback?code=...
func (h *OAuthCallbackHandler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	start := time.Now()

	code := req.QueryStringParameters["code"]
	if code == "" {
		return h.finish(start, h.fail(failure.InvalidInput("Missing authorization code query param"), nil))
	}
	if h.exchanger == nil {
		return h.finish(start, h.fail(failure.Unexpected("OAuth code exchange is not configured"), nil))
	}

	tokens, err := h.exchanger.Exchange(ctx, code)
	if err != nil {
		return h.finish(start, h.fail(err, nil))
	}

	headers := map[string]string{
		"Location":   h.redirect,
		"Set-Cookie": h.cookies.SetCookie(tokens.AccessToken),
	}
	return h.finish(start, jsonResponse(http.StatusFound, MessageBody{Message: "Authorization successful, redirecting..."}, headers))
}
