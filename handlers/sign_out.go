package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/auth"
	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/identity"
)

// SignOutHandler отзывает сессию и всегда очищает cookie
type SignOutHandler struct {
	base
	provider identity.Provider
	cookies  *auth.Cookies
}

// NewSignOutHandler создает обработчик
func NewSignOutHandler(provider identity.Provider, cookies *auth.Cookies) *SignOutHandler {
	return &SignOutHandler{
		base:     newBase("SignOutFunction"),
		provider: provider,
		cookies:  cookies,
	}
}

// Handle обрабатывает POST auth/sign-out. Отсутствие токена - предупреждение, не ошибка.
func (h *SignOutHandler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	start := time.Now()
	h.log.Debug("Received sign-out request: %s %s", req.HTTPMethod, req.Path)

	headers := map[string]string{
		"Cache-Control": "no-cache, no-store, must-revalidate",
		"Set-Cookie":    h.cookies.ClearCookie(),
	}

	token := h.cookies.Token(auth.CookieHeader(req.Headers))
	if token == "" {
		h.log.Warn("No access token found in cookies, skipping provider sign-out call")
	} else if err := h.provider.SignOut(ctx, token); err != nil {
		return h.finish(start, h.fail(err, headers))
	}

	return h.finish(start, jsonResponse(http.StatusOK, MessageBody{Message: "User signed out successfully"}, headers))
}
