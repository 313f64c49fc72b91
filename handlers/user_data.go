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

// UserDataHandler возвращает атрибуты пользователя текущей сессии
type UserDataHandler struct {
	base
	provider identity.Provider
	cookies  *auth.Cookies
}

// NewUserDataHandler создает обработчик
func NewUserDataHandler(provider identity.Provider, cookies *auth.Cookies) *UserDataHandler {
	return &UserDataHandler{
		base:     newBase("UserDataFunction"),
		provider: provider,
		cookies:  cookies,
	}
}

// Handle обрабатывает GET auth/user-data
func (h *UserDataHandler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	start := time.Now()
	h.log.Debug("Received user-data request: %s %s", req.HTTPMethod, req.Path)

	token := h.cookies.Token(auth.CookieHeader(req.Headers))
	if token == "" {
		return h.finish(start, h.fail(failure.NotAuthorized("").WithCause(auth.ErrMissingSessionCookie), nil))
	}

	attrs, err := h.provider.FetchUserAttributes(ctx, token)
	if err != nil {
		return h.finish(start, h.fail(err, nil))
	}

	return h.finish(start, jsonResponse(http.StatusOK, attrs, nil))
}
