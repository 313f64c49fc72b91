package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/auth"
	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/failure"
	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/identity"
)

// RefreshBody - тело запроса auth/refresh
type RefreshBody struct {
	Username     string `json:"username"`
	RefreshToken string `json:"refreshToken"`
}

// RefreshHandler обновляет access token по refresh token
type RefreshHandler struct {
	base
	provider identity.Provider
	cookies  *auth.Cookies
}

// NewRefreshHandler создает обработчик
func NewRefreshHandler(provider identity.Provider, cookies *auth.Cookies) *RefreshHandler {
	return &RefreshHandler{
		base:     newBase("RefreshTokenFunction"),
		provider: provider,
		cookies:  cookies,
	}
}

// Handle обрабатывает POST auth/refresh
func (h *RefreshHandler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	start := time.Now()

	var body RefreshBody
	if err := decodeBody(req, &body); err != nil {
		return h.finish(start, h.fail(failure.InvalidInput(fmt.Sprintf("Request body is missing or invalid. (%v)", err)).WithCause(err), nil))
	}
	if body.Username == "" || body.RefreshToken == "" {
		return h.finish(start, h.fail(failure.InvalidInput(fmt.Sprintf(
			"Username and refresh token are required. username received: %t, refreshToken received: %t",
			body.Username != "", body.RefreshToken != "")), nil))
	}

	tokens, err := h.provider.RefreshToken(ctx, body.Username, body.RefreshToken)
	if err != nil {
		return h.finish(start, h.fail(err, nil))
	}

	headers := map[string]string{"Set-Cookie": h.cookies.SetCookie(tokens.AccessToken)}
	return h.finish(start, jsonResponse(http.StatusOK, MessageBody{Message: "Token refreshed successfully"}, headers))
}
