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

// SignInBody - тело запроса auth/sign-in
type SignInBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignInHandler открывает сессию и выставляет cookie с access token
type SignInHandler struct {
	base
	provider identity.Provider
	cookies  *auth.Cookies
}

// NewSignInHandler создает обработчик
func NewSignInHandler(provider identity.Provider, cookies *auth.Cookies) *SignInHandler {
	return &SignInHandler{
		base:     newBase("SignInFunction"),
		provider: provider,
		cookies:  cookies,
	}
}

// Handle обрабатывает POST auth/sign-in
func (h *SignInHandler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	start := time.Now()
	h.log.Debug("Received sign-in request: %s %s", req.HTTPMethod, req.Path)

	var body SignInBody
	if err := decodeBody(req, &body); err != nil {
		return h.finish(start, h.fail(failure.InvalidInput(fmt.Sprintf("Request body is missing or invalid. (%v)", err)).WithCause(err), nil))
	}
	if body.Username == "" || body.Password == "" {
		return h.finish(start, h.fail(failure.InvalidInput(fmt.Sprintf(
			"Username and password are required for sign-in. username received: %t, password received: %t",
			body.Username != "", body.Password != "")), nil))
	}

	tokens, err := h.provider.SignIn(ctx, body.Username, body.Password)
	if err != nil {
		return h.finish(start, h.fail(err, nil))
	}

	headers := map[string]string{"Set-Cookie": h.cookies.SetCookie(tokens.AccessToken)}
	return h.finish(start, jsonResponse(http.StatusOK, MessageBody{Message: "User signed in successfully"}, headers))
}
