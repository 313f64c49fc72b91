package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/failure"
	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/identity"
)

// SignUpBody - тело запроса auth/sign-up/{action}
type SignUpBody struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	VerifyCode string `json:"verifyCode"`
}

// SignUpHandler регистрирует и подтверждает пользователей
type SignUpHandler struct {
	base
	provider identity.Provider
}

// NewSignUpHandler создает обработчик
func NewSignUpHandler(provider identity.Provider) *SignUpHandler {
	return &SignUpHandler{
		base:     newBase("SignUpFunction"),
		provider: provider,
	}
}

// Handle обрабатывает POST auth/sign-up/{action}
func (h *SignUpHandler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	start := time.Now()
	h.log.Debug("Received sign-up request: %s %s", req.HTTPMethod, req.Path)

	action := ParseSignUpAction(req.PathParameters["action"])
	var body SignUpBody
	bodyErr := decodeBody(req, &body)

	if err := validateSignUp(action, body, bodyErr); err != nil {
		return h.finish(start, h.fail(err, nil))
	}

	var err error
	switch action {
	case SignUpActionCreate:
		err = h.provider.SignUp(ctx, body.Username, body.Password)
	case SignUpActionConfirm:
		err = h.provider.ConfirmSignUp(ctx, body.Username, body.VerifyCode)
	}
	if err != nil {
		return h.finish(start, h.fail(err, nil))
	}

	h.log.Info("Sign-up %s succeeded", action)
	return h.finish(start, jsonResponse(http.StatusOK, MessageBody{Message: "User signed up successfully"}, nil))
}

func validateSignUp(action SignUpAction, body SignUpBody, bodyErr error) error {
	if action == SignUpActionUnknown {
		return failure.InvalidInput("URL pathParam for SignUp is missing or invalid. (expected: auth/sign-up/{create|confirm}")
	}
	if bodyErr != nil {
		return failure.InvalidInput(fmt.Sprintf("Request body is missing or invalid. (%v)", bodyErr)).WithCause(bodyErr)
	}

	switch action {
	case SignUpActionCreate:
		if body.Username == "" || body.Password == "" {
			return failure.InvalidInput(fmt.Sprintf(
				"Username and password are required for sign-up creation. username received: %t, password received: %t",
				body.Username != "", body.Password != ""))
		}
	case SignUpActionConfirm:
		if body.Username == "" || body.VerifyCode == "" {
			return failure.InvalidInput(fmt.Sprintf(
				"Username and verification code are required for sign-up confirmation. username received: %t, verifyCode received: %t",
				body.Username != "", body.VerifyCode != ""))
		}
	}
	return nil
}
