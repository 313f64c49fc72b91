package handlers

import (
	"context"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/auth"
)

const (
	policyVersion   = "2012-10-17"
	invokeAction    = "execute-api:Invoke"
	effectAllow     = "Allow"
	effectDeny      = "Deny"
	denyPrincipalID = "user"
)

// Authorizer - проверка сессии, используемая обработчиком
type Authorizer interface {
	Authorize(ctx context.Context, cookieHeader string) (*auth.UserIdentity, error)
}

// AuthorizerHandler - авторизатор запросов шлюза по сессионной cookie
type AuthorizerHandler struct {
	base
	authorizer Authorizer
}

// NewAuthorizerHandler создает обработчик
func NewAuthorizerHandler(authorizer Authorizer) *AuthorizerHandler {
	return &AuthorizerHandler{
		base:       newBase("AuthorizerFunction"),
		authorizer: authorizer,
	}
}

// Handle возвращает политику Allow с контекстом пользователя или Deny без контекста.
// Ошибка авторизации никогда не возвращается шлюзу как error.
func (h *AuthorizerHandler) Handle(ctx context.Context, req events.APIGatewayCustomAuthorizerRequestTypeRequest) (events.APIGatewayCustomAuthorizerResponse, error) {
	start := time.Now()
	h.log.Debug("Authorizing %s %s", req.HTTPMethod, req.Path)

	user, err := h.authorizer.Authorize(ctx, auth.CookieHeader(req.Headers))
	if err != nil {
		h.report(err)
		h.observe(start, effectDeny)
		return DenyPolicy(), nil
	}

	h.observe(start, effectAllow)
	return AllowPolicy(user), nil
}

// AllowPolicy разрешает вызов и передает userId и email в контекст
func AllowPolicy(user *auth.UserIdentity) events.APIGatewayCustomAuthorizerResponse {
	return events.APIGatewayCustomAuthorizerResponse{
		PrincipalID:    user.UserID,
		PolicyDocument: policy(effectAllow),
		Context: map[string]interface{}{
			"scope":  "user",
			"userId": user.UserID,
			"email":  user.Email,
		},
	}
}

// DenyPolicy запрещает вызов
func DenyPolicy() events.APIGatewayCustomAuthorizerResponse {
	return events.APIGatewayCustomAuthorizerResponse{
		PrincipalID:    denyPrincipalID,
		PolicyDocument: policy(effectDeny),
	}
}

// IsAllowed сообщает, разрешает ли ответ авторизатора вызов
func IsAllowed(resp events.APIGatewayCustomAuthorizerResponse) bool {
	for _, st := range resp.PolicyDocument.Statement {
		if st.Effect != effectAllow {
			return false
		}
	}
	return len(resp.PolicyDocument.Statement) > 0
}

func policy(effect string) events.APIGatewayCustomAuthorizerPolicy {
	return events.APIGatewayCustomAuthorizerPolicy{
		Version: policyVersion,
		Statement: []events.IAMPolicyStatement{{
			Action:   []string{invokeAction},
			Effect:   effect,
			Resource: []string{"*"},
		}},
	}
}
