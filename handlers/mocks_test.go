package handlers

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/auth"
	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/identity"
	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/storage"
)

// MockProvider - мок провайдера идентификации
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) SignUp(ctx context.Context, username, password string) error {
	return m.Called(ctx, username, password).Error(0)
}

func (m *MockProvider) ConfirmSignUp(ctx context.Context, username, code string) error {
	return m.Called(ctx, username, code).Error(0)
}

func (m *MockProvider) SignIn(ctx context.Context, username, password string) (*identity.AuthTokens, error) {
	args := m.Called(ctx, username, password)
	tokens, _ := args.Get(0).(*identity.AuthTokens)
	return tokens, args.Error(1)
}

func (m *MockProvider) RefreshToken(ctx context.Context, username, refreshToken string) (*identity.AuthTokens, error) {
	args := m.Called(ctx, username, refreshToken)
	tokens, _ := args.Get(0).(*identity.AuthTokens)
	return tokens, args.Error(1)
}

func (m *MockProvider) FetchUserAttributes(ctx context.Context, accessToken string) (map[string]string, error) {
	args := m.Called(ctx, accessToken)
	attrs, _ := args.Get(0).(map[string]string)
	return attrs, args.Error(1)
}

func (m *MockProvider) SignOut(ctx context.Context, accessToken string) error {
	return m.Called(ctx, accessToken).Error(0)
}

// MockExchanger - мок обмена кода OAuth2
type MockExchanger struct {
	mock.Mock
}

func (m *MockExchanger) Exchange(ctx context.Context, code string) (*identity.AuthTokens, error) {
	args := m.Called(ctx, code)
	tokens, _ := args.Get(0).(*identity.AuthTokens)
	return tokens, args.Error(1)
}

// MockIssuer - мок выдачи подписанных ссылок
type MockIssuer struct {
	mock.Mock
}

func (m *MockIssuer) GetBatchUploadUrls(ctx context.Context, items []storage.StorageItem, expires time.Duration) ([]storage.PresignedItem, error) {
	args := m.Called(ctx, items, expires)
	result, _ := args.Get(0).([]storage.PresignedItem)
	return result, args.Error(1)
}

func (m *MockIssuer) GetBatchDownloadUrls(ctx context.Context, items []storage.StorageItem, expires time.Duration) ([]storage.PresignedItem, error) {
	args := m.Called(ctx, items, expires)
	result, _ := args.Get(0).([]storage.PresignedItem)
	return result, args.Error(1)
}

func testCookies() *auth.Cookies {
	return auth.NewCookies(auth.DefaultConfig())
}

func withCookie(token string) map[string]string {
	return map[string]string{"Cookie": "theme=dark; accessToken=" + token}
}

func withUser(req events.APIGatewayProxyRequest, userID, email string) events.APIGatewayProxyRequest {
	req.RequestContext.Authorizer = map[string]interface{}{
		"scope":  "user",
		"userId": userID,
		"email":  email,
	}
	return req
}

func decodeError(t *testing.T, resp events.APIGatewayProxyResponse) ErrorBody {
	t.Helper()
	var body ErrorBody
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &body))
	return body
}

func decodeMessage(t *testing.T, resp events.APIGatewayProxyResponse) string {
	t.Helper()
	var body MessageBody
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &body))
	return body.Message
}
