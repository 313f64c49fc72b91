package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/failure"
	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/identity"
	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/storage"
)

// fakeProvider - провайдер идентификации в памяти: один пользователь и одна сессия
type fakeProvider struct {
	users    map[string]string
	sessions map[string]map[string]string
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		users:    map[string]string{},
		sessions: map[string]map[string]string{},
	}
}

func (p *fakeProvider) SignUp(_ context.Context, username, password string) error {
	if _, ok := p.users[username]; ok {
		return failure.ServiceProvider("UsernameExistsException: User already exists", nil)
	}
	p.users[username] = password
	return nil
}

func (p *fakeProvider) ConfirmSignUp(_ context.Context, username, _ string) error {
	if _, ok := p.users[username]; !ok {
		return failure.ServiceProvider("UserNotFoundException: Username/client id combination not found.", nil)
	}
	return nil
}

func (p *fakeProvider) SignIn(_ context.Context, username, password string) (*identity.AuthTokens, error) {
	if p.users[username] != password {
		return nil, failure.ServiceProvider("NotAuthorizedException: Incorrect username or password.", nil)
	}
	token := "token-" + username
	p.sessions[token] = map[string]string{"sub": "sub-" + username, "email": username + "@example.com"}
	return &identity.AuthTokens{AccessToken: token, RefreshToken: "refresh-" + username}, nil
}

func (p *fakeProvider) RefreshToken(ctx context.Context, username, refreshToken string) (*identity.AuthTokens, error) {
	if refreshToken != "refresh-"+username {
		return nil, failure.ServiceProvider("NotAuthorizedException: Invalid Refresh Token", nil)
	}
	return p.SignIn(ctx, username, p.users[username])
}

func (p *fakeProvider) FetchUserAttributes(_ context.Context, accessToken string) (map[string]string, error) {
	attrs, ok := p.sessions[accessToken]
	if !ok {
		return nil, failure.ServiceProvider("NotAuthorizedException: Invalid Access Token", nil)
	}
	return attrs, nil
}

func (p *fakeProvider) SignOut(_ context.Context, accessToken string) error {
	delete(p.sessions, accessToken)
	return nil
}

// fakeIssuer подписывает ссылки без обращения к хранилищу
type fakeIssuer struct{}

func (fakeIssuer) sign(method string, items []storage.StorageItem) []storage.PresignedItem {
	result := make([]storage.PresignedItem, len(items))
	for i, item := range items {
		result[i] = storage.PresignedItem{
			Key:          item.Key,
			FileName:     item.FileName,
			PresignedURL: fmt.Sprintf("https://lumiere-bucket.example.com/%s?method=%s", item.Key, method),
		}
	}
	return result
}

func (f fakeIssuer) GetBatchUploadUrls(_ context.Context, items []storage.StorageItem, _ time.Duration) ([]storage.PresignedItem, error) {
	return f.sign(http.MethodPut, items), nil
}

func (f fakeIssuer) GetBatchDownloadUrls(_ context.Context, items []storage.StorageItem, _ time.Duration) ([]storage.PresignedItem, error) {
	return f.sign(http.MethodGet, items), nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	app := newApplication(DefaultAppConfig())
	app.provider = newFakeProvider()
	app.issuer = fakeIssuer{}

	gateway, err := app.newGateway(context.Background())
	require.NoError(t, err)

	server := httptest.NewServer(gateway)
	t.Cleanup(server.Close)
	return server
}

func doRequest(t *testing.T, server *httptest.Server, method, path, body, cookie string) (*http.Response, string) {
	t.Helper()

	req, err := http.NewRequest(method, server.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}}
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(data)
}

func TestAPIGateway_Integration(t *testing.T) {
	server := newTestServer(t)

	// Регистрация и подтверждение
	resp, body := doRequest(t, server, http.MethodPost, "/auth/sign-up/create", `{"username":"alice","password":"Secret#1"}`, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.JSONEq(t, `{"message":"User signed up successfully"}`, body)

	resp, body = doRequest(t, server, http.MethodPost, "/auth/sign-up/confirm", `{"username":"alice"}`, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "InvalidInputException")

	// Вход выставляет cookie
	resp, body = doRequest(t, server, http.MethodPost, "/auth/sign-in", `{"username":"alice","password":"Secret#1"}`, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Equal(t, "accessToken=token-alice; Secure; HttpOnly; SameSite=Lax; Path=/", resp.Header.Get("Set-Cookie"))
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
	session := "accessToken=token-alice"

	// Защищенный маршрут с сессией
	resp, body = doRequest(t, server, http.MethodPost, "/api/storage/upload-url",
		`[{"fileName":"video1.mp4","fileType":"video/mp4"}]`, session)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)

	var items []storage.PresignedItem
	require.NoError(t, json.Unmarshal([]byte(body), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "sources/sub-alice/video1.mp4", items[0].Key)
	assert.Contains(t, items[0].PresignedURL, "method=PUT")

	// Данные пользователя и записи
	resp, body = doRequest(t, server, http.MethodGet, "/auth/user-data", "", session)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"sub":"sub-alice","email":"alice@example.com"}`, body)

	resp, body = doRequest(t, server, http.MethodGet, "/api/records?statuses=FAILED", "", session)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"status":"FAILED"`)
	assert.NotContains(t, body, `"status":"COMPLETED"`)

	// Выход очищает cookie, сессия больше не действует
	resp, _ = doRequest(t, server, http.MethodPost, "/auth/sign-out", "", session)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "accessToken=; HttpOnly; Secure; SameSite=Lax; Path=/; Max-Age=0", resp.Header.Get("Set-Cookie"))
	assert.Equal(t, "no-cache, no-store, must-revalidate", resp.Header.Get("Cache-Control"))

	resp, body = doRequest(t, server, http.MethodPost, "/api/storage/download-url", `[{"fileName":"a.zip"}]`, session)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Forbidden"}`, body)
}

func TestAPIGateway_Integration_Errors(t *testing.T) {
	server := newTestServer(t)

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		cookie         string
		expectedStatus int
		expectedBody   string
	}{
		{"Unknown route", http.MethodGet, "/unknown", "", "", http.StatusNotFound, `"Not Found"`},
		{"Protected route without cookie", http.MethodPost, "/api/storage/upload-url", `[{"fileName":"a"}]`, "", http.StatusForbidden, `"Forbidden"`},
		{"Sign-out without cookie", http.MethodPost, "/auth/sign-out", "", "", http.StatusOK, "User signed out successfully"},
		{"User data without cookie", http.MethodGet, "/auth/user-data", "", "", http.StatusUnauthorized, "NotAuthorizedException"},
		{"Unknown sign-up action", http.MethodPost, "/auth/sign-up/delete", `{}`, "", http.StatusBadRequest, "InvalidInputException"},
		{"Malformed sign-in body", http.MethodPost, "/auth/sign-in", `{"username":`, "", http.StatusBadRequest, "InvalidInputException"},
		{"Wrong password", http.MethodPost, "/auth/sign-in", `{"username":"bob","password":"x"}`, "", http.StatusInternalServerError, "ServiceProviderException"},
		{"Callback without code", http.MethodGet, "/auth/callback", "", "", http.StatusBadRequest, "InvalidInputException"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := doRequest(t, server, tt.method, tt.path, tt.body, tt.cookie)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode, body)
			assert.Contains(t, body, tt.expectedBody)
			assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
		})
	}
}

func TestFunctionNames(t *testing.T) {
	names := functionNames()
	assert.Len(t, names, len(functionRoutes)+1)
	assert.Contains(t, names, fnAuthorizer)

	app := newApplication(DefaultAppConfig())
	app.provider = newFakeProvider()
	app.issuer = fakeIssuer{}
	for _, name := range names {
		h, err := app.lambdaHandler(context.Background(), name)
		require.NoError(t, err, name)
		assert.NotNil(t, h, name)
	}

	_, err := app.lambdaHandler(context.Background(), "unknown")
	assert.Error(t, err)
}
