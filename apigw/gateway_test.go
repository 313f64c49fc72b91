package apigw

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateway_ServeHTTP(t *testing.T) {
	var received events.APIGatewayProxyRequest
	handler := HandlerFunc(func(_ context.Context, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
		received = req
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusOK,
			Headers: map[string]string{
				"Content-Type": "application/json",
				"Set-Cookie":   "accessToken=tok; Secure; HttpOnly; SameSite=Lax; Path=/",
			},
			Body: `{"message":"User signed in successfully"}`,
		}
	})

	gw := New(DefaultConfig(), handler)
	r := httptest.NewRequest(http.MethodPost, "/auth/sign-in", strings.NewReader(`{"username":"a","password":"b"}`))
	w := httptest.NewRecorder()
	gw.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, "accessToken=tok; Secure; HttpOnly; SameSite=Lax; Path=/", w.Header().Get("Set-Cookie"))
	assert.JSONEq(t, `{"message":"User signed in successfully"}`, w.Body.String())
	assert.Equal(t, received.RequestContext.RequestID, w.Header().Get(RequestIDHeader))
	assert.Equal(t, `{"username":"a","password":"b"}`, received.Body)
}

func TestGateway_Base64Response(t *testing.T) {
	payload := []byte{0x50, 0x4b, 0x03, 0x04}
	handler := HandlerFunc(func(context.Context, events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
		return events.APIGatewayProxyResponse{
			StatusCode:      http.StatusOK,
			Body:            base64.StdEncoding.EncodeToString(payload),
			IsBase64Encoded: true,
		}
	})

	w := httptest.NewRecorder()
	New(DefaultConfig(), handler).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, payload, w.Body.Bytes())
}

func TestGateway_BodyTooLarge(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxBodySize = 2

	called := false
	handler := HandlerFunc(func(context.Context, events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
		called = true
		return events.APIGatewayProxyResponse{StatusCode: http.StatusOK}
	})

	w := httptest.NewRecorder()
	New(cfg, handler).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/sign-in", strings.NewReader("too long")))

	require.False(t, called)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.JSONEq(t, `{"message":"Request Too Long"}`, w.Body.String())
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())

	cfg.TLSCertFile = "cert.pem"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.ListenAddress = ""
	assert.Error(t, cfg.Validate())
}
