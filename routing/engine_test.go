package routing

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"

	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/auth"
	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/handlers"
)

// recordingHandler запоминает последний запрос
type recordingHandler struct {
	calls int
	last  events.APIGatewayProxyRequest
	err   error
}

func (h *recordingHandler) Handle(_ context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	h.calls++
	h.last = req
	if h.err != nil {
		return events.APIGatewayProxyResponse{}, h.err
	}
	return events.APIGatewayProxyResponse{StatusCode: http.StatusOK, Body: `{"ok":true}`}, nil
}

func allowAll(_ context.Context, _ events.APIGatewayCustomAuthorizerRequestTypeRequest) (events.APIGatewayCustomAuthorizerResponse, error) {
	return handlers.AllowPolicy(&auth.UserIdentity{UserID: "u1", Email: "u1@example.com"}), nil
}

func denyAll(_ context.Context, _ events.APIGatewayCustomAuthorizerRequestTypeRequest) (events.APIGatewayCustomAuthorizerResponse, error) {
	return handlers.DenyPolicy(), nil
}

func newTestEngine(authorizer AuthorizerFunc, protected, public *recordingHandler) *Engine {
	engine := NewEngine(authorizer, nil)
	engine.Register(Route{
		Method:    http.MethodPost,
		Pattern:   "/api/storage/{action}",
		Function:  "StorageUrlFunction",
		Protected: true,
		Handler:   protected.Handle,
	})
	engine.Register(Route{
		Method:   http.MethodPost,
		Pattern:  "/auth/sign-up/{action}",
		Function: "SignUpFunction",
		Handler:  public.Handle,
	})
	return engine
}

func TestEngine_Handle_PublicRoute(t *testing.T) {
	protected, public := &recordingHandler{}, &recordingHandler{}
	engine := newTestEngine(denyAll, protected, public)

	resp := engine.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodPost,
		Path:       "/auth/sign-up/create",
	})

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if public.last.PathParameters["action"] != "create" {
		t.Errorf("Expected action path parameter 'create', got %q", public.last.PathParameters["action"])
	}
	if public.last.Resource != "/auth/sign-up/{action}" {
		t.Errorf("Expected resource pattern, got %q", public.last.Resource)
	}
	if public.last.RequestContext.Authorizer != nil {
		t.Error("Expected no authorizer context on public route")
	}
}

func TestEngine_Handle_ProtectedRouteAllowed(t *testing.T) {
	protected, public := &recordingHandler{}, &recordingHandler{}
	engine := newTestEngine(allowAll, protected, public)

	resp := engine.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodPost,
		Path:       "/api/storage/upload-url",
	})

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, resp.StatusCode)
	}
	authCtx := protected.last.RequestContext.Authorizer
	if authCtx["userId"] != "u1" {
		t.Errorf("Expected userId 'u1' in authorizer context, got %v", authCtx["userId"])
	}
	if authCtx["email"] != "u1@example.com" {
		t.Errorf("Expected email in authorizer context, got %v", authCtx["email"])
	}
	if authCtx["principalId"] != "u1" {
		t.Errorf("Expected principalId 'u1', got %v", authCtx["principalId"])
	}
}

func TestEngine_Handle_ProtectedRouteDenied(t *testing.T) {
	protected, public := &recordingHandler{}, &recordingHandler{}
	engine := newTestEngine(denyAll, protected, public)

	resp := engine.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodPost,
		Path:       "/api/storage/upload-url",
	})

	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("Expected status code %d, got %d", http.StatusForbidden, resp.StatusCode)
	}
	if !strings.Contains(resp.Body, "Forbidden") {
		t.Errorf("Expected Forbidden body, got %s", resp.Body)
	}
	if protected.calls != 0 {
		t.Errorf("Expected handler not to be called, got %d calls", protected.calls)
	}
}

func TestEngine_Handle_AuthorizerError(t *testing.T) {
	protected, public := &recordingHandler{}, &recordingHandler{}
	failing := func(context.Context, events.APIGatewayCustomAuthorizerRequestTypeRequest) (events.APIGatewayCustomAuthorizerResponse, error) {
		return events.APIGatewayCustomAuthorizerResponse{}, errors.New("boom")
	}
	engine := newTestEngine(failing, protected, public)

	resp := engine.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodPost,
		Path:       "/api/storage/download-url",
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("Expected status code %d, got %d", http.StatusForbidden, resp.StatusCode)
	}
}

func TestEngine_Handle_NotFound(t *testing.T) {
	protected, public := &recordingHandler{}, &recordingHandler{}
	engine := newTestEngine(allowAll, protected, public)

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{"Unknown path", http.MethodGet, "/unknown"},
		{"Wrong method", http.MethodGet, "/auth/sign-up/create"},
		{"Missing placeholder segment", http.MethodPost, "/api/storage/"},
		{"Extra segment", http.MethodPost, "/api/storage/upload-url/extra"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := engine.Handle(context.Background(), events.APIGatewayProxyRequest{
				HTTPMethod: tt.method,
				Path:       tt.path,
			})
			if resp.StatusCode != http.StatusNotFound {
				t.Errorf("Expected status code %d, got %d", http.StatusNotFound, resp.StatusCode)
			}
			if resp.Body != `{"message":"Not Found"}` {
				t.Errorf("Unexpected body: %s", resp.Body)
			}
		})
	}
}

func TestEngine_Handle_FunctionError(t *testing.T) {
	protected, public := &recordingHandler{}, &recordingHandler{err: errors.New("panic in handler")}
	engine := newTestEngine(allowAll, protected, public)

	resp := engine.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodPost,
		Path:       "/auth/sign-up/confirm",
	})
	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("Expected status code %d, got %d", http.StatusBadGateway, resp.StatusCode)
	}
}

func TestEngine_BasePath(t *testing.T) {
	public := &recordingHandler{}
	engine := NewEngine(allowAll, &Config{BasePath: "/dev/"})
	engine.Register(Route{Method: http.MethodPost, Pattern: "/auth/sign-up/{action}", Function: "SignUpFunction", Handler: public.Handle})

	resp := engine.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodPost,
		Path:       "/dev/auth/sign-up/create",
	})
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if len(engine.Routes()) != 1 {
		t.Errorf("Expected 1 route, got %d", len(engine.Routes()))
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if err := (&Config{BasePath: "dev"}).Validate(); err == nil {
		t.Error("Expected error for base path without leading slash")
	}
}
