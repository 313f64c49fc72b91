package routing

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/handlers"
	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/logger"
)

// route - скомпилированный маршрут
type route struct {
	Route
	segments []string
}

// Engine - таблица маршрутов локального шлюза
type Engine struct {
	// Зависимости, внедряемые при создании
	authorizer AuthorizerFunc

	routes   []route
	basePath string
}

// NewEngine создает новый экземпляр Engine
func NewEngine(authorizer AuthorizerFunc, config *Config) *Engine {
	if config == nil {
		config = DefaultConfig()
	}

	return &Engine{
		authorizer: authorizer,
		basePath:   strings.TrimSuffix(config.BasePath, "/"),
	}
}

// Register добавляет маршрут. Маршруты сопоставляются в порядке регистрации.
func (e *Engine) Register(r Route) {
	e.routes = append(e.routes, route{Route: r, segments: splitPath(r.Pattern)})
	logger.Debug("Registered route %s %s -> %s (protected: %t)", r.Method, r.Pattern, r.Function, r.Protected)
}

// Routes возвращает зарегистрированные маршруты
func (e *Engine) Routes() []Route {
	result := make([]Route, len(e.routes))
	for i, r := range e.routes {
		result[i] = r.Route
	}
	return result
}

// Handle - реализация интерфейса apigw.RequestHandler. Это точка входа в модуль
func (e *Engine) Handle(ctx context.Context, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	path := strings.TrimPrefix(req.Path, e.basePath)

	// Шаг 1: Поиск маршрута
	rt, params, ok := e.match(req.HTTPMethod, path)
	if !ok {
		logger.Debug("No route for %s %s", req.HTTPMethod, req.Path)
		return gatewayResponse(http.StatusNotFound, "Not Found")
	}

	req.Resource = rt.Pattern
	req.PathParameters = params
	req.RequestContext.ResourcePath = rt.Pattern
	logger.Debug("Routing %s %s to %s", req.HTTPMethod, req.Path, rt.Function)

	// Шаг 2: Авторизация
	if rt.Protected {
		authCtx, allowed := e.authorize(ctx, req)
		if !allowed {
			return gatewayResponse(http.StatusForbidden, "Forbidden")
		}
		req.RequestContext.Authorizer = authCtx
	}

	// Шаг 3: Вызов функции
	resp, err := rt.Handler(ctx, req)
	if err != nil {
		// Lambda, вернувшая ошибку, для шлюза выглядит как 502
		logger.Error("Function %s returned error: %v", rt.Function, err)
		return gatewayResponse(http.StatusBadGateway, "Internal server error")
	}
	return resp
}

// authorize вызывает авторизатор и возвращает контекст для функции
func (e *Engine) authorize(ctx context.Context, req events.APIGatewayProxyRequest) (map[string]interface{}, bool) {
	if e.authorizer == nil {
		logger.Warn("Protected route %s has no authorizer configured", req.Resource)
		return nil, false
	}

	authResp, err := e.authorizer(ctx, events.APIGatewayCustomAuthorizerRequestTypeRequest{
		Type:                  "REQUEST",
		Resource:              req.Resource,
		Path:                  req.Path,
		HTTPMethod:            req.HTTPMethod,
		Headers:               req.Headers,
		MultiValueHeaders:     req.MultiValueHeaders,
		QueryStringParameters: req.QueryStringParameters,
		PathParameters:        req.PathParameters,
		RequestContext: events.APIGatewayCustomAuthorizerRequestTypeRequestContext{
			Path:         req.Path,
			Stage:        req.RequestContext.Stage,
			RequestID:    req.RequestContext.RequestID,
			ResourcePath: req.Resource,
			HTTPMethod:   req.HTTPMethod,
		},
	})
	if err != nil {
		logger.Error("Authorizer failed: %v", err)
		return nil, false
	}
	if !handlers.IsAllowed(authResp) {
		logger.Debug("Authorizer denied %s %s", req.HTTPMethod, req.Path)
		return nil, false
	}

	authCtx := make(map[string]interface{}, len(authResp.Context)+1)
	for k, v := range authResp.Context {
		authCtx[k] = v
	}
	authCtx["principalId"] = authResp.PrincipalID
	return authCtx, true
}

// match ищет первый маршрут, совпадающий по методу и шаблону пути
func (e *Engine) match(method, path string) (route, map[string]string, bool) {
	segments := splitPath(path)
	for _, rt := range e.routes {
		if rt.Method != method || len(rt.segments) != len(segments) {
			continue
		}
		if params, ok := matchSegments(rt.segments, segments); ok {
			return rt, params, true
		}
	}
	return route{}, nil, false
}

func matchSegments(pattern, path []string) (map[string]string, bool) {
	var params map[string]string
	for i, seg := range pattern {
		if name, ok := placeholder(seg); ok {
			if path[i] == "" {
				return nil, false
			}
			if params == nil {
				params = make(map[string]string)
			}
			params[name] = path[i]
			continue
		}
		if seg != path[i] {
			return nil, false
		}
	}
	return params, true
}

func placeholder(seg string) (string, bool) {
	if len(seg) > 2 && strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
		return seg[1 : len(seg)-1], true
	}
	return "", false
}

func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// gatewayResponse - ответ, который шлюз формирует сам, без вызова функции
func gatewayResponse(status int, message string) events.APIGatewayProxyResponse {
	body, _ := json.Marshal(map[string]string{"message": message})
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	}
}
