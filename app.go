package main

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/apigw"
	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/auth"
	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/handlers"
	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/identity"
	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/logger"
	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/records"
	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/routing"
	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/storage"
)

// Имена функций для `lambda <function>`
const (
	fnStorageURL    = "storage-url"
	fnSignUp        = "sign-up"
	fnSignIn        = "sign-in"
	fnSignOut       = "sign-out"
	fnUserData      = "user-data"
	fnAuthorizer    = "authorizer"
	fnUserRecords   = "user-records"
	fnRefresh       = "refresh"
	fnOAuthCallback = "oauth-callback"
)

// functionRoute связывает функцию с маршрутом шлюза
type functionRoute struct {
	Function  string
	Method    string
	Pattern   string
	Protected bool
}

var functionRoutes = []functionRoute{
	{fnStorageURL, http.MethodPost, "/api/storage/{action}", true},
	{fnUserRecords, http.MethodGet, "/api/records", true},
	{fnSignUp, http.MethodPost, "/auth/sign-up/{action}", false},
	{fnSignIn, http.MethodPost, "/auth/sign-in", false},
	{fnSignOut, http.MethodPost, "/auth/sign-out", false},
	{fnUserData, http.MethodGet, "/auth/user-data", false},
	{fnRefresh, http.MethodPost, "/auth/refresh", false},
	{fnOAuthCallback, http.MethodGet, "/auth/callback", false},
}

// functionNames возвращает все имена функций, включая авторизатор
func functionNames() []string {
	names := []string{fnAuthorizer}
	for _, r := range functionRoutes {
		names = append(names, r.Function)
	}
	sort.Strings(names)
	return names
}

// application собирает коллабораторов один раз и раздает их обработчикам.
// Поля, заполненные заранее, не пересоздаются (так подставляются фейки в тестах).
type application struct {
	config *AppConfig

	provider  identity.Provider
	exchanger identity.Exchanger
	storage   *storage.Service
	issuer    storage.URLIssuer
	records   records.Repository
	cookies   *auth.Cookies
}

func newApplication(config *AppConfig) *application {
	return &application{
		config:  config,
		records: records.NewFixtureRepository(),
		cookies: auth.NewCookies(config.Auth),
	}
}

func (a *application) identityProvider(ctx context.Context) (identity.Provider, error) {
	if a.provider != nil {
		return a.provider, nil
	}

	client, err := identity.NewClient(ctx, a.config.Identity)
	if err != nil {
		return nil, fmt.Errorf("failed to create identity client: %w", err)
	}
	svc, err := identity.NewService(client, a.config.Identity)
	if err != nil {
		return nil, err
	}
	a.provider = svc
	return svc, nil
}

func (a *application) codeExchanger() (identity.Exchanger, error) {
	if a.exchanger != nil {
		return a.exchanger, nil
	}

	ex, err := identity.NewCodeExchanger(a.config.Identity.OAuth, nil)
	if err != nil {
		return nil, err
	}
	a.exchanger = ex
	return ex, nil
}

func (a *application) storageService(ctx context.Context) (*storage.Service, error) {
	if a.storage != nil {
		return a.storage, nil
	}

	signer, err := storage.NewSigner(ctx, a.config.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage signer: %w", err)
	}
	svc, err := storage.NewService(signer, a.config.Storage)
	if err != nil {
		return nil, err
	}
	a.storage = svc
	return svc, nil
}

func (a *application) urlIssuer(ctx context.Context) (storage.URLIssuer, error) {
	if a.issuer != nil {
		return a.issuer, nil
	}
	svc, err := a.storageService(ctx)
	if err != nil {
		return nil, err
	}
	a.issuer = svc
	return svc, nil
}

func (a *application) authorizerHandler(ctx context.Context) (*handlers.AuthorizerHandler, error) {
	provider, err := a.identityProvider(ctx)
	if err != nil {
		return nil, err
	}
	return handlers.NewAuthorizerHandler(auth.NewAuthorizer(provider, a.config.Auth)), nil
}

// proxyHandler строит обработчик функции с прокси-интеграцией
func (a *application) proxyHandler(ctx context.Context, name string) (routing.HandlerFunc, error) {
	switch name {
	case fnStorageURL:
		issuer, err := a.urlIssuer(ctx)
		if err != nil {
			return nil, err
		}
		return handlers.NewStorageURLHandler(issuer, 0).Handle, nil
	case fnUserRecords:
		return handlers.NewUserRecordsHandler(a.records).Handle, nil
	case fnOAuthCallback:
		ex, err := a.codeExchanger()
		if err != nil {
			// без домена hosted UI остальные функции работают, callback отвечает 500
			logger.Warn("OAuth callback is not configured: %v", err)
		}
		return handlers.NewOAuthCallbackHandler(ex, a.cookies, a.config.Auth.LoginRedirect).Handle, nil
	}

	provider, err := a.identityProvider(ctx)
	if err != nil {
		return nil, err
	}

	switch name {
	case fnSignUp:
		return handlers.NewSignUpHandler(provider).Handle, nil
	case fnSignIn:
		return handlers.NewSignInHandler(provider, a.cookies).Handle, nil
	case fnSignOut:
		return handlers.NewSignOutHandler(provider, a.cookies).Handle, nil
	case fnUserData:
		return handlers.NewUserDataHandler(provider, a.cookies).Handle, nil
	case fnRefresh:
		return handlers.NewRefreshHandler(provider, a.cookies).Handle, nil
	default:
		return nil, fmt.Errorf("unknown function %q (available: %v)", name, functionNames())
	}
}

// lambdaHandler возвращает обработчик для lambda.Start
func (a *application) lambdaHandler(ctx context.Context, name string) (interface{}, error) {
	if name == fnAuthorizer {
		h, err := a.authorizerHandler(ctx)
		if err != nil {
			return nil, err
		}
		return h.Handle, nil
	}
	return a.proxyHandler(ctx, name)
}

// newEngine собирает таблицу маршрутов из всех функций
func (a *application) newEngine(ctx context.Context) (*routing.Engine, error) {
	authorizer, err := a.authorizerHandler(ctx)
	if err != nil {
		return nil, err
	}

	engine := routing.NewEngine(authorizer.Handle, &a.config.Routing)
	for _, r := range functionRoutes {
		h, err := a.proxyHandler(ctx, r.Function)
		if err != nil {
			return nil, fmt.Errorf("function %s: %w", r.Function, err)
		}
		engine.Register(routing.Route{
			Method:    r.Method,
			Pattern:   r.Pattern,
			Function:  r.Function,
			Protected: r.Protected,
			Handler:   h,
		})
	}

	logger.Info("Registered %d routes", len(engine.Routes()))
	return engine, nil
}

// newGateway собирает локальный шлюз поверх таблицы маршрутов
func (a *application) newGateway(ctx context.Context) (*apigw.Gateway, error) {
	engine, err := a.newEngine(ctx)
	if err != nil {
		return nil, err
	}
	return apigw.New(a.config.ToAPIGatewayConfig(), engine), nil
}
