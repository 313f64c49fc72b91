package identity

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/aws/smithy-go"

	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/failure"
	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/logger"
)

// Service реализует Provider поверх пула пользователей Cognito
type Service struct {
	client       CognitoAPI
	clientID     string
	clientSecret string
	metrics      *Metrics
}

// NewClient создает клиент Cognito по конфигурации
func NewClient(ctx context.Context, cfg Config) (*cip.Client, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsConfig, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config for identity provider: %w", err)
	}

	client := cip.NewFromConfig(awsConfig, func(o *cip.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	logger.Debug("Created identity provider client (region: %s)", cfg.Region)
	return client, nil
}

// NewService создает сервис. Пустые ClientID/ClientSecret дают Unexpected.
func NewService(client CognitoAPI, cfg Config) (*Service, error) {
	if cfg.ClientID == "" {
		return nil, failure.Unexpected("Error instantiating the authService: Client ID is missing")
	}
	if cfg.ClientSecret == "" {
		return nil, failure.Unexpected("Error instantiating the authService: Client Secret is missing")
	}
	if client == nil {
		return nil, failure.Unexpected("Error instantiating the authService: client is missing")
	}

	return &Service{
		client:       client,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		metrics:      NewMetrics(),
	}, nil
}

// SignUp регистрирует неподтвержденного пользователя
func (s *Service) SignUp(ctx context.Context, username, password string) error {
	return s.observe("sign_up", func() error {
		_, err := s.client.SignUp(ctx, &cip.SignUpInput{
			ClientId:   aws.String(s.clientID),
			SecretHash: aws.String(s.secretHash(username)),
			Username:   aws.String(username),
			Password:   aws.String(password),
			UserAttributes: []types.AttributeType{
				{Name: aws.String("email"), Value: aws.String(username)},
			},
		})
		return err
	})
}

// ConfirmSignUp подтверждает регистрацию кодом
func (s *Service) ConfirmSignUp(ctx context.Context, username, code string) error {
	return s.observe("confirm_sign_up", func() error {
		_, err := s.client.ConfirmSignUp(ctx, &cip.ConfirmSignUpInput{
			ClientId:         aws.String(s.clientID),
			ConfirmationCode: aws.String(code),
			Username:         aws.String(username),
			SecretHash:       aws.String(s.secretHash(username)),
		})
		return err
	})
}

// SignIn открывает сессию по логину и паролю
func (s *Service) SignIn(ctx context.Context, username, password string) (*AuthTokens, error) {
	var tokens *AuthTokens
	err := s.observe("sign_in", func() error {
		out, err := s.client.InitiateAuth(ctx, &cip.InitiateAuthInput{
			ClientId: aws.String(s.clientID),
			AuthFlow: types.AuthFlowTypeUserPasswordAuth,
			AuthParameters: map[string]string{
				"USERNAME":    username,
				"PASSWORD":    password,
				"SECRET_HASH": s.secretHash(username),
			},
		})
		if err != nil {
			return err
		}
		tokens = toAuthTokens(out.AuthenticationResult)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

// RefreshToken выпускает новые токены по refresh token.
// SECRET_HASH для этого потока считается по имени пользователя.
func (s *Service) RefreshToken(ctx context.Context, username, refreshToken string) (*AuthTokens, error) {
	var tokens *AuthTokens
	err := s.observe("refresh_token", func() error {
		out, err := s.client.InitiateAuth(ctx, &cip.InitiateAuthInput{
			ClientId: aws.String(s.clientID),
			AuthFlow: types.AuthFlowTypeRefreshTokenAuth,
			AuthParameters: map[string]string{
				"REFRESH_TOKEN": refreshToken,
				"SECRET_HASH":   s.secretHash(username),
			},
		})
		if err != nil {
			return err
		}
		tokens = toAuthTokens(out.AuthenticationResult)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

// FetchUserAttributes возвращает атрибуты пользователя по access token
func (s *Service) FetchUserAttributes(ctx context.Context, accessToken string) (map[string]string, error) {
	attrs := make(map[string]string)
	err := s.observe("get_user", func() error {
		out, err := s.client.GetUser(ctx, &cip.GetUserInput{AccessToken: aws.String(accessToken)})
		if err != nil {
			return err
		}
		for _, a := range out.UserAttributes {
			attrs[aws.ToString(a.Name)] = aws.ToString(a.Value)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return attrs, nil
}

// SignOut отзывает все токены пользователя
func (s *Service) SignOut(ctx context.Context, accessToken string) error {
	return s.observe("global_sign_out", func() error {
		_, err := s.client.GlobalSignOut(ctx, &cip.GlobalSignOutInput{AccessToken: aws.String(accessToken)})
		return err
	})
}

// observe выполняет вызов провайдера, пишет метрики и оборачивает ошибку в ServiceProvider
func (s *Service) observe(operation string, call func() error) error {
	start := time.Now()
	err := call()
	s.metrics.RequestLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())

	if err != nil {
		s.metrics.RequestsTotal.WithLabelValues(operation, "failure").Inc()
		logger.Debug("Identity provider call %s failed: %v", operation, err)
		return failure.ServiceProvider(providerReason(err), err)
	}
	s.metrics.RequestsTotal.WithLabelValues(operation, "success").Inc()
	return nil
}

// secretHash = base64(HMAC-SHA256(clientSecret, username+clientID))
func (s *Service) secretHash(username string) string {
	return base64.StdEncoding.EncodeToString(hmacSHA256([]byte(s.clientSecret), username+s.clientID))
}

func hmacSHA256(key []byte, data string) []byte {
	h := hmac.New(sha256.New, key)
	h.Write([]byte(data))
	return h.Sum(nil)
}

func providerReason(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if msg := apiErr.ErrorMessage(); msg != "" {
			return apiErr.ErrorCode() + ": " + msg
		}
		return apiErr.ErrorCode()
	}
	return err.Error()
}

func toAuthTokens(r *types.AuthenticationResultType) *AuthTokens {
	if r == nil {
		return &AuthTokens{}
	}
	return &AuthTokens{
		AccessToken:  aws.ToString(r.AccessToken),
		RefreshToken: aws.ToString(r.RefreshToken),
		IDToken:      aws.ToString(r.IdToken),
		ExpiresIn:    r.ExpiresIn,
		TokenType:    aws.ToString(r.TokenType),
	}
}
