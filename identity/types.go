package identity

import (
	"context"

	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
)

// CognitoAPI - подмножество клиента Cognito, используемое сервисом.
// *cognitoidentityprovider.Client удовлетворяет интерфейсу; в тестах подставляется фейк.
type CognitoAPI interface {
	SignUp(ctx context.Context, in *cip.SignUpInput, optFns ...func(*cip.Options)) (*cip.SignUpOutput, error)
	ConfirmSignUp(ctx context.Context, in *cip.ConfirmSignUpInput, optFns ...func(*cip.Options)) (*cip.ConfirmSignUpOutput, error)
	InitiateAuth(ctx context.Context, in *cip.InitiateAuthInput, optFns ...func(*cip.Options)) (*cip.InitiateAuthOutput, error)
	GetUser(ctx context.Context, in *cip.GetUserInput, optFns ...func(*cip.Options)) (*cip.GetUserOutput, error)
	GlobalSignOut(ctx context.Context, in *cip.GlobalSignOutInput, optFns ...func(*cip.Options)) (*cip.GlobalSignOutOutput, error)
}

// AuthTokens - токены, выданные провайдером
type AuthTokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	IDToken      string `json:"idToken"`
	ExpiresIn    int32  `json:"expiresIn"`
	TokenType    string `json:"tokenType"`
}

// Provider - операции провайдера идентификации, которые используют обработчики
type Provider interface {
	SignUp(ctx context.Context, username, password string) error
	ConfirmSignUp(ctx context.Context, username, code string) error
	SignIn(ctx context.Context, username, password string) (*AuthTokens, error)
	RefreshToken(ctx context.Context, username, refreshToken string) (*AuthTokens, error)
	FetchUserAttributes(ctx context.Context, accessToken string) (map[string]string, error)
	SignOut(ctx context.Context, accessToken string) error
}

// Exchanger обменивает код авторизации OAuth2 на токены
type Exchanger interface {
	Exchange(ctx context.Context, code string) (*AuthTokens, error)
}
