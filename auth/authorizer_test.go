package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/failure"
)

type stubFetcher struct {
	attrs map[string]string
	err   error
	token string
}

func (s *stubFetcher) FetchUserAttributes(_ context.Context, accessToken string) (map[string]string, error) {
	s.token = accessToken
	return s.attrs, s.err
}

func TestAuthorize(t *testing.T) {
	t.Run("Allow", func(t *testing.T) {
		fetcher := &stubFetcher{attrs: map[string]string{"sub": "u1", "email": "e@x.com"}}
		a := NewAuthorizer(fetcher, DefaultConfig())

		identity, err := a.Authorize(context.Background(), "accessToken=tok")
		require.NoError(t, err)
		assert.Equal(t, &UserIdentity{UserID: "u1", Email: "e@x.com"}, identity)
		assert.Equal(t, "tok", fetcher.token)
	})

	t.Run("MissingCookie", func(t *testing.T) {
		fetcher := &stubFetcher{}
		a := NewAuthorizer(fetcher, DefaultConfig())

		identity, err := a.Authorize(context.Background(), "theme=dark")
		assert.Nil(t, identity)
		assert.True(t, failure.Is(err, failure.KindNotAuthorized))
		assert.ErrorIs(t, err, ErrMissingSessionCookie)
		assert.Empty(t, fetcher.token, "provider must not be called")
	})

	t.Run("ProviderFailure", func(t *testing.T) {
		providerErr := failure.ServiceProvider("NotAuthorizedException: Access Token has expired", nil)
		a := NewAuthorizer(&stubFetcher{err: providerErr}, DefaultConfig())

		_, err := a.Authorize(context.Background(), "accessToken=expired")
		assert.Same(t, providerErr, failure.From(err))
	})

	t.Run("PlainProviderError", func(t *testing.T) {
		a := NewAuthorizer(&stubFetcher{err: errors.New("boom")}, DefaultConfig())

		_, err := a.Authorize(context.Background(), "accessToken=tok")
		assert.True(t, failure.Is(err, failure.KindUnexpected))
	})

	t.Run("MissingSubject", func(t *testing.T) {
		a := NewAuthorizer(&stubFetcher{attrs: map[string]string{"email": "e@x.com"}}, DefaultConfig())

		_, err := a.Authorize(context.Background(), "accessToken=tok")
		assert.True(t, failure.Is(err, failure.KindNotAuthorized))
		assert.ErrorIs(t, err, ErrMissingSubject)
	})
}
