package failure

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKinds(t *testing.T) {
	tests := []struct {
		name    string
		f       *Failure
		status  int
		code    string
		message string
		reason  string
	}{
		{"InvalidInput", InvalidInput(""), 400, "InvalidInputException", "Invalid user input error",
			"The input provided does not meet the required format or constraints."},
		{"NotAuthorized", NotAuthorized(""), 401, "NotAuthorizedException", "Invalid or expired access token",
			"Authentication credentials are missing or invalid."},
		{"ServiceProvider", ServiceProvider("", nil), 500, "ServiceProviderException", "A provider operation has failed",
			"An error occurred while processing the service provider operation."},
		{"Unexpected", Unexpected(""), 500, "UnexpectedErrorException", "Unexpected application error",
			"The application encountered an unexpected error."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.f.StatusCode())
			assert.Equal(t, tt.code, tt.f.Kind.String())
			assert.Equal(t, tt.message, tt.f.Message())
			assert.Equal(t, tt.reason, tt.f.Reason)
			assert.NotEmpty(t, tt.f.Stack)
		})
	}
}

func TestCustomReason(t *testing.T) {
	f := InvalidInput("username is required")
	assert.Equal(t, "username is required", f.Reason)
	assert.Equal(t, "Invalid user input error: username is required", f.Error())
}

func TestFrom(t *testing.T) {
	t.Run("Nil", func(t *testing.T) {
		assert.Nil(t, From(nil))
	})

	t.Run("ReusesFailure", func(t *testing.T) {
		original := NotAuthorized("no cookie")
		assert.Same(t, original, From(original))
	})

	t.Run("ReusesWrappedFailure", func(t *testing.T) {
		original := InvalidInput("bad body")
		wrapped := fmt.Errorf("handler: %w", original)
		assert.Same(t, original, From(wrapped))
	})

	t.Run("WrapsPlainError", func(t *testing.T) {
		plain := errors.New("connection reset")
		f := From(plain)
		require.NotNil(t, f)
		assert.Equal(t, KindUnexpected, f.Kind)
		assert.Equal(t, "connection reset", f.Reason)
		assert.ErrorIs(t, f, plain)
	})
}

func TestServiceProviderKeepsCause(t *testing.T) {
	cause := errors.New("UserNotFoundException")
	f := ServiceProvider(cause.Error(), cause)
	assert.ErrorIs(t, f, cause)
	assert.True(t, Is(f, KindServiceProvider))
	assert.False(t, Is(f, KindUnexpected))
	assert.False(t, Is(cause, KindServiceProvider))
}

func TestWithCause(t *testing.T) {
	sentinel := errors.New("missing session cookie")
	f := NotAuthorized("").WithCause(sentinel)
	assert.ErrorIs(t, f, sentinel)
	assert.Equal(t, "Authentication credentials are missing or invalid.", f.Reason)
}
