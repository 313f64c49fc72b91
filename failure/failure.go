package failure

import (
	"errors"
	"net/http"
	"runtime/debug"
)

// Kind - замкнутое множество видов ошибок
type Kind int

const (
	KindUnexpected Kind = iota
	KindInvalidInput
	KindNotAuthorized
	KindServiceProvider
)

// String возвращает машинное имя вида (errorCode в ответе)
func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "InvalidInputException"
	case KindNotAuthorized:
		return "NotAuthorizedException"
	case KindServiceProvider:
		return "ServiceProviderException"
	default:
		return "UnexpectedErrorException"
	}
}

// StatusCode возвращает HTTP статус для вида
func (k Kind) StatusCode() int {
	switch k {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindNotAuthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Message возвращает фиксированное сообщение для вида
func (k Kind) Message() string {
	switch k {
	case KindInvalidInput:
		return "Invalid user input error"
	case KindNotAuthorized:
		return "Invalid or expired access token"
	case KindServiceProvider:
		return "A provider operation has failed"
	default:
		return "Unexpected application error"
	}
}

func (k Kind) defaultReason() string {
	switch k {
	case KindInvalidInput:
		return "The input provided does not meet the required format or constraints."
	case KindNotAuthorized:
		return "Authentication credentials are missing or invalid."
	case KindServiceProvider:
		return "An error occurred while processing the service provider operation."
	default:
		return "The application encountered an unexpected error."
	}
}

// Failure - типизированная ошибка с HTTP статусом и причиной
type Failure struct {
	Kind   Kind
	Reason string
	Stack  string
	cause  error
}

func newFailure(kind Kind, reason string, cause error) *Failure {
	if reason == "" {
		reason = kind.defaultReason()
	}
	return &Failure{
		Kind:   kind,
		Reason: reason,
		Stack:  string(debug.Stack()),
		cause:  cause,
	}
}

// Error реализует интерфейс error
func (f *Failure) Error() string {
	return f.Kind.Message() + ": " + f.Reason
}

// Unwrap возвращает исходную ошибку провайдера, если она есть
func (f *Failure) Unwrap() error {
	return f.cause
}

// Message возвращает пользовательское сообщение
func (f *Failure) Message() string {
	return f.Kind.Message()
}

// StatusCode возвращает HTTP статус
func (f *Failure) StatusCode() int {
	return f.Kind.StatusCode()
}

// WithCause привязывает исходную ошибку (для errors.Is/As)
func (f *Failure) WithCause(err error) *Failure {
	f.cause = err
	return f
}

// InvalidInput - ошибка входных данных (400)
func InvalidInput(reason string) *Failure {
	return newFailure(KindInvalidInput, reason, nil)
}

// NotAuthorized - отсутствует или недействительна сессия (401)
func NotAuthorized(reason string) *Failure {
	return newFailure(KindNotAuthorized, reason, nil)
}

// ServiceProvider - сбой вызова внешнего провайдера (500)
func ServiceProvider(reason string, cause error) *Failure {
	return newFailure(KindServiceProvider, reason, cause)
}

// Unexpected - любая неклассифицированная ошибка (500)
func Unexpected(reason string) *Failure {
	return newFailure(KindUnexpected, reason, nil)
}

// From приводит произвольную ошибку к Failure.
// Существующий Failure в цепочке возвращается как есть.
func From(err error) *Failure {
	if err == nil {
		return nil
	}
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	return newFailure(KindUnexpected, err.Error(), err)
}

// Is проверяет, что ошибка является Failure указанного вида
func Is(err error, kind Kind) bool {
	var f *Failure
	return errors.As(err, &f) && f.Kind == kind
}
