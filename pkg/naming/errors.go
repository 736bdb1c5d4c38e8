package naming

import (
	"errors"
	"net/http"
	"strings"
)

type ErrorKind string

const (
	KindQuotaExceeded         ErrorKind = "quota_exceeded"
	KindInvalidApiKey         ErrorKind = "invalid_api_key"
	KindInvalidResponseFormat ErrorKind = "invalid_response_format"
	KindProvider              ErrorKind = "provider"
	KindTransport             ErrorKind = "transport"
)

var (
	ErrQuotaExceeded         = errors.New("api quota exceeded")
	ErrInvalidApiKey         = errors.New("invalid api key")
	ErrInvalidResponseFormat = errors.New("ai returned invalid response format")
)

const (
	msgQuotaExceeded         = "API quota exceeded"
	msgInvalidApiKey         = "Invalid API key"
	msgInvalidResponseFormat = "AI returned invalid response format"
)

// Error is the failure type of every Namer. Message is safe to show to the
// user; Cause keeps the underlying detail for logs.
type Error struct {
	Kind       ErrorKind
	Message    string
	StatusCode int
	Cause      error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	switch e.Kind {
	case KindQuotaExceeded:
		errs = append(errs, ErrQuotaExceeded)
	case KindInvalidApiKey:
		errs = append(errs, ErrInvalidApiKey)
	case KindInvalidResponseFormat:
		errs = append(errs, ErrInvalidResponseFormat)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// Retryable reports whether repeating the same call may succeed.
func (e *Error) Retryable() bool {
	switch e.Kind {
	case KindTransport, KindQuotaExceeded:
		return true
	case KindProvider:
		return e.StatusCode >= http.StatusInternalServerError
	default:
		return false
	}
}

// KindOf returns the kind of a naming error, or KindProvider for foreign errors.
func KindOf(err error) ErrorKind {
	var ne *Error
	if errors.As(err, &ne) {
		return ne.Kind
	}
	return KindProvider
}

func invalidFormat(cause error) *Error {
	return &Error{Kind: KindInvalidResponseFormat, Message: msgInvalidResponseFormat, Cause: cause}
}

func transportError(cause error) *Error {
	return &Error{Kind: KindTransport, Message: cause.Error(), Cause: cause}
}

// providerFailure describes a non-2xx reply. APIStatus and Reasons are the
// structured fields some providers return; Message is free text.
type providerFailure struct {
	StatusCode int
	APIStatus  string
	Reasons    []string
	Message    string
}

// classify prefers structured codes and falls back to sniffing the message
// for providers that only send text.
func classify(f providerFailure) *Error {
	e := &Error{StatusCode: f.StatusCode}

	switch {
	case f.APIStatus == "RESOURCE_EXHAUSTED" || f.StatusCode == http.StatusTooManyRequests:
		e.Kind = KindQuotaExceeded
	case hasReason(f.Reasons, "API_KEY_INVALID") || f.APIStatus == "UNAUTHENTICATED" || f.StatusCode == http.StatusUnauthorized:
		e.Kind = KindInvalidApiKey
	default:
		lower := strings.ToLower(f.Message)
		switch {
		case strings.Contains(lower, "quota") || strings.Contains(lower, "limit"):
			e.Kind = KindQuotaExceeded
		case strings.Contains(lower, "key"):
			e.Kind = KindInvalidApiKey
		default:
			e.Kind = KindProvider
		}
	}

	switch e.Kind {
	case KindQuotaExceeded:
		e.Message = msgQuotaExceeded
	case KindInvalidApiKey:
		e.Message = msgInvalidApiKey
	default:
		e.Message = f.Message
	}
	if f.Message != "" {
		e.Cause = errors.New(f.Message)
	}
	return e
}

func hasReason(reasons []string, want string) bool {
	for _, r := range reasons {
		if r == want {
			return true
		}
	}
	return false
}
