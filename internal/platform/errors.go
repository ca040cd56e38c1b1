package platform

import (
	"fmt"
	"net/http"

	"github.com/thoreinstein/crosspost/internal/errors"
)

// Classified platform failures. Client errors wrap exactly one of these
// (through APIError when a response was received).
var (
	// ErrUnauthorized indicates the credential was rejected.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrValidation indicates the platform rejected the article content.
	ErrValidation = errors.New("article rejected")

	// ErrRateLimited indicates the platform throttled the request.
	ErrRateLimited = errors.New("rate limited")

	// ErrMissingCredential indicates no credential is configured.
	// The platform is reported failed for every eligible post in the run.
	ErrMissingCredential = errors.New("missing credential")
)

// APIError is a non-success response from a platform.
type APIError struct {
	Platform   string
	StatusCode int
	// Code is the platform's own error code, when it sends one.
	Code    string
	Message string
	// Kind is the sentinel this response maps to, or nil.
	Kind error
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if e.Code != "" {
		return fmt.Sprintf("%s: %s (%s, HTTP %d)", e.Platform, msg, e.Code, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s (HTTP %d)", e.Platform, msg, e.StatusCode)
}

func (e *APIError) Unwrap() error {
	return e.Kind
}

// KindForStatus maps an HTTP status code to a failure sentinel.
// It returns nil for statuses with no specific meaning.
func KindForStatus(status int) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrValidation
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return nil
	}
}

// CredentialError reports a platform that cannot be used in this run.
type CredentialError struct {
	Platform string
	// Setting names the configuration key or variable to set.
	Setting string
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("%s: %s not set", e.Platform, e.Setting)
}

func (e *CredentialError) Unwrap() error {
	return ErrMissingCredential
}
