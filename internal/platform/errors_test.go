package platform

import (
	"net/http"
	"testing"

	"github.com/thoreinstein/crosspost/internal/errors"
)

func TestKindForStatus(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrUnauthorized},
		{http.StatusBadRequest, ErrValidation},
		{http.StatusUnprocessableEntity, ErrValidation},
		{http.StatusTooManyRequests, ErrRateLimited},
		{http.StatusInternalServerError, nil},
		{http.StatusNotFound, nil},
	}
	for _, tt := range tests {
		if got := KindForStatus(tt.status); got != tt.want {
			t.Errorf("KindForStatus(%d) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestAPIError(t *testing.T) {
	tests := []struct {
		name string
		err  *APIError
		want string
	}{
		{
			name: "message",
			err:  &APIError{Platform: "devto", StatusCode: 422, Message: "Title can't be blank", Kind: ErrValidation},
			want: "devto: Title can't be blank (HTTP 422)",
		},
		{
			name: "status text fallback",
			err:  &APIError{Platform: "devto", StatusCode: 502},
			want: "devto: Bad Gateway (HTTP 502)",
		},
		{
			name: "with code",
			err:  &APIError{Platform: "hashnode", StatusCode: 200, Code: "UNAUTHENTICATED", Message: "bad token", Kind: ErrUnauthorized},
			want: "hashnode: bad token (UNAUTHENTICATED, HTTP 200)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}

	wrapped := errors.Wrap(&APIError{Platform: "devto", StatusCode: 401, Kind: ErrUnauthorized}, "publishing")
	if !errors.Is(wrapped, ErrUnauthorized) {
		t.Error("wrapped APIError should match its Kind")
	}
	var apiErr *APIError
	if !errors.As(wrapped, &apiErr) || apiErr.StatusCode != 401 {
		t.Errorf("errors.As failed: %v", wrapped)
	}
}

func TestCredentialError(t *testing.T) {
	err := &CredentialError{Platform: "devto", Setting: "CROSSPOST_DEVTO_API_KEY"}
	if got := err.Error(); got != "devto: CROSSPOST_DEVTO_API_KEY not set" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, ErrMissingCredential) {
		t.Error("CredentialError should unwrap to ErrMissingCredential")
	}
}
