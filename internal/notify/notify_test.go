package notify

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/crosspost/internal/errors"
	"github.com/thoreinstein/crosspost/internal/logging"
)

func TestNew_NoURLs(t *testing.T) {
	tests := []struct {
		name string
		urls []string
	}{
		{"nil", nil},
		{"empty", []string{}},
		{"blank entries", []string{"", "   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := New(tt.urls, 0)
			assert.Nil(t, n)
			assert.True(t, errors.Is(err, ErrNoURLs))
		})
	}
}

func TestNew_InvalidURL(t *testing.T) {
	_, err := New([]string{"nosuchservice://token@host"}, time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating notification sender")
	assert.NotContains(t, err.Error(), "token@")
}

func TestNotifier_Services(t *testing.T) {
	n, err := New([]string{"generic://example.com/hook?token=abcdef123456&disabletls=yes"}, 0)
	require.NoError(t, err)

	services := n.Services()
	require.Len(t, services, 1)
	assert.NotContains(t, services[0], "abcdef123456")
	assert.True(t, strings.HasPrefix(services[0], "generic://example.com"))
}

func TestNotifier_Send(t *testing.T) {
	var (
		calls atomic.Int32
		body  atomic.Value
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		data, _ := io.ReadAll(r.Body)
		body.Store(string(data))
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	host := strings.TrimPrefix(srv.URL, "http://")
	n, err := New([]string{"generic://" + host + "/hook?disabletls=yes"}, 5*time.Second)
	require.NoError(t, err)

	ctx := logging.NewContext(t.Context(), logging.ForTest(t))
	err = n.Send(ctx, Message{Title: "crosspost", Body: "2 published, 0 failed"})
	require.NoError(t, err)

	assert.Equal(t, int32(1), calls.Load())
	assert.Contains(t, body.Load(), "2 published")
}

func TestNotifier_Send_Failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	host := strings.TrimPrefix(srv.URL, "http://")
	n, err := New([]string{"generic://" + host + "/hook?disabletls=yes"}, 5*time.Second)
	require.NoError(t, err)

	err = n.Send(t.Context(), Message{Body: "run finished"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sending notification")
}

func TestRedact(t *testing.T) {
	urls := []string{"discord://secrettoken@12345"}

	err := redact(errors.New("failed to send to discord://secrettoken@12345: 401"), urls)
	assert.NotContains(t, err.Error(), "secrettoken")
	assert.Contains(t, err.Error(), ": 401")

	plain := errors.New("connection refused")
	assert.Same(t, plain, redact(plain, urls))
}
