package hashnode

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/crosspost/internal/errors"
	"github.com/thoreinstein/crosspost/internal/platform"
)

const testEndpoint = "https://gql.example.test/"

func newTestClient(t *testing.T) (*Client, *httpmock.MockTransport) {
	t.Helper()
	mt := httpmock.NewMockTransport()
	c, err := New("hn-token", "pub-1",
		WithEndpoint(testEndpoint),
		WithHTTPClient(&http.Client{Transport: mt}),
	)
	require.NoError(t, err)
	return c, mt
}

type gqlCapture struct {
	header    http.Header
	query     string
	variables map[string]map[string]any
}

func captureResponder(t *testing.T, got *gqlCapture, status int, body string) httpmock.Responder {
	t.Helper()
	return func(req *http.Request) (*http.Response, error) {
		data, err := io.ReadAll(req.Body)
		require.NoError(t, err)
		var payload struct {
			Query     string                    `json:"query"`
			Variables map[string]map[string]any `json:"variables"`
		}
		require.NoError(t, json.Unmarshal(data, &payload))
		got.header = req.Header.Clone()
		got.query = payload.Query
		got.variables = payload.Variables
		return httpmock.NewStringResponse(status, body), nil
	}
}

func TestNew_MissingCredentials(t *testing.T) {
	_, err := New("", "pub")
	assert.ErrorIs(t, err, platform.ErrMissingCredential)
	assert.Contains(t, err.Error(), TokenEnv)

	_, err = New("token", " ")
	assert.ErrorIs(t, err, platform.ErrMissingCredential)
	assert.Contains(t, err.Error(), PublicationIDEnv)
}

func TestClient_Identity(t *testing.T) {
	c, _ := newTestClient(t)
	assert.Equal(t, "hashnode", c.Name())
	assert.Equal(t, "Hashnode", c.DisplayName())
}

func TestClient_Publish_Published(t *testing.T) {
	c, mt := newTestClient(t)

	var got gqlCapture
	mt.RegisterResponder(http.MethodPost, testEndpoint, captureResponder(t, &got, http.StatusOK,
		`{"data": {"publishPost": {"post": {"id": "6543", "slug": "hello", "url": "https://me.hashnode.dev/hello"}}}}`))

	res, err := c.Publish(t.Context(), &platform.Article{
		Title:        "Hello",
		Subtitle:     "Sub",
		Description:  "Desc",
		Body:         "Body",
		Tags:         []string{"a", "b"},
		CanonicalURL: "https://blog.example.com/hello",
		CoverImage:   "https://blog.example.com/c.png",
		Published:    true,
	})
	require.NoError(t, err)

	assert.Equal(t, &platform.Result{
		Platform: "hashnode",
		ID:       "6543",
		URL:      "https://me.hashnode.dev/hello",
		Slug:     "hello",
	}, res)
	assert.Equal(t, 1, mt.GetTotalCallCount())

	assert.Equal(t, "hn-token", got.header.Get("Authorization"))
	assert.Contains(t, got.query, "publishPost")

	input := got.variables["input"]
	assert.Equal(t, "Hello", input["title"])
	assert.Equal(t, "Sub", input["subtitle"])
	assert.Equal(t, "pub-1", input["publicationId"])
	assert.Equal(t, "Body", input["contentMarkdown"])
	assert.Equal(t, "https://blog.example.com/hello", input["originalArticleURL"])
	assert.Equal(t, []any{
		map[string]any{"slug": "a", "name": "a"},
		map[string]any{"slug": "b", "name": "b"},
	}, input["tags"])
	assert.Equal(t, map[string]any{"coverImageURL": "https://blog.example.com/c.png"}, input["coverImageOptions"])
	assert.Equal(t, map[string]any{"description": "Desc"}, input["metaTags"])
}

func TestClient_Publish_Draft(t *testing.T) {
	c, mt := newTestClient(t)

	var got gqlCapture
	mt.RegisterResponder(http.MethodPost, testEndpoint, captureResponder(t, &got, http.StatusOK,
		`{"data": {"createDraft": {"draft": {"id": "d-1", "slug": "draft"}}}}`))

	res, err := c.Publish(t.Context(), &platform.Article{Title: "Draft", Body: "x"})
	require.NoError(t, err)

	assert.Contains(t, got.query, "createDraft")
	assert.NotContains(t, got.query, "publishPost")
	assert.True(t, res.Draft)
	assert.Equal(t, "d-1", res.ID)

	input := got.variables["input"]
	_, present := input["originalArticleURL"]
	assert.False(t, present, "originalArticleURL must be omitted without a canonical URL")
	assert.Equal(t, []any{}, input["tags"])
}

func TestClient_Publish_GraphQLErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind error
		wantMsg  string
	}{
		{
			name:     "unauthenticated",
			status:   http.StatusOK,
			body:     `{"data": null, "errors": [{"message": "Invalid token", "extensions": {"code": "UNAUTHENTICATED"}}]}`,
			wantKind: platform.ErrUnauthorized,
			wantMsg:  "Invalid token",
		},
		{
			name:     "forbidden publication",
			status:   http.StatusOK,
			body:     `{"errors": [{"message": "Not a member", "extensions": {"code": "FORBIDDEN"}}]}`,
			wantKind: platform.ErrUnauthorized,
			wantMsg:  "FORBIDDEN",
		},
		{
			name:     "bad input",
			status:   http.StatusOK,
			body:     `{"errors": [{"message": "Title too long", "extensions": {"code": "BAD_USER_INPUT"}}, {"message": "Tag invalid", "extensions": {"code": "BAD_USER_INPUT"}}]}`,
			wantKind: platform.ErrValidation,
			wantMsg:  "Title too long; Tag invalid",
		},
		{
			name:     "unknown code falls back to status",
			status:   http.StatusTooManyRequests,
			body:     `{"errors": [{"message": "slow down"}]}`,
			wantKind: platform.ErrRateLimited,
			wantMsg:  "slow down",
		},
		{
			name:     "http error without graphql body",
			status:   http.StatusUnauthorized,
			body:     `Unauthorized`,
			wantKind: platform.ErrUnauthorized,
			wantMsg:  "HTTP 401",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, mt := newTestClient(t)
			mt.RegisterResponder(http.MethodPost, testEndpoint, httpmock.NewStringResponder(tt.status, tt.body))

			res, err := c.Publish(t.Context(), &platform.Article{Title: "T", Published: true})
			require.Error(t, err)
			assert.Nil(t, res)

			var apiErr *platform.APIError
			require.True(t, errors.As(err, &apiErr), "got %T: %v", err, err)
			assert.Equal(t, "hashnode", apiErr.Platform)
			assert.ErrorIs(t, err, tt.wantKind)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestClient_Publish_EmptyData(t *testing.T) {
	c, mt := newTestClient(t)
	mt.RegisterResponder(http.MethodPost, testEndpoint,
		httpmock.NewStringResponder(http.StatusOK, `{"data": {"publishPost": {"post": null}}}`))

	_, err := c.Publish(t.Context(), &platform.Article{Title: "T", Published: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no post")
}

func TestTags(t *testing.T) {
	got := Tags([]string{" Go ", "Web Dev", "go", "!!!"})
	require.Len(t, got, 2)
	assert.Equal(t, TagInput{Slug: "go", Name: "Go"}, got[0])
	assert.Equal(t, TagInput{Slug: "web-dev", Name: "Web Dev"}, got[1])

	assert.NotNil(t, Tags(nil))
	assert.Empty(t, Tags(nil))
}
