// Package devto publishes articles to DEV Community through its REST API.
package devto

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/time/rate"

	"github.com/thoreinstein/crosspost/internal/errors"
	"github.com/thoreinstein/crosspost/internal/logging"
	"github.com/thoreinstein/crosspost/internal/paths"
	"github.com/thoreinstein/crosspost/internal/platform"
)

// Name is the platform identifier.
const Name = paths.PlatformDevTo

// CredentialEnv is the variable that carries the API key.
const CredentialEnv = "CROSSPOST_DEVTO_API_KEY"

// MaxTags is the number of tags the API accepts per article.
const MaxTags = 4

// Dev.to allows roughly 10 article creations per 30 seconds per key.
const (
	defaultInterval = 3 * time.Second
	defaultBurst    = 1
)

// Client publishes to Dev.to. It is safe for concurrent use.
type Client struct {
	apiKey   string
	endpoint string
	http     platform.HTTPClient
	limiter  *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the API base URL (default https://dev.to/api).
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		if endpoint != "" {
			c.endpoint = strings.TrimRight(endpoint, "/")
		}
	}
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(client platform.HTTPClient) Option {
	return func(c *Client) {
		c.http = client
	}
}

// WithLimiter replaces the default request limiter.
// A nil limiter disables limiting.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) {
		c.limiter = l
	}
}

// New creates a Dev.to client. It returns a *platform.CredentialError when
// apiKey is empty.
func New(apiKey string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, &platform.CredentialError{Platform: Name, Setting: CredentialEnv}
	}
	c := &Client{
		apiKey:   apiKey,
		endpoint: paths.DefaultEndpoint(Name),
		http:     &http.Client{Timeout: 30 * time.Second},
		limiter:  rate.NewLimiter(rate.Every(defaultInterval), defaultBurst),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Name returns the platform identifier.
func (c *Client) Name() string { return Name }

// DisplayName returns the human-readable platform name.
func (c *Client) DisplayName() string { return paths.DisplayName(Name) }

type articleRequest struct {
	Article articlePayload `json:"article"`
}

type articlePayload struct {
	Title        string   `json:"title"`
	BodyMarkdown string   `json:"body_markdown"`
	Published    bool     `json:"published"`
	Tags         []string `json:"tags,omitempty"`
	CanonicalURL string   `json:"canonical_url,omitempty"`
	Description  string   `json:"description,omitempty"`
	Series       string   `json:"series,omitempty"`
	MainImage    string   `json:"main_image,omitempty"`
}

type articleResponse struct {
	ID        int64  `json:"id"`
	URL       string `json:"url"`
	Slug      string `json:"slug"`
	Published bool   `json:"published"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// Publish creates one article with a single POST /articles request.
func (c *Client) Publish(ctx context.Context, a *platform.Article) (*platform.Result, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, errors.Wrap(err, "devto: waiting for rate limiter")
		}
	}

	payload := articleRequest{Article: articlePayload{
		Title:        a.Title,
		BodyMarkdown: a.Body,
		Published:    a.Published,
		Tags:         NormalizeTags(a.Tags),
		CanonicalURL: a.CanonicalURL,
		Description:  a.Description,
		Series:       a.Series,
		MainImage:    a.CoverImage,
	}}

	header := http.Header{}
	header.Set("api-key", c.apiKey)

	resp, err := platform.PostJSON(ctx, c.http, c.endpoint+"/articles", header, payload)
	if err != nil {
		return nil, errors.Wrap(err, "devto")
	}

	if !resp.OK() {
		return nil, apiError(resp)
	}

	var created articleResponse
	if err := resp.Decode(&created); err != nil {
		return nil, errors.Wrap(err, "devto")
	}

	logging.FromContext(ctx).Debug("devto article created",
		slog.Int64("id", created.ID),
		slog.String("url", created.URL),
		slog.Bool("published", created.Published))

	return &platform.Result{
		Platform: Name,
		ID:       strconv.FormatInt(created.ID, 10),
		URL:      created.URL,
		Slug:     created.Slug,
		Draft:    !created.Published,
	}, nil
}

func apiError(resp *platform.Response) error {
	var body errorResponse
	_ = resp.Decode(&body)
	return &platform.APIError{
		Platform:   Name,
		StatusCode: resp.StatusCode,
		Message:    body.Error,
		Kind:       platform.KindForStatus(resp.StatusCode),
	}
}

// NormalizeTags rewrites tags to the form the API accepts: lowercase
// letters and digits only, no duplicates, at most MaxTags, order kept.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, min(len(tags), MaxTags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		var sb strings.Builder
		for _, r := range strings.ToLower(tag) {
			if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
				sb.WriteRune(r)
			}
		}
		t := sb.String()
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
		if len(out) == MaxTags {
			break
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
