// Package hashnode publishes articles to a Hashnode publication through its
// GraphQL API.
package hashnode

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-slug"

	"github.com/thoreinstein/crosspost/internal/errors"
	"github.com/thoreinstein/crosspost/internal/logging"
	"github.com/thoreinstein/crosspost/internal/paths"
	"github.com/thoreinstein/crosspost/internal/platform"
)

// Name is the platform identifier.
const Name = paths.PlatformHashnode

// Variables that carry the credentials.
const (
	TokenEnv         = "CROSSPOST_HASHNODE_TOKEN"
	PublicationIDEnv = "CROSSPOST_HASHNODE_PUBLICATION_ID"
)

const publishPostMutation = `mutation PublishPost($input: PublishPostInput!) {
  publishPost(input: $input) {
    post { id slug url }
  }
}`

const createDraftMutation = `mutation CreateDraft($input: CreateDraftInput!) {
  createDraft(input: $input) {
    draft { id slug }
  }
}`

// Client publishes to Hashnode. It is safe for concurrent use.
type Client struct {
	token         string
	publicationID string
	endpoint      string
	http          platform.HTTPClient
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the GraphQL endpoint (default https://gql.hashnode.com).
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		if endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(client platform.HTTPClient) Option {
	return func(c *Client) {
		c.http = client
	}
}

// New creates a Hashnode client for one publication. It returns a
// *platform.CredentialError when the token or publication ID is empty.
func New(token, publicationID string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(token) == "" {
		return nil, &platform.CredentialError{Platform: Name, Setting: TokenEnv}
	}
	if strings.TrimSpace(publicationID) == "" {
		return nil, &platform.CredentialError{Platform: Name, Setting: PublicationIDEnv}
	}
	c := &Client{
		token:         token,
		publicationID: publicationID,
		endpoint:      paths.DefaultEndpoint(Name),
		http:          &http.Client{Timeout: 30 * time.Second},
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

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// postInput is shared by PublishPostInput and CreateDraftInput.
type postInput struct {
	Title              string             `json:"title"`
	Subtitle           string             `json:"subtitle,omitempty"`
	PublicationID      string             `json:"publicationId"`
	ContentMarkdown    string             `json:"contentMarkdown"`
	Tags               []TagInput         `json:"tags"`
	OriginalArticleURL string             `json:"originalArticleURL,omitempty"`
	CoverImageOptions  *coverImageOptions `json:"coverImageOptions,omitempty"`
	MetaTags           *metaTags          `json:"metaTags,omitempty"`
}

// TagInput is a Hashnode tag reference.
type TagInput struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

type coverImageOptions struct {
	CoverImageURL string `json:"coverImageURL"`
}

type metaTags struct {
	Description string `json:"description"`
}

type graphQLResponse struct {
	Data struct {
		PublishPost *struct {
			Post *postNode `json:"post"`
		} `json:"publishPost"`
		CreateDraft *struct {
			Draft *postNode `json:"draft"`
		} `json:"createDraft"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

type postNode struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
	URL  string `json:"url"`
}

type graphQLError struct {
	Message    string `json:"message"`
	Extensions struct {
		Code string `json:"code"`
	} `json:"extensions"`
}

// Publish creates a published post, or a draft when the article is not
// live, with a single GraphQL request.
func (c *Client) Publish(ctx context.Context, a *platform.Article) (*platform.Result, error) {
	input := postInput{
		Title:              a.Title,
		Subtitle:           a.Subtitle,
		PublicationID:      c.publicationID,
		ContentMarkdown:    a.Body,
		Tags:               Tags(a.Tags),
		OriginalArticleURL: a.CanonicalURL,
	}
	if a.CoverImage != "" {
		input.CoverImageOptions = &coverImageOptions{CoverImageURL: a.CoverImage}
	}
	if a.Description != "" {
		input.MetaTags = &metaTags{Description: a.Description}
	}

	query := createDraftMutation
	if a.Published {
		query = publishPostMutation
	}

	header := http.Header{}
	header.Set("Authorization", c.token)

	resp, err := platform.PostJSON(ctx, c.http, c.endpoint, header, graphQLRequest{
		Query:     query,
		Variables: map[string]any{"input": input},
	})
	if err != nil {
		return nil, errors.Wrap(err, "hashnode")
	}

	var body graphQLResponse
	decodeErr := resp.Decode(&body)

	if len(body.Errors) > 0 {
		return nil, graphQLFailure(resp.StatusCode, body.Errors)
	}
	if !resp.OK() {
		return nil, &platform.APIError{
			Platform:   Name,
			StatusCode: resp.StatusCode,
			Kind:       platform.KindForStatus(resp.StatusCode),
		}
	}
	if decodeErr != nil {
		return nil, errors.Wrap(decodeErr, "hashnode")
	}

	var node *postNode
	draft := !a.Published
	switch {
	case body.Data.PublishPost != nil:
		node = body.Data.PublishPost.Post
	case body.Data.CreateDraft != nil:
		node = body.Data.CreateDraft.Draft
	}
	if node == nil || node.ID == "" {
		return nil, errors.New("hashnode: response contained no post")
	}

	logging.FromContext(ctx).Debug("hashnode post created",
		slog.String("id", node.ID),
		slog.String("url", node.URL),
		slog.Bool("draft", draft))

	return &platform.Result{
		Platform: Name,
		ID:       node.ID,
		URL:      node.URL,
		Slug:     node.Slug,
		Draft:    draft,
	}, nil
}

// graphQLFailure converts the first GraphQL error into an APIError.
// Hashnode reports most failures with HTTP 200 and an error code.
func graphQLFailure(status int, errs []graphQLError) error {
	first := errs[0]
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Message)
	}

	kind := kindForCode(first.Extensions.Code)
	if kind == nil {
		kind = platform.KindForStatus(status)
	}
	return &platform.APIError{
		Platform:   Name,
		StatusCode: status,
		Code:       first.Extensions.Code,
		Message:    strings.Join(msgs, "; "),
		Kind:       kind,
	}
}

func kindForCode(code string) error {
	switch code {
	case "UNAUTHENTICATED", "FORBIDDEN":
		return platform.ErrUnauthorized
	case "BAD_USER_INPUT", "GRAPHQL_VALIDATION_FAILED":
		return platform.ErrValidation
	case "TOO_MANY_REQUESTS":
		return platform.ErrRateLimited
	default:
		return nil
	}
}

// Tags converts free-form tags into Hashnode tag inputs. The slug is the
// normalized form of the tag; tags that normalize to nothing and duplicate
// slugs are dropped. The result is never nil.
func Tags(tags []string) []TagInput {
	out := make([]TagInput, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, name := range tags {
		name = strings.TrimSpace(name)
		s, err := slug.Normalize(name)
		if err != nil || s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, TagInput{Slug: s, Name: name})
	}
	return out
}
