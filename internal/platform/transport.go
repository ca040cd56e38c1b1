package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/thoreinstein/crosspost/internal/errors"
	"github.com/thoreinstein/crosspost/internal/logging"
)

// maxResponseSize bounds how much of a response body is read.
const maxResponseSize = 1 << 20

// UserAgent is sent with every platform request. The CLI sets it from the
// build version.
var UserAgent = "crosspost"

// HTTPClient is the subset of *http.Client the platform clients use.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Response is a raw platform response.
type Response struct {
	StatusCode int
	Body       []byte
}

// PostJSON encodes payload as JSON, POSTs it to url with the given headers,
// and returns the response. Transport failures are wrapped; status codes are
// left for the caller to classify.
func PostJSON(ctx context.Context, client HTTPClient, url string, header http.Header, payload any) (*Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "encoding request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "building request")
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)

	logger := logging.FromContext(ctx)
	logger.Log(ctx, logging.LevelTrace, "http request", slog.String("url", url), slog.Int("bytes", len(body)))

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "POST %s", url)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, errors.Wrap(err, "reading response")
	}

	logger.Log(ctx, logging.LevelTrace, "http response", slog.String("url", url), slog.Int("status", resp.StatusCode))
	return &Response{StatusCode: resp.StatusCode, Body: data}, nil
}

// OK reports whether the response has a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Decode unmarshals the response body into out.
func (r *Response) Decode(out any) error {
	if err := json.Unmarshal(r.Body, out); err != nil {
		return errors.Wrap(err, "decoding response")
	}
	return nil
}
