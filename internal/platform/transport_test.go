package platform

import (
	"io"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostJSON(t *testing.T) {
	mt := httpmock.NewMockTransport()
	client := &http.Client{Transport: mt}

	var gotBody string
	var gotHeader http.Header
	mt.RegisterResponder(http.MethodPost, "https://api.example.test/things",
		func(req *http.Request) (*http.Response, error) {
			data, _ := io.ReadAll(req.Body)
			gotBody = string(data)
			gotHeader = req.Header.Clone()
			return httpmock.NewStringResponse(http.StatusCreated, `{"id":"x1"}`), nil
		})

	header := http.Header{}
	header.Set("X-Token", "secret")
	resp, err := PostJSON(t.Context(), client, "https://api.example.test/things", header, map[string]string{"k": "v"})
	require.NoError(t, err)

	assert.True(t, resp.OK())
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.JSONEq(t, `{"k":"v"}`, gotBody)
	assert.Equal(t, "secret", gotHeader.Get("X-Token"))
	assert.Equal(t, "application/json", gotHeader.Get("Content-Type"))
	assert.Equal(t, UserAgent, gotHeader.Get("User-Agent"))

	var out struct {
		ID string `json:"id"`
	}
	require.NoError(t, resp.Decode(&out))
	assert.Equal(t, "x1", out.ID)
}

func TestPostJSON_NonSuccessReturnsResponse(t *testing.T) {
	mt := httpmock.NewMockTransport()
	mt.RegisterNoResponder(httpmock.NewStringResponder(http.StatusTooManyRequests, "slow down"))

	resp, err := PostJSON(t.Context(), &http.Client{Transport: mt}, "https://api.example.test/", nil, struct{}{})
	require.NoError(t, err)
	assert.False(t, resp.OK())
	assert.Equal(t, "slow down", string(resp.Body))
	assert.Error(t, resp.Decode(&struct{}{}))
}

func TestPostJSON_EncodeError(t *testing.T) {
	_, err := PostJSON(t.Context(), http.DefaultClient, "https://api.example.test/", nil, make(chan int))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encoding request")
}
