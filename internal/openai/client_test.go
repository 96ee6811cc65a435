package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-test", req.Model)
		assert.Equal(t, 600, req.MaxTokens)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"## Summary"}}]}`))
	}))
	defer srv.Close()

	c := NewClient("k", "gpt-test", srv.URL, time.Second)
	out, err := c.Complete(context.Background(), "s", "u", 600, 0.4)
	require.NoError(t, err)
	assert.Equal(t, "## Summary", out)
}

func TestCompleteHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key"}}`))
	}))
	defer srv.Close()

	c := NewClient("k", "", srv.URL, time.Second)
	_, err := c.Complete(context.Background(), "s", "u", 10, 0)
	assert.ErrorContains(t, err, "401")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "bad key", apiErr.Message)
}

func TestCompleteErrorBodies(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "plain text failure",
			status: http.StatusBadGateway,
			body:   "upstream unavailable",
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, "upstream unavailable", apiErr.Message)
			},
		},
		{
			name:   "error object on 200",
			status: http.StatusOK,
			body:   `{"error":{"message":"quota exceeded","type":"insufficient_quota"}}`,
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, "insufficient_quota", apiErr.Type)
			},
		},
		{
			name:   "malformed body",
			status: http.StatusOK,
			body:   `{"choices":`,
			check: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "decode response")
			},
		},
		{
			name:   "no choices",
			status: http.StatusOK,
			body:   `{"choices":[]}`,
			check: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "no choices")
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := NewClient("k", "", srv.URL, time.Second)
			_, err := c.Complete(context.Background(), "s", "u", 10, 0)
			require.Error(t, err)
			tc.check(t, err)
		})
	}
}

func TestCompleteTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient("k", "", url, time.Second)
	_, err := c.Complete(context.Background(), "s", "u", 10, 0)
	assert.ErrorContains(t, err, "openai request")
}

func TestCompleteWithoutKey(t *testing.T) {
	c := NewClient("", "", "http://127.0.0.1:0", time.Second)
	assert.False(t, c.HasCredential())
	_, err := c.Complete(context.Background(), "s", "u", 10, 0)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}
