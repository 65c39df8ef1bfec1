package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nhle/shift-handover/internal/gateway"
)

// Client is a thin HTTP client for a Supabase-style backend: PostgREST
// under /rest/v1 and object storage under /storage/v1. It sends the public
// API key both as the apikey header and as a Bearer token. Requests are
// never retried.
type Client struct {
	baseURL    string
	apiKey     string
	bucket     string
	httpClient *http.Client
}

// NewClient creates a client for the project at baseURL
// (e.g. https://xyz.supabase.co) storing blobs in bucket. A zero timeout
// disables the per-request deadline.
func NewClient(baseURL, apiKey, bucket string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		bucket:  bucket,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// request describes a single call. Body is sent as-is; use jsonBody to
// encode a value.
type request struct {
	method      string
	path        string
	body        []byte
	contentType string
	header      map[string]string
}

// errorResponse covers both PostgREST ({"message","details","hint"}) and
// storage ({"error","message","statusCode"}) error bodies.
type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func jsonBody(v interface{}) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshaling request body: %w", err)
	}
	return data, nil
}

// do builds and executes the request, maps error statuses onto the gateway
// error types, and returns the raw response body.
func (c *Client) do(ctx context.Context, r request) ([]byte, error) {
	var bodyReader io.Reader
	if r.body != nil {
		bodyReader = bytes.NewReader(r.body)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if r.body != nil {
		ct := r.contentType
		if ct == "" {
			ct = "application/json"
		}
		req.Header.Set("Content-Type", ct)
	}
	for k, v := range r.header {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request %s %s: %w", r.method, r.path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, &gateway.AuthError{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("check the API key for %s: %s", c.baseURL, errorMessage(respBody)),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &gateway.APIError{
			Status:  resp.StatusCode,
			Method:  r.method,
			Path:    r.path,
			Message: errorMessage(respBody),
		}
	}

	return respBody, nil
}

// doJSON performs the request and unmarshals a JSON response into result.
// A nil result or an empty body skips decoding.
func (c *Client) doJSON(ctx context.Context, r request, result interface{}) error {
	respBody, err := c.do(ctx, r)
	if err != nil {
		return err
	}
	if result == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("unmarshaling response from %s %s: %w", r.method, r.path, err)
	}
	return nil
}

func errorMessage(body []byte) string {
	var e errorResponse
	if json.Unmarshal(body, &e) == nil {
		parts := make([]string, 0, 3)
		for _, s := range []string{e.Message, e.Error, e.Details} {
			if s != "" {
				parts = append(parts, s)
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, "; ")
		}
	}
	return strings.TrimSpace(string(body))
}
