package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// objectPath escapes each segment of a storage path but keeps the slashes.
func objectPath(p string) string {
	segs := strings.Split(p, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return strings.Join(segs, "/")
}

func (c *Client) objectURL(prefix, p string) string {
	return "/storage/v1/object/" + prefix + url.PathEscape(c.bucket) + "/" + objectPath(p)
}

// Upload stores data at path. Existing objects are not overwritten.
func (c *Client) Upload(ctx context.Context, path string, data []byte, contentType string) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if data == nil {
		data = []byte{}
	}
	_, err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        c.objectURL("", path),
		body:        data,
		contentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("uploading %s: %w", path, err)
	}
	return nil
}

// Remove deletes the given objects in one call.
func (c *Client) Remove(ctx context.Context, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	body, err := jsonBody(map[string][]string{"prefixes": paths})
	if err != nil {
		return err
	}
	_, err = c.do(ctx, request{
		method: http.MethodDelete,
		path:   "/storage/v1/object/" + url.PathEscape(c.bucket),
		body:   body,
	})
	if err != nil {
		return fmt.Errorf("removing %s: %w", strings.Join(paths, ", "), err)
	}
	return nil
}

// CreateSignedURL returns an absolute, time-limited download link.
func (c *Client) CreateSignedURL(ctx context.Context, path string, ttl time.Duration) (string, error) {
	body, err := jsonBody(map[string]int{"expiresIn": int(ttl / time.Second)})
	if err != nil {
		return "", err
	}
	var resp struct {
		SignedURL string `json:"signedURL"`
	}
	err = c.doJSON(ctx, request{
		method: http.MethodPost,
		path:   c.objectURL("sign/", path),
		body:   body,
	}, &resp)
	if err != nil {
		return "", fmt.Errorf("signing %s: %w", path, err)
	}
	if resp.SignedURL == "" {
		return "", fmt.Errorf("signing %s: empty signed url", path)
	}
	if strings.HasPrefix(resp.SignedURL, "http://") || strings.HasPrefix(resp.SignedURL, "https://") {
		return resp.SignedURL, nil
	}
	return c.baseURL + "/storage/v1" + resp.SignedURL, nil
}

// Download fetches the object bytes.
func (c *Client) Download(ctx context.Context, path string) ([]byte, error) {
	data, err := c.do(ctx, request{method: http.MethodGet, path: c.objectURL("", path)})
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %w", path, err)
	}
	return data, nil
}
