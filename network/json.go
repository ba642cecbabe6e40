package network

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/aiko-cli/aiko/constant"
)

// Header is applied to an outgoing request before it is sent.
type Header func(*http.Request)

// WithHeader sets a single request header.
func WithHeader(name, value string) Header {
	return func(r *http.Request) { r.Header.Set(name, value) }
}

// WithBearer sets the Authorization header when token is non-empty.
func WithBearer(token string) Header {
	return func(r *http.Request) {
		if token != "" {
			r.Header.Set("Authorization", "Bearer "+token)
		}
	}
}

// GetJSON issues a GET to url and decodes the JSON body into T.
func GetJSON[T any](ctx context.Context, client *http.Client, url string, headers ...Header) (T, error) {
	return DoJSON[T](ctx, client, http.MethodGet, url, nil, headers...)
}

// PostJSON encodes body as JSON, POSTs it to url and decodes the response into T.
func PostJSON[T any](ctx context.Context, client *http.Client, url string, body any, headers ...Header) (T, error) {
	var zero T

	payload, err := json.Marshal(body)
	if err != nil {
		return zero, fmt.Errorf("encode request: %w", err)
	}

	headers = append([]Header{WithHeader("Content-Type", "application/json")}, headers...)
	return DoJSON[T](ctx, client, http.MethodPost, url, bytes.NewReader(payload), headers...)
}

// DoJSON sends the request and decodes the response.
// Non-2xx responses become *StatusError, an empty body becomes ErrEmptyBody.
func DoJSON[T any](ctx context.Context, client *http.Client, method, url string, body io.Reader, headers ...Header) (T, error) {
	var zero T

	data, err := Do(ctx, client, method, url, body, headers...)
	if err != nil {
		return zero, err
	}

	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return zero, fmt.Errorf("decode response: %w", err)
	}
	return out, nil
}

// Do sends the request and returns the raw body of a 2xx response.
func Do(ctx context.Context, client *http.Client, method, url string, body io.Reader, headers ...Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", constant.UserAgent)
	req.Header.Set("Accept", "application/json")
	for _, h := range headers {
		h(req)
	}

	res, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil, &StatusError{Code: res.StatusCode, URL: url}
	}

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyBody
	}

	return data, nil
}
