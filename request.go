package sidemail

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Request performs an authenticated call to path, e.g. "email/send", and decodes
// the JSON response into v. An empty method defaults to POST. body is sent as JSON
// when not nil. Use it for endpoints without a typed helper.
func (c *Client) Request(ctx context.Context, method, path string, body, v any) error {
	if method == "" {
		method = http.MethodPost
	}

	req, err := c.newRequest(ctx, method, path, nil, body)
	if err != nil {
		return err
	}

	return c.doJSON(req, v)
}

// newRequest creates a new HTTP request.
func (c *Client) newRequest(
	ctx context.Context,
	method, path string,
	params url.Values,
	body any,
) (*http.Request, error) {
	u, err := url.Parse(c.URL(path))
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	if len(params) > 0 {
		q := u.Query()
		for k, vs := range params {
			q[k] = vs
		}
		u.RawQuery = q.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	return req, nil
}

// doJSON executes the request and decodes the JSON response into v.
func (c *Client) doJSON(req *http.Request, v any) error {
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if v == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	err = json.NewDecoder(resp.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		// empty body, e.g. 204
		return nil
	}
	if err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// do executes the request and converts non-2xx responses into [*Error].
// The caller must close the body of a returned response.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	start := time.Now()
	logger := c.logger.With(
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.DebugContext(req.Context(), "sidemail request failed",
			slog.Duration("duration", time.Since(start)),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("send request: %w", err)
	}

	logger.DebugContext(req.Context(), "sidemail request",
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, decodeError(resp)
	}

	return resp, nil
}

// decodeError builds an [*Error] from a failed response.
// Bodies that are not JSON still produce an error carrying the status.
func decodeError(resp *http.Response) error {
	apiErr := &Error{HTTPStatus: resp.StatusCode}

	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if len(data) > 0 {
		_ = json.Unmarshal(data, apiErr)
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}

	return apiErr
}
