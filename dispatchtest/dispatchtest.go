// Package dispatchtest provides HTTP test helpers for the dispatch package.
package dispatchtest

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// Client wraps an httptest.Server for convenient dispatch testing.
type Client struct {
	Server *httptest.Server
}

// NewClient creates a test client serving h. Routes, method tables, and
// routers all implement http.Handler.
func NewClient(t testing.TB, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return &Client{Server: srv}
}

// Response holds a received response with its body drained.
type Response struct {
	Status int
	Header http.Header
	Body   string
	Raw    *http.Response
}

// Get sends a GET request.
func (c *Client) Get(t testing.TB, path string) *Response {
	t.Helper()
	return c.Do(t, http.MethodGet, path, nil)
}

// Head sends a HEAD request.
func (c *Client) Head(t testing.TB, path string) *Response {
	t.Helper()
	return c.Do(t, http.MethodHead, path, nil)
}

// Post sends a POST request.
func (c *Client) Post(t testing.TB, path string, body io.Reader) *Response {
	t.Helper()
	return c.Do(t, http.MethodPost, path, body)
}

// Do sends a request with the given method and body.
func (c *Client) Do(t testing.TB, method, path string, body io.Reader) *Response {
	t.Helper()

	req, err := http.NewRequestWithContext(context.Background(), method, c.Server.URL+path, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}

	resp, err := c.Server.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			t.Errorf("close response body: %v", err)
		}
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}

	return &Response{
		Status: resp.StatusCode,
		Header: resp.Header,
		Body:   string(b),
		Raw:    resp,
	}
}
