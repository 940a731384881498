package dispatch

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// Body is a response payload. SizeHint reports the exact byte length of
// the payload when it is known up front; streaming bodies report unknown.
type Body interface {
	io.Reader
	SizeHint() (size int64, exact bool)
}

type bytesBody struct {
	*bytes.Reader
}

func (b *bytesBody) SizeHint() (int64, bool) { return b.Size(), true }

// BytesBody returns a Body backed by b with a known exact length.
func BytesBody(b []byte) Body {
	return &bytesBody{bytes.NewReader(b)}
}

type streamBody struct {
	r io.Reader
}

func (s streamBody) Read(p []byte) (int, error) { return s.r.Read(p) }

func (streamBody) SizeHint() (int64, bool) { return 0, false }

// StreamBody returns a Body read from r, with no length declared.
func StreamBody(r io.Reader) Body {
	return streamBody{r: r}
}

type emptyBody struct{}

func (emptyBody) Read([]byte) (int, error) { return 0, io.EOF }

func (emptyBody) SizeHint() (int64, bool) { return 0, true }

// EmptyBody returns a Body with no content and an exact length of zero.
func EmptyBody() Body { return emptyBody{} }

// Response is the canonical response envelope produced by handlers and
// consumed by the dispatch layer.
type Response struct {
	Status int
	Header http.Header
	Body   Body

	// normalized is set the first time the response passes through a
	// RouteFuture. Nested routes must not re-apply header normalization
	// or body stripping to the same response.
	normalized bool
}

// NewResponse returns a response with the given status and an empty body.
func NewResponse(status int) *Response {
	return &Response{
		Status: status,
		Header: make(http.Header),
		Body:   EmptyBody(),
	}
}

// Text returns a plain-text response.
func Text(status int, s string) *Response {
	res := NewResponse(status)
	res.Header.Set("Content-Type", "text/plain; charset=utf-8")
	res.Body = BytesBody([]byte(s))
	return res
}

// JSON returns a JSON response. A marshal failure becomes a 500 response,
// since handlers have no error channel of their own.
func JSON(status int, v any) *Response {
	b, err := json.Marshal(v)
	if err != nil {
		return Text(http.StatusInternalServerError, "encode response: "+err.Error())
	}
	res := NewResponse(status)
	res.Header.Set("Content-Type", "application/json")
	res.Body = BytesBody(b)
	return res
}

// Stream returns a response whose body is read from r as it is written
// out. No Content-Length is declared.
func Stream(status int, r io.Reader) *Response {
	res := NewResponse(status)
	res.Body = StreamBody(r)
	return res
}

// IntoResponse converts a handler-produced value into a Response:
// a *Response passes through, nil becomes 204, strings and byte slices
// become 200s, a Rejection keeps its status, any other error becomes a
// 500, and everything else is encoded as JSON.
func IntoResponse(v any) *Response {
	switch v := v.(type) {
	case *Response:
		return v
	case nil:
		return NewResponse(http.StatusNoContent)
	case string:
		return Text(http.StatusOK, v)
	case []byte:
		res := NewResponse(http.StatusOK)
		res.Header.Set("Content-Type", "application/octet-stream")
		res.Body = BytesBody(v)
		return res
	case error:
		var rej *Rejection
		if errors.As(v, &rej) {
			return NewResponse(rej.Status)
		}
		return Text(http.StatusInternalServerError, v.Error())
	default:
		return JSON(http.StatusOK, v)
	}
}

// Write writes the response to w: headers first, then status, then body.
func (res *Response) Write(w http.ResponseWriter) error {
	for k, vals := range res.Header {
		for _, v := range vals {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(res.Status)
	if res.Body == nil {
		return nil
	}
	_, err := io.Copy(w, res.Body)
	return err
}
