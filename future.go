package dispatch

import (
	"context"
	"net/http"
	"strconv"
)

// RouteFuture is the single-use computation produced by invoking a Route.
// Awaiting drives the wrapped service to completion and then applies
// one-time response normalization: Allow header injection, Content-Length
// computation, and optional body stripping.
//
// A future holds all per-invocation state. The Route that produced it may
// be invoked again concurrently; each invocation gets its own future.
type RouteFuture struct {
	// Exactly one of svc+req (pending call) or res (completed response)
	// is set at construction.
	svc Service
	req *http.Request
	res *Response

	done        bool
	stripBody   bool
	allowHeader string
}

func newRouteFuture(svc Service, req *http.Request) *RouteFuture {
	return &RouteFuture{svc: svc, req: req}
}

func newResponseFuture(res *Response) *RouteFuture {
	return &RouteFuture{res: res}
}

// StripBody configures the future to discard the response body after
// normalization, for HEAD-style responses. Headers computed from the
// original body, including Content-Length, are kept.
func (f *RouteFuture) StripBody(strip bool) *RouteFuture {
	f.stripBody = strip
	return f
}

// AllowHeader configures an Allow value to inject when the response does
// not already carry one. The value must be a valid header value: anything
// else panics, since it indicates a misconfigured router rather than bad
// request input.
func (f *RouteFuture) AllowHeader(v string) *RouteFuture {
	if !validHeaderValue(v) {
		panic("dispatch: invalid Allow header value")
	}
	f.allowHeader = v
	return f
}

// Await drives the future to completion. It must be called exactly once:
// any outcome is terminal, and a second call panics. Service errors
// propagate unchanged and are not normalized; only success responses are.
func (f *RouteFuture) Await(ctx context.Context) (*Response, error) {
	if f.done {
		panic("dispatch: route future awaited after completion")
	}
	f.done = true

	res := f.res
	f.res = nil
	if res == nil {
		var err error
		res, err = f.svc.Call(ctx, f.req)
		if err != nil {
			return nil, err
		}
	}

	// A response produced by a nested route has already been normalized;
	// touching it again would double-apply headers and stripping.
	if res.normalized {
		return res, nil
	}
	res.normalized = true

	setAllowHeader(res, f.allowHeader)

	// Content-Length must be computed before the body is stripped.
	setContentLength(res)

	if f.stripBody {
		res.Body = EmptyBody()
	}

	return res, nil
}

func setAllowHeader(res *Response, allow string) {
	if allow == "" || res.Header.Get("Allow") != "" {
		return
	}
	res.Header.Set("Allow", allow)
}

func setContentLength(res *Response) {
	if res.Header.Get("Content-Length") != "" || res.Body == nil {
		return
	}

	size, exact := res.Body.SizeHint()
	if !exact {
		return
	}

	v := "0"
	if size != 0 {
		v = strconv.FormatInt(size, 10)
	}
	res.Header.Set("Content-Length", v)
}

// validHeaderValue reports whether s is a legal HTTP header value:
// visible ASCII, space, and horizontal tab.
func validHeaderValue(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 0x20 && c != '\t') || c == 0x7f {
			return false
		}
	}
	return true
}
