package dispatch

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type requestIDKey struct{}

// RequestIDConfig configures the RequestID layer.
type RequestIDConfig struct {
	Header    string        // default: "X-Request-ID"
	Generator func() string // default: uuid.NewString
}

// RequestID returns a layer that assigns a unique ID to each request.
// The ID is read from the request header (if present) or generated.
// It is stored in the context and set on the response header.
func RequestID(cfg ...RequestIDConfig) Layer {
	c := RequestIDConfig{
		Header:    "X-Request-ID",
		Generator: uuid.NewString,
	}
	if len(cfg) > 0 {
		if cfg[0].Header != "" {
			c.Header = cfg[0].Header
		}
		if cfg[0].Generator != nil {
			c.Generator = cfg[0].Generator
		}
	}

	return func(next Service) Service {
		return ServiceFunc(func(ctx context.Context, r *http.Request) (*Response, error) {
			id := r.Header.Get(c.Header)
			if id == "" {
				id = c.Generator()
			}

			ctx = context.WithValue(ctx, requestIDKey{}, id)

			res, err := next.Call(ctx, r)
			if err != nil {
				return nil, err
			}
			if res.Header.Get(c.Header) == "" {
				res.Header.Set(c.Header, id)
			}
			return res, nil
		})
	}
}

// GetRequestID extracts the request ID from the context.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}
