package dispatch

import (
	"context"
	"net/http"
)

// BodyLimit returns a layer that limits the maximum request body size.
// A declared Content-Length over the limit is refused up front with 413;
// otherwise the body reader is capped, so an extractor that hits the
// limit fails with a read error.
func BodyLimit(maxBytes int64) Layer {
	return func(next Service) Service {
		return ServiceFunc(func(ctx context.Context, r *http.Request) (*Response, error) {
			if r.ContentLength > maxBytes {
				return NewResponse(http.StatusRequestEntityTooLarge), nil
			}
			if r.Body != nil {
				r.Body = http.MaxBytesReader(nil, r.Body, maxBytes)
			}
			return next.Call(ctx, r)
		})
	}
}
