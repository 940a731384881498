package dispatch

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// Timeout returns a layer that bounds the inner call with a deadline.
// If the service does not complete within the duration, a 503 Service
// Unavailable response is returned.
func Timeout(d time.Duration) Layer {
	return func(next Service) Service {
		return ServiceFunc(func(ctx context.Context, r *http.Request) (*Response, error) {
			ctx, cancel := context.WithTimeout(ctx, d)
			defer cancel()

			res, err := next.Call(ctx, r)
			if err != nil && errors.Is(err, context.DeadlineExceeded) {
				return NewResponse(http.StatusServiceUnavailable), nil
			}
			return res, err
		})
	}
}
