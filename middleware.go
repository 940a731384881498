package dispatch

import (
	"context"
	"log/slog"
	"net/http"
	"runtime/debug"
)

// Layer wraps a Service to add cross-cutting behavior. Layers compose by
// nesting: the outer layer sees the request first and the response last.
type Layer func(next Service) Service

// Chain applies layers to svc so that the first layer is outermost.
func Chain(svc Service, layers ...Layer) Service {
	for i := len(layers) - 1; i >= 0; i-- {
		svc = layers[i](svc)
	}
	return svc
}

// Recovery returns a layer that recovers from panics in the inner service
// and responds with 500.
func Recovery() Layer {
	return func(next Service) Service {
		return ServiceFunc(func(ctx context.Context, r *http.Request) (res *Response, err error) {
			defer func() {
				if rec := recover(); rec != nil {
					slog.Error("panic recovered",
						"panic", rec,
						"stack", string(debug.Stack()),
						"method", r.Method,
						"path", r.URL.Path,
					)
					res = NewResponse(http.StatusInternalServerError)
					err = nil
				}
			}()
			return next.Call(ctx, r)
		})
	}
}
