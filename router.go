package dispatch

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// Router maps path patterns to method tables on top of http.ServeMux.
// The mux performs path matching; the router owns layer application and
// dispatch. It implements http.Handler.
type Router struct {
	mux         *http.ServeMux
	layers      []Layer
	routes      []patternRoute
	notFound    Route
	hasNotFound bool

	mu sync.Mutex
}

type patternRoute struct {
	pattern string
	methods *MethodRoute
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithNotFound sets the service invoked when no pattern matches the
// request. It is wrapped in the router's layers like any route.
func WithNotFound(svc Service) RouterOption {
	return func(r *Router) {
		r.notFound = NewRoute(svc)
		r.hasNotFound = true
	}
}

// WithLogger adds a request-logging layer using the given slog.Logger.
func WithLogger(logger *slog.Logger) RouterOption {
	return func(r *Router) {
		r.layers = append(r.layers, Logger(logger))
	}
}

// New creates a new Router with the given options.
func New(opts ...RouterOption) *Router {
	r := &Router{
		mux: http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Use adds layers to the router. The first layer added is outermost.
// Layers apply to every route, including ones registered earlier.
func (r *Router) Use(layers ...Layer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.layers = append(r.layers, layers...)
}

// Route registers a method table under the given ServeMux pattern.
func (r *Router) Route(pattern string, m *MethodRoute) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rt := NewRoute(m)
	r.routes = append(r.routes, patternRoute{pattern: pattern, methods: m})
	r.mux.Handle(pattern, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		r.layered(rt).ServeHTTP(w, req)
	}))
}

// layered wraps rt in the router's current layers, first layer outermost.
func (r *Router) layered(rt Route) Route {
	r.mu.Lock()
	layers := r.layers
	r.mu.Unlock()

	for i := len(layers) - 1; i >= 0; i-- {
		rt = rt.Layer(layers[i])
	}
	return rt
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if r.hasNotFound {
		if _, pattern := r.mux.Handler(req); pattern == "" {
			r.layered(r.notFound).ServeHTTP(w, req)
			return
		}
	}
	r.mux.ServeHTTP(w, req)
}

// ListenAndServe starts an HTTP server on the given address.
// It blocks until the context is cancelled, then shuts down gracefully.
func (r *Router) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
