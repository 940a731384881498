package dispatch

import (
	"context"
	"net/http"
)

// Service is a request-to-response unit. Services are unconditionally
// ready: Call never blocks on admission, only on the work itself, and
// cancellation flows through ctx. Implementations must be safe for
// concurrent use — a Route and its clones may be driven by many requests
// at once.
type Service interface {
	Call(ctx context.Context, r *http.Request) (*Response, error)
}

// ServiceFunc adapts a function to the Service interface.
type ServiceFunc func(ctx context.Context, r *http.Request) (*Response, error)

// Call invokes the function.
func (f ServiceFunc) Call(ctx context.Context, r *http.Request) (*Response, error) {
	return f(ctx, r)
}

// Cloner is optionally implemented by services that need per-handle
// state. Services that omit it are shared between route clones and own
// their internal synchronization.
type Cloner interface {
	CloneService() Service
}

// Route is a type-erased, independently cloneable handle over a Service.
// Once constructed the concrete type is not recoverable; a Route can only
// be invoked. Route itself implements Service, so routes nest inside
// other routes — that symmetry is what makes layering possible.
type Route struct {
	inner Service
}

// NewRoute wraps svc in a Route.
func NewRoute(svc Service) Route {
	if svc == nil {
		panic("dispatch: nil service")
	}
	return Route{inner: svc}
}

// Invoke accepts the request and returns the future representing the
// in-flight call. Invoke never blocks: nothing runs until the future is
// awaited.
func (rt Route) Invoke(r *http.Request) *RouteFuture {
	return newRouteFuture(rt.inner, r)
}

// Call implements Service by driving a fresh future to completion.
func (rt Route) Call(ctx context.Context, r *http.Request) (*Response, error) {
	return rt.Invoke(r).Await(ctx)
}

// Clone returns an independent handle. Cloning is O(1): services that
// implement Cloner get a fresh inner service, all others are shared.
// Either way, clones never observe each other's in-flight state — that
// lives in the RouteFuture, one per invocation.
func (rt Route) Clone() Route {
	if c, ok := rt.inner.(Cloner); ok {
		return Route{inner: c.CloneService()}
	}
	return Route{inner: rt.inner}
}

// Layer wraps the route in a cross-cutting service, producing a new
// route with rt as the inner service.
func (rt Route) Layer(l Layer) Route {
	return NewRoute(l(rt))
}

// ServeHTTP adapts the route to net/http. Service errors surface as 500s.
func (rt Route) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	res, err := rt.Invoke(r).Await(r.Context())
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	//nolint:errcheck,gosec // best-effort after WriteHeader
	res.Write(w)
}
