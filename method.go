package dispatch

import (
	"context"
	"net/http"
	"strings"
)

// MethodRoute dispatches a request to a per-method Route. It fills the
// gaps a single Route cannot: HEAD falls back to the GET route with the
// response body stripped, and an unmatched method gets 405 with an Allow
// header listing the registered methods.
//
// Registration is not synchronized; register every method before the
// first request, the way routes are registered on a Router.
type MethodRoute struct {
	routes map[string]Route
	order  []string
}

// NewMethodRoute returns an empty method table.
func NewMethodRoute() *MethodRoute {
	return &MethodRoute{routes: make(map[string]Route)}
}

// Handle registers svc for the given method, replacing any previous
// registration. It returns m for chaining.
func (m *MethodRoute) Handle(method string, svc Service) *MethodRoute {
	method = strings.ToUpper(method)
	if _, ok := m.routes[method]; !ok {
		m.order = append(m.order, method)
	}
	m.routes[method] = NewRoute(svc)
	return m
}

// Get registers svc for GET. HEAD requests fall back to this route with
// the response body stripped, unless a HEAD route is registered.
func (m *MethodRoute) Get(svc Service) *MethodRoute { return m.Handle(http.MethodGet, svc) }

// Post registers svc for POST.
func (m *MethodRoute) Post(svc Service) *MethodRoute { return m.Handle(http.MethodPost, svc) }

// Put registers svc for PUT.
func (m *MethodRoute) Put(svc Service) *MethodRoute { return m.Handle(http.MethodPut, svc) }

// Patch registers svc for PATCH.
func (m *MethodRoute) Patch(svc Service) *MethodRoute { return m.Handle(http.MethodPatch, svc) }

// Delete registers svc for DELETE.
func (m *MethodRoute) Delete(svc Service) *MethodRoute { return m.Handle(http.MethodDelete, svc) }

// Options registers svc for OPTIONS.
func (m *MethodRoute) Options(svc Service) *MethodRoute { return m.Handle(http.MethodOptions, svc) }

// Invoke selects the route for the request method and returns its future.
func (m *MethodRoute) Invoke(r *http.Request) *RouteFuture {
	if rt, ok := m.routes[r.Method]; ok {
		return rt.Invoke(r)
	}

	if r.Method == http.MethodHead {
		if rt, ok := m.routes[http.MethodGet]; ok {
			return rt.Invoke(r).StripBody(true)
		}
	}

	return newResponseFuture(NewResponse(http.StatusMethodNotAllowed)).
		AllowHeader(m.allowHeader())
}

// Call implements Service, so a method table can be mounted on a Route
// and wrapped in layers like any other service.
func (m *MethodRoute) Call(ctx context.Context, r *http.Request) (*Response, error) {
	return m.Invoke(r).Await(ctx)
}

// ServeHTTP adapts the method table to net/http.
func (m *MethodRoute) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	res, err := m.Invoke(r).Await(r.Context())
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	//nolint:errcheck,gosec // best-effort after WriteHeader
	res.Write(w)
}

// Methods returns the registered methods in registration order, with
// HEAD appended after GET when it is implied rather than registered.
func (m *MethodRoute) Methods() []string {
	out := make([]string, 0, len(m.order)+1)
	for _, method := range m.order {
		out = append(out, method)
		if method == http.MethodGet {
			if _, ok := m.routes[http.MethodHead]; !ok {
				out = append(out, http.MethodHead)
			}
		}
	}
	return out
}

func (m *MethodRoute) allowHeader() string {
	return strings.Join(m.Methods(), ", ")
}
