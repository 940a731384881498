package dispatch

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"gopkg.in/yaml.v3"
)

// RouteInfo describes a registered route.
type RouteInfo struct {
	Pattern string   `json:"pattern" yaml:"pattern"`
	Methods []string `json:"methods" yaml:"methods"`
}

// Routes returns the registered routes in registration order.
func (r *Router) Routes() []RouteInfo {
	r.mu.Lock()
	defer r.mu.Unlock()

	infos := make([]RouteInfo, 0, len(r.routes))
	for _, pr := range r.routes {
		infos = append(infos, RouteInfo{
			Pattern: pr.pattern,
			Methods: pr.methods.Methods(),
		})
	}
	return infos
}

// ServeRoutes registers a GET route at the given pattern that serves the
// route table, as YAML when the Accept header asks for it and JSON
// otherwise.
func (r *Router) ServeRoutes(pattern string) {
	r.Route(pattern, NewMethodRoute().Get(ServiceFunc(
		func(_ context.Context, req *http.Request) (*Response, error) {
			if strings.Contains(req.Header.Get("Accept"), "yaml") {
				var buf bytes.Buffer
				if err := yaml.NewEncoder(&buf).Encode(r.Routes()); err != nil {
					return nil, err
				}
				res := NewResponse(http.StatusOK)
				res.Header.Set("Content-Type", "application/yaml")
				res.Body = BytesBody(buf.Bytes())
				return res, nil
			}
			return JSON(http.StatusOK, r.Routes()), nil
		},
	)))
}

// WriteRoutes writes the route table as YAML to w.
func (r *Router) WriteRoutes(w io.Writer) error {
	return yaml.NewEncoder(w).Encode(r.Routes())
}
