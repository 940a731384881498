package dispatch

import (
	"context"
	"net/http"
	"strconv"
	"strings"
)

// CORSConfig configures the CORS layer.
type CORSConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposeHeaders    []string
	AllowCredentials bool
	MaxAge           int // seconds
}

// CORS returns a layer that handles Cross-Origin Resource Sharing.
// If no config is provided, permissive defaults are used. Preflight
// OPTIONS requests are answered directly with 204.
func CORS(cfg ...CORSConfig) Layer {
	c := CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "Authorization"},
	}
	if len(cfg) > 0 {
		c = cfg[0]
	}

	origins := strings.Join(c.AllowOrigins, ", ")
	methods := strings.Join(c.AllowMethods, ", ")
	headers := strings.Join(c.AllowHeaders, ", ")
	expose := strings.Join(c.ExposeHeaders, ", ")
	maxAge := ""
	if c.MaxAge > 0 {
		maxAge = strconv.Itoa(c.MaxAge)
	}

	apply := func(h http.Header) {
		h.Set("Access-Control-Allow-Origin", origins)
		h.Set("Access-Control-Allow-Methods", methods)
		h.Set("Access-Control-Allow-Headers", headers)

		if expose != "" {
			h.Set("Access-Control-Expose-Headers", expose)
		}
		if c.AllowCredentials {
			h.Set("Access-Control-Allow-Credentials", "true")
		}
		if maxAge != "" {
			h.Set("Access-Control-Max-Age", maxAge)
		}

		h.Set("Vary", "Origin")
	}

	return func(next Service) Service {
		return ServiceFunc(func(ctx context.Context, r *http.Request) (*Response, error) {
			if r.Method == http.MethodOptions {
				res := NewResponse(http.StatusNoContent)
				apply(res.Header)
				return res, nil
			}

			res, err := next.Call(ctx, r)
			if err != nil {
				return nil, err
			}
			apply(res.Header)
			return res, nil
		})
	}
}
