package dispatch

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Logger returns a layer that logs each dispatch using the provided
// slog.Logger.
func Logger(logger *slog.Logger) Layer {
	return func(next Service) Service {
		return ServiceFunc(func(ctx context.Context, r *http.Request) (*Response, error) {
			start := time.Now()
			res, err := next.Call(ctx, r)

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Duration("latency", time.Since(start)),
				slog.String("remote", r.RemoteAddr),
			}
			if id := GetRequestID(ctx); id != "" {
				attrs = append(attrs, slog.String("request_id", id))
			}

			if err != nil {
				attrs = append(attrs, slog.Any("error", err))
				logger.LogAttrs(ctx, slog.LevelError, "dispatch", attrs...)
				return nil, err
			}

			attrs = append(attrs, slog.Int("status", res.Status))
			logger.LogAttrs(ctx, slog.LevelInfo, "dispatch", attrs...)
			return res, nil
		})
	}
}
