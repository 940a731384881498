package dispatch_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/dispatch"
)

func TestLogger_logs_status_and_path(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	svc := dispatch.Chain(textService("ok"), dispatch.Logger(logger))

	_, err := svc.Call(context.Background(), httptest.NewRequest(http.MethodGet, "/logged", nil))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"path":"/logged"`)
	assert.Contains(t, out, `"method":"GET"`)
	assert.Contains(t, out, `"status":200`)
}

func TestLogger_logs_errors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	svc := dispatch.Chain(dispatch.ServiceFunc(
		func(_ context.Context, _ *http.Request) (*dispatch.Response, error) {
			return nil, assert.AnError
		},
	), dispatch.Logger(logger))

	_, err := svc.Call(context.Background(), httptest.NewRequest(http.MethodGet, "/err", nil))
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, `"level":"ERROR"`)
	assert.Contains(t, out, `"error"`)
}

func TestLogger_includes_request_id(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	// RequestID outermost so that the logger sees the ID in context.
	svc := dispatch.Chain(textService("ok"),
		dispatch.RequestID(dispatch.RequestIDConfig{Generator: func() string { return "rid-1" }}),
		dispatch.Logger(logger),
	)

	_, err := svc.Call(context.Background(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `"request_id":"rid-1"`)
}
