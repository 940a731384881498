package dispatch_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/dispatch"
)

func echoPathService() dispatch.Service {
	return dispatch.ServiceFunc(func(_ context.Context, r *http.Request) (*dispatch.Response, error) {
		return dispatch.Text(http.StatusOK, r.URL.Path), nil
	})
}

func TestRoute_invoke(t *testing.T) {
	t.Parallel()

	rt := dispatch.NewRoute(echoPathService())

	req := httptest.NewRequest(http.MethodGet, "/hello", nil)
	res, err := rt.Invoke(req).Await(context.Background())
	require.NoError(t, err)

	body, err := bodyString(res)
	require.NoError(t, err)
	assert.Equal(t, "/hello", body)
}

func TestRoute_erases_concrete_type(t *testing.T) {
	t.Parallel()

	// Heterogeneous services stored and invoked uniformly.
	routes := []dispatch.Route{
		dispatch.NewRoute(echoPathService()),
		dispatch.NewRoute(dispatch.Handle(dispatch.None, func(_ context.Context, _ dispatch.Void) *dispatch.Response {
			return dispatch.Text(http.StatusOK, "typed")
		})),
		dispatch.NewRoute(dispatch.NewMethodRoute().Get(echoPathService())),
	}

	for _, rt := range routes {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		res, err := rt.Invoke(req).Await(context.Background())
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.Status)
	}
}

func TestRoute_clones_do_not_share_response_state(t *testing.T) {
	t.Parallel()

	rt := dispatch.NewRoute(echoPathService())
	a := rt.Clone()
	b := rt.Clone()

	const n = 50

	var wg sync.WaitGroup
	results := make([]string, 2*n)

	for i := range n {
		wg.Add(2)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/a/%d", i), nil)
			res, err := a.Invoke(req).Await(context.Background())
			assert.NoError(t, err)
			body, err := bodyString(res)
			assert.NoError(t, err)
			results[2*i] = body
		}()
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/b/%d", i), nil)
			res, err := b.Invoke(req).Await(context.Background())
			assert.NoError(t, err)
			body, err := bodyString(res)
			assert.NoError(t, err)
			results[2*i+1] = body
		}()
	}
	wg.Wait()

	for i := range n {
		assert.Equal(t, fmt.Sprintf("/a/%d", i), results[2*i])
		assert.Equal(t, fmt.Sprintf("/b/%d", i), results[2*i+1])
	}
}

type countingService struct {
	clones *int
}

func (s countingService) Call(_ context.Context, _ *http.Request) (*dispatch.Response, error) {
	return dispatch.NewResponse(http.StatusOK), nil
}

func (s countingService) CloneService() dispatch.Service {
	*s.clones++
	return s
}

func TestRoute_clone_uses_cloner(t *testing.T) {
	t.Parallel()

	clones := 0
	rt := dispatch.NewRoute(countingService{clones: &clones})

	rt.Clone()
	rt.Clone()
	assert.Equal(t, 2, clones)
}

func TestRoute_error_propagates_unchanged(t *testing.T) {
	t.Parallel()

	wantErr := fmt.Errorf("boom")
	rt := dispatch.NewRoute(dispatch.ServiceFunc(func(_ context.Context, _ *http.Request) (*dispatch.Response, error) {
		return nil, wantErr
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	res, err := rt.Invoke(req).Await(context.Background())
	require.ErrorIs(t, err, wantErr)
	assert.Nil(t, res)
}

func TestRoute_serve_http(t *testing.T) {
	t.Parallel()

	rt := dispatch.NewRoute(echoPathService())

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/served", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/served", rec.Body.String())
	assert.Equal(t, "7", rec.Header().Get("Content-Length"))
}

func TestRoute_nil_service_panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		dispatch.NewRoute(nil)
	})
}
