package dispatch_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/dispatch"
)

func TestPath_extracts_and_converts(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/items/123", nil)
	req.SetPathValue("id", "123")

	id, err := dispatch.Path[int]("id")(req)
	require.NoError(t, err)
	assert.Equal(t, 123, id)
}

func TestPath_rejects_bad_conversion(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/items/abc", nil)
	req.SetPathValue("id", "abc")

	_, err := dispatch.Path[int]("id")(req)
	require.Error(t, err)

	var rej *dispatch.Rejection
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, http.StatusNotFound, rej.Status)
}

func TestPath_rejects_missing_value(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/items", nil)

	_, err := dispatch.Path[string]("id")(req)
	require.Error(t, err)
}

func TestQuery_extracts_and_converts(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/?a=bar&n=7", nil)

	a, err := dispatch.Query[string]("a")(req)
	require.NoError(t, err)
	assert.Equal(t, "bar", a)

	n, err := dispatch.Query[int]("n")(req)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	_, err = dispatch.Query[string]("missing")(req)
	require.Error(t, err)
}

func TestHeader_extracts(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Tenant", "acme")

	tenant, err := dispatch.Header[string]("X-Tenant")(req)
	require.NoError(t, err)
	assert.Equal(t, "acme", tenant)

	_, err = dispatch.Header[string]("X-Missing")(req)
	require.Error(t, err)
}

func TestParams_binds_tagged_fields(t *testing.T) {
	t.Parallel()

	type listReq struct {
		ID      int           `path:"id"`
		Role    string        `query:"role" default:"member"`
		Agent   string        `header:"User-Agent"`
		Session string        `cookie:"session"`
		Wait    time.Duration `query:"wait"`
	}

	req := httptest.NewRequest(http.MethodGet, "/users/42?wait=2s", nil)
	req.SetPathValue("id", "42")
	req.Header.Set("User-Agent", "test-agent")
	req.AddCookie(&http.Cookie{Name: "session", Value: "s3cret"})

	got, err := dispatch.Params[listReq]()(req)
	require.NoError(t, err)

	assert.Equal(t, 42, got.ID)
	assert.Equal(t, "member", got.Role, "default applies when the parameter is absent")
	assert.Equal(t, "test-agent", got.Agent)
	assert.Equal(t, "s3cret", got.Session)
	assert.Equal(t, 2*time.Second, got.Wait)
}

func TestParams_rejects_bad_conversion(t *testing.T) {
	t.Parallel()

	type req struct {
		N int `query:"n"`
	}

	r := httptest.NewRequest(http.MethodGet, "/?n=abc", nil)

	_, err := dispatch.Params[req]()(r)
	require.Error(t, err)

	var rej *dispatch.Rejection
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, http.StatusBadRequest, rej.Status)
}

func TestJSONBody_decodes(t *testing.T) {
	t.Parallel()

	type payload struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"alpha"}`))

	got, err := dispatch.JSONBody[payload]()(req)
	require.NoError(t, err)
	assert.Equal(t, "alpha", got.Name)
}

func TestJSONBody_restores_body_for_reattempts(t *testing.T) {
	t.Parallel()

	type wrong struct {
		N int `json:"name"`
	}
	type right struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"alpha"}`))

	_, err := dispatch.JSONBody[wrong]()(req)
	require.Error(t, err)

	// The failed attempt must not have consumed the body.
	got, err := dispatch.JSONBody[right]()(req)
	require.NoError(t, err)
	assert.Equal(t, "alpha", got.Name)
}

func TestJSONBody_rejects_empty_body(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/", nil)

	_, err := dispatch.JSONBody[map[string]any]()(req)
	require.Error(t, err)
}

func TestNone_always_succeeds(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, err := dispatch.None(req)
	require.NoError(t, err)
}

func TestReq_passes_request_through(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/raw", nil)

	got, err := dispatch.Req(req)
	require.NoError(t, err)
	assert.Same(t, req, got)
}

func TestReject_formats_reason(t *testing.T) {
	t.Parallel()

	rej := dispatch.Reject(http.StatusBadRequest, "query: %s", "oops")
	assert.Equal(t, "query: oops", rej.Error())
	assert.Equal(t, http.StatusBadRequest, rej.Status)
}
