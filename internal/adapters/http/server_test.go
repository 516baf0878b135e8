package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpAdapter "github.com/pagelift/pagelift/internal/adapters/http"
	"github.com/pagelift/pagelift/internal/logging"
	"github.com/pagelift/pagelift/pkg/adapters/memory"
	"github.com/pagelift/pagelift/pkg/ports"
)

func newTestServer(t *testing.T) (*httptest.Server, ports.PageStore) {
	t.Helper()
	store := memory.NewStore()
	handler := httpAdapter.NewHandler(store, logging.NewNop())
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, store
}

func postRender(t *testing.T, srv *httptest.Server, payload map[string]any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	resp, err := http.Post(srv.URL+"/render", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestRender_RoundTrip(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postRender(t, srv, map[string]any{
		"location": "/home",
		"html":     `<main id="content"><h1>Welcome</h1></main>`,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Rendered bool   `json:"rendered"`
		Location string `json:"location"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.True(t, result.Rendered)
	assert.Equal(t, "/home", result.Location)

	pageResp, err := http.Get(srv.URL + "/page?location=/home")
	require.NoError(t, err)
	defer pageResp.Body.Close()
	require.Equal(t, http.StatusOK, pageResp.StatusCode)

	var page ports.PageState
	require.NoError(t, json.NewDecoder(pageResp.Body).Decode(&page))
	assert.Equal(t, "/home", page.Location)
	assert.Contains(t, page.Body, "Welcome")
	assert.False(t, page.RenderedAt.IsZero())
}

func TestRender_PreservesPermanentElements(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postRender(t, srv, map[string]any{
		"location": "/cart",
		"html":     `<div id="cart-counter" data-permanent>3 items</div><p>first page</p>`,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The incoming counter says 0, but the live one must survive the swap.
	resp = postRender(t, srv, map[string]any{
		"location": "/cart",
		"html":     `<div id="cart-counter" data-permanent>0 items</div><p>second page</p>`,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	pageResp, err := http.Get(srv.URL + "/page?location=/cart")
	require.NoError(t, err)
	defer pageResp.Body.Close()

	var page ports.PageState
	require.NoError(t, json.NewDecoder(pageResp.Body).Decode(&page))
	assert.Contains(t, page.Body, "3 items")
	assert.NotContains(t, page.Body, "0 items")
	assert.Contains(t, page.Body, "second page")
	assert.NotContains(t, page.Body, "first page")
}

func TestRender_BadRequests(t *testing.T) {
	srv, _ := newTestServer(t)

	t.Run("invalid json", func(t *testing.T) {
		resp, err := http.Post(srv.URL+"/render", "application/json", strings.NewReader("{"))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("missing location", func(t *testing.T) {
		resp := postRender(t, srv, map[string]any{"html": "<p>x</p>"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("missing html", func(t *testing.T) {
		resp := postRender(t, srv, map[string]any{"location": "/x"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("mistyped options", func(t *testing.T) {
		resp := postRender(t, srv, map[string]any{
			"location": "/x",
			"html":     "<p>x</p>",
			"options":  map[string]any{"preview": "definitely"},
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestPageEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	t.Run("get unknown page", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/page?location=/nope")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("list and delete", func(t *testing.T) {
		postRender(t, srv, map[string]any{"location": "/a", "html": "<p>a</p>"})
		postRender(t, srv, map[string]any{"location": "/b", "html": "<p>b</p>"})

		listResp, err := http.Get(srv.URL + "/pages")
		require.NoError(t, err)
		defer listResp.Body.Close()

		var listing struct {
			Locations []string `json:"locations"`
		}
		require.NoError(t, json.NewDecoder(listResp.Body).Decode(&listing))
		assert.Contains(t, listing.Locations, "/a")
		assert.Contains(t, listing.Locations, "/b")

		req, err := http.NewRequest(http.MethodDelete, srv.URL+"/page?location=/a", nil)
		require.NoError(t, err)
		delResp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer delResp.Body.Close()
		assert.Equal(t, http.StatusNoContent, delResp.StatusCode)

		getResp, err := http.Get(srv.URL + "/page?location=/a")
		require.NoError(t, err)
		defer getResp.Body.Close()
		assert.Equal(t, http.StatusNotFound, getResp.StatusCode)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	postRender(t, srv, map[string]any{"location": "/m", "html": "<p>m</p>"})

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "pagelift_renders_total")
}
