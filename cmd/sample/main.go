// Command sample demonstrates the github.com/bjaus/dispatch engine
// with a small item API.
//
// Run:
//
//	go run ./cmd/sample
//
// Then explore:
//
//	GET  http://localhost:8080/routes            — route table (JSON or YAML by Accept)
//	GET  http://localhost:8080/items             — list items
//	POST http://localhost:8080/items             — create item (JSON body)
//	GET  http://localhost:8080/items/123         — item by numeric ID
//	GET  http://localhost:8080/items/abc?a=bar   — falls back to the query arm
//	GET  http://localhost:8080/items/abc         — falls back to the fixed arm
//	HEAD http://localhost:8080/items             — headers only, body stripped
//	PUT  http://localhost:8080/items             — 405 with Allow header
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"sync"

	"github.com/bjaus/dispatch"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})))

	r := newRouter()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	slog.Info("starting server", "addr", ":8080")

	if err := r.ListenAndServe(ctx, ":8080"); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server error", "err", err)
	}

	slog.Info("server stopped")
}

func newRouter() *dispatch.Router {
	r := dispatch.New(
		dispatch.WithLogger(slog.Default()),
		dispatch.WithNotFound(dispatch.ServiceFunc(handleNotFound)),
	)

	r.Use(dispatch.Recovery())
	r.Use(dispatch.RequestID())
	r.Use(dispatch.RateLimit(dispatch.RateLimitConfig{Rate: 50, Burst: 100}))

	r.ServeRoutes("/routes")

	r.Route("/items", dispatch.NewMethodRoute().
		Get(dispatch.Handle(dispatch.None, handleList)).
		Post(dispatch.Handle(dispatch.JSONBody[CreateItem](), handleCreate)))

	// The /items/{id} route offers three extraction strategies for the
	// same path, tried in order: numeric ID, "a" query parameter, fixed
	// fallback.
	byID := dispatch.Handle(dispatch.Path[int]("id"), handleByID)
	byQuery := dispatch.Handle(dispatch.Query[string]("a"), handleByQuery)
	fallback := dispatch.Handle(dispatch.None, handleFallback)

	r.Route("/items/{id}", dispatch.NewMethodRoute().
		Get(dispatch.Or(dispatch.Or(byID, byQuery), fallback)))

	return r
}

// ---------------------------------------------------------------------------
// In-memory store
// ---------------------------------------------------------------------------

var store = &itemStore{
	items: map[int]Item{
		1: {ID: 1, Name: "alpha"},
		2: {ID: 2, Name: "beta"},
	},
	nextID: 3,
}

type itemStore struct {
	mu     sync.RWMutex
	items  map[int]Item
	nextID int
}

func (s *itemStore) list() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Item, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *itemStore) get(id int) (Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, ok := s.items[id]
	return it, ok
}

func (s *itemStore) create(name string) Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	it := Item{ID: s.nextID, Name: name}
	s.nextID++
	s.items[it.ID] = it
	return it
}

// ---------------------------------------------------------------------------
// Domain types
// ---------------------------------------------------------------------------

// Item is the sample domain entity.
type Item struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CreateItem is the POST /items request body.
type CreateItem struct {
	Name string `json:"name"`
}

// ---------------------------------------------------------------------------
// Handlers
// ---------------------------------------------------------------------------

func handleList(_ context.Context, _ dispatch.Void) *dispatch.Response {
	return dispatch.JSON(http.StatusOK, store.list())
}

func handleCreate(_ context.Context, body CreateItem) *dispatch.Response {
	if body.Name == "" {
		return dispatch.Text(http.StatusBadRequest, "name is required")
	}
	return dispatch.JSON(http.StatusCreated, store.create(body.Name))
}

func handleByID(_ context.Context, id int) *dispatch.Response {
	it, ok := store.get(id)
	if !ok {
		return dispatch.Text(http.StatusNotFound, fmt.Sprintf("item %d not found", id))
	}
	return dispatch.JSON(http.StatusOK, it)
}

func handleByQuery(_ context.Context, a string) *dispatch.Response {
	return dispatch.Text(http.StatusOK, a)
}

func handleFallback(_ context.Context, _ dispatch.Void) *dispatch.Response {
	return dispatch.Text(http.StatusOK, "fallback")
}

func handleNotFound(_ context.Context, r *http.Request) (*dispatch.Response, error) {
	return dispatch.Text(http.StatusNotFound, "no route for "+r.URL.Path), nil
}
