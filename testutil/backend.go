package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/mediapulse/pulse/config"
)

// FakeBackend is a programmable in-process MediaPulse backend for tests.
// Routes are registered per method+path; unregistered paths answer 404 with
// a FastAPI-style error body. Every request is counted so tests can assert
// on fetch behavior.
type FakeBackend struct {
	server *httptest.Server

	mu       sync.Mutex
	routes   map[string]http.HandlerFunc
	requests map[string]int
}

// NewFakeBackend starts a fake backend and registers cleanup on t.
func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()

	f := &FakeBackend{
		routes:   make(map[string]http.HandlerFunc),
		requests: make(map[string]int),
	}
	f.server = httptest.NewServer(http.HandlerFunc(f.dispatch))
	t.Cleanup(f.server.Close)
	return f
}

// URL returns the backend base URL.
func (f *FakeBackend) URL() string {
	return f.server.URL
}

// Config returns a backend config section pointing at the fake.
func (f *FakeBackend) Config() config.BackendConfig {
	return config.BackendConfig{URL: f.server.URL}
}

// JSON registers a route that answers with a fixed JSON body.
func (f *FakeBackend) JSON(method, path string, body string) {
	f.HandleFunc(method, path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	})
}

// Status registers a route that answers with a status code and a detail
// message, the way the backend reports errors.
func (f *FakeBackend) Status(method, path string, status int, detail string) {
	f.HandleFunc(method, path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(`{"detail": "` + detail + `"}`))
	})
}

// HandleFunc registers an arbitrary handler for method+path.
func (f *FakeBackend) HandleFunc(method, path string, fn http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[method+" "+path] = fn
}

// Requests returns how many times method+path was called.
func (f *FakeBackend) Requests(method, path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[method+" "+path]
}

// TotalRequests returns the number of requests across all routes.
func (f *FakeBackend) TotalRequests() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.requests {
		total += n
	}
	return total
}

func (f *FakeBackend) dispatch(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path

	f.mu.Lock()
	f.requests[key]++
	handler, ok := f.routes[key]
	f.mu.Unlock()

	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "Not Found"}`))
		return
	}
	handler(w, r)
}
