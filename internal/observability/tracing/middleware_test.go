package tracing

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMiddleware_PassesThrough(t *testing.T) {
	called := false
	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/article/2026-01-10", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !called {
		t.Fatal("wrapped handler was not invoked")
	}
	if rec.Code != http.StatusTeapot {
		t.Errorf("expected status %d, got %d", http.StatusTeapot, rec.Code)
	}
}

func TestMiddleware_SetsTraceHeader(t *testing.T) {
	shutdown, err := InitProvider()
	if err != nil {
		t.Fatalf("init provider: %v", err)
	}
	defer func() { _ = shutdown(t.Context()) }()

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Header().Get("X-Trace-Id") == "" {
		t.Error("expected X-Trace-Id header on response")
	}
}
