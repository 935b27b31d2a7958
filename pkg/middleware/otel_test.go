package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel/attribute"
)

// The default tracer provider is a no-op, so these tests exercise the
// middleware's control flow rather than exported spans.

func TestTracingMiddleware_PassesThrough(t *testing.T) {
	called := false
	handler := Tracing()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/product/23", nil))

	if !called {
		t.Error("wrapped handler was not called")
	}
	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTeapot)
	}
}

func TestTracingMiddleware_FilterSkips(t *testing.T) {
	filtered := Tracing(WithRequestFilter(func(r *http.Request) bool {
		return r.URL.Path != "/healthz"
	}))

	called := false
	handler := filtered(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if !called {
		t.Error("filtered-out request must still reach the handler")
	}
}

func TestTracingMiddleware_AttributeExtractor(t *testing.T) {
	extracted := false
	mw := Tracing(WithAttributeExtractor(func(r *http.Request) []attribute.KeyValue {
		extracted = true
		return []attribute.KeyValue{attribute.String("tenant", "acme")}
	}))

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if !extracted {
		t.Error("attribute extractor was not called")
	}
}
