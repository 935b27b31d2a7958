// Package chihost connects the route codec to a chi router. It translates
// bracket-syntax patterns into chi's syntax, pulls raw parameter values out
// of a matched request, and hands decoded, typed parameters to handlers.
package chihost

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/saferoute-dev/saferoute/pkg/params"
	"github.com/saferoute-dev/saferoute/pkg/routepath"
	"github.com/saferoute-dev/saferoute/pkg/routeurl"
	"github.com/saferoute-dev/saferoute/pkg/segment"
)

// ChiPattern converts a bracket-syntax route pattern into chi's syntax:
// [id] becomes {id}, and a catch-all or optional catch-all becomes the
// trailing wildcard "*". Segments after a catch-all are unreachable and are
// dropped, matching the catch-all contract.
func ChiPattern(pattern string) string {
	var parts []string
	for _, sg := range segment.ClassifyPattern(pattern) {
		switch sg.Kind {
		case segment.Static:
			parts = append(parts, sg.Name)
		case segment.Dynamic:
			parts = append(parts, "{"+sg.Name+"}")
		case segment.CatchAll, segment.OptionalCatchAll:
			parts = append(parts, "*")
			return "/" + strings.Join(parts, "/")
		}
	}
	return "/" + strings.Join(parts, "/")
}

// RawRouteParams extracts the raw, still percent-encoded parameter values
// for pattern from a request matched by chi. Catch-all values are split on
// "/" into a string slice; an empty wildcard leaves the key absent.
func RawRouteParams(r *http.Request, pattern string) map[string]any {
	raw := make(map[string]any)
	for _, sg := range segment.ClassifyPattern(pattern) {
		switch sg.Kind {
		case segment.Dynamic:
			if v := chi.URLParam(r, sg.Name); v != "" {
				raw[sg.Name] = v
			}
		case segment.CatchAll, segment.OptionalCatchAll:
			if rest := strings.Trim(chi.URLParam(r, "*"), "/"); rest != "" {
				raw[sg.Name] = strings.Split(rest, "/")
			}
			return raw
		}
	}
	return raw
}

// Params returns the decoded route parameters for a matched request.
func Params(r *http.Request, pattern string) map[string]any {
	return routeurl.ParseRouteParams(pattern, RawRouteParams(r, pattern))
}

// Query returns the decoded query parameters for a request.
func Query(r *http.Request) map[string]any {
	return routeurl.ParseQuery(r.URL.Query())
}

// Handler adapts a typed handler function. Route and query parameters are
// decoded, merged (route params win on collision) and bound onto P; a bind
// or validation failure answers 400 before the handler runs.
func Handler[P any](pattern string, fn func(http.ResponseWriter, *http.Request, P)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		merged := Params(r, pattern)
		for k, v := range Query(r) {
			if _, ok := merged[k]; !ok {
				merged[k] = v
			}
		}

		p, err := params.Parse[P](merged)
		if err != nil {
			http.Error(w, "invalid parameters: "+err.Error(), http.StatusBadRequest)
			return
		}
		fn(w, r, p)
	}
}

// Host is an http.Handler that serves bracket-syntax routes on a chi mux
// with path canonicalization in front.
type Host struct {
	mux    chi.Router
	logger *slog.Logger
}

// Option configures a Host.
type Option func(*Host)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(h *Host) {
		h.logger = logger
	}
}

// New creates a Host with canonicalization middleware installed.
func New(opts ...Option) *Host {
	h := &Host{
		mux:    chi.NewRouter(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.mux.Use(h.canonicalize)
	return h
}

// ServeHTTP implements http.Handler.
func (h *Host) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// Use appends middleware to the underlying mux. Must be called before any
// route is registered, per chi's rules.
func (h *Host) Use(mw ...func(http.Handler) http.Handler) {
	h.mux.Use(mw...)
}

// Method registers a handler for an HTTP method and a bracket-syntax
// pattern. An optional catch-all registers its base path too, so both
// "/docs" and "/docs/intro" reach the handler.
func (h *Host) Method(method, pattern string, handler http.Handler) {
	h.mux.Method(method, ChiPattern(pattern), handler)

	if base, ok := optionalBase(pattern); ok {
		h.mux.Method(method, base, handler)
	}
}

// Get registers a GET handler for a bracket-syntax pattern.
func (h *Host) Get(pattern string, handler http.HandlerFunc) {
	h.Method(http.MethodGet, pattern, handler)
}

// Router exposes the underlying chi router for advanced configuration.
func (h *Host) Router() chi.Router {
	return h.mux
}

// optionalBase returns the chi pattern for an optional catch-all route with
// its wildcard elided, and whether the pattern had one.
func optionalBase(pattern string) (string, bool) {
	segs := segment.ClassifyPattern(pattern)
	var parts []string
	for _, sg := range segs {
		if sg.Kind == segment.OptionalCatchAll {
			return "/" + strings.Join(parts, "/"), true
		}
		switch sg.Kind {
		case segment.Static:
			parts = append(parts, sg.Name)
		case segment.Dynamic:
			parts = append(parts, "{"+sg.Name+"}")
		case segment.CatchAll:
			return "", false
		}
	}
	return "", false
}

// canonicalize rejects malformed paths and redirects non-canonical ones,
// so handlers and the decoders only ever see normalized input.
func (h *Host) canonicalize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		result, err := routepath.Canonicalize(r.URL.EscapedPath())
		if err != nil {
			h.logger.Warn("rejected path", "path", r.URL.EscapedPath(), "error", err)
			http.Error(w, "invalid path", http.StatusBadRequest)
			return
		}

		if result.Changed {
			target := result.Path
			if r.URL.RawQuery != "" {
				target += "?" + r.URL.RawQuery
			}
			h.logger.Debug("canonicalize redirect", "from", r.URL.EscapedPath(), "to", result.Path)
			http.Redirect(w, r, target, http.StatusMovedPermanently)
			return
		}

		next.ServeHTTP(w, r)
	})
}
