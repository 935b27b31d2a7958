// Package routeurl builds concrete paths from bracket-syntax route patterns
// and reconstructs typed parameter maps from raw route and query values.
//
// Building is strict: a missing required parameter or an unencodable value
// is an error, because the caller is expected to know the route's shape.
// Parsing is best-effort and never fails: malformed tokens degrade to their
// raw string form, and structural mismatches are left for a downstream
// validation layer to reject.
//
// All functions are pure and safe for concurrent use.
package routeurl

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/saferoute-dev/saferoute/pkg/paramcodec"
	"github.com/saferoute-dev/saferoute/pkg/segment"
)

// ErrMissingRouteParam is returned by BuildPath when a dynamic or catch-all
// segment has no entry in the supplied route params. It indicates a mismatch
// between the pattern and the caller, not bad user input.
var ErrMissingRouteParam = errors.New("missing route parameter")

// ErrInvalidValue is the codec's encode error, re-exported for callers that
// only import this package.
var ErrInvalidValue = paramcodec.ErrInvalidValue

// BuildPath fills the pattern's dynamic segments from routeParams and
// appends the encoded query string, if any.
//
//	BuildPath("/product/[productID]", map[string]any{"productID": 23}, nil)
//	// "/product/23"
//
// Catch-all values may be slices; each element is encoded individually and
// joined with "/". An absent optional catch-all elides its segment, an
// absent required segment returns ErrMissingRouteParam. A route param set to
// Undefined counts as absent.
func BuildPath(pattern string, routeParams map[string]any, search *Query) (string, error) {
	segs := segment.ClassifyPattern(pattern)
	parts := make([]string, 0, len(segs))

	for _, sg := range segs {
		switch sg.Kind {
		case segment.Static:
			parts = append(parts, sg.Name)

		case segment.Dynamic:
			value, ok := lookup(routeParams, sg.Name)
			if !ok {
				return "", fmt.Errorf("%w: %q in pattern %q", ErrMissingRouteParam, sg.Name, pattern)
			}
			token, err := paramcodec.Encode(value)
			if err != nil {
				return "", fmt.Errorf("route param %q: %w", sg.Name, err)
			}
			parts = append(parts, token)

		case segment.CatchAll, segment.OptionalCatchAll:
			value, ok := lookup(routeParams, sg.Name)
			if !ok {
				if sg.Kind == segment.OptionalCatchAll {
					continue
				}
				return "", fmt.Errorf("%w: %q in pattern %q", ErrMissingRouteParam, sg.Name, pattern)
			}
			tokens, err := encodeCatchAll(value)
			if err != nil {
				return "", fmt.Errorf("route param %q: %w", sg.Name, err)
			}
			parts = append(parts, tokens...)
		}
	}

	path := "/" + strings.Join(parts, "/")

	if search != nil {
		qs, err := search.Encode()
		if err != nil {
			return "", err
		}
		if qs != "" {
			path += "?" + qs
		}
	}

	return path, nil
}

// BuildPathMap is BuildPath with plain-map search params. Go maps carry no
// insertion order, so keys are emitted sorted for deterministic output; use
// the Query type when order matters.
func BuildPathMap(pattern string, routeParams, searchParams map[string]any) (string, error) {
	var search *Query
	if searchParams != nil {
		keys := make([]string, 0, len(searchParams))
		for k := range searchParams {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		search = NewQuery()
		for _, k := range keys {
			search.Set(k, searchParams[k])
		}
	}
	return BuildPath(pattern, routeParams, search)
}

// lookup treats Undefined-valued keys as absent.
func lookup(params map[string]any, name string) (any, bool) {
	v, ok := params[name]
	if !ok || v == Undefined {
		return nil, false
	}
	return v, true
}

// encodeCatchAll encodes a catch-all value. Slices and arrays are encoded
// element-wise; any other value yields a single token.
func encodeCatchAll(value any) ([]string, error) {
	rv := reflect.ValueOf(value)
	if value == nil || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		token, err := paramcodec.Encode(value)
		if err != nil {
			return nil, err
		}
		return []string{token}, nil
	}

	tokens := make([]string, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		token, err := paramcodec.Encode(rv.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
	return tokens, nil
}
