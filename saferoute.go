// Package saferoute provides the public API for type-safe URL construction
// and parameter parsing over bracket-syntax route patterns.
//
// This is the recommended import for most applications:
//
//	import "github.com/saferoute-dev/saferoute"
//
// Usage:
//
//	path, err := saferoute.BuildPath("/product/[productID]",
//	    map[string]any{"productID": 23},
//	    saferoute.NewQuery().Set("tab", "reviews"))
//	// "/product/23?tab=reviews"
//
//	params := saferoute.ParseRouteParams("/dashboard/[...options]",
//	    map[string]any{"options": []string{"deployments", "2"}})
//	// map[options:[deployments 2]]
package saferoute

import (
	"net/url"

	"github.com/saferoute-dev/saferoute/pkg/paramcodec"
	"github.com/saferoute-dev/saferoute/pkg/routeurl"
	"github.com/saferoute-dev/saferoute/pkg/segment"
)

// =============================================================================
// Segment grammar (re-export from pkg/segment)
// =============================================================================

// Segment is one classified element of a route pattern.
type Segment = segment.Segment

// Kind identifies how a pattern segment binds parameters.
type Kind = segment.Kind

// Segment kinds.
const (
	Static           = segment.Static
	Dynamic          = segment.Dynamic
	CatchAll         = segment.CatchAll
	OptionalCatchAll = segment.OptionalCatchAll
)

// Classify parses a single path segment.
var Classify = segment.Classify

// ClassifyPattern splits a pattern and classifies every segment.
var ClassifyPattern = segment.ClassifyPattern

// =============================================================================
// Value codec (re-export from pkg/paramcodec)
// =============================================================================

// Encode converts a parameter value into a URL-safe token.
var Encode = paramcodec.Encode

// Decode converts a URL token back into a best-effort typed value.
var Decode = paramcodec.Decode

// ErrInvalidValue is returned by Encode for unencodable values.
var ErrInvalidValue = paramcodec.ErrInvalidValue

// =============================================================================
// Path building and parsing (re-export from pkg/routeurl)
// =============================================================================

// Query is an ordered set of search parameters.
type Query = routeurl.Query

// NewQuery returns an empty query parameter set.
var NewQuery = routeurl.NewQuery

// Undefined marks a parameter as deliberately unset; see routeurl.Undefined.
var Undefined = routeurl.Undefined

// ErrMissingRouteParam is returned by BuildPath when a required dynamic or
// catch-all key is absent.
var ErrMissingRouteParam = routeurl.ErrMissingRouteParam

// BuildPath fills a pattern's dynamic segments and appends a query string.
func BuildPath(pattern string, routeParams map[string]any, search *Query) (string, error) {
	return routeurl.BuildPath(pattern, routeParams, search)
}

// BuildPathMap is BuildPath with plain-map search params, emitted in sorted
// key order.
func BuildPathMap(pattern string, routeParams, searchParams map[string]any) (string, error) {
	return routeurl.BuildPathMap(pattern, routeParams, searchParams)
}

// ParseRouteParams reconstructs a typed parameter map from raw route values.
func ParseRouteParams(pattern string, raw map[string]any) map[string]any {
	return routeurl.ParseRouteParams(pattern, raw)
}

// ParseQuery decodes url.Values into a typed parameter map.
func ParseQuery(values url.Values) map[string]any {
	return routeurl.ParseQuery(values)
}

// ParseQueryString decodes a raw query string into a typed parameter map.
func ParseQueryString(rawQuery string) map[string]any {
	return routeurl.ParseQueryString(rawQuery)
}
