package routeurl

import (
	"strings"

	"github.com/saferoute-dev/saferoute/pkg/paramcodec"
)

// Undefined marks a parameter as deliberately unset. A query key whose value
// is Undefined is omitted from the query string entirely, and a route param
// set to Undefined is treated as absent. nil is different: it encodes as the
// JSON literal "null".
var Undefined any = undefinedValue{}

type undefinedValue struct{}

func (undefinedValue) String() string { return "undefined" }

// Query is an ordered set of search parameters. Keys are emitted in
// insertion order; Set on an existing key overwrites the value in place.
//
//	q := routeurl.NewQuery().Set("tab", "settings").Set("page", 2)
type Query struct {
	keys   []string
	values map[string]any
}

// NewQuery returns an empty query parameter set.
func NewQuery() *Query {
	return &Query{values: make(map[string]any)}
}

// Set adds or replaces a key and returns the Query for chaining.
func (q *Query) Set(key string, value any) *Query {
	if _, ok := q.values[key]; !ok {
		q.keys = append(q.keys, key)
	}
	q.values[key] = value
	return q
}

// Get returns the value for key and whether it was set.
func (q *Query) Get(key string) (any, bool) {
	v, ok := q.values[key]
	return v, ok
}

// Len returns the number of keys, including Undefined-valued ones.
func (q *Query) Len() int {
	return len(q.keys)
}

// Encode builds the query string without the leading "?". Keys whose value
// is Undefined are omitted; if every key is omitted the result is empty.
// Values are encoded with paramcodec.Encode, so an unencodable value
// surfaces as ErrInvalidValue.
func (q *Query) Encode() (string, error) {
	if q == nil {
		return "", nil
	}

	var b strings.Builder
	for _, key := range q.keys {
		value := q.values[key]
		if value == Undefined {
			continue
		}
		token, err := paramcodec.Encode(value)
		if err != nil {
			return "", err
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(token)
	}
	return b.String(), nil
}
