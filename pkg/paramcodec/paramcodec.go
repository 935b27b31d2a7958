// Package paramcodec encodes parameter values into URL-safe tokens and
// decodes URL tokens back into best-effort typed values.
//
// JSON is the single serialization format: numbers, booleans, null, arrays
// and objects are carried as their JSON text, percent-encoded. Plain strings
// are carried raw (no JSON quoting) so URLs stay readable. Decoding attempts
// a strict JSON parse and falls back to the raw string, which is how numeric
// and boolean literals are promoted to their native types without a type tag
// in the URL.
package paramcodec

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidValue is returned by Encode for values that cannot round-trip:
// the empty string, and values JSON cannot represent. It indicates a
// programming contract violation, not bad user input.
var ErrInvalidValue = errors.New("value cannot be encoded")

// Encode converts a single parameter value into a URL-safe token.
//
// Non-empty strings are percent-encoded verbatim. Everything else is JSON
// serialized and then percent-encoded, which yields canonical decimal text
// for numbers, "true"/"false" for booleans, and "null" for nil.
//
// The empty string is rejected: decoding treats an empty token differently,
// so callers must omit the key instead of encoding "".
func Encode(v any) (string, error) {
	if s, ok := v.(string); ok {
		if s == "" {
			return "", fmt.Errorf("%w: empty string", ErrInvalidValue)
		}
		return EscapeComponent(s), nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	return EscapeComponent(string(data)), nil
}

// Decode converts a URL token back into a typed value.
//
// The token is percent-decoded and then parsed as JSON; if the parse fails
// the decoded raw string is returned unchanged. Decode never fails: malformed
// JSON degrades to the literal string.
//
// Because decoding is JSON-first, the literals "true", "false", "null" and
// numeric text decode as their primitive types. A string parameter whose
// value happens to be "42" therefore comes back as the number 42; this
// ambiguity is inherent to the tagless format. "undefined" is not reserved
// and decodes as the literal string "undefined". Numbers decode as float64.
func Decode(token string) any {
	// PathUnescape, not QueryUnescape: a literal "+" in a token is data,
	// not a space. The encoder never emits "+".
	raw, err := url.PathUnescape(token)
	if err != nil {
		// Invalid percent escapes degrade to the token as given.
		raw = token
	}
	return Coerce(raw)
}

// Coerce applies the JSON-parse-or-fallback step to text that has already
// been percent-decoded, such as values taken from a url.Values map. Using
// Decode on such text would percent-decode a second time and corrupt
// literal "+" or "%XX" runs in string values.
func Coerce(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	return v
}

// EscapeComponent percent-encodes s as a URL component. Unlike
// url.QueryEscape it encodes spaces as %20, so the result is valid in both
// path segments and query values.
func EscapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
