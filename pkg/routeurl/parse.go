package routeurl

import (
	"net/url"
	"strings"

	"github.com/saferoute-dev/saferoute/pkg/paramcodec"
	"github.com/saferoute-dev/saferoute/pkg/segment"
)

// ParseRouteParams reconstructs a typed parameter map from the raw route
// values delivered by the host routing layer. Raw values are percent-encoded
// strings or string slices, keyed by parameter name.
//
// Scalar dynamic params decode to a single value. Catch-all params always
// decode to a []any sequence: a raw slice decodes element-wise, a raw single
// value is wrapped in a one-element sequence. Absent keys are left out of
// the result, which is the common case for optional catch-alls. On a name
// collision the catch-all entry wins.
//
// ParseRouteParams never fails; undecodable tokens degrade to raw strings.
func ParseRouteParams(pattern string, raw map[string]any) map[string]any {
	result := make(map[string]any)
	segs := segment.ClassifyPattern(pattern)

	for _, sg := range segs {
		if sg.Kind != segment.Dynamic {
			continue
		}
		if value, ok := raw[sg.Name]; ok {
			result[sg.Name] = decodeRaw(value)
		}
	}

	for _, sg := range segs {
		if !sg.IsCatchAll() {
			continue
		}
		if value, ok := raw[sg.Name]; ok {
			result[sg.Name] = decodeSequence(value)
		}
	}

	return result
}

// ParseQuery decodes query values into a typed parameter map. Query params
// are free-form: no route pattern is consulted. A multi-valued key decodes
// element-wise into a []any sequence, a single-valued key to a scalar.
//
// url.Values are already percent-decoded by net/url, so only the JSON
// coercion step is applied here.
func ParseQuery(values url.Values) map[string]any {
	result := make(map[string]any, len(values))
	for key, vals := range values {
		switch len(vals) {
		case 0:
			// A bare key with no value contributes nothing.
		case 1:
			result[key] = paramcodec.Coerce(vals[0])
		default:
			out := make([]any, len(vals))
			for i, v := range vals {
				out[i] = paramcodec.Coerce(v)
			}
			result[key] = out
		}
	}
	return result
}

// ParseQueryString decodes a raw query string (without the leading "?").
// Pairs are split before any percent-decoding so each value token reaches
// the codec intact. Decoding never fails; malformed pairs are skipped.
func ParseQueryString(rawQuery string) map[string]any {
	raw := make(map[string]any)
	var order []string

	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		if decoded, err := url.QueryUnescape(key); err == nil {
			key = decoded
		}
		switch existing := raw[key].(type) {
		case nil:
			raw[key] = value
			order = append(order, key)
		case string:
			raw[key] = []string{existing, value}
		case []string:
			raw[key] = append(existing, value)
		}
	}

	result := make(map[string]any, len(order))
	for _, key := range order {
		result[key] = decodeRaw(raw[key])
	}
	return result
}

// decodeRaw decodes a raw scalar-or-sequence value in place.
func decodeRaw(value any) any {
	switch t := value.(type) {
	case string:
		return paramcodec.Decode(t)
	case []string:
		return decodeStrings(t)
	default:
		return value
	}
}

// decodeSequence decodes a raw value into a catch-all sequence.
func decodeSequence(value any) []any {
	switch t := value.(type) {
	case string:
		return []any{paramcodec.Decode(t)}
	case []string:
		return decodeStrings(t)
	default:
		return []any{value}
	}
}

func decodeStrings(vals []string) []any {
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = paramcodec.Decode(v)
	}
	return out
}
