// Package routepath normalizes and splits raw request paths before they are
// matched against route patterns or handed to the parameter decoders.
package routepath

import (
	"errors"
	"net/url"
	"strings"
)

// Canonicalization errors. All of them indicate input that must be rejected
// rather than normalized.
var (
	ErrInvalidPath          = errors.New("invalid path")
	ErrBackslashInPath      = errors.New("path contains backslash")
	ErrNullByteInPath       = errors.New("path contains null byte")
	ErrInvalidPercentEscape = errors.New("invalid percent escape sequence")
	ErrPathEscapesRoot      = errors.New("path escapes root via ..")
)

// Canonical is the result of canonicalizing a raw path.
type Canonical struct {
	// Path is the normalized path without the query string.
	Path string

	// Query is the query string without the leading "?", preserved verbatim.
	Query string

	// Changed reports whether normalization modified the path.
	Changed bool
}

// Canonicalize normalizes a raw URL path:
//
//   - adds a leading slash and removes a trailing one (except for root)
//   - collapses repeated slashes
//   - removes "." segments and resolves ".." segments
//
// Paths containing a backslash, a NUL byte (literal or encoded), an invalid
// percent escape, or a ".." that would climb above root are rejected. A
// query string may be appended to the input; it is split off untouched.
func Canonicalize(input string) (Canonical, error) {
	if input == "" {
		return Canonical{Path: "/", Changed: true}, nil
	}

	path, query, _ := strings.Cut(input, "?")

	if strings.Contains(path, "\\") {
		return Canonical{}, ErrBackslashInPath
	}
	if strings.Contains(path, "\x00") || strings.Contains(strings.ToUpper(path), "%00") {
		return Canonical{}, ErrNullByteInPath
	}
	if strings.Contains(path, "%") {
		if err := checkPercentEscapes(path); err != nil {
			return Canonical{}, err
		}
	}

	original := path

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}

	var kept []string
	for _, seg := range strings.Split(path, "/") {
		switch seg {
		case "", ".":
			continue
		case "..":
			if len(kept) == 0 {
				return Canonical{}, ErrPathEscapesRoot
			}
			kept = kept[:len(kept)-1]
		default:
			kept = append(kept, seg)
		}
	}

	path = "/" + strings.Join(kept, "/")
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	return Canonical{
		Path:    path,
		Query:   query,
		Changed: path != original,
	}, nil
}

// ValidateRelative canonicalizes a navigation target and rejects anything
// that is not a same-origin relative path. Absolute URLs and protocol
// relative ("//...") inputs are refused to close the open-redirect hole.
// The query string, if any, is re-attached to the result.
func ValidateRelative(path string) (string, error) {
	if strings.HasPrefix(path, "http://") ||
		strings.HasPrefix(path, "https://") ||
		strings.HasPrefix(path, "//") {
		return "", ErrInvalidPath
	}
	if !strings.HasPrefix(path, "/") {
		return "", ErrInvalidPath
	}

	result, err := Canonicalize(path)
	if err != nil {
		return "", err
	}
	if result.Query != "" {
		return result.Path + "?" + result.Query, nil
	}
	return result.Path, nil
}

// SplitPathAndQuery splits a raw target into path and query components.
// The query is returned without the leading "?".
func SplitPathAndQuery(input string) (path, query string) {
	path, query, _ = strings.Cut(input, "?")
	return path, query
}

// DecodeSegments percent-decodes every segment of a canonical path.
func DecodeSegments(path string) ([]string, error) {
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return nil, nil
	}

	segments := strings.Split(path, "/")
	result := make([]string, 0, len(segments))
	for _, seg := range segments {
		decoded, err := url.PathUnescape(seg)
		if err != nil {
			return nil, ErrInvalidPercentEscape
		}
		result = append(result, decoded)
	}
	return result, nil
}

// checkPercentEscapes verifies every "%" begins a two-hex-digit escape.
func checkPercentEscapes(path string) error {
	for i := 0; i < len(path); {
		if path[i] != '%' {
			i++
			continue
		}
		if i+2 >= len(path) || !isHexDigit(path[i+1]) || !isHexDigit(path[i+2]) {
			return ErrInvalidPercentEscape
		}
		i += 3
	}
	return nil
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
