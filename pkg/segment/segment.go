// Package segment implements the route pattern segment grammar.
//
// A route pattern is a "/"-delimited sequence of segments. Each segment is
// one of four kinds:
//
//	about        static literal
//	[id]         dynamic parameter
//	[...slug]    catch-all parameter (one or more trailing segments)
//	[[...slug]]  optional catch-all parameter (zero or more trailing segments)
package segment

import "strings"

// Kind identifies how a pattern segment binds parameters.
type Kind int

const (
	// Static matches its literal text and binds nothing.
	Static Kind = iota

	// Dynamic binds exactly one path segment ([id]).
	Dynamic

	// CatchAll binds the rest of the path ([...slug]).
	CatchAll

	// OptionalCatchAll binds the rest of the path, possibly empty ([[...slug]]).
	OptionalCatchAll
)

// String returns the kind name for logs and CLI output.
func (k Kind) String() string {
	switch k {
	case Static:
		return "static"
	case Dynamic:
		return "dynamic"
	case CatchAll:
		return "catchAll"
	case OptionalCatchAll:
		return "optionalCatchAll"
	default:
		return "unknown"
	}
}

// Segment is one classified element of a route pattern.
// For Static segments Name holds the literal text; for the other kinds it
// holds the parameter name with the bracket delimiters stripped.
type Segment struct {
	Kind Kind
	Name string
}

// IsCatchAll reports whether the segment consumes the rest of the path.
func (s Segment) IsCatchAll() bool {
	return s.Kind == CatchAll || s.Kind == OptionalCatchAll
}

// Classify parses a single path segment. Rules are checked in precedence
// order: optional catch-all, catch-all, dynamic, static. Every string
// classifies unambiguously; there are no error cases.
func Classify(seg string) Segment {
	switch {
	case strings.HasPrefix(seg, "[[") && strings.HasSuffix(seg, "]]") && strings.Contains(seg, "..."):
		name := strings.TrimSuffix(strings.TrimPrefix(seg, "[["), "]]")
		return Segment{Kind: OptionalCatchAll, Name: strings.TrimPrefix(name, "...")}

	case strings.HasPrefix(seg, "[") && strings.HasSuffix(seg, "]") && strings.Contains(seg, "..."):
		name := strings.TrimSuffix(strings.TrimPrefix(seg, "["), "]")
		return Segment{Kind: CatchAll, Name: strings.TrimPrefix(name, "...")}

	case strings.HasPrefix(seg, "[") && strings.HasSuffix(seg, "]"):
		return Segment{Kind: Dynamic, Name: strings.TrimSuffix(strings.TrimPrefix(seg, "["), "]")}

	default:
		return Segment{Kind: Static, Name: seg}
	}
}

// Split splits a route pattern into its raw segments.
// Leading and trailing slashes are ignored; "/" yields nil.
func Split(pattern string) []string {
	pattern = strings.Trim(pattern, "/")
	if pattern == "" {
		return nil
	}
	return strings.Split(pattern, "/")
}

// ClassifyPattern splits a pattern and classifies every segment.
func ClassifyPattern(pattern string) []Segment {
	raw := Split(pattern)
	if raw == nil {
		return nil
	}
	segs := make([]Segment, len(raw))
	for i, s := range raw {
		segs[i] = Classify(s)
	}
	return segs
}
