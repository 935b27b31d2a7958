package params

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

type showParams struct {
	ProductID int      `param:"productID"`
	Tab       string   `param:"tab"`
	Exact     bool     `param:"exact"`
	Ratio     float64  `param:"ratio"`
	Options   []string `param:"options"`
	Ignored   string
}

func TestBind(t *testing.T) {
	src := map[string]any{
		"productID": float64(23),
		"tab":       "reviews",
		"exact":     true,
		"ratio":     1.5,
		"options":   []any{"deployments", float64(2)},
		"Ignored":   "nope",
	}

	var p showParams
	if err := Bind(src, &p); err != nil {
		t.Fatalf("Bind unexpected error: %v", err)
	}

	if p.ProductID != 23 {
		t.Errorf("ProductID = %d, want 23", p.ProductID)
	}
	if p.Tab != "reviews" {
		t.Errorf("Tab = %q, want %q", p.Tab, "reviews")
	}
	if !p.Exact {
		t.Error("Exact = false, want true")
	}
	if p.Ratio != 1.5 {
		t.Errorf("Ratio = %v, want 1.5", p.Ratio)
	}
	if want := []string{"deployments", "2"}; !reflect.DeepEqual(p.Options, want) {
		t.Errorf("Options = %v, want %v", p.Options, want)
	}
	if p.Ignored != "" {
		t.Errorf("untagged field was set to %q", p.Ignored)
	}
}

func TestBindConversions(t *testing.T) {
	tests := []struct {
		name string
		src  map[string]any
		want showParams
	}{
		{
			name: "string to int",
			src:  map[string]any{"productID": "42"},
			want: showParams{ProductID: 42},
		},
		{
			name: "number to string field",
			src:  map[string]any{"tab": float64(7)},
			want: showParams{Tab: "7"},
		},
		{
			name: "bool to string field",
			src:  map[string]any{"tab": true},
			want: showParams{Tab: "true"},
		},
		{
			name: "string to bool",
			src:  map[string]any{"exact": "true"},
			want: showParams{Exact: true},
		},
		{
			name: "scalar to slice field",
			src:  map[string]any{"options": "solo"},
			want: showParams{Options: []string{"solo"}},
		},
		{
			name: "string slice source",
			src:  map[string]any{"options": []string{"a", "b"}},
			want: showParams{Options: []string{"a", "b"}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var p showParams
			if err := Bind(tc.src, &p); err != nil {
				t.Fatalf("Bind unexpected error: %v", err)
			}
			if !reflect.DeepEqual(p, tc.want) {
				t.Errorf("Bind result = %+v, want %+v", p, tc.want)
			}
		})
	}
}

func TestBindErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     map[string]any
		wantMsg string
	}{
		{
			name:    "fractional value into int",
			src:     map[string]any{"productID": 1.5},
			wantMsg: "not an integer",
		},
		{
			name:    "non-numeric string into int",
			src:     map[string]any{"productID": "abc"},
			wantMsg: "invalid integer",
		},
		{
			name:    "object into bool",
			src:     map[string]any{"exact": map[string]any{}},
			wantMsg: "cannot convert",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var p showParams
			err := Bind(tc.src, &p)
			if err == nil || !strings.Contains(err.Error(), tc.wantMsg) {
				t.Errorf("Bind error = %v, want containing %q", err, tc.wantMsg)
			}
		})
	}
}

func TestBindNestedObject(t *testing.T) {
	type filters struct {
		Category string `json:"category"`
		Limit    int    `json:"limit"`
	}
	type queryParams struct {
		Filters filters `param:"filters"`
	}

	src := map[string]any{
		"filters": map[string]any{"category": "tech", "limit": float64(10)},
	}

	var p queryParams
	if err := Bind(src, &p); err != nil {
		t.Fatalf("Bind unexpected error: %v", err)
	}
	if p.Filters.Category != "tech" || p.Filters.Limit != 10 {
		t.Errorf("Filters = %+v, want {tech 10}", p.Filters)
	}
}

func TestBindTargetShape(t *testing.T) {
	if err := Bind(map[string]any{}, nil); err != nil {
		t.Errorf("Bind(nil target) = %v, want nil", err)
	}

	var notAPointer showParams
	if err := Bind(map[string]any{}, notAPointer); err == nil {
		t.Error("Bind(non-pointer) should fail")
	}

	s := "x"
	if err := Bind(map[string]any{}, &s); err == nil {
		t.Error("Bind(pointer to non-struct) should fail")
	}
}

var errTooSmall = errors.New("productID must be positive")

type validatedParams struct {
	ProductID int `param:"productID"`
}

func (p *validatedParams) Validate() error {
	if p.ProductID <= 0 {
		return errTooSmall
	}
	return nil
}

func TestBindCallsValidator(t *testing.T) {
	var p validatedParams
	err := Bind(map[string]any{"productID": float64(-1)}, &p)
	if !errors.Is(err, errTooSmall) {
		t.Errorf("Bind validator error = %v, want errTooSmall", err)
	}

	if err := Bind(map[string]any{"productID": float64(5)}, &p); err != nil {
		t.Errorf("Bind valid params error = %v, want nil", err)
	}
}

func TestParse(t *testing.T) {
	p, err := Parse[showParams](map[string]any{"productID": float64(9), "tab": "specs"})
	if err != nil {
		t.Fatalf("Parse unexpected error: %v", err)
	}
	if p.ProductID != 9 || p.Tab != "specs" {
		t.Errorf("Parse = %+v, want {9 specs}", p)
	}
}
