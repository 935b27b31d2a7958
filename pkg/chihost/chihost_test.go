package chihost

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestChiPattern(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    string
	}{
		{name: "root", pattern: "/", want: "/"},
		{name: "static", pattern: "/about/team", want: "/about/team"},
		{name: "dynamic", pattern: "/product/[productID]", want: "/product/{productID}"},
		{name: "catch-all", pattern: "/dashboard/[...options]", want: "/dashboard/*"},
		{name: "optional catch-all", pattern: "/docs/[[...slug]]", want: "/docs/*"},
		{name: "segments after catch-all dropped", pattern: "/a/[...rest]/b", want: "/a/*"},
		{name: "mixed", pattern: "/users/[id]/files/[...path]", want: "/users/{id}/files/*"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ChiPattern(tc.pattern); got != tc.want {
				t.Errorf("ChiPattern(%q) = %q, want %q", tc.pattern, got, tc.want)
			}
		})
	}
}

func TestHostTypedHandler(t *testing.T) {
	type showParams struct {
		ProductID int    `param:"productID"`
		Tab       string `param:"tab"`
	}

	h := New()
	h.Get("/product/[productID]", Handler("/product/[productID]", func(w http.ResponseWriter, r *http.Request, p showParams) {
		fmt.Fprintf(w, "%d:%s", p.ProductID, p.Tab)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/product/23?tab=reviews", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Body.String(); got != "23:reviews" {
		t.Errorf("body = %q, want %q", got, "23:reviews")
	}
}

func TestHostTypedHandlerBadParams(t *testing.T) {
	type showParams struct {
		ProductID int `param:"productID"`
	}

	h := New()
	h.Get("/product/[productID]", Handler("/product/[productID]", func(w http.ResponseWriter, r *http.Request, p showParams) {
		t.Error("handler should not run on bind failure")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/product/notanumber", nil))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHostCatchAll(t *testing.T) {
	pattern := "/dashboard/[...options]"

	h := New()
	h.Get(pattern, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Params(r, pattern))
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard/deployments/2", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("response decode: %v", err)
	}
	want := map[string]any{"options": []any{"deployments", float64(2)}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("params = %#v, want %#v", got, want)
	}
}

func TestHostOptionalCatchAllBase(t *testing.T) {
	pattern := "/docs/[[...slug]]"

	h := New()
	h.Get(pattern, func(w http.ResponseWriter, r *http.Request) {
		params := Params(r, pattern)
		if _, ok := params["slug"]; ok {
			fmt.Fprint(w, "with-slug")
			return
		}
		fmt.Fprint(w, "no-slug")
	})

	t.Run("base path matches", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs", nil))
		if rec.Code != http.StatusOK || rec.Body.String() != "no-slug" {
			t.Errorf("GET /docs = %d %q, want 200 %q", rec.Code, rec.Body.String(), "no-slug")
		}
	})

	t.Run("nested path matches", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs/guide/setup", nil))
		if rec.Code != http.StatusOK || rec.Body.String() != "with-slug" {
			t.Errorf("GET /docs/guide/setup = %d %q, want 200 %q", rec.Code, rec.Body.String(), "with-slug")
		}
	})
}

func TestHostDecodesPercentEncodedParams(t *testing.T) {
	pattern := "/search/[term]"

	h := New()
	h.Get(pattern, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "%v", Params(r, pattern)["term"])
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/search/red%20shoes", nil))

	if got := rec.Body.String(); got != "red shoes" {
		t.Errorf("term = %q, want %q", got, "red shoes")
	}
}

func TestHostCanonicalizeRedirect(t *testing.T) {
	h := New()
	h.Get("/product/[productID]", func(w http.ResponseWriter, r *http.Request) {})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/product//23?tab=specs", nil))

	if rec.Code != http.StatusMovedPermanently {
		t.Fatalf("status = %d, want 301", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/product/23?tab=specs" {
		t.Errorf("Location = %q, want %q", got, "/product/23?tab=specs")
	}
}
