package smithy

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseUriPattern(t *testing.T) {
	cases := map[string]struct {
		Uri      string
		Segments []Segment
		Query    map[string]string
		Path     string
	}{
		"root": {
			Uri:  "/",
			Path: "/",
		},
		"labels": {
			Uri: "/cities/{cityId}/photo",
			Segments: []Segment{
				{Content: "cities"},
				{Content: "cityId", Label: true},
				{Content: "photo"},
			},
			Path: "/cities/{cityId}/photo",
		},
		"greedy": {
			Uri: "/files/{key+}",
			Segments: []Segment{
				{Content: "files"},
				{Content: "key", Label: true, Greedy: true},
			},
			Path: "/files/{key+}",
		},
		"query literals": {
			Uri:      "/cities?type=city&flag",
			Segments: []Segment{{Content: "cities"}},
			Query:    map[string]string{"type": "city", "flag": ""},
			Path:     "/cities",
		},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			pattern, err := ParseUriPattern(c.Uri)
			if err != nil {
				t.Fatalf("expect no error, got %v", err)
			}
			if diff := cmp.Diff(c.Segments, pattern.Segments); diff != "" {
				t.Errorf("segments mismatch:\n%s", diff)
			}
			query := map[string]string{}
			for _, k := range pattern.QueryLiterals.Keys() {
				query[k] = pattern.QueryLiterals.Get(k)
			}
			if c.Query == nil {
				c.Query = map[string]string{}
			}
			if diff := cmp.Diff(c.Query, query); diff != "" {
				t.Errorf("query mismatch:\n%s", diff)
			}
			if p := pattern.Path(); p != c.Path {
				t.Errorf("expect path %q, got %q", c.Path, p)
			}
			if s := pattern.String(); s != c.Uri && name != "query literals" {
				t.Errorf("expect %q, got %q", c.Uri, s)
			}
		})
	}
}

func TestParseUriPatternErrors(t *testing.T) {
	for _, uri := range []string{
		"cities",
		"/a/{b}/{b}",
		"/a/{}",
		"/a/x{b}",
		"/a/{b+}/{c+}",
		"/a?x=1&x=2",
	} {
		if _, err := ParseUriPattern(uri); err == nil {
			t.Errorf("expect error for %q", uri)
		}
	}
}
