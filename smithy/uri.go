/*
Copyright 2023 Lee R. Boynton

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package smithy

import (
	"fmt"
	"strings"
)

// Segment is one "/"-separated piece of a URI pattern path.
type Segment struct {
	Content string
	Label   bool
	Greedy  bool
}

func (seg Segment) String() string {
	if !seg.Label {
		return seg.Content
	}
	if seg.Greedy {
		return "{" + seg.Content + "+}"
	}
	return "{" + seg.Content + "}"
}

// UriPattern is the parsed uri of an http trait, for example "/cities/{cityId}?type=city".
type UriPattern struct {
	Segments      []Segment
	QueryLiterals *Map[string]
}

func ParseUriPattern(uri string) (*UriPattern, error) {
	if !strings.HasPrefix(uri, "/") {
		return nil, fmt.Errorf("URI pattern must start with '/': %q", uri)
	}
	pattern := &UriPattern{QueryLiterals: NewMap[string]()}
	path := uri
	if n := strings.Index(uri, "?"); n >= 0 {
		path = uri[:n]
		for _, q := range strings.Split(uri[n+1:], "&") {
			if q == "" {
				continue
			}
			key, val := q, ""
			if i := strings.Index(q, "="); i >= 0 {
				key, val = q[:i], q[i+1:]
			}
			if pattern.QueryLiterals.Has(key) {
				return nil, fmt.Errorf("Duplicate query literal %q in URI pattern %q", key, uri)
			}
			pattern.QueryLiterals.Put(key, val)
		}
	}
	seen := make(map[string]bool, 0)
	trimmed := strings.TrimPrefix(path, "/")
	if trimmed == "" {
		return pattern, nil
	}
	parts := strings.Split(trimmed, "/")
	for _, part := range parts {
		if strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}") {
			name := part[1 : len(part)-1]
			greedy := strings.HasSuffix(name, "+")
			if greedy {
				name = name[:len(name)-1]
				if pattern.hasGreedy() {
					return nil, fmt.Errorf("At most one greedy label is allowed in URI pattern %q", uri)
				}
			}
			if name == "" {
				return nil, fmt.Errorf("Empty label in URI pattern %q", uri)
			}
			if seen[name] {
				return nil, fmt.Errorf("Duplicate label %q in URI pattern %q", name, uri)
			}
			seen[name] = true
			pattern.Segments = append(pattern.Segments, Segment{Content: name, Label: true, Greedy: greedy})
		} else {
			if strings.ContainsAny(part, "{}") {
				return nil, fmt.Errorf("Labels must span an entire path segment in URI pattern %q", uri)
			}
			pattern.Segments = append(pattern.Segments, Segment{Content: part})
		}
	}
	return pattern, nil
}

func (pattern *UriPattern) hasGreedy() bool {
	for _, seg := range pattern.Segments {
		if seg.Greedy {
			return true
		}
	}
	return false
}

// Labels returns the label segments, in path order.
func (pattern *UriPattern) Labels() []Segment {
	var result []Segment
	for _, seg := range pattern.Segments {
		if seg.Label {
			result = append(result, seg)
		}
	}
	return result
}

func (pattern *UriPattern) Label(name string) (Segment, bool) {
	for _, seg := range pattern.Segments {
		if seg.Label && seg.Content == name {
			return seg, true
		}
	}
	return Segment{}, false
}

// Path renders the path part of the pattern with labels in their {name} form.
func (pattern *UriPattern) Path() string {
	parts := make([]string, 0, len(pattern.Segments))
	for _, seg := range pattern.Segments {
		parts = append(parts, seg.String())
	}
	return "/" + strings.Join(parts, "/")
}

func (pattern *UriPattern) String() string {
	s := pattern.Path()
	var q []string
	for _, k := range pattern.QueryLiterals.Keys() {
		if v := pattern.QueryLiterals.Get(k); v != "" {
			q = append(q, k+"="+v)
		} else {
			q = append(q, k)
		}
	}
	if len(q) > 0 {
		s += "?" + strings.Join(q, "&")
	}
	return s
}
