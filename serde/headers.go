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
package serde

import (
	"net/http"
	"strings"
)

// GetHeader returns the header's values joined with commas, and whether it was present.
func GetHeader(h http.Header, name string) (string, bool) {
	values := h.Values(name)
	if len(values) == 0 {
		return "", false
	}
	return strings.Join(values, ","), true
}

// HasHeaderPrefix reports whether key starts with prefix, ignoring case.
func HasHeaderPrefix(key, prefix string) bool {
	return len(key) >= len(prefix) && strings.EqualFold(key[:len(prefix)], prefix)
}

// JoinHeaderList encodes a list as a single comma-separated header value. Items containing
// a comma or a double quote are quoted.
func JoinHeaderList(values []string) string {
	items := make([]string, 0, len(values))
	for _, v := range values {
		if strings.ContainsAny(v, ",\"") {
			v = `"` + strings.ReplaceAll(strings.ReplaceAll(v, `\`, `\\`), `"`, `\"`) + `"`
		}
		items = append(items, v)
	}
	return strings.Join(items, ",")
}

// JoinHTTPDateList encodes http-date timestamps, which contain commas of their own.
func JoinHTTPDateList(values []string) string {
	return strings.Join(values, ", ")
}

// SplitHeaderList decodes a comma-separated header value. Quoted items may contain commas.
// An empty value yields an empty list.
func SplitHeaderList(s string) []string {
	result := []string{}
	if strings.TrimSpace(s) == "" {
		return result
	}
	var cur strings.Builder
	quoted := false
	wasQuoted := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quoted && c == '\\' && i+1 < len(s):
			i++
			cur.WriteByte(s[i])
		case c == '"':
			quoted = !quoted
			wasQuoted = true
		case c == ',' && !quoted:
			result = append(result, trimItem(cur.String(), wasQuoted))
			cur.Reset()
			wasQuoted = false
		default:
			cur.WriteByte(c)
		}
	}
	return append(result, trimItem(cur.String(), wasQuoted))
}

func trimItem(s string, quoted bool) string {
	if quoted {
		return s
	}
	return strings.TrimSpace(s)
}

// SplitHTTPDateList decodes a list of http-date timestamps, where every second comma
// separates items.
func SplitHTTPDateList(s string) []string {
	result := []string{}
	if strings.TrimSpace(s) == "" {
		return result
	}
	parts := strings.Split(s, ",")
	for i := 0; i < len(parts); i += 2 {
		item := parts[i]
		if i+1 < len(parts) {
			item += "," + parts[i+1]
		}
		result = append(result, strings.TrimSpace(item))
	}
	return result
}

// FormatList converts each element of a list to its header or query string form.
func FormatList[T any](values []T, format func(T) string) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		result = append(result, format(v))
	}
	return result
}

// ParseList parses each element of a split header value.
func ParseList[T any](values []string, parse func(string) (T, error)) ([]T, error) {
	result := make([]T, 0, len(values))
	for _, s := range values {
		v, err := parse(s)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, nil
}
