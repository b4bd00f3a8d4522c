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
package common

import (
	"strings"
)

func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[0:1]) + s[1:]
}

func Uncapitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[0:1]) + s[1:]
}

// FormatComment wraps the comment into lines of at most maxcol columns, each starting with indent and prefix.
// Line breaks already in the comment are kept. With extraPad an empty comment line surrounds the block.
func FormatComment(indent, prefix, comment string, maxcol int, extraPad bool) string {
	var sb strings.Builder
	pad := indent + strings.TrimRight(prefix, " ") + "\n"
	if extraPad {
		sb.WriteString(pad)
	}
	width := maxcol - len(indent) - len(prefix)
	for _, para := range strings.Split(strings.TrimSpace(comment), "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			sb.WriteString(pad)
			continue
		}
		line := words[0]
		for _, word := range words[1:] {
			if len(line)+1+len(word) > width {
				sb.WriteString(indent + prefix + line + "\n")
				line = word
			} else {
				line += " " + word
			}
		}
		sb.WriteString(indent + prefix + line + "\n")
	}
	if extraPad {
		sb.WriteString(pad)
	}
	return sb.String()
}
