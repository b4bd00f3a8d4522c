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

// Package httpbinding computes where each member of an operation's input, output, or
// error structure travels in an HTTP message.
package httpbinding

import (
	"fmt"

	"github.com/boynton/smithygen/smithy"
)

// Location is the part of an HTTP message a member is bound to.
type Location int

const (
	Label Location = iota + 1
	Query
	Header
	PrefixHeaders
	Payload
	Document
)

func (loc Location) String() string {
	switch loc {
	case Label:
		return "LABEL"
	case Query:
		return "QUERY"
	case Header:
		return "HEADER"
	case PrefixHeaders:
		return "PREFIX_HEADERS"
	case Payload:
		return "PAYLOAD"
	case Document:
		return "DOCUMENT"
	}
	return fmt.Sprintf("Location(%d)", int(loc))
}

// Binding associates one member with its location. LocationName is the label, query
// parameter, header name, or header prefix; for payload and document bindings it is the
// member name.
type Binding struct {
	MemberName   string
	Member       *smithy.Member
	Location     Location
	LocationName string
}

// Target is the shape id of the bound member.
func (b *Binding) Target() string {
	return b.Member.Target
}

func (b *Binding) String() string {
	return fmt.Sprintf("%s %s(%s)", b.MemberName, b.Location, b.LocationName)
}

// ModelConsistencyError reports a model whose bindings cannot be generated.
type ModelConsistencyError struct {
	Shape  string
	Member string
	Reason string
}

func (e *ModelConsistencyError) Error() string {
	if e.Member != "" {
		return fmt.Sprintf("Invalid http bindings for %s$%s: %s", e.Shape, e.Member, e.Reason)
	}
	return fmt.Sprintf("Invalid http bindings for %s: %s", e.Shape, e.Reason)
}
