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
package httpbinding

import (
	"sort"

	"github.com/boynton/smithygen/smithy"
)

// Index answers binding questions about the operations and errors of a model. Bindings
// are computed on demand and not cached.
type Index struct {
	ast *smithy.AST
}

func NewIndex(ast *smithy.AST) *Index {
	return &Index{ast: ast}
}

func (idx *Index) Model() *smithy.AST {
	return idx.ast
}

// RequestBindings returns the bindings of the operation's input members, in declaration order.
func (idx *Index) RequestBindings(opId string) ([]*Binding, error) {
	inputId := idx.ast.OperationInput(opId)
	bindings, err := idx.computeBindings(inputId, true)
	if err != nil {
		return nil, err
	}
	if err := idx.validateLabels(opId, inputId, bindings); err != nil {
		return nil, err
	}
	return bindings, nil
}

// ResponseBindings returns the bindings of an operation's output members, or of an error
// structure's members when given an error shape id.
func (idx *Index) ResponseBindings(id string) ([]*Binding, error) {
	structId := id
	if idx.ast.ShapeKind(id) == smithy.Operation {
		structId = idx.ast.OperationOutput(id)
	}
	return idx.computeBindings(structId, false)
}

// RequestBindingsAt filters the request bindings by location. Document bindings are
// sorted by member name.
func (idx *Index) RequestBindingsAt(opId string, loc Location) ([]*Binding, error) {
	all, err := idx.RequestBindings(opId)
	if err != nil {
		return nil, err
	}
	return filterLocation(all, loc), nil
}

func (idx *Index) ResponseBindingsAt(id string, loc Location) ([]*Binding, error) {
	all, err := idx.ResponseBindings(id)
	if err != nil {
		return nil, err
	}
	return filterLocation(all, loc), nil
}

func filterLocation(all []*Binding, loc Location) []*Binding {
	var result []*Binding
	for _, b := range all {
		if b.Location == loc {
			result = append(result, b)
		}
	}
	if loc == Document {
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].MemberName < result[j].MemberName
		})
	}
	return result
}

func (idx *Index) computeBindings(structId string, request bool) ([]*Binding, error) {
	if structId == "" {
		return nil, nil
	}
	shape := idx.ast.GetShape(structId)
	if shape == nil {
		return nil, &ModelConsistencyError{Shape: structId, Reason: "structure not found"}
	}
	var bindings []*Binding
	payloads := 0
	documents := 0
	for _, name := range shape.Members.Keys() {
		mem := shape.Members.Get(name)
		b, err := bindMember(structId, name, mem, request)
		if err != nil {
			return nil, err
		}
		switch b.Location {
		case Payload:
			payloads++
		case Document:
			documents++
		}
		bindings = append(bindings, b)
	}
	if payloads > 1 {
		return nil, &ModelConsistencyError{Shape: structId, Reason: "more than one member is bound to the payload"}
	}
	if payloads == 1 && documents > 0 {
		return nil, &ModelConsistencyError{Shape: structId, Reason: "a payload binding cannot be combined with document bindings"}
	}
	return bindings, nil
}

func bindMember(structId, name string, mem *smithy.Member, request bool) (*Binding, error) {
	var found []*Binding
	if request {
		if mem.HasTrait(smithy.TraitHttpLabel) {
			found = append(found, &Binding{Location: Label, LocationName: name})
		}
		if mem.HasTrait(smithy.TraitHttpQuery) {
			found = append(found, &Binding{Location: Query, LocationName: mem.GetStringTrait(smithy.TraitHttpQuery)})
		}
	}
	if mem.HasTrait(smithy.TraitHttpHeader) {
		found = append(found, &Binding{Location: Header, LocationName: mem.GetStringTrait(smithy.TraitHttpHeader)})
	}
	if mem.HasTrait(smithy.TraitHttpPrefixHeaders) {
		found = append(found, &Binding{Location: PrefixHeaders, LocationName: mem.GetStringTrait(smithy.TraitHttpPrefixHeaders)})
	}
	if mem.HasTrait(smithy.TraitHttpPayload) {
		found = append(found, &Binding{Location: Payload, LocationName: name})
	}
	switch len(found) {
	case 0:
		return &Binding{MemberName: name, Member: mem, Location: Document, LocationName: name}, nil
	case 1:
		b := found[0]
		b.MemberName = name
		b.Member = mem
		return b, nil
	}
	return nil, &ModelConsistencyError{Shape: structId, Member: name, Reason: "member is bound to more than one location"}
}

func (idx *Index) validateLabels(opId, inputId string, bindings []*Binding) error {
	http, ok, err := idx.ast.HttpTrait(opId)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	bound := make(map[string]bool, 0)
	for _, b := range bindings {
		if b.Location == Label {
			if _, present := http.Uri.Label(b.LocationName); !present {
				return &ModelConsistencyError{Shape: inputId, Member: b.MemberName, Reason: "httpLabel member has no matching label in the URI " + http.Uri.String()}
			}
			bound[b.LocationName] = true
		}
	}
	for _, seg := range http.Uri.Labels() {
		if !bound[seg.Content] {
			return &ModelConsistencyError{Shape: opId, Reason: "URI label {" + seg.Content + "} has no matching httpLabel member"}
		}
	}
	return nil
}

// DetermineRequestContentType returns the Content-Type of the operation's request body.
func (idx *Index) DetermineRequestContentType(opId string, documentContentType string) (string, error) {
	bindings, err := idx.RequestBindings(opId)
	if err != nil {
		return "", err
	}
	return idx.contentType(bindings, documentContentType), nil
}

// DetermineResponseContentType returns the Content-Type of an operation's or error's response body.
func (idx *Index) DetermineResponseContentType(id string, documentContentType string) (string, error) {
	bindings, err := idx.ResponseBindings(id)
	if err != nil {
		return "", err
	}
	return idx.contentType(bindings, documentContentType), nil
}

func (idx *Index) contentType(bindings []*Binding, documentContentType string) string {
	for _, b := range bindings {
		if b.Location != Payload {
			continue
		}
		if mt := idx.ast.MediaType(b.Member); mt != "" {
			return mt
		}
		switch idx.ast.ShapeKind(b.Target()) {
		case smithy.Blob:
			return "application/octet-stream"
		case smithy.String, smithy.Enum:
			return "text/plain"
		}
	}
	return documentContentType
}

// DetermineTimestampFormat resolves the wire format of a timestamp member at a location.
func (idx *Index) DetermineTimestampFormat(mem *smithy.Member, loc Location, documentDefault Format) Format {
	if f, ok := ParseFormat(idx.ast.TimestampFormatTrait(mem)); ok {
		return f
	}
	switch loc {
	case Header, PrefixHeaders:
		return HttpDate
	case Label, Query:
		return DateTime
	}
	return documentDefault
}
