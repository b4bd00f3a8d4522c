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
package protocol

import (
	"sort"

	"github.com/boynton/smithygen/httpbinding"
	"github.com/boynton/smithygen/smithy"
)

// DocumentCodec generates the protocol specific handling of document bodies. The
// bindings passed in are the DOCUMENT bindings, sorted by member name.
type DocumentCodec interface {
	// SerializeInputDocument writes statements that build the document tree for the
	// request body into the variable "bodyParams", reading from "input".
	SerializeInputDocument(ctx *GenerationContext, opId string, bindings []*httpbinding.Binding) error

	// DeserializeOutputDocument writes statements that read the parsed tree in the variable
	// "document" into the fields of "contents".
	DeserializeOutputDocument(ctx *GenerationContext, shapeId string, bindings []*httpbinding.Binding) error

	// GenerateDocumentShapeSerializers emits one serializer per shape, and for each nested
	// aggregate they reference.
	GenerateDocumentShapeSerializers(ctx *GenerationContext, shapeIds []string) error

	GenerateDocumentShapeDeserializers(ctx *GenerationContext, shapeIds []string) error
}

// Protocol is a plugin for one HTTP binding protocol.
type Protocol interface {
	DocumentCodec

	// Name is the absolute id of the protocol trait, e.g. "aws.protocols#restJson1".
	Name() string

	DocumentContentType() string

	DocumentTimestampFormat() httpbinding.Format

	// ErrorCodeInBody is true when the error dispatcher must parse the response body.
	ErrorCodeInBody() bool

	// EncodeDocument returns a fallible expression that encodes a document tree to bytes.
	EncodeDocument(expr string) string

	// ParseDocumentBody returns a fallible expression that parses an io.ReadCloser.
	ParseDocumentBody(expr string) string

	ParseDocumentBytes(expr string) string

	// ErrorBodyLocation returns the expression for the part of a parsed error document
	// that holds the error members.
	ErrorBodyLocation(expr string) string

	// WriteDefaultHeaders writes headers every request of the protocol carries, into
	// the variable "headers".
	WriteDefaultHeaders(ctx *GenerationContext, opId string)

	// WriteErrorCodeParser assigns the variable "errorCode", given "output" and
	// "parsedOutput".
	WriteErrorCodeParser(ctx *GenerationContext)
}

// NoProtocol is the resolution result when a service names no registered protocol.
const NoProtocol = "none"

// Registry maps protocol names to plugins. It is assembled explicitly at startup.
type Registry struct {
	protocols map[string]Protocol
}

func NewRegistry(protocols ...Protocol) *Registry {
	reg := &Registry{protocols: make(map[string]Protocol, 0)}
	for _, p := range protocols {
		reg.Register(p)
	}
	return reg
}

func (reg *Registry) Register(p Protocol) {
	reg.protocols[p.Name()] = p
}

func (reg *Registry) Lookup(name string) (Protocol, bool) {
	p, ok := reg.protocols[name]
	return p, ok
}

func (reg *Registry) Names() []string {
	var names []string
	for name := range reg.protocols {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve picks the protocol for a service: the preferred one if registered, otherwise
// the first service trait, in trait name order, that names a registered protocol. It
// returns NoProtocol when there is none.
func (reg *Registry) Resolve(ast *smithy.AST, serviceId string, preferred string) string {
	if preferred != "" {
		if _, ok := reg.protocols[preferred]; ok {
			return preferred
		}
	}
	service := ast.GetShape(serviceId)
	if service != nil {
		for _, traitId := range service.Traits.Keys() {
			if _, ok := reg.protocols[traitId]; ok {
				return traitId
			}
		}
	}
	return NoProtocol
}
