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

	"github.com/aws/smithy-go/logging"
	"github.com/boynton/smithygen/golang"
	"github.com/boynton/smithygen/httpbinding"
	"github.com/boynton/smithygen/smithy"
)

// GenerationContext bundles what one generation pass for one service and protocol needs.
type GenerationContext struct {
	Model        *smithy.AST
	Index        *httpbinding.Index
	Symbols      *golang.Symbols
	Writer       *golang.Writer
	ProtocolName string
	Service      string
	Logger       logging.Logger

	// ErrorReturn is what the function currently being written returns on error,
	// "nil, err" for deserializers and "err" for error deserializers.
	ErrorReturn string
}

func NewGenerationContext(ast *smithy.AST, serviceId string, protocolName string, symbols *golang.Symbols, w *golang.Writer, logger logging.Logger) *GenerationContext {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &GenerationContext{
		Model:        ast,
		Index:        httpbinding.NewIndex(ast),
		Symbols:      symbols,
		Writer:       w,
		ProtocolName: protocolName,
		Service:      serviceId,
		Logger:       logger,
		ErrorReturn:  "nil, err",
	}
}

func (ctx *GenerationContext) Warnf(format string, v ...interface{}) {
	ctx.Logger.Logf(logging.Warn, format, v...)
}

func (ctx *GenerationContext) Debugf(format string, v ...interface{}) {
	ctx.Logger.Logf(logging.Debug, format, v...)
}

// ReturnOnError writes the error check for the function being written.
func (ctx *GenerationContext) ReturnOnError() {
	ctx.Writer.ReturnOnError(ctx.ErrorReturn)
}

// Serde registers the runtime import and returns its qualifier.
func (ctx *GenerationContext) Serde() string {
	return ctx.Symbols.Serde(ctx.Writer)
}

// Presence returns the condition under which a member field holds a value, and the
// expression for that value.
func (ctx *GenerationContext) Presence(mem *smithy.Member, field string) (string, string) {
	kind := ctx.Model.MemberKind(mem)
	switch {
	case kind == smithy.Blob && ctx.Model.IsStreaming(mem):
		return field + " != nil", field
	case ctx.Symbols.IsPointer(kind):
		return field + " != nil", "*" + field
	case kind == smithy.Enum:
		return field + ` != ""`, field
	case kind == smithy.IntEnum:
		return field + " != 0", field
	}
	return field + " != nil", field
}

// Assign writes "target = expr", unwrapping a fallible expression. When pointer is set
// the address of the value is stored.
func (ctx *GenerationContext) Assign(target string, pointer bool, expr Expr) {
	w := ctx.Writer
	switch {
	case expr.Fallible:
		w.Write("parsed, err := %s", expr.Code)
		ctx.ReturnOnError()
	case pointer:
		w.Write("parsed := %s", expr.Code)
	default:
		w.Write("%s = %s", target, expr.Code)
		return
	}
	if pointer {
		w.Write("%s = &parsed", target)
	} else {
		w.Write("%s = parsed", target)
	}
}

// AssignMember assigns to a structure field of the member's kind.
func (ctx *GenerationContext) AssignMember(target string, mem *smithy.Member, expr Expr) {
	ctx.Assign(target, ctx.Symbols.IsPointer(ctx.Model.MemberKind(mem)), expr)
}

// ShapeSet is an ordered-unique set of shape ids.
type ShapeSet struct {
	members map[string]bool
}

func NewShapeSet() *ShapeSet {
	return &ShapeSet{members: make(map[string]bool, 0)}
}

// Add records the id and reports whether it was new.
func (set *ShapeSet) Add(id string) bool {
	if set.members[id] {
		return false
	}
	set.members[id] = true
	return true
}

func (set *ShapeSet) Has(id string) bool {
	return set.members[id]
}

func (set *ShapeSet) Length() int {
	return len(set.members)
}

// Sorted returns the ids in shape id order.
func (set *ShapeSet) Sorted() []string {
	ids := make([]string, 0, len(set.members))
	for id := range set.members {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Accumulator collects the shapes that need shared components during a pass. It is
// not safe for concurrent use.
type Accumulator struct {
	SerializeDocumentShapes   *ShapeSet
	DeserializeDocumentShapes *ShapeSet
	ErrorShapes               *ShapeSet
}

func NewAccumulator() *Accumulator {
	return &Accumulator{
		SerializeDocumentShapes:   NewShapeSet(),
		DeserializeDocumentShapes: NewShapeSet(),
		ErrorShapes:               NewShapeSet(),
	}
}
