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
package golang

import (
	"fmt"
	"strings"

	"github.com/boynton/smithygen/common"
	"github.com/boynton/smithygen/smithy"
)

// TypesGenerator declares the Go types for every shape in a service closure. Simple shapes,
// lists and maps are inlined; structures, unions, enums and errors are declared.
type TypesGenerator struct {
	ast     *smithy.AST
	symbols *Symbols
	service string
	inputs  map[string]bool
	outputs map[string]bool
}

func NewTypesGenerator(symbols *Symbols, serviceId string) *TypesGenerator {
	gen := &TypesGenerator{
		ast:     symbols.Model(),
		symbols: symbols,
		service: serviceId,
		inputs:  make(map[string]bool, 0),
		outputs: make(map[string]bool, 0),
	}
	for _, opId := range gen.ast.ContainedOperations(serviceId) {
		if in := gen.ast.OperationInput(opId); in != "" {
			gen.inputs[in] = true
		}
		if out := gen.ast.OperationOutput(opId); out != "" {
			gen.outputs[out] = true
		}
	}
	return gen
}

func (gen *TypesGenerator) Generate(w *Writer) error {
	for _, id := range gen.ast.ServiceClosure(gen.service) {
		if err := gen.GenerateType(w, id); err != nil {
			return err
		}
	}
	for _, opId := range gen.ast.ContainedOperations(gen.service) {
		if gen.ast.OperationInput(opId) == "" {
			w.Write("")
			w.Write("type %s struct {", gen.symbols.InputTypeName(opId))
			w.Write("}")
		}
		if gen.ast.OperationOutput(opId) == "" {
			w.Write("")
			w.OpenBlock("type %s struct {", gen.symbols.OutputTypeName(opId))
			w.Write("ResultMetadata %s.Metadata", gen.symbols.Serde(w))
			w.CloseBlock("}")
		}
	}
	return nil
}

func (gen *TypesGenerator) generateTypeComment(w *Writer, shape *smithy.Shape) {
	if doc := smithy.Documentation(shape.Traits); doc != "" {
		w.Emit(common.FormatComment("", "// ", doc, 80, false))
	}
}

func (gen *TypesGenerator) GenerateType(w *Writer, id string) error {
	shape := gen.ast.GetShape(id)
	switch gen.ast.ShapeKind(id) {
	case smithy.Structure:
		if gen.ast.ErrorTrait(id) != "" {
			return gen.generateError(w, id, shape)
		}
		w.Write("")
		gen.generateTypeComment(w, shape)
		return gen.generateStruct(w, id, shape, gen.outputs[id])
	case smithy.Union:
		w.Write("")
		gen.generateTypeComment(w, shape)
		return gen.generateStruct(w, id, shape, false)
	case smithy.Enum:
		w.Write("")
		gen.generateTypeComment(w, shape)
		gen.generateEnum(w, id, "string")
	case smithy.IntEnum:
		w.Write("")
		gen.generateTypeComment(w, shape)
		gen.generateEnum(w, id, "int32")
	}
	return nil
}

func (gen *TypesGenerator) generateStruct(w *Writer, id string, shape *smithy.Shape, withMetadata bool) error {
	name := gen.symbols.TypeName(id)
	w.OpenBlock("type %s struct {", name)
	if shape.Members != nil {
		for _, memberName := range shape.Members.Keys() {
			mem := shape.Members.Get(memberName)
			if mem == nil {
				return fmt.Errorf("%s member %s has no target", id, memberName)
			}
			if doc := smithy.Documentation(mem.Traits); doc != "" {
				w.Emit(common.FormatComment(w.indent, "// ", doc, 80, false))
			}
			opt := ""
			if !smithy.IsRequired(mem) {
				opt = ",omitempty"
			}
			ftype := gen.symbols.MemberType(w, mem, gen.inputs[id])
			w.Write("%s %s `json:\"%s%s\"`", gen.symbols.MemberName(memberName), ftype, common.Uncapitalize(memberName), opt)
		}
	}
	if withMetadata {
		w.Write("")
		w.Write("ResultMetadata %s.Metadata `json:\"-\"`", gen.symbols.Serde(w))
	}
	w.CloseBlock("}")
	return nil
}

func (gen *TypesGenerator) generateEnum(w *Writer, id string, base string) {
	name := gen.symbols.TypeName(id)
	values := gen.ast.EnumValues(id)
	w.Write("type %s %s", name, base)
	w.Write("")
	w.OpenBlock("const (")
	for _, ev := range values {
		if base == "string" {
			w.Write("%s %s = %q", gen.symbols.EnumConstName(name, ev.Name), name, ev.Value)
		} else {
			w.Write("%s %s = %d", gen.symbols.EnumConstName(name, ev.Name), name, ev.Int)
		}
	}
	w.CloseBlock(")")
	w.Write("")
	w.Write("// Values returns the known values of %s.", name)
	w.OpenBlock("func (%s) Values() []%s {", name, name)
	w.OpenBlock("return []%s{", name)
	for _, ev := range values {
		w.Write("%s,", gen.symbols.EnumConstName(name, ev.Name))
	}
	w.CloseBlock("}")
	w.CloseBlock("}")
}

// generateError declares an error structure implementing smithy.APIError.
func (gen *TypesGenerator) generateError(w *Writer, id string, shape *smithy.Shape) error {
	name := gen.symbols.TypeName(id)
	fault := "smithy.FaultClient"
	switch gen.ast.ErrorTrait(id) {
	case "client":
	case "server":
		fault = "smithy.FaultServer"
	default:
		return fmt.Errorf("%s has an error trait that is neither client nor server", id)
	}
	w.AddImport("fmt", "")
	w.AddImport("github.com/aws/smithy-go", "smithy")
	w.Write("")
	gen.generateTypeComment(w, shape)
	if err := gen.generateStruct(w, id, shape, true); err != nil {
		return err
	}
	message := ""
	if shape.Members != nil {
		for _, memberName := range shape.Members.Keys() {
			if strings.ToLower(memberName) == "message" && gen.ast.MemberKind(shape.Members.Get(memberName)) == smithy.String {
				message = gen.symbols.MemberName(memberName)
			}
		}
	}
	w.Write("")
	w.Write("var _ smithy.APIError = (*%s)(nil)", name)
	w.Write("")
	w.OpenBlock("func (e *%s) Error() string {", name)
	w.Write("return fmt.Sprintf(\"%%s: %%s\", e.ErrorCode(), e.ErrorMessage())")
	w.CloseBlock("}")
	w.Write("")
	w.OpenBlock("func (e *%s) ErrorMessage() string {", name)
	if message != "" {
		w.OpenBlock("if e.%s == nil {", message)
		w.Write("return e.ErrorCode()")
		w.CloseBlock("}")
		w.Write("return *e.%s", message)
	} else {
		w.Write("return e.ErrorCode()")
	}
	w.CloseBlock("}")
	w.Write("")
	w.Write("func (e *%s) ErrorCode() string { return %q }", name, smithy.ShapeIdName(id))
	w.Write("")
	w.Write("func (e *%s) ErrorFault() smithy.ErrorFault { return %s }", name, fault)
	return nil
}
