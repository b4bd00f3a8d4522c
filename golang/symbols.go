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
	"path"
	"strings"
	"unicode"

	"github.com/boynton/smithygen/common"
	"github.com/boynton/smithygen/smithy"
)

const DefaultSerdePackage = "github.com/boynton/smithygen/serde"

// Symbols maps shape ids and members to Go names and types. All shapes of a service are
// generated into a single package, so namespaces are stripped.
type Symbols struct {
	ast       *smithy.AST
	serdePath string
	serdeName string
}

func NewSymbols(ast *smithy.AST, serdePackage string) *Symbols {
	if serdePackage == "" {
		serdePackage = DefaultSerdePackage
	}
	return &Symbols{ast: ast, serdePath: serdePackage, serdeName: path.Base(serdePackage)}
}

func (s *Symbols) Model() *smithy.AST {
	return s.ast
}

// Serde registers the runtime import on the writer and returns its qualifier.
func (s *Symbols) Serde(w *Writer) string {
	if s.serdeName == "serde" {
		w.AddImport(s.serdePath, "")
	} else {
		w.AddImport(s.serdePath, "serde")
	}
	return "serde"
}

// Identifier turns an arbitrary name into an exported Go identifier.
func Identifier(name string) string {
	var words []string
	word := ""
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			word += string(r)
		} else if word != "" {
			words = append(words, word)
			word = ""
		}
	}
	if word != "" {
		words = append(words, word)
	}
	result := ""
	for _, w := range words {
		// RAINY_DAY -> RainyDay
		if len(words) > 1 && strings.ToUpper(w) == w {
			w = strings.ToLower(w)
		}
		result += common.Capitalize(w)
	}
	if result == "" {
		return "X"
	}
	if unicode.IsDigit(rune(result[0])) {
		result = "X" + result
	}
	return result
}

// SanitizeProtocol gives the name fragment for a protocol, "aws.protocols#restJson1" -> "RestJson1".
func SanitizeProtocol(protocol string) string {
	return Identifier(smithy.ShapeIdName(protocol))
}

func (s *Symbols) TypeName(id string) string {
	return Identifier(smithy.ShapeIdName(id))
}

func (s *Symbols) MemberName(name string) string {
	return Identifier(name)
}

func (s *Symbols) OperationName(opId string) string {
	return s.TypeName(opId)
}

// InputTypeName is the input structure of the operation, or the synthetic <Op>Input.
func (s *Symbols) InputTypeName(opId string) string {
	if in := s.ast.OperationInput(opId); in != "" {
		return s.TypeName(in)
	}
	return s.OperationName(opId) + "Input"
}

func (s *Symbols) OutputTypeName(opId string) string {
	if out := s.ast.OperationOutput(opId); out != "" {
		return s.TypeName(out)
	}
	return s.OperationName(opId) + "Output"
}

func (s *Symbols) EnumConstName(typeName string, enumName string) string {
	return typeName + Identifier(enumName)
}

func (s *Symbols) SerializerName(protocol, opId string) string {
	return "serialize" + SanitizeProtocol(protocol) + s.OperationName(opId)
}

func (s *Symbols) DeserializerName(protocol, opId string) string {
	return "deserialize" + SanitizeProtocol(protocol) + s.OperationName(opId)
}

func (s *Symbols) ErrorDispatcherName(protocol, opId string) string {
	return s.DeserializerName(protocol, opId) + "Error"
}

func (s *Symbols) ErrorDeserializerName(protocol, errorId string) string {
	return "deserialize" + SanitizeProtocol(protocol) + s.TypeName(errorId) + "Response"
}

func (s *Symbols) DocumentSerializerName(protocol, shapeId string) string {
	return "serialize" + SanitizeProtocol(protocol) + "Document" + s.TypeName(shapeId)
}

func (s *Symbols) DocumentDeserializerName(protocol, shapeId string) string {
	return "deserialize" + SanitizeProtocol(protocol) + "Document" + s.TypeName(shapeId)
}

// ValueType is the Go type of a value of the shape, as used for list elements and map values.
func (s *Symbols) ValueType(w *Writer, id string) string {
	t := s.valueType(id)
	s.useType(w, t)
	return t
}

func (s *Symbols) valueType(id string) string {
	kind := s.ast.ShapeKind(id)
	switch kind {
	case smithy.Boolean:
		return "bool"
	case smithy.Byte:
		return "int8"
	case smithy.Short:
		return "int16"
	case smithy.Integer:
		return "int32"
	case smithy.Long:
		return "int64"
	case smithy.Float:
		return "float32"
	case smithy.Double:
		return "float64"
	case smithy.String:
		return "string"
	case smithy.BigInteger:
		return "*big.Int"
	case smithy.BigDecimal:
		return "*big.Float"
	case smithy.Timestamp:
		return "time.Time"
	case smithy.Blob:
		return "[]byte"
	case smithy.Document:
		return "interface{}"
	case smithy.Enum, smithy.IntEnum:
		return s.TypeName(id)
	case smithy.List, smithy.Set:
		shape := s.ast.GetShape(id)
		return "[]" + s.valueType(shape.Member.Target)
	case smithy.MapKind:
		shape := s.ast.GetShape(id)
		return "map[string]" + s.valueType(shape.Value.Target)
	case smithy.Structure, smithy.Union:
		return "*" + s.TypeName(id)
	}
	return "interface{}"
}

// MemberType is the Go type of a structure field. Scalars are pointers so that an unset
// value is distinguishable. A streaming blob is a reader.
func (s *Symbols) MemberType(w *Writer, mem *smithy.Member, input bool) string {
	t := s.memberType(mem, input)
	s.useType(w, t)
	return t
}

func (s *Symbols) memberType(mem *smithy.Member, input bool) string {
	kind := s.ast.MemberKind(mem)
	if kind == smithy.Blob && s.ast.IsStreaming(mem) {
		if input {
			return "io.Reader"
		}
		return "io.ReadCloser"
	}
	if s.IsPointer(kind) {
		return "*" + s.valueType(mem.Target)
	}
	return s.valueType(mem.Target)
}

// IsPointer is true for the kinds whose member fields are pointers to plain values.
func (s *Symbols) IsPointer(kind smithy.Kind) bool {
	switch kind {
	case smithy.Boolean, smithy.Byte, smithy.Short, smithy.Integer, smithy.Long, smithy.Float, smithy.Double, smithy.String, smithy.Timestamp:
		return true
	}
	return false
}

// ZeroValue is the unset value of a member field.
func (s *Symbols) ZeroValue(mem *smithy.Member) string {
	switch s.ast.MemberKind(mem) {
	case smithy.Enum:
		return `""`
	case smithy.IntEnum:
		return "0"
	}
	return "nil"
}

func (s *Symbols) useType(w *Writer, t string) {
	if w == nil {
		return
	}
	if strings.Contains(t, "time.Time") {
		w.AddImport("time", "")
	}
	if strings.Contains(t, "big.") {
		w.AddImport("math/big", "")
	}
	if strings.HasPrefix(t, "io.") {
		w.AddImport("io", "")
	}
}
