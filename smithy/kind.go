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
	"strings"
)

// Kind is the closed set of shape kinds the generators switch over.
type Kind int

const (
	InvalidKind Kind = iota
	Blob
	Boolean
	String
	Enum
	Byte
	Short
	Integer
	Long
	Float
	Double
	BigInteger
	BigDecimal
	IntEnum
	Timestamp
	Document
	List
	Set
	MapKind
	Structure
	Union
	Operation
	Resource
	Service
)

var kindNames = map[Kind]string{
	InvalidKind: "invalid",
	Blob:        "blob",
	Boolean:     "boolean",
	String:      "string",
	Enum:        "enum",
	Byte:        "byte",
	Short:       "short",
	Integer:     "integer",
	Long:        "long",
	Float:       "float",
	Double:      "double",
	BigInteger:  "bigInteger",
	BigDecimal:  "bigDecimal",
	IntEnum:     "intEnum",
	Timestamp:   "timestamp",
	Document:    "document",
	List:        "list",
	Set:         "set",
	MapKind:     "map",
	Structure:   "structure",
	Union:       "union",
	Operation:   "operation",
	Resource:    "resource",
	Service:     "service",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "invalid"
}

func kindOfType(typeName string) Kind {
	for k, s := range kindNames {
		if s == typeName && k != InvalidKind {
			return k
		}
	}
	return InvalidKind
}

// IsSimple is true for the scalar kinds, including timestamps and blobs.
func (k Kind) IsSimple() bool {
	return k >= Blob && k <= Timestamp
}

func (k Kind) IsNumber() bool {
	return k >= Byte && k <= BigDecimal
}

func (k Kind) IsCollection() bool {
	return k == List || k == Set
}

// IsAggregate is true for the kinds that need their own (de)serializer function in a document.
func (k Kind) IsAggregate() bool {
	return k == List || k == Set || k == MapKind || k == Structure || k == Union
}

var preludeKinds = map[string]Kind{
	"Blob":             Blob,
	"Boolean":          Boolean,
	"String":           String,
	"Byte":             Byte,
	"Short":            Short,
	"Integer":          Integer,
	"Long":             Long,
	"Float":            Float,
	"Double":           Double,
	"BigInteger":       BigInteger,
	"BigDecimal":       BigDecimal,
	"Timestamp":        Timestamp,
	"Document":         Document,
	"PrimitiveBoolean": Boolean,
	"PrimitiveByte":    Byte,
	"PrimitiveShort":   Short,
	"PrimitiveInteger": Integer,
	"PrimitiveLong":    Long,
	"PrimitiveFloat":   Float,
	"PrimitiveDouble":  Double,
	"Unit":             Structure,
}

func IsPreludeType(id string) bool {
	return strings.HasPrefix(id, "smithy.api#")
}

// ShapeKind resolves the kind of the shape with the given id, including prelude shapes.
func (ast *AST) ShapeKind(id string) Kind {
	if shape := ast.GetShape(id); shape != nil {
		k := kindOfType(shape.Type)
		if k == String && shape.HasTrait("smithy.api#enum") {
			return Enum
		}
		return k
	}
	if IsPreludeType(id) {
		if k, ok := preludeKinds[ShapeIdName(id)]; ok {
			return k
		}
	}
	return InvalidKind
}

func (ast *AST) MemberKind(mem *Member) Kind {
	if mem == nil {
		return InvalidKind
	}
	return ast.ShapeKind(mem.Target)
}
