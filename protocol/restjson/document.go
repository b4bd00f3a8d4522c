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
package restjson

import (
	"fmt"

	"github.com/boynton/smithygen/httpbinding"
	"github.com/boynton/smithygen/protocol"
	"github.com/boynton/smithygen/smithy"
)

const smithyTimeImport = "github.com/aws/smithy-go/time"

func (p *Protocol) unsupported(id, name string, kind smithy.Kind) error {
	return &protocol.UnsupportedBindingError{Operation: id, Member: name, Kind: kind, Location: httpbinding.Document, Protocol: p.Name()}
}

func (p *Protocol) timestampFormat(ctx *protocol.GenerationContext, mem *smithy.Member) httpbinding.Format {
	return ctx.Index.DetermineTimestampFormat(mem, httpbinding.Document, p.DocumentTimestampFormat())
}

// documentValue converts the Go value v of a member to its JSON tree form.
func (p *Protocol) documentValue(ctx *protocol.GenerationContext, id, name string, mem *smithy.Member, v string) (protocol.Expr, error) {
	kind := ctx.Model.MemberKind(mem)
	switch kind {
	case smithy.Boolean, smithy.Byte, smithy.Short, smithy.Integer, smithy.Long, smithy.Float, smithy.Double,
		smithy.BigInteger, smithy.BigDecimal, smithy.String, smithy.Document:
		return protocol.Expr{Code: v}, nil
	case smithy.Blob:
		if ctx.Model.IsStreaming(mem) {
			break
		}
		return protocol.Expr{Code: v}, nil
	case smithy.Enum:
		return protocol.Expr{Code: "string(" + v + ")"}, nil
	case smithy.IntEnum:
		return protocol.Expr{Code: "int32(" + v + ")"}, nil
	case smithy.Timestamp:
		ctx.Writer.AddImport(smithyTimeImport, "smithytime")
		switch p.timestampFormat(ctx, mem) {
		case httpbinding.DateTime:
			return protocol.Expr{Code: "smithytime.FormatDateTime(" + v + ")"}, nil
		case httpbinding.HttpDate:
			return protocol.Expr{Code: "smithytime.FormatHTTPDate(" + v + ")"}, nil
		}
		return protocol.Expr{Code: "smithytime.FormatEpochSeconds(" + v + ")"}, nil
	case smithy.List, smithy.Set, smithy.MapKind, smithy.Structure, smithy.Union:
		fn := ctx.Symbols.DocumentSerializerName(p.Name(), mem.Target)
		return protocol.Expr{Code: fmt.Sprintf("%s(%s, ctx)", fn, v), Fallible: true}, nil
	}
	return protocol.Expr{}, p.unsupported(id, name, kind)
}

// documentParse converts the JSON tree value v to the Go value of a member.
func (p *Protocol) documentParse(ctx *protocol.GenerationContext, id, name string, mem *smithy.Member, v string) (protocol.Expr, error) {
	serde := ctx.Serde()
	kind := ctx.Model.MemberKind(mem)
	expect := func(fn string) (protocol.Expr, error) {
		return protocol.Expr{Code: fmt.Sprintf("%s.%s(%s)", serde, fn, v), Fallible: true}, nil
	}
	switch kind {
	case smithy.Boolean:
		return expect("ExpectBool")
	case smithy.Byte:
		return expect("ExpectInt8")
	case smithy.Short:
		return expect("ExpectInt16")
	case smithy.Integer:
		return expect("ExpectInt32")
	case smithy.Long:
		return expect("ExpectInt64")
	case smithy.Float:
		return expect("ExpectFloat32")
	case smithy.Double:
		return expect("ExpectFloat64")
	case smithy.BigInteger:
		return expect("ExpectBigInt")
	case smithy.BigDecimal:
		return expect("ExpectBigFloat")
	case smithy.String:
		return expect("ExpectString")
	case smithy.Blob:
		if ctx.Model.IsStreaming(mem) {
			break
		}
		return expect("ExpectBlob")
	case smithy.Enum:
		return expect("ExpectEnum[" + ctx.Symbols.TypeName(mem.Target) + "]")
	case smithy.IntEnum:
		return expect("ExpectIntEnum[" + ctx.Symbols.TypeName(mem.Target) + "]")
	case smithy.Timestamp:
		format := "EpochSeconds"
		switch p.timestampFormat(ctx, mem) {
		case httpbinding.DateTime:
			format = "DateTime"
		case httpbinding.HttpDate:
			format = "HTTPDate"
		}
		return protocol.Expr{Code: fmt.Sprintf("%s.ExpectTimestamp(%s, %s.%s)", serde, v, serde, format), Fallible: true}, nil
	case smithy.Document:
		return protocol.Expr{Code: v}, nil
	case smithy.List, smithy.Set, smithy.MapKind, smithy.Structure, smithy.Union:
		fn := ctx.Symbols.DocumentDeserializerName(p.Name(), mem.Target)
		return protocol.Expr{Code: fmt.Sprintf("%s(%s, ctx)", fn, v), Fallible: true}, nil
	}
	return protocol.Expr{}, p.unsupported(id, name, kind)
}

// nestedShapes returns the aggregate shapes referenced directly by an aggregate shape.
func nestedShapes(ctx *protocol.GenerationContext, id string) []string {
	shape := ctx.Model.GetShape(id)
	if shape == nil {
		return nil
	}
	var members []*smithy.Member
	switch ctx.Model.ShapeKind(id) {
	case smithy.List, smithy.Set:
		members = append(members, shape.Member)
	case smithy.MapKind:
		members = append(members, shape.Value)
	case smithy.Structure, smithy.Union:
		for _, name := range shape.Members.Keys() {
			members = append(members, shape.Members.Get(name))
		}
	}
	var nested []string
	for _, mem := range members {
		if ctx.Model.MemberKind(mem).IsAggregate() {
			nested = append(nested, mem.Target)
		}
	}
	return nested
}

// closure visits the requested shapes, then the aggregates they reach, each exactly once.
func closure(ctx *protocol.GenerationContext, ids []string, visit func(id string) error) error {
	seen := protocol.NewShapeSet()
	queue := append([]string(nil), ids...)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if !seen.Add(id) {
			continue
		}
		if err := visit(id); err != nil {
			return err
		}
		queue = append(queue, nestedShapes(ctx, id)...)
	}
	return nil
}

// GenerateDocumentShapeSerializers emits a tree builder for each shape and the aggregates it reaches.
func (p *Protocol) GenerateDocumentShapeSerializers(ctx *protocol.GenerationContext, shapeIds []string) error {
	return closure(ctx, shapeIds, func(id string) error {
		ctx.Debugf("generating %s document serializer for %s", p.Name(), id)
		switch ctx.Model.ShapeKind(id) {
		case smithy.Structure, smithy.Union:
			return p.structSerializer(ctx, id)
		case smithy.List, smithy.Set:
			return p.listSerializer(ctx, id)
		case smithy.MapKind:
			return p.mapSerializer(ctx, id)
		}
		return nil
	})
}

func (p *Protocol) GenerateDocumentShapeDeserializers(ctx *protocol.GenerationContext, shapeIds []string) error {
	return closure(ctx, shapeIds, func(id string) error {
		ctx.Debugf("generating %s document deserializer for %s", p.Name(), id)
		switch ctx.Model.ShapeKind(id) {
		case smithy.Structure, smithy.Union:
			return p.structDeserializer(ctx, id)
		case smithy.List, smithy.Set:
			return p.listDeserializer(ctx, id)
		case smithy.MapKind:
			return p.mapDeserializer(ctx, id)
		}
		return nil
	})
}

func (p *Protocol) serializerHeader(ctx *protocol.GenerationContext, id string, result string) {
	w := ctx.Writer
	w.Write("")
	w.OpenBlock("func %s(v %s, ctx *%s.Context) (%s, error) {", ctx.Symbols.DocumentSerializerName(p.Name(), id), ctx.Symbols.ValueType(w, id), ctx.Serde(), result)
}

func (p *Protocol) structSerializer(ctx *protocol.GenerationContext, id string) error {
	w := ctx.Writer
	shape := ctx.Model.GetShape(id)
	p.serializerHeader(ctx, id, "map[string]interface{}")
	w.OpenBlock("if v == nil {")
	w.Write("return nil, nil")
	w.CloseBlock("}")
	w.Write("object := map[string]interface{}{}")
	for _, name := range shape.Members.Keys() {
		mem := shape.Members.Get(name)
		cond, value := ctx.Presence(mem, "v."+ctx.Symbols.MemberName(name))
		expr, err := p.documentValue(ctx, id, name, mem, value)
		if err != nil {
			return err
		}
		w.OpenBlock("if %s {", cond)
		p.store(ctx, fmt.Sprintf("object[%q]", smithy.JsonName(name, mem)), expr)
		w.CloseBlock("}")
	}
	w.Write("return object, nil")
	w.CloseBlock("}")
	return nil
}

// isNilable is true when the Go value of an element can be nil.
func isNilable(ctx *protocol.GenerationContext, mem *smithy.Member) bool {
	switch ctx.Model.MemberKind(mem) {
	case smithy.Structure, smithy.Union, smithy.List, smithy.Set, smithy.MapKind, smithy.Blob,
		smithy.Document, smithy.BigInteger, smithy.BigDecimal:
		return true
	}
	return false
}

func (p *Protocol) listSerializer(ctx *protocol.GenerationContext, id string) error {
	w := ctx.Writer
	elem := ctx.Model.GetShape(id).Member
	expr, err := p.documentValue(ctx, id, "member", elem, "item")
	if err != nil {
		return err
	}
	p.serializerHeader(ctx, id, "[]interface{}")
	w.Write("array := make([]interface{}, 0, len(v))")
	w.OpenBlock("for _, item := range v {")
	if isNilable(ctx, elem) && ctx.Model.MemberKind(elem) != smithy.Document {
		w.OpenBlock("if item == nil {")
		w.Write("array = append(array, nil)")
		w.Write("continue")
		w.CloseBlock("}")
	}
	if expr.Fallible {
		w.Write("encoded, err := %s", expr.Code)
		ctx.ReturnOnError()
		w.Write("array = append(array, encoded)")
	} else {
		w.Write("array = append(array, %s)", expr.Code)
	}
	w.CloseBlock("}")
	w.Write("return array, nil")
	w.CloseBlock("}")
	return nil
}

func (p *Protocol) mapSerializer(ctx *protocol.GenerationContext, id string) error {
	w := ctx.Writer
	value := ctx.Model.GetShape(id).Value
	expr, err := p.documentValue(ctx, id, "value", value, "item")
	if err != nil {
		return err
	}
	p.serializerHeader(ctx, id, "map[string]interface{}")
	w.Write("object := make(map[string]interface{}, len(v))")
	w.OpenBlock("for key, item := range v {")
	if isNilable(ctx, value) && ctx.Model.MemberKind(value) != smithy.Document {
		w.OpenBlock("if item == nil {")
		w.Write("object[key] = nil")
		w.Write("continue")
		w.CloseBlock("}")
	}
	p.store(ctx, "object[key]", expr)
	w.CloseBlock("}")
	w.Write("return object, nil")
	w.CloseBlock("}")
	return nil
}

func (p *Protocol) deserializerHeader(ctx *protocol.GenerationContext, id string) {
	w := ctx.Writer
	w.Write("")
	w.OpenBlock("func %s(value interface{}, ctx *%s.Context) (%s, error) {", ctx.Symbols.DocumentDeserializerName(p.Name(), id), ctx.Serde(), ctx.Symbols.ValueType(w, id))
}

func (p *Protocol) structDeserializer(ctx *protocol.GenerationContext, id string) error {
	w := ctx.Writer
	shape := ctx.Model.GetShape(id)
	p.deserializerHeader(ctx, id)
	w.Write("object, err := %s.ExpectObject(value)", ctx.Serde())
	ctx.ReturnOnError()
	w.OpenBlock("if object == nil {")
	w.Write("return nil, nil")
	w.CloseBlock("}")
	w.Write("v := &%s{}", ctx.Symbols.TypeName(id))
	for _, name := range shape.Members.Keys() {
		mem := shape.Members.Get(name)
		expr, err := p.documentParse(ctx, id, name, mem, "value")
		if err != nil {
			return err
		}
		w.OpenBlock("if value, ok := object[%q]; ok && value != nil {", smithy.JsonName(name, mem))
		ctx.AssignMember("v."+ctx.Symbols.MemberName(name), mem, expr)
		w.CloseBlock("}")
	}
	w.Write("return v, nil")
	w.CloseBlock("}")
	return nil
}

func (p *Protocol) listDeserializer(ctx *protocol.GenerationContext, id string) error {
	w := ctx.Writer
	elem := ctx.Model.GetShape(id).Member
	expr, err := p.documentParse(ctx, id, "member", elem, "item")
	if err != nil {
		return err
	}
	p.deserializerHeader(ctx, id)
	w.Write("array, err := %s.ExpectList(value)", ctx.Serde())
	ctx.ReturnOnError()
	w.OpenBlock("if array == nil {")
	w.Write("return nil, nil")
	w.CloseBlock("}")
	w.Write("v := make(%s, 0, len(array))", ctx.Symbols.ValueType(w, id))
	w.OpenBlock("for _, item := range array {")
	w.OpenBlock("if item == nil {")
	if isNilable(ctx, elem) {
		w.Write("v = append(v, nil)")
	}
	w.Write("continue")
	w.CloseBlock("}")
	if expr.Fallible {
		w.Write("parsed, err := %s", expr.Code)
		ctx.ReturnOnError()
		w.Write("v = append(v, parsed)")
	} else {
		w.Write("v = append(v, %s)", expr.Code)
	}
	w.CloseBlock("}")
	w.Write("return v, nil")
	w.CloseBlock("}")
	return nil
}

func (p *Protocol) mapDeserializer(ctx *protocol.GenerationContext, id string) error {
	w := ctx.Writer
	value := ctx.Model.GetShape(id).Value
	expr, err := p.documentParse(ctx, id, "value", value, "item")
	if err != nil {
		return err
	}
	p.deserializerHeader(ctx, id)
	w.Write("object, err := %s.ExpectObject(value)", ctx.Serde())
	ctx.ReturnOnError()
	w.OpenBlock("if object == nil {")
	w.Write("return nil, nil")
	w.CloseBlock("}")
	w.Write("v := make(%s, len(object))", ctx.Symbols.ValueType(w, id))
	w.OpenBlock("for key, item := range object {")
	w.OpenBlock("if item == nil {")
	if isNilable(ctx, value) {
		w.Write("v[key] = nil")
	}
	w.Write("continue")
	w.CloseBlock("}")
	ctx.Assign("v[key]", false, expr)
	w.CloseBlock("}")
	w.Write("return v, nil")
	w.CloseBlock("}")
	return nil
}
