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

// Package restjson implements the aws.protocols#restJson1 protocol: HTTP bindings
// with JSON document bodies.
package restjson

import (
	"fmt"

	"github.com/boynton/smithygen/httpbinding"
	"github.com/boynton/smithygen/protocol"
	"github.com/boynton/smithygen/smithy"
)

const Name = "aws.protocols#restJson1"

// ErrorTypeHeader carries the error code of an error response, when present.
const ErrorTypeHeader = "X-Amzn-Errortype"

type Protocol struct {
}

var _ protocol.Protocol = (*Protocol)(nil)

func New() *Protocol {
	return &Protocol{}
}

func (p *Protocol) Name() string {
	return Name
}

func (p *Protocol) DocumentContentType() string {
	return "application/json"
}

func (p *Protocol) DocumentTimestampFormat() httpbinding.Format {
	return httpbinding.EpochSeconds
}

func (p *Protocol) ErrorCodeInBody() bool {
	return true
}

func (p *Protocol) EncodeDocument(expr string) string {
	return "serde.EncodeJSONDocument(" + expr + ")"
}

func (p *Protocol) ParseDocumentBody(expr string) string {
	return "serde.ParseJSONBody(" + expr + ")"
}

func (p *Protocol) ParseDocumentBytes(expr string) string {
	return "serde.ParseJSONBytes(" + expr + ")"
}

// ErrorBodyLocation is the whole document: restJson1 errors carry their members at the top level.
func (p *Protocol) ErrorBodyLocation(expr string) string {
	return expr
}

func (p *Protocol) WriteDefaultHeaders(ctx *protocol.GenerationContext, opId string) {
}

// WriteErrorCodeParser reads the code from the error type header, then from the "code"
// and "__type" members of the body.
func (p *Protocol) WriteErrorCodeParser(ctx *protocol.GenerationContext) {
	w := ctx.Writer
	serde := ctx.Serde()
	w.OpenBlock("if v, ok := %s.GetHeader(output.Header, %q); ok {", serde, ErrorTypeHeader)
	w.Write("errorCode = v")
	w.CloseBlock("}")
	for _, key := range []string{"code", "__type"} {
		w.OpenBlock("if errorCode == \"\" {")
		w.Write("errorCode = %s.DocumentString(parsedOutput.Document, %q)", serde, key)
		w.CloseBlock("}")
	}
	w.Write("errorCode = %s.SanitizeErrorCode(errorCode)", serde)
}

// SerializeInputDocument builds "bodyParams" from the document members of "input".
func (p *Protocol) SerializeInputDocument(ctx *protocol.GenerationContext, opId string, bindings []*httpbinding.Binding) error {
	w := ctx.Writer
	w.Write("bodyParams := map[string]interface{}{}")
	for _, b := range bindings {
		cond, value := ctx.Presence(b.Member, "input."+ctx.Symbols.MemberName(b.MemberName))
		expr, err := p.documentValue(ctx, opId, b.MemberName, b.Member, value)
		if err != nil {
			return err
		}
		w.OpenBlock("if %s {", cond)
		p.store(ctx, fmt.Sprintf("bodyParams[%q]", smithy.JsonName(b.MemberName, b.Member)), expr)
		w.CloseBlock("}")
	}
	return nil
}

// DeserializeOutputDocument reads the document members of "contents" from "document".
func (p *Protocol) DeserializeOutputDocument(ctx *protocol.GenerationContext, shapeId string, bindings []*httpbinding.Binding) error {
	w := ctx.Writer
	w.Write("object, err := %s.ExpectObject(document)", ctx.Serde())
	ctx.ReturnOnError()
	for _, b := range bindings {
		expr, err := p.documentParse(ctx, shapeId, b.MemberName, b.Member, "value")
		if err != nil {
			return err
		}
		w.OpenBlock("if value, ok := object[%q]; ok && value != nil {", smithy.JsonName(b.MemberName, b.Member))
		ctx.AssignMember("contents."+ctx.Symbols.MemberName(b.MemberName), b.Member, expr)
		w.CloseBlock("}")
	}
	return nil
}

// store writes "target = expr", unwrapping a fallible expression.
func (p *Protocol) store(ctx *protocol.GenerationContext, target string, expr protocol.Expr) {
	w := ctx.Writer
	if !expr.Fallible {
		w.Write("%s = %s", target, expr.Code)
		return
	}
	w.Write("encoded, err := %s", expr.Code)
	ctx.ReturnOnError()
	w.Write("%s = encoded", target)
}
