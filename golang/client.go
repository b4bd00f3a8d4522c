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
	"github.com/boynton/smithygen/common"
	"github.com/boynton/smithygen/smithy"
)

// ClientGenerator emits a Client with one method per operation. Each method calls the
// serializer and deserializer generated for the protocol.
type ClientGenerator struct {
	ast      *smithy.AST
	symbols  *Symbols
	service  string
	protocol string
}

func NewClientGenerator(symbols *Symbols, serviceId string, protocol string) *ClientGenerator {
	return &ClientGenerator{
		ast:      symbols.Model(),
		symbols:  symbols,
		service:  serviceId,
		protocol: protocol,
	}
}

func (gen *ClientGenerator) Generate(w *Writer) error {
	serde := gen.symbols.Serde(w)
	w.AddImport("context", "")
	service := gen.ast.GetShape(gen.service)
	w.Write("")
	if doc := smithy.Documentation(service.Traits); doc != "" {
		w.Emit(common.FormatComment("", "// ", doc, 80, false))
		w.Write("//")
	}
	w.Write("// Client calls the %s service.", smithy.ShapeIdName(gen.service))
	w.OpenBlock("type Client struct {")
	w.Write("ctx     *%s.Context", serde)
	w.Write("handler %s.Handler", serde)
	w.CloseBlock("}")
	w.Write("")
	w.Write("// NewClient creates a client for the endpoint. A nil handler uses http.DefaultClient.")
	w.OpenBlock("func NewClient(endpoint string, handler %s.Handler) (*Client, error) {", serde)
	w.Write("ctx, err := %s.NewContext(endpoint)", serde)
	w.ReturnOnError("nil, err")
	w.OpenBlock("if handler == nil {")
	w.Write("handler = &%s.HTTPHandler{Logger: ctx.Logger}", serde)
	w.CloseBlock("}")
	w.Write("return &Client{ctx: ctx, handler: handler}, nil")
	w.CloseBlock("}")
	w.Write("")
	w.OpenBlock("func (c *Client) Context() *%s.Context {", serde)
	w.Write("return c.ctx")
	w.CloseBlock("}")
	for _, opId := range gen.ast.ContainedOperations(gen.service) {
		if _, ok, _ := gen.ast.HttpTrait(opId); !ok {
			continue
		}
		gen.generateOperation(w, opId)
	}
	return nil
}

func (gen *ClientGenerator) generateOperation(w *Writer, opId string) {
	opName := gen.symbols.OperationName(opId)
	in := gen.symbols.InputTypeName(opId)
	out := gen.symbols.OutputTypeName(opId)
	w.Write("")
	if doc := smithy.Documentation(gen.ast.GetShape(opId).Traits); doc != "" {
		w.Emit(common.FormatComment("", "// ", doc, 80, false))
	}
	w.OpenBlock("func (c *Client) %s(ctx context.Context, input *%s) (*%s, error) {", opName, in, out)
	w.OpenBlock("if input == nil {")
	w.Write("input = &%s{}", in)
	w.CloseBlock("}")
	w.Write("req, err := %s(input, c.ctx)", gen.symbols.SerializerName(gen.protocol, opId))
	w.ReturnOnError("nil, err")
	w.Write("resp, err := c.handler.Handle(ctx, req)")
	w.ReturnOnError("nil, err")
	w.Write("return %s(resp, c.ctx)", gen.symbols.DeserializerName(gen.protocol, opId))
	w.CloseBlock("}")
}
