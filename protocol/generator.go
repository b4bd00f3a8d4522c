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
	"fmt"
	"sort"
	"strings"

	"github.com/boynton/smithygen/httpbinding"
	"github.com/boynton/smithygen/smithy"
)

type Phase int

const (
	Idle Phase = iota
	GeneratingRequestSerializers
	GeneratingResponseDeserializers
	GeneratingSharedComponents
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "Idle"
	case GeneratingRequestSerializers:
		return "GeneratingRequestSerializers"
	case GeneratingResponseDeserializers:
		return "GeneratingResponseDeserializers"
	case GeneratingSharedComponents:
		return "GeneratingSharedComponents"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// PhaseError is returned when a generation phase is requested out of order.
type PhaseError struct {
	Current   Phase
	Requested Phase
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("cannot start %s from %s", e.Requested, e.Current)
}

// HttpBindingGenerator generates the request serializers, response deserializers and
// error dispatchers of a service for one protocol. The phases must run in order:
// request serializers, response deserializers, then shared components. A failure
// returns the generator to Idle and the output written so far must be discarded.
type HttpBindingGenerator struct {
	protocol Protocol
	phase    Phase
}

func NewHttpBindingGenerator(p Protocol) *HttpBindingGenerator {
	return &HttpBindingGenerator{protocol: p}
}

func (gen *HttpBindingGenerator) Protocol() Protocol {
	return gen.protocol
}

func (gen *HttpBindingGenerator) Phase() Phase {
	return gen.phase
}

// Generate runs all three phases with a fresh accumulator.
func (gen *HttpBindingGenerator) Generate(ctx *GenerationContext) error {
	acc := NewAccumulator()
	if err := gen.GenerateRequestSerializers(ctx, acc); err != nil {
		return err
	}
	if err := gen.GenerateResponseDeserializers(ctx, acc); err != nil {
		return err
	}
	return gen.GenerateSharedComponents(ctx, acc)
}

func (gen *HttpBindingGenerator) enter(next Phase) error {
	var from Phase
	switch next {
	case GeneratingResponseDeserializers:
		from = GeneratingRequestSerializers
	case GeneratingSharedComponents:
		from = GeneratingResponseDeserializers
	}
	if gen.phase != from {
		err := &PhaseError{Current: gen.phase, Requested: next}
		gen.phase = Idle
		return err
	}
	gen.phase = next
	return nil
}

func (gen *HttpBindingGenerator) fail(err error) error {
	gen.phase = Idle
	return err
}

type httpOperation struct {
	id   string
	http *smithy.HttpTrait
}

func (gen *HttpBindingGenerator) httpOperations(ctx *GenerationContext, direction string) ([]httpOperation, error) {
	var ops []httpOperation
	for _, opId := range ctx.Model.ContainedOperations(ctx.Service) {
		http, ok, err := ctx.Model.HttpTrait(opId)
		if err != nil {
			return nil, err
		}
		if !ok {
			ctx.Warnf("Unable to generate %s protocol %s bindings for %s because it does not have an http binding trait", gen.protocol.Name(), direction, opId)
			continue
		}
		ops = append(ops, httpOperation{id: opId, http: http})
	}
	return ops, nil
}

func at(bindings []*httpbinding.Binding, loc httpbinding.Location) []*httpbinding.Binding {
	var result []*httpbinding.Binding
	for _, b := range bindings {
		if b.Location == loc {
			result = append(result, b)
		}
	}
	if loc == httpbinding.Document {
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].MemberName < result[j].MemberName
		})
	}
	return result
}

func (gen *HttpBindingGenerator) recordDocumentShapes(ctx *GenerationContext, set *ShapeSet, bindings []*httpbinding.Binding) {
	for _, b := range bindings {
		if ctx.Model.ShapeKind(b.Target()).IsAggregate() {
			set.Add(b.Target())
		}
	}
}

// GenerateRequestSerializers emits one request serializer per HTTP operation.
func (gen *HttpBindingGenerator) GenerateRequestSerializers(ctx *GenerationContext, acc *Accumulator) error {
	if err := gen.enter(GeneratingRequestSerializers); err != nil {
		return err
	}
	ops, err := gen.httpOperations(ctx, "request")
	if err != nil {
		return gen.fail(err)
	}
	for _, op := range ops {
		ctx.Debugf("generating %s request serializer for %s", gen.protocol.Name(), op.id)
		if err := gen.generateRequestSerializer(ctx, acc, op); err != nil {
			return gen.fail(err)
		}
	}
	return nil
}

func (gen *HttpBindingGenerator) generateRequestSerializer(ctx *GenerationContext, acc *Accumulator, op httpOperation) error {
	w := ctx.Writer
	sym := ctx.Symbols
	codec := NewValueCodec(ctx, gen.protocol)
	bindings, err := ctx.Index.RequestBindings(op.id)
	if err != nil {
		return err
	}
	contentType, err := ctx.Index.DetermineRequestContentType(op.id, gen.protocol.DocumentContentType())
	if err != nil {
		return err
	}
	serde := ctx.Serde()
	ctx.ErrorReturn = "nil, err"
	w.AddImport("io", "")
	w.AddImport("net/http", "")
	w.AddImport("net/url", "")
	w.AddImport("strings", "")
	inputType := sym.InputTypeName(op.id)
	w.Write("")
	w.OpenBlock("func %s(input *%s, ctx *%s.Context) (*%s.Request, error) {", sym.SerializerName(gen.protocol.Name(), op.id), inputType, serde, serde)
	w.OpenBlock("if input == nil {")
	w.Write("input = &%s{}", inputType)
	w.CloseBlock("}")

	w.Write("headers := http.Header{}")
	w.Write("headers.Set(\"Content-Type\", %q)", contentType)
	gen.protocol.WriteDefaultHeaders(ctx, op.id)
	for _, b := range at(bindings, httpbinding.Header) {
		cond, value := ctx.Presence(b.Member, "input."+sym.MemberName(b.MemberName))
		expr, err := codec.InputValue(op.id, httpbinding.Header, b, value)
		if err != nil {
			return err
		}
		w.OpenBlock("if %s {", cond)
		w.Write("headers.Set(%q, %s)", b.LocationName, expr.Code)
		w.CloseBlock("}")
	}
	for _, b := range at(bindings, httpbinding.PrefixHeaders) {
		entry, err := gen.mapValueBinding(ctx, op.id, b)
		if err != nil {
			return err
		}
		expr, err := codec.InputValue(op.id, httpbinding.PrefixHeaders, entry, "value")
		if err != nil {
			return err
		}
		w.OpenBlock("for key, value := range input.%s {", sym.MemberName(b.MemberName))
		w.Write("headers.Set(%q+key, %s)", b.LocationName, expr.Code)
		w.CloseBlock("}")
	}

	if err := gen.writeResolvedPath(ctx, codec, op, bindings); err != nil {
		return err
	}

	w.Write("query := url.Values{}")
	for _, key := range op.http.Uri.QueryLiterals.Keys() {
		w.Write("query.Add(%q, %q)", key, op.http.Uri.QueryLiterals.Get(key))
	}
	for _, b := range at(bindings, httpbinding.Query) {
		cond, value := ctx.Presence(b.Member, "input."+sym.MemberName(b.MemberName))
		expr, err := codec.InputValue(op.id, httpbinding.Query, b, value)
		if err != nil {
			return err
		}
		w.OpenBlock("if %s {", cond)
		switch ctx.Model.ShapeKind(b.Target()) {
		case smithy.List, smithy.Set:
			w.OpenBlock("for _, value := range %s {", expr.Code)
			w.Write("query.Add(%q, value)", b.LocationName)
			w.CloseBlock("}")
		default:
			w.Write("query.Add(%q, %s)", b.LocationName, expr.Code)
		}
		w.CloseBlock("}")
	}

	w.Write("var body []byte")
	w.Write("var stream io.Reader")
	if docs := at(bindings, httpbinding.Document); len(docs) > 0 {
		gen.recordDocumentShapes(ctx, acc.SerializeDocumentShapes, docs)
		if err := gen.protocol.SerializeInputDocument(ctx, op.id, docs); err != nil {
			return err
		}
		w.Write("encoded, err := %s", gen.protocol.EncodeDocument("bodyParams"))
		ctx.ReturnOnError()
		w.Write("body = encoded")
	} else if payloads := at(bindings, httpbinding.Payload); len(payloads) == 1 {
		if err := gen.writeRequestPayload(ctx, codec, acc, op, payloads[0]); err != nil {
			return err
		}
	}

	w.Write("hostname := ctx.Endpoint.Hostname")
	if err := gen.writeHostPrefix(ctx, op, bindings); err != nil {
		return err
	}
	w.OpenBlock("return &%s.Request{", serde)
	w.Write("Protocol: ctx.Endpoint.Protocol,")
	w.Write("Method: %q,", op.http.Method)
	w.Write("Hostname: hostname,")
	w.Write("Port: ctx.Endpoint.Port,")
	w.Write("Path: resolvedPath,")
	w.Write("Headers: headers,")
	w.Write("Query: query,")
	w.Write("Body: body,")
	w.Write("Stream: stream,")
	w.CloseBlock("}, nil")
	w.CloseBlock("}")
	return nil
}

func (gen *HttpBindingGenerator) mapValueBinding(ctx *GenerationContext, opId string, b *httpbinding.Binding) (*httpbinding.Binding, error) {
	kind := ctx.Model.ShapeKind(b.Target())
	if kind != smithy.MapKind {
		return nil, &UnsupportedBindingError{Operation: opId, Member: b.MemberName, Kind: kind, Location: b.Location, Protocol: gen.protocol.Name()}
	}
	return &httpbinding.Binding{
		MemberName:   b.MemberName,
		Member:       ctx.Model.GetShape(b.Target()).Value,
		Location:     b.Location,
		LocationName: b.LocationName,
	}, nil
}

func (gen *HttpBindingGenerator) writeResolvedPath(ctx *GenerationContext, codec *ValueCodec, op httpOperation, bindings []*httpbinding.Binding) error {
	w := ctx.Writer
	serde := ctx.Serde()
	w.Write("resolvedPath := strings.TrimSuffix(ctx.Endpoint.Path, \"/\") + %q", op.http.Uri.Path())
	labels := at(bindings, httpbinding.Label)
	for _, seg := range op.http.Uri.Labels() {
		var b *httpbinding.Binding
		for _, lb := range labels {
			if lb.LocationName == seg.Content {
				b = lb
			}
		}
		if b == nil {
			return &httpbinding.ModelConsistencyError{Shape: op.id, Reason: "URI label {" + seg.Content + "} has no matching httpLabel member"}
		}
		field := "input." + ctx.Symbols.MemberName(b.MemberName)
		_, value := ctx.Presence(b.Member, field)
		kind := ctx.Model.MemberKind(b.Member)
		switch kind {
		case smithy.Enum:
			w.OpenBlock("if %s == \"\" {", field)
			w.Write("return nil, &%s.LabelError{Label: %q, Empty: true}", serde, b.LocationName)
			w.CloseBlock("}")
		case smithy.IntEnum:
		default:
			w.OpenBlock("if %s == nil {", field)
			w.Write("return nil, &%s.LabelError{Label: %q}", serde, b.LocationName)
			w.CloseBlock("}")
			if kind == smithy.String {
				w.OpenBlock("if len(%s) == 0 {", value)
				w.Write("return nil, &%s.LabelError{Label: %q, Empty: true}", serde, b.LocationName)
				w.CloseBlock("}")
			}
		}
		expr, err := codec.InputValue(op.id, httpbinding.Label, b, value)
		if err != nil {
			return err
		}
		w.Write("resolvedPath = strings.Replace(resolvedPath, %q, %s.EscapeLabel(%s, %v), 1)", seg.String(), serde, expr.Code, seg.Greedy)
	}
	return nil
}

func (gen *HttpBindingGenerator) writeRequestPayload(ctx *GenerationContext, codec *ValueCodec, acc *Accumulator, op httpOperation, b *httpbinding.Binding) error {
	w := ctx.Writer
	cond, value := ctx.Presence(b.Member, "input."+ctx.Symbols.MemberName(b.MemberName))
	expr, err := codec.InputValue(op.id, httpbinding.Payload, b, value)
	if err != nil {
		return err
	}
	kind := ctx.Model.ShapeKind(b.Target())
	w.OpenBlock("if %s {", cond)
	switch {
	case kind == smithy.Blob && ctx.Model.IsStreaming(b.Member):
		w.Write("stream = %s", expr.Code)
	case kind == smithy.Structure || kind == smithy.Union:
		acc.SerializeDocumentShapes.Add(b.Target())
		w.Write("payload, err := %s", expr.Code)
		ctx.ReturnOnError()
		w.Write("encoded, err := %s", gen.protocol.EncodeDocument("payload"))
		ctx.ReturnOnError()
		w.Write("body = encoded")
	case kind == smithy.Document:
		w.Write("encoded, err := %s", gen.protocol.EncodeDocument(expr.Code))
		ctx.ReturnOnError()
		w.Write("body = encoded")
	default:
		w.Write("body = %s", expr.Code)
	}
	w.CloseBlock("}")
	return nil
}

// hostPrefixLabels returns the {label} names of an endpoint hostPrefix, in order.
func hostPrefixLabels(prefix string) []string {
	var labels []string
	for {
		start := strings.Index(prefix, "{")
		if start < 0 {
			return labels
		}
		end := strings.Index(prefix[start:], "}")
		if end < 0 {
			return labels
		}
		labels = append(labels, prefix[start+1:start+end])
		prefix = prefix[start+end+1:]
	}
}

func (gen *HttpBindingGenerator) writeHostPrefix(ctx *GenerationContext, op httpOperation, bindings []*httpbinding.Binding) error {
	prefix := ctx.Model.EndpointHostPrefix(op.id)
	if prefix == "" {
		return nil
	}
	w := ctx.Writer
	serde := ctx.Serde()
	hostExpr := fmt.Sprintf("%q", prefix)
	w.OpenBlock("if !ctx.DisableHostPrefix {")
	for _, label := range hostPrefixLabels(prefix) {
		var b *httpbinding.Binding
		for _, candidate := range bindings {
			if candidate.MemberName == label && smithy.IsHostLabel(candidate.Member) {
				b = candidate
			}
		}
		if b == nil {
			return &httpbinding.ModelConsistencyError{Shape: op.id, Reason: "endpoint host prefix label {" + label + "} has no matching hostLabel member"}
		}
		if kind := ctx.Model.MemberKind(b.Member); kind != smithy.String {
			return &UnsupportedBindingError{Operation: op.id, Member: b.MemberName, Kind: kind, Location: b.Location, Protocol: gen.protocol.Name()}
		}
		field := "input." + ctx.Symbols.MemberName(b.MemberName)
		w.OpenBlock("if %s == nil || len(*%s) == 0 {", field, field)
		w.Write("return nil, &%s.HostLabelError{Label: %q}", serde, label)
		w.CloseBlock("}")
		hostExpr = fmt.Sprintf("strings.Replace(%s, %q, *%s, 1)", hostExpr, "{"+label+"}", field)
	}
	w.Write("hostname = %s + hostname", hostExpr)
	w.OpenBlock("if !%s.IsValidHostname(hostname) {", serde)
	w.Write("return nil, &%s.HostLabelError{Hostname: hostname}", serde)
	w.CloseBlock("}")
	w.CloseBlock("}")
	return nil
}

// GenerateResponseDeserializers emits a response deserializer and an error dispatcher
// per HTTP operation.
func (gen *HttpBindingGenerator) GenerateResponseDeserializers(ctx *GenerationContext, acc *Accumulator) error {
	if err := gen.enter(GeneratingResponseDeserializers); err != nil {
		return err
	}
	ops, err := gen.httpOperations(ctx, "response")
	if err != nil {
		return gen.fail(err)
	}
	for _, op := range ops {
		ctx.Debugf("generating %s response deserializer for %s", gen.protocol.Name(), op.id)
		if err := gen.generateResponseDeserializer(ctx, acc, op); err != nil {
			return gen.fail(err)
		}
		if err := gen.generateErrorDispatcher(ctx, acc, op); err != nil {
			return gen.fail(err)
		}
	}
	return nil
}

func (gen *HttpBindingGenerator) generateResponseDeserializer(ctx *GenerationContext, acc *Accumulator, op httpOperation) error {
	w := ctx.Writer
	sym := ctx.Symbols
	codec := NewValueCodec(ctx, gen.protocol)
	bindings, err := ctx.Index.ResponseBindings(op.id)
	if err != nil {
		return err
	}
	serde := ctx.Serde()
	ctx.ErrorReturn = "nil, err"
	outputType := sym.OutputTypeName(op.id)
	w.Write("")
	w.OpenBlock("func %s(output *%s.Response, ctx *%s.Context) (*%s, error) {", sym.DeserializerName(gen.protocol.Name(), op.id), serde, serde, outputType)
	w.OpenBlock("if output.StatusCode != %d && output.StatusCode >= 400 {", op.http.Code)
	w.Write("return nil, %s(output, ctx)", sym.ErrorDispatcherName(gen.protocol.Name(), op.id))
	w.CloseBlock("}")
	gen.writeContents(ctx, outputType, bindings)
	if err := gen.writeResponseHeaders(ctx, codec, op.id, bindings); err != nil {
		return err
	}
	if docs := at(bindings, httpbinding.Document); len(docs) > 0 {
		gen.recordDocumentShapes(ctx, acc.DeserializeDocumentShapes, docs)
		w.Write("document, err := %s", gen.protocol.ParseDocumentBody("output.Body"))
		ctx.ReturnOnError()
		if err := gen.protocol.DeserializeOutputDocument(ctx, ctx.Model.OperationOutput(op.id), docs); err != nil {
			return err
		}
	} else if payloads := at(bindings, httpbinding.Payload); len(payloads) == 1 {
		if err := gen.writeResponsePayload(ctx, codec, acc, op.id, payloads[0]); err != nil {
			return err
		}
	} else {
		w.OpenBlock("if _, err := %s.CollectBody(output.Body); err != nil {", serde)
		w.Write("return %s", ctx.ErrorReturn)
		w.CloseBlock("}")
	}
	w.Write("return contents, nil")
	w.CloseBlock("}")
	return nil
}

// writeContents declares "contents" with every member explicitly unset.
func (gen *HttpBindingGenerator) writeContents(ctx *GenerationContext, typeName string, bindings []*httpbinding.Binding) {
	w := ctx.Writer
	sorted := append([]*httpbinding.Binding(nil), bindings...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MemberName < sorted[j].MemberName
	})
	w.OpenBlock("contents := &%s{", typeName)
	w.Write("ResultMetadata: %s.DeserializeMetadata(output),", ctx.Serde())
	for _, b := range sorted {
		w.Write("%s: %s,", ctx.Symbols.MemberName(b.MemberName), ctx.Symbols.ZeroValue(b.Member))
	}
	w.CloseBlock("}")
}

func (gen *HttpBindingGenerator) writeResponseHeaders(ctx *GenerationContext, codec *ValueCodec, id string, bindings []*httpbinding.Binding) error {
	w := ctx.Writer
	sym := ctx.Symbols
	serde := ctx.Serde()
	for _, b := range at(bindings, httpbinding.Header) {
		expr, err := codec.OutputValue(id, httpbinding.Header, b, "v")
		if err != nil {
			return err
		}
		w.OpenBlock("if v, ok := %s.GetHeader(output.Header, %q); ok {", serde, b.LocationName)
		ctx.AssignMember("contents."+sym.MemberName(b.MemberName), b.Member, expr)
		w.CloseBlock("}")
	}
	for _, b := range at(bindings, httpbinding.PrefixHeaders) {
		entry, err := gen.mapValueBinding(ctx, id, b)
		if err != nil {
			return err
		}
		expr, err := codec.OutputValue(id, httpbinding.PrefixHeaders, entry, "v")
		if err != nil {
			return err
		}
		w.AddImport("strings", "")
		field := "contents." + sym.MemberName(b.MemberName)
		w.OpenBlock("for headerKey := range output.Header {")
		w.OpenBlock("if !%s.HasHeaderPrefix(headerKey, %q) {", serde, b.LocationName)
		w.Write("continue")
		w.CloseBlock("}")
		w.OpenBlock("if %s == nil {", field)
		w.Write("%s = %s{}", field, sym.ValueType(w, b.Target()))
		w.CloseBlock("}")
		w.Write("v, _ := %s.GetHeader(output.Header, headerKey)", serde)
		ctx.Assign(fmt.Sprintf("%s[strings.ToLower(headerKey[len(%q):])]", field, b.LocationName), false, expr)
		w.CloseBlock("}")
	}
	return nil
}

func (gen *HttpBindingGenerator) writeResponsePayload(ctx *GenerationContext, codec *ValueCodec, acc *Accumulator, id string, b *httpbinding.Binding) error {
	w := ctx.Writer
	serde := ctx.Serde()
	target := "contents." + ctx.Symbols.MemberName(b.MemberName)
	kind := ctx.Model.ShapeKind(b.Target())
	switch {
	case kind == smithy.Blob && ctx.Model.IsStreaming(b.Member):
		expr, err := codec.OutputValue(id, httpbinding.Payload, b, "output.Body")
		if err != nil {
			return err
		}
		w.Write("%s = %s", target, expr.Code)
	case kind == smithy.Blob:
		expr, err := codec.OutputValue(id, httpbinding.Payload, b, "body")
		if err != nil {
			return err
		}
		w.Write("body, err := %s.CollectBody(output.Body)", serde)
		ctx.ReturnOnError()
		w.OpenBlock("if len(body) > 0 {")
		ctx.Assign(target, false, expr)
		w.CloseBlock("}")
	case kind == smithy.String || kind == smithy.Enum:
		expr, err := codec.OutputValue(id, httpbinding.Payload, b, "body")
		if err != nil {
			return err
		}
		w.Write("body, err := %s.CollectBodyString(output.Body)", serde)
		ctx.ReturnOnError()
		w.OpenBlock("if len(body) > 0 {")
		ctx.AssignMember(target, b.Member, expr)
		w.CloseBlock("}")
	case kind == smithy.Structure || kind == smithy.Union || kind == smithy.Document:
		expr, err := codec.OutputValue(id, httpbinding.Payload, b, "document")
		if err != nil {
			return err
		}
		if kind != smithy.Document {
			acc.DeserializeDocumentShapes.Add(b.Target())
		}
		w.Write("document, err := %s", gen.protocol.ParseDocumentBody("output.Body"))
		ctx.ReturnOnError()
		w.OpenBlock("if document != nil {")
		ctx.Assign(target, false, expr)
		w.CloseBlock("}")
	default:
		_, err := codec.OutputValue(id, httpbinding.Payload, b, "body")
		return err
	}
	return nil
}

// generateErrorDispatcher emits the function that turns an error response into the
// modeled error matching its code, or an UnknownError.
func (gen *HttpBindingGenerator) generateErrorDispatcher(ctx *GenerationContext, acc *Accumulator, op httpOperation) error {
	w := ctx.Writer
	sym := ctx.Symbols
	serde := ctx.Serde()
	ctx.ErrorReturn = "err"
	w.Write("")
	w.OpenBlock("func %s(output *%s.Response, ctx *%s.Context) error {", sym.ErrorDispatcherName(gen.protocol.Name(), op.id), serde, serde)
	w.Write("raw, err := %s.CollectBody(output.Body)", serde)
	ctx.ReturnOnError()
	w.Write("parsedOutput := &%s.ErrorResponse{Response: output, Raw: raw}", serde)
	if gen.protocol.ErrorCodeInBody() {
		w.Write("document, err := %s", gen.protocol.ParseDocumentBytes("raw"))
		ctx.ReturnOnError()
		w.Write("parsedOutput.Document = document")
	}
	w.Write("errorCode := \"\"")
	gen.protocol.WriteErrorCodeParser(ctx)
	w.OpenBlock("switch errorCode {")
	seen := make(map[string]bool, 0)
	for _, errId := range ctx.Model.OperationErrors(ctx.Service, op.id) {
		switch ctx.Model.ErrorTrait(errId) {
		case "client", "server":
		default:
			return &httpbinding.ModelConsistencyError{Shape: errId, Reason: "error structure must have an error trait of client or server"}
		}
		acc.ErrorShapes.Add(errId)
		var cases []string
		for _, code := range []string{smithy.ShapeIdName(errId), errId} {
			if !seen[code] {
				seen[code] = true
				cases = append(cases, fmt.Sprintf("%q", code))
			}
		}
		if len(cases) == 0 {
			continue
		}
		w.Write("case %s:", strings.Join(cases, ", "))
		w.Write("return %s(parsedOutput, ctx)", sym.ErrorDeserializerName(gen.protocol.Name(), errId))
	}
	w.Write("default:")
	w.Write("return %s.NewUnknownError(errorCode, parsedOutput)", serde)
	w.CloseBlock("}")
	w.CloseBlock("}")
	ctx.ErrorReturn = "nil, err"
	return nil
}

// GenerateSharedComponents emits the error deserializers and the document shape
// serializers and deserializers recorded in the accumulator.
func (gen *HttpBindingGenerator) GenerateSharedComponents(ctx *GenerationContext, acc *Accumulator) error {
	if err := gen.enter(GeneratingSharedComponents); err != nil {
		return err
	}
	for _, errId := range acc.ErrorShapes.Sorted() {
		if err := gen.generateErrorDeserializer(ctx, acc, errId); err != nil {
			return gen.fail(err)
		}
	}
	ctx.ErrorReturn = "nil, err"
	if err := gen.protocol.GenerateDocumentShapeSerializers(ctx, acc.SerializeDocumentShapes.Sorted()); err != nil {
		return gen.fail(err)
	}
	if err := gen.protocol.GenerateDocumentShapeDeserializers(ctx, acc.DeserializeDocumentShapes.Sorted()); err != nil {
		return gen.fail(err)
	}
	gen.phase = Idle
	return nil
}

func (gen *HttpBindingGenerator) generateErrorDeserializer(ctx *GenerationContext, acc *Accumulator, errId string) error {
	w := ctx.Writer
	sym := ctx.Symbols
	codec := NewValueCodec(ctx, gen.protocol)
	bindings, err := ctx.Index.ResponseBindings(errId)
	if err != nil {
		return err
	}
	serde := ctx.Serde()
	ctx.ErrorReturn = "err"
	w.Write("")
	w.OpenBlock("func %s(parsedOutput *%s.ErrorResponse, ctx *%s.Context) error {", sym.ErrorDeserializerName(gen.protocol.Name(), errId), serde, serde)
	w.Write("output := parsedOutput.Response")
	gen.writeContents(ctx, sym.TypeName(errId), bindings)
	if err := gen.writeResponseHeaders(ctx, codec, errId, bindings); err != nil {
		return err
	}
	if docs := at(bindings, httpbinding.Document); len(docs) > 0 {
		gen.recordDocumentShapes(ctx, acc.DeserializeDocumentShapes, docs)
		gen.writeErrorDocument(ctx)
		if err := gen.protocol.DeserializeOutputDocument(ctx, errId, docs); err != nil {
			return err
		}
	} else if payloads := at(bindings, httpbinding.Payload); len(payloads) == 1 {
		b := payloads[0]
		target := "contents." + sym.MemberName(b.MemberName)
		kind := ctx.Model.ShapeKind(b.Target())
		switch {
		case kind == smithy.Blob && !ctx.Model.IsStreaming(b.Member):
			expr, err := codec.OutputValue(errId, httpbinding.Payload, b, "parsedOutput.Raw")
			if err != nil {
				return err
			}
			ctx.Assign(target, false, expr)
		case kind == smithy.String || kind == smithy.Enum:
			expr, err := codec.OutputValue(errId, httpbinding.Payload, b, "string(parsedOutput.Raw)")
			if err != nil {
				return err
			}
			ctx.AssignMember(target, b.Member, expr)
		case kind == smithy.Structure || kind == smithy.Union || kind == smithy.Document:
			expr, err := codec.OutputValue(errId, httpbinding.Payload, b, "document")
			if err != nil {
				return err
			}
			if kind != smithy.Document {
				acc.DeserializeDocumentShapes.Add(b.Target())
			}
			gen.writeErrorDocument(ctx)
			w.OpenBlock("if document != nil {")
			ctx.Assign(target, false, expr)
			w.CloseBlock("}")
		default:
			return &UnsupportedBindingError{Operation: errId, Member: b.MemberName, Kind: kind, Location: httpbinding.Payload, Protocol: gen.protocol.Name()}
		}
	}
	w.Write("return contents")
	w.CloseBlock("}")
	ctx.ErrorReturn = "nil, err"
	return nil
}

// writeErrorDocument declares "document" for an error deserializer.
func (gen *HttpBindingGenerator) writeErrorDocument(ctx *GenerationContext) {
	w := ctx.Writer
	if gen.protocol.ErrorCodeInBody() {
		w.Write("document := %s", gen.protocol.ErrorBodyLocation("parsedOutput.Document"))
		return
	}
	w.Write("document, err := %s", gen.protocol.ParseDocumentBytes("parsedOutput.Raw"))
	ctx.ReturnOnError()
	if loc := gen.protocol.ErrorBodyLocation("document"); loc != "document" {
		w.Write("document = %s", loc)
	}
}
