package protocol

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/aws/smithy-go/logging"
	"github.com/google/go-cmp/cmp"

	"github.com/boynton/smithygen/golang"
	"github.com/boynton/smithygen/httpbinding"
	"github.com/boynton/smithygen/smithy"
)

const weatherService = "example.weather#Weather"

// stubProtocol writes placeholder document code and records the shapes it is asked for.
type stubProtocol struct {
	name          string
	serializers   []string
	deserializers []string
}

func (p *stubProtocol) Name() string                               { return p.name }
func (p *stubProtocol) DocumentContentType() string                { return "application/x-stub" }
func (p *stubProtocol) DocumentTimestampFormat() httpbinding.Format { return httpbinding.EpochSeconds }
func (p *stubProtocol) ErrorCodeInBody() bool                      { return false }
func (p *stubProtocol) EncodeDocument(expr string) string          { return "encode(" + expr + ")" }
func (p *stubProtocol) ParseDocumentBody(expr string) string       { return "parseBody(" + expr + ")" }
func (p *stubProtocol) ParseDocumentBytes(expr string) string      { return "parseBytes(" + expr + ")" }
func (p *stubProtocol) ErrorBodyLocation(expr string) string       { return expr + ".Error" }

func (p *stubProtocol) WriteDefaultHeaders(ctx *GenerationContext, opId string) {
	ctx.Writer.Write("headers.Set(\"X-Stub\", \"1\")")
}

func (p *stubProtocol) WriteErrorCodeParser(ctx *GenerationContext) {
	ctx.Writer.Write("errorCode = output.Header.Get(\"X-Error\")")
}

func (p *stubProtocol) SerializeInputDocument(ctx *GenerationContext, opId string, bindings []*httpbinding.Binding) error {
	ctx.Writer.Write("bodyParams := map[string]interface{}{}")
	return nil
}

func (p *stubProtocol) DeserializeOutputDocument(ctx *GenerationContext, shapeId string, bindings []*httpbinding.Binding) error {
	ctx.Writer.Write("_ = document")
	return nil
}

func (p *stubProtocol) GenerateDocumentShapeSerializers(ctx *GenerationContext, shapeIds []string) error {
	p.serializers = append(p.serializers, shapeIds...)
	return nil
}

func (p *stubProtocol) GenerateDocumentShapeDeserializers(ctx *GenerationContext, shapeIds []string) error {
	p.deserializers = append(p.deserializers, shapeIds...)
	return nil
}

func loadWeather(t *testing.T) *smithy.AST {
	t.Helper()
	ast, err := smithy.LoadAST("../smithy/testdata/weather.json")
	if err != nil {
		t.Fatal(err)
	}
	return ast
}

func newContext(t *testing.T, p Protocol, logger logging.Logger) *GenerationContext {
	t.Helper()
	ast := loadWeather(t)
	symbols := golang.NewSymbols(ast, "")
	return NewGenerationContext(ast, weatherService, p.Name(), symbols, golang.NewWriter("weather"), logger)
}

func findBinding(t *testing.T, bindings []*httpbinding.Binding, name string) *httpbinding.Binding {
	t.Helper()
	for _, b := range bindings {
		if b.MemberName == name {
			return b
		}
	}
	t.Fatalf("no binding for %s", name)
	return nil
}

func TestInputValues(t *testing.T) {
	p := &stubProtocol{name: NoProtocol}
	ctx := newContext(t, p, nil)
	codec := NewValueCodec(ctx, p)
	cases := map[string]struct {
		Op       string
		Member   string
		Location httpbinding.Location
		Source   string
		Expect   Expr
	}{
		"string header": {
			Op: "example.weather#GetCity", Member: "requestId", Location: httpbinding.Header, Source: "*input.RequestId",
			Expect: Expr{Code: "*input.RequestId"},
		},
		"string label": {
			Op: "example.weather#GetCity", Member: "cityId", Location: httpbinding.Label, Source: "*input.CityId",
			Expect: Expr{Code: "*input.CityId"},
		},
		"blob header": {
			Op: "example.weather#CreateCity", Member: "token", Location: httpbinding.Header, Source: "input.Token",
			Expect: Expr{Code: "base64.StdEncoding.EncodeToString(input.Token)"},
		},
		"string list query": {
			Op: "example.weather#CreateCity", Member: "tags", Location: httpbinding.Query, Source: "input.Tags",
			Expect: Expr{Code: "input.Tags"},
		},
		"integer header": {
			Op: "example.weather#PutCityPhoto", Member: "size", Location: httpbinding.Header, Source: "*input.Size",
			Expect: Expr{Code: "strconv.FormatInt(int64(*input.Size), 10)"},
		},
		"blob payload": {
			Op: "example.weather#PutCityPhoto", Member: "photo", Location: httpbinding.Payload, Source: "input.Photo",
			Expect: Expr{Code: "input.Photo"},
		},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			bindings, err := ctx.Index.RequestBindings(c.Op)
			if err != nil {
				t.Fatal(err)
			}
			expr, err := codec.InputValue(c.Op, c.Location, findBinding(t, bindings, c.Member), c.Source)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(c.Expect, expr); diff != "" {
				t.Errorf("expression mismatch (-expect +actual):\n%s", diff)
			}
		})
	}
}

func TestOutputValues(t *testing.T) {
	p := &stubProtocol{name: NoProtocol}
	ctx := newContext(t, p, nil)
	codec := NewValueCodec(ctx, p)
	cases := map[string]struct {
		Shape    string
		Member   string
		Location httpbinding.Location
		Expect   Expr
	}{
		"http-date header": {
			Shape: "example.weather#GetCity", Member: "lastUpdated", Location: httpbinding.Header,
			Expect: Expr{Code: "smithytime.ParseHTTPDate(v)", Fallible: true},
		},
		"list header": {
			Shape: "example.weather#GetCity", Member: "tags", Location: httpbinding.Header,
			Expect: Expr{Code: "serde.SplitHeaderList(v)"},
		},
		"boolean header": {
			Shape: "example.weather#GetCityImage", Member: "enabled", Location: httpbinding.Header,
			Expect: Expr{Code: `v == "true"`},
		},
		"long header": {
			Shape: "example.weather#GetCityImage", Member: "size", Location: httpbinding.Header,
			Expect: Expr{Code: "serde.ParseInt64(v)", Fallible: true},
		},
		"double header": {
			Shape: "example.weather#GetCityImage", Member: "ratio", Location: httpbinding.Header,
			Expect: Expr{Code: "serde.ParseFloat64(v)", Fallible: true},
		},
		"struct payload": {
			Shape: "example.weather#GetForecast", Member: "forecast", Location: httpbinding.Payload,
			Expect: Expr{Code: "deserializeNoneDocumentForecast(v, ctx)", Fallible: true},
		},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			bindings, err := ctx.Index.ResponseBindings(c.Shape)
			if err != nil {
				t.Fatal(err)
			}
			expr, err := codec.OutputValue(c.Shape, c.Location, findBinding(t, bindings, c.Member), "v")
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(c.Expect, expr); diff != "" {
				t.Errorf("expression mismatch (-expect +actual):\n%s", diff)
			}
		})
	}
	if diff := cmp.Diff([]string{"github.com/aws/smithy-go/time", "github.com/boynton/smithygen/serde"}, ctx.Writer.Imports()); diff != "" {
		t.Errorf("imports mismatch:\n%s", diff)
	}
}

func TestUnsupportedBinding(t *testing.T) {
	p := &stubProtocol{name: NoProtocol}
	ctx := newContext(t, p, nil)
	bindings, err := ctx.Index.ResponseBindings("example.weather#GetCity")
	if err != nil {
		t.Fatal(err)
	}
	b := findBinding(t, bindings, "coordinates")
	_, err = NewValueCodec(ctx, p).InputValue("example.weather#GetCity", httpbinding.Header, b, "input.Coordinates")
	var unsupported *UnsupportedBindingError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expect UnsupportedBindingError, got %v", err)
	}
	expect := "Unsupported HEADER binding of coordinates to structure in example.weather#GetCity using the none protocol"
	if err.Error() != expect {
		t.Errorf("expect %q, got %q", expect, err.Error())
	}
	if _, err := NewValueCodec(ctx, p).InputValue("example.weather#GetCity", httpbinding.Document, b, "input.Coordinates"); err == nil {
		t.Errorf("document values belong to the protocol")
	}
}

func TestRegistryResolve(t *testing.T) {
	ast := loadWeather(t)
	restJson := &stubProtocol{name: "aws.protocols#restJson1"}
	other := &stubProtocol{name: "example.protocols#other"}
	reg := NewRegistry(other, restJson)
	if diff := cmp.Diff([]string{"aws.protocols#restJson1", "example.protocols#other"}, reg.Names()); diff != "" {
		t.Errorf("names mismatch:\n%s", diff)
	}
	if p := reg.Resolve(ast, weatherService, ""); p != "aws.protocols#restJson1" {
		t.Errorf("expect service trait protocol, got %q", p)
	}
	if p := reg.Resolve(ast, weatherService, "example.protocols#other"); p != "example.protocols#other" {
		t.Errorf("expect preferred protocol, got %q", p)
	}
	if p := reg.Resolve(ast, weatherService, "example.protocols#missing"); p != "aws.protocols#restJson1" {
		t.Errorf("expect fallback to service trait, got %q", p)
	}
	if p := NewRegistry().Resolve(ast, weatherService, ""); p != NoProtocol {
		t.Errorf("expect %q, got %q", NoProtocol, p)
	}
	if _, ok := reg.Lookup("example.protocols#missing"); ok {
		t.Errorf("unexpected protocol")
	}
}

func TestShapeSet(t *testing.T) {
	set := NewShapeSet()
	if !set.Add("b#B") || !set.Add("a#A") {
		t.Fatalf("expect new ids to be added")
	}
	if set.Add("b#B") {
		t.Errorf("expect duplicate to be rejected")
	}
	if set.Length() != 2 || !set.Has("a#A") || set.Has("c#C") {
		t.Errorf("unexpected set contents %v", set.Sorted())
	}
	if diff := cmp.Diff([]string{"a#A", "b#B"}, set.Sorted()); diff != "" {
		t.Errorf("order mismatch:\n%s", diff)
	}
}

func TestPhaseOrder(t *testing.T) {
	p := &stubProtocol{name: NoProtocol}
	ctx := newContext(t, p, nil)
	gen := NewHttpBindingGenerator(p)
	err := gen.GenerateResponseDeserializers(ctx, NewAccumulator())
	var phaseErr *PhaseError
	if !errors.As(err, &phaseErr) {
		t.Fatalf("expect PhaseError, got %v", err)
	}
	if phaseErr.Current != Idle || phaseErr.Requested != GeneratingResponseDeserializers {
		t.Errorf("unexpected phase error %v", phaseErr)
	}
	if gen.Phase() != Idle {
		t.Errorf("expect Idle after a failure, got %s", gen.Phase())
	}
	acc := NewAccumulator()
	if err := gen.GenerateRequestSerializers(ctx, acc); err != nil {
		t.Fatal(err)
	}
	if err := gen.GenerateSharedComponents(ctx, acc); err == nil {
		t.Errorf("expect shared components to require response deserializers")
	}
	if gen.Phase() != Idle {
		t.Errorf("expect Idle, got %s", gen.Phase())
	}
}

func TestGenerateAccumulatesSharedShapes(t *testing.T) {
	var logged bytes.Buffer
	p := &stubProtocol{name: NoProtocol}
	ctx := newContext(t, p, logging.NewStandardLogger(&logged))
	gen := NewHttpBindingGenerator(p)
	if err := gen.Generate(ctx); err != nil {
		t.Fatal(err)
	}
	if gen.Phase() != Idle {
		t.Errorf("expect Idle after generation, got %s", gen.Phase())
	}
	if diff := cmp.Diff([]string{"example.weather#CityCoordinates"}, p.serializers); diff != "" {
		t.Errorf("serializer shapes mismatch:\n%s", diff)
	}
	if diff := cmp.Diff([]string{"example.weather#CityCoordinates", "example.weather#Forecast"}, p.deserializers); diff != "" {
		t.Errorf("deserializer shapes mismatch:\n%s", diff)
	}
	for _, direction := range []string{"request", "response"} {
		warning := "WARN Unable to generate none protocol " + direction + " bindings for example.weather#Ping because it does not have an http binding trait"
		if !strings.Contains(logged.String(), warning) {
			t.Errorf("missing warning %q in %q", warning, logged.String())
		}
	}
	src, err := ctx.Writer.Source()
	if err != nil {
		t.Fatal(err)
	}
	s := string(src)
	expected := []string{
		"func serializeNoneGetCity(input *GetCityInput, ctx *serde.Context) (*serde.Request, error) {",
		`headers.Set("Content-Type", "application/x-stub")`,
		`headers.Set("X-Stub", "1")`,
		`resolvedPath = strings.Replace(resolvedPath, "{path+}", serde.EscapeLabel(*input.Path, true), 1)`,
		`query.Add("type", "city")`,
		`headers.Set("X-Meta-"+key, value)`,
		`return nil, &serde.HostLabelError{Label: "region"}`,
		"if output.StatusCode != 201 && output.StatusCode >= 400 {",
		`case "Conflict", "example.weather#Conflict":`,
		"return serde.NewUnknownError(errorCode, parsedOutput)",
		"func deserializeNoneConflictResponse(parsedOutput *serde.ErrorResponse, ctx *serde.Context) error {",
		"document = document.Error",
		"contents.Image = output.Body",
		"body = input.Photo",
		`headers.Set("Content-Type", "application/octet-stream")`,
	}
	for _, e := range expected {
		if !strings.Contains(s, e) {
			t.Errorf("generated code missing %q", e)
		}
	}
	if strings.Contains(s, "serializeNonePing") {
		t.Errorf("operations without an http binding should be skipped")
	}
}
