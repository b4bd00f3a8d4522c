package golang

import (
	"strings"
	"testing"

	"github.com/boynton/smithygen/smithy"
	"github.com/google/go-cmp/cmp"
)

func loadWeather(t *testing.T) *smithy.AST {
	t.Helper()
	ast, err := smithy.LoadAST("../smithy/testdata/weather.json")
	if err != nil {
		t.Fatal(err)
	}
	return ast
}

func TestWriterImportsAndFormat(t *testing.T) {
	w := NewWriter("weather")
	w.SetHeader("// Code generated by smithygen. DO NOT EDIT.")
	w.AddImport("github.com/aws/smithy-go", "smithy")
	w.AddImport("strings", "")
	w.AddImport("fmt", "")
	w.OpenBlock("func upper(s string) string {")
	w.Write("return strings.ToUpper(fmt.Sprint(s))")
	w.CloseBlock("}")
	w.Write("")
	w.Write("var _ smithy.APIError")
	src, err := w.Source()
	if err != nil {
		t.Fatal(err)
	}
	expect := `// Code generated by smithygen. DO NOT EDIT.

package weather

import (
	"fmt"
	"strings"

	smithy "github.com/aws/smithy-go"
)

func upper(s string) string {
	return strings.ToUpper(fmt.Sprint(s))
}

var _ smithy.APIError
`
	if diff := cmp.Diff(expect, string(src)); diff != "" {
		t.Errorf("source mismatch (-expect +actual):\n%s", diff)
	}
}

func TestWriterRejectsBadSource(t *testing.T) {
	w := NewWriter("weather")
	w.OpenBlock("func broken( {")
	w.CloseBlock("}")
	if _, err := w.Source(); err == nil {
		t.Errorf("expect format error")
	}
}

func TestIdentifier(t *testing.T) {
	cases := map[string]string{
		"cityId":    "CityId",
		"restJson1": "RestJson1",
		"RAINY_DAY": "RainyDay",
		"SUNNY":     "SUNNY",
		"x-meta":    "XMeta",
		"2fa":       "X2fa",
		"":          "X",
	}
	for in, expect := range cases {
		if actual := Identifier(in); actual != expect {
			t.Errorf("%q: expect %q, got %q", in, expect, actual)
		}
	}
	if p := SanitizeProtocol("aws.protocols#restJson1"); p != "RestJson1" {
		t.Errorf("unexpected protocol name %q", p)
	}
}

func TestMemberTypes(t *testing.T) {
	ast := loadWeather(t)
	symbols := NewSymbols(ast, "")
	w := NewWriter("weather")
	cases := map[string]struct {
		Shape  string
		Member string
		Input  bool
		Expect string
	}{
		"label string":    {Shape: "example.weather#GetCityInput", Member: "cityId", Input: true, Expect: "*string"},
		"timestamp":       {Shape: "example.weather#GetCityOutput", Member: "lastUpdated", Expect: "*time.Time"},
		"string list":     {Shape: "example.weather#GetCityOutput", Member: "tags", Expect: "[]string"},
		"struct":          {Shape: "example.weather#GetCityOutput", Member: "coordinates", Expect: "*CityCoordinates"},
		"map":             {Shape: "example.weather#CreateCityInput", Member: "metadata", Input: true, Expect: "map[string]string"},
		"blob":            {Shape: "example.weather#CreateCityInput", Member: "token", Input: true, Expect: "[]byte"},
		"streaming out":   {Shape: "example.weather#GetCityImageOutput", Member: "image", Expect: "io.ReadCloser"},
		"struct list":     {Shape: "example.weather#Forecast", Member: "daily", Expect: "[]*Daily"},
		"enum":            {Shape: "example.weather#Daily", Member: "condition", Expect: "Condition"},
		"integer":         {Shape: "example.weather#Forecast", Member: "high", Expect: "*int32"},
		"float":           {Shape: "example.weather#CityCoordinates", Member: "latitude", Expect: "*float32"},
		"long header":     {Shape: "example.weather#GetCityImageOutput", Member: "size", Expect: "*int64"},
		"boolean":         {Shape: "example.weather#GetCityImageOutput", Member: "enabled", Expect: "*bool"},
		"double":          {Shape: "example.weather#GetCityImageOutput", Member: "ratio", Expect: "*float64"},
		"required string": {Shape: "example.weather#NoSuchResource", Member: "resourceType", Expect: "*string"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			mem := ast.GetShape(c.Shape).Members.Get(c.Member)
			if actual := symbols.MemberType(w, mem, c.Input); actual != c.Expect {
				t.Errorf("expect %q, got %q", c.Expect, actual)
			}
		})
	}
	if diff := cmp.Diff([]string{"io", "time"}, w.Imports()); diff != "" {
		t.Errorf("imports mismatch:\n%s", diff)
	}
}

func TestFunctionNames(t *testing.T) {
	symbols := NewSymbols(loadWeather(t), "")
	proto := "aws.protocols#restJson1"
	names := []string{
		symbols.SerializerName(proto, "example.weather#GetCity"),
		symbols.DeserializerName(proto, "example.weather#GetCity"),
		symbols.ErrorDispatcherName(proto, "example.weather#GetCity"),
		symbols.ErrorDeserializerName(proto, "example.weather#Conflict"),
		symbols.DocumentSerializerName(proto, "example.weather#CityCoordinates"),
		symbols.DocumentDeserializerName(proto, "example.weather#DailyList"),
		symbols.InputTypeName("example.weather#Ping"),
		symbols.OutputTypeName("example.weather#PutCityPhoto"),
	}
	expect := []string{
		"serializeRestJson1GetCity",
		"deserializeRestJson1GetCity",
		"deserializeRestJson1GetCityError",
		"deserializeRestJson1ConflictResponse",
		"serializeRestJson1DocumentCityCoordinates",
		"deserializeRestJson1DocumentDailyList",
		"PingInput",
		"PutCityPhotoOutput",
	}
	if diff := cmp.Diff(expect, names); diff != "" {
		t.Errorf("names mismatch (-expect +actual):\n%s", diff)
	}
}

func TestGenerateTypes(t *testing.T) {
	ast := loadWeather(t)
	symbols := NewSymbols(ast, "")
	w := NewWriter("weather")
	if err := NewTypesGenerator(symbols, "example.weather#Weather").Generate(w); err != nil {
		t.Fatal(err)
	}
	src, err := w.Source()
	if err != nil {
		t.Fatal(err)
	}
	s := string(src)
	expected := []string{
		"type GetCityInput struct {",
		"ResultMetadata serde.Metadata `json:\"-\"`",
		"Image   io.ReadCloser",
		"Photo  []byte",
		"type Condition string",
		`ConditionSUNNY Condition = "sunny"`,
		"func (Condition) Values() []Condition {",
		"type PingInput struct {",
		"type PutCityPhotoOutput struct {",
		"func (e *Conflict) ErrorCode() string { return \"Conflict\" }",
		"func (e *ServiceUnavailable) ErrorFault() smithy.ErrorFault { return smithy.FaultServer }",
		`"github.com/boynton/smithygen/serde"`,
	}
	for _, e := range expected {
		if !strings.Contains(s, e) {
			t.Errorf("generated types missing %q", e)
		}
	}
	if strings.Contains(s, "type CityId") || strings.Contains(s, "type StringList") {
		t.Errorf("simple shapes and lists should be inlined")
	}
}

func TestGenerateClient(t *testing.T) {
	ast := loadWeather(t)
	symbols := NewSymbols(ast, "")
	w := NewWriter("weather")
	if err := NewClientGenerator(symbols, "example.weather#Weather", "aws.protocols#restJson1").Generate(w); err != nil {
		t.Fatal(err)
	}
	src, err := w.Source()
	if err != nil {
		t.Fatal(err)
	}
	s := string(src)
	if !strings.Contains(s, "func (c *Client) GetCity(ctx context.Context, input *GetCityInput) (*GetCityOutput, error) {") {
		t.Errorf("missing GetCity method:\n%s", s)
	}
	if !strings.Contains(s, "return deserializeRestJson1GetCity(resp, c.ctx)") {
		t.Errorf("missing deserializer call")
	}
	if strings.Contains(s, "func (c *Client) Ping(") {
		t.Errorf("operations without an http binding should have no client method")
	}
}
