package smithy

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func loadWeather(t *testing.T) *AST {
	t.Helper()
	ast, err := LoadAST("testdata/weather.json")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := ast.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	return ast
}

func TestMemberOrderIsPreserved(t *testing.T) {
	ast := loadWeather(t)
	input := ast.GetShape("example.weather#CreateCityInput")
	expect := []string{"region", "name", "coordinates", "createdAt", "tags", "metadata", "token"}
	if diff := cmp.Diff(expect, input.Members.Keys()); diff != "" {
		t.Errorf("member order mismatch (-expect +actual):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"coordinates", "createdAt", "metadata", "name", "region", "tags", "token"}, input.Members.SortedKeys()); diff != "" {
		t.Errorf("sorted keys mismatch:\n%s", diff)
	}
}

func TestShapeKind(t *testing.T) {
	ast := loadWeather(t)
	cases := map[string]Kind{
		"smithy.api#String":               String,
		"smithy.api#PrimitiveLong":        Long,
		"smithy.api#Timestamp":            Timestamp,
		"example.weather#CityId":          String,
		"example.weather#Condition":       Enum,
		"example.weather#StringList":      List,
		"example.weather#MetadataMap":     MapKind,
		"example.weather#ImageData":       Blob,
		"example.weather#Forecast":        Structure,
		"example.weather#GetCity":         Operation,
		"example.weather#City":            Resource,
		"example.weather#Weather":         Service,
		"example.weather#DoesNotExist":    InvalidKind,
		"smithy.api#SomethingNotExisting": InvalidKind,
	}
	for id, expect := range cases {
		t.Run(id, func(t *testing.T) {
			if actual := ast.ShapeKind(id); actual != expect {
				t.Errorf("expect %v, got %v", expect, actual)
			}
		})
	}
}

func TestEnumTraitMakesEnumKind(t *testing.T) {
	ast, err := ParseAST([]byte(`{"smithy":"1.0","shapes":{"a#Color":{"type":"string","traits":{"smithy.api#enum":[{"value":"red","name":"RED"},{"value":"blue"}]}}}}`))
	if err != nil {
		t.Fatal(err)
	}
	if k := ast.ShapeKind("a#Color"); k != Enum {
		t.Fatalf("expect enum, got %v", k)
	}
	expect := []EnumValue{{Name: "RED", Value: "red"}, {Name: "blue", Value: "blue"}}
	if diff := cmp.Diff(expect, ast.EnumValues("a#Color")); diff != "" {
		t.Errorf("enum values mismatch:\n%s", diff)
	}
}

func TestContainedOperations(t *testing.T) {
	ast := loadWeather(t)
	expect := []string{
		"example.weather#CreateCity",
		"example.weather#GetCity",
		"example.weather#GetCityImage",
		"example.weather#GetForecast",
		"example.weather#Ping",
		"example.weather#PutCityPhoto",
	}
	if diff := cmp.Diff(expect, ast.ContainedOperations("example.weather#Weather")); diff != "" {
		t.Errorf("operations mismatch (-expect +actual):\n%s", diff)
	}
}

func TestOperationErrorsIncludeServiceErrors(t *testing.T) {
	ast := loadWeather(t)
	expect := []string{"example.weather#NoSuchResource", "example.weather#ServiceUnavailable"}
	if diff := cmp.Diff(expect, ast.OperationErrors("example.weather#Weather", "example.weather#GetCity")); diff != "" {
		t.Errorf("errors mismatch:\n%s", diff)
	}
}

func TestTraitAccessors(t *testing.T) {
	ast := loadWeather(t)
	http, ok, err := ast.HttpTrait("example.weather#CreateCity")
	if err != nil || !ok {
		t.Fatalf("expect http trait, got %v %v", ok, err)
	}
	if http.Method != "POST" || http.Code != 201 || http.Uri.Path() != "/cities" {
		t.Errorf("unexpected http trait: %+v %s", http, http.Uri)
	}
	if _, ok, _ := ast.HttpTrait("example.weather#Ping"); ok {
		t.Errorf("Ping should have no http trait")
	}
	if prefix := ast.EndpointHostPrefix("example.weather#CreateCity"); prefix != "{region}." {
		t.Errorf("host prefix: %q", prefix)
	}
	if code := ast.HttpErrorCode("example.weather#ServiceUnavailable"); code != 503 {
		t.Errorf("http error code: %d", code)
	}
	if f := ast.ErrorTrait("example.weather#Conflict"); f != "client" {
		t.Errorf("error trait: %q", f)
	}
	forecast := ast.GetShape("example.weather#Forecast")
	if name := JsonName("high", forecast.Members.Get("high")); name != "highTemperature" {
		t.Errorf("json name: %q", name)
	}
	out := ast.GetShape("example.weather#GetCityImageOutput")
	if !ast.IsStreaming(out.Members.Get("image")) {
		t.Errorf("image should be streaming through its target")
	}
	expect := []EnumValue{{Name: "SUNNY", Value: "sunny"}, {Name: "RAINY", Value: "rainy", Int: 1}}
	if diff := cmp.Diff(expect, ast.EnumValues("example.weather#Condition")); diff != "" {
		t.Errorf("enum values mismatch:\n%s", diff)
	}
}

func TestParseYAML(t *testing.T) {
	src := `
smithy: "2.0"
shapes:
  example#Zed:
    type: structure
    members:
      b:
        target: smithy.api#String
      a:
        target: smithy.api#Integer
`
	ast, err := ParseYAML([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	if k := ast.ShapeKind("example#Zed"); k != Structure {
		t.Fatalf("expect structure, got %v", k)
	}
	if n := ast.GetShape("example#Zed").Members.Length(); n != 2 {
		t.Errorf("expect 2 members, got %d", n)
	}
}

func TestMergeRejectsDuplicates(t *testing.T) {
	a, _ := ParseAST([]byte(`{"smithy":"2.0","shapes":{"a#X":{"type":"string"}}}`))
	b, _ := ParseAST([]byte(`{"smithy":"2.0","shapes":{"a#X":{"type":"string"}}}`))
	c, _ := ParseAST([]byte(`{"smithy":"2.0","shapes":{"a#Y":{"type":"string"}}}`))
	assembly := &AST{}
	if err := assembly.Merge(a); err != nil {
		t.Fatal(err)
	}
	if err := assembly.Merge(c); err != nil {
		t.Fatal(err)
	}
	if err := assembly.Merge(b); err == nil {
		t.Errorf("expect duplicate shape error")
	}
	if diff := cmp.Diff([]string{"a#X", "a#Y"}, assembly.ShapeNames()); diff != "" {
		t.Errorf("shape names:\n%s", diff)
	}
}

func TestValidateUndefinedReference(t *testing.T) {
	ast, _ := ParseAST([]byte(`{"smithy":"2.0","shapes":{"a#X":{"type":"list","member":{"target":"a#Missing"}}}}`))
	if err := ast.Validate(); err == nil {
		t.Errorf("expect undefined shape error")
	}
}
