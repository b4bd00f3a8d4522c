package codegen

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/smithy-go/logging"
	"github.com/boynton/data"
	"github.com/google/go-cmp/cmp"

	"github.com/boynton/smithygen/protocol"
	"github.com/boynton/smithygen/smithy"
)

func loadWeather(t *testing.T) *smithy.AST {
	t.Helper()
	ast, err := smithy.LoadAST("../smithy/testdata/weather.json")
	if err != nil {
		t.Fatal(err)
	}
	return ast
}

func listFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestGenerateWritesServiceFiles(t *testing.T) {
	dir := t.TempDir()
	conf := data.NewObject()
	conf.Put("outdir", dir)
	var logged bytes.Buffer
	gen := NewGenerator(logging.NewStandardLogger(&logged))
	if err := gen.Generate(loadWeather(t), conf); err != nil {
		t.Fatal(err)
	}
	expect := []string{"weather_client.go", "weather_restjson1.go", "weather_types.go"}
	if diff := cmp.Diff(expect, listFiles(t, dir)); diff != "" {
		t.Errorf("files mismatch (-expect +actual):\n%s", diff)
	}
	raw, err := os.ReadFile(filepath.Join(dir, "weather_restjson1.go"))
	if err != nil {
		t.Fatal(err)
	}
	src := string(raw)
	if !strings.HasPrefix(src, GeneratedHeader+"\n") {
		t.Errorf("missing generated header")
	}
	if !strings.Contains(src, "package weather") || !strings.Contains(src, "func serializeRestJson1GetCity(") {
		t.Errorf("unexpected protocol file:\n%s", src)
	}
	if !strings.Contains(logged.String(), "example.weather#Ping") {
		t.Errorf("expect a warning about Ping, got %q", logged.String())
	}
}

func TestGenerateRefusesToOverwrite(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "weather_client.go")
	if err := os.WriteFile(existing, []byte("keep"), 0644); err != nil {
		t.Fatal(err)
	}
	conf := data.NewObject()
	conf.Put("outdir", dir)
	if err := NewGenerator(nil).Generate(loadWeather(t), conf); err == nil {
		t.Fatalf("expect an error for an existing file")
	}
	if diff := cmp.Diff([]string{"weather_client.go"}, listFiles(t, dir)); diff != "" {
		t.Errorf("no file should be written when one exists:\n%s", diff)
	}
	conf.Put("force", true)
	if err := NewGenerator(nil).Generate(loadWeather(t), conf); err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(existing)
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) == "keep" {
		t.Errorf("expect force to overwrite")
	}
}

func TestGenerateFailsWithoutPartialOutput(t *testing.T) {
	ast := loadWeather(t)
	mem := ast.GetShape("example.weather#GetCityOutput").Members.Get("coordinates")
	mem.Traits = smithy.NewNodeValue()
	mem.Traits.Put("smithy.api#httpHeader", "X-Coordinates")
	dir := t.TempDir()
	conf := data.NewObject()
	conf.Put("outdir", dir)
	err := NewGenerator(nil).Generate(ast, conf)
	var unsupported *protocol.UnsupportedBindingError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expect UnsupportedBindingError, got %v", err)
	}
	if unsupported.Member != "coordinates" || unsupported.Kind != smithy.Structure {
		t.Errorf("unexpected error details %+v", unsupported)
	}
	if files := listFiles(t, dir); len(files) != 0 {
		t.Errorf("expect no files, got %v", files)
	}
}

func TestServiceAndProtocolResolution(t *testing.T) {
	conf := data.NewObject()
	conf.Put("outdir", t.TempDir())
	conf.Put("service", "example.weather#Missing")
	if err := NewGenerator(nil).Generate(loadWeather(t), conf); err == nil {
		t.Errorf("expect an error for a missing service")
	}

	conf = data.NewObject()
	conf.Put("outdir", t.TempDir())
	gen := NewGenerator(nil)
	gen.Registry = protocol.NewRegistry()
	err := gen.Generate(loadWeather(t), conf)
	if err == nil || !strings.Contains(err.Error(), "has no protocol trait") {
		t.Errorf("expect an unresolved protocol error, got %v", err)
	}
}

func TestSettings(t *testing.T) {
	conf := data.NewObject()
	conf.Put("protocol", "aws.protocols#restJson1")
	conf.Put("package", "forecast")
	expect := &Settings{Protocol: "aws.protocols#restJson1", Package: "forecast"}
	if diff := cmp.Diff(expect, NewSettings(conf)); diff != "" {
		t.Errorf("settings mismatch:\n%s", diff)
	}
}
