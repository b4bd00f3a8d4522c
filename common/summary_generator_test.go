package common

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/boynton/data"

	"github.com/boynton/smithygen/smithy"
)

func TestSummaryGenerator(t *testing.T) {
	ast, err := smithy.LoadAST("../smithy/testdata/weather.json")
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	conf := data.NewObject()
	conf.Put("outdir", dir)
	conf.Put("sort", true)
	if err := new(SummaryGenerator).Generate(ast, conf); err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(filepath.Join(dir, "Weather.txt"))
	if err != nil {
		t.Fatal(err)
	}
	summary := string(raw)
	for _, expect := range []string{
		"// Provides weather forecasts.\n",
		"namespace example.weather\n",
		"service Weather v2006-03-01\n",
		"trait aws.protocols#restJson1\n",
		"operation GetCity(cityId, locale, requestId) → (name, coordinates, lastUpdated, tags)\n",
		"    GET /cities/{cityId} → 200\n",
		"    in  cityId LABEL(cityId)\n",
		"    out lastUpdated HEADER(X-Last-Updated)\n",
		"    errors NoSuchResource, ServiceUnavailable\n",
		"operation Ping (no http binding)\n",
	} {
		if !strings.Contains(summary, expect) {
			t.Errorf("expect %q in summary:\n%s", expect, summary)
		}
	}
	if strings.Index(summary, "operation CreateCity") > strings.Index(summary, "operation GetCity") {
		t.Errorf("expect sorted operations")
	}
}

func TestSummaryRequiresService(t *testing.T) {
	conf := data.NewObject()
	conf.Put("service", "example.weather#Nope")
	ast, err := smithy.LoadAST("../smithy/testdata/weather.json")
	if err != nil {
		t.Fatal(err)
	}
	if err := new(SummaryGenerator).Generate(ast, conf); err == nil {
		t.Errorf("expect an error for an unknown service")
	}
	if err := new(SummaryGenerator).Generate(nil, conf); err == nil {
		t.Errorf("expect an error without a model")
	}
}
