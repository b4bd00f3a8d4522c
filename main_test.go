package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/smithy-go/logging"
	"github.com/google/go-cmp/cmp"

	"github.com/boynton/smithygen/common"
)

func TestConfigureLayersFlagsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.yaml")
	if err := os.WriteFile(path, []byte("package: forecast\noutdir: from-file\nsort: true\n"), 0644); err != nil {
		t.Fatal(err)
	}
	conf, err := configure(options{Config: path, OutDir: "gen", Params: []string{"serdePackage=example.com/serde", "verbose"}})
	if err != nil {
		t.Fatal(err)
	}
	cases := map[string]struct {
		actual interface{}
		expect interface{}
	}{
		"file":     {conf.GetString("package"), "forecast"},
		"flag":     {conf.GetString("outdir"), "gen"},
		"bool":     {conf.GetBool("sort"), true},
		"argument": {conf.GetString("serdePackage"), "example.com/serde"},
		"switch":   {conf.GetBool("verbose"), true},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			if diff := cmp.Diff(c.expect, c.actual); diff != "" {
				t.Error(diff)
			}
		})
	}
	if _, err := configure(options{Config: filepath.Join(t.TempDir(), "missing.yaml")}); err == nil {
		t.Errorf("expect an error for a missing config file")
	}
}

func TestQuery(t *testing.T) {
	ast, err := AssembleModel([]string{"smithy/testdata"})
	if err != nil {
		t.Fatal(err)
	}
	result, err := query(ast, `shapes."example.weather#Weather".version`)
	if err != nil {
		t.Fatal(err)
	}
	if result != "2006-03-01" {
		t.Errorf("unexpected query result %v", result)
	}
	if _, err := query(ast, "shapes.["); err == nil {
		t.Errorf("expect an error for a bad expression")
	}
}

func TestGeneratorNames(t *testing.T) {
	if g, err := Generator("summary", nil); err != nil {
		t.Error(err)
	} else if _, ok := g.(*common.SummaryGenerator); !ok {
		t.Errorf("unexpected generator %T", g)
	}
	if _, err := Generator("golang", logging.Nop{}); err != nil {
		t.Error(err)
	}
	if _, err := Generator("cobol", nil); err == nil {
		t.Errorf("expect an error for an unknown generator")
	}
}

func TestLevelLoggerDropsDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := &levelLogger{Logger: logging.NewStandardLogger(&buf)}
	logger.Logf(logging.Debug, "hidden")
	logger.Logf(logging.Warn, "shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "WARN shown") {
		t.Errorf("unexpected log output %q", buf.String())
	}
	logger.debug = true
	logger.Logf(logging.Debug, "now visible")
	if !strings.Contains(buf.String(), "DEBUG now visible") {
		t.Errorf("expect debug output, got %q", buf.String())
	}
}
