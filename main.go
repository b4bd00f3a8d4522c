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
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/aws/smithy-go/logging"
	"github.com/boynton/data"
	"github.com/ghodss/yaml"
	"github.com/jessevdk/go-flags"
	"github.com/jmespath/go-jmespath"
	"github.com/pkg/errors"

	"github.com/boynton/smithygen/codegen"
	"github.com/boynton/smithygen/common"
	"github.com/boynton/smithygen/smithy"
)

var Version string = "development version"

type options struct {
	OutDir    string   `short:"o" long:"outdir" description:"The directory to generate output into (defaults to stdout)"`
	Force     bool     `short:"f" long:"force" description:"Force overwrite if output file exists"`
	Generator string   `short:"g" long:"generator" default:"go" description:"The generator for output: go, summary, json"`
	Service   string   `short:"s" long:"service" description:"The service to generate, required when the model has more than one"`
	Protocol  string   `short:"p" long:"protocol" description:"The protocol to generate, by default the first supported protocol trait of the service"`
	Package   string   `long:"package" description:"The Go package name of the generated code"`
	Params    []string `short:"a" long:"arg" description:"Additional named arguments for a generator (key=value)"`
	Config    string   `short:"c" long:"config" description:"A YAML file of generator arguments"`
	Query     string   `short:"q" long:"query" description:"Print the result of a JMESPath expression over the assembled model"`
	List      bool     `short:"l" long:"list" description:"List the shapes in the model"`
	Version   bool     `short:"v" long:"version" description:"Show the tool version and exit"`
	Debug     bool     `long:"debug" description:"Log generation progress"`
}

func main() {
	os.Exit(_main())
}

func _main() int {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	parser.Usage = "[OPTIONS] file ..."
	files, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return 0
		}
		return 1
	}
	if opts.Version {
		fmt.Printf("smithygen %s [%s]\n", Version, "https://github.com/boynton/smithygen")
		return 0
	}
	if len(files) == 0 {
		parser.WriteHelp(os.Stderr)
		return 1
	}
	logger := &levelLogger{Logger: logging.NewStandardLogger(os.Stderr), debug: opts.Debug}
	ast, err := AssembleModel(files)
	if err != nil {
		fmt.Fprintf(os.Stderr, "*** %v\n", err)
		return 2
	}
	if opts.List {
		for _, id := range ast.ShapeNames() {
			fmt.Printf("%s (%s)\n", id, ast.ShapeKind(id))
		}
		return 0
	}
	if opts.Query != "" {
		result, err := query(ast, opts.Query)
		if err != nil {
			fmt.Fprintf(os.Stderr, "*** %v\n", err)
			return 3
		}
		fmt.Println(data.Pretty(result))
		return 0
	}
	conf, err := configure(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "*** %v\n", err)
		return 3
	}
	if opts.Generator == "json" {
		fmt.Println(data.Pretty(ast))
		return 0
	}
	generator, err := Generator(opts.Generator, logger)
	if err == nil {
		err = generator.Generate(ast, conf)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "*** %v\n", err)
		return 4
	}
	return 0
}

// configure folds the config file, then the flags, then the -a arguments into one object.
func configure(opts options) (*data.Object, error) {
	conf := data.NewObject()
	if opts.Config != "" {
		raw, err := os.ReadFile(opts.Config)
		if err != nil {
			return nil, errors.Wrap(err, "cannot read config")
		}
		var m map[string]interface{}
		if err := yaml.Unmarshal(raw, &m); err != nil {
			return nil, errors.Wrapf(err, "cannot parse config %s", opts.Config)
		}
		for k, v := range m {
			conf.Put(k, v)
		}
	}
	if opts.OutDir != "" {
		conf.Put("outdir", opts.OutDir)
	}
	if opts.Force {
		conf.Put("force", true)
	}
	if opts.Service != "" {
		conf.Put("service", opts.Service)
	}
	if opts.Protocol != "" {
		conf.Put("protocol", opts.Protocol)
	}
	if opts.Package != "" {
		conf.Put("package", opts.Package)
	}
	for _, a := range opts.Params {
		kv := strings.SplitN(strings.TrimSpace(a), "=", 2)
		if len(kv) > 1 {
			conf.Put(kv[0], kv[1])
		} else {
			conf.Put(a, true)
		}
	}
	return conf, nil
}

// query evaluates a JMESPath expression over the JSON form of the model.
func query(ast *smithy.AST, expression string) (interface{}, error) {
	raw, err := json.Marshal(ast)
	if err != nil {
		return nil, err
	}
	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	result, err := jmespath.Search(expression, doc)
	if err != nil {
		return nil, errors.Wrapf(err, "bad query %q", expression)
	}
	return result, nil
}

func Generator(genName string, logger logging.Logger) (common.Generator, error) {
	switch genName {
	case "summary":
		return new(common.SummaryGenerator), nil
	case "go", "golang":
		return codegen.NewGenerator(logger), nil
	default:
		return nil, fmt.Errorf("Unknown generator: %q", genName)
	}
}

// levelLogger drops debug output unless debugging is enabled.
type levelLogger struct {
	logging.Logger
	debug bool
}

func (l *levelLogger) Logf(classification logging.Classification, format string, v ...interface{}) {
	if classification == logging.Debug && !l.debug {
		return
	}
	l.Logger.Logf(classification, format, v...)
}
