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

// Package codegen runs one generation pass for a service: its types, its protocol
// serializers and deserializers, and a client.
package codegen

import (
	"strings"

	"github.com/aws/smithy-go/logging"
	"github.com/boynton/data"
	"github.com/pkg/errors"

	"github.com/boynton/smithygen/common"
	"github.com/boynton/smithygen/golang"
	"github.com/boynton/smithygen/protocol"
	"github.com/boynton/smithygen/protocol/restjson"
	"github.com/boynton/smithygen/smithy"
)

const GeneratedHeader = "// Code generated by smithygen. DO NOT EDIT."

// DefaultRegistry holds every protocol this tool can generate.
func DefaultRegistry() *protocol.Registry {
	return protocol.NewRegistry(restjson.New())
}

// Settings are the generation options read from the configuration object.
type Settings struct {
	Protocol     string
	Package      string
	SerdePackage string
}

func NewSettings(conf *data.Object) *Settings {
	return &Settings{
		Protocol:     conf.GetString("protocol"),
		Package:      conf.GetString("package"),
		SerdePackage: conf.GetString("serdePackage"),
	}
}

type Generator struct {
	common.BaseGenerator
	Registry *protocol.Registry
	Logger   logging.Logger
}

var _ common.Generator = (*Generator)(nil)

func NewGenerator(logger logging.Logger) *Generator {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &Generator{Registry: DefaultRegistry(), Logger: logger}
}

type sourceFile struct {
	name    string
	content []byte
}

// Generate renders every file for the service before writing any of them.
func (gen *Generator) Generate(ast *smithy.AST, conf *data.Object) error {
	if err := gen.Configure(ast, conf); err != nil {
		return err
	}
	if gen.Registry == nil {
		gen.Registry = DefaultRegistry()
	}
	if gen.Logger == nil {
		gen.Logger = logging.Nop{}
	}
	settings := NewSettings(gen.Config)
	serviceId, err := gen.Service()
	if err != nil {
		return err
	}
	protocolName := gen.Registry.Resolve(ast, serviceId, settings.Protocol)
	if protocolName == protocol.NoProtocol {
		return errors.Errorf("service %s has no protocol trait this tool supports (supported: %s)", serviceId, strings.Join(gen.Registry.Names(), ", "))
	}
	if settings.Protocol != "" && settings.Protocol != protocolName {
		gen.Logger.Logf(logging.Warn, "protocol %s is not supported, using %s", settings.Protocol, protocolName)
	}
	p, _ := gen.Registry.Lookup(protocolName)
	pkg := settings.Package
	if pkg == "" {
		pkg = strings.ToLower(golang.Identifier(smithy.ShapeIdName(serviceId)))
	}
	symbols := golang.NewSymbols(ast, settings.SerdePackage)

	files, err := gen.render(ast, serviceId, pkg, p, symbols)
	if err != nil {
		return err
	}
	var names []string
	for _, f := range files {
		names = append(names, f.name)
	}
	if err := gen.CheckWritable(names...); err != nil {
		return err
	}
	for _, f := range files {
		if err := gen.Write(string(f.content), f.name, "// file: "+f.name+"\n"); err != nil {
			return errors.Wrapf(err, "cannot write %s", f.name)
		}
	}
	return gen.Err
}

func (gen *Generator) render(ast *smithy.AST, serviceId, pkg string, p protocol.Protocol, symbols *golang.Symbols) ([]sourceFile, error) {
	var files []sourceFile
	emit := func(name string, w *golang.Writer) error {
		src, err := w.Source()
		if err != nil {
			return errors.Wrapf(err, "cannot render %s", name)
		}
		files = append(files, sourceFile{name: name, content: src})
		return nil
	}

	w := newWriter(pkg)
	if err := golang.NewTypesGenerator(symbols, serviceId).Generate(w); err != nil {
		return nil, errors.Wrapf(err, "cannot generate types for %s", serviceId)
	}
	if err := emit(pkg+"_types.go", w); err != nil {
		return nil, err
	}

	w = newWriter(pkg)
	ctx := protocol.NewGenerationContext(ast, serviceId, p.Name(), symbols, w, gen.Logger)
	if err := protocol.NewHttpBindingGenerator(p).Generate(ctx); err != nil {
		return nil, errors.Wrapf(err, "cannot generate %s bindings for %s", p.Name(), serviceId)
	}
	if err := emit(pkg+"_"+strings.ToLower(golang.SanitizeProtocol(p.Name()))+".go", w); err != nil {
		return nil, err
	}

	w = newWriter(pkg)
	if err := golang.NewClientGenerator(symbols, serviceId, p.Name()).Generate(w); err != nil {
		return nil, errors.Wrapf(err, "cannot generate client for %s", serviceId)
	}
	if err := emit(pkg+"_client.go", w); err != nil {
		return nil, err
	}
	return files, nil
}

func newWriter(pkg string) *golang.Writer {
	w := golang.NewWriter(pkg)
	w.SetHeader(GeneratedHeader)
	return w
}
