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
package common

import (
	"strings"

	"github.com/boynton/data"
	"github.com/boynton/smithygen/httpbinding"
	"github.com/boynton/smithygen/smithy"
)

// SummaryGenerator prints the operations of a service with the HTTP location of every member.
type SummaryGenerator struct {
	BaseGenerator
	indent  string
	service string
	index   *httpbinding.Index
}

func (gen *SummaryGenerator) Generate(ast *smithy.AST, config *data.Object) error {
	err := gen.Configure(ast, config)
	if err != nil {
		return err
	}
	gen.service, err = gen.Service()
	if err != nil {
		return err
	}
	gen.indent = "    "
	gen.index = httpbinding.NewIndex(ast)
	gen.Begin()
	gen.GenerateSummary()
	if err := gen.GenerateOperations(); err != nil {
		return err
	}
	s := gen.End()
	fname := gen.FileName(smithy.ShapeIdName(gen.service), ".txt")
	return gen.Write(s, fname, "")
}

func (gen *SummaryGenerator) GenerateSummary() {
	shape := gen.AST.GetShape(gen.service)
	title := smithy.ShapeIdName(gen.service)
	if shape.Version != "" {
		title = title + " v" + shape.Version
	}
	if doc := smithy.Documentation(shape.Traits); doc != "" {
		gen.Emit("//\n")
		gen.Emit(FormatComment("", "// ", doc, 80, false))
		gen.Emit("//\n")
	}
	gen.Emitf("namespace %s\n", smithy.ShapeIdNamespace(gen.service))
	gen.Emitf("service %s\n", title)
	for _, trait := range shape.Traits.Keys() {
		if !strings.HasPrefix(trait, "smithy.api#") {
			gen.Emitf("trait %s\n", trait)
		}
	}
	gen.Emit("\n")
}

func StripNamespace(target string) string {
	n := strings.Index(target, "#")
	if n < 0 {
		return target
	}
	return target[n+1:]
}

func memberNames(bindings []*httpbinding.Binding) string {
	var names []string
	for _, b := range bindings {
		names = append(names, b.MemberName)
	}
	return strings.Join(names, ", ")
}

func (gen *SummaryGenerator) GenerateOperations() error {
	for _, opId := range gen.Operations(gen.service) {
		http, ok, err := gen.AST.HttpTrait(opId)
		if err != nil {
			return err
		}
		if !ok {
			gen.Emitf("operation %s (no http binding)\n\n", StripNamespace(opId))
			continue
		}
		in, err := gen.index.RequestBindings(opId)
		if err != nil {
			return err
		}
		out, err := gen.index.ResponseBindings(opId)
		if err != nil {
			return err
		}
		gen.Emitf("operation %s(%s) → (%s)\n", StripNamespace(opId), memberNames(in), memberNames(out))
		gen.Emitf("%s%s %s → %d\n", gen.indent, http.Method, http.Uri, http.Code)
		for _, b := range in {
			gen.Emitf("%sin  %s\n", gen.indent, b)
		}
		for _, b := range out {
			gen.Emitf("%sout %s\n", gen.indent, b)
		}
		var errs []string
		for _, errId := range gen.AST.OperationErrors(gen.service, opId) {
			errs = append(errs, StripNamespace(errId))
		}
		if len(errs) > 0 {
			gen.Emitf("%serrors %s\n", gen.indent, strings.Join(errs, ", "))
		}
		gen.Emit("\n")
	}
	return nil
}
