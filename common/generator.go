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
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/boynton/data"
	"github.com/boynton/smithygen/smithy"
)

type Generator interface {
	Generate(ast *smithy.AST, config *data.Object) error
}

type BaseGenerator struct {
	AST            *smithy.AST
	Config         *data.Object
	OutDir         string
	ForceOverwrite bool
	buf            bytes.Buffer
	writer         *bufio.Writer
	Err            error
	Sort           bool
}

func (gen *BaseGenerator) Configure(ast *smithy.AST, conf *data.Object) error {
	if ast == nil {
		return fmt.Errorf("no model to generate from")
	}
	if conf == nil {
		conf = data.NewObject()
	}
	gen.AST = ast
	gen.Config = conf
	gen.OutDir = conf.GetString("outdir")
	gen.Sort = conf.GetBool("sort")
	gen.ForceOverwrite = conf.GetBool("force")
	gen.Err = nil
	return nil
}

// Service returns the configured "service", or the only service in the model.
func (gen *BaseGenerator) Service() (string, error) {
	services := gen.AST.Services()
	if id := gen.Config.GetString("service"); id != "" {
		if gen.AST.ShapeKind(id) != smithy.Service {
			return "", fmt.Errorf("service not found: %s", id)
		}
		return id, nil
	}
	switch len(services) {
	case 0:
		return "", fmt.Errorf("the model contains no service")
	case 1:
		return services[0], nil
	}
	return "", fmt.Errorf("the model contains %d services, choose one with -a service=<id>: %s", len(services), strings.Join(services, ", "))
}

// Operations returns the operations of a service, in model order unless sorting is configured.
func (gen *BaseGenerator) Operations(serviceId string) []string {
	ops := gen.AST.ContainedOperations(serviceId)
	if gen.Sort {
		sort.Slice(ops, func(i, j int) bool {
			return smithy.ShapeIdName(ops[i]) < smithy.ShapeIdName(ops[j])
		})
	}
	return ops
}

func (gen *BaseGenerator) Begin() {
	gen.buf.Reset()
	gen.writer = bufio.NewWriter(&gen.buf)
}

func (gen *BaseGenerator) End() string {
	gen.writer.Flush()
	return gen.buf.String()
}

func (gen *BaseGenerator) Emit(s string) {
	gen.writer.WriteString(s)
}

func (gen *BaseGenerator) Emitf(format string, args ...interface{}) {
	gen.writer.WriteString(fmt.Sprintf(format, args...))
}

func (gen *BaseGenerator) FileExists(path string) bool {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return false
	}
	return true
}

func (gen *BaseGenerator) FileName(ns string, suffix string) string {
	return strings.ReplaceAll(ns, ".", "-") + suffix
}

// CheckWritable fails if any of the files would overwrite an existing one without force.
func (gen *BaseGenerator) CheckWritable(filenames ...string) error {
	if gen.OutDir == "" || gen.ForceOverwrite {
		return nil
	}
	for _, name := range filenames {
		path := filepath.Join(gen.OutDir, name)
		if gen.FileExists(path) {
			return fmt.Errorf("[%s already exists, not overwriting]", path)
		}
	}
	return nil
}

func (gen *BaseGenerator) WriteFile(path string, content string) error {
	if gen.Err != nil {
		return gen.Err
	}
	if !gen.ForceOverwrite && gen.FileExists(path) {
		return fmt.Errorf("[%s already exists, not overwriting]", path)
	}
	f, err := os.Create(path)
	if err != nil {
		gen.Err = err
		return err
	}
	defer f.Close()
	writer := bufio.NewWriter(f)
	_, gen.Err = writer.WriteString(content)
	if err := writer.Flush(); err != nil && gen.Err == nil {
		gen.Err = err
	}
	return gen.Err
}

// Write sends text to the named file in OutDir, or to stdout preceded by the separator.
func (gen *BaseGenerator) Write(text string, filename string, separator string) error {
	if gen.Err != nil {
		return gen.Err
	}
	if gen.OutDir == "" {
		if separator != "" {
			fmt.Print(separator)
		}
		fmt.Print(text)
		return nil
	}
	if err := os.MkdirAll(gen.OutDir, 0755); err != nil {
		gen.Err = err
		return err
	}
	return gen.WriteFile(filepath.Join(gen.OutDir, filename), text)
}
