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
package golang

import (
	"bufio"
	"bytes"
	"fmt"
	"go/format"
	"sort"
	"strings"
)

const IndentAmount = "\t"

// Writer accumulates one Go source file. Imports are collected as code that needs them is
// written, and the result is gofmt-ed.
type Writer struct {
	pkg     string
	header  string
	imports map[string]string
	buf     bytes.Buffer
	writer  *bufio.Writer
	indent  string
}

func NewWriter(pkg string) *Writer {
	w := &Writer{
		pkg:     pkg,
		imports: make(map[string]string, 0),
	}
	w.writer = bufio.NewWriter(&w.buf)
	return w
}

func (w *Writer) Package() string {
	return w.pkg
}

// SetHeader sets a comment emitted above the package clause.
func (w *Writer) SetHeader(comment string) {
	w.header = comment
}

// AddImport registers an import path, with an optional alias.
func (w *Writer) AddImport(path string, alias string) {
	if prev, ok := w.imports[path]; ok && prev != "" && alias == "" {
		return
	}
	w.imports[path] = alias
}

func (w *Writer) Imports() []string {
	var paths []string
	for p := range w.imports {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func (w *Writer) Emit(s string) {
	w.writer.WriteString(s)
}

func (w *Writer) Emitf(format string, args ...interface{}) {
	w.writer.WriteString(fmt.Sprintf(format, args...))
}

// Write emits one formatted line at the current indentation.
func (w *Writer) Write(format string, args ...interface{}) {
	w.writeLine(fmt.Sprintf(format, args...))
}

func (w *Writer) writeLine(line string) {
	if line == "" {
		w.writer.WriteString("\n")
		return
	}
	w.writer.WriteString(w.indent + line + "\n")
}

// OpenBlock writes a line ending in an opening brace and indents.
func (w *Writer) OpenBlock(format string, args ...interface{}) {
	w.writeLine(fmt.Sprintf(format, args...))
	w.indent += IndentAmount
}

// CloseBlock dedents and writes the closing line, typically "}".
func (w *Writer) CloseBlock(line string) {
	if len(w.indent) >= len(IndentAmount) {
		w.indent = w.indent[len(IndentAmount):]
	}
	w.writeLine(line)
}

// Block writes an open line, the body, and a closing brace.
func (w *Writer) Block(open string, body func() error) error {
	w.writeLine(open)
	w.indent += IndentAmount
	err := body()
	w.CloseBlock("}")
	return err
}

// ReturnOnError writes the usual error check.
func (w *Writer) ReturnOnError(results string) {
	w.OpenBlock("if err != nil {")
	w.Write("return %s", results)
	w.CloseBlock("}")
}

func (w *Writer) Source() ([]byte, error) {
	w.writer.Flush()
	var out bytes.Buffer
	if w.header != "" {
		out.WriteString(w.header)
		if !strings.HasSuffix(w.header, "\n") {
			out.WriteString("\n")
		}
		out.WriteString("\n")
	}
	out.WriteString("package " + w.pkg + "\n\n")
	if len(w.imports) > 0 {
		std, third := w.groupImports()
		out.WriteString("import (\n")
		for _, line := range std {
			out.WriteString("\t" + line + "\n")
		}
		if len(std) > 0 && len(third) > 0 {
			out.WriteString("\n")
		}
		for _, line := range third {
			out.WriteString("\t" + line + "\n")
		}
		out.WriteString(")\n\n")
	}
	out.Write(w.buf.Bytes())
	formatted, err := format.Source(out.Bytes())
	if err != nil {
		return out.Bytes(), fmt.Errorf("generated source for package %s does not parse: %v", w.pkg, err)
	}
	return formatted, nil
}

func (w *Writer) groupImports() ([]string, []string) {
	var std, third []string
	for _, p := range w.Imports() {
		line := fmt.Sprintf("%q", p)
		if alias := w.imports[p]; alias != "" {
			line = alias + " " + line
		}
		if strings.Contains(strings.SplitN(p, "/", 2)[0], ".") {
			third = append(third, line)
		} else {
			std = append(std, line)
		}
	}
	return std, third
}
