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
package smithy

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ghodss/yaml"
)

func LoadAST(path string) (*AST, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("Cannot read smithy AST file: %v", err)
	}
	return ParseAST(raw)
}

// ParseAST decodes a Smithy JSON AST document, keeping shape and member order.
func ParseAST(raw []byte) (*AST, error) {
	var ast *AST
	if err := json.Unmarshal(raw, &ast); err != nil {
		return nil, fmt.Errorf("Cannot parse Smithy AST: %v", err)
	}
	if ast == nil || ast.Smithy == "" {
		return nil, fmt.Errorf("Cannot parse Smithy AST: missing \"smithy\" version")
	}
	if ast.Shapes == nil {
		ast.Shapes = NewMap[*Shape]()
	}
	return ast, nil
}

// ParseYAML decodes a Smithy AST that has been rendered as YAML.
func ParseYAML(raw []byte) (*AST, error) {
	j, err := yaml.YAMLToJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("Cannot parse Smithy AST YAML: %v", err)
	}
	return ParseAST(j)
}

func LoadYAML(path string) (*AST, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("Cannot read smithy AST file: %v", err)
	}
	return ParseYAML(raw)
}
