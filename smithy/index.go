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
	"sort"
)

func (shape *Shape) allOperationRefs() []*ShapeRef {
	var refs []*ShapeRef
	for _, ref := range []*ShapeRef{shape.Create, shape.Put, shape.Read, shape.Update, shape.Delete, shape.List} {
		if ref != nil {
			refs = append(refs, ref)
		}
	}
	refs = append(refs, shape.Operations...)
	refs = append(refs, shape.CollectionOperations...)
	return refs
}

// ContainedOperations returns every operation bound to the service, directly or through
// its resources, sorted by shape id.
func (ast *AST) ContainedOperations(serviceId string) []string {
	ops := make(map[string]bool, 0)
	visited := make(map[string]bool, 0)
	var walk func(id string)
	walk = func(id string) {
		if visited[id] {
			return
		}
		visited[id] = true
		shape := ast.GetShape(id)
		if shape == nil {
			return
		}
		for _, ref := range shape.allOperationRefs() {
			ops[ref.Target] = true
		}
		for _, ref := range shape.Resources {
			walk(ref.Target)
		}
	}
	walk(serviceId)
	result := make([]string, 0, len(ops))
	for id := range ops {
		result = append(result, id)
	}
	sort.Strings(result)
	return result
}

// OperationErrors returns the errors of the operation followed by the common errors of the service.
func (ast *AST) OperationErrors(serviceId, opId string) []string {
	var result []string
	seen := make(map[string]bool, 0)
	add := func(refs []*ShapeRef) {
		for _, ref := range refs {
			if !seen[ref.Target] {
				seen[ref.Target] = true
				result = append(result, ref.Target)
			}
		}
	}
	add(ast.GetShape(opId).errorRefs())
	add(ast.GetShape(serviceId).errorRefs())
	return result
}

func (shape *Shape) errorRefs() []*ShapeRef {
	if shape == nil {
		return nil
	}
	return shape.Errors
}

// OperationInput returns the input structure id of the operation, or "" for none.
func (ast *AST) OperationInput(opId string) string {
	op := ast.GetShape(opId)
	if op == nil || op.Input == nil || op.Input.Target == "smithy.api#Unit" {
		return ""
	}
	return op.Input.Target
}

func (ast *AST) OperationOutput(opId string) string {
	op := ast.GetShape(opId)
	if op == nil || op.Output == nil || op.Output.Target == "smithy.api#Unit" {
		return ""
	}
	return op.Output.Target
}

// ServiceClosure returns the ids of every non-prelude shape reachable from the service,
// sorted by shape id.
func (ast *AST) ServiceClosure(serviceId string) []string {
	included := make(map[string]bool, 0)
	var note func(id string)
	note = func(id string) {
		if id == "" || IsPreludeType(id) || included[id] {
			return
		}
		shape := ast.GetShape(id)
		if shape == nil {
			return
		}
		included[id] = true
		switch shape.Type {
		case "service", "resource":
			for _, ref := range shape.allOperationRefs() {
				note(ref.Target)
			}
			for _, ref := range shape.Resources {
				note(ref.Target)
			}
			for _, ref := range shape.Errors {
				note(ref.Target)
			}
		case "operation":
			if shape.Input != nil {
				note(shape.Input.Target)
			}
			if shape.Output != nil {
				note(shape.Output.Target)
			}
			for _, ref := range shape.Errors {
				note(ref.Target)
			}
		case "structure", "union":
			for _, name := range shape.Members.Keys() {
				note(shape.Members.Get(name).Target)
			}
		case "list", "set":
			note(shape.Member.Target)
		case "map":
			note(shape.Key.Target)
			note(shape.Value.Target)
		}
	}
	note(serviceId)
	result := make([]string, 0, len(included))
	for id := range included {
		result = append(result, id)
	}
	sort.Strings(result)
	return result
}
