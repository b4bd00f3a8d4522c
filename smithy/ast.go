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
	"sort"
	"strings"
)

// AST is the Smithy JSON AST of an assembled model.
type AST struct {
	Smithy   string       `json:"smithy"`
	Metadata *NodeValue   `json:"metadata,omitempty"`
	Shapes   *Map[*Shape] `json:"shapes,omitempty"`
}

// NodeValue wraps an arbitrary Smithy node value (trait values, metadata).
type NodeValue struct {
	value interface{}
}

func NewNodeValue() *NodeValue {
	return &NodeValue{value: make(map[string]interface{}, 0)}
}

func AsNodeValue(v interface{}) *NodeValue {
	if nv, ok := v.(*NodeValue); ok {
		return nv
	}
	return &NodeValue{value: v}
}

func (node NodeValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(node.value)
}

func (node *NodeValue) UnmarshalJSON(b []byte) error {
	var v interface{}
	err := json.Unmarshal(b, &v)
	if err == nil {
		node.value = v
	}
	return err
}

func (node *NodeValue) RawValue() interface{} {
	if node == nil {
		return nil
	}
	return node.value
}

func (node *NodeValue) String() string {
	return fmt.Sprint(node.RawValue())
}

func (node *NodeValue) IsObject() bool {
	if node == nil {
		return false
	}
	_, ok := node.value.(map[string]interface{})
	return ok
}

// Keys returns the keys of an object node, sorted.
func (node *NodeValue) Keys() []string {
	if node == nil {
		return nil
	}
	m, ok := node.value.(map[string]interface{})
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (node *NodeValue) Has(key string) bool {
	if node == nil {
		return false
	}
	if m, ok := node.value.(map[string]interface{}); ok {
		_, present := m[key]
		return present
	}
	return false
}

func (node *NodeValue) Get(key string) *NodeValue {
	if node == nil {
		return nil
	}
	switch m := node.value.(type) {
	case map[string]interface{}:
		if tmp, ok := m[key]; ok {
			return AsNodeValue(tmp)
		}
	case *NodeValue:
		return m.Get(key)
	}
	return nil
}

func (node *NodeValue) AsString() string {
	if node == nil {
		return ""
	}
	switch s := node.value.(type) {
	case string:
		return s
	case *string:
		return *s
	}
	return ""
}

func (node *NodeValue) GetString(key string) string {
	return node.Get(key).AsString()
}

func (node *NodeValue) AsBool() bool {
	if node == nil || node.value == nil {
		return false
	}
	switch b := node.value.(type) {
	case bool:
		return b
	case *bool:
		return *b
	}
	return true
}

func (node *NodeValue) GetBool(key string) bool {
	return node.Get(key).AsBool()
}

func (node *NodeValue) AsInt(def int) int {
	if node == nil {
		return def
	}
	switch n := node.value.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
	}
	return def
}

func (node *NodeValue) GetInt(key string, def int) int {
	return node.Get(key).AsInt(def)
}

func (node *NodeValue) AsSlice() []*NodeValue {
	if node == nil {
		return nil
	}
	a, ok := node.value.([]interface{})
	if !ok {
		return nil
	}
	result := make([]*NodeValue, 0, len(a))
	for _, v := range a {
		result = append(result, AsNodeValue(v))
	}
	return result
}

func (node *NodeValue) Length() int {
	if node == nil {
		return 0
	}
	switch m := node.value.(type) {
	case map[string]interface{}:
		return len(m)
	case []interface{}:
		return len(m)
	}
	return 0
}

func (node *NodeValue) Put(key string, val interface{}) *NodeValue {
	if m, ok := node.value.(map[string]interface{}); ok {
		if nv, ok := val.(*NodeValue); ok {
			val = nv.value
		}
		m[key] = val
	}
	return node
}

func (ast *AST) AssemblyVersion() int {
	if strings.HasPrefix(ast.Smithy, "1") {
		return 1
	}
	return 2
}

func (ast *AST) PutShape(id string, shape *Shape) {
	if ast.Shapes == nil {
		ast.Shapes = NewMap[*Shape]()
	}
	ast.Shapes.Put(id, shape)
}

func (ast *AST) GetShape(id string) *Shape {
	if ast == nil || ast.Shapes == nil {
		return nil
	}
	return ast.Shapes.Get(id)
}

func (ast *AST) ForAllShapes(visitor func(shapeId string, shape *Shape) error) error {
	for _, shapeId := range ast.Shapes.Keys() {
		if err := visitor(shapeId, ast.GetShape(shapeId)); err != nil {
			return err
		}
	}
	return nil
}

type Shape struct {
	Type string `json:"type"`

	//Service
	Version string `json:"version,omitempty"`

	//List and Set
	Member *Member `json:"member,omitempty"`

	//Map
	Key   *Member `json:"key,omitempty"`
	Value *Member `json:"value,omitempty"`

	//Structure, Union, and v2 enums
	Members *Map[*Member] `json:"members,omitempty"`
	Mixins  []*ShapeRef   `json:"mixins,omitempty"`

	//Resource
	Identifiers *Map[*ShapeRef] `json:"identifiers,omitempty"`

	Create               *ShapeRef   `json:"create,omitempty"`
	Put                  *ShapeRef   `json:"put,omitempty"`
	Read                 *ShapeRef   `json:"read,omitempty"`
	Update               *ShapeRef   `json:"update,omitempty"`
	Delete               *ShapeRef   `json:"delete,omitempty"`
	List                 *ShapeRef   `json:"list,omitempty"`
	CollectionOperations []*ShapeRef `json:"collectionOperations,omitempty"`

	//Resource and Service
	Operations []*ShapeRef `json:"operations,omitempty"`
	Resources  []*ShapeRef `json:"resources,omitempty"`

	//Operation, and Service (for common errors)
	Input  *ShapeRef   `json:"input,omitempty"`
	Output *ShapeRef   `json:"output,omitempty"`
	Errors []*ShapeRef `json:"errors,omitempty"`

	Traits *NodeValue `json:"traits,omitempty"`
}

func (shape *Shape) GetTrait(id string) *NodeValue {
	if shape == nil || shape.Traits == nil {
		return nil
	}
	return shape.Traits.Get(id)
}

func (shape *Shape) HasTrait(id string) bool {
	return shape != nil && shape.Traits.Has(id)
}

func (shape *Shape) GetStringTrait(id string) string {
	return shape.GetTrait(id).AsString()
}

type ShapeRef struct {
	Target string `json:"target"`
}

type Member struct {
	Target string     `json:"target"`
	Traits *NodeValue `json:"traits,omitempty"`
}

func (mem *Member) GetTrait(id string) *NodeValue {
	if mem == nil || mem.Traits == nil {
		return nil
	}
	return mem.Traits.Get(id)
}

func (mem *Member) HasTrait(id string) bool {
	return mem != nil && mem.Traits.Has(id)
}

func (mem *Member) GetStringTrait(id string) string {
	return mem.GetTrait(id).AsString()
}

// ShapeIdNamespace returns the namespace part of a shape id ("a.b#C$d" yields "a.b").
func ShapeIdNamespace(id string) string {
	if n := strings.Index(id, "#"); n >= 0 {
		return id[:n]
	}
	return ""
}

// ShapeIdName returns the shape name of an absolute shape id, without any member.
func ShapeIdName(id string) string {
	if n := strings.Index(id, "#"); n >= 0 {
		id = id[n+1:]
	}
	if n := strings.Index(id, "$"); n >= 0 {
		id = id[:n]
	}
	return id
}

func (ast *AST) Validate() error {
	alreadyChecked := make(map[string]*Shape, 0)
	for _, id := range ast.Shapes.Keys() {
		if err := ast.ValidateDefined(id, alreadyChecked); err != nil {
			return err
		}
	}
	return nil
}

// ValidateDefined checks that every reference reachable from id is defined in this assembly.
func (ast *AST) ValidateDefined(id string, alreadyChecked map[string]*Shape) error {
	if _, ok := alreadyChecked[id]; ok {
		return nil
	}
	if IsPreludeType(id) {
		return nil
	}
	shape := ast.GetShape(id)
	if shape == nil {
		return fmt.Errorf("Shape not defined: %s", id)
	}
	alreadyChecked[id] = shape
	var refs []string
	switch shape.Type {
	case "structure", "union":
		for _, name := range shape.Members.Keys() {
			refs = append(refs, shape.Members.Get(name).Target)
		}
	case "list", "set":
		if shape.Member == nil {
			return fmt.Errorf("Collection shape has no member: %s", id)
		}
		refs = append(refs, shape.Member.Target)
	case "map":
		if shape.Key == nil || shape.Value == nil {
			return fmt.Errorf("Map shape is missing its key or value: %s", id)
		}
		refs = append(refs, shape.Key.Target, shape.Value.Target)
	case "operation":
		if shape.Input != nil {
			refs = append(refs, shape.Input.Target)
		}
		if shape.Output != nil {
			refs = append(refs, shape.Output.Target)
		}
		for _, e := range shape.Errors {
			refs = append(refs, e.Target)
		}
	case "service", "resource":
		for _, o := range shape.allOperationRefs() {
			refs = append(refs, o.Target)
		}
		for _, r := range shape.Resources {
			refs = append(refs, r.Target)
		}
		for _, e := range shape.Errors {
			refs = append(refs, e.Target)
		}
	}
	for _, ref := range refs {
		if err := ast.ValidateDefined(ref, alreadyChecked); err != nil {
			return fmt.Errorf("%v (referenced from %s)", err, id)
		}
	}
	return nil
}

func (ast *AST) Namespaces() []string {
	m := make(map[string]bool, 0)
	for _, id := range ast.Shapes.Keys() {
		m[ShapeIdNamespace(id)] = true
	}
	nss := make([]string, 0, len(m))
	for k := range m {
		nss = append(nss, k)
	}
	sort.Strings(nss)
	return nss
}

func (ast *AST) ShapeNames() []string {
	var lst []string
	lst = append(lst, ast.Shapes.Keys()...)
	return lst
}

// Services returns the ids of all service shapes, in declaration order.
func (ast *AST) Services() []string {
	var result []string
	for _, k := range ast.Shapes.Keys() {
		if shape := ast.GetShape(k); shape != nil && shape.Type == "service" {
			result = append(result, k)
		}
	}
	return result
}

func (ast *AST) Apply(target string, traits *NodeValue) error {
	lst := strings.Split(target, "$")
	field := ""
	if len(lst) == 2 {
		target = lst[0]
		field = lst[1]
	}
	shape := ast.GetShape(target)
	if shape == nil {
		return fmt.Errorf("Cannot apply traits to %s: target shape not found", target)
	}
	var t *NodeValue
	if field != "" {
		m := shape.Members.Get(field)
		if m == nil {
			return fmt.Errorf("Cannot apply traits to %s$%s: member not found", target, field)
		}
		if m.Traits == nil {
			m.Traits = NewNodeValue()
		}
		t = m.Traits
	} else {
		if shape.Traits == nil {
			shape.Traits = NewNodeValue()
		}
		t = shape.Traits
	}
	for _, k := range traits.Keys() {
		t.Put(k, traits.Get(k))
	}
	return nil
}

func (ast *AST) Merge(src *AST) error {
	if ast.Metadata == nil && ast.Shapes == nil {
		*ast = *src
		return nil
	}
	if ast.Smithy != src.Smithy {
		if strings.HasPrefix(ast.Smithy, "1") && strings.HasPrefix(src.Smithy, "2") {
			ast.Smithy = src.Smithy
		}
	}
	if src.Metadata != nil {
		if ast.Metadata == nil {
			ast.Metadata = NewNodeValue()
		}
		for _, k := range src.Metadata.Keys() {
			if ast.Metadata.Has(k) {
				return fmt.Errorf("Conflict when merging metadata in models: %s", k)
			}
			ast.Metadata.Put(k, src.Metadata.Get(k))
		}
	}
	for _, k := range src.Shapes.Keys() {
		if ast.GetShape(k) != nil {
			return fmt.Errorf("Duplicate shape in assembly: %s", k)
		}
		ast.PutShape(k, src.GetShape(k))
	}
	return nil
}

// ApplyAll folds every "apply" shape into its target and removes it.
func (ast *AST) ApplyAll() error {
	for _, k := range ast.Shapes.Keys() {
		if tmp := ast.GetShape(k); tmp != nil && tmp.Type == "apply" {
			if err := ast.Apply(k, tmp.Traits); err != nil {
				return err
			}
			ast.Shapes.Delete(k)
		}
	}
	return nil
}

func (ast *AST) expandMixins(shapeId string) error {
	shape := ast.GetShape(shapeId)
	if shape == nil {
		return fmt.Errorf("Shape not available: %s", shapeId)
	}
	for i := len(shape.Mixins) - 1; i >= 0; i-- {
		mixinId := shape.Mixins[i].Target
		if err := ast.expandMixins(mixinId); err != nil {
			return err
		}
		mixin := ast.GetShape(mixinId)
		if mixin.Members != nil {
			newMembers := NewMap[*Member]()
			for _, memKey := range mixin.Members.Keys() {
				newMembers.Put(memKey, mixin.Members.Get(memKey))
			}
			for _, memKey := range shape.Members.Keys() {
				newMembers.Put(memKey, shape.Members.Get(memKey))
			}
			shape.Members = newMembers
		}
		if mixin.Traits.Length() > 1 {
			newTraits := NewNodeValue()
			for _, trait := range mixin.Traits.Keys() {
				if trait != "smithy.api#mixin" {
					newTraits.Put(trait, mixin.Traits.Get(trait))
				}
			}
			for _, trait := range shape.Traits.Keys() {
				newTraits.Put(trait, shape.Traits.Get(trait))
			}
			shape.Traits = newTraits
		}
	}
	shape.Mixins = nil
	return nil
}

func (ast *AST) ExpandMixins() error {
	for _, shapeId := range ast.Shapes.Keys() {
		if err := ast.expandMixins(shapeId); err != nil {
			return err
		}
	}
	return nil
}
