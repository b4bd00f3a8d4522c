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
	"bytes"
	"encoding/json"
	"sort"

	"github.com/boynton/data"
)

// Map is a string-keyed map that remembers insertion order, so that shapes and members
// keep the order they were declared in the model.
type Map[V any] struct {
	keys     []string
	bindings map[string]V
}

func NewMap[V any]() *Map[V] {
	return &Map[V]{
		bindings: make(map[string]V, 0),
	}
}

func (s *Map[V]) UnmarshalJSON(raw []byte) error {
	keys, err := data.JsonKeysInOrder(raw)
	if err != nil {
		return err
	}
	bindings := make(map[string]V, len(keys))
	if err := json.Unmarshal(raw, &bindings); err != nil {
		return err
	}
	s.keys = keys
	s.bindings = bindings
	return nil
}

func (s Map[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, key := range s.keys {
		if i > 0 {
			buf.WriteString(",")
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(s.bindings[key])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteString(":")
		buf.Write(v)
	}
	buf.WriteString("}")
	return buf.Bytes(), nil
}

func (s *Map[V]) Has(key string) bool {
	if s == nil {
		return false
	}
	_, ok := s.bindings[key]
	return ok
}

func (s *Map[V]) Get(key string) V {
	var zero V
	if s == nil {
		return zero
	}
	return s.bindings[key]
}

func (s *Map[V]) Put(key string, val V) {
	if s.bindings == nil {
		s.bindings = make(map[string]V, 0)
	}
	if _, ok := s.bindings[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.bindings[key] = val
}

func (s *Map[V]) Delete(key string) {
	if !s.Has(key) {
		return
	}
	keys := make([]string, 0, len(s.keys)-1)
	for _, k := range s.keys {
		if k != key {
			keys = append(keys, k)
		}
	}
	s.keys = keys
	delete(s.bindings, key)
}

// Keys returns the keys in insertion order.
func (s *Map[V]) Keys() []string {
	if s == nil {
		return nil
	}
	return s.keys
}

// SortedKeys returns a sorted copy of the keys.
func (s *Map[V]) SortedKeys() []string {
	keys := append([]string(nil), s.Keys()...)
	sort.Strings(keys)
	return keys
}

func (s *Map[V]) Length() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}
