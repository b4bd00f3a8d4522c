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
	"fmt"
)

const (
	TraitHttp              = "smithy.api#http"
	TraitHttpLabel         = "smithy.api#httpLabel"
	TraitHttpQuery         = "smithy.api#httpQuery"
	TraitHttpHeader        = "smithy.api#httpHeader"
	TraitHttpPrefixHeaders = "smithy.api#httpPrefixHeaders"
	TraitHttpPayload       = "smithy.api#httpPayload"
	TraitHttpError         = "smithy.api#httpError"
	TraitError             = "smithy.api#error"
	TraitTimestampFormat   = "smithy.api#timestampFormat"
	TraitStreaming         = "smithy.api#streaming"
	TraitRequired          = "smithy.api#required"
	TraitSensitive         = "smithy.api#sensitive"
	TraitEnum              = "smithy.api#enum"
	TraitEnumValue         = "smithy.api#enumValue"
	TraitJsonName          = "smithy.api#jsonName"
	TraitMediaType         = "smithy.api#mediaType"
	TraitEndpoint          = "smithy.api#endpoint"
	TraitHostLabel         = "smithy.api#hostLabel"
	TraitDocumentation     = "smithy.api#documentation"
)

// HttpTrait is the decoded value of the smithy.api#http operation trait.
type HttpTrait struct {
	Method string
	Uri    *UriPattern
	Code   int
}

// HttpTrait returns the http binding of the operation, if it has one.
func (ast *AST) HttpTrait(opId string) (*HttpTrait, bool, error) {
	op := ast.GetShape(opId)
	t := op.GetTrait(TraitHttp)
	if t == nil {
		return nil, false, nil
	}
	uri, err := ParseUriPattern(t.GetString("uri"))
	if err != nil {
		return nil, true, fmt.Errorf("Bad http trait uri on %s: %v", opId, err)
	}
	return &HttpTrait{
		Method: t.GetString("method"),
		Uri:    uri,
		Code:   t.GetInt("code", 200),
	}, true, nil
}

// ErrorTrait returns "client" or "server" for an error structure, or "" if it is not one.
func (ast *AST) ErrorTrait(id string) string {
	return ast.GetShape(id).GetStringTrait(TraitError)
}

func (ast *AST) HttpErrorCode(id string) int {
	shape := ast.GetShape(id)
	if code := shape.GetTrait(TraitHttpError).AsInt(0); code != 0 {
		return code
	}
	if shape.GetStringTrait(TraitError) == "server" {
		return 500
	}
	return 400
}

// TimestampFormatTrait returns the format named on the member itself, or else on its target.
func (ast *AST) TimestampFormatTrait(mem *Member) string {
	if f := mem.GetStringTrait(TraitTimestampFormat); f != "" {
		return f
	}
	return ast.GetShape(mem.Target).GetStringTrait(TraitTimestampFormat)
}

func (ast *AST) IsStreaming(mem *Member) bool {
	return mem.HasTrait(TraitStreaming) || ast.GetShape(mem.Target).HasTrait(TraitStreaming)
}

func (ast *AST) MediaType(mem *Member) string {
	if mt := mem.GetStringTrait(TraitMediaType); mt != "" {
		return mt
	}
	return ast.GetShape(mem.Target).GetStringTrait(TraitMediaType)
}

func IsRequired(mem *Member) bool {
	return mem.HasTrait(TraitRequired)
}

func IsSensitive(mem *Member) bool {
	return mem.HasTrait(TraitSensitive)
}

func IsHostLabel(mem *Member) bool {
	return mem.HasTrait(TraitHostLabel)
}

// JsonName returns the wire name of the member in a JSON document.
func JsonName(name string, mem *Member) string {
	if n := mem.GetStringTrait(TraitJsonName); n != "" {
		return n
	}
	return name
}

// EndpointHostPrefix returns the hostPrefix of the operation's endpoint trait.
func (ast *AST) EndpointHostPrefix(opId string) string {
	return ast.GetShape(opId).GetTrait(TraitEndpoint).GetString("hostPrefix")
}

func Documentation(traits *NodeValue) string {
	return traits.GetString(TraitDocumentation)
}

// EnumValue is one named constant of an enum or intEnum shape.
type EnumValue struct {
	Name  string
	Value string
	Int   int
}

// EnumValues returns the constants of an enum, from either the v1 enum trait or v2 members.
func (ast *AST) EnumValues(id string) []EnumValue {
	shape := ast.GetShape(id)
	if shape == nil {
		return nil
	}
	var result []EnumValue
	if t := shape.GetTrait(TraitEnum); t != nil {
		for _, item := range t.AsSlice() {
			val := item.GetString("value")
			name := item.GetString("name")
			if name == "" {
				name = val
			}
			result = append(result, EnumValue{Name: name, Value: val})
		}
		return result
	}
	for i, name := range shape.Members.Keys() {
		mem := shape.Members.Get(name)
		ev := EnumValue{Name: name, Value: name, Int: i}
		if v := mem.GetTrait(TraitEnumValue); v != nil {
			if s := v.AsString(); s != "" {
				ev.Value = s
			} else {
				ev.Int = v.AsInt(i)
			}
		}
		result = append(result, ev)
	}
	return result
}
