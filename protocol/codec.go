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
package protocol

import (
	"fmt"

	"github.com/boynton/smithygen/httpbinding"
	"github.com/boynton/smithygen/smithy"
)

// Expr is a generated Go expression. A fallible expression evaluates to (T, error).
type Expr struct {
	Code     string
	Fallible bool
}

func plain(format string, args ...interface{}) Expr {
	return Expr{Code: fmt.Sprintf(format, args...)}
}

func fallible(format string, args ...interface{}) Expr {
	return Expr{Code: fmt.Sprintf(format, args...), Fallible: true}
}

// UnsupportedBindingError is returned for a shape kind that cannot be bound to a location.
type UnsupportedBindingError struct {
	Operation string
	Member    string
	Kind      smithy.Kind
	Location  httpbinding.Location
	Protocol  string
}

func (e *UnsupportedBindingError) Error() string {
	return fmt.Sprintf("Unsupported %s binding of %s to %s in %s using the %s protocol", e.Location, e.Member, e.Kind, e.Operation, e.Protocol)
}

// ValueCodec produces the expressions that convert member values to and from their
// string or byte forms at an HTTP location. Document bodies are left to the protocol.
type ValueCodec struct {
	ctx      *GenerationContext
	protocol Protocol
}

func NewValueCodec(ctx *GenerationContext, p Protocol) *ValueCodec {
	return &ValueCodec{ctx: ctx, protocol: p}
}

func (c *ValueCodec) unsupported(opId string, b *httpbinding.Binding, kind smithy.Kind, loc httpbinding.Location) error {
	return &UnsupportedBindingError{
		Operation: opId,
		Member:    b.MemberName,
		Kind:      kind,
		Location:  loc,
		Protocol:  c.protocol.Name(),
	}
}

func (c *ValueCodec) timestampFormat(b *httpbinding.Binding, loc httpbinding.Location) httpbinding.Format {
	return c.ctx.Index.DetermineTimestampFormat(b.Member, loc, c.protocol.DocumentTimestampFormat())
}

// InputValue converts the member value in dataSource for the request. At HEADER, QUERY,
// LABEL and PREFIX_HEADERS the result is a string, except that a list bound to QUERY
// yields a []string. At PAYLOAD the result is the body bytes, a reader, or a document.
func (c *ValueCodec) InputValue(opId string, loc httpbinding.Location, b *httpbinding.Binding, dataSource string) (Expr, error) {
	kind := c.ctx.Model.ShapeKind(b.Target())
	if loc == httpbinding.Payload {
		return c.inputPayload(opId, b, kind, dataSource)
	}
	if loc == httpbinding.Document {
		return Expr{}, c.unsupported(opId, b, kind, loc)
	}
	w := c.ctx.Writer
	switch kind {
	case smithy.Blob:
		if loc == httpbinding.Header || loc == httpbinding.Query {
			w.AddImport("encoding/base64", "")
			return plain("base64.StdEncoding.EncodeToString(%s)", dataSource), nil
		}
	case smithy.List, smithy.Set:
		if loc != httpbinding.Header && loc != httpbinding.Query {
			break
		}
		elem := c.elementBinding(b, c.ctx.Model.GetShape(b.Target()).Member)
		elemKind := c.ctx.Model.ShapeKind(elem.Target())
		if elemKind.IsAggregate() || elemKind == smithy.Document {
			return Expr{}, c.unsupported(opId, b, elemKind, loc)
		}
		list := dataSource
		if elemKind != smithy.String {
			item, err := c.stringValue(opId, loc, elem, elemKind, "item")
			if err != nil {
				return Expr{}, err
			}
			list = fmt.Sprintf("%s.FormatList(%s, func(item %s) string { return %s })", c.ctx.Serde(), dataSource, c.ctx.Symbols.ValueType(w, elem.Target()), item.Code)
		}
		if loc == httpbinding.Query {
			return plain("%s", list), nil
		}
		if elemKind == smithy.Timestamp && c.timestampFormat(elem, loc) == httpbinding.HttpDate {
			return plain("%s.JoinHTTPDateList(%s)", c.ctx.Serde(), list), nil
		}
		return plain("%s.JoinHeaderList(%s)", c.ctx.Serde(), list), nil
	default:
		if kind.IsSimple() || kind == smithy.IntEnum {
			return c.stringValue(opId, loc, b, kind, dataSource)
		}
	}
	return Expr{}, c.unsupported(opId, b, kind, loc)
}

// stringValue formats a scalar as a string.
func (c *ValueCodec) stringValue(opId string, loc httpbinding.Location, b *httpbinding.Binding, kind smithy.Kind, v string) (Expr, error) {
	w := c.ctx.Writer
	switch kind {
	case smithy.Boolean:
		w.AddImport("strconv", "")
		return plain("strconv.FormatBool(%s)", v), nil
	case smithy.Byte, smithy.Short, smithy.Integer, smithy.Long, smithy.IntEnum:
		w.AddImport("strconv", "")
		return plain("strconv.FormatInt(int64(%s), 10)", v), nil
	case smithy.Float:
		w.AddImport("strconv", "")
		return plain("strconv.FormatFloat(float64(%s), 'f', -1, 32)", v), nil
	case smithy.Double:
		w.AddImport("strconv", "")
		return plain("strconv.FormatFloat(%s, 'f', -1, 64)", v), nil
	case smithy.BigInteger:
		return plain("%s.String()", v), nil
	case smithy.BigDecimal:
		return plain("%s.Text('g', -1)", v), nil
	case smithy.String:
		return plain("%s", v), nil
	case smithy.Enum:
		return plain("string(%s)", v), nil
	case smithy.Timestamp:
		switch c.timestampFormat(b, loc) {
		case httpbinding.HttpDate:
			w.AddImport("github.com/aws/smithy-go/time", "smithytime")
			return plain("smithytime.FormatHTTPDate(%s)", v), nil
		case httpbinding.DateTime:
			w.AddImport("github.com/aws/smithy-go/time", "smithytime")
			return plain("smithytime.FormatDateTime(%s)", v), nil
		default:
			return plain("%s.FormatEpochSeconds(%s)", c.ctx.Serde(), v), nil
		}
	case smithy.Blob:
		w.AddImport("encoding/base64", "")
		return plain("base64.StdEncoding.EncodeToString(%s)", v), nil
	}
	return Expr{}, c.unsupported(opId, b, kind, loc)
}

func (c *ValueCodec) inputPayload(opId string, b *httpbinding.Binding, kind smithy.Kind, v string) (Expr, error) {
	switch kind {
	case smithy.Blob:
		return plain("%s", v), nil
	case smithy.String:
		return plain("[]byte(%s)", v), nil
	case smithy.Structure, smithy.Union:
		return fallible("%s(%s, ctx)", c.ctx.Symbols.DocumentSerializerName(c.protocol.Name(), b.Target()), v), nil
	case smithy.Document:
		return plain("%s", v), nil
	case smithy.Timestamp:
	default:
		if kind.IsSimple() || kind == smithy.IntEnum {
			s, err := c.stringValue(opId, httpbinding.Payload, b, kind, v)
			if err != nil {
				return Expr{}, err
			}
			return plain("[]byte(%s)", s.Code), nil
		}
	}
	return Expr{}, c.unsupported(opId, b, kind, httpbinding.Payload)
}

// OutputValue converts the response value in dataSource to the member's Go value. At
// HEADER and PREFIX_HEADERS the source is the header string. At PAYLOAD it is the
// collected string for strings, the bytes or stream for blobs, and the parsed document
// for structures, unions and documents.
func (c *ValueCodec) OutputValue(opId string, loc httpbinding.Location, b *httpbinding.Binding, dataSource string) (Expr, error) {
	kind := c.ctx.Model.ShapeKind(b.Target())
	w := c.ctx.Writer
	switch loc {
	case httpbinding.Payload:
		switch kind {
		case smithy.Blob, smithy.String, smithy.Document:
			return plain("%s", dataSource), nil
		case smithy.Enum:
			return plain("%s(%s)", c.ctx.Symbols.TypeName(b.Target()), dataSource), nil
		case smithy.Structure, smithy.Union:
			return fallible("%s(%s, ctx)", c.ctx.Symbols.DocumentDeserializerName(c.protocol.Name(), b.Target()), dataSource), nil
		}
	case httpbinding.Header, httpbinding.PrefixHeaders, httpbinding.Query, httpbinding.Label:
		switch kind {
		case smithy.Blob:
			if loc == httpbinding.Header {
				w.AddImport("encoding/base64", "")
				return fallible("base64.StdEncoding.DecodeString(%s)", dataSource), nil
			}
		case smithy.List, smithy.Set:
			if loc != httpbinding.Header {
				break
			}
			elem := c.elementBinding(b, c.ctx.Model.GetShape(b.Target()).Member)
			elemKind := c.ctx.Model.ShapeKind(elem.Target())
			if elemKind.IsAggregate() || elemKind == smithy.Document {
				return Expr{}, c.unsupported(opId, b, elemKind, loc)
			}
			split := fmt.Sprintf("%s.SplitHeaderList(%s)", c.ctx.Serde(), dataSource)
			if elemKind == smithy.Timestamp && c.timestampFormat(elem, loc) == httpbinding.HttpDate {
				split = fmt.Sprintf("%s.SplitHTTPDateList(%s)", c.ctx.Serde(), dataSource)
			}
			if elemKind == smithy.String {
				return plain("%s", split), nil
			}
			parse, err := c.parseFunc(opId, loc, elem, elemKind)
			if err != nil {
				return Expr{}, err
			}
			return fallible("%s.ParseList(%s, %s)", c.ctx.Serde(), split, parse), nil
		default:
			if kind.IsSimple() || kind == smithy.IntEnum {
				return c.parseValue(opId, loc, b, kind, dataSource)
			}
		}
	}
	return Expr{}, c.unsupported(opId, b, kind, loc)
}

// parseValue parses a scalar from a string.
func (c *ValueCodec) parseValue(opId string, loc httpbinding.Location, b *httpbinding.Binding, kind smithy.Kind, v string) (Expr, error) {
	switch kind {
	case smithy.String:
		return plain("%s", v), nil
	case smithy.Enum:
		return plain("%s(%s)", c.ctx.Symbols.TypeName(b.Target()), v), nil
	case smithy.Boolean:
		return plain("%s == \"true\"", v), nil
	}
	parse, err := c.parseFunc(opId, loc, b, kind)
	if err != nil {
		return Expr{}, err
	}
	return fallible("%s(%s)", parse, v), nil
}

// parseFunc names a func(string) (T, error) for the kind.
func (c *ValueCodec) parseFunc(opId string, loc httpbinding.Location, b *httpbinding.Binding, kind smithy.Kind) (string, error) {
	serde := c.ctx.Serde()
	w := c.ctx.Writer
	switch kind {
	case smithy.Boolean:
		return serde + ".ParseBool", nil
	case smithy.Byte:
		return serde + ".ParseInt8", nil
	case smithy.Short:
		return serde + ".ParseInt16", nil
	case smithy.Integer:
		return serde + ".ParseInt32", nil
	case smithy.Long:
		return serde + ".ParseInt64", nil
	case smithy.Float:
		return serde + ".ParseFloat32", nil
	case smithy.Double:
		return serde + ".ParseFloat64", nil
	case smithy.BigInteger:
		return serde + ".ParseBigInt", nil
	case smithy.BigDecimal:
		return serde + ".ParseBigFloat", nil
	case smithy.IntEnum:
		return fmt.Sprintf("%s.ParseIntEnum[%s]", serde, c.ctx.Symbols.TypeName(b.Target())), nil
	case smithy.Enum:
		name := c.ctx.Symbols.TypeName(b.Target())
		return fmt.Sprintf("func(s string) (%s, error) { return %s(s), nil }", name, name), nil
	case smithy.Timestamp:
		switch c.timestampFormat(b, loc) {
		case httpbinding.HttpDate:
			w.AddImport("github.com/aws/smithy-go/time", "smithytime")
			return "smithytime.ParseHTTPDate", nil
		case httpbinding.DateTime:
			w.AddImport("github.com/aws/smithy-go/time", "smithytime")
			return "smithytime.ParseDateTime", nil
		default:
			return serde + ".ParseEpochSeconds", nil
		}
	case smithy.Blob:
		w.AddImport("encoding/base64", "")
		return "base64.StdEncoding.DecodeString", nil
	}
	return "", c.unsupported(opId, b, kind, loc)
}

// elementBinding binds a collection element at the location of its collection, so that
// the element's own timestampFormat applies.
func (c *ValueCodec) elementBinding(b *httpbinding.Binding, elem *smithy.Member) *httpbinding.Binding {
	return &httpbinding.Binding{
		MemberName:   b.MemberName,
		Member:       elem,
		Location:     b.Location,
		LocationName: b.LocationName,
	}
}
