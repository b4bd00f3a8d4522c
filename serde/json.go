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
package serde

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"math/big"
	"sort"
	"strconv"
	"time"

	"github.com/aws/smithy-go"
	smithyjson "github.com/aws/smithy-go/encoding/json"
	smithytime "github.com/aws/smithy-go/time"
)

// TimestampFormat names the wire form of a timestamp inside a document.
type TimestampFormat int

const (
	DateTime TimestampFormat = iota + 1
	HTTPDate
	EpochSeconds
)

// ParseJSONBody collects the body and decodes it as a generic JSON tree.
func ParseJSONBody(body io.ReadCloser) (interface{}, error) {
	raw, err := CollectBody(body)
	if err != nil {
		return nil, err
	}
	return ParseJSONBytes(raw)
}

// ParseJSONBytes decodes raw JSON, keeping numbers as json.Number. An empty body yields nil.
func ParseJSONBytes(raw []byte) (interface{}, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	var v interface{}
	if err := decoder.Decode(&v); err != nil {
		return nil, &smithy.DeserializationError{
			Err:      fmt.Errorf("failed to decode response body, %w", err),
			Snapshot: raw,
		}
	}
	return v, nil
}

// EncodeJSONDocument encodes a tree of maps, slices and scalars. Object keys are sorted.
func EncodeJSONDocument(v interface{}) ([]byte, error) {
	encoder := smithyjson.NewEncoder()
	if err := encodeJSONValue(encoder.Value, v); err != nil {
		return nil, &smithy.SerializationError{Err: err}
	}
	return encoder.Bytes(), nil
}

func encodeJSONValue(value smithyjson.Value, v interface{}) error {
	switch tv := v.(type) {
	case nil:
		value.Null()
	case string:
		value.String(tv)
	case bool:
		value.Boolean(tv)
	case int8:
		value.Byte(tv)
	case int16:
		value.Short(tv)
	case int32:
		value.Integer(tv)
	case int64:
		value.Long(tv)
	case int:
		value.Long(int64(tv))
	case float32:
		value.Float(tv)
	case float64:
		value.Double(tv)
	case *big.Int:
		value.BigInteger(tv)
	case *big.Float:
		value.BigDecimal(tv)
	case json.Number:
		if i, err := tv.Int64(); err == nil {
			value.Long(i)
		} else if f, err := tv.Float64(); err == nil {
			value.Double(f)
		} else {
			return fmt.Errorf("invalid number %q", tv)
		}
	case []byte:
		value.Base64EncodeBytes(tv)
	case []interface{}:
		array := value.Array()
		for _, item := range tv {
			if err := encodeJSONValue(array.Value(), item); err != nil {
				return err
			}
		}
		array.Close()
	case map[string]interface{}:
		keys := make([]string, 0, len(tv))
		for k := range tv {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		object := value.Object()
		for _, k := range keys {
			if err := encodeJSONValue(object.Key(k), tv[k]); err != nil {
				return err
			}
		}
		object.Close()
	default:
		return fmt.Errorf("unsupported document value of type %T", v)
	}
	return nil
}

func typeError(expect string, value interface{}) error {
	return &smithy.DeserializationError{Err: fmt.Errorf("expected %s, got %T", expect, value)}
}

// ExpectObject returns the members of a JSON object. A nil value yields a nil map.
func ExpectObject(value interface{}) (map[string]interface{}, error) {
	if value == nil {
		return nil, nil
	}
	m, ok := value.(map[string]interface{})
	if !ok {
		return nil, typeError("JSON object", value)
	}
	return m, nil
}

func ExpectList(value interface{}) ([]interface{}, error) {
	if value == nil {
		return nil, nil
	}
	a, ok := value.([]interface{})
	if !ok {
		return nil, typeError("JSON array", value)
	}
	return a, nil
}

func ExpectString(value interface{}) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", typeError("string", value)
	}
	return s, nil
}

func ExpectBool(value interface{}) (bool, error) {
	b, ok := value.(bool)
	if !ok {
		return false, typeError("boolean", value)
	}
	return b, nil
}

func expectInteger(value interface{}, bits int) (int64, error) {
	switch n := value.(type) {
	case json.Number:
		i, err := strconv.ParseInt(n.String(), 10, bits)
		if err != nil {
			return 0, &smithy.DeserializationError{Err: err}
		}
		return i, nil
	case float64:
		if n != math.Trunc(n) {
			return 0, typeError("integer", value)
		}
		return int64(n), nil
	}
	return 0, typeError("integer", value)
}

func ExpectInt8(value interface{}) (int8, error) {
	i, err := expectInteger(value, 8)
	return int8(i), err
}

func ExpectInt16(value interface{}) (int16, error) {
	i, err := expectInteger(value, 16)
	return int16(i), err
}

func ExpectInt32(value interface{}) (int32, error) {
	i, err := expectInteger(value, 32)
	return int32(i), err
}

func ExpectInt64(value interface{}) (int64, error) {
	return expectInteger(value, 64)
}

func expectFloat(value interface{}, bits int) (float64, error) {
	switch n := value.(type) {
	case json.Number:
		f, err := strconv.ParseFloat(n.String(), bits)
		if err != nil {
			return 0, &smithy.DeserializationError{Err: err}
		}
		return f, nil
	case float64:
		return n, nil
	case string:
		switch n {
		case "NaN":
			return math.NaN(), nil
		case "Infinity":
			return math.Inf(1), nil
		case "-Infinity":
			return math.Inf(-1), nil
		}
	}
	return 0, typeError("number", value)
}

func ExpectFloat32(value interface{}) (float32, error) {
	f, err := expectFloat(value, 32)
	return float32(f), err
}

func ExpectFloat64(value interface{}) (float64, error) {
	return expectFloat(value, 64)
}

func ExpectBigInt(value interface{}) (*big.Int, error) {
	n, ok := value.(json.Number)
	if !ok {
		return nil, typeError("integer", value)
	}
	return ParseBigInt(n.String())
}

func ExpectBigFloat(value interface{}) (*big.Float, error) {
	n, ok := value.(json.Number)
	if !ok {
		return nil, typeError("number", value)
	}
	return ParseBigFloat(n.String())
}

// ExpectBlob decodes a base64 string.
func ExpectBlob(value interface{}) ([]byte, error) {
	s, err := ExpectString(value)
	if err != nil {
		return nil, err
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, &smithy.DeserializationError{Err: fmt.Errorf("invalid base64 value: %w", err)}
	}
	return b, nil
}

func ExpectTimestamp(value interface{}, format TimestampFormat) (time.Time, error) {
	if format == EpochSeconds {
		f, err := ExpectFloat64(value)
		if err != nil {
			return time.Time{}, err
		}
		return smithytime.ParseEpochSeconds(f), nil
	}
	s, err := ExpectString(value)
	if err != nil {
		return time.Time{}, err
	}
	var t time.Time
	if format == HTTPDate {
		t, err = smithytime.ParseHTTPDate(s)
	} else {
		t, err = smithytime.ParseDateTime(s)
	}
	if err != nil {
		return time.Time{}, &smithy.DeserializationError{Err: err}
	}
	return t, nil
}

// ExpectEnum decodes a JSON string as a named string type.
func ExpectEnum[T ~string](value interface{}) (T, error) {
	s, err := ExpectString(value)
	return T(s), err
}

func ExpectIntEnum[T ~int32](value interface{}) (T, error) {
	n, err := ExpectInt32(value)
	return T(n), err
}
