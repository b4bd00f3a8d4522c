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
	"fmt"
	"strings"

	"github.com/aws/smithy-go"
)

// LabelError is returned by a request serializer when an http label is nil or empty.
type LabelError struct {
	Label string
	Empty bool
}

func (e *LabelError) Error() string {
	if e.Empty {
		return fmt.Sprintf("Empty value provided for input HTTP label: %s.", e.Label)
	}
	return fmt.Sprintf("No value provided for input HTTP label: %s.", e.Label)
}

// HostLabelError is returned when a host prefix label is missing or does not produce a
// valid host name.
type HostLabelError struct {
	Label    string
	Hostname string
}

func (e *HostLabelError) Error() string {
	if e.Hostname != "" {
		return fmt.Sprintf("ValidationError: prefixed hostname %q must be hostname compatible.", e.Hostname)
	}
	return fmt.Sprintf("Empty value provided for input host prefix: %s.", e.Label)
}

// ErrorResponse is an error response whose body has been collected, and parsed when the
// protocol carries the error code in the body.
type ErrorResponse struct {
	*Response
	Raw      []byte
	Document interface{}
}

// UnknownError is returned for an error response whose code matches none of the
// operation's modeled errors.
type UnknownError struct {
	Code     string
	Message  string
	Fault    smithy.ErrorFault
	Body     []byte
	Document interface{}
	Metadata Metadata
}

var _ smithy.APIError = (*UnknownError)(nil)

func (e *UnknownError) Error() string {
	return fmt.Sprintf("api error %s: %s", e.Code, e.Message)
}

func (e *UnknownError) ErrorCode() string             { return e.Code }
func (e *UnknownError) ErrorMessage() string          { return e.Message }
func (e *UnknownError) ErrorFault() smithy.ErrorFault { return e.Fault }

// NewUnknownError builds the fallback error for an unrecognized error code.
func NewUnknownError(code string, resp *ErrorResponse) *UnknownError {
	if code == "" {
		code = DocumentString(resp.Document, "code")
	}
	if code == "" {
		code = DocumentString(resp.Document, "Code")
	}
	if code == "" {
		code = "UnknownError"
	}
	e := &UnknownError{
		Code:     code,
		Body:     resp.Raw,
		Document: resp.Document,
		Fault:    smithy.FaultUnknown,
	}
	if resp.Response != nil {
		e.Metadata = DeserializeMetadata(resp.Response)
		switch {
		case resp.StatusCode >= 500:
			e.Fault = smithy.FaultServer
		case resp.StatusCode >= 400:
			e.Fault = smithy.FaultClient
		}
	}
	e.Message = DocumentString(resp.Document, "message")
	if e.Message == "" {
		e.Message = DocumentString(resp.Document, "Message")
	}
	if e.Message == "" {
		e.Message = code
	}
	return e
}

// SanitizeErrorCode strips a namespace prefix ("ns#Code") and any ":"-separated suffix.
func SanitizeErrorCode(code string) string {
	if i := strings.Index(code, ":"); i >= 0 {
		code = code[:i]
	}
	if i := strings.LastIndex(code, "#"); i >= 0 {
		code = code[i+1:]
	}
	return strings.TrimSpace(code)
}

// DocumentString returns the string value of a key in a parsed object document.
func DocumentString(doc interface{}, key string) string {
	m, ok := doc.(map[string]interface{})
	if !ok {
		return ""
	}
	s, _ := m[key].(string)
	return s
}
