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
	"io"
	"net/http"

	"github.com/aws/smithy-go"
)

// Response is the input of a generated response deserializer.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       io.ReadCloser
}

func NewResponse(resp *http.Response) *Response {
	header := resp.Header
	if header == nil {
		header = http.Header{}
	}
	return &Response{
		StatusCode: resp.StatusCode,
		Header:     header,
		Body:       resp.Body,
	}
}

// Metadata describes the HTTP exchange that produced an output or error.
type Metadata struct {
	HTTPStatusCode    int
	RequestID         string
	ExtendedRequestID string
	CfID              string
}

func DeserializeMetadata(resp *Response) Metadata {
	if resp == nil {
		return Metadata{}
	}
	md := Metadata{HTTPStatusCode: resp.StatusCode}
	if resp.Header != nil {
		md.RequestID = resp.Header.Get("X-Amzn-Requestid")
		if md.RequestID == "" {
			md.RequestID = resp.Header.Get("X-Amz-Request-Id")
		}
		md.ExtendedRequestID = resp.Header.Get("X-Amz-Id-2")
		md.CfID = resp.Header.Get("X-Amz-Cf-Id")
	}
	return md
}

// CollectBody reads and closes the body. A nil body yields no bytes.
func CollectBody(body io.ReadCloser) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	defer body.Close()
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, &smithy.DeserializationError{Err: err}
	}
	return raw, nil
}

func CollectBodyString(body io.ReadCloser) (string, error) {
	raw, err := CollectBody(body)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
