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
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"

	smithyhttp "github.com/aws/smithy-go/transport/http"
)

// Request is the protocol-neutral result of a generated request serializer. The Path is
// already escaped.
type Request struct {
	Protocol string
	Method   string
	Hostname string
	Port     int
	Path     string
	Headers  http.Header
	Query    url.Values
	Body     []byte
	Stream   io.Reader
}

func (r *Request) URL() (*url.URL, error) {
	path, err := url.PathUnescape(r.Path)
	if err != nil {
		return nil, fmt.Errorf("invalid request path %q: %w", r.Path, err)
	}
	host := r.Hostname
	if r.Port != 0 {
		host = net.JoinHostPort(host, strconv.Itoa(r.Port))
	}
	scheme := r.Protocol
	if scheme == "" {
		scheme = "https"
	}
	u := &url.URL{
		Scheme:  scheme,
		Host:    host,
		Path:    path,
		RawPath: r.Path,
	}
	if len(r.Query) > 0 {
		u.RawQuery = r.Query.Encode()
	}
	return u, nil
}

// SmithyRequest converts the request into a smithy-go transport request.
func (r *Request) SmithyRequest() (*smithyhttp.Request, error) {
	req := smithyhttp.NewStackRequest().(*smithyhttp.Request)
	u, err := r.URL()
	if err != nil {
		return nil, err
	}
	req.Method = r.Method
	req.URL = u
	if r.Headers != nil {
		req.Header = r.Headers.Clone()
	}
	stream := r.Stream
	if stream == nil && r.Body != nil {
		stream = bytes.NewReader(r.Body)
	}
	if stream != nil {
		req, err = req.SetStream(stream)
		if err != nil {
			return nil, err
		}
	}
	return req, nil
}
