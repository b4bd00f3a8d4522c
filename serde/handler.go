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
	"context"
	"net/http"

	"github.com/aws/smithy-go/logging"
)

// Handler sends a serialized request and returns the raw response.
type Handler interface {
	Handle(ctx context.Context, req *Request) (*Response, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, req *Request) (*Response, error)

func (fn HandlerFunc) Handle(ctx context.Context, req *Request) (*Response, error) {
	return fn(ctx, req)
}

// HTTPHandler sends requests with an http.Client.
type HTTPHandler struct {
	Client *http.Client
	Logger logging.Logger
}

func (h *HTTPHandler) Handle(ctx context.Context, req *Request) (*Response, error) {
	sreq, err := req.SmithyRequest()
	if err != nil {
		return nil, err
	}
	hreq := sreq.Build(ctx)
	if h.Logger != nil {
		logging.WithContext(ctx, h.Logger).Logf(logging.Debug, "%s %s", hreq.Method, hreq.URL)
	}
	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(hreq)
	if err != nil {
		return nil, err
	}
	return NewResponse(resp), nil
}
