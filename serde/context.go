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

// Package serde is the runtime support used by generated HTTP binding serializers and
// deserializers.
package serde

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/aws/smithy-go/logging"
)

// Endpoint is the resolved target of requests.
type Endpoint struct {
	Protocol string
	Hostname string
	Port     int
	Path     string
}

// Context is passed to every generated serializer and deserializer.
type Context struct {
	Endpoint          Endpoint
	DisableHostPrefix bool
	Logger            logging.Logger
}

// NewContext parses an endpoint URL such as "https://weather.example.com:8443/v1".
func NewContext(endpoint string) (*Context, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid endpoint %q: no host", endpoint)
	}
	ep := Endpoint{
		Protocol: u.Scheme,
		Hostname: u.Hostname(),
		Path:     u.Path,
	}
	if p := u.Port(); p != "" {
		ep.Port, err = strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid endpoint port %q: %w", p, err)
		}
	}
	return &Context{Endpoint: ep, Logger: logging.Nop{}}, nil
}

func (ctx *Context) Logf(level logging.Classification, format string, v ...interface{}) {
	if ctx == nil || ctx.Logger == nil {
		return
	}
	ctx.Logger.Logf(level, format, v...)
}
