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
package httpbinding

// Format is a timestamp wire format.
type Format int

const (
	DateTime Format = iota + 1
	HttpDate
	EpochSeconds
)

func (f Format) String() string {
	switch f {
	case DateTime:
		return "date-time"
	case HttpDate:
		return "http-date"
	case EpochSeconds:
		return "epoch-seconds"
	}
	return "unknown"
}

func ParseFormat(s string) (Format, bool) {
	switch s {
	case "date-time":
		return DateTime, true
	case "http-date":
		return HttpDate, true
	case "epoch-seconds":
		return EpochSeconds, true
	}
	return 0, false
}
