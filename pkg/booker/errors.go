/*
Copyright 2026 Nscale.

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

package booker

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport wraps network failures and timeouts.
	ErrTransport = errors.New("transport failure")

	// ErrBadCredentials is returned when the auth endpoint refuses the
	// credentials. The API signals this with a 200 and a reason.
	ErrBadCredentials = errors.New("bad credentials")

	// ErrMalformedResponse is returned when a body cannot be decoded at all.
	ErrMalformedResponse = errors.New("malformed response")
)

// StatusError is returned when the API answers with an unexpected status.
type StatusError struct {
	Method   string
	Path     string
	Expected int
	Actual   int
	Body     string
	TraceID  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code for %s %s: expected %d, got %d, body: %s (trace ID: %s)", e.Method, e.Path, e.Expected, e.Actual, e.Body, e.TraceID)
}
