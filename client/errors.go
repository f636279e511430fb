// Copyright 2024 loki-reader-core contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package client

import (
	"fmt"
	"net/http"

	"github.com/jmazzahacks/loki-reader-core/utils"
)

// ErrInvalidArgument reports caller misuse detected before any request is
// issued: an inverted time range, an empty required field, and the like.
// Check for it with errors.Is. It is the same sentinel the utils package
// wraps, so one check covers the whole library.
var ErrInvalidArgument = utils.ErrInvalidArgument

// RequestError reports a transport-level failure: DNS resolution, refused
// connection, TLS handshake or timeout. The underlying error is wrapped.
type RequestError struct {
	URL string
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// ResponseError reports a non-2xx HTTP status. It carries the status code
// and the raw response body for diagnostics.
type ResponseError struct {
	StatusCode int
	Body       string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Body)
}

// Unauthorized reports whether the failure was an authentication or
// authorization rejection.
func (e *ResponseError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// DecodeError reports a response body that is not valid JSON, does not match
// the expected schema, or carries an error status in its envelope.
type DecodeError struct {
	Message string
	Err     error
}

func (e *DecodeError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("loki reported an error: %s", e.Message)
	}
	return fmt.Sprintf("invalid response from server: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
