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
	"time"

	"github.com/imdario/mergo"
	"github.com/jinzhu/copier"
)

// Config holds the connection settings for a Loki server. It is copied at
// construction time and never mutated afterwards.
type Config struct {
	// BaseURL of the Loki server, e.g. "https://loki.example.com". Required.
	BaseURL string

	// Username and Password enable HTTP basic authentication when non-empty.
	Username string
	Password string

	// OrgID is sent as the X-Scope-OrgID header on every request for
	// multi-tenant Loki setups.
	OrgID string

	// CACert is a path to a PEM file. When set, server certificates are
	// validated against it exclusively.
	CACert string

	// InsecureSkipVerify disables server certificate validation entirely.
	// This is an explicit opt-in for test servers with self-signed
	// certificates; never enable it against production endpoints.
	InsecureSkipVerify bool

	// Timeout bounds every request issued by the client.
	Timeout time.Duration
}

// DefaultConfig returns the configuration defaults: certificate validation
// on and a 30 second request timeout.
func DefaultConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}

// ExtendDefaultConfig fills the zero fields of the given config with the
// defaults.
//
// The given config is left untouched.
func ExtendDefaultConfig(config *Config) *Config {
	extended := Config{}
	copier.Copy(&extended, config)
	mergo.Merge(&extended, DefaultConfig())
	return &extended
}
