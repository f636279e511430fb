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

// Package api defines the data structures exchanged with Loki's HTTP query
// API and their wire-format mapping.
package api

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// LogEntry is a single log line from a Loki stream.
//
// On the wire Loki represents an entry as a two-element array: a decimal
// string holding a Unix nanosecond timestamp, and the log line itself. The
// timestamp is carried as a string so the full 64-bit integer survives JSON.
type LogEntry struct {
	Timestamp int64
	Message   string
}

func (e LogEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{strconv.FormatInt(e.Timestamp, 10), e.Message})
}

func (e *LogEntry) UnmarshalJSON(data []byte) error {
	var value [2]string
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("log entry is not a [timestamp, line] pair: %w", err)
	}

	timestamp, err := strconv.ParseInt(value[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid log entry timestamp %q: %w", value[0], err)
	}

	e.Timestamp = timestamp
	e.Message = value[1]
	return nil
}
