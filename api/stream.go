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

package api

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Stream is an ordered set of log entries sharing one label set. Entries are
// kept in the order the server returned them, which follows the requested
// query direction.
type Stream struct {
	Labels  map[string]string
	Entries []LogEntry
}

type streamWire struct {
	Stream map[string]string `json:"stream"`
	Values []LogEntry        `json:"values"`
}

func (s Stream) MarshalJSON() ([]byte, error) {
	return json.Marshal(streamWire{Stream: s.Labels, Values: s.Entries})
}

func (s *Stream) UnmarshalJSON(data []byte) error {
	var wire streamWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("invalid stream: %w", err)
	}

	s.Labels = wire.Stream
	s.Entries = wire.Values
	return nil
}

// FormatLabels renders a label set in LogQL selector notation with the label
// names sorted, e.g. {instance="web-1", job="api"}.
func FormatLabels(labels map[string]string) string {
	names := make([]string, 0, len(labels))
	for name := range labels {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]string, 0, len(names))
	for _, name := range names {
		pairs = append(pairs, fmt.Sprintf("%s=%q", name, labels[name]))
	}
	return "{" + strings.Join(pairs, ", ") + "}"
}
