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
)

// QueryStats summarizes the execution statistics Loki attaches to a query
// response. Only the summary section is mapped; the complete stats object is
// preserved untouched in QueryResult.RawStats.
type QueryStats struct {
	BytesProcessed  int64
	LinesProcessed  int64
	ExecTimeSeconds float64
}

type statsWire struct {
	Summary struct {
		TotalBytesProcessed int64   `json:"totalBytesProcessed"`
		TotalLinesProcessed int64   `json:"totalLinesProcessed"`
		ExecTime            float64 `json:"execTime"`
	} `json:"summary"`
}

func parseStats(raw json.RawMessage) (*QueryStats, error) {
	var wire statsWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("invalid query stats: %w", err)
	}

	return &QueryStats{
		BytesProcessed:  wire.Summary.TotalBytesProcessed,
		LinesProcessed:  wire.Summary.TotalLinesProcessed,
		ExecTimeSeconds: wire.Summary.ExecTime,
	}, nil
}
