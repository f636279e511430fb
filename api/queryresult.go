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

// Result types returned by Loki's query endpoints.
const (
	ResultTypeStreams = "streams"
	ResultTypeMatrix  = "matrix"
	ResultTypeVector  = "vector"
)

// QueryResult is the decoded payload of an instant or range query.
//
// Log queries fill Streams; metric queries (matrix or vector result types)
// fill Series. RawStats carries the server's statistics object byte for byte
// so callers can inspect fields the QueryStats summary does not map.
type QueryResult struct {
	Status     string
	ResultType string
	Streams    []Stream
	Series     []MetricSeries
	Stats      *QueryStats
	RawStats   json.RawMessage
}

type queryResponseWire struct {
	Status string        `json:"status"`
	Data   queryDataWire `json:"data"`
}

type queryDataWire struct {
	ResultType string          `json:"resultType"`
	Result     json.RawMessage `json:"result"`
	Stats      json.RawMessage `json:"stats,omitempty"`
}

// UnmarshalJSON decodes the full query response envelope:
// {"status": ..., "data": {"resultType": ..., "result": [...], "stats": {...}}}.
func (r *QueryResult) UnmarshalJSON(data []byte) error {
	var wire queryResponseWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("invalid query response: %w", err)
	}

	r.Status = wire.Status
	r.ResultType = wire.Data.ResultType
	r.Streams = nil
	r.Series = nil

	if len(wire.Data.Result) > 0 {
		switch wire.Data.ResultType {
		case ResultTypeStreams:
			if err := json.Unmarshal(wire.Data.Result, &r.Streams); err != nil {
				return fmt.Errorf("invalid streams result: %w", err)
			}
		case ResultTypeMatrix:
			series, err := metricSeriesFromMatrix(wire.Data.Result)
			if err != nil {
				return err
			}
			r.Series = series
		case ResultTypeVector:
			series, err := metricSeriesFromVector(wire.Data.Result)
			if err != nil {
				return err
			}
			r.Series = series
		default:
			return fmt.Errorf("unsupported result type %q", wire.Data.ResultType)
		}
	}

	r.Stats = nil
	r.RawStats = nil
	if len(wire.Data.Stats) > 0 {
		r.RawStats = append(json.RawMessage(nil), wire.Data.Stats...)
		stats, err := parseStats(wire.Data.Stats)
		if err != nil {
			return err
		}
		r.Stats = stats
	}

	return nil
}

// MarshalJSON re-emits the query response envelope so a decode/encode round
// trip is lossless for all mapped fields, stats included via RawStats.
func (r QueryResult) MarshalJSON() ([]byte, error) {
	wire := queryResponseWire{
		Status: r.Status,
		Data: queryDataWire{
			ResultType: r.ResultType,
			Stats:      r.RawStats,
		},
	}

	var result interface{}
	switch r.ResultType {
	case ResultTypeMatrix:
		series := make([]metricMatrixWire, 0, len(r.Series))
		for _, s := range r.Series {
			series = append(series, metricMatrixWire{Metric: s.Labels, Values: s.Samples})
		}
		result = series
	case ResultTypeVector:
		series := make([]metricVectorWire, 0, len(r.Series))
		for _, s := range r.Series {
			sample := MetricSample{}
			if len(s.Samples) > 0 {
				sample = s.Samples[0]
			}
			series = append(series, metricVectorWire{Metric: s.Labels, Value: sample})
		}
		result = series
	default:
		streams := r.Streams
		if streams == nil {
			streams = []Stream{}
		}
		result = streams
	}

	encoded, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	wire.Data.Result = encoded

	return json.Marshal(wire)
}

// TotalEntries returns the number of log entries across all streams.
func (r *QueryResult) TotalEntries() int {
	total := 0
	for _, stream := range r.Streams {
		total += len(stream.Entries)
	}
	return total
}
