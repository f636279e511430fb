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
	"math"
	"strconv"

	"github.com/jmazzahacks/loki-reader-core/utils"
)

// MetricSample is a single datapoint of a metric query such as rate() or
// count_over_time().
//
// Loki serializes a sample as [<unix_seconds_float>, "<value>"]. The
// fractional-second timestamp is converted to Unix nanoseconds at this
// decode boundary; everywhere else in the library timestamps stay in
// nanoseconds.
type MetricSample struct {
	Timestamp int64
	Value     float64
}

func (s MetricSample) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]interface{}{
		utils.NsToSeconds(s.Timestamp),
		strconv.FormatFloat(s.Value, 'f', -1, 64),
	})
}

func (s *MetricSample) UnmarshalJSON(data []byte) error {
	var wire [2]json.RawMessage
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("metric sample is not a [timestamp, value] pair: %w", err)
	}

	var seconds float64
	if err := json.Unmarshal(wire[0], &seconds); err != nil {
		return fmt.Errorf("invalid metric sample timestamp: %w", err)
	}

	var text string
	if err := json.Unmarshal(wire[1], &text); err != nil {
		return fmt.Errorf("invalid metric sample value: %w", err)
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return fmt.Errorf("invalid metric sample value %q: %w", text, err)
	}

	// Split the float timestamp so whole seconds keep exact integer
	// precision and only the fraction goes through floating point.
	whole, frac := math.Modf(seconds)
	s.Timestamp = int64(whole)*utils.NanosecondsPerSecond +
		int64(math.Round(frac*float64(utils.NanosecondsPerSecond)))
	s.Value = value
	return nil
}

// MetricSeries is a set of metric samples sharing one label set, produced by
// matrix (range) and vector (instant) metric query results.
type MetricSeries struct {
	Labels  map[string]string
	Samples []MetricSample
}

type metricMatrixWire struct {
	Metric map[string]string `json:"metric"`
	Values []MetricSample    `json:"values"`
}

type metricVectorWire struct {
	Metric map[string]string `json:"metric"`
	Value  MetricSample      `json:"value"`
}

func metricSeriesFromMatrix(raw json.RawMessage) ([]MetricSeries, error) {
	var wire []metricMatrixWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("invalid matrix result: %w", err)
	}

	series := make([]MetricSeries, 0, len(wire))
	for _, w := range wire {
		series = append(series, MetricSeries{Labels: w.Metric, Samples: w.Values})
	}
	return series, nil
}

func metricSeriesFromVector(raw json.RawMessage) ([]MetricSeries, error) {
	var wire []metricVectorWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("invalid vector result: %w", err)
	}

	series := make([]MetricSeries, 0, len(wire))
	for _, w := range wire {
		series = append(series, MetricSeries{Labels: w.Metric, Samples: []MetricSample{w.Value}})
	}
	return series, nil
}
