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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricSampleUnmarshal(t *testing.T) {
	var tests = []struct {
		name       string
		wire       string
		expectedTs int64
		expectedV  float64
	}{
		{"whole seconds", `[1700000000, "3.14"]`, 1700000000000000000, 3.14},
		{"fractional seconds", `[1700000000.25, "1"]`, 1700000000250000000, 1},
		{"zero", `[0, "0"]`, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sample MetricSample
			err := json.Unmarshal([]byte(tt.wire), &sample)

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedTs, sample.Timestamp)
			assert.Equal(t, tt.expectedV, sample.Value)
		})
	}
}

func TestMetricSampleUnmarshalInvalid(t *testing.T) {
	var tests = []struct {
		name string
		wire string
	}{
		{"not an array", `{"value": 1}`},
		{"string timestamp", `["1700000000", "1"]`},
		{"numeric value", `[1700000000, 1]`},
		{"non numeric value", `[1700000000, "many"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sample MetricSample
			assert.Error(t, json.Unmarshal([]byte(tt.wire), &sample))
		})
	}
}

func TestMetricSampleMarshal(t *testing.T) {
	sample := MetricSample{Timestamp: 1700000000500000000, Value: 2.5}

	out, err := json.Marshal(sample)
	assert.NoError(t, err)
	assert.JSONEq(t, `[1700000000.5, "2.5"]`, string(out))
}
