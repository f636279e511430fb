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

package utils

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// one second of clock drift allowance between two NowNs reads
const driftNs = float64(NanosecondsPerSecond)

func TestNowNs(t *testing.T) {
	now := NowNs()
	assert.InDelta(t, time.Now().UnixNano(), now, driftNs)
}

func TestSecondsToNsRoundTrip(t *testing.T) {
	var tests = []int64{0, 1, -1, 60, 1700000000}

	for _, seconds := range tests {
		t.Run(fmt.Sprintf("%d", seconds), func(t *testing.T) {
			ns, err := SecondsToNs(float64(seconds))
			assert.NoError(t, err)
			assert.Equal(t, seconds*NanosecondsPerSecond, ns)
			assert.Equal(t, float64(seconds), NsToSeconds(ns))
		})
	}
}

func TestSecondsToNsFractional(t *testing.T) {
	ns, err := SecondsToNs(1.5)
	assert.NoError(t, err)
	assert.Equal(t, int64(1_500_000_000), ns)

	ns, err = SecondsToNs(0.000000001)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), ns)
}

func TestSecondsToNsNonFinite(t *testing.T) {
	var tests = []struct {
		name    string
		seconds float64
	}{
		{"nan", math.NaN()},
		{"+inf", math.Inf(1)},
		{"-inf", math.Inf(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SecondsToNs(tt.seconds)
			assert.True(t, errors.Is(err, ErrInvalidArgument))
		})
	}
}

func TestNsToSecondsKeepsFraction(t *testing.T) {
	assert.Equal(t, 1.5, NsToSeconds(1_500_000_000))
	assert.Equal(t, 0.25, NsToSeconds(250_000_000))
}

func TestAgoHelpers(t *testing.T) {
	var tests = []struct {
		name string
		fn   func(int64) int64
		n    int64
		unit int64
	}{
		{"minutes", MinutesAgoNs, 15, NanosecondsPerMinute},
		{"hours", HoursAgoNs, 2, NanosecondsPerHour},
		{"days", DaysAgoNs, 7, NanosecondsPerDay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.fn(tt.n)
			assert.InDelta(t, NowNs()-tt.n*tt.unit, got, driftNs)
		})
	}
}

func TestAgoHelpersNegativeMeansFuture(t *testing.T) {
	assert.Greater(t, MinutesAgoNs(-5), NowNs())
	assert.Greater(t, HoursAgoNs(-1), NowNs())
	assert.Greater(t, DaysAgoNs(-1), NowNs())
}
