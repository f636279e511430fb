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

// Package utils provides helpers for working with Loki's nanosecond-precision
// Unix timestamps.
package utils

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidArgument reports caller misuse, such as a non-finite timestamp.
// Check for it with errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

const (
	NanosecondsPerSecond int64 = 1_000_000_000
	NanosecondsPerMinute       = NanosecondsPerSecond * 60
	NanosecondsPerHour         = NanosecondsPerMinute * 60
	NanosecondsPerDay          = NanosecondsPerHour * 24
)

// NowNs returns the current wall-clock time as Unix nanoseconds.
func NowNs() int64 {
	return time.Now().UnixNano()
}

// SecondsToNs converts a Unix timestamp in (possibly fractional) seconds to
// nanoseconds, rounded to the nearest nanosecond. Non-finite input is
// rejected.
func SecondsToNs(seconds float64) (int64, error) {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return 0, fmt.Errorf("%w: seconds must be a finite number, got %v", ErrInvalidArgument, seconds)
	}
	return int64(math.Round(seconds * float64(NanosecondsPerSecond))), nil
}

// NsToSeconds converts Unix nanoseconds to fractional seconds. The division
// is real valued so sub-second precision is not silently discarded.
func NsToSeconds(nanoseconds int64) float64 {
	return float64(nanoseconds) / float64(NanosecondsPerSecond)
}

// MinutesAgoNs returns the timestamp n minutes before now as Unix
// nanoseconds. A negative n yields a timestamp in the future.
func MinutesAgoNs(minutes int64) int64 {
	return NowNs() - minutes*NanosecondsPerMinute
}

// HoursAgoNs returns the timestamp n hours before now as Unix nanoseconds.
// A negative n yields a timestamp in the future.
func HoursAgoNs(hours int64) int64 {
	return NowNs() - hours*NanosecondsPerHour
}

// DaysAgoNs returns the timestamp n days before now as Unix nanoseconds.
// A negative n yields a timestamp in the future.
func DaysAgoNs(days int64) int64 {
	return NowNs() - days*NanosecondsPerDay
}
