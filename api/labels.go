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

// LabelResponse is the envelope of the labels and label-values endpoints.
type LabelResponse struct {
	Status string   `json:"status"`
	Data   []string `json:"data"`
}

// SeriesResponse is the envelope of the series endpoint: one label mapping
// per matching series.
type SeriesResponse struct {
	Status string              `json:"status"`
	Data   []map[string]string `json:"data"`
}
