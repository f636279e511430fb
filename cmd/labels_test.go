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

package cmd

import (
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
)

func TestLabelsCommand(t *testing.T) {
	c := newCmdTestClient(t)
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", cmdTestBaseURL+"/loki/api/v1/labels",
		httpmock.NewStringResponder(200, `{"status": "success", "data": ["job", "instance"]}`))

	labels, err := runLabelsCmd(c, nil, nil)

	assert.NoError(t, err)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
	assert.Equal(t, []string{"job", "instance"}, labels)
}

func TestLabelsCommandWithName(t *testing.T) {
	c := newCmdTestClient(t)
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", cmdTestBaseURL+"/loki/api/v1/label/job/values",
		httpmock.NewStringResponder(200, `{"status": "success", "data": ["api", "web"]}`))

	values, err := runLabelsCmd(c, []string{"job"}, nil)

	assert.NoError(t, err)
	assert.Equal(t, []string{"api", "web"}, values)
}
