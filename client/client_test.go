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

package client

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"

	"github.com/jmazzahacks/loki-reader-core/api"
)

const testBaseURL = "http://loki.test"

const streamsBody = `{
	"status": "success",
	"data": {
		"resultType": "streams",
		"result": [
			{"stream": {"job": "a"}, "values": [["1700000000000000001", "one"], ["1700000000000000002", "two"]]},
			{"stream": {"job": "b"}, "values": [["1700000000000000003", "three"]]}
		]
	}
}`

func newTestClient(t *testing.T, config *Config) *Client {
	if config == nil {
		config = &Config{BaseURL: testBaseURL}
	}

	c, err := New(config)
	assert.NoError(t, err)

	httpmock.ActivateNonDefault(c.http.GetClient())
	return c
}

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := New(&Config{})
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestQueryOmitsOptionalParams(t *testing.T) {
	c := newTestClient(t, nil)
	defer httpmock.DeactivateAndReset()

	var query url.Values
	httpmock.RegisterResponder("GET", testBaseURL+"/loki/api/v1/query",
		func(req *http.Request) (*http.Response, error) {
			query = req.URL.Query()
			return httpmock.NewStringResponse(200, streamsBody), nil
		},
	)

	result, err := c.Query(`{job="a"}`, nil)

	assert.NoError(t, err)
	assert.Equal(t, 3, result.TotalEntries())
	assert.Equal(t, `{job="a"}`, query.Get("query"))

	// omitted options must not appear at all so the server defaults apply
	_, hasLimit := query["limit"]
	assert.False(t, hasLimit)
	_, hasTime := query["time"]
	assert.False(t, hasTime)
}

func TestQueryWithOptions(t *testing.T) {
	c := newTestClient(t, nil)
	defer httpmock.DeactivateAndReset()

	var query url.Values
	httpmock.RegisterResponder("GET", testBaseURL+"/loki/api/v1/query",
		func(req *http.Request) (*http.Response, error) {
			query = req.URL.Query()
			return httpmock.NewStringResponse(200, streamsBody), nil
		},
	)

	_, err := c.Query(`{job="a"}`, &QueryOptions{Time: 1700000000123456789, Limit: 50})

	assert.NoError(t, err)
	assert.Equal(t, "1700000000123456789", query.Get("time"))
	assert.Equal(t, "50", query.Get("limit"))
}

func TestQueryEmptyLogql(t *testing.T) {
	c := newTestClient(t, nil)
	defer httpmock.DeactivateAndReset()

	_, err := c.Query("", nil)

	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.Equal(t, 0, httpmock.GetTotalCallCount())
}

func TestQueryRangeInvalidWindow(t *testing.T) {
	c := newTestClient(t, nil)
	defer httpmock.DeactivateAndReset()

	_, err := c.QueryRange(`{job="a"}`, 200, 100, nil)

	// fail fast: no request goes out on an inverted window
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.Equal(t, 0, httpmock.GetTotalCallCount())
}

func TestQueryRangeInvalidDirection(t *testing.T) {
	c := newTestClient(t, nil)
	defer httpmock.DeactivateAndReset()

	_, err := c.QueryRange(`{job="a"}`, 100, 200, &RangeOptions{Direction: "sideways"})

	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.Equal(t, 0, httpmock.GetTotalCallCount())
}

func TestQueryRange(t *testing.T) {
	c := newTestClient(t, nil)
	defer httpmock.DeactivateAndReset()

	var query url.Values
	httpmock.RegisterResponder("GET", testBaseURL+"/loki/api/v1/query_range",
		func(req *http.Request) (*http.Response, error) {
			query = req.URL.Query()
			return httpmock.NewStringResponse(200, streamsBody), nil
		},
	)

	result, err := c.QueryRange(`{job=~"a|b"}`, 1700000000000000000, 1700000060000000000, nil)

	assert.NoError(t, err)
	assert.Equal(t, api.ResultTypeStreams, result.ResultType)
	assert.Equal(t, "1700000000000000000", query.Get("start"))
	assert.Equal(t, "1700000060000000000", query.Get("end"))
	assert.Equal(t, "forward", query.Get("direction"))
	_, hasLimit := query["limit"]
	assert.False(t, hasLimit)

	// the two-stream fixture comes back in order, entries ascending
	assert.Len(t, result.Streams, 2)
	assert.Equal(t, map[string]string{"job": "a"}, result.Streams[0].Labels)
	assert.Equal(t, map[string]string{"job": "b"}, result.Streams[1].Labels)
	entries := result.Streams[0].Entries
	assert.True(t, entries[0].Timestamp < entries[1].Timestamp)
}

func TestQueryRangeBackward(t *testing.T) {
	c := newTestClient(t, nil)
	defer httpmock.DeactivateAndReset()

	var query url.Values
	httpmock.RegisterResponder("GET", testBaseURL+"/loki/api/v1/query_range",
		func(req *http.Request) (*http.Response, error) {
			query = req.URL.Query()
			return httpmock.NewStringResponse(200, streamsBody), nil
		},
	)

	_, err := c.QueryRange(`{job="a"}`, 100, 200, &RangeOptions{Direction: DirectionBackward, Limit: 10})

	assert.NoError(t, err)
	assert.Equal(t, "backward", query.Get("direction"))
	assert.Equal(t, "10", query.Get("limit"))
}

func TestErrorTaxonomy(t *testing.T) {
	c := newTestClient(t, nil)
	defer httpmock.DeactivateAndReset()

	t.Run("transport failure", func(t *testing.T) {
		httpmock.Reset()
		httpmock.RegisterResponder("GET", testBaseURL+"/loki/api/v1/query",
			httpmock.NewErrorResponder(fmt.Errorf("connection refused")))

		_, err := c.Query(`{job="a"}`, nil)

		var requestErr *RequestError
		assert.True(t, errors.As(err, &requestErr))
		// the error names the full URL, host included
		assert.Contains(t, requestErr.URL, testBaseURL+"/loki/api/v1/query")
	})

	t.Run("non-2xx status", func(t *testing.T) {
		httpmock.Reset()
		httpmock.RegisterResponder("GET", testBaseURL+"/loki/api/v1/query",
			httpmock.NewStringResponder(500, "something exploded"))

		_, err := c.Query(`{job="a"}`, nil)

		var responseErr *ResponseError
		assert.True(t, errors.As(err, &responseErr))
		assert.Equal(t, 500, responseErr.StatusCode)
		assert.Equal(t, "something exploded", responseErr.Body)
		assert.False(t, responseErr.Unauthorized())
	})

	t.Run("unauthorized", func(t *testing.T) {
		httpmock.Reset()
		httpmock.RegisterResponder("GET", testBaseURL+"/loki/api/v1/query",
			httpmock.NewStringResponder(401, "no such tenant"))

		_, err := c.Query(`{job="a"}`, nil)

		var responseErr *ResponseError
		assert.True(t, errors.As(err, &responseErr))
		assert.True(t, responseErr.Unauthorized())
	})

	t.Run("invalid json", func(t *testing.T) {
		httpmock.Reset()
		httpmock.RegisterResponder("GET", testBaseURL+"/loki/api/v1/query",
			httpmock.NewStringResponder(200, "<html>not json</html>"))

		_, err := c.Query(`{job="a"}`, nil)

		var decodeErr *DecodeError
		assert.True(t, errors.As(err, &decodeErr))
	})

	t.Run("error status in envelope", func(t *testing.T) {
		httpmock.Reset()
		httpmock.RegisterResponder("GET", testBaseURL+"/loki/api/v1/query",
			httpmock.NewStringResponder(200, `{"status": "error", "error": "parse error at line 1"}`))

		_, err := c.Query(`{job="a"}`, nil)

		var decodeErr *DecodeError
		assert.True(t, errors.As(err, &decodeErr))
		assert.Equal(t, "parse error at line 1", decodeErr.Message)
	})
}

func TestLabels(t *testing.T) {
	c := newTestClient(t, nil)
	defer httpmock.DeactivateAndReset()

	var query url.Values
	httpmock.RegisterResponder("GET", testBaseURL+"/loki/api/v1/labels",
		func(req *http.Request) (*http.Response, error) {
			query = req.URL.Query()
			return httpmock.NewStringResponse(200, `{"status": "success", "data": ["job", "instance"]}`), nil
		},
	)

	labels, err := c.Labels(nil)

	assert.NoError(t, err)
	assert.Equal(t, []string{"job", "instance"}, labels)
	_, hasStart := query["start"]
	assert.False(t, hasStart)
	_, hasEnd := query["end"]
	assert.False(t, hasEnd)
}

func TestLabelsWindow(t *testing.T) {
	c := newTestClient(t, nil)
	defer httpmock.DeactivateAndReset()

	var query url.Values
	httpmock.RegisterResponder("GET", testBaseURL+"/loki/api/v1/labels",
		func(req *http.Request) (*http.Response, error) {
			query = req.URL.Query()
			return httpmock.NewStringResponse(200, `{"status": "success", "data": []}`), nil
		},
	)

	_, err := c.Labels(&Window{Start: 100, End: 200})

	assert.NoError(t, err)
	assert.Equal(t, "100", query.Get("start"))
	assert.Equal(t, "200", query.Get("end"))
}

func TestLabelValues(t *testing.T) {
	c := newTestClient(t, nil)
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", testBaseURL+"/loki/api/v1/label/job/values",
		httpmock.NewStringResponder(200, `{"status": "success", "data": ["api", "web"]}`))

	values, err := c.LabelValues("job", nil)

	assert.NoError(t, err)
	assert.Equal(t, []string{"api", "web"}, values)
}

func TestLabelValuesEmptyName(t *testing.T) {
	c := newTestClient(t, nil)
	defer httpmock.DeactivateAndReset()

	_, err := c.LabelValues("", nil)

	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.Equal(t, 0, httpmock.GetTotalCallCount())
}

func TestSeries(t *testing.T) {
	c := newTestClient(t, nil)
	defer httpmock.DeactivateAndReset()

	var query url.Values
	httpmock.RegisterResponder("GET", testBaseURL+"/loki/api/v1/series",
		func(req *http.Request) (*http.Response, error) {
			query = req.URL.Query()
			return httpmock.NewStringResponse(200,
				`{"status": "success", "data": [{"job": "a"}, {"job": "b"}]}`), nil
		},
	)

	series, err := c.Series([]string{`{job="a"}`, `{job="b"}`}, nil)

	assert.NoError(t, err)
	assert.Equal(t, []map[string]string{{"job": "a"}, {"job": "b"}}, series)
	assert.Equal(t, []string{`{job="a"}`, `{job="b"}`}, query["match[]"])
}

func TestSeriesRequiresMatcher(t *testing.T) {
	c := newTestClient(t, nil)
	defer httpmock.DeactivateAndReset()

	_, err := c.Series(nil, nil)

	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.Equal(t, 0, httpmock.GetTotalCallCount())
}

func TestRequestHeaders(t *testing.T) {
	c := newTestClient(t, &Config{
		BaseURL:  testBaseURL,
		Username: "reader",
		Password: "s3cret",
		OrgID:    "tenant-1",
	})
	defer httpmock.DeactivateAndReset()

	var header http.Header
	httpmock.RegisterResponder("GET", testBaseURL+"/loki/api/v1/labels",
		func(req *http.Request) (*http.Response, error) {
			header = req.Header
			return httpmock.NewStringResponse(200, `{"status": "success", "data": []}`), nil
		},
	)

	_, err := c.Labels(nil)

	assert.NoError(t, err)
	assert.Equal(t, "tenant-1", header.Get("X-Scope-OrgID"))
	// "reader:s3cret" base64 encoded
	assert.Equal(t, "Basic cmVhZGVyOnMzY3JldA==", header.Get("Authorization"))
	assert.Contains(t, header.Get("User-Agent"), "loki-reader/")
}

func TestRequestHeadersWithoutTenant(t *testing.T) {
	c := newTestClient(t, nil)
	defer httpmock.DeactivateAndReset()

	var header http.Header
	httpmock.RegisterResponder("GET", testBaseURL+"/loki/api/v1/labels",
		func(req *http.Request) (*http.Response, error) {
			header = req.Header
			return httpmock.NewStringResponse(200, `{"status": "success", "data": []}`), nil
		},
	)

	_, err := c.Labels(nil)

	assert.NoError(t, err)
	_, hasOrg := header["X-Scope-Orgid"]
	assert.False(t, hasOrg)
	_, hasAuth := header["Authorization"]
	assert.False(t, hasAuth)
}
