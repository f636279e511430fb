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

// Package client implements a thin, synchronous client for Grafana Loki's
// HTTP query API.
package client

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/jmazzahacks/loki-reader-core/api"
	"github.com/jmazzahacks/loki-reader-core/helper"
	"github.com/jmazzahacks/loki-reader-core/version"
)

const (
	queryPath       = "/loki/api/v1/query"
	queryRangePath  = "/loki/api/v1/query_range"
	labelsPath      = "/loki/api/v1/labels"
	labelValuesPath = "/loki/api/v1/label/%s/values"
	seriesPath      = "/loki/api/v1/series"
)

var userAgent = fmt.Sprintf("loki-reader/%s", version.Version)

// Direction controls the entry ordering of a range query.
type Direction string

const (
	DirectionForward  Direction = "forward"
	DirectionBackward Direction = "backward"
)

// Client queries a Loki instance over its HTTP API. All operations are
// synchronous, read-only and idempotent.
//
// A Client is safe for concurrent use by multiple goroutines: its
// configuration is immutable after New and the underlying HTTP client
// manages its own connection pool.
type Client struct {
	config *Config
	http   *resty.Client
	logger *zap.SugaredLogger
}

// New builds a Client from the given config, extended with the defaults from
// DefaultConfig.
func New(config *Config) (*Client, error) {
	config = ExtendDefaultConfig(config)
	if config.BaseURL == "" {
		return nil, fmt.Errorf("%w: base URL is required", ErrInvalidArgument)
	}

	httpClient := resty.New()
	httpClient.SetHostURL(strings.TrimRight(config.BaseURL, "/"))
	httpClient.SetTimeout(config.Timeout)
	httpClient.SetHeader("User-Agent", userAgent)

	if config.Username != "" || config.Password != "" {
		httpClient.SetBasicAuth(config.Username, config.Password)
	}
	if config.OrgID != "" {
		httpClient.SetHeader("X-Scope-OrgID", config.OrgID)
	}
	if config.CACert != "" {
		httpClient.SetRootCertificate(config.CACert)
	}
	if config.InsecureSkipVerify {
		httpClient.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}

	return &Client{
		config: config,
		http:   httpClient,
		logger: helper.GetSugarLogger([]string{"client"}),
	}, nil
}

// SetDebug toggles request and response dumps on the underlying HTTP client.
func (c *Client) SetDebug(debug bool) {
	c.http.SetDebug(debug)
}

// HTTPClient exposes the underlying http.Client, mainly so tests can
// intercept its transport.
func (c *Client) HTTPClient() *http.Client {
	return c.http.GetClient()
}

// Close releases the idle connections held by the client. The client remains
// usable afterwards and calling Close more than once is harmless.
func (c *Client) Close() {
	c.http.GetClient().CloseIdleConnections()
}

// QueryOptions are the optional parameters of an instant query. Zero fields
// are omitted from the request entirely so the server-side defaults apply.
type QueryOptions struct {
	// Time is the evaluation timestamp in Unix nanoseconds. Zero means the
	// server evaluates at its current time.
	Time int64
	// Limit caps the number of returned entries. Zero means the server
	// default limit.
	Limit int
}

// RangeOptions are the optional parameters of a range query.
type RangeOptions struct {
	// Limit caps the number of returned entries. Zero means the server
	// default limit.
	Limit int
	// Direction orders entries within each stream. Empty defaults to
	// DirectionForward.
	Direction Direction
}

// Window optionally bounds label and series lookups, in Unix nanoseconds.
// Zero bounds are omitted from the request.
type Window struct {
	Start int64
	End   int64
}

// Query runs an instant query evaluated at a single point in time. The logql
// string is passed through opaquely; this layer never parses it. A nil opts
// applies the server defaults.
func (c *Client) Query(logql string, opts *QueryOptions) (*api.QueryResult, error) {
	if logql == "" {
		return nil, fmt.Errorf("%w: query must not be empty", ErrInvalidArgument)
	}
	if opts == nil {
		opts = &QueryOptions{}
	}

	params := url.Values{}
	params.Set("query", logql)
	if opts.Time != 0 {
		params.Set("time", strconv.FormatInt(opts.Time, 10))
	}
	if opts.Limit > 0 {
		params.Set("limit", strconv.Itoa(opts.Limit))
	}

	var result api.QueryResult
	if err := c.get(queryPath, params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// QueryRange runs a range query over the [start, end] window, both in Unix
// nanoseconds. It fails with ErrInvalidArgument before issuing any request
// when start is after end.
func (c *Client) QueryRange(logql string, start, end int64, opts *RangeOptions) (*api.QueryResult, error) {
	if logql == "" {
		return nil, fmt.Errorf("%w: query must not be empty", ErrInvalidArgument)
	}
	if start > end {
		return nil, fmt.Errorf("%w: start %d is after end %d", ErrInvalidArgument, start, end)
	}
	if opts == nil {
		opts = &RangeOptions{}
	}

	direction := opts.Direction
	if direction == "" {
		direction = DirectionForward
	}
	if direction != DirectionForward && direction != DirectionBackward {
		return nil, fmt.Errorf("%w: direction must be %q or %q",
			ErrInvalidArgument, DirectionForward, DirectionBackward)
	}

	params := url.Values{}
	params.Set("query", logql)
	params.Set("start", strconv.FormatInt(start, 10))
	params.Set("end", strconv.FormatInt(end, 10))
	params.Set("direction", string(direction))
	if opts.Limit > 0 {
		params.Set("limit", strconv.Itoa(opts.Limit))
	}

	var result api.QueryResult
	if err := c.get(queryRangePath, params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Labels lists the label names known to the server, optionally bounded by a
// time window.
func (c *Client) Labels(window *Window) ([]string, error) {
	var response api.LabelResponse
	if err := c.get(labelsPath, windowParams(window), &response); err != nil {
		return nil, err
	}
	return response.Data, nil
}

// LabelValues lists the known values of one label, optionally bounded by a
// time window.
func (c *Client) LabelValues(label string, window *Window) ([]string, error) {
	if label == "" {
		return nil, fmt.Errorf("%w: label name must not be empty", ErrInvalidArgument)
	}

	path := fmt.Sprintf(labelValuesPath, url.PathEscape(label))
	var response api.LabelResponse
	if err := c.get(path, windowParams(window), &response); err != nil {
		return nil, err
	}
	return response.Data, nil
}

// Series returns the label set of every series matching at least one of the
// given stream selectors.
func (c *Client) Series(match []string, window *Window) ([]map[string]string, error) {
	if len(match) == 0 {
		return nil, fmt.Errorf("%w: at least one matcher is required", ErrInvalidArgument)
	}

	params := windowParams(window)
	for _, m := range match {
		params.Add("match[]", m)
	}

	var response api.SeriesResponse
	if err := c.get(seriesPath, params, &response); err != nil {
		return nil, err
	}
	return response.Data, nil
}

func windowParams(window *Window) url.Values {
	params := url.Values{}
	if window == nil {
		return params
	}
	if window.Start != 0 {
		params.Set("start", strconv.FormatInt(window.Start, 10))
	}
	if window.End != 0 {
		params.Set("end", strconv.FormatInt(window.End, 10))
	}
	return params
}

func (c *Client) get(path string, params url.Values, out interface{}) error {
	c.logger.Debugw("loki request", "path", path, "params", params.Encode())

	request := c.http.R().SetQueryParamsFromValues(params)
	resp, err := request.Get(path)
	if err != nil {
		// request.URL holds the resolved absolute URL once the request has
		// been prepared, which keeps the host in the error message
		return &RequestError{URL: request.URL, Err: err}
	}

	if resp.StatusCode()/100 != 2 {
		return &ResponseError{StatusCode: resp.StatusCode(), Body: string(resp.Body())}
	}

	return decodeBody(resp.Body(), out)
}

// decodeBody checks the response envelope for an error status before
// unmarshalling into the caller's structure.
func decodeBody(body []byte, out interface{}) error {
	var envelope struct {
		Status string `json:"status"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return &DecodeError{Err: err}
	}
	if envelope.Status == "error" {
		message := envelope.Error
		if message == "" {
			message = "unknown error"
		}
		return &DecodeError{Message: message}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &DecodeError{Err: err}
	}
	return nil
}
