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
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/ryanuber/columnize"
	"gopkg.in/yaml.v2"

	"github.com/jmazzahacks/loki-reader-core/api"
	"github.com/jmazzahacks/loki-reader-core/helper"
)

var colorize = []func(format string, a ...interface{}) string{
	color.BlackString,
	color.RedString,
	color.GreenString,
	color.YellowString,
	color.BlueString,
	color.MagentaString,
	color.CyanString,
	color.WhiteString,
}

var coloredStream = make(map[string]func(format string, a ...interface{}) string)

func getColoredLabels(labels string) string {
	colorIdx := int(math.Mod(float64(len(coloredStream)), float64(len(colorize))))

	if _, ok := coloredStream[labels]; !ok {
		coloredStream[labels] = colorize[colorIdx]
	}

	return coloredStream[labels]("%s", labels)
}

func renderQueryResult(result *api.QueryResult, format string) (string, error) {
	switch format {
	case "json":
		return helper.PrettyPrint(result), nil
	case "yaml":
		return renderYaml(result)
	case "table", "":
		if result.ResultType == api.ResultTypeMatrix || result.ResultType == api.ResultTypeVector {
			return renderMetricSeries(result.Series), nil
		}
		return renderStreams(result.Streams), nil
	}
	return "", fmt.Errorf("unknown output format %q", format)
}

func renderStreams(streams []api.Stream) string {
	var output []string
	output = append(output, strings.Join([]string{"TIMESTAMP", "LABELS", "MESSAGE"}, "|"))

	for _, stream := range streams {
		labels := api.FormatLabels(stream.Labels)
		for _, entry := range stream.Entries {
			ts := time.Unix(0, entry.Timestamp).UTC()
			row := []string{
				ts.Format("2006-01-02T15:04:05.000000000Z"),
				getColoredLabels(labels),
				entry.Message,
			}
			output = append(output, strings.Join(row, "|"))
		}
	}

	return columnize.SimpleFormat(output)
}

func renderMetricSeries(series []api.MetricSeries) string {
	var output []string
	output = append(output, strings.Join([]string{"TIMESTAMP", "LABELS", "VALUE"}, "|"))

	for _, s := range series {
		labels := api.FormatLabels(s.Labels)
		for _, sample := range s.Samples {
			ts := time.Unix(0, sample.Timestamp).UTC()
			row := []string{
				ts.Format("2006-01-02T15:04:05.000000000Z"),
				getColoredLabels(labels),
				strconv.FormatFloat(sample.Value, 'f', -1, 64),
			}
			output = append(output, strings.Join(row, "|"))
		}
	}

	return columnize.SimpleFormat(output)
}

func renderSeries(series []map[string]string, format string) (string, error) {
	switch format {
	case "json":
		return helper.PrettyPrint(series), nil
	case "yaml":
		return renderYaml(series)
	case "table", "":
		lines := make([]string, 0, len(series))
		for _, labels := range series {
			lines = append(lines, api.FormatLabels(labels))
		}
		return strings.Join(lines, "\n"), nil
	}
	return "", fmt.Errorf("unknown output format %q", format)
}

func renderLabels(labels []string, format string) (string, error) {
	switch format {
	case "json":
		return helper.PrettyPrint(labels), nil
	case "yaml":
		return renderYaml(labels)
	case "table", "":
		return strings.Join(labels, "\n"), nil
	}
	return "", fmt.Errorf("unknown output format %q", format)
}

func renderStats(stats *api.QueryStats, totalEntries int) string {
	return fmt.Sprintf("%d entries, %s processed over %d lines in %.3fs",
		totalEntries,
		humanize.Bytes(uint64(stats.BytesProcessed)),
		stats.LinesProcessed,
		stats.ExecTimeSeconds,
	)
}

// renderYaml goes through JSON first so the api types' custom wire mapping
// applies to yaml output as well.
func renderYaml(i interface{}) (string, error) {
	encoded, err := json.Marshal(i)
	if err != nil {
		return "", err
	}

	var generic interface{}
	if err := yaml.Unmarshal(encoded, &generic); err != nil {
		return "", err
	}

	out, err := yaml.Marshal(generic)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
