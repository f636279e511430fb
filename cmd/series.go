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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmazzahacks/loki-reader-core/client"
	"github.com/jmazzahacks/loki-reader-core/helper"
)

// seriesCmd represents the series command
var seriesCmd = &cobra.Command{
	Use:   "series MATCHER [MATCHER...]",
	Short: "List the label sets of series matching the given selectors",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c, err := client.CurrentClient(Verbose)
		helper.CheckError(err)
		defer c.Close()

		window, err := windowFromFlags(cmd)
		helper.CheckError(err)

		series, err := runSeriesCmd(c, args, window)
		helper.CheckError(err)

		out, err := renderSeries(series, Output)
		helper.CheckError(err)
		fmt.Println(out)
	},
}

func runSeriesCmd(c *client.Client, match []string, window *client.Window) ([]map[string]string, error) {
	return c.Series(match, window)
}

func init() {
	rootCmd.AddCommand(seriesCmd)

	addWindowFlags(seriesCmd)
}
