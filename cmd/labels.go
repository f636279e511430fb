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

// labelsCmd represents the labels command
var labelsCmd = &cobra.Command{
	Use:   "labels [NAME]",
	Short: "List label names, or the values of one label",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c, err := client.CurrentClient(Verbose)
		helper.CheckError(err)
		defer c.Close()

		window, err := windowFromFlags(cmd)
		helper.CheckError(err)

		labels, err := runLabelsCmd(c, args, window)
		helper.CheckError(err)

		out, err := renderLabels(labels, Output)
		helper.CheckError(err)
		fmt.Println(out)
	},
}

func runLabelsCmd(c *client.Client, args []string, window *client.Window) ([]string, error) {
	if len(args) > 0 {
		return c.LabelValues(args[0], window)
	}
	return c.Labels(window)
}

func init() {
	rootCmd.AddCommand(labelsCmd)

	addWindowFlags(labelsCmd)
}
