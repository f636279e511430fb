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

	"github.com/jmazzahacks/loki-reader-core/api"
	"github.com/jmazzahacks/loki-reader-core/client"
	"github.com/jmazzahacks/loki-reader-core/helper"
)

type queryCmdContext struct {
	time  int64
	limit int
}

// queryCmd represents the query command
var queryCmd = &cobra.Command{
	Use:   "query [flags] LOGQL",
	Short: "Run an instant query at a single point in time",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c, err := client.CurrentClient(Verbose)
		helper.CheckError(err)
		defer c.Close()

		ctx := queryCmdContext{}
		ctx.time, err = cmd.Flags().GetInt64("time")
		helper.CheckError(err)
		ctx.limit, err = cmd.Flags().GetInt("limit")
		helper.CheckError(err)

		result, err := runQueryCmd(c, args[0], &ctx)
		helper.CheckError(err)

		out, err := renderQueryResult(result, Output)
		helper.CheckError(err)
		fmt.Println(out)

		if stats, _ := cmd.Flags().GetBool("stats"); stats && result.Stats != nil {
			fmt.Println(renderStats(result.Stats, result.TotalEntries()))
		}
	},
}

func runQueryCmd(c *client.Client, logql string, ctx *queryCmdContext) (*api.QueryResult, error) {
	opts := &client.QueryOptions{
		Time:  ctx.time,
		Limit: ctx.limit,
	}
	return c.Query(logql, opts)
}

func init() {
	rootCmd.AddCommand(queryCmd)

	queryCmd.Flags().Int64("time", 0, "Evaluation timestamp in Unix nanoseconds (defaults to now, server side)")
	queryCmd.Flags().Int("limit", 0, "Maximum number of entries to return (defaults to the server limit)")
	queryCmd.Flags().Bool("stats", false, "Print query statistics")
}
