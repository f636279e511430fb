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
	"time"

	"github.com/spf13/cobra"

	"github.com/jmazzahacks/loki-reader-core/api"
	"github.com/jmazzahacks/loki-reader-core/client"
	"github.com/jmazzahacks/loki-reader-core/helper"
	"github.com/jmazzahacks/loki-reader-core/utils"
)

type rangeCmdContext struct {
	start     int64
	end       int64
	limit     int
	direction client.Direction
}

// rangeCmd represents the range command
var rangeCmd = &cobra.Command{
	Use:   "range [flags] LOGQL",
	Short: "Run a range query over a time window",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c, err := client.CurrentClient(Verbose)
		helper.CheckError(err)
		defer c.Close()

		ctx, err := rangeContextFromFlags(cmd)
		helper.CheckError(err)

		result, err := runRangeCmd(c, args[0], ctx)
		helper.CheckError(err)

		out, err := renderQueryResult(result, Output)
		helper.CheckError(err)
		fmt.Println(out)

		if stats, _ := cmd.Flags().GetBool("stats"); stats && result.Stats != nil {
			fmt.Println(renderStats(result.Stats, result.TotalEntries()))
		}
	},
}

func rangeContextFromFlags(cmd *cobra.Command) (*rangeCmdContext, error) {
	ctx := rangeCmdContext{direction: client.DirectionForward}

	since, err := cmd.Flags().GetDuration("since")
	if err != nil {
		return nil, err
	}
	if ctx.start, err = cmd.Flags().GetInt64("from"); err != nil {
		return nil, err
	}
	if ctx.end, err = cmd.Flags().GetInt64("to"); err != nil {
		return nil, err
	}
	if ctx.limit, err = cmd.Flags().GetInt("limit"); err != nil {
		return nil, err
	}

	if ctx.end == 0 {
		ctx.end = utils.NowNs()
	}
	if ctx.start == 0 {
		ctx.start = ctx.end - since.Nanoseconds()
	}

	if backward, err := cmd.Flags().GetBool("backward"); err != nil {
		return nil, err
	} else if backward {
		ctx.direction = client.DirectionBackward
	}

	return &ctx, nil
}

func runRangeCmd(c *client.Client, logql string, ctx *rangeCmdContext) (*api.QueryResult, error) {
	opts := &client.RangeOptions{
		Limit:     ctx.limit,
		Direction: ctx.direction,
	}
	return c.QueryRange(logql, ctx.start, ctx.end, opts)
}

func init() {
	rootCmd.AddCommand(rangeCmd)

	rangeCmd.Flags().Duration("since", time.Hour, "Look back this far from now when --from is not given")
	rangeCmd.Flags().Int64("from", 0, "Window start as a Unix nanosecond timestamp")
	rangeCmd.Flags().Int64("to", 0, "Window end as a Unix nanosecond timestamp (defaults to now)")
	rangeCmd.Flags().Int("limit", 0, "Maximum number of entries to return (defaults to the server limit)")
	rangeCmd.Flags().Bool("backward", false, "Return entries newest first instead of oldest first")
	rangeCmd.Flags().Bool("stats", false, "Print query statistics")
}
