package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jmazzahacks/loki-reader-core/client"
	"github.com/jmazzahacks/loki-reader-core/utils"
)

func addWindowFlags(cmd *cobra.Command) {
	cmd.Flags().Duration("since", 0, "Look back this far from now (e.g. 1h, 30m); overrides --from/--to")
	cmd.Flags().Int64("from", 0, "Window start as a Unix nanosecond timestamp")
	cmd.Flags().Int64("to", 0, "Window end as a Unix nanosecond timestamp")
}

// windowFromFlags returns nil when no bound was requested so the server
// defaults apply.
func windowFromFlags(cmd *cobra.Command) (*client.Window, error) {
	since, err := cmd.Flags().GetDuration("since")
	if err != nil {
		return nil, err
	}
	from, err := cmd.Flags().GetInt64("from")
	if err != nil {
		return nil, err
	}
	to, err := cmd.Flags().GetInt64("to")
	if err != nil {
		return nil, err
	}

	window := &client.Window{Start: from, End: to}
	if since > 0 {
		window.End = utils.NowNs()
		window.Start = window.End - since.Nanoseconds()
	}

	if window.Start == 0 && window.End == 0 {
		return nil, nil
	}
	return window, nil
}
