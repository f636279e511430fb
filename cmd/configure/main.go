package configure

import (
	"github.com/spf13/cobra"
)

func NewConfigureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Configure loki-reader options",
	}

	cmd.AddCommand(NewRemoteCmd())

	return cmd
}
