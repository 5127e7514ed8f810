package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/natcat-sim/natcat/commands"
	"github.com/spf13/cobra"
)

// builtinsCmd lists the simulated commands
var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "Show the commands the simulator understands.",
	RunE: func(cmd *cobra.Command, args []string) error {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		for _, entry := range commands.ListBuiltinCommands() {
			fmt.Fprintf(tw, "%s\t%s\n", entry.Use, entry.Short)
		}

		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(builtinsCmd)
}
