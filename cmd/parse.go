package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/subsh/subsh/core/parse"
)

// parseCmd dumps the command tree for one line without executing it.
var parseCmd = &cobra.Command{
	Use:   "parse LINE...",
	Short: "Print the command tree for a line without running it.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		tree, err := parse.Parse(strings.Join(args, " "))
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), parse.Dump(tree))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
