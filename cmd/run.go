package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/subsh/subsh/core/logger"
	"github.com/subsh/subsh/core/shell"
)

var commandLine string

// runCmd starts the interpreter: interactive on a terminal, batch for a
// script file, a -c string, or piped stdin.
var runCmd = &cobra.Command{
	Use:   "run [script]",
	Short: "Run the interpreter.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		configuration, err := loadConfig()
		if err != nil {
			return err
		}

		eventLog := logger.NewNopLogger()
		if configuration.LogPath != "" {
			fd, err := os.OpenFile(configuration.LogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
			if err != nil {
				return err
			}
			defer fd.Close()
			eventLog = logger.NewJSONLinesRecorder(fd)
		}

		sh, err := shell.New(configuration, eventLog, os.Stdin, os.Stdout, os.Stderr)
		if err != nil {
			return err
		}
		defer sh.Close()

		switch {
		case commandLine != "":
			return sh.RunBatch(strings.NewReader(commandLine))

		case len(args) == 1:
			script, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer script.Close()
			return sh.RunBatch(script)

		case term.IsTerminal(int(os.Stdin.Fd())):
			return sh.RunInteractive()

		default:
			return sh.RunBatch(os.Stdin)
		}
	},
}

func init() {
	runCmd.Flags().StringVarP(&commandLine, "command", "c", "", "execute the given line and exit")
	rootCmd.AddCommand(runCmd)
}
