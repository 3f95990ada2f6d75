package cmd

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/subsh/subsh/core/config"
)

var cfgPath string

func loadConfig() (*config.Configuration, error) {
	return config.Load(afero.NewOsFs(), cfgPath)
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "subsh",
	Short: "A small line-oriented command interpreter",
	Long: `subsh reads lines, parses them into a command tree and executes the
tree: pipelines, file redirections, sequencing and background jobs.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", ".", "config path")
}
