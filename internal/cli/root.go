// Package cli implements the codetime command line front-end.
package cli

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var logger = logrus.New()

var rootCmd = &cobra.Command{
	Use:   "codetime",
	Short: "Coding-session stats from commit history",
	Long: `codetime estimates developer activity on a repository by grouping
its commit history into coding sessions and aggregating them into
hours, sessions, streaks and per-author breakdowns.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetOutput(os.Stderr)
		logger.SetLevel(logrus.WarnLevel)
		if viper.GetBool("verbose") {
			logger.SetLevel(logrus.DebugLevel)
		}
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("token", "", "GitHub API token (or CODETIME_TOKEN)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	_ = viper.BindPFlag("token", rootCmd.PersistentFlags().Lookup("token"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	viper.SetEnvPrefix("CODETIME")
	viper.AutomaticEnv()
}
