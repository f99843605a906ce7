package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "kayotsaha",
	Short: "Kayotsaha authentication web frontend",
	Long: `Kayotsaha serves the login, registration, OTP verification and
password reset pages in front of the Kayotsaha authentication API.

Use "kayotsaha [command] --help" for more information about a specific command.`,
	SilenceUsage: true,
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
