package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kayotsaha/authweb/internal/app"
	"github.com/kayotsaha/authweb/internal/config"
)

var serveFlags struct {
	addr       string
	apiBaseURL string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the authentication pages",
	Long: `Serve the authentication pages until SIGINT or SIGTERM.

Configuration comes from the environment and an optional .env file. The
flags below take precedence over both.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		applyServeFlags()

		cfg, err := config.New()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return app.Run(ctx, cfg)
	},
}

// applyServeFlags exports set flags as environment variables, which .env
// loading never overrides.
func applyServeFlags() {
	if serveFlags.addr != "" {
		os.Setenv("APP_ADDR", serveFlags.addr)
	}
	if serveFlags.apiBaseURL != "" {
		os.Setenv("API_BASE_URL", serveFlags.apiBaseURL)
	}
}

func init() {
	serveCmd.Flags().StringVar(&serveFlags.addr, "addr", "", "listen address (APP_ADDR)")
	serveCmd.Flags().StringVar(&serveFlags.apiBaseURL, "api-base-url", "", "base URL of the authentication API (API_BASE_URL)")
	rootCmd.AddCommand(serveCmd)
}
