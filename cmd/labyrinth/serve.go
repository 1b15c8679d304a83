package main

import (
	"github.com/aretw0/labyrinth/internal/cli"
	"github.com/aretw0/labyrinth/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Exposes maze listing, description, validation and route discovery as a JSON API over HTTP.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.HTTP.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("metrics") {
			cfg.Metrics, _ = cmd.Flags().GetBool("metrics")
		}

		out := cmd.OutOrStdout()
		if tui.IsTerminal(out) {
			tui.PrintBanner(out)
		}

		ctx := cli.NewSignalContext(cmd.Context(), logger)
		defer ctx.Cancel()

		return cli.Serve(ctx, cli.EngineOptions{Config: cfg, Logger: logger}, out)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().Bool("metrics", false, "Expose Prometheus metrics on /metrics")
}
