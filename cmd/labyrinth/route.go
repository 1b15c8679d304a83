package main

import (
	"github.com/aretw0/labyrinth/internal/cli"
	"github.com/aretw0/labyrinth/pkg/domain"
	"github.com/spf13/cobra"
)

var routeCmd = &cobra.Command{
	Use:   "route <maze>",
	Short: "Discover a route through a maze",
	Long: `Walks the maze from a start cell, following the first passable passage (or a random one),
until it reaches a dead end, re-enters a visited cell or steps outside the maze.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadSettings(cmd)
		if err != nil {
			return err
		}

		engine, closer, err := cli.CreateEngine(cli.EngineOptions{Config: cfg, Logger: logger})
		if err != nil {
			return err
		}
		defer closer()

		opts := cli.RouteOptions{Maze: args[0]}
		opts.Start, _ = cmd.Flags().GetString("start")
		opts.Policy, _ = cmd.Flags().GetString("policy")
		opts.Samples, _ = cmd.Flags().GetInt("samples")
		opts.Headless, _ = cmd.Flags().GetBool("headless")
		opts.JSON, _ = cmd.Flags().GetBool("json")

		ctx := cli.NewSignalContext(cmd.Context(), logger)
		defer ctx.Cancel()

		return cli.RunRoute(ctx, engine, opts, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(routeCmd)
	routeCmd.Flags().StringP("start", "s", "", "Start cell ID (default: the maze's declared start)")
	routeCmd.Flags().StringP("policy", "p", domain.PolicyFirst, "Next-step policy: first or random")
	routeCmd.Flags().IntP("samples", "n", 0, "Number of randomized travel times to draw")
	routeCmd.Flags().Bool("headless", false, "Print only the route rendering")
	routeCmd.Flags().Bool("json", false, "Print the route record as JSON")
}
