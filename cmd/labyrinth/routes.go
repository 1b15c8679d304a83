package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/labyrinth"
	"github.com/aretw0/labyrinth/internal/cli"
	"github.com/aretw0/labyrinth/internal/config"
	"github.com/spf13/cobra"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Manage persisted routes",
	Long:  `Lists, shows and deletes route records kept by the configured store (file or redis).`,
}

func withStoreEngine(cmd *cobra.Command, fn func(*labyrinth.Engine) error) error {
	cfg, logger, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if cfg.Store.Kind == "" || cfg.Store.Kind == config.StoreNone {
		cfg.Store.Kind = config.StoreFile
	}
	engine, closer, err := cli.CreateEngine(cli.EngineOptions{Config: cfg, Logger: logger})
	if err != nil {
		return err
	}
	defer closer()
	return fn(engine)
}

var routesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List persisted route IDs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStoreEngine(cmd, func(engine *labyrinth.Engine) error {
			ids, err := engine.Routes(cmd.Context())
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		})
	},
}

var routesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a persisted route",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStoreEngine(cmd, func(engine *labyrinth.Engine) error {
			rec, err := engine.Route(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rec)
			}
			fmt.Fprint(cmd.OutOrStdout(), labyrinth.FormatReport(rec, nil))
			return nil
		})
	},
}

var routesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a persisted route",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStoreEngine(cmd, func(engine *labyrinth.Engine) error {
			return engine.DeleteRoute(cmd.Context(), args[0])
		})
	},
}

func init() {
	rootCmd.AddCommand(routesCmd)
	routesCmd.AddCommand(routesListCmd, routesShowCmd, routesDeleteCmd)
	routesShowCmd.Flags().Bool("json", false, "Print the record as JSON")
}
