package main

import (
	"fmt"

	"github.com/aretw0/labyrinth/internal/cli"
	"github.com/aretw0/labyrinth/internal/validator"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [maze...]",
	Short: "Check maze definitions for consistency",
	Long:  `Reports passages to unknown cells, non-positive costs, unknown members and members unreachable from the declared start. With no arguments every maze is checked.`,
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

		names := args
		if len(names) == 0 {
			if names, err = engine.Mazes(); err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		failed := 0
		for _, name := range names {
			if err := engine.Validate(name); err != nil {
				failed++
				fmt.Fprintf(out, "%s: invalid\n", name)
				for _, p := range validator.Problems(err) {
					fmt.Fprintf(out, "  - %s\n", p)
				}
				continue
			}
			fmt.Fprintf(out, "%s: valid\n", name)
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d mazes failed validation", failed, len(names))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
