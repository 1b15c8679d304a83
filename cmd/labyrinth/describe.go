package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/labyrinth/internal/cli"
	"github.com/aretw0/labyrinth/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe [maze]",
	Short: "List mazes or describe one",
	Args:  cobra.MaximumNArgs(1),
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

		out := cmd.OutOrStdout()
		if len(args) == 0 {
			names, err := engine.Mazes()
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(out, name)
			}
			return nil
		}

		desc, err := engine.Describe(args[0])
		if err != nil {
			return err
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "# %s\n\n", desc.Definition.Name)
		if desc.Definition.Start != "" {
			fmt.Fprintf(&sb, "- **Start**: `%s`\n", desc.Definition.Start)
		}
		fmt.Fprintf(&sb, "- **Members**: %s\n", strings.Join(desc.Members, ", "))
		if len(desc.DeadEnds) > 0 {
			fmt.Fprintf(&sb, "- **Dead ends**: %s\n", strings.Join(desc.DeadEnds, ", "))
		}
		fmt.Fprintf(&sb, "\n```\n%s\n```\n", desc.Rendering)

		report := sb.String()
		if render := tui.RendererFor(out); render != nil {
			if rendered, err := render(report); err == nil {
				report = rendered
			}
		}
		fmt.Fprint(out, report)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
}
