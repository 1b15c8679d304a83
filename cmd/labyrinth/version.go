package main

import (
	"fmt"

	"github.com/aretw0/labyrinth"
	"github.com/aretw0/labyrinth/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of labyrinth",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		if tui.IsTerminal(out) {
			tui.PrintBanner(out)
		}
		fmt.Fprintf(out, "labyrinth version %s\n", labyrinth.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
