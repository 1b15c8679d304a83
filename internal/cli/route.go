package cli

import (
	"context"
	"encoding/json"
	"io"

	"github.com/aretw0/labyrinth"
	"github.com/aretw0/labyrinth/internal/presentation/tui"
)

// RouteOptions contains all the configuration for the route command.
type RouteOptions struct {
	Maze     string
	Start    string
	Policy   string
	Samples  int
	Headless bool
	JSON     bool
}

// RunRoute discovers a route and prints it in the requested format.
func RunRoute(ctx context.Context, engine *labyrinth.Engine, opts RouteOptions, out io.Writer) error {
	if opts.JSON {
		res, err := engine.Discover(ctx, opts.Maze, opts.Start, opts.Policy)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res.Record)
	}

	r := labyrinth.NewRunner(out)
	r.Headless = opts.Headless
	r.Samples = opts.Samples
	r.Renderer = tui.RendererFor(out)

	res, err := r.Run(ctx, engine, opts.Maze, opts.Start, opts.Policy)
	if err != nil {
		return err
	}
	if !opts.Headless && engine.Store() != nil {
		printSystemMessage(out, "Route saved as '%s'.", res.Record.ID)
	}
	return nil
}
