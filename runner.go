package labyrinth

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/labyrinth/pkg/domain"
)

// Runner discovers routes and writes a report of each to Output.
// This allows for easy testing and integration with different frontends (CLI, TUI, etc).
type Runner struct {
	Output   io.Writer
	Headless bool
	Renderer ContentRenderer

	// Samples is the number of randomized travel times drawn per route.
	Samples int
}

// ContentRenderer is a function that transforms the markdown report before outputting it.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

// NewRunner creates a new Runner writing to out.
func NewRunner(out io.Writer) *Runner {
	return &Runner{Output: out}
}

// Run discovers one route and reports it.
func (r *Runner) Run(ctx context.Context, engine *Engine, maze, start, policy string) (*Result, error) {
	if r.Output == nil {
		return nil, fmt.Errorf("output writer must be set (use os.Stdout)")
	}

	res, err := engine.Discover(ctx, maze, start, policy)
	if err != nil {
		return nil, err
	}

	if r.Headless {
		_, err := fmt.Fprintln(r.Output, res.Discovery.Route.String())
		return res, err
	}

	var samples []int
	for i := 0; i < r.Samples; i++ {
		t, err := engine.SampleTravelTime(res.Discovery.Route)
		if err != nil {
			return nil, err
		}
		samples = append(samples, t)
	}

	report := FormatReport(res.Record, samples)
	if r.Renderer != nil {
		rendered, err := r.Renderer(report)
		if err != nil {
			return nil, fmt.Errorf("failed to render report: %w", err)
		}
		report = rendered
	}
	_, err = fmt.Fprint(r.Output, report)
	return res, err
}

// FormatReport renders a route record as markdown.
func FormatReport(rec *domain.RouteRecord, samples []int) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Route through %s\n\n", rec.Maze)
	fmt.Fprintf(&sb, "- **Route**: `%s`\n", rec.ID)
	fmt.Fprintf(&sb, "- **Start**: `%s`\n", rec.Start)
	fmt.Fprintf(&sb, "- **Policy**: %s\n", rec.Policy)
	fmt.Fprintf(&sb, "- **Outcome**: %s\n", rec.Outcome)
	fmt.Fprintf(&sb, "- **Travel time**: %s\n", FormatTravelTime(rec.TravelTime))

	if len(rec.Cells) == 0 {
		sb.WriteString("\nNo passage: the walk left the maze.\n")
	} else {
		sb.WriteString("\n| # | Cell |\n|---|---|\n")
		for i, id := range rec.Cells {
			fmt.Fprintf(&sb, "| %d | %s |\n", i, id)
		}
	}

	if len(samples) > 0 {
		parts := make([]string, len(samples))
		for i, s := range samples {
			parts[i] = FormatTravelTime(s)
		}
		fmt.Fprintf(&sb, "\nSampled travel times: %s\n", strings.Join(parts, ", "))
	}
	return sb.String()
}

// FormatTravelTime prints Unreachable as "unreachable".
func FormatTravelTime(t int) string {
	if t == domain.Unreachable {
		return "unreachable"
	}
	return fmt.Sprintf("%d", t)
}
