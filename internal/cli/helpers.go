package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/labyrinth/internal/logging"
	"github.com/aretw0/labyrinth/pkg/domain"
)

// SignalContext is a context cancelled on SIGINT or SIGTERM.
type SignalContext struct {
	context.Context
	Cancel context.CancelFunc
}

// NewSignalContext cancels the returned context on the first interrupt and
// logs which signal stopped the command.
func NewSignalContext(parent context.Context, logger *slog.Logger) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigCh)
		select {
		case sig := <-sigCh:
			logger.Info("interrupted", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	return &SignalContext{Context: ctx, Cancel: cancel}
}

// NewLogger configures the application logger from a level name.
// "off" silences it; anything else writes to Stderr to keep Stdout for output.
func NewLogger(level string) (*slog.Logger, error) {
	if level == "off" || level == "none" {
		return logging.NewNop(), nil
	}
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return logging.New(lvl), nil
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCellEnter: func(ctx context.Context, e *domain.CellEvent) {
			logger.Debug("Enter Cell", "maze", e.Maze, "cell", e.CellID, "step", e.Step)
		},
		OnRouteComplete: func(ctx context.Context, e *domain.RouteEvent) {
			logger.Debug("Route Complete", "maze", e.Maze, "route", e.RouteID, "outcome", e.Outcome, "travel_time", e.TravelTime)
		},
	}
}
