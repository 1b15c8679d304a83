package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/aretw0/labyrinth/internal/compiler"
	"github.com/aretw0/labyrinth/pkg/domain"
	"github.com/aretw0/labyrinth/pkg/ports"
)

// Engine loads mazes and discovers routes through them.
// It never mutates a compiled maze, so one Engine can serve concurrent callers
// as long as its random source is safe for that (the default one is).
type Engine struct {
	loader ports.MazeLoader
	parser *compiler.Parser
	logger *slog.Logger
	hooks  domain.LifecycleHooks
	rng    *rand.Rand
	now    func() time.Time
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability callbacks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithRand sets the random source used by the "random" policy.
// A *rand.Rand is not safe for concurrent use.
func WithRand(r *rand.Rand) EngineOption {
	return func(e *Engine) {
		e.rng = r
	}
}

// WithClock overrides the time source for event timestamps.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine creates a new engine with dependencies.
func NewEngine(loader ports.MazeLoader, opts ...EngineOption) *Engine {
	e := &Engine{
		loader: loader,
		parser: compiler.NewParser(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Logger returns the engine's logger.
func (e *Engine) Logger() *slog.Logger {
	return e.logger
}

// Load fetches, parses and compiles a maze by name.
func (e *Engine) Load(name string) (*compiler.Compiled, error) {
	if e.loader == nil {
		return nil, fmt.Errorf("%w: no loader configured", domain.ErrMazeNotFound)
	}
	raw, err := e.loader.GetMaze(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load maze %s: %w", name, err)
	}
	compiled, err := e.parser.ParseAndCompile(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to compile maze %s: %w", name, err)
	}
	return compiled, nil
}

// Discover walks the maze from startID under the named policy.
// An empty startID uses the maze's declared start. Cancelling ctx aborts the
// walk between steps.
func (e *Engine) Discover(ctx context.Context, compiled *compiler.Compiled, startID, policyName string) (*domain.Discovery, error) {
	if policyName == "" {
		policyName = domain.PolicyFirst
	}
	policy, err := domain.PolicyByName(policyName, e.rng)
	if err != nil {
		return nil, err
	}

	var start *domain.Cell
	if startID == "" {
		start, err = compiled.Start()
	} else {
		start, err = compiled.Cell(startID)
	}
	if err != nil {
		return nil, err
	}

	mazeName := compiled.Maze.Name
	logger := e.logger.With("maze", mazeName, "policy", policyName)

	route, outcome, err := compiled.Maze.Trace(start, policy, func(s domain.Step) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		logger.Debug("cell entered", "cell", s.Cell.ID, "step", s.Index, "candidates", len(s.Candidates))
		if e.hooks.OnCellEnter != nil {
			e.hooks.OnCellEnter(ctx, &domain.CellEvent{
				EventBase:  domain.EventBase{Timestamp: e.now(), Type: domain.EventCellEnter, Maze: mazeName},
				CellID:     s.Cell.ID,
				Step:       s.Index,
				Candidates: len(s.Candidates),
			})
		}
		return nil
	})
	if err != nil {
		logger.Error("route discovery failed", "start", start.ID, "error", err)
		return nil, fmt.Errorf("discovery from %s failed: %w", start.ID, err)
	}

	total, err := route.TravelTime()
	if err != nil {
		return nil, err
	}

	logger.Info("route discovered",
		"route", route.ID,
		"start", start.ID,
		"outcome", outcome,
		"length", route.Len(),
		"travel_time", total)

	if e.hooks.OnRouteComplete != nil {
		e.hooks.OnRouteComplete(ctx, &domain.RouteEvent{
			EventBase:  domain.EventBase{Timestamp: e.now(), Type: domain.EventRouteComplete, Maze: mazeName},
			RouteID:    route.ID,
			StartID:    start.ID,
			Policy:     policyName,
			Outcome:    outcome,
			Length:     route.Len(),
			TravelTime: total,
		})
	}

	return &domain.Discovery{
		Maze:    mazeName,
		Start:   start,
		Policy:  policyName,
		Outcome: outcome,
		Route:   route,
	}, nil
}

// Record snapshots a discovery with the engine clock.
func (e *Engine) Record(d *domain.Discovery) (*domain.RouteRecord, error) {
	return domain.NewRouteRecord(d, e.now())
}
