package labyrinth

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/labyrinth/internal/adapters/file"
	"github.com/aretw0/labyrinth/internal/compiler"
	"github.com/aretw0/labyrinth/internal/runtime"
	"github.com/aretw0/labyrinth/internal/validator"
	"github.com/aretw0/labyrinth/pkg/domain"
	"github.com/aretw0/labyrinth/pkg/ports"
)

// Engine is the high-level entry point for the Labyrinth library.
// It wraps the internal runtime and provides a simplified API for consumers.
type Engine struct {
	runtime *runtime.Engine
	loader  ports.MazeLoader
	store   ports.RouteStore
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	clock   func() time.Time

	// rng is shared by the random policy and sampled travel times; rand.Rand is
	// not safe for concurrent use so every draw holds mu.
	mu  sync.Mutex
	rng *rand.Rand

	Name string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLoader injects a custom MazeLoader, bypassing the default directory loader.
func WithLoader(l ports.MazeLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithStore enables persistence of every discovered route.
func WithStore(s ports.RouteStore) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithRand sets the random source for the random policy and sampled travel times.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) {
		e.rng = r
	}
}

// WithSeed makes random discovery reproducible.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed)))
}

// WithClock overrides the time source used for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.clock = now
	}
}

// New initializes a new Labyrinth Engine.
// By default, it reads maze definitions from the YAML and JSON files in dir.
// If WithLoader option is provided, dir can be empty and only labels the engine.
func New(dir string, opts ...Option) (*Engine, error) {
	eng := &Engine{}

	for _, opt := range opts {
		opt(eng)
	}

	if eng.loader == nil {
		if dir == "" {
			return nil, fmt.Errorf("dir is required when no custom loader is provided")
		}
		absPath, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("invalid path: %w", err)
		}
		eng.Name = filepath.Base(absPath)
		eng.loader = file.NewLoader(absPath)
	} else if dir != "" {
		eng.Name = filepath.Base(dir)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("project", eng.Name)
	}
	if eng.rng == nil {
		eng.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if eng.clock == nil {
		eng.clock = time.Now
	}

	eng.runtime = runtime.NewEngine(
		eng.loader,
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
		runtime.WithRand(eng.rng),
		runtime.WithClock(eng.clock),
	)

	return eng, nil
}

// Mazes lists the names of the available mazes.
func (e *Engine) Mazes() ([]string, error) {
	return e.loader.ListMazes()
}

// Loader returns the underlying MazeLoader used by the engine.
func (e *Engine) Loader() ports.MazeLoader {
	return e.loader
}

// Store returns the route store, or nil when persistence is disabled.
func (e *Engine) Store() ports.RouteStore {
	return e.store
}

// Logger returns the engine's logger.
func (e *Engine) Logger() *slog.Logger {
	return e.logger
}

// Load compiles a maze into sealed domain entities.
func (e *Engine) Load(name string) (*domain.Maze, error) {
	compiled, err := e.runtime.Load(name)
	if err != nil {
		return nil, err
	}
	return compiled.Maze, nil
}

// Description is the introspection view of a maze.
type Description struct {
	Definition *domain.MazeDefinition `json:"definition"`
	Members    []string               `json:"members"`
	DeadEnds   []string               `json:"dead_ends"`
	Rendering  string                 `json:"rendering"`
}

// Describe compiles a maze and summarises its structure.
func (e *Engine) Describe(name string) (*Description, error) {
	compiled, err := e.runtime.Load(name)
	if err != nil {
		return nil, err
	}

	desc := &Description{
		Definition: compiled.Definition,
		Members:    []string{},
		DeadEnds:   []string{},
		Rendering:  compiled.Maze.String(),
	}
	for _, c := range compiled.Maze.Members() {
		desc.Members = append(desc.Members, c.ID)
		dead, err := c.IsDeadEnd()
		if err != nil {
			return nil, err
		}
		if dead {
			desc.DeadEnds = append(desc.DeadEnds, c.ID)
		}
	}
	return desc, nil
}

// Validate checks a maze definition, including reachability from its start.
func (e *Engine) Validate(name string) error {
	return validator.ValidateMaze(e.loader, name)
}

// Result is a discovered route together with its persisted snapshot.
type Result struct {
	Discovery *domain.Discovery
	Record    *domain.RouteRecord
}

// Discover walks the named maze from startID (the declared start when empty)
// under policy ("first" or "random"). The record is saved when a store is set.
func (e *Engine) Discover(ctx context.Context, name, startID, policy string) (*Result, error) {
	compiled, err := e.runtime.Load(name)
	if err != nil {
		return nil, err
	}
	return e.discover(ctx, compiled, startID, policy)
}

func (e *Engine) discover(ctx context.Context, compiled *compiler.Compiled, startID, policy string) (*Result, error) {
	e.mu.Lock()
	d, err := e.runtime.Discover(ctx, compiled, startID, policy)
	e.mu.Unlock()
	if err != nil {
		return nil, err
	}

	record, err := e.runtime.Record(d)
	if err != nil {
		return nil, err
	}

	if e.store != nil {
		if err := e.store.Save(ctx, record); err != nil {
			return nil, fmt.Errorf("failed to save route %s: %w", record.ID, err)
		}
	}
	return &Result{Discovery: d, Record: record}, nil
}

// SampleTravelTime draws a randomized travel time for route, each step uniform in [1, cost].
func (e *Engine) SampleTravelTime(route *domain.Route) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return route.TravelTimeRandom(e.rng)
}

// Route loads a persisted route record.
func (e *Engine) Route(ctx context.Context, id string) (*domain.RouteRecord, error) {
	if e.store == nil {
		return nil, fmt.Errorf("%w: %s (no store configured)", domain.ErrRouteNotFound, id)
	}
	return e.store.Load(ctx, id)
}

// Routes lists the IDs of persisted routes.
func (e *Engine) Routes(ctx context.Context) ([]string, error) {
	if e.store == nil {
		return []string{}, nil
	}
	return e.store.List(ctx)
}

// DeleteRoute removes a persisted route record.
func (e *Engine) DeleteRoute(ctx context.Context, id string) error {
	if e.store == nil {
		return nil
	}
	return e.store.Delete(ctx, id)
}
