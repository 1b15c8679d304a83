package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/aretw0/labyrinth"
	"github.com/aretw0/labyrinth/internal/adapters/file"
	"github.com/aretw0/labyrinth/internal/config"
	"github.com/aretw0/labyrinth/pkg/adapters/memory"
	"github.com/aretw0/labyrinth/pkg/adapters/redis"
	"github.com/aretw0/labyrinth/pkg/domain"
	"github.com/aretw0/labyrinth/pkg/ports"
)

// EngineOptions gathers what the commands need to build an engine.
type EngineOptions struct {
	Config config.Config
	Logger *slog.Logger
	Hooks  domain.LifecycleHooks
}

// CreateEngine initializes a Labyrinth engine with standard CLI conventions.
// The returned closer releases the route store and must be called.
func CreateEngine(opts EngineOptions) (*labyrinth.Engine, func() error, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	store, closer, err := createStore(opts.Config)
	if err != nil {
		return nil, nil, err
	}

	hooks := opts.Hooks
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		hooks = hooks.Merge(createDebugHooks(logger))
	}

	engineOpts := []labyrinth.Option{
		labyrinth.WithLogger(logger),
		labyrinth.WithLifecycleHooks(hooks),
	}
	if store != nil {
		engineOpts = append(engineOpts, labyrinth.WithStore(store))
	}
	if opts.Config.Seed != 0 {
		engineOpts = append(engineOpts, labyrinth.WithSeed(opts.Config.Seed))
	}

	engine, err := labyrinth.New(opts.Config.Dir, engineOpts...)
	if err != nil {
		_ = closer()
		return nil, nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, closer, nil
}

func createStore(cfg config.Config) (ports.RouteStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Store.Kind {
	case "", config.StoreNone:
		return nil, noop, nil
	case config.StoreMemory:
		return memory.NewStore(), noop, nil
	case config.StoreFile:
		path := cfg.Store.Path
		if path == "" {
			path = filepath.Join(cfg.Dir, ".labyrinth", "routes")
		}
		return file.New(path), noop, nil
	case config.StoreRedis:
		store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithPrefix(cfg.Redis.Prefix),
			redis.WithTTL(cfg.Redis.TTL),
		)
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store kind %q", cfg.Store.Kind)
	}
}
