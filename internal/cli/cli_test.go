package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/labyrinth/internal/config"
	"github.com/aretw0/labyrinth/internal/logging"
	"github.com/aretw0/labyrinth/internal/testutils"
	"github.com/aretw0/labyrinth/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pairMaze = `
name: pair
start: A
cells:
  - id: A
    passages: [{to: B, cost: 4}]
  - id: B
    passages: [{to: A, cost: 2}]
`

func project(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Dir = testutils.SetupMazeDir(t, map[string]string{"pair.yaml": pairMaze})
	return cfg
}

func TestCreateEngine_Stores(t *testing.T) {
	mr := miniredis.RunT(t)

	tests := []struct {
		kind      string
		persisted bool
	}{
		{config.StoreNone, false},
		{config.StoreMemory, true},
		{config.StoreFile, true},
		{config.StoreRedis, true},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			cfg := project(t)
			cfg.Store.Kind = tt.kind
			cfg.Redis.Addr = mr.Addr()

			engine, closer, err := CreateEngine(EngineOptions{Config: cfg, Logger: logging.NewNop()})
			require.NoError(t, err)
			defer closer()

			ctx := context.Background()
			res, err := engine.Discover(ctx, "pair", "", "")
			require.NoError(t, err)

			ids, err := engine.Routes(ctx)
			require.NoError(t, err)
			if tt.persisted {
				assert.Contains(t, ids, res.Record.ID)
			} else {
				assert.Empty(t, ids)
			}
		})
	}

	t.Run("file store defaults under dir", func(t *testing.T) {
		cfg := project(t)
		cfg.Store.Kind = config.StoreFile
		engine, closer, err := CreateEngine(EngineOptions{Config: cfg})
		require.NoError(t, err)
		defer closer()

		res, err := engine.Discover(context.Background(), "pair", "", "")
		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(cfg.Dir, ".labyrinth", "routes", res.Record.ID+".json"))
	})

	t.Run("unknown kind", func(t *testing.T) {
		cfg := project(t)
		cfg.Store.Kind = "s3"
		_, _, err := CreateEngine(EngineOptions{Config: cfg})
		assert.Error(t, err)
	})
}

func TestCreateEngine_DebugHooks(t *testing.T) {
	var buf bytes.Buffer
	cfg := project(t)

	engine, closer, err := CreateEngine(EngineOptions{Config: cfg, Logger: logging.NewWithWriter(&buf, slog.LevelDebug)})
	require.NoError(t, err)
	defer closer()

	_, err = engine.Discover(context.Background(), "pair", "", "")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Enter Cell")
	assert.Contains(t, buf.String(), "Route Complete")
}

func TestRunRoute(t *testing.T) {
	cfg := project(t)
	cfg.Store.Kind = config.StoreMemory
	engine, closer, err := CreateEngine(EngineOptions{Config: cfg})
	require.NoError(t, err)
	defer closer()
	ctx := context.Background()

	t.Run("json", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, RunRoute(ctx, engine, RouteOptions{Maze: "pair", JSON: true}, &out))

		var rec domain.RouteRecord
		require.NoError(t, json.Unmarshal(out.Bytes(), &rec))
		assert.Equal(t, []string{"A", "B", "A"}, rec.Cells)
		assert.Equal(t, 6, rec.TravelTime)
	})

	t.Run("markdown", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, RunRoute(ctx, engine, RouteOptions{Maze: "pair", Samples: 1}, &out))
		assert.Contains(t, out.String(), "# Route through pair")
		assert.Contains(t, out.String(), ">>> Route saved as")
	})

	t.Run("headless", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, RunRoute(ctx, engine, RouteOptions{Maze: "pair", Headless: true}, &out))
		assert.Equal(t, "[Cell(A) to Cell(B): 4, Cell(B) to Cell(A): 2, End of route]\n", out.String())
	})

	t.Run("error", func(t *testing.T) {
		err := RunRoute(ctx, engine, RouteOptions{Maze: "nope"}, &bytes.Buffer{})
		assert.ErrorIs(t, err, domain.ErrMazeNotFound)
	})
}

func TestNewAPIHandler_Metrics(t *testing.T) {
	cfg := project(t)
	cfg.Metrics = true

	handler, closer, err := NewAPIHandler(EngineOptions{Config: cfg, Logger: logging.NewNop()})
	require.NoError(t, err)
	defer closer()

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/mazes/pair/routes", strings.NewReader(`{}`)))
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `labyrinth_cell_visits_total{cell="A",maze="pair"} 1`)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestServe_StopsOnCancel(t *testing.T) {
	cfg := project(t)
	cfg.HTTP.Port = 0

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	assert.NoError(t, Serve(ctx, EngineOptions{Config: cfg, Logger: logging.NewNop()}, &out))
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("off")
	require.NoError(t, err)
	assert.NotNil(t, logger)

	_, err = NewLogger("loud")
	assert.Error(t, err)
}

func TestSignalContext_FollowsParent(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	ctx := NewSignalContext(parent, logging.NewNop())
	defer ctx.Cancel()

	cancel()
	<-ctx.Done()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}
