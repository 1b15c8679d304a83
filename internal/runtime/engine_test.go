package runtime_test

import (
	"bytes"
	"context"
	"log/slog"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/aretw0/labyrinth/internal/runtime"
	"github.com/aretw0/labyrinth/pkg/adapters/memory"
	"github.com/aretw0/labyrinth/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ringMaze = `
name: ring
start: A
members: [A, B, C, D]
cells:
  - id: A
    passages: [{to: B, cost: 10}, {to: C, cost: 15}]
  - id: B
    passages: [{to: C, cost: 20}, {to: D, cost: 5}]
  - id: C
    passages: [{to: D, cost: 30}]
  - id: D
    passages: [{to: A, cost: 1}, {to: OUT, cost: 2}]
  - id: OUT
`

func newEngine(t *testing.T, opts ...runtime.EngineOption) *runtime.Engine {
	t.Helper()
	loader := memory.NewLoader(map[string]string{"ring": ringMaze})
	return runtime.NewEngine(loader, opts...)
}

func TestEngine_DiscoverFirst(t *testing.T) {
	engine := newEngine(t)
	compiled, err := engine.Load("ring")
	require.NoError(t, err)

	d, err := engine.Discover(context.Background(), compiled, "", "")
	require.NoError(t, err)

	assert.Equal(t, "ring", d.Maze)
	assert.Equal(t, "A", d.Start.ID)
	assert.Equal(t, domain.PolicyFirst, d.Policy)
	assert.Equal(t, domain.OutcomeLooped, d.Outcome)

	cells, err := d.Route.Cells()
	require.NoError(t, err)
	ids := make([]string, len(cells))
	for i, c := range cells {
		ids[i] = c.ID
	}
	assert.Equal(t, []string{"A", "B", "C", "D", "A"}, ids)

	total, err := d.Route.TravelTime()
	require.NoError(t, err)
	assert.Equal(t, 61, total)
}

func TestEngine_DiscoverFromOutside(t *testing.T) {
	engine := newEngine(t)
	compiled, err := engine.Load("ring")
	require.NoError(t, err)

	d, err := engine.Discover(context.Background(), compiled, "OUT", domain.PolicyFirst)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeExited, d.Outcome)
	assert.Equal(t, 0, d.Route.Len())
}

func TestEngine_DiscoverRandomIsSeeded(t *testing.T) {
	run := func() []string {
		engine := newEngine(t, runtime.WithRand(rand.New(rand.NewPCG(7, 7))))
		compiled, err := engine.Load("ring")
		require.NoError(t, err)
		d, err := engine.Discover(context.Background(), compiled, "A", domain.PolicyRandom)
		require.NoError(t, err)
		cells, err := d.Route.Cells()
		require.NoError(t, err)
		var ids []string
		for _, c := range cells {
			ids = append(ids, c.ID)
		}
		return ids
	}

	first := run()
	assert.Equal(t, first, run())
	assert.Equal(t, "A", first[0])
}

func TestEngine_LifecycleHooks(t *testing.T) {
	var entered []string
	var completed *domain.RouteEvent

	hooks := domain.LifecycleHooks{
		OnCellEnter: func(ctx context.Context, e *domain.CellEvent) {
			entered = append(entered, e.CellID)
		},
		OnRouteComplete: func(ctx context.Context, e *domain.RouteEvent) {
			completed = e
		},
	}
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	engine := newEngine(t, runtime.WithLifecycleHooks(hooks), runtime.WithClock(func() time.Time { return fixed }))

	compiled, err := engine.Load("ring")
	require.NoError(t, err)
	d, err := engine.Discover(context.Background(), compiled, "C", "")
	require.NoError(t, err)

	assert.Equal(t, []string{"C", "D", "A", "B"}, entered)
	require.NotNil(t, completed)
	assert.Equal(t, domain.EventRouteComplete, completed.Type)
	assert.Equal(t, fixed, completed.Timestamp)
	assert.Equal(t, d.Route.ID, completed.RouteID)
	assert.Equal(t, "C", completed.StartID)
	assert.Equal(t, domain.OutcomeLooped, completed.Outcome)
	assert.Equal(t, 5, completed.Length)
	assert.Equal(t, 30+1+10+5, completed.TravelTime)

	record, err := engine.Record(d)
	require.NoError(t, err)
	assert.Equal(t, fixed, record.CreatedAt)
	assert.Equal(t, []string{"C", "D", "A", "B", "D"}, record.Cells)
}

func TestEngine_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	engine := newEngine(t, runtime.WithLogger(logger))

	compiled, err := engine.Load("ring")
	require.NoError(t, err)
	_, err = engine.Discover(context.Background(), compiled, "A", "")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"msg":"cell entered"`)
	assert.Contains(t, out, `"msg":"route discovered"`)
	assert.Contains(t, out, `"maze":"ring"`)
	assert.Contains(t, out, `"outcome":"looped"`)
}

func TestEngine_Errors(t *testing.T) {
	engine := newEngine(t)

	_, err := engine.Load("missing")
	assert.ErrorIs(t, err, domain.ErrMazeNotFound)

	compiled, err := engine.Load("ring")
	require.NoError(t, err)

	_, err = engine.Discover(context.Background(), compiled, "A", "greedy")
	assert.ErrorIs(t, err, domain.ErrUnknownPolicy)

	_, err = engine.Discover(context.Background(), compiled, "Z", "")
	assert.ErrorIs(t, err, domain.ErrCellNotFound)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = engine.Discover(ctx, compiled, "A", "")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngine_NilLoader(t *testing.T) {
	_, err := runtime.NewEngine(nil).Load("ring")
	assert.ErrorIs(t, err, domain.ErrMazeNotFound)
}
