package domain_test

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/aretw0/labyrinth/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fourCycle builds A->B(10)->C(5)->D(5)->A(1) with an extra A->C(20).
func fourCycle(t *testing.T) (a, b, c, d *domain.Cell) {
	t.Helper()
	a, b, c, d = domain.NewCell("A"), domain.NewCell("B"), domain.NewCell("C"), domain.NewCell("D")
	require.Equal(t, domain.StatusOK, a.AssignPassages(domain.Passage{To: b, Cost: 10}, domain.Passage{To: c, Cost: 20}))
	require.Equal(t, domain.StatusOK, b.AssignPassages(domain.Passage{To: c, Cost: 5}))
	require.Equal(t, domain.StatusOK, c.AssignPassages(domain.Passage{To: d, Cost: 5}))
	require.Equal(t, domain.StatusOK, d.AssignPassages(domain.Passage{To: a, Cost: 1}))
	return a, b, c, d
}

func TestMaze_Uninitialized(t *testing.T) {
	m := domain.NewMaze("empty")
	assert.False(t, m.Valid())
	assert.Equal(t, "Uninitialized Maze", m.String())
	assert.Nil(t, m.Members())

	_, err := m.RouteFirst(domain.NewCell(""))
	assert.ErrorIs(t, err, domain.ErrUninitialized)

	_, err = m.RouteRandom(domain.NewCell(""), nil)
	assert.ErrorIs(t, err, domain.ErrUninitialized)
}

func TestMaze_AddCells(t *testing.T) {
	x, y := twoCells(t)
	m := domain.NewMaze("pair")

	ok, err := m.AddCells(x, y)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, m.Contains(x))

	ok, err = m.AddCells(x)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, []*domain.Cell{x, y}, m.Members(), "membership unchanged by the second call")

	bad := domain.NewMaze("bad")
	ok, err = bad.AddCells(x, domain.NewCell("raw"))
	assert.False(t, ok)
	assert.ErrorIs(t, err, domain.ErrUninitialized)
	assert.False(t, bad.Valid())
}

func TestMaze_ScenarioDeadEnd(t *testing.T) {
	x, y := twoCells(t)
	m := domain.NewMaze("pair")
	_, err := m.AddCells(x, y)
	require.NoError(t, err)

	route, outcome, err := m.Trace(x, domain.First(), nil)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeDeadEnd, outcome)

	cells, err := route.Cells()
	require.NoError(t, err)
	assert.Equal(t, []*domain.Cell{x, y}, cells)

	total, err := route.TravelTime()
	require.NoError(t, err)
	assert.Equal(t, 10, total)

	route, err = m.RouteFirst(y)
	require.NoError(t, err)
	cells, err = route.Cells()
	require.NoError(t, err)
	assert.Equal(t, []*domain.Cell{y}, cells)

	total, err = route.TravelTime()
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}

func TestMaze_ScenarioLoop(t *testing.T) {
	a, b, c, d := fourCycle(t)
	m := domain.NewMaze("cycle")
	_, err := m.AddCells(a, b, c, d)
	require.NoError(t, err)

	route, outcome, err := m.Trace(a, domain.First(), nil)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeLooped, outcome)

	cells, err := route.Cells()
	require.NoError(t, err)
	assert.Equal(t, []*domain.Cell{a, b, c, d, a}, cells, "the repeated cell closes the lap")

	total, err := route.TravelTime()
	require.NoError(t, err)
	assert.Equal(t, 21, total)
}

func TestMaze_ScenarioExit(t *testing.T) {
	a, _, _, d := fourCycle(t)
	m := domain.NewMaze("partial")
	_, err := m.AddCells(d, a)
	require.NoError(t, err)

	route, outcome, err := m.Trace(d, domain.First(), nil)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeExited, outcome)

	cells, err := route.Cells()
	require.NoError(t, err)
	assert.Empty(t, cells)

	total, err := route.TravelTime()
	require.NoError(t, err)
	assert.Equal(t, domain.Unreachable, total, "an empty route has no passage")
}

func TestMaze_StartOutsideMaze(t *testing.T) {
	x, y := twoCells(t)
	m := domain.NewMaze("only-y")
	_, err := m.AddCells(y)
	require.NoError(t, err)

	for _, start := range []*domain.Cell{x, domain.NewCell("raw"), nil} {
		_, outcome, err := m.Trace(start, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, domain.OutcomeExited, outcome)
	}
}

func TestMaze_RouteRandom(t *testing.T) {
	a, b, c, d := fourCycle(t)
	m := domain.NewMaze("cycle")
	_, err := m.AddCells(a, b, c, d)
	require.NoError(t, err)

	rng := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 50; i++ {
		route, err := m.RouteRandom(a, rng)
		require.NoError(t, err)

		cells, err := route.Cells()
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(cells), 4)
		assert.Equal(t, a, cells[0])
		assert.Equal(t, a, cells[len(cells)-1], "every walk in the cycle returns to A")
		assert.LessOrEqual(t, len(cells), len(m.Members())+1)
	}
}

func TestMaze_TraceVisitsEachStep(t *testing.T) {
	a, b, c, d := fourCycle(t)
	m := domain.NewMaze("cycle")
	_, err := m.AddCells(a, b, c, d)
	require.NoError(t, err)

	var steps []string
	_, _, err = m.Trace(a, domain.First(), func(s domain.Step) error {
		assert.Equal(t, len(steps), s.Index)
		steps = append(steps, s.Cell.ID)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C", "D"}, steps)

	stop := errors.New("stop")
	route, _, err := m.Trace(a, domain.First(), func(s domain.Step) error {
		if s.Index == 2 {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Nil(t, route)
}

func TestMaze_DiscoverDoesNotMutate(t *testing.T) {
	a, b, c, d := fourCycle(t)
	m := domain.NewMaze("cycle")
	_, err := m.AddCells(a, b, c, d)
	require.NoError(t, err)

	before := m.String()
	_, err = m.Discover(a, domain.PolicyFunc(func(candidates []*domain.Cell) *domain.Cell {
		return candidates[len(candidates)-1]
	}))
	require.NoError(t, err)
	assert.Equal(t, before, m.String())
}

func TestMaze_String(t *testing.T) {
	x, y := twoCells(t)
	m := domain.NewMaze("pair")
	_, err := m.AddCells(y, x)
	require.NoError(t, err)

	want := "Cell(x)\n\tCell(y): 10\nCell(y)\n\tNo passages"
	assert.Equal(t, want, m.String())
}
