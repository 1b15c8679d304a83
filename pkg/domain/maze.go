package domain

import (
	"math/rand/v2"
	"sort"
	"strconv"
	"strings"
)

// Outcome is the terminal state of a route discovery.
type Outcome string

const (
	OutcomeExited  Outcome = "exited"   // Walked onto a cell outside the maze
	OutcomeDeadEnd Outcome = "dead_end" // Reached a cell with no passable passage
	OutcomeLooped  Outcome = "looped"   // Re-entered a cell already on the route
)

// Step describes a cell entered during discovery.
type Step struct {
	Index      int
	Cell       *Cell
	Candidates []*Cell
}

// Maze is the set of cells forming the graph. Passages may lead outside of it;
// following one exits the maze.
type Maze struct {
	Name string

	cells sealed[map[*Cell]struct{}]
}

// NewMaze creates an unsealed maze.
func NewMaze(name string) *Maze {
	return &Maze{Name: name}
}

// Valid reports whether the membership has been set.
func (m *Maze) Valid() bool {
	return m != nil && m.cells.ok()
}

// AddCells seals the maze with the given cells.
// It returns false without error if already set, and an UninitializedError if
// any cell is not sealed.
func (m *Maze) AddCells(cells ...*Cell) (bool, error) {
	if m.cells.ok() {
		return false, nil
	}
	if err := checkCells(cells); err != nil {
		return false, err
	}
	set := make(map[*Cell]struct{}, len(cells))
	for _, c := range cells {
		set[c] = struct{}{}
	}
	return m.cells.seal(set), nil
}

// Contains reports whether c belongs to the maze.
func (m *Maze) Contains(c *Cell) bool {
	set, _ := m.cells.get()
	_, ok := set[c]
	return ok
}

// Members returns the cells ordered by ID. It is nil for an unsealed maze.
func (m *Maze) Members() []*Cell {
	set, ok := m.cells.get()
	if !ok {
		return nil
	}
	out := make([]*Cell, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// RouteFirst discovers a route that always takes the first passage.
func (m *Maze) RouteFirst(start *Cell) (*Route, error) {
	return m.Discover(start, First())
}

// RouteRandom discovers a route that takes a random passage at each step.
func (m *Maze) RouteRandom(start *Cell, r *rand.Rand) (*Route, error) {
	return m.Discover(start, Random(r))
}

// Discover walks from start under policy and returns the route found.
func (m *Maze) Discover(start *Cell, policy Policy) (*Route, error) {
	route, _, err := m.Trace(start, policy, nil)
	return route, err
}

// Trace walks from start, asking policy for the next cell, until the walk
// exits the maze, reaches a dead end or re-enters a visited cell.
//
// An exit yields an empty route. A loop yields the visited cells plus the
// repeated one. A dead end yields the visited cells.
//
// visit, when not nil, is called for each cell entered; a non-nil error aborts
// the walk and is returned as is. The walk mutates no entity.
func (m *Maze) Trace(start *Cell, policy Policy, visit func(Step) error) (*Route, Outcome, error) {
	members, ok := m.cells.get()
	if !ok {
		return nil, "", &UninitializedError{Entity: "maze", ID: m.Name}
	}
	if policy == nil {
		policy = First()
	}

	var visited []*Cell
	seen := make(map[*Cell]struct{}, len(members))
	current := start

	for {
		if _, member := members[current]; !member || !current.Valid() {
			route, err := newSealedRoute(nil)
			return route, OutcomeExited, err
		}

		if _, loop := seen[current]; loop {
			visited = append(visited, current)
			route, err := newSealedRoute(visited)
			return route, OutcomeLooped, err
		}
		visited = append(visited, current)
		seen[current] = struct{}{}

		candidates, err := current.ConnectedCells()
		if err != nil {
			return nil, "", err
		}

		if visit != nil {
			if err := visit(Step{Index: len(visited) - 1, Cell: current, Candidates: candidates}); err != nil {
				return nil, "", err
			}
		}

		if len(candidates) == 0 {
			route, err := newSealedRoute(visited)
			return route, OutcomeDeadEnd, err
		}
		current = policy.Next(candidates)
	}
}

func (m *Maze) String() string {
	if !m.Valid() {
		return "Uninitialized Maze"
	}

	var sb strings.Builder
	for i, c := range m.Members() {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(c.String())

		connected, _ := c.ConnectedCells()
		if len(connected) == 0 {
			sb.WriteString("\n\tNo passages")
			continue
		}
		for _, to := range connected {
			cost, _ := c.CostTo(to)
			sb.WriteString("\n\t" + to.String() + ": " + strconv.Itoa(cost))
		}
	}
	return sb.String()
}
