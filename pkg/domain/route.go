package domain

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// CostFunc decides how much a single step contributes to a route's travel time.
// cost is the passage cost between from and to and is never Unreachable.
type CostFunc func(from, to *Cell, cost int) int

// Deterministic counts every step at its full passage cost.
func Deterministic(_, _ *Cell, cost int) int {
	return cost
}

// Sampled counts every step as a uniform integer in [1, cost].
// A nil source falls back to the global generator.
func Sampled(r *rand.Rand) CostFunc {
	return func(_, _ *Cell, cost int) int {
		if r == nil {
			return 1 + rand.IntN(cost)
		}
		return 1 + r.IntN(cost)
	}
}

// Route is an ordered walk through cells. The last cell may repeat an earlier
// one, which marks a loop.
type Route struct {
	// ID labels the route in renderings and persisted records.
	ID string

	cells sealed[[]*Cell]
}

// NewRoute creates an unsealed route.
func NewRoute() *Route {
	return &Route{ID: uuid.NewString()}
}

// Valid reports whether the cell sequence has been set.
func (r *Route) Valid() bool {
	return r != nil && r.cells.ok()
}

// SetCells seals the route with a copy of cells.
// It returns false without error if the route was already set, and an
// UninitializedError if any cell is not sealed.
func (r *Route) SetCells(cells []*Cell) (bool, error) {
	if r.cells.ok() {
		return false, nil
	}
	if err := checkCells(cells); err != nil {
		return false, err
	}
	cp := slices.Clone(cells)
	if cp == nil {
		cp = []*Cell{}
	}
	return r.cells.seal(cp), nil
}

// Cells returns a copy of the sequence.
func (r *Route) Cells() ([]*Cell, error) {
	cells, err := r.sequence()
	if err != nil {
		return nil, err
	}
	return slices.Clone(cells), nil
}

// Len returns the number of entries in the sequence, zero for an unsealed route.
func (r *Route) Len() int {
	cells, _ := r.cells.get()
	return len(cells)
}

// TravelTime sums the passage costs along the route.
// A single cell costs 0. An empty route, or one crossing an impassable step,
// costs Unreachable.
func (r *Route) TravelTime() (int, error) {
	return r.TravelTimeWith(Deterministic)
}

// TravelTimeRandom is TravelTime with each step sampled uniformly in [1, cost].
func (r *Route) TravelTimeRandom(rng *rand.Rand) (int, error) {
	return r.TravelTimeWith(Sampled(rng))
}

// TravelTimeWith walks consecutive pairs and adds fn for each step.
// The first impassable pair short-circuits to Unreachable, as does a total too
// large to represent.
func (r *Route) TravelTimeWith(fn CostFunc) (int, error) {
	cells, err := r.sequence()
	if err != nil {
		return 0, err
	}

	switch len(cells) {
	case 0:
		return Unreachable, nil
	case 1:
		return 0, nil
	}

	total := 0
	for i := 0; i < len(cells)-1; i++ {
		from, to := cells[i], cells[i+1]
		cost, err := from.CostTo(to)
		if err != nil {
			return 0, err
		}
		if cost == Unreachable {
			return Unreachable, nil
		}
		step := fn(from, to, cost)
		if step >= Unreachable-total {
			return Unreachable, nil
		}
		total += step
	}
	return total, nil
}

func (r *Route) sequence() ([]*Cell, error) {
	cells, ok := r.cells.get()
	if !ok {
		return nil, &UninitializedError{Entity: "route", ID: r.ID}
	}
	if err := checkCells(cells); err != nil {
		return nil, err
	}
	return cells, nil
}

func (r *Route) String() string {
	cells, ok := r.cells.get()
	if !ok {
		return "Uninitialized Route"
	}
	total, err := r.TravelTime()
	if err != nil || total == Unreachable {
		return fmt.Sprintf("Route(%s): No Passage", r.ID)
	}

	parts := make([]string, 0, len(cells))
	for i := 0; i < len(cells)-1; i++ {
		cost, _ := cells[i].CostTo(cells[i+1])
		parts = append(parts, fmt.Sprintf("%s to %s: %d", cells[i], cells[i+1], cost))
	}
	parts = append(parts, "End of route")
	return "[" + strings.Join(parts, ", ") + "]"
}

func checkCells(cells []*Cell) error {
	for i, c := range cells {
		if c == nil {
			return &UninitializedError{Entity: "cell", ID: fmt.Sprintf("#%d", i)}
		}
		if !c.Valid() {
			return &UninitializedError{Entity: "cell", ID: c.ID}
		}
	}
	return nil
}

// newSealedRoute builds a route from cells already known to be valid.
func newSealedRoute(cells []*Cell) (*Route, error) {
	route := NewRoute()
	if _, err := route.SetCells(cells); err != nil {
		return nil, err
	}
	return route, nil
}
