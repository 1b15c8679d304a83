package domain

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// Unreachable is the cost of a passage that exists but cannot be traversed.
// It is also the travel time of a route that cannot be completed.
const Unreachable = math.MaxInt

// AssignStatus reports the outcome of the last Cell.AssignPassages call.
type AssignStatus int

const (
	StatusOK            AssignStatus = iota // Passages stored, cell sealed
	StatusAlreadyValid                      // Cell was already sealed, nothing changed
	StatusInvalidTime                       // A cost was zero or negative, cell left unsealed
	StatusInvalidTarget                     // A passage had no target cell, cell left unsealed
)

func (s AssignStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusAlreadyValid:
		return "already_valid"
	case StatusInvalidTime:
		return "invalid_time"
	case StatusInvalidTarget:
		return "invalid_target"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Passage is a directed, timed edge to another cell.
type Passage struct {
	To   *Cell
	Cost int
}

// passageTable keeps declaration order so that "first available" is deterministic.
type passageTable struct {
	order []*Cell
	costs map[*Cell]int
}

// Cell is a room of the maze. Cells compare by identity: two cells with the
// same passages are still different rooms.
type Cell struct {
	// ID is a stable label used in renderings and persisted records.
	ID string

	passages sealed[passageTable]
	status   AssignStatus
}

// NewCell creates an unsealed cell. An empty id is replaced by a random UUID.
func NewCell(id string) *Cell {
	if id == "" {
		id = uuid.NewString()
	}
	return &Cell{ID: id}
}

// Valid reports whether the passages have been assigned.
func (c *Cell) Valid() bool {
	return c != nil && c.passages.ok()
}

// Status returns the outcome of the most recent AssignPassages call.
func (c *Cell) Status() AssignStatus {
	return c.status
}

// AssignPassages seals the cell with the given passages.
// It can succeed only once; later calls return StatusAlreadyValid and change nothing.
// Every cost must be positive (Unreachable included). A repeated target keeps its
// first position and takes the last cost.
func (c *Cell) AssignPassages(passages ...Passage) AssignStatus {
	if c.passages.ok() {
		c.status = StatusAlreadyValid
		return c.status
	}

	table := passageTable{
		order: make([]*Cell, 0, len(passages)),
		costs: make(map[*Cell]int, len(passages)),
	}
	for _, p := range passages {
		if p.To == nil {
			c.status = StatusInvalidTarget
			return c.status
		}
		if p.Cost <= 0 {
			c.status = StatusInvalidTime
			return c.status
		}
		if _, seen := table.costs[p.To]; !seen {
			table.order = append(table.order, p.To)
		}
		table.costs[p.To] = p.Cost
	}

	c.passages.seal(table)
	c.status = StatusOK
	return c.status
}

func (c *Cell) table() (passageTable, error) {
	t, ok := c.passages.get()
	if !ok {
		return passageTable{}, &UninitializedError{Entity: "cell", ID: c.ID}
	}
	return t, nil
}

// ReachablePassages returns a copy of the passages whose cost is not Unreachable.
func (c *Cell) ReachablePassages() (map[*Cell]int, error) {
	t, err := c.table()
	if err != nil {
		return nil, err
	}
	out := make(map[*Cell]int, len(t.costs))
	for to, cost := range t.costs {
		if cost != Unreachable {
			out[to] = cost
		}
	}
	return out, nil
}

// CostTo returns the cost of the passage to other, or Unreachable when there is none.
func (c *Cell) CostTo(other *Cell) (int, error) {
	t, err := c.table()
	if err != nil {
		return 0, err
	}
	cost, ok := t.costs[other]
	if !ok {
		return Unreachable, nil
	}
	return cost, nil
}

// ConnectedCells lists the passable targets in declaration order.
func (c *Cell) ConnectedCells() ([]*Cell, error) {
	t, err := c.table()
	if err != nil {
		return nil, err
	}
	out := make([]*Cell, 0, len(t.order))
	for _, to := range t.order {
		if t.costs[to] < Unreachable {
			out = append(out, to)
		}
	}
	return out, nil
}

// IsDeadEnd reports whether no passage leaves this cell.
func (c *Cell) IsDeadEnd() (bool, error) {
	connected, err := c.ConnectedCells()
	if err != nil {
		return false, err
	}
	return len(connected) == 0, nil
}

func (c *Cell) String() string {
	if c == nil {
		return "Cell(<nil>)"
	}
	return "Cell(" + c.ID + ")"
}
