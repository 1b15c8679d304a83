package domain

import (
	"fmt"
	"math/rand/v2"
)

// Policy names accepted by PolicyByName.
const (
	PolicyFirst  = "first"
	PolicyRandom = "random"
)

// Policy picks the next cell of a walk among the passable candidates.
// candidates is never empty.
type Policy interface {
	Next(candidates []*Cell) *Cell
}

// PolicyFunc adapts a plain function to Policy.
type PolicyFunc func(candidates []*Cell) *Cell

// Next calls f.
func (f PolicyFunc) Next(candidates []*Cell) *Cell {
	return f(candidates)
}

// First always follows the first passage in declaration order.
func First() Policy {
	return PolicyFunc(func(candidates []*Cell) *Cell {
		return candidates[0]
	})
}

// Random follows a uniformly chosen passage. A nil source uses the global generator.
func Random(r *rand.Rand) Policy {
	return PolicyFunc(func(candidates []*Cell) *Cell {
		if r == nil {
			return candidates[rand.IntN(len(candidates))]
		}
		return candidates[r.IntN(len(candidates))]
	})
}

// PolicyByName resolves "first" or "random". An empty name means "first".
func PolicyByName(name string, r *rand.Rand) (Policy, error) {
	switch name {
	case "", PolicyFirst:
		return First(), nil
	case PolicyRandom:
		return Random(r), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
}
