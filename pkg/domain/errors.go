package domain

import (
	"errors"
	"fmt"
)

// ErrUninitialized is matched by every error returned when reading an entity that was never sealed.
var ErrUninitialized = errors.New("uninitialized")

// ErrMazeNotFound is returned when a maze name cannot be resolved by a loader.
var ErrMazeNotFound = errors.New("maze not found")

// ErrCellNotFound is returned when a cell ID is not part of a compiled maze.
var ErrCellNotFound = errors.New("cell not found")

// ErrRouteNotFound is returned when a route record ID cannot be found in the store.
var ErrRouteNotFound = errors.New("route not found")

// ErrUnknownPolicy is returned when a next-step policy name is not recognised.
var ErrUnknownPolicy = errors.New("unknown policy")

// UninitializedError reports a read on an entity (or one it references) that is not sealed yet.
type UninitializedError struct {
	Entity string
	ID     string
}

func (e *UninitializedError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %q is not initialized", e.Entity, e.ID)
	}
	return fmt.Sprintf("%s is not initialized", e.Entity)
}

// Is makes errors.Is(err, ErrUninitialized) succeed.
func (e *UninitializedError) Is(target error) bool {
	return target == ErrUninitialized
}
