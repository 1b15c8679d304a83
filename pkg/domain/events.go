package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventCellEnter     EventType = "cell_enter"
	EventRouteComplete EventType = "route_complete"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Maze      string    `json:"maze"`
}

// CellEvent is emitted each time a discovery enters a cell of the maze.
type CellEvent struct {
	EventBase
	CellID     string `json:"cell_id"`
	Step       int    `json:"step"`
	Candidates int    `json:"candidates"`
}

// RouteEvent is emitted once a discovery terminates.
type RouteEvent struct {
	EventBase
	RouteID    string  `json:"route_id"`
	StartID    string  `json:"start_id"`
	Policy     string  `json:"policy"`
	Outcome    Outcome `json:"outcome"`
	Length     int     `json:"length"`
	TravelTime int     `json:"travel_time"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnCellEnter     func(context.Context, *CellEvent)
	OnRouteComplete func(context.Context, *RouteEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnCellEnter: func(ctx context.Context, e *CellEvent) {
			if h.OnCellEnter != nil {
				h.OnCellEnter(ctx, e)
			}
			if other.OnCellEnter != nil {
				other.OnCellEnter(ctx, e)
			}
		},
		OnRouteComplete: func(ctx context.Context, e *RouteEvent) {
			if h.OnRouteComplete != nil {
				h.OnRouteComplete(ctx, e)
			}
			if other.OnRouteComplete != nil {
				other.OnRouteComplete(ctx, e)
			}
		},
	}
}
