package observability

import (
	"context"

	"github.com/aretw0/labyrinth/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors fed by route discovery.
type Metrics struct {
	CellVisits        *prometheus.CounterVec
	Routes            *prometheus.CounterVec
	UnreachableRoutes *prometheus.CounterVec
	TravelTime        *prometheus.HistogramVec
	RouteLength       *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		CellVisits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "labyrinth_cell_visits_total",
				Help: "Total number of cells entered during route discovery",
			},
			[]string{"maze", "cell"},
		),
		Routes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "labyrinth_routes_total",
				Help: "Total number of discovered routes by outcome",
			},
			[]string{"maze", "policy", "outcome"},
		),
		UnreachableRoutes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "labyrinth_unreachable_routes_total",
				Help: "Total number of discovered routes with no finite travel time",
			},
			[]string{"maze"},
		),
		TravelTime: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "labyrinth_route_travel_time",
				Help:    "Travel time of reachable routes, in passage cost units",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"maze"},
		),
		RouteLength: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "labyrinth_route_length",
				Help:    "Number of entries in discovered routes",
				Buckets: prometheus.LinearBuckets(0, 2, 10),
			},
			[]string{"maze"},
		),
	}

	for _, c := range []prometheus.Collector{m.CellVisits, m.Routes, m.UnreachableRoutes, m.TravelTime, m.RouteLength} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that update the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCellEnter: func(_ context.Context, e *domain.CellEvent) {
			m.CellVisits.WithLabelValues(e.Maze, e.CellID).Inc()
		},
		OnRouteComplete: func(_ context.Context, e *domain.RouteEvent) {
			m.Routes.WithLabelValues(e.Maze, e.Policy, string(e.Outcome)).Inc()
			m.RouteLength.WithLabelValues(e.Maze).Observe(float64(e.Length))
			if e.TravelTime == domain.Unreachable {
				m.UnreachableRoutes.WithLabelValues(e.Maze).Inc()
				return
			}
			m.TravelTime.WithLabelValues(e.Maze).Observe(float64(e.TravelTime))
		},
	}
}
