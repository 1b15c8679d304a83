package domain

import (
	"encoding/json"
	"time"
)

// Discovery is the result of walking a maze from a start cell.
type Discovery struct {
	Maze    string
	Start   *Cell
	Policy  string
	Outcome Outcome
	Route   *Route
}

// RouteRecord is the serializable snapshot of a Discovery kept by route stores.
//
// In JSON, travel_time is omitted when the route is unreachable, since
// Unreachable does not survive clients that read numbers as float64.
// Decoding a record without it restores Unreachable.
type RouteRecord struct {
	ID         string    `json:"id"`
	Maze       string    `json:"maze"`
	Start      string    `json:"start"`
	Policy     string    `json:"policy"`
	Outcome    Outcome   `json:"outcome"`
	Cells      []string  `json:"cells"`
	TravelTime int       `json:"travel_time,omitempty"`
	Reachable  bool      `json:"reachable"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewRouteRecord snapshots d. The record ID is the route ID.
func NewRouteRecord(d *Discovery, now time.Time) (*RouteRecord, error) {
	cells, err := d.Route.Cells()
	if err != nil {
		return nil, err
	}
	total, err := d.Route.TravelTime()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(cells))
	for i, c := range cells {
		ids[i] = c.ID
	}

	start := ""
	if d.Start != nil {
		start = d.Start.ID
	}

	return &RouteRecord{
		ID:         d.Route.ID,
		Maze:       d.Maze,
		Start:      start,
		Policy:     d.Policy,
		Outcome:    d.Outcome,
		Cells:      ids,
		TravelTime: total,
		Reachable:  total != Unreachable,
		CreatedAt:  now.UTC(),
	}, nil
}

// MarshalJSON writes travel_time only for reachable routes. A zero travel time
// is still written.
func (r RouteRecord) MarshalJSON() ([]byte, error) {
	type plain RouteRecord
	out := struct {
		plain
		TravelTime *int `json:"travel_time,omitempty"`
	}{plain: plain(r)}
	if r.TravelTime != Unreachable {
		t := r.TravelTime
		out.TravelTime = &t
	}
	return json.Marshal(out)
}

// UnmarshalJSON maps a missing travel_time back to Unreachable.
func (r *RouteRecord) UnmarshalJSON(data []byte) error {
	type plain RouteRecord
	in := struct {
		*plain
		TravelTime *int `json:"travel_time,omitempty"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	r.TravelTime = Unreachable
	if in.TravelTime != nil {
		r.TravelTime = *in.TravelTime
	}
	return nil
}

// Clone returns a deep copy of the record.
func (r *RouteRecord) Clone() *RouteRecord {
	cp := *r
	cp.Cells = append([]string(nil), r.Cells...)
	return &cp
}
