// Package railcsa implements a departure-isochrone engine over a
// national rail timetable: given an origin stop and a departure
// instant, it computes the earliest time every other stop becomes
// reachable using the scheduled connections valid that day, honouring
// per-station minimum change times and fixed inter-stop transfer
// links.
//
// The engine is built once from a parsed Trip/Stop/Footpath set (see
// the parse package) and is immutable and safe for concurrent queries
// for the rest of its lifetime.
package railcsa

import "github.com/jwhandley/railcsa/model"

// Engine is the immutable, queryable timetable: a time-sorted
// connection array, a calendar resolving which trip runs on which
// date, and the stop/transfer indices the scan needs. Build it once
// with Build and share it freely across concurrent queries.
type Engine struct {
	connections []connection
	calendar    calendar
	stopsByID   map[model.StopId]model.Stop
	transfers   transferIndex
}

// Build flattens trips into connections, sorts them, builds the
// transfer index (resolving footpath CRS endpoints to TIPLOCs via
// stops), and builds the calendar. The inputs are not retained beyond
// build; the returned Engine owns everything it needs.
func Build(trips []model.Trip, stops []model.Stop, footpaths []model.Footpath) (*Engine, error) {
	conns, err := buildConnections(trips)
	if err != nil {
		return nil, err
	}

	stopsByID := make(map[model.StopId]model.Stop, len(stops))
	for _, s := range stops {
		stopsByID[s.ID] = s
	}

	stopsByCRS := buildStopsByCRS(stops)
	transfers := buildTransferIndex(footpaths, stopsByCRS)

	cal := buildCalendar(trips)

	return &Engine{
		connections: conns,
		calendar:    cal,
		stopsByID:   stopsByID,
		transfers:   transfers,
	}, nil
}

// NumConnections reports how many connections the engine holds, for
// diagnostics and tests.
func (e *Engine) NumConnections() int {
	return len(e.connections)
}

// NumStops reports how many stations the engine knows about, for
// diagnostics and tests.
func (e *Engine) NumStops() int {
	return len(e.stopsByID)
}

// Stop looks up a station by id. The second return value is false if
// the engine has no record of that stop.
func (e *Engine) Stop(id model.StopId) (model.Stop, bool) {
	s, ok := e.stopsByID[id]
	return s, ok
}

// Stops returns every station the engine knows about, in no
// particular order.
func (e *Engine) Stops() []model.Stop {
	out := make([]model.Stop, 0, len(e.stopsByID))
	for _, s := range e.stopsByID {
		out = append(out, s)
	}
	return out
}
