package railcsa

import (
	"sort"

	"github.com/jwhandley/railcsa/model"
)

// secondsPerDay is used to push a connection's arrival past midnight
// when its wall-clock arrival is numerically earlier than its
// departure.
const secondsPerDay = 24 * 3600

// connection is one scheduled vehicle hop between two adjacent stops
// of a single trip. It is derived at build time from a Trip's
// Locations, never supplied directly.
type connection struct {
	tripID   model.TripId
	fromStop model.StopId
	toStop   model.StopId
	depSec   uint32
	arrSec   uint32
}

// buildConnections flattens every trip's location list into adjacent
// (from, to) pairs, producing one connection per pair. The result is
// sorted ascending by departure time (stable, so connections sharing a
// departure retain their trip-building order as a deterministic
// tie-break).
func buildConnections(trips []model.Trip) ([]connection, error) {
	conns := make([]connection, 0, len(trips))

	for _, trip := range trips {
		for i := 0; i+1 < len(trip.Locations); i++ {
			from := trip.Locations[i]
			to := trip.Locations[i+1]

			if !from.HasDeparture() {
				return nil, ErrMalformedTrip
			}
			if !to.HasArrival() {
				return nil, ErrMalformedTrip
			}

			arrSec := to.ArrivalSec
			if arrSec < from.DepartureSec {
				arrSec += secondsPerDay
			}

			conns = append(conns, connection{
				tripID:   trip.ID,
				fromStop: from.Stop,
				toStop:   to.Stop,
				depSec:   from.DepartureSec,
				arrSec:   arrSec,
			})
		}
	}

	sort.SliceStable(conns, func(i, j int) bool {
		return conns[i].depSec < conns[j].depSec
	})

	return conns, nil
}
