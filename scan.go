package railcsa

import (
	"sort"
	"time"

	"github.com/jwhandley/railcsa/model"
)

// DepartureIsochrone computes the earliest-arrival map from origin
// given a departure at start: for every stop reachable using
// connections valid on start's calendar date, the seconds-from
// midnight at which it is first reached. Values may exceed 86400 for
// stops only reachable after a service crosses midnight. A stop
// absent from the map is unreachable within the scan.
//
// The only error a query can return is ErrInvalidOrigin. A connection
// whose trip id is missing from the calendar (ErrCalendarMiss) means
// the engine itself was built inconsistently; DepartureIsochrone
// panics with that error rather than returning it.
func (e *Engine) DepartureIsochrone(origin model.StopId, start time.Time) (map[model.StopId]uint32, error) {
	if _, ok := e.stopsByID[origin]; !ok {
		return nil, ErrInvalidOrigin
	}

	date := model.DateOf(start)
	startSec := secondsFromMidnight(start)

	arrival := map[model.StopId]uint32{origin: startSec}
	boarded := map[model.TripId]bool{}

	startIdx := sort.Search(len(e.connections), func(i int) bool {
		return e.connections[i].depSec >= startSec
	})
	begin := startIdx - 1
	if begin < 0 {
		begin = 0
	}

	for _, c := range e.connections[begin:] {
		runs, err := e.calendar.runsOn(c.tripID, date)
		if err != nil {
			panic(err)
		}
		if !runs {
			continue
		}

		var minChangeSec uint32
		if c.fromStop != origin {
			if stop, ok := e.stopsByID[c.fromStop]; ok {
				minChangeSec = uint32(stop.MinChangeTime) * 60
			}
		}

		fromArr, known := arrival[c.fromStop]
		canBoard := known && int64(fromArr)+int64(minChangeSec) <= int64(c.depSec)
		alreadyBoarded := boarded[c.tripID]

		if !canBoard && !alreadyBoarded {
			continue
		}
		boarded[c.tripID] = true

		toArr, toKnown := arrival[c.toStop]
		if !toKnown || c.arrSec < toArr {
			arrival[c.toStop] = c.arrSec

			for _, t := range e.transfers.getTransfers(c.toStop) {
				newArr := c.arrSec + t.minTransferSeconds
				cur, ok := arrival[t.toStop]
				if !ok || newArr < cur {
					arrival[t.toStop] = newArr
				}
			}
		}
	}

	return arrival, nil
}
