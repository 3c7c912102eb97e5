package railcsa

import (
	"github.com/jwhandley/railcsa/model"
	"github.com/paulmach/orb"
)

// StopArrival is one survivor of Result: a known station reached by a
// scan, paired with its earliest arrival.
type StopArrival struct {
	Stop       model.StopId
	Name       string
	Coord      *orb.Point
	ArrivalSec uint32
}

// Result filters a scan's arrival map down to entries whose StopId is
// a known station (discards connection-only TIPLOCs and transfer
// destinations that never appear in the stations master). Ordering is
// not mandated; callers sort as they see fit.
func (e *Engine) Result(arrival map[model.StopId]uint32) []StopArrival {
	out := make([]StopArrival, 0, len(arrival))
	for id, sec := range arrival {
		stop, ok := e.stopsByID[id]
		if !ok {
			continue
		}
		out = append(out, StopArrival{
			Stop:       id,
			Name:       stop.Name,
			Coord:      stop.Coord,
			ArrivalSec: sec,
		})
	}
	return out
}
