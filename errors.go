package railcsa

import "errors"

// ErrInvalidOrigin is returned by DepartureIsochrone when the supplied
// origin is not a known stop. This is the only error a query can
// return; every other failure mode is an internal invariant (see
// ErrCalendarMiss) or a build-time failure (see ErrMalformedTrip).
var ErrInvalidOrigin = errors.New("railcsa: origin not registered")

// ErrCalendarMiss means a connection referenced a trip id absent from
// the calendar. Build derives connections and the calendar from the
// same trip set, so this should never happen; encountering it is a
// programming error in the engine, not a bad query.
var ErrCalendarMiss = errors.New("railcsa: connection references unknown trip id")

// ErrMalformedTrip means a pair of adjacent locations in a trip could
// not form a connection: the first is a Destination (no departure) or
// the second is an Origin (no arrival). Only adjacent pairs are
// checked; a trip is not required to start with an Origin or end with
// a Destination. Build fails outright rather than silently dropping
// the trip.
var ErrMalformedTrip = errors.New("railcsa: trip missing required location shape")
