package railcsa

import (
	"sort"

	"github.com/jwhandley/railcsa/model"
)

// calendar answers, for a TripId and a date, whether that trip runs.
// A Cancellation record suppresses the service for its date range and
// the Permanent record decides every other date. An Overlay or New
// record decides every date on its own: outside its date range the
// trip does not run, with no fallback to the Permanent record.
type calendar struct {
	variants map[model.TripId][]model.Trip
}

// buildCalendar groups the parsed Trip records by TripId and sorts
// each group ascending by TripType, so the Permanent base (if any)
// sorts first and the overriding record sorts after it.
func buildCalendar(trips []model.Trip) calendar {
	variants := make(map[model.TripId][]model.Trip, len(trips))
	for _, t := range trips {
		variants[t.ID] = append(variants[t.ID], t)
	}

	for _, group := range variants {
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].TripType < group[j].TripType
		})
	}

	return calendar{variants: variants}
}

// runsOn decides whether trip_id runs on date. If trip_id is absent
// from the calendar, that's an internal invariant violation: the
// calendar was built from the same trip set that produced every
// connection, so every connection's trip id must resolve here. The
// caller is expected to treat this as fatal.
func (c calendar) runsOn(tripID model.TripId, date model.Date) (bool, error) {
	group, ok := c.variants[tripID]
	if !ok {
		return false, ErrCalendarMiss
	}

	if len(group) == 1 {
		return group[0].RunsOn(date), nil
	}

	override := group[1]
	if override.TripType == model.Cancellation {
		if override.RunsOn(date) {
			return false, nil
		}
		// Cancellation record doesn't cover this date; the
		// permanent service is unaffected.
		return group[0].RunsOn(date), nil
	}

	return override.RunsOn(date), nil
}
