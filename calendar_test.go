package railcsa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwhandley/railcsa/model"
)

func TestCalendarRunsOn_PermanentOnly(t *testing.T) {
	cal := buildCalendar([]model.Trip{
		{
			ID:        "T1",
			StartDate: model.NewDate(2025, 1, 1),
			EndDate:   model.NewDate(2025, 12, 31),
			TripType:  model.Permanent,
			DaysRun:   [7]bool{true, true, true, true, true, false, false},
		},
	})

	runs, err := cal.runsOn("T1", model.NewDate(2025, 6, 11))
	require.NoError(t, err)
	assert.True(t, runs)

	runs, err = cal.runsOn("T1", model.NewDate(2025, 6, 14))
	require.NoError(t, err)
	assert.False(t, runs, "saturday is not in DaysRun")
}

func TestCalendarRunsOn_CancellationOnMatchingDate(t *testing.T) {
	cal := buildCalendar([]model.Trip{
		{
			ID:        "XY0001",
			StartDate: model.NewDate(2025, 1, 1),
			EndDate:   model.NewDate(2025, 12, 31),
			TripType:  model.Permanent,
			DaysRun:   [7]bool{true, true, true, true, true, true, true},
		},
		{
			ID:        "XY0001",
			StartDate: model.NewDate(2025, 6, 11),
			EndDate:   model.NewDate(2025, 6, 11),
			TripType:  model.Cancellation,
			DaysRun:   [7]bool{true, true, true, true, true, true, true},
		},
	})

	runs, err := cal.runsOn("XY0001", model.NewDate(2025, 6, 11))
	require.NoError(t, err)
	assert.False(t, runs)
}

func TestCalendarRunsOn_CancellationOutsideWindowFallsBackToPermanent(t *testing.T) {
	cal := buildCalendar([]model.Trip{
		{
			ID:        "XY0001",
			StartDate: model.NewDate(2025, 1, 1),
			EndDate:   model.NewDate(2025, 12, 31),
			TripType:  model.Permanent,
			DaysRun:   [7]bool{true, true, true, true, true, true, true},
		},
		{
			ID:        "XY0001",
			StartDate: model.NewDate(2025, 6, 11),
			EndDate:   model.NewDate(2025, 6, 11),
			TripType:  model.Cancellation,
			DaysRun:   [7]bool{true, true, true, true, true, true, true},
		},
	})

	runs, err := cal.runsOn("XY0001", model.NewDate(2025, 6, 12))
	require.NoError(t, err)
	assert.True(t, runs, "cancellation only covers 2025-06-11, permanent trip still runs the next day")
}

func TestCalendarRunsOn_OverlayReplacesPermanentWithinWindow(t *testing.T) {
	cal := buildCalendar([]model.Trip{
		{
			ID:        "XY0002",
			StartDate: model.NewDate(2025, 1, 1),
			EndDate:   model.NewDate(2025, 12, 31),
			TripType:  model.Permanent,
			DaysRun:   [7]bool{true, true, true, true, true, true, true},
		},
		{
			ID:        "XY0002",
			StartDate: model.NewDate(2025, 6, 10),
			EndDate:   model.NewDate(2025, 6, 12),
			TripType:  model.Overlay,
			DaysRun:   [7]bool{false, false, false, false, false, false, false},
		},
	})

	runs, err := cal.runsOn("XY0002", model.NewDate(2025, 6, 11))
	require.NoError(t, err)
	assert.False(t, runs, "overlay's own DaysRun governs within its window, not the permanent's")

	runs, err = cal.runsOn("XY0002", model.NewDate(2025, 6, 20))
	require.NoError(t, err)
	assert.False(t, runs, "the overlay record governs uniformly; outside its date range its own RunsOn is false, with no fallback to the permanent record")
}

func TestCalendarRunsOn_UnknownTripId(t *testing.T) {
	cal := buildCalendar(nil)

	_, err := cal.runsOn("missing", model.NewDate(2025, 6, 11))
	assert.ErrorIs(t, err, ErrCalendarMiss)
}
