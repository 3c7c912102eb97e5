package parse

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwhandley/railcsa/model"
)

func padRight(s string, n int) string {
	if len(s) >= n {
		return s[:n]
	}
	return s + strings.Repeat(" ", n-len(s))
}

func buildBSLine(tripID, start, end, daysRun string, tripType byte) string {
	return fmt.Sprintf("BSN%s%s%s%s%c", padRight(tripID, 6), start, end, daysRun, tripType)
}

func buildLOLine(tiploc, departure string) string {
	return "LO" + padRight(tiploc, 8) + departure
}

func buildLILine(tiploc, arrival, departure string) string {
	return "LI" + padRight(tiploc, 8) + arrival + " " + departure
}

func buildLTLine(tiploc, arrival string) string {
	return "LT" + padRight(tiploc, 8) + arrival
}

func TestParseMCA(t *testing.T) {
	for _, tc := range []struct {
		name  string
		lines []string
		trips []model.Trip
		err   bool
	}{
		{
			"simple_trip",
			[]string{
				"HD header record should be skipped",
				"TI tiploc insert record should be skipped",
				buildBSLine("A00001", "250101", "251231", "1111100", 'P'),
				buildLOLine("AAAAAAA", "0800"),
				buildLILine("BBBBBBB", "0830", "0832"),
				buildLTLine("CCCCCCC", "0900"),
			},
			[]model.Trip{
				{
					ID:        "A00001",
					StartDate: model.NewDate(2025, 1, 1),
					EndDate:   model.NewDate(2025, 12, 31),
					TripType:  model.Permanent,
					DaysRun:   [7]bool{true, true, true, true, true, false, false},
					Locations: []model.Location{
						{Kind: model.LocationOrigin, Stop: "AAAAAAA", DepartureSec: 8 * 3600},
						{Kind: model.LocationIntermediate, Stop: "BBBBBBB", ArrivalSec: 8*3600 + 30*60, DepartureSec: 8*3600 + 32*60},
						{Kind: model.LocationDestination, Stop: "CCCCCCC", ArrivalSec: 9 * 3600},
					},
				},
			},
			false,
		},
		{
			"passing_point_without_public_times_is_skipped",
			[]string{
				buildBSLine("A00002", "250101", "251231", "1111100", 'P'),
				buildLOLine("AAAAAAA", "0800"),
				buildLILine("BBBBBBB", "    ", "    "),
				buildLTLine("CCCCCCC", "0900"),
			},
			[]model.Trip{
				{
					ID:        "A00002",
					StartDate: model.NewDate(2025, 1, 1),
					EndDate:   model.NewDate(2025, 12, 31),
					TripType:  model.Permanent,
					DaysRun:   [7]bool{true, true, true, true, true, false, false},
					Locations: []model.Location{
						{Kind: model.LocationOrigin, Stop: "AAAAAAA", DepartureSec: 8 * 3600},
						{Kind: model.LocationDestination, Stop: "CCCCCCC", ArrivalSec: 9 * 3600},
					},
				},
			},
			false,
		},
		{
			"cancellation_trip_type",
			[]string{
				buildBSLine("A00003", "250610", "250610", "0000000", 'C'),
				buildLOLine("AAAAAAA", "0800"),
				buildLTLine("CCCCCCC", "0900"),
			},
			[]model.Trip{
				{
					ID:        "A00003",
					StartDate: model.NewDate(2025, 6, 10),
					EndDate:   model.NewDate(2025, 6, 10),
					TripType:  model.Cancellation,
					DaysRun:   [7]bool{},
					Locations: []model.Location{
						{Kind: model.LocationOrigin, Stop: "AAAAAAA", DepartureSec: 8 * 3600},
						{Kind: model.LocationDestination, Stop: "CCCCCCC", ArrivalSec: 9 * 3600},
					},
				},
			},
			false,
		},
		{
			"lo_without_open_trip",
			[]string{
				buildLOLine("AAAAAAA", "0800"),
			},
			nil,
			true,
		},
		{
			"trailing_trip_missing_lt",
			[]string{
				buildBSLine("A00004", "250101", "251231", "1111100", 'P'),
				buildLOLine("AAAAAAA", "0800"),
			},
			nil,
			true,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			trips, err := ParseMCA(strings.NewReader(strings.Join(tc.lines, "\n")))
			if tc.err {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.trips, trips)
		})
	}
}
