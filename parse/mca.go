package parse

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jwhandley/railcsa/model"
)

// ParseMCA reads a CIF-derived schedule file: one BS record opens a
// trip, LO/LI/LT records describe its origin, intermediate and
// terminating locations, and HD/TI/AA header and association records
// are skipped. A trip is only appended to the result once its LT
// record closes it.
func ParseMCA(data io.Reader) ([]model.Trip, error) {
	scanner := bufio.NewScanner(data)

	trips := []model.Trip{}
	var current *model.Trip

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		switch {
		case strings.HasPrefix(line, "HD"), strings.HasPrefix(line, "TI"), strings.HasPrefix(line, "AA"):
			continue

		case strings.HasPrefix(line, "BS"):
			trip, err := parseBS(line)
			if err != nil {
				return nil, fmt.Errorf("mca line %d: %w", lineNo, err)
			}
			current = trip

		case strings.HasPrefix(line, "LO"):
			if current == nil {
				return nil, fmt.Errorf("mca line %d: LO record with no open trip", lineNo)
			}
			loc, err := parseLO(line)
			if err != nil {
				return nil, fmt.Errorf("mca line %d: %w", lineNo, err)
			}
			current.AddLocation(loc)

		case strings.HasPrefix(line, "LI"):
			if current == nil {
				return nil, fmt.Errorf("mca line %d: LI record with no open trip", lineNo)
			}
			loc, ok, err := parseLI(line)
			if err != nil {
				return nil, fmt.Errorf("mca line %d: %w", lineNo, err)
			}
			if ok {
				current.AddLocation(loc)
			}

		case strings.HasPrefix(line, "LT"):
			if current == nil {
				return nil, fmt.Errorf("mca line %d: LT record with no open trip", lineNo)
			}
			loc, err := parseLT(line)
			if err != nil {
				return nil, fmt.Errorf("mca line %d: %w", lineNo, err)
			}
			current.AddLocation(loc)

			trips = append(trips, *current)
			current = nil
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading mca: %w", err)
	}
	if current != nil {
		return nil, fmt.Errorf("mca: trailing trip '%s' missing LT record", current.ID)
	}

	return trips, nil
}

func parseBS(line string) (*model.Trip, error) {
	if len(line) < 29 {
		return nil, fmt.Errorf("BS record too short (%d bytes)", len(line))
	}

	tripID := model.TripId(line[3:9])

	startDate, err := parseCIFDate(line[9:15])
	if err != nil {
		return nil, fmt.Errorf("start date: %w", err)
	}
	endDate, err := parseCIFDate(line[15:21])
	if err != nil {
		return nil, fmt.Errorf("end date: %w", err)
	}

	var tripType model.TripType
	switch last := line[len(line)-1]; last {
	case 'P':
		tripType = model.Permanent
	case 'O':
		tripType = model.Overlay
	case 'N':
		tripType = model.New
	case 'C':
		tripType = model.Cancellation
	default:
		return nil, fmt.Errorf("unexpected trip type character '%c'", last)
	}

	var daysRun [7]bool
	for i, d := range line[21:28] {
		if d == '1' {
			daysRun[i] = true
		}
	}

	return &model.Trip{
		ID:        tripID,
		StartDate: startDate,
		EndDate:   endDate,
		TripType:  tripType,
		DaysRun:   daysRun,
	}, nil
}

func parseLO(line string) (model.Location, error) {
	if len(line) < 14 {
		return model.Location{}, fmt.Errorf("LO record too short (%d bytes)", len(line))
	}

	tiploc := model.StopId(strings.TrimSpace(line[2:10]))
	departureSec, err := parseCIFTime(line[10:14])
	if err != nil {
		return model.Location{}, fmt.Errorf("departure time: %w", err)
	}

	return model.Location{
		Kind:         model.LocationOrigin,
		Stop:         tiploc,
		DepartureSec: departureSec,
	}, nil
}

// parseLI parses an intermediate record. Some intermediate stops
// (passing points with no public times) carry blank time columns; in
// that case ok is false and the caller should not add a location.
func parseLI(line string) (model.Location, bool, error) {
	if len(line) < 19 {
		return model.Location{}, false, fmt.Errorf("LI record too short (%d bytes)", len(line))
	}

	tiploc := model.StopId(strings.TrimSpace(line[2:10]))
	arrivalSec, arrErr := parseCIFTime(line[10:14])
	departureSec, depErr := parseCIFTime(line[15:19])
	if arrErr != nil || depErr != nil {
		return model.Location{}, false, nil
	}

	return model.Location{
		Kind:         model.LocationIntermediate,
		Stop:         tiploc,
		ArrivalSec:   arrivalSec,
		DepartureSec: departureSec,
	}, true, nil
}

func parseLT(line string) (model.Location, error) {
	if len(line) < 14 {
		return model.Location{}, fmt.Errorf("LT record too short (%d bytes)", len(line))
	}

	tiploc := model.StopId(strings.TrimSpace(line[2:10]))
	arrivalSec, err := parseCIFTime(line[10:14])
	if err != nil {
		return model.Location{}, fmt.Errorf("arrival time: %w", err)
	}

	return model.Location{
		Kind:       model.LocationDestination,
		Stop:       tiploc,
		ArrivalSec: arrivalSec,
	}, nil
}

// parseCIFDate parses a CIF yymmdd date. CIF timetables only ever
// reference the 2000s, so the century is fixed rather than inferred
// from a pivot year.
func parseCIFDate(s string) (model.Date, error) {
	if len(s) != 6 {
		return model.Date{}, fmt.Errorf("invalid date '%s'", s)
	}
	yy, err := strconv.Atoi(s[0:2])
	if err != nil {
		return model.Date{}, fmt.Errorf("invalid date '%s': %w", s, err)
	}
	mm, err := strconv.Atoi(s[2:4])
	if err != nil {
		return model.Date{}, fmt.Errorf("invalid date '%s': %w", s, err)
	}
	dd, err := strconv.Atoi(s[4:6])
	if err != nil {
		return model.Date{}, fmt.Errorf("invalid date '%s': %w", s, err)
	}
	return model.NewDate(2000+yy, time.Month(mm), dd), nil
}

// parseCIFTime parses an HHMM time into seconds-from-midnight.
func parseCIFTime(s string) (uint32, error) {
	if len(s) != 4 {
		return 0, fmt.Errorf("invalid time '%s'", s)
	}
	hh, err := strconv.Atoi(s[0:2])
	if err != nil {
		return 0, fmt.Errorf("invalid time '%s': %w", s, err)
	}
	mm, err := strconv.Atoi(s[2:4])
	if err != nil {
		return 0, fmt.Errorf("invalid time '%s': %w", s, err)
	}
	return uint32(hh*3600 + mm*60), nil
}
