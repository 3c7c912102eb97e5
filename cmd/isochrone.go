package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	geojson "github.com/paulmach/go.geojson"
	"github.com/spf13/cobra"

	"github.com/jwhandley/railcsa"
	"github.com/jwhandley/railcsa/model"
)

var isochroneCmd = &cobra.Command{
	Use:   "isochrone <origin>",
	Short: "Computes the earliest arrival time at every reachable stop",
	Args:  cobra.ExactArgs(1),
	RunE:  isochrone,
}

var (
	dateFlag    string
	timeFlag    string
	untilFlag   string
	geojsonFlag bool
)

func init() {
	isochroneCmd.Flags().StringVarP(&dateFlag, "date", "", "", "Departure date, YYYY-MM-DD (default: today)")
	isochroneCmd.Flags().StringVarP(&timeFlag, "time", "", "", "Departure time, HH:MM (default: now)")
	isochroneCmd.Flags().StringVarP(&untilFlag, "until", "", "", "Drop stops reached after this time, HH:MM")
	isochroneCmd.Flags().BoolVarP(&geojsonFlag, "geojson", "", false, "Emit a GeoJSON FeatureCollection instead of a table")
}

func isochrone(cmd *cobra.Command, args []string) error {
	origin := model.StopId(args[0])

	start, err := parseDepartureInstant(dateFlag, timeFlag)
	if err != nil {
		return fmt.Errorf("invalid departure instant: %w", err)
	}

	engine, err := LoadEngine(start)
	if err != nil {
		return err
	}

	arrivals, err := engine.DepartureIsochrone(origin, start)
	if err != nil {
		return err
	}

	results := engine.Result(arrivals)
	sort.Slice(results, func(i, j int) bool {
		if results[i].ArrivalSec != results[j].ArrivalSec {
			return results[i].ArrivalSec < results[j].ArrivalSec
		}
		return results[i].Stop < results[j].Stop
	})

	if untilFlag != "" {
		cutoff, err := parseClockSeconds(untilFlag)
		if err != nil {
			return fmt.Errorf("invalid --until: %w", err)
		}
		filtered := results[:0]
		for _, r := range results {
			if r.ArrivalSec <= cutoff {
				filtered = append(filtered, r)
			}
		}
		results = filtered
	}

	if geojsonFlag {
		return printGeoJSON(results)
	}

	for _, r := range results {
		fmt.Printf("%s\t%s\t%02d:%02d:%02d\n", r.Stop, r.Name, r.ArrivalSec/3600, (r.ArrivalSec/60)%60, r.ArrivalSec%60)
	}

	return nil
}

func printGeoJSON(results []railcsa.StopArrival) error {
	fc := geojson.NewFeatureCollection()
	for _, r := range results {
		if r.Coord == nil {
			continue
		}
		coord := *r.Coord
		feature := geojson.NewPointFeature([]float64{coord[0], coord[1]})
		feature.SetProperty("stop_id", string(r.Stop))
		feature.SetProperty("name", r.Name)
		feature.SetProperty("arrival_sec", r.ArrivalSec)
		fc.AddFeature(feature)
	}

	buf, err := json.Marshal(fc)
	if err != nil {
		return fmt.Errorf("marshaling geojson: %w", err)
	}
	fmt.Println(string(buf))
	return nil
}

func parseDepartureInstant(date, clock string) (time.Time, error) {
	now := time.Now().UTC()

	day := now
	if date != "" {
		d, err := time.Parse("2006-01-02", date)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date '%s': %w", date, err)
		}
		day = d
	}

	hour, minute := now.Hour(), now.Minute()
	if clock != "" {
		t, err := time.Parse("15:04", clock)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid time '%s': %w", clock, err)
		}
		hour, minute = t.Hour(), t.Minute()
	}

	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.UTC), nil
}

func parseClockSeconds(clock string) (uint32, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, err
	}
	return uint32(t.Hour()*3600 + t.Minute()*60), nil
}
