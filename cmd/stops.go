package main

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/jwhandley/railcsa/storage"
)

var stopsCmd = &cobra.Command{
	Use:   "stops [lat lng [limit]]",
	Short: "Lists stations, or the nearest ones to a coordinate",
	Args:  cobra.RangeArgs(0, 3),
	RunE:  stops,
}

func stops(cmd *cobra.Command, args []string) error {
	var lat, lng float64
	limit := -1
	var err error

	gotLocation := false
	if len(args) == 1 {
		return fmt.Errorf("missing lng")
	}
	if len(args) >= 2 {
		gotLocation = true
		lat, err = strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid lat: %w", err)
		}
		lng, err = strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid lng: %w", err)
		}
	}
	if len(args) == 3 {
		limit, err = strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid limit: %w", err)
		}
		if limit < 0 {
			return fmt.Errorf("limit must be >= 0")
		}
	}

	engine, err := LoadEngine(time.Now())
	if err != nil {
		return err
	}

	all := engine.Stops()

	if gotLocation {
		type ranked struct {
			name     string
			id       string
			distance float64
		}
		nearby := make([]ranked, 0, len(all))
		for _, s := range all {
			if s.Coord == nil {
				continue
			}
			dist := storage.HaversineDistance(lat, lng, s.Coord[1], s.Coord[0])
			nearby = append(nearby, ranked{name: s.Name, id: string(s.ID), distance: dist})
		}
		sort.Slice(nearby, func(i, j int) bool {
			return nearby[i].distance < nearby[j].distance
		})
		if limit >= 0 && len(nearby) > limit {
			nearby = nearby[:limit]
		}
		for _, r := range nearby {
			fmt.Printf("%s: %s (%.1f km)\n", r.id, r.name, r.distance)
		}
		return nil
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].Name < all[j].Name
	})
	if limit >= 0 && len(all) > limit {
		all = all[:limit]
	}
	for _, s := range all {
		fmt.Printf("%s: %s\n", s.ID, s.Name)
	}

	return nil
}
