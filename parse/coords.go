package parse

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/paulmach/orb"
	"github.com/spkg/bom"

	"github.com/jwhandley/railcsa/model"
)

// stationCoordCSV is one row of the station_coordinates.csv auxiliary
// dataset: tiploc,lat,lon.
type stationCoordCSV struct {
	TIPLOC string  `csv:"tiploc"`
	Lat    float64 `csv:"lat"`
	Lon    float64 `csv:"lon"`
}

// ParseStationCoordinates reads the station_coordinates.csv auxiliary
// dataset and returns a map from TIPLOC to geographic point. The MSN
// fixed-width record doesn't carry coordinates, so callers attach
// these to the matching model.Stop by TIPLOC after parsing MSN.
func ParseStationCoordinates(data io.Reader) (map[model.StopId]orb.Point, error) {
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		return gocsv.LazyCSVReader(bom.NewReader(in))
	})

	rows := []*stationCoordCSV{}
	if err := gocsv.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("unmarshaling station coordinates csv: %w", err)
	}

	coords := map[model.StopId]orb.Point{}
	for _, row := range rows {
		if row.TIPLOC == "" {
			return nil, fmt.Errorf("empty tiploc in station coordinates")
		}
		coords[model.StopId(row.TIPLOC)] = orb.Point{row.Lon, row.Lat}
	}

	return coords, nil
}

// AttachCoordinates sets Coord on each stop whose TIPLOC has a known
// geographic point, leaving the rest nil.
func AttachCoordinates(stops []model.Stop, coords map[model.StopId]orb.Point) {
	for i := range stops {
		if pt, ok := coords[stops[i].ID]; ok {
			p := pt
			stops[i].Coord = &p
		}
	}
}
