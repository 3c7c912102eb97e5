package parse

import (
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwhandley/railcsa/model"
)

func TestParseStationCoordinates(t *testing.T) {
	content := "tiploc,lat,lon\nKNGX,51.5320,-0.1233\nEDINBUR,55.9522,-3.1875\n"

	coords, err := ParseStationCoordinates(strings.NewReader(content))
	require.NoError(t, err)

	assert.Equal(t, orb.Point{-0.1233, 51.5320}, coords["KNGX"])
	assert.Equal(t, orb.Point{-3.1875, 55.9522}, coords["EDINBUR"])
	assert.Len(t, coords, 2)
}

func TestParseStationCoordinatesBOM(t *testing.T) {
	content := "﻿tiploc,lat,lon\nKNGX,51.5320,-0.1233\n"

	coords, err := ParseStationCoordinates(strings.NewReader(content))
	require.NoError(t, err)
	assert.Equal(t, orb.Point{-0.1233, 51.5320}, coords["KNGX"])
}

func TestAttachCoordinates(t *testing.T) {
	stops := []model.Stop{
		{ID: "KNGX", Name: "Kings Cross"},
		{ID: "UNKNOWN", Name: "No Coordinates"},
	}
	coords := map[model.StopId]orb.Point{
		"KNGX": {-0.1233, 51.5320},
	}

	AttachCoordinates(stops, coords)

	require.NotNil(t, stops[0].Coord)
	assert.Equal(t, orb.Point{-0.1233, 51.5320}, *stops[0].Coord)
	assert.Nil(t, stops[1].Coord)
}
