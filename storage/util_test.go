package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance(t *testing.T) {
	type point struct {
		lat, lon float64
	}

	var loc = map[string]point{
		"nyc":    {40.700000, -74.100000},
		"philly": {40.000000, -75.200000},
		"sf":     {37.800000, -122.500000},
		"la":     {34.000000, -118.500000},
		"sto":    {59.300000, 17.900000},
		"lon":    {51.500000, -0.200000},
		"rey":    {64.100000, -21.900000},
	}

	assert.InDelta(t, 121.438585, HaversineDistance(loc["nyc"].lat, loc["nyc"].lon, loc["philly"].lat, loc["philly"].lon), 0.001)
	assert.InDelta(t, 4127.311071, HaversineDistance(loc["nyc"].lat, loc["nyc"].lon, loc["sf"].lat, loc["sf"].lon), 0.001)
	assert.InDelta(t, 3951.861367, HaversineDistance(loc["nyc"].lat, loc["nyc"].lon, loc["la"].lat, loc["la"].lon), 0.001)
	assert.InDelta(t, 6318.636281, HaversineDistance(loc["nyc"].lat, loc["nyc"].lon, loc["sto"].lat, loc["sto"].lon), 0.001)
	assert.InDelta(t, 5572.804939, HaversineDistance(loc["nyc"].lat, loc["nyc"].lon, loc["lon"].lat, loc["lon"].lon), 0.001)
	assert.InDelta(t, 4209.275847, HaversineDistance(loc["nyc"].lat, loc["nyc"].lon, loc["rey"].lat, loc["rey"].lon), 0.001)
	assert.InDelta(t, 4052.204563, HaversineDistance(loc["philly"].lat, loc["philly"].lon, loc["sf"].lat, loc["sf"].lon), 0.001)
	assert.InDelta(t, 3864.146847, HaversineDistance(loc["philly"].lat, loc["philly"].lon, loc["la"].lat, loc["la"].lon), 0.001)
	assert.InDelta(t, 6437.030542, HaversineDistance(loc["philly"].lat, loc["philly"].lon, loc["sto"].lat, loc["sto"].lon), 0.001)
	assert.InDelta(t, 5694.234270, HaversineDistance(loc["philly"].lat, loc["philly"].lon, loc["lon"].lat, loc["lon"].lon), 0.001)
	assert.InDelta(t, 4325.964058, HaversineDistance(loc["philly"].lat, loc["philly"].lon, loc["rey"].lat, loc["rey"].lon), 0.001)
	assert.InDelta(t, 555.165790, HaversineDistance(loc["sf"].lat, loc["sf"].lon, loc["la"].lat, loc["la"].lon), 0.001)
	assert.InDelta(t, 8619.312141, HaversineDistance(loc["sf"].lat, loc["sf"].lon, loc["sto"].lat, loc["sto"].lon), 0.001)
	assert.InDelta(t, 8615.077500, HaversineDistance(loc["sf"].lat, loc["sf"].lon, loc["lon"].lat, loc["lon"].lon), 0.001)
	assert.InDelta(t, 6760.677281, HaversineDistance(loc["sf"].lat, loc["sf"].lon, loc["rey"].lat, loc["rey"].lon), 0.001)
	assert.InDelta(t, 8891.306919, HaversineDistance(loc["la"].lat, loc["la"].lon, loc["sto"].lat, loc["sto"].lon), 0.001)
	assert.InDelta(t, 8770.450733, HaversineDistance(loc["la"].lat, loc["la"].lon, loc["lon"].lat, loc["lon"].lon), 0.001)
	assert.InDelta(t, 6952.152842, HaversineDistance(loc["la"].lat, loc["la"].lon, loc["rey"].lat, loc["rey"].lon), 0.001)
	assert.InDelta(t, 1426.989197, HaversineDistance(loc["sto"].lat, loc["sto"].lon, loc["lon"].lat, loc["lon"].lon), 0.001)
	assert.InDelta(t, 2126.357273, HaversineDistance(loc["sto"].lat, loc["sto"].lon, loc["rey"].lat, loc["rey"].lon), 0.001)
	assert.InDelta(t, 1882.845837, HaversineDistance(loc["lon"].lat, loc["lon"].lon, loc["rey"].lat, loc["rey"].lon), 0.001)
}
