package storage_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwhandley/railcsa/model"
	"github.com/jwhandley/railcsa/storage"
)

type storageBuilder func() (storage.Storage, error)

func builders() map[string]storageBuilder {
	return map[string]storageBuilder{
		"memory": func() (storage.Storage, error) {
			return storage.NewMemoryStorage(), nil
		},
		"sqlite": func() (storage.Storage, error) {
			return storage.NewSQLiteStorage()
		},
	}
}

func sampleStop(id model.StopId) model.Stop {
	return model.Stop{
		ID:            id,
		Name:          string(id) + " station",
		CRS:           model.CRS(id[:3]),
		MinChangeTime: 5,
	}
}

func sampleTrip(id model.TripId) model.Trip {
	trip := model.Trip{
		ID:        id,
		StartDate: model.NewDate(2025, 1, 1),
		EndDate:   model.NewDate(2025, 12, 31),
		TripType:  model.Permanent,
		DaysRun:   [7]bool{true, true, true, true, true, false, false},
	}
	trip.AddLocation(model.Location{
		Kind:         model.LocationOrigin,
		Stop:         "AAAAAAA",
		DepartureSec: 3600,
	})
	trip.AddLocation(model.Location{
		Kind:       model.LocationDestination,
		Stop:       "BBBBBBB",
		ArrivalSec: 5400,
	})
	return trip
}

func TestStorageRoundTrip(t *testing.T) {
	for name, build := range builders() {
		t.Run(name, func(t *testing.T) {
			s, err := build()
			require.NoError(t, err)

			writer, err := s.GetWriter("hash-1")
			require.NoError(t, err)

			require.NoError(t, writer.WriteStop(sampleStop("AAAAAAA")))
			require.NoError(t, writer.WriteStop(sampleStop("BBBBBBB")))
			require.NoError(t, writer.WriteTrip(sampleTrip("T1")))
			require.NoError(t, writer.WriteFootpath(model.Footpath{
				FromCRS:            "AAA",
				ToCRS:              "BBB",
				Mode:               model.ModeTransfer,
				MinTransferSeconds: 300,
			}))
			require.NoError(t, writer.Close())

			reader, err := s.GetReader("hash-1")
			require.NoError(t, err)

			stops, err := reader.Stops()
			require.NoError(t, err)
			assert.Len(t, stops, 2)

			trips, err := reader.Trips()
			require.NoError(t, err)
			require.Len(t, trips, 1)
			assert.Equal(t, model.TripId("T1"), trips[0].ID)

			footpaths, err := reader.Footpaths()
			require.NoError(t, err)
			require.Len(t, footpaths, 1)
			assert.Equal(t, model.CRS("AAA"), footpaths[0].FromCRS)
		})
	}
}

func TestStorageReadMissingBundle(t *testing.T) {
	for name, build := range builders() {
		t.Run(name, func(t *testing.T) {
			s, err := build()
			require.NoError(t, err)

			reader, err := s.GetReader("does-not-exist")
			require.NoError(t, err)

			stops, err := reader.Stops()
			require.NoError(t, err)
			assert.Empty(t, stops)

			trips, err := reader.Trips()
			require.NoError(t, err)
			assert.Empty(t, trips)
		})
	}
}

func TestStorageBundleMetadata(t *testing.T) {
	for name, build := range builders() {
		t.Run(name, func(t *testing.T) {
			s, err := build()
			require.NoError(t, err)

			now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
			require.NoError(t, s.WriteBundleMetadata(&storage.BundleMetadata{
				Source:      "https://example.com/timetable.zip",
				Hash:        "hash-1",
				RetrievedAt: now,
			}))
			require.NoError(t, s.WriteBundleMetadata(&storage.BundleMetadata{
				Source:      "https://example.com/other.zip",
				Hash:        "hash-2",
				RetrievedAt: now.Add(time.Hour),
			}))

			all, err := s.ListBundles(storage.ListBundlesFilter{})
			require.NoError(t, err)
			assert.Len(t, all, 2)

			bySource, err := s.ListBundles(storage.ListBundlesFilter{Source: "https://example.com/timetable.zip"})
			require.NoError(t, err)
			require.Len(t, bySource, 1)
			assert.Equal(t, "hash-1", bySource[0].Hash)

			byHash, err := s.ListBundles(storage.ListBundlesFilter{Hash: "hash-2"})
			require.NoError(t, err)
			require.Len(t, byHash, 1)
			assert.Equal(t, "https://example.com/other.zip", byHash[0].Source)
		})
	}
}

func TestStorageMetadataUpsert(t *testing.T) {
	for name, build := range builders() {
		t.Run(name, func(t *testing.T) {
			s, err := build()
			require.NoError(t, err)

			first := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
			second := first.Add(24 * time.Hour)

			require.NoError(t, s.WriteBundleMetadata(&storage.BundleMetadata{
				Source: "a", Hash: "hash-1", RetrievedAt: first,
			}))
			require.NoError(t, s.WriteBundleMetadata(&storage.BundleMetadata{
				Source: "a", Hash: "hash-1", RetrievedAt: second,
			}))

			all, err := s.ListBundles(storage.ListBundlesFilter{Source: "a"})
			require.NoError(t, err)
			require.Len(t, all, 1)
			assert.True(t, all[0].RetrievedAt.Equal(second))
		})
	}
}
