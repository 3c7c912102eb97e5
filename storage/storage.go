// Package storage caches parsed timetable bundles so a source
// (filesystem directory, archive, or URL) that's already been parsed
// once doesn't need to be re-parsed on every process start. Unlike a
// GTFS feed, a rail timetable bundle has no query-by-filter access
// pattern at the storage layer: the engine always wants every trip,
// stop and footpath to build an Engine, so storage here is a content-
// addressed blob cache rather than a relational schema.
package storage

import (
	"time"

	"github.com/jwhandley/railcsa/model"
)

// Storage manages cached timetable bundles.
type Storage interface {
	// ListBundles retrieves all bundle metadata records matching
	// the given filter.
	ListBundles(filter ListBundlesFilter) ([]*BundleMetadata, error)

	// WriteBundleMetadata writes a BundleMetadata record. If a
	// record with the same Source and Hash exists, it is updated.
	WriteBundleMetadata(metadata *BundleMetadata) error

	// GetReader gets a reader for the bundle with the given hash.
	GetReader(hash string) (BundleReader, error)

	// GetWriter gets a writer for the bundle with the given hash.
	GetWriter(hash string) (BundleWriter, error)
}

// ListBundlesFilter filters ListBundles results.
type ListBundlesFilter struct {
	// If set, only include bundles retrieved from this source
	// (a URL or filesystem path).
	Source string

	// If set, only include the bundle with this content hash.
	Hash string
}

// BundleMetadata records when and from where a timetable bundle was
// retrieved. The parsed data itself is accessed via BundleReader.
type BundleMetadata struct {
	Source      string
	Hash        string
	RetrievedAt time.Time
}

// BundleWriter persists one bundle's parsed trips, stops and
// footpaths.
type BundleWriter interface {
	WriteStop(stop model.Stop) error
	WriteTrip(trip model.Trip) error
	WriteFootpath(footpath model.Footpath) error
	Close() error
}

// BundleReader retrieves a previously written bundle's parsed trips,
// stops and footpaths, in full — the only access pattern the engine
// build needs.
type BundleReader interface {
	Stops() ([]model.Stop, error)
	Trips() ([]model.Trip, error)
	Footpaths() ([]model.Footpath, error)
}
