package storage

import (
	"sort"

	"github.com/jwhandley/railcsa/model"
)

// MemoryStorage is an in-memory, non-persistent Storage
// implementation. Useful for tests and one-shot CLI invocations that
// don't want an on-disk cache.
type MemoryStorage struct {
	Metadata map[string]*BundleMetadata
	Bundles  map[string]*memoryBundle
}

type memoryBundle struct {
	stops     []model.Stop
	trips     []model.Trip
	footpaths []model.Footpath
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		Metadata: map[string]*BundleMetadata{},
		Bundles:  map[string]*memoryBundle{},
	}
}

func (s *MemoryStorage) ListBundles(filter ListBundlesFilter) ([]*BundleMetadata, error) {
	bundles := []*BundleMetadata{}
	for _, metadata := range s.Metadata {
		if filter.Source != "" && metadata.Source != filter.Source {
			continue
		}
		if filter.Hash != "" && metadata.Hash != filter.Hash {
			continue
		}
		bundles = append(bundles, metadata)
	}
	sort.Slice(bundles, func(i, j int) bool {
		return bundles[i].RetrievedAt.After(bundles[j].RetrievedAt)
	})
	return bundles, nil
}

func (s *MemoryStorage) WriteBundleMetadata(metadata *BundleMetadata) error {
	s.Metadata[metadata.Source+"\x00"+metadata.Hash] = metadata
	return nil
}

func (s *MemoryStorage) GetWriter(hash string) (BundleWriter, error) {
	bundle := &memoryBundle{}
	s.Bundles[hash] = bundle
	return &memoryBundleWriter{bundle: bundle}, nil
}

func (s *MemoryStorage) GetReader(hash string) (BundleReader, error) {
	bundle, ok := s.Bundles[hash]
	if !ok {
		bundle = &memoryBundle{}
		s.Bundles[hash] = bundle
	}
	return &memoryBundleReader{bundle: bundle}, nil
}

type memoryBundleWriter struct {
	bundle *memoryBundle
}

func (w *memoryBundleWriter) WriteStop(stop model.Stop) error {
	w.bundle.stops = append(w.bundle.stops, stop)
	return nil
}

func (w *memoryBundleWriter) WriteTrip(trip model.Trip) error {
	w.bundle.trips = append(w.bundle.trips, trip)
	return nil
}

func (w *memoryBundleWriter) WriteFootpath(footpath model.Footpath) error {
	w.bundle.footpaths = append(w.bundle.footpaths, footpath)
	return nil
}

func (w *memoryBundleWriter) Close() error {
	return nil
}

type memoryBundleReader struct {
	bundle *memoryBundle
}

func (r *memoryBundleReader) Stops() ([]model.Stop, error) {
	return r.bundle.stops, nil
}

func (r *memoryBundleReader) Trips() ([]model.Trip, error) {
	return r.bundle.trips, nil
}

func (r *memoryBundleReader) Footpaths() ([]model.Footpath, error) {
	return r.bundle.footpaths, nil
}
