package storage

import (
	"bytes"
	"encoding/gob"

	"github.com/pkg/errors"

	"github.com/jwhandley/railcsa/model"
)

// The encode*/decode* helpers back the SQLite and Postgres backends: a
// bundle is small enough (a few tens of thousands of trips at most)
// that storing it as three gob-encoded blobs is simpler than modeling
// a relational schema nothing queries by filter.

func encodeStops(stops []model.Stop) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := gob.NewEncoder(buf).Encode(stops); err != nil {
		return nil, errors.Wrap(err, "encoding stops")
	}
	return buf.Bytes(), nil
}

func decodeStops(data []byte) ([]model.Stop, error) {
	var stops []model.Stop
	if len(data) == 0 {
		return stops, nil
	}
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&stops); err != nil {
		return nil, errors.Wrap(err, "decoding stops")
	}
	return stops, nil
}

func encodeTrips(trips []model.Trip) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := gob.NewEncoder(buf).Encode(trips); err != nil {
		return nil, errors.Wrap(err, "encoding trips")
	}
	return buf.Bytes(), nil
}

func decodeTrips(data []byte) ([]model.Trip, error) {
	var trips []model.Trip
	if len(data) == 0 {
		return trips, nil
	}
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&trips); err != nil {
		return nil, errors.Wrap(err, "decoding trips")
	}
	return trips, nil
}

func encodeFootpaths(footpaths []model.Footpath) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := gob.NewEncoder(buf).Encode(footpaths); err != nil {
		return nil, errors.Wrap(err, "encoding footpaths")
	}
	return buf.Bytes(), nil
}

func decodeFootpaths(data []byte) ([]model.Footpath, error) {
	var footpaths []model.Footpath
	if len(data) == 0 {
		return footpaths, nil
	}
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&footpaths); err != nil {
		return nil, errors.Wrap(err, "decoding footpaths")
	}
	return footpaths, nil
}

// blobBundleWriter buffers writes in memory and flushes a single
// upsert on Close. Both the SQLite and Postgres backends share this;
// only the flush SQL differs.
type blobBundleWriter struct {
	stops     []model.Stop
	trips     []model.Trip
	footpaths []model.Footpath
	flush     func(stopsBlob, tripsBlob, footpathsBlob []byte) error
}

func (w *blobBundleWriter) WriteStop(stop model.Stop) error {
	w.stops = append(w.stops, stop)
	return nil
}

func (w *blobBundleWriter) WriteTrip(trip model.Trip) error {
	w.trips = append(w.trips, trip)
	return nil
}

func (w *blobBundleWriter) WriteFootpath(footpath model.Footpath) error {
	w.footpaths = append(w.footpaths, footpath)
	return nil
}

func (w *blobBundleWriter) Close() error {
	stopsBlob, err := encodeStops(w.stops)
	if err != nil {
		return err
	}
	tripsBlob, err := encodeTrips(w.trips)
	if err != nil {
		return err
	}
	footpathsBlob, err := encodeFootpaths(w.footpaths)
	if err != nil {
		return err
	}
	return w.flush(stopsBlob, tripsBlob, footpathsBlob)
}
