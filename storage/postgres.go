package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/jwhandley/railcsa/model"
)

type PSQLStorage struct {
	db *sql.DB
}

// NewPSQLStorage creates a new Postgres-backed Storage using the
// provided connection string.
//
// If clearDB is true, the database is cleared on startup. You
// probably only want this for testing.
func NewPSQLStorage(connStr string, clearDB bool) (*PSQLStorage, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	if clearDB {
		_, err = db.Exec(`
DROP TABLE IF EXISTS bundle;
DROP TABLE IF EXISTS bundle_blob;`)
		if err != nil {
			return nil, fmt.Errorf("clearing db: %w", err)
		}
	}

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS bundle (
    hash TEXT NOT NULL,
    source TEXT NOT NULL,
    retrieved_at TIMESTAMP NOT NULL,
    PRIMARY KEY (hash, source)
);

CREATE TABLE IF NOT EXISTS bundle_blob (
    hash TEXT PRIMARY KEY,
    stops BYTEA NOT NULL,
    trips BYTEA NOT NULL,
    footpaths BYTEA NOT NULL
);`)
	if err != nil {
		return nil, fmt.Errorf("creating bundle tables: %w", err)
	}

	return &PSQLStorage{db: db}, nil
}

func (s *PSQLStorage) ListBundles(filter ListBundlesFilter) ([]*BundleMetadata, error) {
	query := `SELECT hash, source, retrieved_at FROM bundle`

	conditions := []string{}
	params := []interface{}{}
	if filter.Source != "" {
		conditions = append(conditions, fmt.Sprintf("source = $%d", len(params)+1))
		params = append(params, filter.Source)
	}
	if filter.Hash != "" {
		conditions = append(conditions, fmt.Sprintf("hash = $%d", len(params)+1))
		params = append(params, filter.Hash)
	}
	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE "
		} else {
			query += " AND "
		}
		query += cond
	}

	rows, err := s.db.Query(query, params...)
	if err != nil {
		return nil, fmt.Errorf("querying bundles: %w", err)
	}
	defer rows.Close()

	bundles := []*BundleMetadata{}
	for rows.Next() {
		m := &BundleMetadata{}
		if err := rows.Scan(&m.Hash, &m.Source, &m.RetrievedAt); err != nil {
			return nil, fmt.Errorf("scanning bundle: %w", err)
		}
		bundles = append(bundles, m)
	}

	return bundles, rows.Err()
}

func (s *PSQLStorage) WriteBundleMetadata(metadata *BundleMetadata) error {
	_, err := s.db.Exec(`
INSERT INTO bundle (hash, source, retrieved_at) VALUES ($1, $2, $3)
ON CONFLICT (hash, source) DO UPDATE SET retrieved_at = excluded.retrieved_at`,
		metadata.Hash, metadata.Source, metadata.RetrievedAt)
	if err != nil {
		return fmt.Errorf("writing bundle metadata: %w", err)
	}
	return nil
}

func (s *PSQLStorage) GetWriter(hash string) (BundleWriter, error) {
	return &blobBundleWriter{
		flush: func(stopsBlob, tripsBlob, footpathsBlob []byte) error {
			_, err := s.db.Exec(`
INSERT INTO bundle_blob (hash, stops, trips, footpaths) VALUES ($1, $2, $3, $4)
ON CONFLICT (hash) DO UPDATE SET stops = excluded.stops, trips = excluded.trips, footpaths = excluded.footpaths`,
				hash, stopsBlob, tripsBlob, footpathsBlob)
			if err != nil {
				return fmt.Errorf("writing bundle blob: %w", err)
			}
			return nil
		},
	}, nil
}

func (s *PSQLStorage) GetReader(hash string) (BundleReader, error) {
	var stopsBlob, tripsBlob, footpathsBlob []byte
	err := s.db.QueryRow(
		`SELECT stops, trips, footpaths FROM bundle_blob WHERE hash = $1`, hash,
	).Scan(&stopsBlob, &tripsBlob, &footpathsBlob)
	if err == sql.ErrNoRows {
		return &psqlBundleReader{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading bundle blob: %w", err)
	}

	stops, err := decodeStops(stopsBlob)
	if err != nil {
		return nil, err
	}
	trips, err := decodeTrips(tripsBlob)
	if err != nil {
		return nil, err
	}
	footpaths, err := decodeFootpaths(footpathsBlob)
	if err != nil {
		return nil, err
	}

	return &psqlBundleReader{stops: stops, trips: trips, footpaths: footpaths}, nil
}

type psqlBundleReader struct {
	stops     []model.Stop
	trips     []model.Trip
	footpaths []model.Footpath
}

func (r *psqlBundleReader) Stops() ([]model.Stop, error)         { return r.stops, nil }
func (r *psqlBundleReader) Trips() ([]model.Trip, error)         { return r.trips, nil }
func (r *psqlBundleReader) Footpaths() ([]model.Footpath, error) { return r.footpaths, nil }
