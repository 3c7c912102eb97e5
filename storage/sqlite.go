package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/jwhandley/railcsa/model"
)

type SQLiteConfig struct {
	OnDisk    bool
	Directory string
}

type SQLiteStorage struct {
	SQLiteConfig

	db *sql.DB
}

func NewSQLiteStorage(cfg ...SQLiteConfig) (*SQLiteStorage, error) {
	onDisk := false
	directory := ""
	if len(cfg) > 0 {
		onDisk = cfg[0].OnDisk
		directory = cfg[0].Directory
	}

	sourceName := ":memory:"
	if onDisk {
		sourceName = directory + "/railcsa.db"
	}

	db, err := sql.Open("sqlite3", sourceName)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS bundle (
    hash TEXT NOT NULL,
    source TEXT NOT NULL,
    retrieved_at TIMESTAMP NOT NULL,
PRIMARY KEY (hash, source)
);

CREATE TABLE IF NOT EXISTS bundle_blob (
    hash TEXT NOT NULL PRIMARY KEY,
    stops BLOB NOT NULL,
    trips BLOB NOT NULL,
    footpaths BLOB NOT NULL
);`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating bundle tables: %w", err)
	}

	return &SQLiteStorage{
		SQLiteConfig: SQLiteConfig{OnDisk: onDisk, Directory: directory},
		db:           db,
	}, nil
}

func (s *SQLiteStorage) ListBundles(filter ListBundlesFilter) ([]*BundleMetadata, error) {
	query := `SELECT hash, source, retrieved_at FROM bundle`

	conditions := []string{}
	params := []interface{}{}
	if filter.Source != "" {
		conditions = append(conditions, "source = ?")
		params = append(params, filter.Source)
	}
	if filter.Hash != "" {
		conditions = append(conditions, "hash = ?")
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

func (s *SQLiteStorage) WriteBundleMetadata(metadata *BundleMetadata) error {
	_, err := s.db.Exec(`
INSERT INTO bundle (hash, source, retrieved_at) VALUES (?, ?, ?)
ON CONFLICT (hash, source) DO UPDATE SET retrieved_at = excluded.retrieved_at`,
		metadata.Hash, metadata.Source, metadata.RetrievedAt)
	if err != nil {
		return fmt.Errorf("writing bundle metadata: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) GetWriter(hash string) (BundleWriter, error) {
	return &blobBundleWriter{
		flush: func(stopsBlob, tripsBlob, footpathsBlob []byte) error {
			_, err := s.db.Exec(`
INSERT INTO bundle_blob (hash, stops, trips, footpaths) VALUES (?, ?, ?, ?)
ON CONFLICT (hash) DO UPDATE SET stops = excluded.stops, trips = excluded.trips, footpaths = excluded.footpaths`,
				hash, stopsBlob, tripsBlob, footpathsBlob)
			if err != nil {
				return fmt.Errorf("writing bundle blob: %w", err)
			}
			return nil
		},
	}, nil
}

func (s *SQLiteStorage) GetReader(hash string) (BundleReader, error) {
	var stopsBlob, tripsBlob, footpathsBlob []byte
	err := s.db.QueryRow(
		`SELECT stops, trips, footpaths FROM bundle_blob WHERE hash = ?`, hash,
	).Scan(&stopsBlob, &tripsBlob, &footpathsBlob)
	if err == sql.ErrNoRows {
		return &sqliteBundleReader{}, nil
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

	return &sqliteBundleReader{stops: stops, trips: trips, footpaths: footpaths}, nil
}

type sqliteBundleReader struct {
	stops     []model.Stop
	trips     []model.Trip
	footpaths []model.Footpath
}

func (r *sqliteBundleReader) Stops() ([]model.Stop, error)         { return r.stops, nil }
func (r *sqliteBundleReader) Trips() ([]model.Trip, error)         { return r.trips, nil }
func (r *sqliteBundleReader) Footpaths() ([]model.Footpath, error) { return r.footpaths, nil }
