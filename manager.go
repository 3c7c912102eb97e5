package railcsa

import (
	"archive/zip"
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/jwhandley/railcsa/downloader"
	"github.com/jwhandley/railcsa/model"
	"github.com/jwhandley/railcsa/parse"
	"github.com/jwhandley/railcsa/storage"
)

// DefaultBundleRefreshInterval mirrors the teacher's
// DefaultStaticRefreshInterval: how long a cached bundle is trusted
// before Refresh re-downloads it.
const DefaultBundleRefreshInterval = 24 * time.Hour

// Manager wires a storage.Storage cache to bundle downloads and
// parsing. It holds no mutable state of its own beyond
// RefreshInterval; everything durable lives in storage.
type Manager struct {
	RefreshInterval time.Duration
	storage         storage.Storage
}

func NewManager(store storage.Storage) *Manager {
	return &Manager{
		storage:         store,
		RefreshInterval: DefaultBundleRefreshInterval,
	}
}

// LoadEngine loads a timetable bundle identified by bundleID (a URL or
// filesystem path, depending on source), downloading and parsing it if
// it isn't already cached, and builds an Engine from it.
//
// when selects which of the bundles previously retrieved for bundleID
// to use: the most recent one retrieved at or before when. A rail
// timetable bundle has no start/end activity window the way a GTFS
// feed does, so — unlike the teacher's feedActive — there is no
// rejection of an "inactive" bundle, only a choice among versions.
func (m *Manager) LoadEngine(ctx context.Context, bundleID string, source downloader.Downloader, when time.Time) (*Engine, error) {
	bundles, err := m.storage.ListBundles(storage.ListBundlesFilter{Source: bundleID})
	if err != nil {
		return nil, fmt.Errorf("listing bundles: %w", err)
	}

	if len(bundles) == 0 {
		metadata, err := m.refreshBundle(ctx, bundleID, source)
		if err != nil {
			return nil, fmt.Errorf("refreshing bundle: %w", err)
		}
		bundles = []*storage.BundleMetadata{metadata}
	}

	return m.buildFromMostRecent(bundles, when)
}

// Refresh re-downloads any bundle whose most recent retrieval is
// older than RefreshInterval, mirroring the teacher's Refresh/
// refreshFeeds pair.
func (m *Manager) Refresh(ctx context.Context, sources map[string]downloader.Downloader) error {
	bundles, err := m.storage.ListBundles(storage.ListBundlesFilter{})
	if err != nil {
		return fmt.Errorf("listing bundles: %w", err)
	}

	bySource := map[string][]*storage.BundleMetadata{}
	for _, b := range bundles {
		bySource[b.Source] = append(bySource[b.Source], b)
	}

	for bundleID, group := range bySource {
		source, ok := sources[bundleID]
		if !ok {
			continue
		}

		sort.Slice(group, func(i, j int) bool {
			return group[j].RetrievedAt.Before(group[i].RetrievedAt)
		})

		if group[0].RetrievedAt.Add(m.RefreshInterval).After(time.Now()) {
			continue
		}

		fmt.Printf("refreshing bundle %s\n", bundleID)
		if _, err := m.refreshBundle(ctx, bundleID, source); err != nil {
			return fmt.Errorf("refreshing %s: %w", bundleID, err)
		}
	}

	return nil
}

func (m *Manager) buildFromMostRecent(bundles []*storage.BundleMetadata, when time.Time) (*Engine, error) {
	sort.Slice(bundles, func(i, j int) bool {
		return bundles[i].RetrievedAt.Before(bundles[j].RetrievedAt)
	})

	for i := len(bundles) - 1; i >= 0; i-- {
		if bundles[i].RetrievedAt.After(when) {
			continue
		}

		reader, err := m.storage.GetReader(bundles[i].Hash)
		if err != nil {
			return nil, fmt.Errorf("getting reader: %w", err)
		}

		return buildFromReader(reader)
	}

	// Nothing retrieved at or before when; fall back to the oldest
	// bundle on hand rather than failing outright.
	reader, err := m.storage.GetReader(bundles[0].Hash)
	if err != nil {
		return nil, fmt.Errorf("getting reader: %w", err)
	}
	return buildFromReader(reader)
}

func buildFromReader(reader storage.BundleReader) (*Engine, error) {
	stops, err := reader.Stops()
	if err != nil {
		return nil, fmt.Errorf("reading stops: %w", err)
	}
	trips, err := reader.Trips()
	if err != nil {
		return nil, fmt.Errorf("reading trips: %w", err)
	}
	footpaths, err := reader.Footpaths()
	if err != nil {
		return nil, fmt.Errorf("reading footpaths: %w", err)
	}

	return Build(trips, stops, footpaths)
}

// refreshBundle downloads bundleID via source, parses it if it is new
// content, and writes it to storage keyed by content hash — the same
// "hash first, parse only if new" shape as the teacher's
// refreshStatic.
func (m *Manager) refreshBundle(ctx context.Context, bundleID string, source downloader.Downloader) (*storage.BundleMetadata, error) {
	body, err := source.Get(ctx, bundleID, nil, downloader.GetOptions{Timeout: 60 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("downloading: %w", err)
	}

	hash := fmt.Sprintf("%x", sha256.Sum256(body))

	existing, err := m.storage.ListBundles(storage.ListBundlesFilter{Hash: hash})
	if err != nil {
		return nil, fmt.Errorf("listing bundles: %w", err)
	}
	for _, b := range existing {
		if b.Source == bundleID {
			b.RetrievedAt = time.Now()
			if err := m.storage.WriteBundleMetadata(b); err != nil {
				return nil, fmt.Errorf("writing metadata: %w", err)
			}
			return b, nil
		}
	}

	stops, trips, footpaths, err := parseBundle(body)
	if err != nil {
		return nil, fmt.Errorf("parsing bundle: %w", err)
	}

	writer, err := m.storage.GetWriter(hash)
	if err != nil {
		return nil, fmt.Errorf("getting writer: %w", err)
	}
	for _, s := range stops {
		if err := writer.WriteStop(s); err != nil {
			return nil, fmt.Errorf("writing stop: %w", err)
		}
	}
	for _, t := range trips {
		if err := writer.WriteTrip(t); err != nil {
			return nil, fmt.Errorf("writing trip: %w", err)
		}
	}
	for _, f := range footpaths {
		if err := writer.WriteFootpath(f); err != nil {
			return nil, fmt.Errorf("writing footpath: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("closing writer: %w", err)
	}

	metadata := &storage.BundleMetadata{
		Source:      bundleID,
		Hash:        hash,
		RetrievedAt: time.Now(),
	}
	if err := m.storage.WriteBundleMetadata(metadata); err != nil {
		return nil, fmt.Errorf("writing metadata: %w", err)
	}

	return metadata, nil
}

// parseBundle unzips an archive holding one .MSN, one .MCA and
// optionally one .ALF file (and, optionally, station_coordinates.csv)
// and parses each.
func parseBundle(body []byte) ([]model.Stop, []model.Trip, []model.Footpath, error) {
	r, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("unzipping: %w", err)
	}

	var stops []model.Stop
	var trips []model.Trip
	var footpaths []model.Footpath
	var coordsBuf []byte

	for _, f := range r.File {
		name := strings.ToUpper(path.Base(f.Name))

		rc, err := f.Open()
		if err != nil {
			return nil, nil, nil, fmt.Errorf("opening %s: %w", f.Name, err)
		}

		switch {
		case strings.HasSuffix(name, ".MSN"):
			stops, err = parse.ParseMSN(rc)
		case strings.HasSuffix(name, ".MCA"):
			trips, err = parse.ParseMCA(rc)
		case strings.HasSuffix(name, ".ALF"):
			footpaths, err = parse.ParseALF(rc)
		case name == "STATION_COORDINATES.CSV":
			coordsBuf, err = io.ReadAll(rc)
		default:
			err = nil
		}

		closeErr := rc.Close()
		if err != nil {
			return nil, nil, nil, fmt.Errorf("parsing %s: %w", f.Name, err)
		}
		if closeErr != nil {
			return nil, nil, nil, fmt.Errorf("closing %s: %w", f.Name, closeErr)
		}
	}

	if stops == nil {
		return nil, nil, nil, fmt.Errorf("bundle missing .MSN file")
	}
	if trips == nil {
		return nil, nil, nil, fmt.Errorf("bundle missing .MCA file")
	}

	if coordsBuf != nil {
		coordMap, err := parse.ParseStationCoordinates(bytes.NewReader(coordsBuf))
		if err != nil {
			return nil, nil, nil, fmt.Errorf("parsing station coordinates: %w", err)
		}
		parse.AttachCoordinates(stops, coordMap)
	}

	return stops, trips, footpaths, nil
}
