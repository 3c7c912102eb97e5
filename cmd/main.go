package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jwhandley/railcsa"
	"github.com/jwhandley/railcsa/downloader"
	"github.com/jwhandley/railcsa/storage"
)

var rootCmd = &cobra.Command{
	Use:          "railcsa",
	Short:        "UK rail departure-isochrone tool",
	Long:         "Computes earliest-arrival reachability from a timetable bundle",
	SilenceUsage: true,
}

var (
	bundleURL string
	headers   []string
	cacheDir  string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&bundleURL, "bundle-url", "", "", "Timetable bundle URL or filesystem path")
	rootCmd.PersistentFlags().StringSliceVarP(&headers, "header", "", []string{}, "HTTP header (key:value), may be repeated")
	rootCmd.PersistentFlags().StringVarP(&cacheDir, "cache-dir", "", ".", "Directory holding the on-disk bundle cache")
	rootCmd.AddCommand(isochroneCmd)
	rootCmd.AddCommand(stopsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func parseHeaders(raw []string) (map[string]string, error) {
	parsed := map[string]string{}
	for _, h := range raw {
		parts := strings.SplitN(h, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("'%s' is not on form <key>:<value>", h)
		}
		parsed[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	return parsed, nil
}

// LoadEngine builds an Engine from bundleURL, using an on-disk SQLite
// cache so repeated CLI invocations don't re-download or re-parse.
func LoadEngine(when time.Time) (*railcsa.Engine, error) {
	if bundleURL == "" {
		return nil, fmt.Errorf("--bundle-url is required")
	}

	hdrs, err := parseHeaders(headers)
	if err != nil {
		return nil, fmt.Errorf("invalid header: %w", err)
	}

	store, err := storage.NewSQLiteStorage(storage.SQLiteConfig{OnDisk: true, Directory: cacheDir})
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}

	manager := railcsa.NewManager(store)

	var source downloader.Downloader
	if strings.HasPrefix(bundleURL, "http://") || strings.HasPrefix(bundleURL, "https://") {
		source = httpDownloader{headers: hdrs}
	} else {
		source = localFileDownloader{}
	}

	return manager.LoadEngine(context.Background(), bundleURL, source, when)
}

// httpDownloader wraps downloader.HTTPGet, attaching the CLI's
// configured headers to every request.
type httpDownloader struct {
	headers map[string]string
}

func (d httpDownloader) Get(ctx context.Context, url string, _ map[string]string, options downloader.GetOptions) ([]byte, error) {
	return downloader.HTTPGet(ctx, url, d.headers, options)
}

// localFileDownloader treats bundleURL as a filesystem path, for
// working from a bundle already on disk.
type localFileDownloader struct{}

func (d localFileDownloader) Get(ctx context.Context, path string, _ map[string]string, _ downloader.GetOptions) ([]byte, error) {
	return os.ReadFile(path)
}
