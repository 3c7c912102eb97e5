package downloader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// GetOptions tunes a single bundle fetch. Cache/CacheTTL are unused by
// HTTPGet itself; they exist for Downloader implementations that
// layer their own caching in front of it (railcsa's own caching lives
// in the storage package instead, keyed by content hash).
type GetOptions struct {
	MaxSize  int
	Timeout  time.Duration
	Cache    bool
	CacheTTL time.Duration
}

// Downloader fetches a timetable bundle's raw bytes from wherever it
// lives, local file or remote URL. The Manager treats bundleID as an
// opaque key and leaves its interpretation entirely to the Downloader.
type Downloader interface {
	Get(ctx context.Context, url string, headers map[string]string, options GetOptions) ([]byte, error)
}

// HTTPGet performs a single uncached HTTP fetch. It's the building
// block httpDownloader (cmd/main.go) wraps to inject request headers.
func HTTPGet(ctx context.Context, url string, headers map[string]string, options GetOptions) ([]byte, error) {
	client := &http.Client{
		Timeout: options.Timeout,
	}

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	for k, v := range headers {
		req.Header.Add(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	var reader io.Reader = resp.Body
	if options.MaxSize > 0 {
		reader = io.LimitReader(resp.Body, int64(options.MaxSize))
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}

	return body, nil
}
