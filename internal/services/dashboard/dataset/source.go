package dataset

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/insightboard/internal/platform/timeouts"
	"github.com/louisbranch/insightboard/internal/services/dashboard/storage"
)

// DefaultBaseURL is the public repository of example datasets.
const DefaultBaseURL = "https://raw.githubusercontent.com/mwaskom/seaborn-data/master"

// maxDatasetBytes caps one downloaded CSV.
const maxDatasetBytes = 16 << 20

// Source fetches the raw CSV content of a named dataset.
type Source interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// Origin is implemented by sources that can name where their data comes from.
type Origin interface {
	Origin() string
}

// RemoteSource downloads <BaseURL>/<name>.csv over HTTP.
type RemoteSource struct {
	BaseURL string
	Client  *http.Client
}

// NewRemoteSource returns a source for baseURL, or DefaultBaseURL when blank.
func NewRemoteSource(baseURL string) *RemoteSource {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &RemoteSource{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: timeouts.DatasetFetch},
	}
}

// Origin returns the base URL.
func (s *RemoteSource) Origin() string { return s.BaseURL }

// Fetch downloads one dataset. Any non-2xx status is an error.
func (s *RemoteSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: timeouts.DatasetFetch}
	}
	url := strings.TrimRight(s.BaseURL, "/") + "/" + name + ".csv"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", url, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("get %s: unexpected status %s", url, resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDatasetBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	if len(data) > maxDatasetBytes {
		return nil, fmt.Errorf("get %s: body exceeds %d bytes", url, maxDatasetBytes)
	}
	return data, nil
}

// DirSource reads <name>.csv from a filesystem.
type DirSource struct {
	FS fs.FS
	// Label names the directory in logs and cache keys.
	Label string
}

// Origin returns the directory label.
func (s DirSource) Origin() string { return "dir:" + s.Label }

// Fetch reads one dataset file.
func (s DirSource) Fetch(_ context.Context, name string) ([]byte, error) {
	if s.FS == nil {
		return nil, fmt.Errorf("dataset directory is not configured")
	}
	data, err := fs.ReadFile(s.FS, name+".csv")
	if err != nil {
		return nil, fmt.Errorf("read %s.csv: %w", name, err)
	}
	return data, nil
}

// CachedSource reads through a dataset cache. Cache failures are logged and
// never fail a fetch the underlying source can satisfy.
type CachedSource struct {
	Source Source
	Cache  storage.DatasetCache
	Now    func() time.Time
}

// Origin returns the underlying source's origin.
func (s CachedSource) Origin() string { return originOf(s.Source) }

// Fetch returns cached content when present, otherwise fetches and stores it.
func (s CachedSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	if s.Source == nil {
		return nil, fmt.Errorf("cached source has no underlying source")
	}
	if s.Cache == nil {
		return s.Source.Fetch(ctx, name)
	}
	origin := originOf(s.Source)

	record, err := s.Cache.GetDataset(ctx, origin, name)
	switch {
	case err == nil:
		log.Printf("dataset cache hit name=%s fetched_at=%s", name, record.FetchedAt.Format(time.RFC3339))
		return record.Content, nil
	case errors.Is(err, storage.ErrNotFound):
	default:
		log.Printf("dataset cache read failed name=%s err=%v", name, err)
	}

	data, err := s.Source.Fetch(ctx, name)
	if err != nil {
		return nil, err
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	sum := sha256.Sum256(data)
	if err := s.Cache.PutDataset(ctx, storage.DatasetRecord{
		Origin:    origin,
		Name:      name,
		Content:   data,
		SHA256:    hex.EncodeToString(sum[:]),
		FetchedAt: now().UTC(),
	}); err != nil {
		log.Printf("dataset cache write failed name=%s err=%v", name, err)
	}
	return data, nil
}

func originOf(src Source) string {
	if o, ok := src.(Origin); ok {
		return o.Origin()
	}
	return fmt.Sprintf("%T", src)
}
