package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a dataset has not been cached yet.
var ErrNotFound = errors.New("dataset not cached")

// DatasetRecord is one cached dataset download.
type DatasetRecord struct {
	// Origin identifies where the content came from, so caches built from
	// different repositories never mix.
	Origin    string
	Name      string
	Content   []byte
	SHA256    string
	FetchedAt time.Time
}

// DatasetCache reads and writes cached dataset downloads.
type DatasetCache interface {
	GetDataset(ctx context.Context, origin, name string) (DatasetRecord, error)
	PutDataset(ctx context.Context, record DatasetRecord) error
}

// Store is a composite interface for dashboard storage concerns.
type Store interface {
	DatasetCache
	Close() error
}
