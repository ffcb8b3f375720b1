package sqlite

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/insightboard/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/insightboard/internal/services/dashboard/storage"
	"github.com/louisbranch/insightboard/internal/services/dashboard/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

const timeFormat = time.RFC3339Nano

// Store provides a SQLite-backed dataset cache.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens a SQLite store at the provided path and applies migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	applied, err := sqlitemigrate.Apply(context.Background(), sqlDB, migrations.FS)
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	for _, name := range applied {
		log.Printf("dataset cache migration applied name=%s path=%s", name, cleanPath)
	}

	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// GetDataset returns the cached content for origin/name. A record whose
// checksum no longer matches its content is reported as not found.
func (s *Store) GetDataset(ctx context.Context, origin, name string) (storage.DatasetRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.DatasetRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.DatasetRecord{}, fmt.Errorf("storage is not configured")
	}

	var (
		record    storage.DatasetRecord
		fetchedAt string
	)
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT origin, name, content, sha256, fetched_at FROM datasets WHERE origin = ? AND name = ?`,
		origin, name,
	).Scan(&record.Origin, &record.Name, &record.Content, &record.SHA256, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.DatasetRecord{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.DatasetRecord{}, fmt.Errorf("get dataset %s: %w", name, err)
	}
	if checksum(record.Content) != record.SHA256 {
		return storage.DatasetRecord{}, storage.ErrNotFound
	}
	record.FetchedAt, err = time.Parse(timeFormat, fetchedAt)
	if err != nil {
		return storage.DatasetRecord{}, fmt.Errorf("parse fetched_at for %s: %w", name, err)
	}
	return record, nil
}

// PutDataset stores or replaces a cached dataset. The checksum and fetch time
// are filled in when left empty.
func (s *Store) PutDataset(ctx context.Context, record storage.DatasetRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(record.Name) == "" {
		return fmt.Errorf("dataset name is required")
	}
	if record.SHA256 == "" {
		record.SHA256 = checksum(record.Content)
	}
	if record.FetchedAt.IsZero() {
		record.FetchedAt = s.now().UTC()
	}
	if record.Content == nil {
		record.Content = []byte{}
	}

	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO datasets (origin, name, content, sha256, fetched_at) VALUES (?, ?, ?, ?, ?)
ON CONFLICT(origin, name) DO UPDATE SET content = excluded.content, sha256 = excluded.sha256, fetched_at = excluded.fetched_at`,
		record.Origin, record.Name, record.Content, record.SHA256, record.FetchedAt.UTC().Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("put dataset %s: %w", record.Name, err)
	}
	return nil
}

func checksum(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

var _ storage.Store = (*Store)(nil)
