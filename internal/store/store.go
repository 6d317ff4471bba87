// Package store persists reading positions in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"glide/internal/eventbus"
)

const schema = `
CREATE TABLE IF NOT EXISTS positions (
	path       TEXT PRIMARY KEY,
	offset_px  REAL NOT NULL,
	updated_at INTEGER NOT NULL
);
`

// saveTimeout bounds a position write triggered by an event.
const saveTimeout = 2 * time.Second

// Store remembers the last scroll offset per document.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens (creating if needed) the database at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	dsn := cleanPath +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// SavePosition records offset for the document at path.
func (s *Store) SavePosition(ctx context.Context, path string, offset float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if path == "" {
		return fmt.Errorf("document path is required")
	}
	if offset < 0 {
		offset = 0
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO positions (path, offset_px, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET offset_px = excluded.offset_px, updated_at = excluded.updated_at`,
		path, offset, s.now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save position: %w", err)
	}
	return nil
}

// LoadPosition returns the saved offset for path. found is false when the
// document has never been saved.
func (s *Store) LoadPosition(ctx context.Context, path string) (offset float64, found bool, err error) {
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT offset_px FROM positions WHERE path = ?`, path)
	if err := row.Scan(&offset); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("load position: %w", err)
	}
	return offset, true, nil
}

// DeletePosition forgets path.
func (s *Store) DeletePosition(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM positions WHERE path = ?`, path); err != nil {
		return fmt.Errorf("delete position: %w", err)
	}
	return nil
}

// Record saves offset for path, or forgets path when the reader is back at
// the top of the document.
func (s *Store) Record(ctx context.Context, path string, offset float64) error {
	if offset <= 0 {
		return s.DeletePosition(ctx, path)
	}
	return s.SavePosition(ctx, path, offset)
}

// Track records the offset carried by every ScrollSettledEvent. The bus
// delivers to a subscriber in publish order, so the last settled offset is
// the one that sticks. The returned function unsubscribes.
func (s *Store) Track(bus eventbus.EventBus, log *slog.Logger) func() {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	log = log.With("component", "position-store")

	return bus.Subscribe(eventbus.EventScrollSettled, func(e eventbus.DomainEvent) {
		settled, ok := e.(eventbus.ScrollSettledEvent)
		if !ok || settled.Path == "" {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		if err := s.Record(ctx, settled.Path, settled.Offset); err != nil {
			log.Warn("failed to save reading position", "path", settled.Path, "error", err)
		}
	})
}
