package synthcache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"serifu/internal/preset"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; mismatched databases are rejected rather than migrated.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match
// the expected version.
var ErrSchemaMismatch = errors.New("synthcache schema version mismatch")

// Entry records one cached synthesis result.
type Entry struct {
	Key        string
	Speaker    string
	Path       string
	Samples    int64
	SampleRate int
	CreatedAt  time.Time
}

// Store manages cache persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the cache database.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("synthcache path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Key digests the speaker, dialogue text, and every preset field that
// influences the produced audio.
func Key(text string, p preset.Preset) string {
	h := sha256.New()
	for _, part := range []string{
		p.Speaker,
		text,
		p.CommandTemplate,
		p.VoiceID,
		strconv.FormatFloat(p.Speed, 'f', -1, 64),
		strconv.FormatFloat(p.Volume, 'f', -1, 64),
		strconv.FormatBool(p.UseTextFile),
		p.TextFileEncoding,
		p.TextFileSuffix,
	} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Lookup fetches a cached entry. Hits whose artifact file no longer exists
// are dropped from the cache and reported as misses.
func (s *Store) Lookup(ctx context.Context, key string) (*Entry, bool, error) {
	row := s.db.QueryRowContext(
		ctx,
		"SELECT key, speaker, path, samples, sample_rate, created_at FROM clips WHERE key = ?",
		key,
	)
	var entry Entry
	var createdAt string
	err := row.Scan(&entry.Key, &entry.Speaker, &entry.Path, &entry.Samples, &entry.SampleRate, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("lookup cache entry: %w", err)
	}
	if parsed, parseErr := time.Parse(time.RFC3339Nano, createdAt); parseErr == nil {
		entry.CreatedAt = parsed
	}

	if _, statErr := os.Stat(entry.Path); statErr != nil {
		if _, delErr := s.db.ExecContext(ctx, "DELETE FROM clips WHERE key = ?", key); delErr != nil {
			return nil, false, fmt.Errorf("evict stale cache entry: %w", delErr)
		}
		return nil, false, nil
	}
	return &entry, true, nil
}

// Record upserts a synthesis result.
func (s *Store) Record(ctx context.Context, entry Entry) error {
	if entry.Key == "" {
		return errors.New("cache entry key required")
	}
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO clips (key, speaker, path, samples, sample_rate, created_at)
         VALUES (?, ?, ?, ?, ?, ?)
         ON CONFLICT(key) DO UPDATE SET
             speaker = excluded.speaker,
             path = excluded.path,
             samples = excluded.samples,
             sample_rate = excluded.sample_rate,
             created_at = excluded.created_at`,
		entry.Key,
		entry.Speaker,
		entry.Path,
		entry.Samples,
		entry.SampleRate,
		createdAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record cache entry: %w", err)
	}
	return nil
}

// Stats summarizes cache contents.
type Stats struct {
	Entries      int64
	TotalSamples int64
}

// Summary returns aggregate counts for the cache.
func (s *Store) Summary(ctx context.Context) (Stats, error) {
	row := s.db.QueryRowContext(ctx, "SELECT COUNT(1), COALESCE(SUM(samples), 0) FROM clips")
	var stats Stats
	if err := row.Scan(&stats.Entries, &stats.TotalSamples); err != nil {
		return Stats{}, fmt.Errorf("summarize cache: %w", err)
	}
	return stats, nil
}

// Clear removes every cached entry.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM clips"); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	return nil
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		return nil
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to rebuild)", ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}
