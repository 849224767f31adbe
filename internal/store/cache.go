package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"

	"github.com/theirongolddev/lifeplan/internal/projection"

	_ "modernc.org/sqlite" // register sqlite driver
)

// SQLiteCache persists solver answers in a local SQLite file.
type SQLiteCache struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// Open opens or creates the cache database at the given path. Entries older
// than ttl are ignored on read; a zero ttl keeps them forever.
func Open(dbPath string, ttl time.Duration) (*SQLiteCache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteCache{db: db, ttl: ttl, now: time.Now}, nil
}

// Close closes the cache database.
func (c *SQLiteCache) Close() error {
	return c.db.Close()
}

// Get returns a fresh cached answer for key.
func (c *SQLiteCache) Get(ctx context.Context, key string) (projection.Solution, bool, error) {
	var sol projection.Solution
	var payload, created string

	err := c.db.QueryRowContext(ctx,
		"SELECT payload, created_at FROM solver_results WHERE cache_key = ?", key,
	).Scan(&payload, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return sol, false, nil
	}
	if err != nil {
		return sol, false, err
	}

	if c.ttl > 0 {
		at, err := time.Parse(time.RFC3339, created)
		if err != nil || c.now().Sub(at) > c.ttl {
			return sol, false, nil
		}
	}

	if err := json.Unmarshal([]byte(payload), &sol); err != nil {
		return sol, false, fmt.Errorf("decoding cached solution: %w", err)
	}
	return sol, true, nil
}

// Put stores an answer, replacing any earlier one for key.
func (c *SQLiteCache) Put(ctx context.Context, key string, sol projection.Solution) error {
	payload, err := json.Marshal(sol)
	if err != nil {
		return fmt.Errorf("encoding solution: %w", err)
	}

	reached := 0
	if sol.Reached {
		reached = 1
	}

	_, err = c.db.ExecContext(ctx, `INSERT OR REPLACE INTO solver_results
		(cache_key, monthly_saving, reached, payload, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		key, sol.MonthlySaving, reached, string(payload), c.now().UTC().Format(time.RFC3339),
	)
	return err
}

// Prune deletes entries older than the cache ttl and returns how many went.
func (c *SQLiteCache) Prune(ctx context.Context) (int64, error) {
	if c.ttl <= 0 {
		return 0, nil
	}
	cutoff := c.now().Add(-c.ttl).UTC().Format(time.RFC3339)
	res, err := c.db.ExecContext(ctx, "DELETE FROM solver_results WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Count returns the number of cached answers.
func (c *SQLiteCache) Count(ctx context.Context) (int, error) {
	var count int
	err := c.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM solver_results").Scan(&count)
	return count, err
}
