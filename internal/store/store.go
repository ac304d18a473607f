// Package store provides a SQLite-backed cache for AI responses. Identical
// prompts against the same provider and model hit the cache instead of the
// network until the entry goes stale.
package store

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite" // register sqlite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS response_cache (
	key      TEXT PRIMARY KEY,
	result   TEXT NOT NULL,
	created  INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_response_created ON response_cache(created);
`

// Cache is a SQLite-backed response cache.
type Cache struct {
	mu  sync.Mutex
	db  *sql.DB
	ttl time.Duration
}

// Open creates or opens a cache database at the given path.
// ttl controls how long entries remain fresh.
func Open(dbPath string, ttl time.Duration) (*Cache, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}

	// SQLite pragmas for performance.
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	c := &Cache{db: db, ttl: ttl}
	c.purgeStale()
	return c, nil
}

// Close closes the database. Safe on a nil receiver.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.db.Close()
}

// Key derives the cache key for a prompt sent to provider/model.
func Key(providerName, model, prompt string) string {
	sum := sha256.Sum256([]byte(providerName + "\x00" + model + "\x00" + prompt))
	return hex.EncodeToString(sum[:])
}

// Get returns a cached response, or "" on miss or stale entry.
// Safe to call on a nil receiver (returns miss).
func (c *Cache) Get(key string) (string, bool) {
	if c == nil {
		return "", false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := time.Now().Add(-c.ttl).Unix()
	var result string
	err := c.db.QueryRow(
		"SELECT result FROM response_cache WHERE key = ? AND created > ?",
		key, cutoff,
	).Scan(&result)
	if err != nil {
		return "", false
	}
	return result, true
}

// Set stores a response. No-op on nil receiver.
func (c *Cache) Set(key, result string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.db.Exec(
		"INSERT OR REPLACE INTO response_cache (key, result, created) VALUES (?, ?, ?)",
		key, result, time.Now().Unix(),
	)
	if err != nil {
		log.Warn().Err(err).Msg("failed to cache response")
	}
}

// Clear removes every entry. No-op on nil receiver.
func (c *Cache) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.db.Exec("DELETE FROM response_cache"); err != nil {
		log.Warn().Err(err).Msg("failed to clear response cache")
	}
}

// Stats reports the number of live entries.
func (c *Cache) Stats() (int, error) {
	if c == nil {
		return 0, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	var n int
	err := c.db.QueryRow("SELECT COUNT(*) FROM response_cache").Scan(&n)
	return n, err
}

// purgeStale deletes entries past their TTL. Best effort.
func (c *Cache) purgeStale() {
	cutoff := time.Now().Add(-c.ttl).Unix()
	if _, err := c.db.Exec("DELETE FROM response_cache WHERE created <= ?", cutoff); err != nil {
		log.Warn().Err(err).Msg("failed to purge stale cache entries")
	}
}
