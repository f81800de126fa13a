package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Cache persists the last known catalog snapshot to SQLite so a restarted
// process can serve it before the first successful schema refresh.
type Cache struct {
	db *sql.DB
}

// OpenCache opens (and if needed initializes) the snapshot cache at path.
// Use ":memory:" for an ephemeral cache.
func OpenCache(path string) (*Cache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog cache: %w", err)
	}
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS catalog_snapshot (
			resource_type TEXT PRIMARY KEY,
			attributes TEXT NOT NULL,
			refreshed_at INTEGER NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing catalog cache: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Save replaces the cached snapshot with the given catalog.
func (c *Cache) Save(ctx context.Context, cat *Catalog) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM catalog_snapshot`); err != nil {
		return err
	}
	now := time.Now().UnixMilli()
	for rt, descs := range cat.Attributes() {
		payload, err := json.Marshal(descs)
		if err != nil {
			return fmt.Errorf("encoding %s attributes: %w", rt, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO catalog_snapshot (resource_type, attributes, refreshed_at)
			VALUES (?, ?, ?)
		`, string(rt), string(payload), now)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Load reads the cached snapshot. Returns (nil, nil) when the cache is empty.
func (c *Cache) Load(ctx context.Context) (*Catalog, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT resource_type, attributes FROM catalog_snapshot`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attrs := make(map[ResourceType][]AttributeDescriptor)
	for rows.Next() {
		var rt, payload string
		if err := rows.Scan(&rt, &payload); err != nil {
			return nil, err
		}
		var descs []AttributeDescriptor
		if err := json.Unmarshal([]byte(payload), &descs); err != nil {
			return nil, fmt.Errorf("decoding cached %s attributes: %w", rt, err)
		}
		attrs[ResourceType(rt)] = descs
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(attrs) == 0 {
		return nil, nil
	}
	return New(attrs), nil
}
