package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"maps-compat-service/internal/platform/obs"
)

// PGRevGeocodeCache is a Postgres-backed cache mapping rounded coordinate
// keys to resolved address labels.
type PGRevGeocodeCache struct {
	DB *sql.DB
}

func NewPGRevGeocodeCache(db *sql.DB) *PGRevGeocodeCache {
	return &PGRevGeocodeCache{DB: db}
}

// InitSchema creates the cache table when it does not exist yet.
func InitSchema(db *sql.DB) error {
	q := `
	CREATE TABLE IF NOT EXISTS revgeocode_cache (
		coord_key TEXT PRIMARY KEY,
		label     TEXT NOT NULL
	);
	`
	if _, err := db.Exec(q); err != nil {
		return fmt.Errorf("init schema: create revgeocode_cache table: %w", err)
	}
	return nil
}

// Fetch cached labels for the given coordinate keys.
func (s *PGRevGeocodeCache) GetMany(
	ctx context.Context,
	keys []string,
) (_ map[string]string, err error) {
	defer obs.Time(ctx, "revgeocode.cache.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("revgeocode cache: db is nil")
	}

	if len(keys) == 0 {
		return map[string]string{}, nil
	}

	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(keys))
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}

		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		uniq = append(uniq, k)
	}

	if len(uniq) == 0 {
		return map[string]string{}, nil
	}

	q := `
	SELECT coord_key, label
    FROM revgeocode_cache
    WHERE coord_key = ANY($1::text[]);
	`

	rows, err := s.DB.QueryContext(ctx, q, uniq)
	if err != nil {
		return nil, fmt.Errorf("get revgeocode cache: query revgeocode_cache table: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string, len(uniq))
	for rows.Next() {
		var key, label string
		if err := rows.Scan(&key, &label); err != nil {
			return nil, fmt.Errorf("get revgeocode cache: scan rows: %w", err)
		}
		out[key] = label
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get revgeocode cache: row iteration: %w", err)
	}

	return out, nil
}

// Store coordinate key -> label mappings in the cache.
func (s *PGRevGeocodeCache) PutMany(ctx context.Context, labels map[string]string) error {
	if s.DB == nil {
		return errors.New("revgeocode cache: db is nil")
	}

	if len(labels) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert revgeocode cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO revgeocode_cache (coord_key, label)
    VALUES ($1, $2)
	ON CONFLICT (coord_key) DO UPDATE
	SET label = EXCLUDED.label;
	`)
	if err != nil {
		return fmt.Errorf("insert revgeocode cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for key, label := range labels {
		if strings.TrimSpace(key) == "" {
			return fmt.Errorf("insert revgeocode cache: empty coordinate key")
		}

		if _, err := stmt.ExecContext(ctx, key, label); err != nil {
			return fmt.Errorf("insert revgeocode cache key=%q: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert revgeocode cache commit: %w", err)
	}

	return nil
}
