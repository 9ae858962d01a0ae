// Copyright (c) 2026 Touring. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package storage

import (
	"context"
	"fmt"

	"github.com/5eus/touring/internal/platform/dberr"
	"github.com/5eus/touring/internal/platform/database/schema"
)

// # Cache Key Grammar (§4.A, §6 — bit-exact)

// SearchCacheKey composes the search cache key
// "<source_id>|search|<kind>|<normalized_query>".
func SearchCacheKey(sourceID, kind, normalizedQuery string) string {
	return fmt.Sprintf("%s|search|%s|%s", sourceID, kind, normalizedQuery)
}

// PagesCacheKey composes the pages cache key "all|pages|<chapter_id>".
func PagesCacheKey(chapterID string) string {
	return "all|pages|" + chapterID
}

/*
GetCache returns the cached payload for key, or ("", false) if there is
no row or the row has expired. Expired rows are never surfaced, matching
§4.A: "Cache read returns None if no row or expires_at ≤ now".

Parameters:
  - ctx: context.Context
  - key: string (bit-exact cache key, see [SearchCacheKey]/[PagesCacheKey])
  - now: int64 (epoch seconds; caller-supplied so callers can be tested
    deterministically)

Returns:
  - string: the cached payload
  - bool: whether a live (non-expired) entry was found
  - error: StorageError on driver failure
*/
func (s *Store) GetCache(ctx context.Context, key string, now int64) (string, bool, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1 AND %s > $2",
		schema.SearchCache.Payload, schema.SearchCache.Table,
		schema.SearchCache.Key, schema.SearchCache.ExpiresAt,
	)

	var payload string
	err := s.pool.QueryRow(ctx, query, key, now).Scan(&payload)
	if err != nil {
		if dberr.IsNotFound(err) {
			return "", false, nil
		}
		return "", false, dberr.Wrap(err, "get_cache")
	}
	return payload, true, nil
}

/*
PutCache inserts or replaces the cached payload for key.

Description: insert-or-replace keyed on key; expires_at may move
backward (caller-controlled), per §4.A.
*/
func (s *Store) PutCache(ctx context.Context, key, payload string, expiresAt int64) error {
	query := fmt.Sprintf(
		`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)
		 ON CONFLICT (%s) DO UPDATE SET %s = EXCLUDED.%s, %s = EXCLUDED.%s`,
		schema.SearchCache.Table,
		schema.SearchCache.Key, schema.SearchCache.Payload, schema.SearchCache.ExpiresAt,
		schema.SearchCache.Key,
		schema.SearchCache.Payload, schema.SearchCache.Payload,
		schema.SearchCache.ExpiresAt, schema.SearchCache.ExpiresAt,
	)

	_, err := s.pool.Exec(ctx, query, key, payload, expiresAt)
	return dberr.Wrap(err, "put_cache")
}

/*
ClearCachePrefix deletes every cache row whose key starts with prefix.
An empty prefix clears the entire table.

Returns:
  - int64: rows deleted
*/
func (s *Store) ClearCachePrefix(ctx context.Context, prefix string) (int64, error) {
	query := fmt.Sprintf("DELETE FROM %s WHERE strpos(%s, $1) = 1", schema.SearchCache.Table, schema.SearchCache.Key)
	result, err := s.pool.Exec(ctx, query, prefix)
	if err != nil {
		return 0, dberr.Wrap(err, "clear_cache_prefix")
	}
	return result.RowsAffected(), nil
}

/*
Vacuum deletes every expired cache row.

Description: the teacher's original source runs a literal SQLite VACUUM
here, a storage-engine compaction operation with no Postgres analogue
that returns a row count. This spec's contract for vacuum() is "remove
stale cache state", so the Postgres implementation instead performs the
expiry sweep directly.
*/
func (s *Store) Vacuum(ctx context.Context, now int64) (int64, error) {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s <= $1", schema.SearchCache.Table, schema.SearchCache.ExpiresAt)
	result, err := s.pool.Exec(ctx, query, now)
	if err != nil {
		return 0, dberr.Wrap(err, "vacuum")
	}
	return result.RowsAffected(), nil
}
