// Copyright (c) 2026 Touring. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package storage

import (
	"context"
	"fmt"

	"github.com/5eus/touring/internal/platform/database/schema"
	"github.com/5eus/touring/internal/platform/dberr"
)

/*
UpsertSource inserts or refreshes a row in the sources table.

Description: on conflict, every attribute except the identity key (id)
is updated and updated_at is stamped to now, per §4.A's upsert contract.
*/
func (s *Store) UpsertSource(ctx context.Context, src SourceInsert) error {
	query := fmt.Sprintf(
		`INSERT INTO %s (%s, %s) VALUES ($1, $2)
		 ON CONFLICT (%s) DO UPDATE SET %s = EXCLUDED.%s, %s = NOW()`,
		schema.Sources.Table, schema.Sources.ID, schema.Sources.Version,
		schema.Sources.ID, schema.Sources.Version, schema.Sources.Version,
		schema.Sources.UpdatedAt,
	)

	_, err := s.pool.Exec(ctx, query, src.ID, src.Version)
	return dberr.Wrap(err, "upsert_source")
}

/*
UpsertSeries inserts or refreshes a canonical series row.

Description: on conflict, every non-key attribute is replaced with the
caller's values and updated_at is stamped to now.
*/
func (s *Store) UpsertSeries(ctx context.Context, series SeriesInsert) error {
	query := fmt.Sprintf(
		`INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (%s) DO UPDATE SET
		   %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s,
		   %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s,
		   %s = EXCLUDED.%s, %s = NOW()`,
		schema.Series.Table,
		schema.Series.ID, schema.Series.Kind, schema.Series.Title, schema.Series.AltTitles,
		schema.Series.Description, schema.Series.CoverURL, schema.Series.Tags, schema.Series.Status,
		schema.Series.ID,
		schema.Series.Kind, schema.Series.Kind,
		schema.Series.Title, schema.Series.Title,
		schema.Series.AltTitles, schema.Series.AltTitles,
		schema.Series.Description, schema.Series.Description,
		schema.Series.CoverURL, schema.Series.CoverURL,
		schema.Series.Tags, schema.Series.Tags,
		schema.Series.Status, schema.Series.Status,
		schema.Series.UpdatedAt,
	)

	_, err := s.pool.Exec(ctx, query,
		series.ID, series.Kind, series.Title, series.AltTitles,
		series.Description, series.CoverURL, series.Tags, series.Status,
	)
	return dberr.Wrap(err, "upsert_series")
}

/*
UpsertSeriesSource links a series to one of its plugin-sourced identities.

Description: on conflict of the (series_id, source_id, external_id)
key, only last_synced_at is refreshed — this mapping is otherwise
immutable once created.
*/
func (s *Store) UpsertSeriesSource(ctx context.Context, link SeriesSourceInsert) error {
	query := fmt.Sprintf(
		`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)
		 ON CONFLICT (%s, %s, %s) DO UPDATE SET %s = NOW()`,
		schema.SeriesSources.Table,
		schema.SeriesSources.SeriesID, schema.SeriesSources.SourceID, schema.SeriesSources.ExternalID,
		schema.SeriesSources.SeriesID, schema.SeriesSources.SourceID, schema.SeriesSources.ExternalID,
		schema.SeriesSources.LastSyncedAt,
	)

	_, err := s.pool.Exec(ctx, query, link.SeriesID, link.SourceID, link.ExternalID)
	return dberr.Wrap(err, "upsert_series_source")
}

/*
FindSeriesIDBySourceExternal resolves the canonical series id for a
(source, external_id) pair.

Returns:
  - string: the series id, or "" if unmapped
  - bool: whether a mapping was found
*/
func (s *Store) FindSeriesIDBySourceExternal(ctx context.Context, sourceID, externalID string) (string, bool, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1 AND %s = $2 LIMIT 1",
		schema.SeriesSources.SeriesID, schema.SeriesSources.Table,
		schema.SeriesSources.SourceID, schema.SeriesSources.ExternalID,
	)

	var seriesID string
	err := s.pool.QueryRow(ctx, query, sourceID, externalID).Scan(&seriesID)
	if err != nil {
		if dberr.IsNotFound(err) {
			return "", false, nil
		}
		return "", false, dberr.Wrap(err, "find_series_id_by_source_external")
	}
	return seriesID, true, nil
}

/*
ListSeries returns every series, optionally filtered by kind, ordered by
title for stable paginated listing.
*/
func (s *Store) ListSeries(ctx context.Context, kind string, limit, offset int) ([]SeriesSummary, error) {
	var (
		query string
		args  []any
	)

	base := fmt.Sprintf("SELECT %s, %s FROM %s", schema.Series.ID, schema.Series.Title, schema.Series.Table)
	if kind != "" {
		query = base + fmt.Sprintf(" WHERE %s = $1 ORDER BY %s LIMIT $2 OFFSET $3", schema.Series.Kind, schema.Series.Title)
		args = []any{kind, limit, offset}
	} else {
		query = base + fmt.Sprintf(" ORDER BY %s LIMIT $1 OFFSET $2", schema.Series.Title)
		args = []any{limit, offset}
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_series")
	}
	defer rows.Close()

	var out []SeriesSummary
	for rows.Next() {
		var row SeriesSummary
		if err := rows.Scan(&row.ID, &row.Title); err != nil {
			return nil, dberr.Wrap(err, "list_series")
		}
		out = append(out, row)
	}
	return out, nil
}

/*
DeleteSeries removes a series and, through FK cascade, every dependent
chapter, episode, stream, chapter image, pref, and progress row.

Returns:
  - int64: rows deleted from the series table itself (1 or 0)
*/
func (s *Store) DeleteSeries(ctx context.Context, seriesID string) (int64, error) {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.Series.Table, schema.Series.ID)
	result, err := s.pool.Exec(ctx, query, seriesID)
	if err != nil {
		return 0, dberr.Wrap(err, "delete_series")
	}
	return result.RowsAffected(), nil
}
