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
UpsertChapter inserts or refreshes a chapter (Unit) row.

Description: unique on (series_id, source_id, external_id); on
conflict every non-key attribute is replaced and updated_at stamped to
now, per §4.A and §3's Chapter/Episode uniqueness invariant.
*/
func (s *Store) UpsertChapter(ctx context.Context, c ChapterInsert) error {
	query := fmt.Sprintf(
		`INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 ON CONFLICT (%s, %s, %s) DO UPDATE SET
		   %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s,
		   %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s,
		   %s = NOW()`,
		schema.Chapters.Table,
		schema.Chapters.ID, schema.Chapters.SeriesID, schema.Chapters.SourceID, schema.Chapters.ExternalID,
		schema.Chapters.NumberText, schema.Chapters.NumberNum, schema.Chapters.Title,
		schema.Chapters.Lang, schema.Chapters.Group, schema.Chapters.UploadGroup, schema.Chapters.PublishedAt,
		schema.Chapters.SeriesID, schema.Chapters.SourceID, schema.Chapters.ExternalID,
		schema.Chapters.NumberText, schema.Chapters.NumberText,
		schema.Chapters.NumberNum, schema.Chapters.NumberNum,
		schema.Chapters.Title, schema.Chapters.Title,
		schema.Chapters.Lang, schema.Chapters.Lang,
		schema.Chapters.Group, schema.Chapters.Group,
		schema.Chapters.UploadGroup, schema.Chapters.UploadGroup,
		schema.Chapters.PublishedAt, schema.Chapters.PublishedAt,
		schema.Chapters.UpdatedAt,
	)

	_, err := s.pool.Exec(ctx, query,
		c.ID, c.SeriesID, c.SourceID, c.ExternalID,
		c.NumberText, c.NumberNum, c.Title, c.Lang, c.Group, c.UploadGroup, c.PublishedAt,
	)
	return dberr.Wrap(err, "upsert_chapter")
}

// UpsertEpisode inserts or refreshes an episode (Unit) row. Same
// conflict-resolution contract as [Store.UpsertChapter].
func (s *Store) UpsertEpisode(ctx context.Context, e EpisodeInsert) error {
	query := fmt.Sprintf(
		`INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 ON CONFLICT (%s, %s, %s) DO UPDATE SET
		   %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s,
		   %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s,
		   %s = NOW()`,
		schema.Episodes.Table,
		schema.Episodes.ID, schema.Episodes.SeriesID, schema.Episodes.SourceID, schema.Episodes.ExternalID,
		schema.Episodes.NumberText, schema.Episodes.NumberNum, schema.Episodes.Title,
		schema.Episodes.Lang, schema.Episodes.Season, schema.Episodes.PublishedAt, schema.Episodes.UploadGroup,
		schema.Episodes.SeriesID, schema.Episodes.SourceID, schema.Episodes.ExternalID,
		schema.Episodes.NumberText, schema.Episodes.NumberText,
		schema.Episodes.NumberNum, schema.Episodes.NumberNum,
		schema.Episodes.Title, schema.Episodes.Title,
		schema.Episodes.Lang, schema.Episodes.Lang,
		schema.Episodes.Season, schema.Episodes.Season,
		schema.Episodes.PublishedAt, schema.Episodes.PublishedAt,
		schema.Episodes.UploadGroup, schema.Episodes.UploadGroup,
		schema.Episodes.UpdatedAt,
	)

	_, err := s.pool.Exec(ctx, query,
		e.ID, e.SeriesID, e.SourceID, e.ExternalID,
		e.NumberText, e.NumberNum, e.Title, e.Lang, e.Season, e.PublishedAt, e.UploadGroup,
	)
	return dberr.Wrap(err, "upsert_episode")
}

// FindChapterIDByMapping resolves the canonical chapter id for an
// already-known (series_id, source_id, external_id) triple.
func (s *Store) FindChapterIDByMapping(ctx context.Context, seriesID, sourceID, externalID string) (string, bool, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1 AND %s = $2 AND %s = $3 LIMIT 1",
		schema.Chapters.ID, schema.Chapters.Table,
		schema.Chapters.SeriesID, schema.Chapters.SourceID, schema.Chapters.ExternalID,
	)

	var id string
	err := s.pool.QueryRow(ctx, query, seriesID, sourceID, externalID).Scan(&id)
	if err != nil {
		if dberr.IsNotFound(err) {
			return "", false, nil
		}
		return "", false, dberr.Wrap(err, "find_chapter_id_by_mapping")
	}
	return id, true, nil
}

// FindEpisodeIDByMapping resolves the canonical episode id for an
// already-known (series_id, source_id, external_id) triple.
func (s *Store) FindEpisodeIDByMapping(ctx context.Context, seriesID, sourceID, externalID string) (string, bool, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1 AND %s = $2 AND %s = $3 LIMIT 1",
		schema.Episodes.ID, schema.Episodes.Table,
		schema.Episodes.SeriesID, schema.Episodes.SourceID, schema.Episodes.ExternalID,
	)

	var id string
	err := s.pool.QueryRow(ctx, query, seriesID, sourceID, externalID).Scan(&id)
	if err != nil {
		if dberr.IsNotFound(err) {
			return "", false, nil
		}
		return "", false, dberr.Wrap(err, "find_episode_id_by_mapping")
	}
	return id, true, nil
}

// FindEpisodeIDBySourceExternal resolves the canonical episode id for a
// (source_id, external_id) pair, independent of series.
func (s *Store) FindEpisodeIDBySourceExternal(ctx context.Context, sourceID, externalID string) (string, bool, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1 AND %s = $2 LIMIT 1",
		schema.Episodes.ID, schema.Episodes.Table,
		schema.Episodes.SourceID, schema.Episodes.ExternalID,
	)

	var id string
	err := s.pool.QueryRow(ctx, query, sourceID, externalID).Scan(&id)
	if err != nil {
		if dberr.IsNotFound(err) {
			return "", false, nil
		}
		return "", false, dberr.Wrap(err, "find_episode_id_by_source_external")
	}
	return id, true, nil
}

/*
FindChapterIdentity resolves a chapter key — which may be either the
canonical id or a plugin's external id — to its (canonical_id,
series_id) pair.

Description: tries an id match first, then falls back to an
external_id match, per §4.E's dual-id resolution rule. Returns found =
false if neither matches.
*/
func (s *Store) FindChapterIdentity(ctx context.Context, key string) (canonicalID, seriesID string, found bool, err error) {
	byID := fmt.Sprintf(
		"SELECT %s, %s FROM %s WHERE %s = $1 LIMIT 1",
		schema.Chapters.ID, schema.Chapters.SeriesID, schema.Chapters.Table, schema.Chapters.ID,
	)
	if scanErr := s.pool.QueryRow(ctx, byID, key).Scan(&canonicalID, &seriesID); scanErr == nil {
		return canonicalID, seriesID, true, nil
	} else if !dberr.IsNotFound(scanErr) {
		return "", "", false, dberr.Wrap(scanErr, "find_chapter_identity")
	}

	byExternal := fmt.Sprintf(
		"SELECT %s, %s FROM %s WHERE %s = $1 LIMIT 1",
		schema.Chapters.ID, schema.Chapters.SeriesID, schema.Chapters.Table, schema.Chapters.ExternalID,
	)
	if scanErr := s.pool.QueryRow(ctx, byExternal, key).Scan(&canonicalID, &seriesID); scanErr == nil {
		return canonicalID, seriesID, true, nil
	} else if dberr.IsNotFound(scanErr) {
		return "", "", false, nil
	} else {
		return "", "", false, dberr.Wrap(scanErr, "find_chapter_identity")
	}
}

/*
FindChapterFetchInfo resolves a chapter key to the (canonical_id,
source_id, external_id) triple a plugin needs to fetch pages.

Description: same dual-lookup pattern as [Store.FindChapterIdentity] —
id match first, external_id fallback second.
*/
func (s *Store) FindChapterFetchInfo(ctx context.Context, key string) (canonicalID, sourceID, externalID string, found bool, err error) {
	byID := fmt.Sprintf(
		"SELECT %s, %s, %s FROM %s WHERE %s = $1 LIMIT 1",
		schema.Chapters.ID, schema.Chapters.SourceID, schema.Chapters.ExternalID,
		schema.Chapters.Table, schema.Chapters.ID,
	)
	if scanErr := s.pool.QueryRow(ctx, byID, key).Scan(&canonicalID, &sourceID, &externalID); scanErr == nil {
		return canonicalID, sourceID, externalID, true, nil
	} else if !dberr.IsNotFound(scanErr) {
		return "", "", "", false, dberr.Wrap(scanErr, "find_chapter_fetch_info")
	}

	byExternal := fmt.Sprintf(
		"SELECT %s, %s, %s FROM %s WHERE %s = $1 LIMIT 1",
		schema.Chapters.ID, schema.Chapters.SourceID, schema.Chapters.ExternalID,
		schema.Chapters.Table, schema.Chapters.ExternalID,
	)
	if scanErr := s.pool.QueryRow(ctx, byExternal, key).Scan(&canonicalID, &sourceID, &externalID); scanErr == nil {
		return canonicalID, sourceID, externalID, true, nil
	} else if dberr.IsNotFound(scanErr) {
		return "", "", "", false, nil
	} else {
		return "", "", "", false, dberr.Wrap(scanErr, "find_chapter_fetch_info")
	}
}

// ListChaptersForSeries returns every chapter of seriesID ordered by
// number_num (NULLS LAST) then number_text, matching reader expectations
// of ascending chapter order even when numbering is sparse or textual.
func (s *Store) ListChaptersForSeries(ctx context.Context, seriesID string) ([]UnitSummary, error) {
	query := fmt.Sprintf(
		"SELECT %s, %s, %s, %s FROM %s WHERE %s = $1 ORDER BY %s NULLS LAST, %s",
		schema.Chapters.ID, schema.Chapters.NumberNum, schema.Chapters.NumberText, schema.Chapters.UploadGroup,
		schema.Chapters.Table, schema.Chapters.SeriesID,
		schema.Chapters.NumberNum, schema.Chapters.NumberText,
	)

	rows, err := s.pool.Query(ctx, query, seriesID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_chapters_for_series")
	}
	defer rows.Close()

	var out []UnitSummary
	for rows.Next() {
		var row UnitSummary
		if err := rows.Scan(&row.ID, &row.NumberNum, &row.NumberText, &row.UploadGroup); err != nil {
			return nil, dberr.Wrap(err, "list_chapters_for_series")
		}
		out = append(out, row)
	}
	return out, nil
}

// ListEpisodesForSeries returns every episode of seriesID ordered by
// number_num (NULLS LAST) then number_text.
func (s *Store) ListEpisodesForSeries(ctx context.Context, seriesID string) ([]UnitSummary, error) {
	query := fmt.Sprintf(
		"SELECT %s, %s, %s, %s FROM %s WHERE %s = $1 ORDER BY %s NULLS LAST, %s",
		schema.Episodes.ID, schema.Episodes.NumberNum, schema.Episodes.NumberText, schema.Episodes.UploadGroup,
		schema.Episodes.Table, schema.Episodes.SeriesID,
		schema.Episodes.NumberNum, schema.Episodes.NumberText,
	)

	rows, err := s.pool.Query(ctx, query, seriesID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_episodes_for_series")
	}
	defer rows.Close()

	var out []UnitSummary
	for rows.Next() {
		var row UnitSummary
		if err := rows.Scan(&row.ID, &row.NumberNum, &row.NumberText, &row.UploadGroup); err != nil {
			return nil, dberr.Wrap(err, "list_episodes_for_series")
		}
		out = append(out, row)
	}
	return out, nil
}

// DeleteChapter removes a chapter and, through FK cascade, its images
// and reading-progress rows. Returns rows deleted from chapters itself.
func (s *Store) DeleteChapter(ctx context.Context, chapterID string) (int64, error) {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.Chapters.Table, schema.Chapters.ID)
	result, err := s.pool.Exec(ctx, query, chapterID)
	if err != nil {
		return 0, dberr.Wrap(err, "delete_chapter")
	}
	return result.RowsAffected(), nil
}

// DeleteEpisode removes an episode and, through FK cascade, its
// streams. Returns rows deleted from episodes itself.
func (s *Store) DeleteEpisode(ctx context.Context, episodeID string) (int64, error) {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.Episodes.Table, schema.Episodes.ID)
	result, err := s.pool.Exec(ctx, query, episodeID)
	if err != nil {
		return 0, dberr.Wrap(err, "delete_episode")
	}
	return result.RowsAffected(), nil
}
