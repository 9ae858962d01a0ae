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
UpsertChapterProgress records a reader's position within a chapter.

Description: on conflict of the chapter_id key, page_index and
total_pages are replaced and updated_at stamped to now.
*/
func (s *Store) UpsertChapterProgress(ctx context.Context, p ChapterProgress) error {
	query := fmt.Sprintf(
		`INSERT INTO %s (%s, %s, %s, %s)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (%s) DO UPDATE SET
		   %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = NOW()`,
		schema.ChapterProgress.Table,
		schema.ChapterProgress.ChapterID, schema.ChapterProgress.SeriesID,
		schema.ChapterProgress.PageIndex, schema.ChapterProgress.TotalPages,
		schema.ChapterProgress.ChapterID,
		schema.ChapterProgress.PageIndex, schema.ChapterProgress.PageIndex,
		schema.ChapterProgress.TotalPages, schema.ChapterProgress.TotalPages,
		schema.ChapterProgress.UpdatedAt,
	)

	_, err := s.pool.Exec(ctx, query, p.ChapterID, p.SeriesID, p.PageIndex, p.TotalPages)
	return dberr.Wrap(err, "upsert_chapter_progress")
}

// ClearChapterProgress removes a reader's saved position for a chapter.
func (s *Store) ClearChapterProgress(ctx context.Context, chapterID string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.ChapterProgress.Table, schema.ChapterProgress.ChapterID)
	_, err := s.pool.Exec(ctx, query, chapterID)
	return dberr.Wrap(err, "clear_chapter_progress")
}

// GetChapterProgress returns the saved position for a single chapter,
// or found=false if none was ever recorded.
func (s *Store) GetChapterProgress(ctx context.Context, chapterID string) (ChapterProgress, bool, error) {
	query := fmt.Sprintf(
		"SELECT %s, %s, %s, %s, %s FROM %s WHERE %s = $1",
		schema.ChapterProgress.ChapterID, schema.ChapterProgress.SeriesID,
		schema.ChapterProgress.PageIndex, schema.ChapterProgress.TotalPages, schema.ChapterProgress.UpdatedAt,
		schema.ChapterProgress.Table, schema.ChapterProgress.ChapterID,
	)

	var row ChapterProgress
	err := s.pool.QueryRow(ctx, query, chapterID).Scan(
		&row.ChapterID, &row.SeriesID, &row.PageIndex, &row.TotalPages, &row.UpdatedAt,
	)
	if err != nil {
		if dberr.IsNotFound(err) {
			return ChapterProgress{}, false, nil
		}
		return ChapterProgress{}, false, dberr.Wrap(err, "get_chapter_progress")
	}
	return row, true, nil
}

// GetChapterProgressForSeries returns every recorded reading position
// within a series, most recently updated first.
func (s *Store) GetChapterProgressForSeries(ctx context.Context, seriesID string) ([]ChapterProgress, error) {
	query := fmt.Sprintf(
		"SELECT %s, %s, %s, %s, %s FROM %s WHERE %s = $1 ORDER BY %s DESC",
		schema.ChapterProgress.ChapterID, schema.ChapterProgress.SeriesID,
		schema.ChapterProgress.PageIndex, schema.ChapterProgress.TotalPages, schema.ChapterProgress.UpdatedAt,
		schema.ChapterProgress.Table, schema.ChapterProgress.SeriesID, schema.ChapterProgress.UpdatedAt,
	)

	rows, err := s.pool.Query(ctx, query, seriesID)
	if err != nil {
		return nil, dberr.Wrap(err, "get_chapter_progress_for_series")
	}
	defer rows.Close()

	var out []ChapterProgress
	for rows.Next() {
		var row ChapterProgress
		if err := rows.Scan(&row.ChapterID, &row.SeriesID, &row.PageIndex, &row.TotalPages, &row.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "get_chapter_progress_for_series")
		}
		out = append(out, row)
	}
	return out, nil
}
