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
UpsertChapterImages replaces the page list of a chapter.

Description: runs inside a single transaction, one INSERT ... ON
CONFLICT (chapter_id, idx) DO UPDATE per image, so a partial write
never leaves the page order half-updated.
*/
func (s *Store) UpsertChapterImages(ctx context.Context, images []ChapterImageInsert) error {
	if len(images) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "upsert_chapter_images")
	}
	defer tx.Rollback(ctx)

	query := fmt.Sprintf(
		`INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (%s, %s) DO UPDATE SET
		   %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s`,
		schema.ChapterImages.Table,
		schema.ChapterImages.ChapterID, schema.ChapterImages.Idx, schema.ChapterImages.URL,
		schema.ChapterImages.Mime, schema.ChapterImages.Width, schema.ChapterImages.Height,
		schema.ChapterImages.ChapterID, schema.ChapterImages.Idx,
		schema.ChapterImages.URL, schema.ChapterImages.URL,
		schema.ChapterImages.Mime, schema.ChapterImages.Mime,
		schema.ChapterImages.Width, schema.ChapterImages.Width,
		schema.ChapterImages.Height, schema.ChapterImages.Height,
	)

	for _, img := range images {
		if _, err := tx.Exec(ctx, query, img.ChapterID, img.Idx, img.URL, img.Mime, img.Width, img.Height); err != nil {
			return dberr.Wrap(err, "upsert_chapter_images")
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return dberr.Wrap(err, "upsert_chapter_images")
	}
	return nil
}

/*
UpsertStreams replaces the stream list of an episode.

Description: runs inside a single transaction, one INSERT ... ON
CONFLICT (episode_id, url) DO NOTHING per stream — unlike chapter
images, a stream's identity key is also its only payload, so there is
nothing to refresh on conflict.
*/
func (s *Store) UpsertStreams(ctx context.Context, streams []StreamInsert) error {
	if len(streams) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "upsert_streams")
	}
	defer tx.Rollback(ctx)

	query := fmt.Sprintf(
		`INSERT INTO %s (%s, %s, %s, %s)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (%s, %s) DO NOTHING`,
		schema.Streams.Table,
		schema.Streams.EpisodeID, schema.Streams.URL, schema.Streams.Quality, schema.Streams.Mime,
		schema.Streams.EpisodeID, schema.Streams.URL,
	)

	for _, st := range streams {
		if _, err := tx.Exec(ctx, query, st.EpisodeID, st.URL, st.Quality, st.Mime); err != nil {
			return dberr.Wrap(err, "upsert_streams")
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return dberr.Wrap(err, "upsert_streams")
	}
	return nil
}

// ListChapterImages returns the page list of a chapter ordered by idx.
func (s *Store) ListChapterImages(ctx context.Context, chapterID string) ([]ChapterImageInsert, error) {
	query := fmt.Sprintf(
		"SELECT %s, %s, %s, %s, %s, %s FROM %s WHERE %s = $1 ORDER BY %s",
		schema.ChapterImages.ChapterID, schema.ChapterImages.Idx, schema.ChapterImages.URL,
		schema.ChapterImages.Mime, schema.ChapterImages.Width, schema.ChapterImages.Height,
		schema.ChapterImages.Table, schema.ChapterImages.ChapterID, schema.ChapterImages.Idx,
	)

	rows, err := s.pool.Query(ctx, query, chapterID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_chapter_images")
	}
	defer rows.Close()

	var out []ChapterImageInsert
	for rows.Next() {
		var row ChapterImageInsert
		if err := rows.Scan(&row.ChapterID, &row.Idx, &row.URL, &row.Mime, &row.Width, &row.Height); err != nil {
			return nil, dberr.Wrap(err, "list_chapter_images")
		}
		out = append(out, row)
	}
	return out, nil
}

// ListStreams returns the stream list of an episode.
func (s *Store) ListStreams(ctx context.Context, episodeID string) ([]StreamInsert, error) {
	query := fmt.Sprintf(
		"SELECT %s, %s, %s, %s FROM %s WHERE %s = $1",
		schema.Streams.EpisodeID, schema.Streams.URL, schema.Streams.Quality, schema.Streams.Mime,
		schema.Streams.Table, schema.Streams.EpisodeID,
	)

	rows, err := s.pool.Query(ctx, query, episodeID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_streams")
	}
	defer rows.Close()

	var out []StreamInsert
	for rows.Next() {
		var row StreamInsert
		if err := rows.Scan(&row.EpisodeID, &row.URL, &row.Quality, &row.Mime); err != nil {
			return nil, dberr.Wrap(err, "list_streams")
		}
		out = append(out, row)
	}
	return out, nil
}
