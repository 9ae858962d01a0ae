// Copyright (c) 2026 Touring. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Supplemented operations from §12: reading progress, the series
download-path preference, paginated list endpoints, and cascade
deletes — all present in the original implementation's dao.rs/lib.rs
but dropped by the distilled component design.
*/
package aggregator

import (
	"context"

	"github.com/5eus/touring/internal/storage"
	"github.com/5eus/touring/pkg/pagination"
)

// UpsertChapterProgress records a reader's position within a chapter.
func (a *Aggregator) UpsertChapterProgress(ctx context.Context, p storage.ChapterProgress) error {
	return a.store.UpsertChapterProgress(ctx, p)
}

// ClearChapterProgress removes a reader's saved position for a chapter.
func (a *Aggregator) ClearChapterProgress(ctx context.Context, chapterID string) error {
	return a.store.ClearChapterProgress(ctx, chapterID)
}

// GetChapterProgress returns a reader's saved position for one chapter.
func (a *Aggregator) GetChapterProgress(ctx context.Context, chapterID string) (storage.ChapterProgress, bool, error) {
	return a.store.GetChapterProgress(ctx, chapterID)
}

// ListChapterProgressForSeries returns every recorded reading position
// within a series, most recently updated first.
func (a *Aggregator) ListChapterProgressForSeries(ctx context.Context, seriesID string) ([]storage.ChapterProgress, error) {
	return a.store.GetChapterProgressForSeries(ctx, seriesID)
}

// GetSeriesDownloadPath returns the resolved download-path preference
// for a series, or nil if none has ever been set.
func (a *Aggregator) GetSeriesDownloadPath(ctx context.Context, seriesID string) (*string, error) {
	pref, err := a.store.GetSeriesPref(ctx, seriesID)
	if err != nil {
		return nil, err
	}
	return pref.DownloadPath, nil
}

/*
SetSeriesDownloadPath sets the series's download-path preference.
Passing a nil path clears the stored preference back to "no
preference" rather than deleting the row, matching the original's
empty-string round-trip rule (§12).
*/
func (a *Aggregator) SetSeriesDownloadPath(ctx context.Context, seriesID string, path *string) error {
	return a.store.SetSeriesDownloadPath(ctx, seriesID, path)
}

// ListSeries returns a page of series, optionally filtered by kind.
func (a *Aggregator) ListSeries(ctx context.Context, kind string, params pagination.Params) ([]storage.SeriesSummary, error) {
	return a.store.ListSeries(ctx, kind, params.Limit, params.Offset())
}

// ListChaptersForSeries returns every chapter of a series in reading order.
func (a *Aggregator) ListChaptersForSeries(ctx context.Context, seriesID string) ([]storage.UnitSummary, error) {
	return a.store.ListChaptersForSeries(ctx, seriesID)
}

// ListEpisodesForSeries returns every episode of a series in reading order.
func (a *Aggregator) ListEpisodesForSeries(ctx context.Context, seriesID string) ([]storage.UnitSummary, error) {
	return a.store.ListEpisodesForSeries(ctx, seriesID)
}

// DeleteSeries removes a series and, through FK cascade, every
// dependent chapter, episode, stream, image, pref, and progress row.
func (a *Aggregator) DeleteSeries(ctx context.Context, seriesID string) (int64, error) {
	return a.store.DeleteSeries(ctx, seriesID)
}

// DeleteChapter removes a chapter and its dependent rows.
func (a *Aggregator) DeleteChapter(ctx context.Context, chapterID string) (int64, error) {
	return a.store.DeleteChapter(ctx, chapterID)
}

// DeleteEpisode removes an episode and its dependent rows.
func (a *Aggregator) DeleteEpisode(ctx context.Context, episodeID string) (int64, error) {
	return a.store.DeleteEpisode(ctx, episodeID)
}
