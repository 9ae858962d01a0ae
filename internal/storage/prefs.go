// Copyright (c) 2026 Touring. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package storage

import (
	"context"
	"fmt"

	"github.com/5eus/touring/internal/platform/apperr"
	"github.com/5eus/touring/internal/platform/database/schema"
	"github.com/5eus/touring/internal/platform/dberr"
)

/*
GetSeriesPref returns the resolved download-path preference for a series.

Description: an empty stored path is treated as "no preference set" and
surfaces as DownloadPath == nil, the round-trip rule §12 pins for the
download-path preference. A series with no series_prefs row at
all also returns a nil DownloadPath rather than an error.
*/
func (s *Store) GetSeriesPref(ctx context.Context, seriesID string) (SeriesPref, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1",
		schema.SeriesPrefs.DownloadPath, schema.SeriesPrefs.Table, schema.SeriesPrefs.SeriesID,
	)

	var path *string
	err := s.pool.QueryRow(ctx, query, seriesID).Scan(&path)
	if err != nil {
		if dberr.IsNotFound(err) {
			return SeriesPref{SeriesID: seriesID}, nil
		}
		return SeriesPref{}, dberr.Wrap(err, "get_series_pref")
	}

	if path != nil && *path == "" {
		path = nil
	}
	return SeriesPref{SeriesID: seriesID, DownloadPath: path}, nil
}

/*
SetSeriesDownloadPath sets or clears the download-path preference for a
series.

Description: rejects with a not-found error if seriesID has no series
row at all, matching the original's "Series not found" existence
check, then upserts the preference row. A nil path is stored as the
empty string, which GetSeriesPref reads back as no preference.
*/
func (s *Store) SetSeriesDownloadPath(ctx context.Context, seriesID string, path *string) error {
	existsQuery := fmt.Sprintf("SELECT 1 FROM %s WHERE %s = $1", schema.Series.Table, schema.Series.ID)
	var exists int
	if err := s.pool.QueryRow(ctx, existsQuery, seriesID).Scan(&exists); err != nil {
		if dberr.IsNotFound(err) {
			return apperr.NotFound("Series")
		}
		return dberr.Wrap(err, "set_series_download_path")
	}

	query := fmt.Sprintf(
		`INSERT INTO %s (%s, %s) VALUES ($1, $2)
		 ON CONFLICT (%s) DO UPDATE SET %s = EXCLUDED.%s, %s = NOW()`,
		schema.SeriesPrefs.Table, schema.SeriesPrefs.SeriesID, schema.SeriesPrefs.DownloadPath,
		schema.SeriesPrefs.SeriesID,
		schema.SeriesPrefs.DownloadPath, schema.SeriesPrefs.DownloadPath,
		schema.SeriesPrefs.UpdatedAt,
	)

	stored := ""
	if path != nil {
		stored = *path
	}

	_, err := s.pool.Exec(ctx, query, seriesID, stored)
	return dberr.Wrap(err, "set_series_download_path")
}
