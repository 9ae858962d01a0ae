// Copyright (c) 2026 Touring. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package storage

import "time"

// # Insert Structs (§4.A)
//
// Each mirrors the DAO's upsert parameters one-to-one — a thin typed
// layer over the bind parameters, nothing more.

// SourceInsert upserts a row in the sources table.
type SourceInsert struct {
	ID      string
	Version string
}

// SeriesInsert upserts a row in the series table.
type SeriesInsert struct {
	ID          string
	Kind        string
	Title       string
	AltTitles   *string
	Description *string
	CoverURL    *string
	Tags        *string
	Status      *string
}

// SeriesSourceInsert upserts a row in the series_sources table.
type SeriesSourceInsert struct {
	SeriesID   string
	SourceID   string
	ExternalID string
}

// ChapterInsert upserts a row in the chapters table.
type ChapterInsert struct {
	ID          string
	SeriesID    string
	SourceID    string
	ExternalID  string
	NumberText  *string
	NumberNum   *float64
	Title       *string
	Lang        *string
	Group       *string
	UploadGroup *string
	PublishedAt *time.Time
}

// EpisodeInsert upserts a row in the episodes table.
type EpisodeInsert struct {
	ID          string
	SeriesID    string
	SourceID    string
	ExternalID  string
	NumberText  *string
	NumberNum   *float64
	Title       *string
	Lang        *string
	Season      *string
	PublishedAt *time.Time
	UploadGroup *string
}

// ChapterImageInsert upserts a row in the chapter_images table.
type ChapterImageInsert struct {
	ChapterID string
	Idx       int
	URL       string
	Mime      *string
	Width     *int
	Height    *int
}

// StreamInsert upserts a row in the streams table.
type StreamInsert struct {
	EpisodeID string
	URL       string
	Quality   *string
	Mime      *string
}

// # Row Types (read paths)

// SeriesPref is the resolved download-path preference for a series.
//
// DownloadPath is nil when no preference has ever been set, matching
// the empty-string/NULL round-trip rule in §12: a row with an empty
// stored path still reads back with DownloadPath == nil.
type SeriesPref struct {
	SeriesID     string
	DownloadPath *string
}

// ChapterProgress is a reader's position within a chapter.
type ChapterProgress struct {
	ChapterID  string
	SeriesID   string
	PageIndex  int
	TotalPages *int
	UpdatedAt  time.Time
}

// SeriesSummary is the row shape returned by ListSeries.
type SeriesSummary struct {
	ID    string
	Title string
}

// UnitSummary is the row shape returned by ListChaptersForSeries and
// ListEpisodesForSeries.
type UnitSummary struct {
	ID          string
	NumberNum   *float64
	NumberText  *string
	UploadGroup *string
}
