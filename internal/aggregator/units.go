// Copyright (c) 2026 Touring. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package aggregator

import (
	"context"
	"log/slog"
	"time"

	"github.com/5eus/touring/internal/pluginhost"
	"github.com/5eus/touring/internal/storage"
	"github.com/5eus/touring/pkg/pointer"
	"github.com/5eus/touring/pkg/uuidv7"
)

/*
FetchChapters fetches the chapter list for a manga's external id via
the Plugin Manager's first-hit dispatch, then persists each Chapter
unit against the canonical series (§4.E).

If no plugin answers, the returned slice is empty and no writes occur.
When autoPersist is false (UI preview), the units are still returned
but the database is left untouched.
*/
func (a *Aggregator) FetchChapters(ctx context.Context, externalMangaID string, autoPersist bool) ([]pluginhost.Unit, error) {
	return a.fetchUnits(ctx, externalMangaID, pluginhost.UnitChapter, pluginhost.MediaManga, autoPersist)
}

// FetchEpisodes is the episode/anime analogue of [Aggregator.FetchChapters].
func (a *Aggregator) FetchEpisodes(ctx context.Context, externalAnimeID string, autoPersist bool) ([]pluginhost.Unit, error) {
	return a.fetchUnits(ctx, externalAnimeID, pluginhost.UnitEpisode, pluginhost.MediaAnime, autoPersist)
}

func (a *Aggregator) fetchUnits(ctx context.Context, externalMediaID string, unitKind pluginhost.UnitKind, mediaKind pluginhost.MediaKind, autoPersist bool) ([]pluginhost.Unit, error) {
	source, units, ok := a.manager.FetchUnitsFirstHit(ctx, externalMediaID, unitKind)
	if !ok {
		return nil, nil
	}
	if !autoPersist {
		return units, nil
	}

	// An empty title stub keeps [Identity.GetOrCreateSeriesID] from
	// clobbering real metadata on a series that search already created.
	stub := pluginhost.Media{ID: externalMediaID, Kind: mediaKind}
	seriesID, err := a.identity.GetOrCreateSeriesID(ctx, source, externalMediaID, stub)
	if err != nil {
		return units, err
	}

	for _, u := range units {
		if u.Kind != unitKind {
			continue
		}
		if err := a.persistUnit(ctx, unitKind, seriesID, source, u); err != nil {
			a.logger.Warn("persist_unit_failed", slog.String("source", source), slog.String("unit_id", u.ID), slog.Any("error", err))
		}
	}
	return units, nil
}

func (a *Aggregator) persistUnit(ctx context.Context, kind pluginhost.UnitKind, seriesID, source string, u pluginhost.Unit) error {
	title := pointer.To(u.Title)
	if u.Title == "" {
		title = nil
	}
	var lang, group *string
	if u.Lang != "" {
		lang = pointer.To(u.Lang)
	}
	if u.Group != "" {
		group = pointer.To(u.Group)
	}
	var publishedAt *time.Time
	if t, err := time.Parse(time.RFC3339, u.PublishedAt); err == nil {
		publishedAt = &t
	}

	switch kind {
	case pluginhost.UnitChapter:
		id, found, err := a.store.FindChapterIDByMapping(ctx, seriesID, source, u.ID)
		if err != nil {
			return err
		}
		if !found {
			id = uuidv7.New()
		}
		return a.store.UpsertChapter(ctx, storage.ChapterInsert{
			ID: id, SeriesID: seriesID, SourceID: source, ExternalID: u.ID,
			NumberText: numberText(u), NumberNum: u.Number,
			Title: title, Lang: lang, Group: group, UploadGroup: uploadGroup(u), PublishedAt: publishedAt,
		})
	case pluginhost.UnitEpisode:
		id, found, err := a.store.FindEpisodeIDByMapping(ctx, seriesID, source, u.ID)
		if err != nil {
			return err
		}
		if !found {
			id = uuidv7.New()
		}
		return a.store.UpsertEpisode(ctx, storage.EpisodeInsert{
			ID: id, SeriesID: seriesID, SourceID: source, ExternalID: u.ID,
			NumberText: numberText(u), NumberNum: u.Number,
			Title: title, Lang: lang, Season: group, PublishedAt: publishedAt, UploadGroup: uploadGroup(u),
		})
	default:
		return nil
	}
}

func numberText(u pluginhost.Unit) *string {
	if u.NumberText == "" {
		return nil
	}
	return pointer.To(u.NumberText)
}

func uploadGroup(u pluginhost.Unit) *string {
	if u.UploadGroup == "" {
		return nil
	}
	return pointer.To(u.UploadGroup)
}
