// Copyright (c) 2026 Touring. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pluginhost

// # Media/Unit/Asset Contract (§6)
//
// These are the wire types every plugin component exports and accepts.
// They cross the sandbox boundary as-is; the aggregator and identity
// packages consume them directly rather than re-declaring analogues.

// MediaKind classifies a [Media] result.
type MediaKind string

const (
	MediaManga MediaKind = "Manga"
	MediaAnime MediaKind = "Anime"
)

// MediaOther builds the `Other(<custom>)` variant used by the cache key
// grammar (§6) for plugin-declared kinds outside Manga/Anime.
func MediaOther(custom string) MediaKind {
	return MediaKind("Other(" + custom + ")")
}

// UnitKind classifies a [Unit] — a chapter, episode, or something else a
// plugin chooses to expose.
type UnitKind string

const (
	UnitChapter UnitKind = "Chapter"
	UnitEpisode UnitKind = "Episode"
	UnitSection UnitKind = "Section"
	UnitOther   UnitKind = "Other"
)

// AssetKind classifies an [Asset] returned by fetchAssets.
type AssetKind string

const (
	AssetPage  AssetKind = "Page"
	AssetImage AssetKind = "Image"
	AssetVideo AssetKind = "Video"
	AssetOther AssetKind = "Other"
)

// Media is a single search result or series stub, as exported by
// fetchMediaList and consumed by Identity.GetOrCreateSeriesID.
type Media struct {
	ID          string    `json:"id"`
	Kind        MediaKind `json:"mediatype"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	URL         string    `json:"url,omitempty"`
	CoverURL    string    `json:"cover_url,omitempty"`
}

// Unit is a chapter/episode/section returned by fetchUnits.
type Unit struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Number      *float64 `json:"number,omitempty"`
	NumberText  string   `json:"number_text,omitempty"`
	Lang        string   `json:"lang,omitempty"`
	Group       string   `json:"group,omitempty"`
	URL         string   `json:"url,omitempty"`
	PublishedAt string   `json:"published_at,omitempty"`
	UploadGroup string   `json:"upload_group,omitempty"`
	Kind        UnitKind `json:"kind"`
}

// Asset is a page/image/video stream returned by fetchAssets.
type Asset struct {
	URL    string    `json:"url"`
	Mime   string    `json:"mime,omitempty"`
	Width  *int      `json:"width,omitempty"`
	Height *int      `json:"height,omitempty"`
	Kind   AssetKind `json:"kind"`
}

// ProviderCapabilities declares what a plugin can serve. The manager uses
// it to skip plugins that can never answer a given request.
type ProviderCapabilities struct {
	MediaTypes []MediaKind `json:"media_types"`
	UnitKinds  []UnitKind  `json:"unit_kinds"`
	AssetKinds []AssetKind `json:"asset_kinds"`
}

// Supports reports whether these capabilities cover the given media kind.
func (c ProviderCapabilities) Supports(kind MediaKind) bool {
	for _, k := range c.MediaTypes {
		if k == kind {
			return true
		}
	}
	return false
}

// SupportsUnit reports whether these capabilities cover the given unit kind.
func (c ProviderCapabilities) SupportsUnit(kind UnitKind) bool {
	for _, k := range c.UnitKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// SupportsAsset reports whether these capabilities cover the given asset kind.
func (c ProviderCapabilities) SupportsAsset(kind AssetKind) bool {
	for _, k := range c.AssetKinds {
		if k == kind {
			return true
		}
	}
	return false
}
