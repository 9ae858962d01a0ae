package schema

// SeriesSourcesTable represents the 'series_sources' table.
type SeriesSourcesTable struct {
	Table        string
	SeriesID     string
	SourceID     string
	ExternalID   string
	LastSyncedAt string
}

// SeriesSources is the schema definition for series_sources.
var SeriesSources = SeriesSourcesTable{
	Table:        "series_sources",
	SeriesID:     "series_id",
	SourceID:     "source_id",
	ExternalID:   "external_id",
	LastSyncedAt: "last_synced_at",
}

func (t SeriesSourcesTable) Columns() []string {
	return []string{t.SeriesID, t.SourceID, t.ExternalID, t.LastSyncedAt}
}
