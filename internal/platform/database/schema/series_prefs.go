package schema

// SeriesPrefsTable represents the 'series_prefs' table.
type SeriesPrefsTable struct {
	Table        string
	SeriesID     string
	DownloadPath string
	UpdatedAt    string
}

// SeriesPrefs is the schema definition for series_prefs.
var SeriesPrefs = SeriesPrefsTable{
	Table:        "series_prefs",
	SeriesID:     "series_id",
	DownloadPath: "download_path",
	UpdatedAt:    "updated_at",
}

func (t SeriesPrefsTable) Columns() []string {
	return []string{t.SeriesID, t.DownloadPath, t.UpdatedAt}
}
