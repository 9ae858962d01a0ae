package schema

// EpisodesTable represents the 'episodes' table.
type EpisodesTable struct {
	Table       string
	ID          string
	SeriesID    string
	SourceID    string
	ExternalID  string
	NumberText  string
	NumberNum   string
	Title       string
	Lang        string
	Season      string
	PublishedAt string
	UploadGroup string
	UpdatedAt   string
}

// Episodes is the schema definition for episodes.
var Episodes = EpisodesTable{
	Table:       "episodes",
	ID:          "id",
	SeriesID:    "series_id",
	SourceID:    "source_id",
	ExternalID:  "external_id",
	NumberText:  "number_text",
	NumberNum:   "number_num",
	Title:       "title",
	Lang:        "lang",
	Season:      "season",
	PublishedAt: "published_at",
	UploadGroup: "upload_group",
	UpdatedAt:   "updated_at",
}

func (t EpisodesTable) Columns() []string {
	return []string{
		t.ID, t.SeriesID, t.SourceID, t.ExternalID, t.NumberText, t.NumberNum,
		t.Title, t.Lang, t.Season, t.PublishedAt, t.UploadGroup, t.UpdatedAt,
	}
}
