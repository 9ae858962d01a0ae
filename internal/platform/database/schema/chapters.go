package schema

// ChaptersTable represents the 'chapters' table.
type ChaptersTable struct {
	Table       string
	ID          string
	SeriesID    string
	SourceID    string
	ExternalID  string
	NumberText  string
	NumberNum   string
	Title       string
	Lang        string
	Group       string
	UploadGroup string
	PublishedAt string
	UpdatedAt   string
}

// Chapters is the schema definition for chapters.
var Chapters = ChaptersTable{
	Table:       "chapters",
	ID:          "id",
	SeriesID:    "series_id",
	SourceID:    "source_id",
	ExternalID:  "external_id",
	NumberText:  "number_text",
	NumberNum:   "number_num",
	Title:       "title",
	Lang:        "lang",
	Group:       "group_name",
	UploadGroup: "upload_group",
	PublishedAt: "published_at",
	UpdatedAt:   "updated_at",
}

func (t ChaptersTable) Columns() []string {
	return []string{
		t.ID, t.SeriesID, t.SourceID, t.ExternalID, t.NumberText, t.NumberNum,
		t.Title, t.Lang, t.Group, t.UploadGroup, t.PublishedAt, t.UpdatedAt,
	}
}
