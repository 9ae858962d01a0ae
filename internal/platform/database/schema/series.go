package schema

// SeriesTable represents the 'series' table.
type SeriesTable struct {
	Table       string
	ID          string
	Kind        string
	Title       string
	AltTitles   string
	Description string
	CoverURL    string
	Tags        string
	Status      string
	UpdatedAt   string
}

// Series is the schema definition for series.
var Series = SeriesTable{
	Table:       "series",
	ID:          "id",
	Kind:        "kind",
	Title:       "title",
	AltTitles:   "alt_titles",
	Description: "description",
	CoverURL:    "cover_url",
	Tags:        "tags",
	Status:      "status",
	UpdatedAt:   "updated_at",
}

func (t SeriesTable) Columns() []string {
	return []string{
		t.ID, t.Kind, t.Title, t.AltTitles, t.Description,
		t.CoverURL, t.Tags, t.Status, t.UpdatedAt,
	}
}
