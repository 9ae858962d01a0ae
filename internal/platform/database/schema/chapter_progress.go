package schema

// ChapterProgressTable represents the 'chapter_progress' table.
type ChapterProgressTable struct {
	Table      string
	ChapterID  string
	SeriesID   string
	PageIndex  string
	TotalPages string
	UpdatedAt  string
}

// ChapterProgress is the schema definition for chapter_progress.
var ChapterProgress = ChapterProgressTable{
	Table:      "chapter_progress",
	ChapterID:  "chapter_id",
	SeriesID:   "series_id",
	PageIndex:  "page_index",
	TotalPages: "total_pages",
	UpdatedAt:  "updated_at",
}

func (t ChapterProgressTable) Columns() []string {
	return []string{t.ChapterID, t.SeriesID, t.PageIndex, t.TotalPages, t.UpdatedAt}
}
