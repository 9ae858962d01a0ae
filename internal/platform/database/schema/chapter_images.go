package schema

// ChapterImagesTable represents the 'chapter_images' table.
type ChapterImagesTable struct {
	Table     string
	ChapterID string
	Idx       string
	URL       string
	Mime      string
	Width     string
	Height    string
}

// ChapterImages is the schema definition for chapter_images.
var ChapterImages = ChapterImagesTable{
	Table:     "chapter_images",
	ChapterID: "chapter_id",
	Idx:       "idx",
	URL:       "url",
	Mime:      "mime",
	Width:     "width",
	Height:    "height",
}

func (t ChapterImagesTable) Columns() []string {
	return []string{t.ChapterID, t.Idx, t.URL, t.Mime, t.Width, t.Height}
}
