package schema

// StreamsTable represents the 'streams' table.
type StreamsTable struct {
	Table     string
	EpisodeID string
	URL       string
	Quality   string
	Mime      string
}

// Streams is the schema definition for streams.
var Streams = StreamsTable{
	Table:     "streams",
	EpisodeID: "episode_id",
	URL:       "url",
	Quality:   "quality",
	Mime:      "mime",
}

func (t StreamsTable) Columns() []string {
	return []string{t.EpisodeID, t.URL, t.Quality, t.Mime}
}
