package schema

// SourcesTable represents the 'sources' table.
type SourcesTable struct {
	Table     string
	ID        string
	Version   string
	UpdatedAt string
}

// Sources is the schema definition for sources.
var Sources = SourcesTable{
	Table:     "sources",
	ID:        "id",
	Version:   "version",
	UpdatedAt: "updated_at",
}

func (t SourcesTable) Columns() []string {
	return []string{t.ID, t.Version, t.UpdatedAt}
}
