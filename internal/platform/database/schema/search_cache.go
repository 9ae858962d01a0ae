package schema

// SearchCacheTable represents the 'search_cache' table.
type SearchCacheTable struct {
	Table     string
	Key       string
	Payload   string
	ExpiresAt string
}

// SearchCache is the schema definition for search_cache.
var SearchCache = SearchCacheTable{
	Table:     "search_cache",
	Key:       "key",
	Payload:   "payload",
	ExpiresAt: "expires_at",
}

func (t SearchCacheTable) Columns() []string {
	return []string{t.Key, t.Payload, t.ExpiresAt}
}
