package db

// SearchQuery is the input for an FT.SEARCH call.
type SearchQuery struct {
	Index string
	Query string

	// Pagination (LIMIT offset num).
	Offset int
	Limit  int

	// Sorting. Empty SortBy keeps the engine's relevance order.
	SortBy   string
	SortDesc bool

	// WithScores requests per-hit relevance scores (WITHSCORES).
	WithScores bool

	// Highlighting. Empty HighlightFields disables highlighting.
	HighlightFields []string
	HighlightOpen   string
	HighlightClose  string

	// ReturnFields limits returned fields; empty returns all stored fields.
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}

// ApplyStep is a computed expression in an FT.AGGREGATE pipeline.
type ApplyStep struct {
	Expression string
	As         string
}

// AggregateQuery is the input for a single-group FT.AGGREGATE call.
type AggregateQuery struct {
	Index string
	Query string

	Apply []ApplyStep

	// GroupBy names the property to group on (without the @ prefix).
	GroupBy string
	// ReduceCountAs names the COUNT reducer output property.
	ReduceCountAs string

	SortBy   string
	SortDesc bool
	Limit    int
}
