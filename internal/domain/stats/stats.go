package stats

import "time"

// AuthorCount is one row of the per-author article breakdown.
type AuthorCount struct {
	Author string
	Count  int
}

// DayCount is one bucket of the per-day publication histogram.
type DayCount struct {
	Day   time.Time
	Count int
}

// Overview aggregates index-wide statistics.
type Overview struct {
	Articles       int
	DeletedDocs    int
	IndexSizeBytes int64
	TopAuthors     []AuthorCount
	PerDay         []DayCount
}
