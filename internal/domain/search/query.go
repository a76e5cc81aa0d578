package search

import (
	"time"

	"github.com/kailas-cloud/pressdex/internal/domain"
)

// Search parameter limits. DefaultSize and MaxSize apply unless a
// query carries its own limits via WithLimits.
const (
	MaxTermLength = 1024
	DefaultSize   = 10
	MaxSize       = 100
)

// Sortable result fields. Author sorts on its exact (tag) form so that
// ordering follows the full byline rather than tokenized terms.
var sortFields = map[string]string{
	"publication_date": "publication_date",
	"timestamp":        "timestamp",
	"title":            "title",
	"author":           "author_exact",
}

// Query is a validated, normalized search request.
type Query struct {
	term        string
	author      string
	dateFrom    time.Time
	dateTo      time.Time
	from        int
	size        int
	defaultSize int
	maxSize     int
	sortBy      string
	sortDesc    bool
}

// Option customizes a Query during construction.
type Option func(*Query) error

// WithAuthor restricts results to an exact byline match.
func WithAuthor(author string) Option {
	return func(q *Query) error {
		q.author = author
		return nil
	}
}

// WithDateRange restricts results to publication dates within [from, to].
// Either bound may be zero for an open interval.
func WithDateRange(from, to time.Time) Option {
	return func(q *Query) error {
		if !from.IsZero() && !to.IsZero() && to.Before(from) {
			return domain.NewValidation("date range", "end precedes start")
		}
		q.dateFrom = from
		q.dateTo = to
		return nil
	}
}

// WithPagination sets the result window. Negative from is rejected;
// size <= 0 falls back to the default size, and the final size is
// capped at the query's maximum (see WithLimits).
func WithPagination(from, size int) Option {
	return func(q *Query) error {
		if from < 0 {
			return domain.NewValidation("from", "must not be negative")
		}
		q.from = from
		if size > 0 {
			q.size = size
		}
		return nil
	}
}

// WithLimits overrides the default and maximum page size for this
// query. Zero or negative values keep the built-in limits. Applies
// regardless of option order.
func WithLimits(defaultSize, maxSize int) Option {
	return func(q *Query) error {
		if defaultSize > 0 {
			q.defaultSize = defaultSize
		}
		if maxSize > 0 {
			q.maxSize = maxSize
		}
		return nil
	}
}

// WithSort orders results by one of the sortable fields.
func WithSort(field string, desc bool) Option {
	return func(q *Query) error {
		mapped, ok := sortFields[field]
		if !ok {
			return domain.NewValidation("sort", "unknown field "+field)
		}
		q.sortBy = mapped
		q.sortDesc = desc
		return nil
	}
}

// New validates and normalizes search parameters. A blank term means
// match-all; relevance ordering applies unless a sort is set.
func New(term string, opts ...Option) (Query, error) {
	if len(term) > MaxTermLength {
		return Query{}, domain.NewValidation("q", "too long")
	}

	q := Query{term: term, defaultSize: DefaultSize, maxSize: MaxSize}
	for _, opt := range opts {
		if err := opt(&q); err != nil {
			return Query{}, err
		}
	}

	// Resolve the window once all options are in, so limits apply no
	// matter where in the option list they were given.
	if q.size <= 0 {
		q.size = q.defaultSize
	}
	if q.size > q.maxSize {
		q.size = q.maxSize
	}
	return q, nil
}

// Term returns the free-text query, possibly blank.
func (q *Query) Term() string { return q.term }

// Author returns the exact byline filter, blank when unset.
func (q *Query) Author() string { return q.author }

// DateFrom returns the inclusive lower publication-date bound.
func (q *Query) DateFrom() time.Time { return q.dateFrom }

// DateTo returns the inclusive upper publication-date bound.
func (q *Query) DateTo() time.Time { return q.dateTo }

// From returns the pagination offset.
func (q *Query) From() int { return q.from }

// Size returns the page size.
func (q *Query) Size() int { return q.size }

// SortBy returns the index field to sort on, blank for relevance order.
func (q *Query) SortBy() string { return q.sortBy }

// SortDesc reports whether the sort is descending.
func (q *Query) SortDesc() bool { return q.sortDesc }

// MatchAll reports whether the query has no free-text term.
func (q *Query) MatchAll() bool { return q.term == "" }
