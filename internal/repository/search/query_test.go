package search

import (
	"testing"
	"time"

	domsearch "github.com/kailas-cloud/pressdex/internal/domain/search"
)

func mustQuery(t *testing.T, term string, opts ...domsearch.Option) *domsearch.Query {
	t.Helper()
	q, err := domsearch.New(term, opts...)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	return &q
}

func TestBuildQueryString_MatchAll(t *testing.T) {
	got := buildQueryString(mustQuery(t, ""))
	if got != "*" {
		t.Errorf("got %q, want *", got)
	}
}

func TestBuildQueryString_FuzzyTerm(t *testing.T) {
	got := buildQueryString(mustQuery(t, "climate summit"))
	want := "@title|description|body|author:(%climate%|%summit%)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBuildQueryString_ShortTokenExact(t *testing.T) {
	got := buildQueryString(mustQuery(t, "ai policy"))
	want := "@title|description|body|author:(ai|%policy%)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBuildQueryString_EscapesSyntax(t *testing.T) {
	got := buildQueryString(mustQuery(t, "cat|dog"))
	want := `@title|description|body|author:(%cat\|dog%)`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBuildQueryString_AuthorFilter(t *testing.T) {
	got := buildQueryString(mustQuery(t, "", domsearch.WithAuthor("Jane Doe")))
	want := `@author_exact:{Jane\ Doe}`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBuildQueryString_DateRange(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	got := buildQueryString(mustQuery(t, "", domsearch.WithDateRange(from, to)))
	want := "@publication_date:[1704067200000 1706745600000]"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBuildQueryString_OpenDateBounds(t *testing.T) {
	to := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	got := buildQueryString(mustQuery(t, "", domsearch.WithDateRange(time.Time{}, to)))
	want := "@publication_date:[-inf 1706745600000]"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBuildQueryString_Composed(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	got := buildQueryString(mustQuery(t, "rates",
		domsearch.WithAuthor("Jane Doe"),
		domsearch.WithDateRange(from, time.Time{}),
	))
	want := `@title|description|body|author:(%rates%) @author_exact:{Jane\ Doe} @publication_date:[1704067200000 +inf]`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
