package chi

import (
	"fmt"
	"strings"
	"time"

	domart "github.com/kailas-cloud/pressdex/internal/domain/article"
	dombatch "github.com/kailas-cloud/pressdex/internal/domain/batch"
	domsearch "github.com/kailas-cloud/pressdex/internal/domain/search"
	domstats "github.com/kailas-cloud/pressdex/internal/domain/stats"
)

// --- Requests ---

type uploadRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	Body            string `json:"body"`
	Author          string `json:"author"`
	PublicationDate string `json:"publication_date,omitempty"`
}

type idsRequest struct {
	IDs []string `json:"ids"`
}

type searchFilters struct {
	Author   string `json:"author,omitempty"`
	DateFrom string `json:"date_from,omitempty"`
	DateTo   string `json:"date_to,omitempty"`
}

type advancedSearchRequest struct {
	Query   string        `json:"query,omitempty"`
	Filters searchFilters `json:"filters,omitempty"`
	From    int           `json:"from,omitempty"`
	Size    int           `json:"size,omitempty"`
	Sort    string        `json:"sort,omitempty"`
}

// parseSort splits a "field:dir" sort parameter. Direction defaults to
// descending, matching the listing default.
func parseSort(s string) (field string, desc bool) {
	field, dir, found := strings.Cut(s, ":")
	if !found {
		return field, true
	}
	return field, dir != "asc"
}

// parseDate accepts RFC 3339 or a plain calendar date.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q, want RFC 3339 or YYYY-MM-DD", s)
}

// --- Responses ---

type articleJSON struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Body            string `json:"body"`
	Author          string `json:"author"`
	PublicationDate string `json:"publication_date"`
	Timestamp       string `json:"timestamp"`
}

type hitJSON struct {
	articleJSON
	Score      float64           `json:"score"`
	Highlights map[string]string `json:"highlights,omitempty"`
}

type paginationJSON struct {
	From    int  `json:"from"`
	Size    int  `json:"size"`
	HasMore bool `json:"has_more"`
}

type failedItemJSON struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

type authorCountJSON struct {
	Author string `json:"author"`
	Count  int    `json:"count"`
}

type dayCountJSON struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

type indexStatsJSON struct {
	Documents   int   `json:"documents"`
	DeletedDocs int   `json:"deleted_docs"`
	SizeBytes   int64 `json:"size_bytes"`
}

type aggregationsJSON struct {
	TopAuthors       []authorCountJSON `json:"top_authors"`
	ArticlesOverTime []dayCountJSON    `json:"articles_over_time"`
}

type statsJSON struct {
	Index        indexStatsJSON   `json:"index"`
	Aggregations aggregationsJSON `json:"aggregations"`
}

func articleToJSON(a *domart.Article) articleJSON {
	return articleJSON{
		ID:              a.ID(),
		Title:           a.Title(),
		Description:     a.Description(),
		Body:            a.Body(),
		Author:          a.Author(),
		PublicationDate: a.PublicationDate().UTC().Format(time.RFC3339),
		Timestamp:       a.IngestedAt().UTC().Format(time.RFC3339),
	}
}

func articlesToJSON(articles []domart.Article) []articleJSON {
	out := make([]articleJSON, len(articles))
	for i := range articles {
		out[i] = articleToJSON(&articles[i])
	}
	return out
}

func hitToJSON(h *domsearch.Hit) hitJSON {
	return hitJSON{
		articleJSON: articleToJSON(&h.Article),
		Score:       h.Score,
		Highlights:  h.Highlights,
	}
}

func hitsToJSON(hits []domsearch.Hit) []hitJSON {
	out := make([]hitJSON, len(hits))
	for i := range hits {
		out[i] = hitToJSON(&hits[i])
	}
	return out
}

// partitionBatch splits per-item outcomes into succeeded IDs and failures.
func partitionBatch(results []dombatch.Result) ([]string, []failedItemJSON) {
	deleted := make([]string, 0, len(results))
	failed := make([]failedItemJSON, 0)
	for _, r := range results {
		if r.Err() != nil {
			failed = append(failed, failedItemJSON{ID: r.ID(), Error: safeDomainMessage(r.Err())})
			continue
		}
		deleted = append(deleted, r.ID())
	}
	return deleted, failed
}

func statsToJSON(ov *domstats.Overview) statsJSON {
	authors := make([]authorCountJSON, len(ov.TopAuthors))
	for i, a := range ov.TopAuthors {
		authors[i] = authorCountJSON{Author: a.Author, Count: a.Count}
	}
	perDay := make([]dayCountJSON, len(ov.PerDay))
	for i, d := range ov.PerDay {
		perDay[i] = dayCountJSON{Day: d.Day.Format("2006-01-02"), Count: d.Count}
	}
	return statsJSON{
		Index: indexStatsJSON{
			Documents:   ov.Articles,
			DeletedDocs: ov.DeletedDocs,
			SizeBytes:   ov.IndexSizeBytes,
		},
		Aggregations: aggregationsJSON{
			TopAuthors:       authors,
			ArticlesOverTime: perDay,
		},
	}
}
