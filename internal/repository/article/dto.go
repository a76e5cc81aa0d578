package article

import (
	"strconv"
	"time"

	domart "github.com/kailas-cloud/pressdex/internal/domain/article"
)

// Hash field names. Dates are stored as unix milliseconds so the
// NUMERIC index fields can range-filter and sort on them.
const (
	fieldTitle       = "title"
	fieldDescription = "description"
	fieldBody        = "body"
	fieldAuthor      = "author"
	fieldPubDate     = "publication_date"
	fieldTimestamp   = "timestamp"
)

// buildHashFields converts a domain Article into a flat map for HSET.
func buildHashFields(a *domart.Article) map[string]string {
	return map[string]string{
		fieldTitle:       a.Title(),
		fieldDescription: a.Description(),
		fieldBody:        a.Body(),
		fieldAuthor:      a.Author(),
		fieldPubDate:     timeToMillis(a.PublicationDate()),
		fieldTimestamp:   timeToMillis(a.IngestedAt()),
	}
}

// ParseHashFields converts a flat hash map back into a domain Article.
// Exported for the search repository, which hydrates hits from the
// same hash layout.
func ParseHashFields(id string, m map[string]string) domart.Article {
	return domart.Reconstruct(
		id,
		m[fieldTitle],
		m[fieldDescription],
		m[fieldBody],
		m[fieldAuthor],
		millisToTime(m[fieldPubDate]),
		millisToTime(m[fieldTimestamp]),
	)
}

func timeToMillis(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}

func millisToTime(s string) time.Time {
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
