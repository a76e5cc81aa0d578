package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kailas-cloud/pressdex/internal/db"
	"github.com/kailas-cloud/pressdex/internal/domain"
	domsearch "github.com/kailas-cloud/pressdex/internal/domain/search"
	"github.com/kailas-cloud/pressdex/internal/repository/article"
)

// Highlight markers wrapped around matched terms by the engine.
const (
	highlightOpen  = "<em>"
	highlightClose = "</em>"
)

var highlightedFields = []string{"title", "description", "body", "author"}

var tagStripper = strings.NewReplacer(highlightOpen, "", highlightClose, "")

// store is the consumer interface for search execution (ISP).
type store interface {
	Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error)
}

// Repo implements usecase/search.Repository.
type Repo struct {
	store store
	index string
}

// New creates a search repository bound to one index.
func New(s store, index string) *Repo {
	return &Repo{store: s, index: index}
}

// Find runs a search and returns one normalized result page. Free-text
// queries carry relevance scores and term highlights; match-all queries
// without an explicit sort fall back to newest-first.
func (r *Repo) Find(ctx context.Context, q *domsearch.Query) (*domsearch.Page, error) {
	dq := &db.SearchQuery{
		Index:    r.index,
		Query:    buildQueryString(q),
		Offset:   q.From(),
		Limit:    q.Size(),
		SortBy:   q.SortBy(),
		SortDesc: q.SortDesc(),
	}

	if q.MatchAll() {
		if dq.SortBy == "" {
			dq.SortBy = "publication_date"
			dq.SortDesc = true
		}
	} else {
		dq.WithScores = true
		dq.HighlightFields = highlightedFields
		dq.HighlightOpen = highlightOpen
		dq.HighlightClose = highlightClose
	}

	sr, err := r.store.Search(ctx, dq)
	if err != nil {
		if errors.Is(err, db.ErrIndexNotFound) {
			return nil, domain.ErrIndexNotReady
		}
		return nil, fmt.Errorf("search %s: %w", r.index, err)
	}

	page := &domsearch.Page{
		Total: sr.Total,
		From:  q.From(),
		Size:  q.Size(),
		Hits:  make([]domsearch.Hit, 0, len(sr.Entries)),
	}
	for _, entry := range sr.Entries {
		page.Hits = append(page.Hits, normalizeHit(entry))
	}
	return page, nil
}

// normalizeHit splits an engine entry into the plain article and its
// highlighted fragments. Highlighted fields come back with marker tags
// baked in; the plain article must never carry them.
func normalizeHit(entry db.SearchEntry) domsearch.Hit {
	fields := entry.Fields
	var highlights map[string]string

	plain := make(map[string]string, len(fields))
	for k, v := range fields {
		if strings.Contains(v, highlightOpen) {
			if highlights == nil {
				highlights = make(map[string]string)
			}
			highlights[k] = v
			v = tagStripper.Replace(v)
		}
		plain[k] = v
	}

	id := strings.TrimPrefix(entry.Key, article.KeyPrefix)
	return domsearch.Hit{
		Article:    article.ParseHashFields(id, plain),
		Score:      entry.Score,
		Highlights: highlights,
	}
}
