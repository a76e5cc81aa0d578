package index

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/kailas-cloud/pressdex/internal/db"
	"github.com/kailas-cloud/pressdex/internal/domain"
	"github.com/kailas-cloud/pressdex/internal/domain/stats"
	"github.com/kailas-cloud/pressdex/internal/repository/article"
)

const millisPerDay = 86400000

// store is the consumer interface for index administration (ISP).
type store interface {
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	IndexInfo(ctx context.Context, name string) (*db.IndexInfo, error)
	Aggregate(ctx context.Context, q *db.AggregateQuery) ([]map[string]string, error)
}

// Repo manages the article search index lifecycle and its aggregations.
type Repo struct {
	store store
	name  string
}

// New creates an index repository for the named index.
func New(s store, name string) *Repo {
	return &Repo{store: s, name: name}
}

// Definition returns the article index schema. Title carries double
// weight so headline matches rank above body matches; author is indexed
// both tokenized for free text and as a tag for exact filtering.
func Definition(name string) *db.IndexDefinition {
	return db.NewIndex(name).
		Prefix(article.KeyPrefix).
		TextWithOpts("title", 2, true).
		Text("description").
		Text("body").
		Text("author").
		TagAlias("author", "author_exact", true).
		NumericSortable("publication_date").
		NumericSortable("timestamp").
		MustBuild()
}

// Ensure creates the index if it does not exist yet. Returns true when
// this call created it. Safe to race: a concurrent create is treated
// as already-present.
func (r *Repo) Ensure(ctx context.Context) (bool, error) {
	exists, err := r.store.IndexExists(ctx, r.name)
	if err != nil {
		return false, fmt.Errorf("check index %s: %w", r.name, err)
	}
	if exists {
		return false, nil
	}

	if err := r.store.CreateIndex(ctx, Definition(r.name)); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return false, nil
		}
		return false, fmt.Errorf("create index %s: %w", r.name, err)
	}
	return true, nil
}

// Info returns engine-side index statistics.
func (r *Repo) Info(ctx context.Context) (*db.IndexInfo, error) {
	info, err := r.store.IndexInfo(ctx, r.name)
	if err != nil {
		if errors.Is(err, db.ErrIndexNotFound) {
			return nil, domain.ErrIndexNotReady
		}
		return nil, fmt.Errorf("index info %s: %w", r.name, err)
	}
	return info, nil
}

// TopAuthors returns the most prolific bylines with their article counts.
func (r *Repo) TopAuthors(ctx context.Context, limit int) ([]stats.AuthorCount, error) {
	rows, err := r.store.Aggregate(ctx, &db.AggregateQuery{
		Index:         r.name,
		GroupBy:       "author_exact",
		ReduceCountAs: "count",
		SortBy:        "count",
		SortDesc:      true,
		Limit:         limit,
	})
	if err != nil {
		if errors.Is(err, db.ErrIndexNotFound) {
			return nil, domain.ErrIndexNotReady
		}
		return nil, fmt.Errorf("top authors: %w", err)
	}

	out := make([]stats.AuthorCount, 0, len(rows))
	for _, row := range rows {
		count, err := strconv.Atoi(row["count"])
		if err != nil {
			continue
		}
		out = append(out, stats.AuthorCount{Author: row["author_exact"], Count: count})
	}
	return out, nil
}

// Histogram returns article counts bucketed by publication day.
func (r *Repo) Histogram(ctx context.Context) ([]stats.DayCount, error) {
	rows, err := r.store.Aggregate(ctx, &db.AggregateQuery{
		Index: r.name,
		Apply: []db.ApplyStep{
			{Expression: fmt.Sprintf("floor(@publication_date/%d)", millisPerDay), As: "day"},
		},
		GroupBy:       "day",
		ReduceCountAs: "count",
		SortBy:        "day",
		Limit:         0,
	})
	if err != nil {
		if errors.Is(err, db.ErrIndexNotFound) {
			return nil, domain.ErrIndexNotReady
		}
		return nil, fmt.Errorf("histogram: %w", err)
	}

	out := make([]stats.DayCount, 0, len(rows))
	for _, row := range rows {
		day, err := strconv.ParseFloat(row["day"], 64)
		if err != nil {
			continue
		}
		count, err := strconv.Atoi(row["count"])
		if err != nil {
			continue
		}
		out = append(out, stats.DayCount{
			Day:   time.UnixMilli(int64(day) * millisPerDay).UTC(),
			Count: count,
		})
	}
	return out, nil
}
