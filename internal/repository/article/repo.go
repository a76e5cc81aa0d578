package article

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kailas-cloud/pressdex/internal/db"
	"github.com/kailas-cloud/pressdex/internal/domain"
	domart "github.com/kailas-cloud/pressdex/internal/domain/article"
	"github.com/kailas-cloud/pressdex/internal/domain/batch"
)

// KeyPrefix is the hash key namespace for articles.
const KeyPrefix = "pressdex:articles:"

// store is the consumer interface for article persistence (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, key string) error
	DelMulti(ctx context.Context, keys []string) ([]bool, error)
	Exists(ctx context.Context, key string) (bool, error)
	Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index, query string) (int, error)
	WaitIndexed(ctx context.Context, name string) error
}

// Repo implements usecase/article.Repository over hash storage.
// Every mutation waits for the index to drain so the write is visible
// to searches before the call returns.
type Repo struct {
	store          store
	index          string
	refreshTimeout time.Duration
}

// New creates an article repository bound to one search index.
func New(s store, index string) *Repo {
	return &Repo{store: s, index: index, refreshTimeout: 5 * time.Second}
}

// WithRefreshTimeout caps how long a mutation waits for the index to
// drain before giving up.
func (r *Repo) WithRefreshTimeout(d time.Duration) *Repo {
	if d > 0 {
		r.refreshTimeout = d
	}
	return r
}

func (r *Repo) waitIndexed(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.refreshTimeout)
	defer cancel()
	return r.store.WaitIndexed(ctx, r.index)
}

// Create stores an article and returns it with its assigned ID.
func (r *Repo) Create(ctx context.Context, art domart.Article) (domart.Article, error) {
	if art.ID() == "" {
		art = art.WithID(uuid.NewString())
	}

	key := articleKey(art.ID())
	if err := r.store.HSet(ctx, key, buildHashFields(&art)); err != nil {
		return domart.Article{}, fmt.Errorf("store %s: %w", key, err)
	}

	if err := r.waitIndexed(ctx); err != nil {
		return domart.Article{}, fmt.Errorf("wait indexed after create: %w", err)
	}
	return art, nil
}

// Get returns an article by ID.
func (r *Repo) Get(ctx context.Context, id string) (domart.Article, error) {
	key := articleKey(id)
	fields, err := r.store.HGetAll(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domart.Article{}, domain.ErrArticleNotFound
		}
		return domart.Article{}, fmt.Errorf("hgetall %s: %w", key, err)
	}
	if len(fields) == 0 {
		return domart.Article{}, domain.ErrArticleNotFound
	}
	return ParseHashFields(id, fields), nil
}

// GetMulti fetches articles in one pipelined round-trip. Missing IDs
// are reported separately rather than failing the whole batch.
func (r *Repo) GetMulti(ctx context.Context, ids []string) (found []domart.Article, missing []string, err error) {
	if len(ids) == 0 {
		return nil, nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = articleKey(id)
	}

	maps, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, nil, fmt.Errorf("hgetall multi: %w", err)
	}

	found = make([]domart.Article, 0, len(ids))
	for i, fields := range maps {
		if len(fields) == 0 {
			missing = append(missing, ids[i])
			continue
		}
		found = append(found, ParseHashFields(ids[i], fields))
	}
	return found, missing, nil
}

// Delete removes an article by ID.
func (r *Repo) Delete(ctx context.Context, id string) error {
	key := articleKey(id)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrArticleNotFound
	}

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}

	if err := r.waitIndexed(ctx); err != nil {
		return fmt.Errorf("wait indexed after delete: %w", err)
	}
	return nil
}

// DeleteMulti removes articles in one pipelined round-trip and reports
// the per-item outcome.
func (r *Repo) DeleteMulti(ctx context.Context, ids []string) ([]batch.Result, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = articleKey(id)
	}

	removed, err := r.store.DelMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("del multi: %w", err)
	}

	results := make([]batch.Result, len(ids))
	for i, id := range ids {
		if removed[i] {
			results[i] = batch.NewOK(id)
		} else {
			results[i] = batch.NewError(id, domain.ErrArticleNotFound)
		}
	}

	if err := r.waitIndexed(ctx); err != nil {
		return nil, fmt.Errorf("wait indexed after delete: %w", err)
	}
	return results, nil
}

// Count returns the number of indexed articles.
func (r *Repo) Count(ctx context.Context) (int, error) {
	count, err := r.store.SearchCount(ctx, r.index, "*")
	if err != nil {
		if errors.Is(err, db.ErrIndexNotFound) {
			return 0, domain.ErrIndexNotReady
		}
		return 0, fmt.Errorf("count: %w", err)
	}
	return count, nil
}

// List returns a window of articles, sorted by the given index field.
func (r *Repo) List(ctx context.Context, from, size int, sortBy string, sortDesc bool) (
	[]domart.Article, int, error,
) {
	result, err := r.store.Search(ctx, &db.SearchQuery{
		Index:    r.index,
		Query:    "*",
		Offset:   from,
		Limit:    size,
		SortBy:   sortBy,
		SortDesc: sortDesc,
	})
	if err != nil {
		if errors.Is(err, db.ErrIndexNotFound) {
			return nil, 0, domain.ErrIndexNotReady
		}
		return nil, 0, fmt.Errorf("list: %w", err)
	}

	articles := make([]domart.Article, 0, len(result.Entries))
	for _, entry := range result.Entries {
		articles = append(articles, ParseHashFields(idFromKey(entry.Key), entry.Fields))
	}
	return articles, result.Total, nil
}

func articleKey(id string) string {
	return KeyPrefix + id
}

func idFromKey(key string) string {
	return strings.TrimPrefix(key, KeyPrefix)
}
