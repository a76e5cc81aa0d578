package article

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/pressdex/internal/domain"
	domart "github.com/kailas-cloud/pressdex/internal/domain/article"
	"github.com/kailas-cloud/pressdex/internal/domain/batch"
	domsearch "github.com/kailas-cloud/pressdex/internal/domain/search"
)

// IngestInput carries the fields of a new article submission.
type IngestInput struct {
	Title           string
	Description     string
	Body            string
	Author          string
	PublicationDate time.Time
}

// ListPage is one window of the article listing.
type ListPage struct {
	Articles []domart.Article
	Total    int
	From     int
	Size     int
}

// HasMore reports whether articles exist beyond this window, judged by
// the window size rather than the number of articles returned.
func (p *ListPage) HasMore() bool {
	return p.Total > p.From+p.Size
}

// Service handles article ingestion, retrieval, and deletion.
type Service struct {
	repo            Repository
	maxBatchSize    int
	defaultPageSize int
	maxPageSize     int
}

// New creates an article service.
func New(repo Repository, maxBatchSize int) *Service {
	if maxBatchSize <= 0 {
		maxBatchSize = 100
	}
	return &Service{
		repo:            repo,
		maxBatchSize:    maxBatchSize,
		defaultPageSize: domsearch.DefaultSize,
		maxPageSize:     domsearch.MaxSize,
	}
}

// WithPageLimits overrides the default and maximum listing page size,
// typically from configuration. Zero or negative values keep the
// built-in limits.
func (s *Service) WithPageLimits(defaultSize, maxSize int) *Service {
	if defaultSize > 0 {
		s.defaultPageSize = defaultSize
	}
	if maxSize > 0 {
		s.maxPageSize = maxSize
	}
	return s
}

// Ingest validates and stores a new article, returning it with its
// assigned ID. The call returns after the article is searchable.
func (s *Service) Ingest(ctx context.Context, in IngestInput) (domart.Article, error) {
	art, err := domart.New("", in.Title, in.Description, in.Body, in.Author, in.PublicationDate)
	if err != nil {
		return domart.Article{}, err
	}

	created, err := s.repo.Create(ctx, art)
	if err != nil {
		return domart.Article{}, fmt.Errorf("ingest article: %w", err)
	}
	return created, nil
}

// Get returns an article by ID.
func (s *Service) Get(ctx context.Context, id string) (domart.Article, error) {
	if id == "" {
		return domart.Article{}, domain.NewValidation("id", "is required")
	}
	return s.repo.Get(ctx, id)
}

// GetBatch fetches up to maxBatchSize articles at once, reporting
// missing IDs alongside the found articles.
func (s *Service) GetBatch(ctx context.Context, ids []string) (
	found []domart.Article, missing []string, err error,
) {
	if err := s.validateBatch(ids); err != nil {
		return nil, nil, err
	}
	return s.repo.GetMulti(ctx, ids)
}

// Delete removes an article by ID.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.NewValidation("id", "is required")
	}
	return s.repo.Delete(ctx, id)
}

// DeleteBatch removes up to maxBatchSize articles at once and reports
// the per-item outcome.
func (s *Service) DeleteBatch(ctx context.Context, ids []string) ([]batch.Result, error) {
	if err := s.validateBatch(ids); err != nil {
		return nil, err
	}
	return s.repo.DeleteMulti(ctx, ids)
}

// Count returns the number of indexed articles.
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

// List returns a page of articles. Sort defaults to newest-first;
// pagination follows the search defaults and caps.
func (s *Service) List(ctx context.Context, from, size int, sortBy string, sortDesc bool) (*ListPage, error) {
	opts := []domsearch.Option{
		domsearch.WithLimits(s.defaultPageSize, s.maxPageSize),
		domsearch.WithPagination(from, size),
	}
	if sortBy == "" {
		sortBy, sortDesc = "publication_date", true
	}
	opts = append(opts, domsearch.WithSort(sortBy, sortDesc))

	q, err := domsearch.New("", opts...)
	if err != nil {
		return nil, err
	}

	articles, total, err := s.repo.List(ctx, q.From(), q.Size(), q.SortBy(), q.SortDesc())
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return &ListPage{Articles: articles, Total: total, From: q.From(), Size: q.Size()}, nil
}

func (s *Service) validateBatch(ids []string) error {
	if len(ids) == 0 {
		return domain.NewValidation("ids", "must not be empty")
	}
	if len(ids) > s.maxBatchSize {
		return domain.NewValidation("ids", fmt.Sprintf("exceeds batch limit of %d", s.maxBatchSize))
	}
	for _, id := range ids {
		if id == "" {
			return domain.NewValidation("ids", "must not contain blank IDs")
		}
	}
	return nil
}
