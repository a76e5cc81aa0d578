package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kailas-cloud/pressdex/internal/domain"
	domsearch "github.com/kailas-cloud/pressdex/internal/domain/search"
)

// AdvancedParams carries the full set of search controls.
type AdvancedParams struct {
	Term     string
	Author   string
	DateFrom time.Time
	DateTo   time.Time
	From     int
	Size     int
	SortBy   string
	SortDesc bool
}

// Service handles article search.
type Service struct {
	repo        Repository
	defaultSize int
	maxSize     int
}

// New creates a search service with the built-in page size limits.
func New(repo Repository) *Service {
	return &Service{
		repo:        repo,
		defaultSize: domsearch.DefaultSize,
		maxSize:     domsearch.MaxSize,
	}
}

// WithPageLimits overrides the default and maximum result page size,
// typically from configuration. Zero or negative values keep the
// built-in limits.
func (s *Service) WithPageLimits(defaultSize, maxSize int) *Service {
	if defaultSize > 0 {
		s.defaultSize = defaultSize
	}
	if maxSize > 0 {
		s.maxSize = maxSize
	}
	return s
}

// Quick runs a free-text search. The term is required; results come
// back in relevance order with highlights.
func (s *Service) Quick(ctx context.Context, term string, from, size int) (*domsearch.Page, error) {
	if strings.TrimSpace(term) == "" {
		return nil, domain.NewValidation("q", "is required")
	}

	q, err := domsearch.New(term,
		domsearch.WithLimits(s.defaultSize, s.maxSize),
		domsearch.WithPagination(from, size),
	)
	if err != nil {
		return nil, err
	}

	page, err := s.repo.Find(ctx, &q)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return page, nil
}

// Advanced runs a filtered search. A blank term lists everything that
// matches the filters.
func (s *Service) Advanced(ctx context.Context, p AdvancedParams) (*domsearch.Page, error) {
	opts := []domsearch.Option{
		domsearch.WithLimits(s.defaultSize, s.maxSize),
		domsearch.WithPagination(p.From, p.Size),
	}

	if p.Author != "" {
		opts = append(opts, domsearch.WithAuthor(p.Author))
	}
	if !p.DateFrom.IsZero() || !p.DateTo.IsZero() {
		opts = append(opts, domsearch.WithDateRange(p.DateFrom, p.DateTo))
	}
	if p.SortBy != "" {
		opts = append(opts, domsearch.WithSort(p.SortBy, p.SortDesc))
	}

	q, err := domsearch.New(strings.TrimSpace(p.Term), opts...)
	if err != nil {
		return nil, err
	}

	page, err := s.repo.Find(ctx, &q)
	if err != nil {
		return nil, fmt.Errorf("advanced search: %w", err)
	}
	return page, nil
}
