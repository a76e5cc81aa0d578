package stats

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/pressdex/internal/domain/stats"
)

// topAuthorsLimit caps the per-author breakdown.
const topAuthorsLimit = 10

// Service aggregates index-wide statistics.
type Service struct {
	indexes Indexes
}

// New creates a stats service.
func New(indexes Indexes) *Service {
	return &Service{indexes: indexes}
}

// Overview collects document counts, index size, the top-author
// breakdown, and the per-day publication histogram.
func (s *Service) Overview(ctx context.Context) (stats.Overview, error) {
	info, err := s.indexes.Info(ctx)
	if err != nil {
		return stats.Overview{}, fmt.Errorf("index info: %w", err)
	}

	authors, err := s.indexes.TopAuthors(ctx, topAuthorsLimit)
	if err != nil {
		return stats.Overview{}, fmt.Errorf("top authors: %w", err)
	}

	perDay, err := s.indexes.Histogram(ctx)
	if err != nil {
		return stats.Overview{}, fmt.Errorf("histogram: %w", err)
	}

	return stats.Overview{
		Articles:       info.NumDocs,
		DeletedDocs:    info.DeletedDocs(),
		IndexSizeBytes: info.IndexSizeBytes,
		TopAuthors:     authors,
		PerDay:         perDay,
	}, nil
}
