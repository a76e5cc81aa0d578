package stats

import (
	"context"

	"github.com/kailas-cloud/pressdex/internal/db"
	"github.com/kailas-cloud/pressdex/internal/domain/stats"
)

// Indexes reads index statistics and aggregations.
type Indexes interface {
	Info(ctx context.Context) (*db.IndexInfo, error)
	TopAuthors(ctx context.Context, limit int) ([]stats.AuthorCount, error)
	Histogram(ctx context.Context) ([]stats.DayCount, error)
}
