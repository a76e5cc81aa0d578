package article

import (
	"context"

	domart "github.com/kailas-cloud/pressdex/internal/domain/article"
	"github.com/kailas-cloud/pressdex/internal/domain/batch"
)

// Repository defines the storage contract for articles.
type Repository interface {
	Create(ctx context.Context, art domart.Article) (domart.Article, error)
	Get(ctx context.Context, id string) (domart.Article, error)
	GetMulti(ctx context.Context, ids []string) (found []domart.Article, missing []string, err error)
	Delete(ctx context.Context, id string) error
	DeleteMulti(ctx context.Context, ids []string) ([]batch.Result, error)
	Count(ctx context.Context) (int, error)
	List(ctx context.Context, from, size int, sortBy string, sortDesc bool) ([]domart.Article, int, error)
}
