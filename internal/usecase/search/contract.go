package search

import (
	"context"

	domsearch "github.com/kailas-cloud/pressdex/internal/domain/search"
)

// Repository defines the search-execution contract.
type Repository interface {
	Find(ctx context.Context, q *domsearch.Query) (*domsearch.Page, error)
}
