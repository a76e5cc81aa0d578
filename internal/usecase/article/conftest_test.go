package article

import (
	"context"
	"testing"
	"time"

	domart "github.com/kailas-cloud/pressdex/internal/domain/article"
	"github.com/kailas-cloud/pressdex/internal/domain/batch"
)

// mockRepo implements Repository for tests.
type mockRepo struct {
	createFn      func(ctx context.Context, art domart.Article) (domart.Article, error)
	getFn         func(ctx context.Context, id string) (domart.Article, error)
	getMultiFn    func(ctx context.Context, ids []string) ([]domart.Article, []string, error)
	deleteFn      func(ctx context.Context, id string) error
	deleteMultiFn func(ctx context.Context, ids []string) ([]batch.Result, error)
	countFn       func(ctx context.Context) (int, error)
	listFn        func(ctx context.Context, from, size int, sortBy string, sortDesc bool) ([]domart.Article, int, error)
}

func (m *mockRepo) Create(ctx context.Context, art domart.Article) (domart.Article, error) {
	if m.createFn != nil {
		return m.createFn(ctx, art)
	}
	return art.WithID("generated"), nil
}

func (m *mockRepo) Get(ctx context.Context, id string) (domart.Article, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return domart.Article{}, nil
}

func (m *mockRepo) GetMulti(ctx context.Context, ids []string) ([]domart.Article, []string, error) {
	if m.getMultiFn != nil {
		return m.getMultiFn(ctx, ids)
	}
	return nil, nil, nil
}

func (m *mockRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockRepo) DeleteMulti(ctx context.Context, ids []string) ([]batch.Result, error) {
	if m.deleteMultiFn != nil {
		return m.deleteMultiFn(ctx, ids)
	}
	return nil, nil
}

func (m *mockRepo) Count(ctx context.Context) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

func (m *mockRepo) List(
	ctx context.Context, from, size int, sortBy string, sortDesc bool,
) ([]domart.Article, int, error) {
	if m.listFn != nil {
		return m.listFn(ctx, from, size, sortBy, sortDesc)
	}
	return nil, 0, nil
}

func newTestService(t *testing.T) (*Service, *mockRepo) {
	t.Helper()
	mr := &mockRepo{}
	return New(mr, 3), mr
}

func validInput() IngestInput {
	return IngestInput{
		Title:           "Headline",
		Description:     "Blurb",
		Body:            "Body text.",
		Author:          "Jane Doe",
		PublicationDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
	}
}
