package chi

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	chirouter "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/pressdex/internal/db"
	domart "github.com/kailas-cloud/pressdex/internal/domain/article"
	"github.com/kailas-cloud/pressdex/internal/domain/batch"
	domsearch "github.com/kailas-cloud/pressdex/internal/domain/search"
	domstats "github.com/kailas-cloud/pressdex/internal/domain/stats"
	articleuc "github.com/kailas-cloud/pressdex/internal/usecase/article"
	healthuc "github.com/kailas-cloud/pressdex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/pressdex/internal/usecase/search"
	statsuc "github.com/kailas-cloud/pressdex/internal/usecase/stats"
)

// --- Mocks ---

type mockArticleRepo struct {
	createFn      func(ctx context.Context, art domart.Article) (domart.Article, error)
	getFn         func(ctx context.Context, id string) (domart.Article, error)
	getMultiFn    func(ctx context.Context, ids []string) ([]domart.Article, []string, error)
	deleteFn      func(ctx context.Context, id string) error
	deleteMultiFn func(ctx context.Context, ids []string) ([]batch.Result, error)
	countFn       func(ctx context.Context) (int, error)
	listFn        func(ctx context.Context, from, size int, sortBy string, sortDesc bool) ([]domart.Article, int, error)
}

func (m *mockArticleRepo) Create(ctx context.Context, art domart.Article) (domart.Article, error) {
	if m.createFn != nil {
		return m.createFn(ctx, art)
	}
	return art.WithID("generated"), nil
}

func (m *mockArticleRepo) Get(ctx context.Context, id string) (domart.Article, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return testArticle(id), nil
}

func (m *mockArticleRepo) GetMulti(ctx context.Context, ids []string) ([]domart.Article, []string, error) {
	if m.getMultiFn != nil {
		return m.getMultiFn(ctx, ids)
	}
	return nil, nil, nil
}

func (m *mockArticleRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockArticleRepo) DeleteMulti(ctx context.Context, ids []string) ([]batch.Result, error) {
	if m.deleteMultiFn != nil {
		return m.deleteMultiFn(ctx, ids)
	}
	return nil, nil
}

func (m *mockArticleRepo) Count(ctx context.Context) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

func (m *mockArticleRepo) List(
	ctx context.Context, from, size int, sortBy string, sortDesc bool,
) ([]domart.Article, int, error) {
	if m.listFn != nil {
		return m.listFn(ctx, from, size, sortBy, sortDesc)
	}
	return nil, 0, nil
}

type mockSearchRepo struct {
	findFn func(ctx context.Context, q *domsearch.Query) (*domsearch.Page, error)
}

func (m *mockSearchRepo) Find(ctx context.Context, q *domsearch.Query) (*domsearch.Page, error) {
	if m.findFn != nil {
		return m.findFn(ctx, q)
	}
	return &domsearch.Page{}, nil
}

type mockIndexes struct {
	infoFn       func(ctx context.Context) (*db.IndexInfo, error)
	topAuthorsFn func(ctx context.Context, limit int) ([]domstats.AuthorCount, error)
	histogramFn  func(ctx context.Context) ([]domstats.DayCount, error)
}

func (m *mockIndexes) Info(ctx context.Context) (*db.IndexInfo, error) {
	if m.infoFn != nil {
		return m.infoFn(ctx)
	}
	return &db.IndexInfo{}, nil
}

func (m *mockIndexes) TopAuthors(ctx context.Context, limit int) ([]domstats.AuthorCount, error) {
	if m.topAuthorsFn != nil {
		return m.topAuthorsFn(ctx, limit)
	}
	return nil, nil
}

func (m *mockIndexes) Histogram(ctx context.Context) ([]domstats.DayCount, error) {
	if m.histogramFn != nil {
		return m.histogramFn(ctx)
	}
	return nil, nil
}

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

type mockIndexAdmin struct {
	ensureFn func(ctx context.Context) (bool, error)
}

func (m *mockIndexAdmin) Ensure(ctx context.Context) (bool, error) {
	if m.ensureFn != nil {
		return m.ensureFn(ctx)
	}
	return false, nil
}

// --- Fixture ---

type fixture struct {
	articles *mockArticleRepo
	search   *mockSearchRepo
	indexes  *mockIndexes
	pinger   *mockPinger
	admin    *mockIndexAdmin
	router   chirouter.Router
}

func newTestServer(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		articles: &mockArticleRepo{},
		search:   &mockSearchRepo{},
		indexes:  &mockIndexes{},
		pinger:   &mockPinger{},
		admin:    &mockIndexAdmin{},
	}

	srv := NewServer(
		articleuc.New(f.articles, 100),
		searchuc.New(f.search),
		statsuc.New(f.indexes),
		healthuc.New(f.pinger, f.indexes),
		f.admin,
		"articles",
		zap.NewNop(),
	)

	f.router = chirouter.NewRouter()
	srv.Mount(f.router)
	return f
}

func (f *fixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func testArticle(id string) domart.Article {
	return domart.Reconstruct(
		id,
		"Markets rally on rate cut",
		"Stocks climb after the announcement.",
		"Full body of the market report.",
		"Jane Doe",
		time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 15, 9, 5, 0, 0, time.UTC),
	)
}
