package chi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/pressdex/internal/domain"
	domsearch "github.com/kailas-cloud/pressdex/internal/domain/search"
	articleuc "github.com/kailas-cloud/pressdex/internal/usecase/article"
	healthuc "github.com/kailas-cloud/pressdex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/pressdex/internal/usecase/search"
	statsuc "github.com/kailas-cloud/pressdex/internal/usecase/stats"
	"github.com/kailas-cloud/pressdex/internal/version"
)

// IndexAdmin creates the article index on demand.
type IndexAdmin interface {
	Ensure(ctx context.Context) (created bool, err error)
}

// Server exposes the article API over chi.
type Server struct {
	articles      *articleuc.Service
	search        *searchuc.Service
	stats         *statsuc.Service
	health        *healthuc.Service
	index         IndexAdmin
	indexName     string
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	articles *articleuc.Service,
	search *searchuc.Service,
	stats *statsuc.Service,
	health *healthuc.Service,
	index IndexAdmin,
	indexName string,
	logger *zap.Logger,
) *Server {
	s := &Server{
		articles:  articles,
		search:    search,
		stats:     stats,
		health:    health,
		index:     index,
		indexName: indexName,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrArticleNotFound, http.StatusNotFound),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound),
		sentinelHandler(domain.ErrValidation, http.StatusBadRequest),
		sentinelHandler(domain.ErrIndexNotReady, http.StatusServiceUnavailable),
		sentinelHandler(domain.ErrEngineUnavailable, http.StatusServiceUnavailable),
	}
	return s
}

// Mount registers the API routes on the given router.
func (s *Server) Mount(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/", s.handleInfo)
		r.Post("/upload", s.handleUpload)
		r.Get("/find", s.handleList)
		r.Post("/find/batch", s.handleFindBatch)
		r.Get("/find/{id}", s.handleFind)
		r.Delete("/delete/{id}", s.handleDelete)
		r.Post("/delete/bulk", s.handleDeleteBulk)
		r.Get("/search", s.handleSearch)
		r.Post("/search/advanced", s.handleAdvancedSearch)
		r.Get("/stats", s.handleStats)
		r.Post("/init", s.handleInit)
	})
	r.Get("/health", s.handleHealth)
}

// handleInfo handles GET /api/ — service identity plus engine health.
func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		status = http.StatusServiceUnavailable
	}

	resp := map[string]any{
		"success":   report.Status != healthuc.Unhealthy,
		"name":      "pressdex",
		"version":   version.Version,
		"index":     s.indexName,
		"status":    report.Status,
		"checks":    report.Checks,
		"endpoints": endpointCatalog,
	}
	if count, err := s.articles.Count(r.Context()); err == nil {
		resp["articles"] = count
	}
	writeJSON(w, status, resp)
}

// endpointCatalog mirrors the routes registered in Mount.
var endpointCatalog = map[string]string{
	"POST /api/upload":          "index a new article",
	"GET /api/find":             "list articles",
	"GET /api/find/{id}":        "fetch an article",
	"POST /api/find/batch":      "fetch several articles",
	"DELETE /api/delete/{id}":   "delete an article",
	"POST /api/delete/bulk":     "delete several articles",
	"GET /api/search":           "free-text search with highlights",
	"POST /api/search/advanced": "filtered search",
	"GET /api/stats":            "index statistics",
	"POST /api/init":            "create the index if absent",
}

// handleHealth handles GET /health for probes.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// handleUpload handles POST /api/upload.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	var req uploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	pubDate, err := parseDate(req.PublicationDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := s.articles.Ingest(r.Context(), articleuc.IngestInput{
		Title:           req.Title,
		Description:     req.Description,
		Body:            req.Body,
		Author:          req.Author,
		PublicationDate: pubDate,
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "article indexed",
		"id":      created.ID(),
		"article": articleToJSON(&created),
	})
}

// handleFind handles GET /api/find/{id}.
func (s *Server) handleFind(w http.ResponseWriter, r *http.Request) {
	art, err := s.articles.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"article": articleToJSON(&art),
	})
}

// handleList handles GET /api/find — a sorted article listing.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	from := queryInt(r, "from", 0)
	size := queryInt(r, "size", 0)
	sortBy, sortDesc := parseSort(r.URL.Query().Get("sort"))

	page, err := s.articles.List(r.Context(), from, size, sortBy, sortDesc)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"total":    page.Total,
		"articles": articlesToJSON(page.Articles),
		"pagination": paginationJSON{
			From:    page.From,
			Size:    page.Size,
			HasMore: page.HasMore(),
		},
	})
}

// handleFindBatch handles POST /api/find/batch.
func (s *Server) handleFindBatch(w http.ResponseWriter, r *http.Request) {
	var req idsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	found, missing, err := s.articles.GetBatch(r.Context(), req.IDs)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	if missing == nil {
		missing = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"articles":  articlesToJSON(found),
		"not_found": missing,
	})
}

// handleDelete handles DELETE /api/delete/{id}.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.articles.Delete(r.Context(), id); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "article deleted",
		"id":      id,
	})
}

// handleDeleteBulk handles POST /api/delete/bulk.
func (s *Server) handleDeleteBulk(w http.ResponseWriter, r *http.Request) {
	var req idsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	results, err := s.articles.DeleteBatch(r.Context(), req.IDs)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	deleted, failed := partitionBatch(results)

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("%d deleted, %d failed", len(deleted), len(failed)),
		"deleted": deleted,
		"failed":  failed,
	})
}

// handleSearch handles GET /api/search — free-text with highlights.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	page, err := s.search.Quick(r.Context(),
		r.URL.Query().Get("q"),
		queryInt(r, "from", 0),
		queryInt(r, "size", 0),
	)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeSearchPage(w, page)
}

// handleAdvancedSearch handles POST /api/search/advanced.
func (s *Server) handleAdvancedSearch(w http.ResponseWriter, r *http.Request) {
	var req advancedSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	dateFrom, err := parseDate(req.Filters.DateFrom)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	dateTo, err := parseDate(req.Filters.DateTo)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sortBy, sortDesc := parseSort(req.Sort)
	page, err := s.search.Advanced(r.Context(), searchuc.AdvancedParams{
		Term:     req.Query,
		Author:   req.Filters.Author,
		DateFrom: dateFrom,
		DateTo:   dateTo,
		From:     req.From,
		Size:     req.Size,
		SortBy:   sortBy,
		SortDesc: sortDesc,
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeSearchPage(w, page)
}

// handleStats handles GET /api/stats.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	ov, err := s.stats.Overview(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"stats":   statsToJSON(&ov),
	})
}

// handleInit handles POST /api/init — create the index if absent.
func (s *Server) handleInit(w http.ResponseWriter, r *http.Request) {
	created, err := s.index.Ensure(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	message := "index already exists"
	if created {
		message = "index created"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": message,
		"created": created,
		"index":   s.indexName,
	})
}

func writeSearchPage(w http.ResponseWriter, page *domsearch.Page) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"total":    page.Total,
		"articles": hitsToJSON(page.Hits),
		"pagination": paginationJSON{
			From:    page.From,
			Size:    page.Size,
			HasMore: page.HasMore(),
		},
	})
}

func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
