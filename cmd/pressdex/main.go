package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/pressdex/internal/config"
	dbRedis "github.com/kailas-cloud/pressdex/internal/db/redis"
	logpkg "github.com/kailas-cloud/pressdex/internal/logger"
	"github.com/kailas-cloud/pressdex/internal/metrics"
	articlerepo "github.com/kailas-cloud/pressdex/internal/repository/article"
	indexrepo "github.com/kailas-cloud/pressdex/internal/repository/index"
	searchrepo "github.com/kailas-cloud/pressdex/internal/repository/search"
	chiTransport "github.com/kailas-cloud/pressdex/internal/transport/chi"
	"github.com/kailas-cloud/pressdex/internal/transport/web"
	articleuc "github.com/kailas-cloud/pressdex/internal/usecase/article"
	healthuc "github.com/kailas-cloud/pressdex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/pressdex/internal/usecase/search"
	statsuc "github.com/kailas-cloud/pressdex/internal/usecase/stats"
	"github.com/kailas-cloud/pressdex/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg := config.MustLoad(env)

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting pressdex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.String("index", cfg.Index.Name),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create search engine store", zap.Error(err))
	}
	defer store.Close()

	// Wait for the search engine to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Search engine not ready", zap.Error(err))
	}
	logger.Info("Connected to search engine")

	// Repositories
	artRepo := articlerepo.New(store, cfg.Index.Name).
		WithRefreshTimeout(time.Duration(cfg.Index.RefreshTimeoutSec) * time.Second)
	idxRepo := indexrepo.New(store, cfg.Index.Name)
	schRepo := searchrepo.New(store, cfg.Index.Name)

	// Create the index up front so searches work from the first request.
	if created, err := idxRepo.Ensure(ctx); err != nil {
		logger.Fatal("Failed to ensure article index", zap.Error(err))
	} else if created {
		logger.Info("Created article index", zap.String("index", cfg.Index.Name))
	}

	// Use case services
	artSvc := articleuc.New(artRepo, cfg.Index.MaxBatchSize).
		WithPageLimits(cfg.Index.DefaultPageSize, cfg.Index.MaxPageSize)
	schSvc := searchuc.New(schRepo).
		WithPageLimits(cfg.Index.DefaultPageSize, cfg.Index.MaxPageSize)
	statsSvc := statsuc.New(idxRepo)
	healthSvc := healthuc.New(store, idxRepo)

	server := chiTransport.NewServer(artSvc, schSvc, statsSvc, healthSvc, idxRepo, cfg.Index.Name, logger)

	webHandler, err := web.NewHandler(cfg.Index.Name, logger)
	if err != nil {
		logger.Fatal("Failed to build web front end", zap.Error(err))
	}

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())

	server.Mount(r)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/", webHandler.Index)
	r.Handle("/static/*", webHandler.Static())

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]any{
						"success": false,
						"error":   "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("remote_addr", r.RemoteAddr),
			)
		})
	}
}
