package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/hirebase/assessrec/internal/config"
	"github.com/hirebase/assessrec/internal/db"
	dbRedis "github.com/hirebase/assessrec/internal/db/redis"
	"github.com/hirebase/assessrec/internal/domain"
	domcat "github.com/hirebase/assessrec/internal/domain/catalog"
	"github.com/hirebase/assessrec/internal/index"
	logpkg "github.com/hirebase/assessrec/internal/logger"
	"github.com/hirebase/assessrec/internal/metrics"
	catalogrepo "github.com/hirebase/assessrec/internal/repository/catalog"
	"github.com/hirebase/assessrec/internal/repository/fetchcache"
	labelsrepo "github.com/hirebase/assessrec/internal/repository/labels"
	chiTransport "github.com/hirebase/assessrec/internal/transport/chi"
	"github.com/hirebase/assessrec/internal/transport/fetch"
	evaluateuc "github.com/hirebase/assessrec/internal/usecase/evaluate"
	healthuc "github.com/hirebase/assessrec/internal/usecase/health"
	recommenduc "github.com/hirebase/assessrec/internal/usecase/recommend"
	"github.com/hirebase/assessrec/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting assessrec API server",
		zap.String("build", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("catalog_path", cfg.Catalog.Path),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
	)

	// Register recommendation metrics explicitly (no init())
	metrics.RegisterRecommendMetrics()

	// Load the catalog and fit the vector space before serving: all
	// request-path reads are lock-free on this immutable state.
	cat, err := catalogrepo.Load(cfg.Catalog.Path, logger)
	if err != nil {
		logger.Fatal("Failed to load catalog", zap.Error(err))
	}
	idx := index.Fit(cat.CompositeTexts())
	if idx.Fitted() {
		logger.Info("Fitted lexical index",
			zap.Int("items", idx.Len()),
			zap.Int("vocabulary", idx.VocabularySize()),
		)
	} else {
		logger.Warn("Catalog is empty, serving empty recommendations")
	}

	// Optional fetched-content cache
	var store db.Store
	if cfg.Cache.Enabled {
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer store.Close()

		ctx := context.Background()
		if err := store.WaitForReady(ctx, time.Duration(cfg.Cache.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Cache store not ready", zap.Error(err))
		}
		logger.Info("Connected to cache store")
	}

	// URL fetcher, optionally wrapped with the cache decorator
	var fetcher recommenduc.Fetcher = fetch.New(fetch.Config{
		Timeout:      time.Duration(cfg.Fetch.TimeoutSec) * time.Second,
		MaxBodyBytes: cfg.Fetch.MaxBodyBytes,
		UserAgent:    cfg.Fetch.UserAgent,
		Logger:       logger,
	})
	if store != nil {
		fetcher = fetchcache.New(
			fetcher, store, time.Duration(cfg.Cache.TTLSec)*time.Second,
			metrics.FetchCacheTotal, logger,
		)
	}

	// Create use case services
	engine := recommenduc.New(cat, idx, fetcher, logger).
		WithMetrics(metrics.RecommendFallbacksTotal, metrics.FetchFailuresTotal)

	cases, err := labelsrepo.Load(cfg.Eval.LabelsPath, logger)
	if err != nil {
		logger.Fatal("Failed to load labeled test cases", zap.Error(err))
	}
	evaluator := evaluateuc.New(engine, cases)

	var cachePinger healthuc.CachePinger
	if store != nil {
		cachePinger = store
	}
	healthSvc := healthuc.New(newCatalogReadiness(cat, idx), cachePinger)

	// Create chi server
	server := chiTransport.NewServer(engine, evaluator, healthSvc, cfg.Eval.DefaultK, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

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

// catalogReadiness implements health.CatalogChecker over the immutable
// catalog and fitted index.
type catalogReadiness struct {
	catalog domcat.Catalog
	index   *index.Index
}

func newCatalogReadiness(cat domcat.Catalog, idx *index.Index) *catalogReadiness {
	return &catalogReadiness{catalog: cat, index: idx}
}

func (c *catalogReadiness) Ready() error {
	if len(c.catalog) == 0 {
		return domain.ErrCatalogUnavailable
	}
	if !c.index.Fitted() {
		return domain.ErrIndexNotFitted
	}
	return nil
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
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
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

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
