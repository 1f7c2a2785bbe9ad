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
	"go.uber.org/zap"

	"github.com/kailas-cloud/strindex/internal/config"
	dbRedis "github.com/kailas-cloud/strindex/internal/db/redis"
	logpkg "github.com/kailas-cloud/strindex/internal/logger"
	"github.com/kailas-cloud/strindex/internal/metrics"
	"github.com/kailas-cloud/strindex/internal/repository/memstore"
	"github.com/kailas-cloud/strindex/internal/repository/translatecache"
	chiTransport "github.com/kailas-cloud/strindex/internal/transport/chi"
	openaiNL "github.com/kailas-cloud/strindex/internal/transport/openai"
	healthuc "github.com/kailas-cloud/strindex/internal/usecase/health"
	nlqueryuc "github.com/kailas-cloud/strindex/internal/usecase/nlquery"
	queryuc "github.com/kailas-cloud/strindex/internal/usecase/query"
	recorduc "github.com/kailas-cloud/strindex/internal/usecase/record"
	"github.com/kailas-cloud/strindex/internal/version"
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

	logger.Info("Starting strindex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("translator_mode", cfg.Translator.Mode),
		zap.Bool("cache_enabled", len(cfg.Cache.Addrs) > 0),
	)

	// Register translation metrics explicitly (no init())
	metrics.RegisterTranslationMetrics()

	ctx := context.Background()

	// In-memory record store. Records live for the process run only.
	store := memstore.New()

	// Use case services
	recordSvc := recorduc.New(store)
	querySvc := queryuc.New(store)

	// Translator chain and health dependencies vary by mode.
	// Pass nil interfaces (not typed nil pointers!) for unconfigured checks.
	var translatorChecker healthuc.TranslatorChecker
	var cachePinger healthuc.CachePinger

	var translator nlqueryuc.Translator

	switch cfg.Translator.Mode {
	case config.ModeOpenAI:
		base := openaiNL.NewTranslator(&openaiNL.Config{
			APIKey:   cfg.Translator.OpenAI.APIKey,
			BaseURL:  cfg.Translator.OpenAI.BaseURL,
			Model:    cfg.Translator.OpenAI.Model,
			Provider: "openai",
			Logger:   logger,
		})
		translatorChecker = base

		translator = openaiNL.NewRetryTranslator(
			base,
			cfg.Translator.Retry.MaxAttempts,
			time.Duration(cfg.Translator.Retry.InitialBackoffMs)*time.Millisecond,
			cfg.Translator.Retry.RequestsPerSecond,
			logger,
		)
		logger.Info("Translator created",
			zap.String("provider", "openai"),
			zap.String("model", cfg.Translator.OpenAI.Model),
		)
	case config.ModeRules:
		translator = nlqueryuc.NewRuleTranslator()
		logger.Info("Translator created", zap.String("provider", "rules"))
	default:
		logger.Fatal("Unknown translator mode", zap.String("mode", cfg.Translator.Mode))
	}

	// Optional translation cache. An empty addrs list disables it.
	if len(cfg.Cache.Addrs) > 0 {
		kv, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer kv.Close()

		readiness := time.Duration(cfg.Cache.ReadinessTimeout) * time.Second
		if err := kv.WaitForReady(ctx, readiness); err != nil {
			logger.Fatal("Cache store not ready", zap.Error(err))
		}
		logger.Info("Connected to cache store", zap.Strings("addrs", cfg.Cache.Addrs))

		cachePinger = kv
		translator = translatecache.New(
			translator,
			kv,
			time.Duration(cfg.Cache.TTLSec)*time.Second,
			metrics.TranslationCacheTotal,
			logger,
		)
	}

	// Instrumented (logging) translator is the outermost layer.
	translator = nlqueryuc.NewInstrumentedTranslator(translator, cfg.Translator.Mode, logger)

	nlSvc := nlqueryuc.New(translator, querySvc)
	healthSvc := healthuc.New(cachePinger, translatorChecker)

	// Create chi server
	server := chiTransport.NewServer(recordSvc, querySvc, nlSvc, healthSvc, logger)

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

			// Canonical log line, one line per request
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
