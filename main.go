package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/autostream-agent/server/internal/adapters/gemini"
	"github.com/autostream-agent/server/internal/agent/model"
	"github.com/autostream-agent/server/internal/agent/orchestrator"
	"github.com/autostream-agent/server/internal/agent/repo"
	"github.com/autostream-agent/server/internal/core"
	"github.com/autostream-agent/server/internal/httpapi"
	"github.com/autostream-agent/server/internal/knowledge"
	"github.com/autostream-agent/server/internal/leads"
	"github.com/autostream-agent/server/internal/observability"
	logx "github.com/autostream-agent/server/pkg/logger"
	pkgredis "github.com/autostream-agent/server/pkg/redis"
)

// AppConfig defines all configurable parameters for the agent service,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	BindAddr         string `envconfig:"APP_BIND_ADDR" default:":8000"`
	MetricsNamespace string `envconfig:"APP_METRICS_NAMESPACE" default:"autostream"`

	// Infrastructure. Redis is optional: without a URL the service runs on
	// the in-memory session store and the logging lead capture.
	Redis pkgredis.Config

	// LLM provider
	Gemini gemini.ClientConfig

	// Agent configs
	Classifier model.ClassifierModelConfig
	Response   model.ResponseModelConfig
	Embedding  model.EmbeddingModelConfig
	Business   model.BusinessConfig
	Core       model.OrchestratorConfig
	Session    model.SessionConfig
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logx.Init(logx.LoggerOpts{Environment: core.EnvironmentFromOS()})

	// Load .env file
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	// Load structured config from env
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	client, err := gemini.NewClient(ctx, cfg.Gemini)
	if err != nil {
		log.Fatalf("Failed to initialise Gemini client: %v", err)
	}

	index, err := knowledge.NewIndex(ctx, gemini.NewEmbedder(client, cfg.Embedding))
	if err != nil {
		log.Fatalf("Failed to build knowledge index: %v", err)
	}

	var (
		sessions model.SessionRepository
		capture  model.LeadCapture
	)
	if cfg.Redis.Enabled() {
		ttl, err := time.ParseDuration(cfg.Session.TTL)
		if err != nil {
			log.Fatalf("Invalid SESSION_TTL '%s': %v", cfg.Session.TTL, err)
		}
		rdb, err := cfg.Redis.New()
		if err != nil {
			log.Fatalf("Failed to initialise Redis client: %v", err)
		}
		defer rdb.Close()

		sessions = repo.NewRedisSessionRepository(rdb, ttl)
		capture = leads.NewRedisRecorder(rdb)
		logx.Info().Msg("using redis-backed session store")
	} else {
		sessions = repo.NewMemorySessionRepository()
		capture = leads.NewLogCapture()
		logx.Info().Msg("using in-memory session store")
	}

	metrics := observability.NewMetrics(cfg.MetricsNamespace, prometheus.DefaultRegisterer)

	orc, err := orchestrator.New(orchestrator.Config{
		Repo:       sessions,
		Classifier: gemini.NewClassifier(client, cfg.Classifier, cfg.Business),
		Retriever:  index,
		Generator:  gemini.NewGenerator(client, cfg.Response),
		Tool:       capture,
		Core:       cfg.Core,
		Business:   cfg.Business,
		Metrics:    metrics,
	})
	if err != nil {
		log.Fatalf("Failed to build orchestrator: %v", err)
	}

	srv := &http.Server{
		Addr:              cfg.BindAddr,
		Handler:           httpapi.New(orc).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logx.Info().Str("addr", cfg.BindAddr).Msg("agent service listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logx.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	logx.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logx.Error().Err(err).Msg("graceful shutdown failed")
	}
}
