package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"

	"github.com/kweisser/sentimeter/internal/config"
	"github.com/kweisser/sentimeter/internal/logging"
	"github.com/kweisser/sentimeter/internal/metrics"
	"github.com/kweisser/sentimeter/internal/pipeline/corenlp"
	"github.com/kweisser/sentimeter/internal/pipeline/vader"
	iredis "github.com/kweisser/sentimeter/internal/redis"
	"github.com/kweisser/sentimeter/internal/sentiment"
	"github.com/kweisser/sentimeter/internal/server"
	"github.com/kweisser/sentimeter/internal/version"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

// setupPipeline constructs the shared inference backend. This happens once,
// before the server accepts requests; every request shares the instance.
func setupPipeline(cfg *config.Config) sentiment.Pipeline {
	switch cfg.SentimentBackend {
	case config.BackendCoreNLP:
		slog.Info("Using CoreNLP pipeline", "url", cfg.CoreNLPURL, "timeout", cfg.CoreNLPTimeout)
		return corenlp.New(cfg.CoreNLPURL, cfg.CoreNLPTimeout)
	default:
		slog.Info("Using VADER pipeline")
		return vader.New()
	}
}

func setupRedis(ctx context.Context, cfg *config.Config) *goredis.Client {
	if cfg.RedisURL == "" {
		return nil
	}

	client, err := iredis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	return client
}

func runGracefulShutdown(srv *server.Server, stopEviction func()) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		if stopEviction != nil {
			stopEviction()
		}

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port, "backend", cfg.SentimentBackend)

	info := version.Get()
	metrics.BuildInfo.WithLabelValues(info.Version, info.Commit, info.BuildTime, info.GoVersion).Set(1)

	pipeline := setupPipeline(cfg)

	redisClient := setupRedis(context.Background(), cfg)
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}

	var opts []sentiment.Option
	var stopEviction func()
	if cfg.CacheTTL > 0 {
		cache := sentiment.NewResultCache(cfg.CacheTTL, clock)
		stopEviction = cache.StartEvictionTimer(1 * time.Minute)
		opts = append(opts, sentiment.WithCache(cache))

		if redisClient != nil {
			opts = append(opts, sentiment.WithRemoteCache(iredis.NewResultStore(redisClient, cfg.CacheTTL)))
		}
	}

	analyzer := sentiment.NewAnalyzer(pipeline, cfg.SentimentBackend, opts...)

	srv := server.NewServer(cfg, analyzer, redisClient)

	done := runGracefulShutdown(srv, stopEviction)

	slog.Info("Server starting", "port", cfg.Port)
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
