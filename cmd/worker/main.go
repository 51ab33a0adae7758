// The worker binary runs the ingestion pipeline on a cron schedule and
// serves health probes and job metrics for the scheduler process.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	feedsconfig "betpress/internal/config"
	pgrepo "betpress/internal/infra/adapter/persistence/postgres"
	"betpress/internal/infra/db"
	"betpress/internal/infra/feed"
	"betpress/internal/infra/fetcher"
	"betpress/internal/infra/notifier"
	"betpress/internal/infra/rewriter"
	"betpress/internal/infra/worker"
	"betpress/internal/observability/logging"
	"betpress/internal/repository"
	"betpress/internal/usecase/notify"
	"betpress/internal/usecase/process"
	"betpress/pkg/config"
)

func main() {
	_ = godotenv.Load()
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	workerCfg, err := worker.LoadConfigFromEnv()
	if err != nil {
		logger.Error("worker config", slog.Any("error", err))
		os.Exit(1)
	}

	database := db.Open()
	defer database.Close()
	if err := db.MigrateUp(database); err != nil {
		logger.Error("migrations failed", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go db.PollConnectionStats(ctx, database, 30*time.Second)

	feedRepo := pgrepo.NewFeedRepo(database)
	articleRepo := pgrepo.NewArticleRepo(database)

	feedsPath := config.GetEnvString("FEEDS_FILE", "feeds.yaml")
	if err := syncFeeds(ctx, logger, feedsPath, feedRepo); err != nil {
		logger.Error("feed sync failed", slog.Any("error", err))
		os.Exit(1)
	}

	rewriterCfg, err := rewriter.LoadConfig()
	if err != nil {
		logger.Error("rewriter config", slog.Any("error", err))
		os.Exit(1)
	}
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if rewriterCfg.Provider == rewriter.ProviderOpenAI {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	rw, err := rewriter.New(rewriterCfg, apiKey)
	if err != nil {
		logger.Error("rewriter init", slog.Any("error", err))
		os.Exit(1)
	}

	fetchCfg, err := fetcher.LoadConfigFromEnv()
	if err != nil {
		logger.Error("content fetch config", slog.Any("error", err))
		os.Exit(1)
	}
	var contentFetcher process.ContentFetcher
	if fetchCfg.Enabled {
		contentFetcher = fetcher.NewReadabilityFetcher(fetchCfg)
	}

	slackCfg := notifier.LoadSlackConfig(logger)
	notifySvc := notify.NewService(
		[]notify.Channel{notify.NewSlackChannel(slackCfg)},
		config.GetEnvInt("NOTIFY_MAX_CONCURRENT", 10),
	)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := notifySvc.Shutdown(shutdownCtx); err != nil {
			logger.Warn("notify shutdown", slog.Any("error", err))
		}
	}()

	processSvc := process.NewService(
		feedRepo,
		articleRepo,
		feed.NewFetcher(&http.Client{Timeout: 30 * time.Second}),
		rw,
		contentFetcher,
		process.EnhancementConfig{Threshold: fetchCfg.Threshold},
	)
	processSvc.Notifier = notifySvc

	scheduler, err := worker.NewScheduler(workerCfg, processSvc, logger)
	if err != nil {
		logger.Error("scheduler init", slog.Any("error", err))
		os.Exit(1)
	}

	healthServer := worker.NewHealthServer(workerCfg.HealthPort, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := healthServer.Start(gctx); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("health server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return metricsServer(gctx, logger)
	})
	g.Go(func() error {
		healthServer.SetReady(true)
		defer healthServer.SetReady(false)
		if err := scheduler.Start(gctx); !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("worker exited", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker stopped")
}

func syncFeeds(ctx context.Context, logger *slog.Logger, path string, repo repository.FeedRepository) error {
	feeds, err := feedsconfig.LoadFeeds(path)
	if err != nil {
		return err
	}
	for _, fd := range feeds {
		if err := repo.Upsert(ctx, fd); err != nil {
			return fmt.Errorf("upsert feed %s: %w", fd.URL, err)
		}
	}
	logger.Info("feed list synced", slog.Int("feeds", len(feeds)), slog.String("path", path))
	return nil
}

// metricsServer exposes the job and pipeline metrics for scraping.
func metricsServer(ctx context.Context, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              ":" + config.GetEnvString("WORKER_METRICS_PORT", "9090"),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	logger.Info("metrics server listening", slog.String("addr", srv.Addr))

	select {
	case err := <-errCh:
		return fmt.Errorf("metrics server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return nil
	}
}
