// The api binary serves the public article API and the admin processing
// endpoint backed by the shared PostgreSQL store.
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
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"betpress/internal/common/pagination"
	feedsconfig "betpress/internal/config"
	hhttp "betpress/internal/handler/http"
	"betpress/internal/handler/http/auth"
	"betpress/internal/handler/http/middleware"
	pgrepo "betpress/internal/infra/adapter/persistence/postgres"
	"betpress/internal/infra/db"
	"betpress/internal/infra/feed"
	"betpress/internal/infra/fetcher"
	"betpress/internal/infra/notifier"
	"betpress/internal/infra/rewriter"
	"betpress/internal/observability/logging"
	"betpress/internal/repository"
	articleUC "betpress/internal/usecase/article"
	"betpress/internal/usecase/notify"
	"betpress/internal/usecase/process"
	"betpress/pkg/config"
	"betpress/pkg/ratelimit"
)

var version = "dev"

func main() {
	_ = godotenv.Load()
	logger := logging.NewLogger()
	slog.SetDefault(logger)

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
	rw, err := rewriter.New(rewriterCfg, apiKeyFor(rewriterCfg.Provider))
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

	notifySvc := buildNotify(logger)
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

	verifier, err := auth.NewVerifier()
	if err != nil {
		logger.Error("auth config", slog.Any("error", err))
		os.Exit(1)
	}

	rateLimitMw, err := buildRateLimit(ctx, logger)
	if err != nil {
		logger.Error("rate limit config", slog.Any("error", err))
		os.Exit(1)
	}

	router := hhttp.NewRouter(hhttp.RouterConfig{
		DB:         database,
		Articles:   &articleUC.Service{Repo: articleRepo},
		Runner:     processSvc,
		Notify:     notifySvc,
		Verifier:   verifier,
		RateLimit:  rateLimitMw,
		Pagination: pagination.LoadFromEnv(),
		Logger:     logger,
		Version:    version,
	})

	srv := &http.Server{
		Addr:              ":" + config.GetEnvString("API_PORT", "8080"),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      25 * time.Minute, // processing runs synchronously
		IdleTimeout:       2 * time.Minute,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("api listening", slog.String("addr", srv.Addr), slog.String("version", version))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("api exited", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("api stopped")
}

// syncFeeds upserts the YAML feed list so the database matches the file
// on every boot.
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

// apiKeyFor picks the provider's key from the environment.
func apiKeyFor(provider rewriter.Provider) string {
	if provider == rewriter.ProviderOpenAI {
		return os.Getenv("OPENAI_API_KEY")
	}
	return os.Getenv("ANTHROPIC_API_KEY")
}

func buildNotify(logger *slog.Logger) notify.Service {
	slackCfg := notifier.LoadSlackConfig(logger)
	channels := []notify.Channel{notify.NewSlackChannel(slackCfg)}
	if slackCfg.Enabled {
		logger.Info("slack notifications enabled")
	} else {
		logger.Info("slack notifications disabled")
	}
	return notify.NewService(channels, config.GetEnvInt("NOTIFY_MAX_CONCURRENT", 10))
}

// buildRateLimit assembles the IP limiter from RATELIMIT_* settings.
// Returns nil when the middleware is disabled.
func buildRateLimit(ctx context.Context, logger *slog.Logger) (*middleware.RateLimit, error) {
	cfg, err := config.LoadRateLimitConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.Enabled {
		logger.Info("rate limiting disabled")
		return nil, nil
	}

	var store ratelimit.Store
	switch cfg.Store {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		store = ratelimit.NewRedisStore(client, ratelimit.RedisStoreConfig{TTL: cfg.Window * 2})
	default:
		store = ratelimit.NewMemoryStore(ratelimit.MemoryStoreConfig{})
	}

	metrics := ratelimit.NewPrometheusMetrics()
	limiter := ratelimit.NewLimiter(ratelimit.LimiterConfig{
		LimiterType: "ip",
		Limit:       cfg.RequestsPerWindow,
		Window:      cfg.Window,
		Store:       store,
		Banlist: ratelimit.NewBanlist(ratelimit.BanlistConfig{
			ViolationThreshold: cfg.BanViolationThreshold,
			ViolationWindow:    cfg.BanViolationWindow,
			BaseBanDuration:    cfg.BanBaseDuration,
			MaxBanDuration:     cfg.BanMaxDuration,
		}),
		Metrics: metrics,
	})

	go cleanupLoop(ctx, limiter, cfg.CleanupInterval, cfg.Window)

	var extractor middleware.IPExtractor = middleware.RemoteAddrExtractor{}
	if len(cfg.TrustedProxies) > 0 {
		fwd, err := middleware.NewForwardedExtractor(cfg.TrustedProxies)
		if err != nil {
			return nil, err
		}
		extractor = fwd
	}

	return &middleware.RateLimit{Limiter: limiter, Extractor: extractor, Logger: logger}, nil
}

// cleanupLoop prunes the limiter's per-key state (store timestamps,
// clock-skew marks, stale bans) and refreshes the key gauge.
func cleanupLoop(ctx context.Context, limiter *ratelimit.Limiter, interval, window time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := limiter.Cleanup(ctx, time.Now().Add(-window)); err != nil {
				slog.Warn("rate limit cleanup failed", slog.Any("error", err))
			}
			limiter.UpdateKeyMetrics(ctx)
		}
	}
}
