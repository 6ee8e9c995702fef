package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/user/catalog-scraper/internal/adapter/chromedp_crawler"
	"github.com/user/catalog-scraper/internal/adapter/pagefetcher"
	"github.com/user/catalog-scraper/internal/adapter/postgres"
	redis_adapter "github.com/user/catalog-scraper/internal/adapter/redis"
	"github.com/user/catalog-scraper/internal/adapter/resty_client"
	"github.com/user/catalog-scraper/internal/delivery/cli"
	"github.com/user/catalog-scraper/internal/repository"
	"github.com/user/catalog-scraper/internal/scraper"
	"github.com/user/catalog-scraper/internal/usecase"
	"github.com/user/catalog-scraper/pkg/config"
	"github.com/user/catalog-scraper/pkg/logger"
	"github.com/user/catalog-scraper/pkg/metrics"
	"github.com/user/catalog-scraper/pkg/proxy"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run())
}

func run() int {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		fallback, _ := zap.NewProduction()
		fallback.Error("could not load config", zap.Error(err))
		return 1
	}

	// --- Logger ---
	baseLogger, err := logger.New(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
	if err != nil {
		fallback, _ := zap.NewProduction()
		fallback.Error("could not build logger", zap.Error(err))
		return 1
	}
	runID := uuid.NewString()
	log := baseLogger.With(zap.String("run_id", runID))
	defer log.Sync()
	zap.ReplaceGlobals(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.NewMetrics()

	var (
		wired   bool
		closers []func()
	)
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}()

	deps := &cli.Deps{
		Setup: func(ctx context.Context) (*cli.UseCases, error) {
			wired = true
			return wire(ctx, cfg, m, log, &closers)
		},
		Genres:        cfg.GenreList(),
		ItemsPerGenre: cfg.ItemsPerGenre,
		Out:           os.Stdout,
	}

	code := 0
	if err := cli.ExecuteContext(ctx, deps, os.Args[1:]); err != nil {
		if errors.Is(err, context.Canceled) {
			log.Warn("interrupted", zap.Error(err))
		} else {
			log.Error("command failed", zap.Error(err))
		}
		code = 1
	}

	if wired && cfg.PushgatewayURL != "" {
		pushCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := m.Push(pushCtx, cfg.PushgatewayURL, runID); err != nil {
			log.Warn("failed to push metrics", zap.Error(err))
		}
	}
	return code
}

// wire connects to the backing services and builds the use cases.
// Resources that need releasing are appended to closers.
func wire(ctx context.Context, cfg *config.Config, m *metrics.Metrics, log *zap.Logger, closers *[]func()) (*cli.UseCases, error) {
	// --- Storage ---
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	*closers = append(*closers, pool.Close)
	catalogRepo := postgres.NewCatalogRepo(pool)

	// --- Fetching ---
	proxies := proxy.NewManager(cfg.ProxyList(), cfg.UserAgentList())

	var source repository.PageSource
	switch cfg.FetchMode {
	case config.FetchModeBrowser:
		browser := chromedp_crawler.NewChromedpCrawler(proxies, cfg.FetchTimeoutDuration(), log)
		*closers = append(*closers, browser.Close)
		source = browser
	default:
		source = resty_client.NewClient(proxies, resty_client.Options{
			Timeout:      cfg.FetchTimeoutDuration(),
			MaxRedirects: cfg.MaxRedirects,
		})
	}

	var fetcherOpts []pagefetcher.Option
	if cfg.RedisAddr != "" && cfg.PageCacheTTL > 0 {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		*closers = append(*closers, func() { rdb.Close() })
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("redis unavailable, page cache disabled", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		} else {
			fetcherOpts = append(fetcherOpts, pagefetcher.WithCache(redis_adapter.NewPageCache(rdb), cfg.PageCacheTTLDuration()))
			log.Info("page cache enabled", zap.String("addr", cfg.RedisAddr), zap.Duration("ttl", cfg.PageCacheTTLDuration()))
		}
	}
	fetcher := pagefetcher.NewFetcher(cfg.SiteBaseURL, source, log, fetcherOpts...)

	extractor, err := scraper.NewExtractor(cfg.SiteBaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid site base URL: %w", err)
	}

	// --- Use Cases ---
	catalogUC := usecase.NewCatalogUseCase(cfg.SiteBaseURL, fetcher, extractor, catalogRepo, m, log)
	exportUC := usecase.NewExportUseCase(catalogRepo, cfg.ExportPrefix, log)
	return &cli.UseCases{
		Catalog:  catalogUC,
		Exporter: exportUC,
		Batch:    usecase.NewBatchUseCase(catalogUC, exportUC, log),
	}, nil
}
