package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/ravigohel142996/itihas-heritage-assistant/core/cache"
	"github.com/ravigohel142996/itihas-heritage-assistant/core/config"
	"github.com/ravigohel142996/itihas-heritage-assistant/core/health"
	"github.com/ravigohel142996/itihas-heritage-assistant/core/heritage"
	"github.com/ravigohel142996/itihas-heritage-assistant/core/logger"
	"github.com/ravigohel142996/itihas-heritage-assistant/core/ratelimiter"
	"github.com/ravigohel142996/itihas-heritage-assistant/core/server"
	"github.com/ravigohel142996/itihas-heritage-assistant/integration/ai/gemini"
	"github.com/ravigohel142996/itihas-heritage-assistant/integration/ai/openai"
	redisconn "github.com/ravigohel142996/itihas-heritage-assistant/integration/database/redis"
	"github.com/ravigohel142996/itihas-heritage-assistant/integration/imagesearch"
	"github.com/ravigohel142996/itihas-heritage-assistant/transport/httpapi"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	log := logger.New(
		logger.WithLevelString(cfg.LogLevel),
		logger.WithJSONFormatter(),
		logger.WithAppName(cfg.AppName),
		logger.WithAttr(slog.String("env", cfg.Env)),
	)

	if err := run(ctx, cfg, log); err != nil {
		log.Error("exited with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	g, ctx := errgroup.WithContext(ctx)

	orchOpts := []heritage.Option{heritage.WithLogger(log)}

	var (
		limiterStore ratelimiter.Store
		probes       []health.Probe
	)
	if cfg.RedisEnabled {
		client, err := redisconn.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer client.Close()

		limiterStore, err = ratelimiter.NewRedisStore(client)
		if err != nil {
			return err
		}

		orchOpts = append(orchOpts,
			heritage.WithCompositeCache(cache.NewRedisCache[heritage.Composite](client,
				cache.WithRedisKeyPrefix[heritage.Composite]("itihas:composite:"))),
			heritage.WithImageCache(cache.NewRedisCache[heritage.SourcedImage](client,
				cache.WithRedisKeyPrefix[heritage.SourcedImage]("itihas:image:"))),
			heritage.WithAnalysisCache(cache.NewRedisCache[[]heritage.Section](client,
				cache.WithRedisKeyPrefix[[]heritage.Section]("itihas:analysis:"))),
		)
		probes = append(probes, redisconn.Healthcheck(client))
		log.Info("using redis-backed rate limiter and caches")
	} else {
		store := ratelimiter.NewMemoryStore(ratelimiter.WithMemoryStoreLogger(log))
		g.Go(store.Run(ctx))
		limiterStore = store
		probes = append(probes, store.Healthcheck)
	}

	limiter, err := ratelimiter.New(limiterStore, cfg.Heritage.EndpointLimits())
	if err != nil {
		return err
	}

	sourcers, err := buildProviders(ctx, cfg, log, &orchOpts)
	if err != nil {
		return err
	}
	if len(sourcers) > 0 {
		orchOpts = append(orchOpts, heritage.WithImageSourcers(sourcers...))
	}

	orch := heritage.New(cfg.Heritage, limiter, orchOpts...)
	handler := httpapi.NewHandler(orch, log, httpapi.WithReadinessProbes(probes...))

	srv, err := server.NewFromConfig(cfg.Server, server.WithLogger(log))
	if err != nil {
		return err
	}
	g.Go(srv.Run(ctx, handler.Router()))

	log.Info("service started", slog.String("addr", cfg.Server.Addr))

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// buildProviders constructs whichever upstream clients have credentials and
// returns the ordered image fallback chain. A missing key only disables that
// provider; the placeholder terminal keeps the image endpoint total.
func buildProviders(ctx context.Context, cfg appConfig, log *slog.Logger, orchOpts *[]heritage.Option) ([]heritage.ImageSourcer, error) {
	var sourcers []heritage.ImageSourcer

	if cfg.GeminiAPIKey != "" {
		g, err := gemini.New(ctx, cfg.GeminiAPIKey)
		if err != nil {
			return nil, err
		}
		*orchOpts = append(*orchOpts, heritage.WithTextGenerator(g), heritage.WithVisionAnalyzer(g))
		sourcers = append(sourcers, g)
	} else {
		log.Warn("GEMINI_API_KEY not set, text and analysis endpoints will degrade")
	}

	if cfg.OpenAIAPIKey != "" {
		oa, err := openai.New(cfg.OpenAIAPIKey)
		if err != nil {
			return nil, err
		}
		sourcers = append(sourcers, oa)
	}

	if cfg.UnsplashAPIKey != "" {
		u, err := imagesearch.NewUnsplash(cfg.UnsplashAPIKey)
		if err != nil {
			return nil, err
		}
		sourcers = append(sourcers, u)
	}

	if cfg.PexelsAPIKey != "" {
		p, err := imagesearch.NewPexels(cfg.PexelsAPIKey)
		if err != nil {
			return nil, err
		}
		sourcers = append(sourcers, p)
	}

	if len(sourcers) == 0 {
		log.Warn("no image providers configured, image endpoint will serve placeholders")
	}

	return sourcers, nil
}
