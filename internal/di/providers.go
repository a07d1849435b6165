package di

import (
	"fmt"
	"time"

	"github.com/virtexvirtuoso/virtuoso-core/internal/domain/service"
	"github.com/virtexvirtuoso/virtuoso-core/internal/handler/api"
	icache "github.com/virtexvirtuoso/virtuoso-core/internal/service/cache"
	"github.com/virtexvirtuoso/virtuoso-core/internal/services/indicators"
	"github.com/virtexvirtuoso/virtuoso-core/internal/services/marketdata"
	"github.com/virtexvirtuoso/virtuoso-core/internal/usecase"
	pkgcache "github.com/virtexvirtuoso/virtuoso-core/pkg/cache"
	"github.com/virtexvirtuoso/virtuoso-core/pkg/config"
	applogger "github.com/virtexvirtuoso/virtuoso-core/pkg/logger"
	pkgmetrics "github.com/virtexvirtuoso/virtuoso-core/pkg/metrics"
	"github.com/virtexvirtuoso/virtuoso-core/pkg/server"
)

// ProvideLogger builds the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics returns the prometheus recorder, or a no-op recorder
// when metrics are disabled.
func ProvideMetrics(cfg *config.Config) service.Metrics {
	if cfg.Metrics.Enabled {
		return pkgmetrics.New()
	}
	return pkgmetrics.Nop{}
}

// ProvideCacheBackend builds the configured cache backend. A broken or
// disabled backend yields nil: the engine then runs uncached, which is
// a supported degraded mode, not an error.
func ProvideCacheBackend(cfg *config.Config, log *applogger.Logger) pkgcache.Service {
	if !cfg.Cache.Enabled {
		return nil
	}

	switch cfg.Cache.Backend {
	case "memory":
		return pkgcache.NewMemoryCache(pkgcache.WithMemoryMaxSize(cfg.Cache.MemoryMaxSize))
	case "redis", "layered":
		rc, err := pkgcache.NewRedisCache(
			pkgcache.WithRedisAddr(cfg.Cache.Redis.Addr),
			pkgcache.WithRedisPassword(cfg.Cache.Redis.Password),
			pkgcache.WithRedisDB(cfg.Cache.Redis.DB),
			pkgcache.WithRedisPool(cfg.Cache.Redis.PoolSize, 2, 30*time.Second),
		)
		if err != nil {
			log.Warn("redis unavailable, running uncached", applogger.Error(err))
			return nil
		}
		if cfg.Cache.Backend == "layered" {
			return pkgcache.NewLayeredCache(rc, pkgcache.WithLayeredMemorySize(cfg.Cache.MemoryMaxSize))
		}
		return rc
	default:
		return nil
	}
}

// ProvideIndicatorCache wraps the backend with score memoization.
func ProvideIndicatorCache(cfg *config.Config, backend pkgcache.Service, log *applogger.Logger, m service.Metrics) *icache.IndicatorCache {
	return icache.New(backend, cfg.Cache.TTL.Std(), log, m)
}

// ProvideIndicators returns the full component set.
func ProvideIndicators(log *applogger.Logger) []service.Indicator {
	return indicators.DefaultSet(log)
}

// ProvideSnapshotProvider returns the in-process market data source.
func ProvideSnapshotProvider() service.SnapshotProvider {
	return marketdata.NewStaticProvider()
}

// ProvideAggregator builds the confluence aggregator from config.
func ProvideAggregator(cfg *config.Config, log *applogger.Logger) *usecase.Aggregator {
	return usecase.NewAggregator(usecase.AggregatorConfig{
		Beta:                cfg.Engine.AmplificationBeta,
		ConfidenceThreshold: cfg.Engine.ConfidenceThreshold,
		ConsensusThreshold:  cfg.Engine.ConsensusThreshold,
		SafetyCap:           cfg.Engine.AmplificationSafetyCap,
	}, log)
}

// ProvideClassifier builds the signal classifier from config.
func ProvideClassifier(cfg *config.Config) *usecase.Classifier {
	return usecase.NewClassifier(cfg.Engine.BuyThreshold, cfg.Engine.SellThreshold)
}

// ProvideResultStore builds the latest-result store and publisher.
func ProvideResultStore(log *applogger.Logger) *usecase.ResultStore {
	return usecase.NewResultStore(log)
}

// ProvidePool builds the bounded worker pool for indicator math.
func ProvidePool(cfg *config.Config) *usecase.Pool {
	return usecase.NewPool(cfg.Engine.Workers)
}

// ProvideEngine assembles the confluence engine.
func ProvideEngine(
	cfg *config.Config,
	provider service.SnapshotProvider,
	inds []service.Indicator,
	cache *icache.IndicatorCache,
	agg *usecase.Aggregator,
	cls *usecase.Classifier,
	store *usecase.ResultStore,
	pool *usecase.Pool,
	m service.Metrics,
	log *applogger.Logger,
) *usecase.Engine {
	return usecase.NewEngine(usecase.EngineConfig{
		Symbols:          cfg.Engine.Symbols,
		PrimaryTimeframe: cfg.Engine.PrimaryTimeframe,
		CycleTimeout:     cfg.Engine.CycleTimeout.Std(),
		Weights:          cfg.Engine.Weights,
	}, provider, inds, cache, agg, cls, store, pool, m, log)
}

// ProvideHandler builds the ops HTTP handler.
func ProvideHandler(log *applogger.Logger, store *usecase.ResultStore) *api.SignalsHandler {
	return api.NewSignalsHandler(log, store)
}

// ProvideApp assembles the application.
func ProvideApp(
	cfg *config.Config,
	log *applogger.Logger,
	engine *usecase.Engine,
	pool *usecase.Pool,
	handler *api.SignalsHandler,
	backend pkgcache.Service,
) *server.App {
	return server.New(cfg, log, engine, pool, handler, backend)
}
