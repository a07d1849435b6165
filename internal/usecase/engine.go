package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/virtexvirtuoso/virtuoso-core/internal/domain/models"
	domsvc "github.com/virtexvirtuoso/virtuoso-core/internal/domain/service"
	icache "github.com/virtexvirtuoso/virtuoso-core/internal/service/cache"
	"github.com/virtexvirtuoso/virtuoso-core/pkg/logger"
)

// EngineConfig holds the per-cycle orchestration settings.
type EngineConfig struct {
	Symbols          []string
	PrimaryTimeframe string
	CycleTimeout     time.Duration
	Weights          map[string]float64
}

// Engine runs one confluence computation per symbol per monitoring
// cycle: snapshot, cached indicator scores on the worker pool, join,
// aggregate, classify, publish.
//
// The indicator cache is the only shared mutable state; symbols run
// independently and may complete in any order.
type Engine struct {
	cfg        EngineConfig
	provider   domsvc.SnapshotProvider
	indicators []domsvc.Indicator
	cache      *icache.IndicatorCache
	agg        *Aggregator
	cls        *Classifier
	pub        domsvc.ResultPublisher
	pool       *Pool
	metrics    domsvc.Metrics
	log        *logger.Logger
}

func NewEngine(
	cfg EngineConfig,
	provider domsvc.SnapshotProvider,
	indicators []domsvc.Indicator,
	cache *icache.IndicatorCache,
	agg *Aggregator,
	cls *Classifier,
	pub domsvc.ResultPublisher,
	pool *Pool,
	m domsvc.Metrics,
	log *logger.Logger,
) *Engine {
	return &Engine{
		cfg:        cfg,
		provider:   provider,
		indicators: indicators,
		cache:      cache,
		agg:        agg,
		cls:        cls,
		pub:        pub,
		pool:       pool,
		metrics:    m,
		log:        log,
	}
}

// RunCycle computes one ConfluenceResult per configured symbol. A
// failed or timed-out symbol is skipped and retried next cycle; it
// never halts the batch.
func (e *Engine) RunCycle(ctx context.Context) []*models.ConfluenceResult {
	start := time.Now()

	cctx := ctx
	cancel := func() {}
	if e.cfg.CycleTimeout > 0 {
		cctx, cancel = context.WithTimeout(ctx, e.cfg.CycleTimeout)
	}
	defer cancel()

	type item struct {
		symbol string
		res    *models.ConfluenceResult
		err    error
	}
	ch := make(chan item, len(e.cfg.Symbols))
	var wg sync.WaitGroup

	for _, symbol := range e.cfg.Symbols {
		wg.Add(1)
		go func(symbol string) {
			defer wg.Done()
			res, err := e.computeSymbol(cctx, symbol)
			ch <- item{symbol: symbol, res: res, err: err}
		}(symbol)
	}

	go func() { wg.Wait(); close(ch) }()

	results := make([]*models.ConfluenceResult, 0, len(e.cfg.Symbols))
	for it := range ch {
		if it.err != nil {
			e.metrics.RecordSymbolSkipped(skipReason(it.err))
			e.log.Warn("symbol skipped this cycle",
				logger.String("symbol", it.symbol), logger.Error(it.err))
			continue
		}

		e.metrics.RecordFinalScore(it.symbol, it.res.FinalScore)
		if err := e.pub.Publish(cctx, it.res); err != nil {
			e.log.Warn("result publish failed",
				logger.String("symbol", it.symbol), logger.Error(err))
		}
		results = append(results, it.res)
	}

	e.metrics.RecordCycle(time.Since(start).Seconds())
	e.log.Info("cycle complete",
		logger.Int("symbols", len(e.cfg.Symbols)),
		logger.Int("results", len(results)),
		logger.Duration("took", time.Since(start)))
	return results
}

// computeSymbol gathers all indicator scores for one symbol, joins
// them, and builds the classified result. All indicator results are
// collected before aggregation begins.
func (e *Engine) computeSymbol(ctx context.Context, symbol string) (*models.ConfluenceResult, error) {
	snap, err := e.provider.Snapshot(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", symbol, err)
	}

	scores := make([]float64, len(e.indicators))
	var wg sync.WaitGroup

	for i, ind := range e.indicators {
		wg.Add(1)
		i, ind := i, ind
		e.pool.Submit(func() {
			defer wg.Done()
			key := icache.Key(symbol, ind.Name(), e.cfg.PrimaryTimeframe, snap)
			scores[i] = e.cache.ComputeWithCache(ctx, key, func() float64 {
				return e.safeCompute(ctx, ind, symbol, snap)
			})
		})
	}

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()

	// Abandon the symbol on timeout rather than emitting a partial
	// result; in-flight computations drain on the pool and their cache
	// writes stay consistent.
	select {
	case <-done:
	case <-ctx.Done():
		return nil, fmt.Errorf("compute %s: %w", symbol, ctx.Err())
	}

	components := make([]models.IndicatorScore, len(e.indicators))
	for i, ind := range e.indicators {
		components[i] = models.IndicatorScore{
			Name:   ind.Name(),
			Score:  scores[i],
			Weight: e.cfg.Weights[ind.Name()],
		}
	}

	res := e.agg.Aggregate(symbol, time.Now(), components)
	e.cls.Classify(res)
	return res, nil
}

// safeCompute shields the engine from a panicking component. The
// fail-to-neutral contract belongs to the indicators themselves; this
// is the backstop for programming errors.
func (e *Engine) safeCompute(ctx context.Context, ind domsvc.Indicator, symbol string, snap *models.MarketSnapshot) (score float64) {
	defer func() {
		if r := recover(); r != nil {
			e.metrics.RecordIndicatorError(ind.Name())
			e.log.Warn("indicator panicked, neutral fallback",
				logger.String("symbol", symbol),
				logger.String("indicator", ind.Name()),
				logger.Any("panic", r))
			score = 50
		}
	}()
	return ind.Compute(ctx, symbol, snap)
}

func skipReason(err error) string {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return "timeout"
	}
	return "provider"
}
