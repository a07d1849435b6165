package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/virtexvirtuoso/virtuoso-core/internal/domain/models"
	domsvc "github.com/virtexvirtuoso/virtuoso-core/internal/domain/service"
	icache "github.com/virtexvirtuoso/virtuoso-core/internal/service/cache"
	"github.com/virtexvirtuoso/virtuoso-core/pkg/logger"
	"github.com/virtexvirtuoso/virtuoso-core/pkg/metrics"
)

type fakeProvider struct {
	failSymbols map[string]error
	delay       time.Duration
}

func (p *fakeProvider) Snapshot(ctx context.Context, symbol string) (*models.MarketSnapshot, error) {
	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err, ok := p.failSymbols[symbol]; ok {
		return nil, err
	}
	return &models.MarketSnapshot{Symbol: symbol, Timestamp: time.Now()}, nil
}

type fixedIndicator struct {
	name  string
	score float64
	panic bool
}

func (f *fixedIndicator) Name() string { return f.name }

func (f *fixedIndicator) Compute(ctx context.Context, symbol string, snap *models.MarketSnapshot) float64 {
	if f.panic {
		panic("broken component")
	}
	return f.score
}

type capturePublisher struct {
	mu      sync.Mutex
	results []*models.ConfluenceResult
}

func (p *capturePublisher) Publish(ctx context.Context, res *models.ConfluenceResult) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.results = append(p.results, res)
	return nil
}

func newTestEngine(t *testing.T, cfg EngineConfig, provider *fakeProvider, inds []*fixedIndicator) (*Engine, *capturePublisher) {
	t.Helper()

	dinds := make([]domsvc.Indicator, 0, len(inds))
	for _, ind := range inds {
		dinds = append(dinds, ind)
	}

	pub := &capturePublisher{}
	pool := NewPool(4)
	t.Cleanup(pool.Close)

	engine := NewEngine(cfg,
		provider,
		dinds,
		icache.New(nil, 0, logger.Nop(), metrics.Nop{}),
		newTestAggregator(),
		NewClassifier(60, 40),
		pub,
		pool,
		metrics.Nop{},
		logger.Nop(),
	)
	return engine, pub
}

func TestRunCycleProducesOneResultPerSymbol(t *testing.T) {
	cfg := EngineConfig{
		Symbols:          []string{"BTCUSDT", "ETHUSDT"},
		PrimaryTimeframe: "5m",
		Weights:          map[string]float64{"a": 0.5, "b": 0.5},
	}
	engine, pub := newTestEngine(t, cfg, &fakeProvider{}, []*fixedIndicator{
		{name: "a", score: 80},
		{name: "b", score: 70},
	})

	results := engine.RunCycle(context.Background())
	require.Len(t, results, 2)

	seen := map[string]bool{}
	for _, res := range results {
		seen[res.Symbol] = true
		assert.Greater(t, res.FinalScore, 50.0)
		assert.Equal(t, models.SignalBuy, res.Signal)
	}
	assert.True(t, seen["BTCUSDT"])
	assert.True(t, seen["ETHUSDT"])

	pub.mu.Lock()
	defer pub.mu.Unlock()
	assert.Len(t, pub.results, 2)
}

func TestRunCycleSkipsFailingSymbol(t *testing.T) {
	cfg := EngineConfig{
		Symbols:          []string{"BTCUSDT", "BADUSDT"},
		PrimaryTimeframe: "5m",
		Weights:          map[string]float64{"a": 1},
	}
	provider := &fakeProvider{failSymbols: map[string]error{
		"BADUSDT": errors.New("upstream unavailable"),
	}}
	engine, _ := newTestEngine(t, cfg, provider, []*fixedIndicator{{name: "a", score: 55}})

	results := engine.RunCycle(context.Background())
	require.Len(t, results, 1)
	assert.Equal(t, "BTCUSDT", results[0].Symbol)
}

func TestRunCycleTimeout(t *testing.T) {
	cfg := EngineConfig{
		Symbols:          []string{"BTCUSDT"},
		PrimaryTimeframe: "5m",
		CycleTimeout:     20 * time.Millisecond,
		Weights:          map[string]float64{"a": 1},
	}
	provider := &fakeProvider{delay: time.Second}
	engine, _ := newTestEngine(t, cfg, provider, []*fixedIndicator{{name: "a", score: 55}})

	start := time.Now()
	results := engine.RunCycle(context.Background())
	assert.Empty(t, results)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestPanickingIndicatorFallsToNeutral(t *testing.T) {
	cfg := EngineConfig{
		Symbols:          []string{"BTCUSDT"},
		PrimaryTimeframe: "5m",
		Weights:          map[string]float64{"a": 0.5, "b": 0.5},
	}
	engine, _ := newTestEngine(t, cfg, &fakeProvider{}, []*fixedIndicator{
		{name: "a", score: 80},
		{name: "b", panic: true},
	})

	results := engine.RunCycle(context.Background())
	require.Len(t, results, 1)

	res := results[0]
	assert.InDelta(t, 50.0, res.Components["b"].Score, 1e-9)
	// One bullish component, one neutral: base sits halfway.
	assert.InDelta(t, 65.0, res.BaseScore, 1e-9)
}

func TestSkipReason(t *testing.T) {
	assert.Equal(t, "timeout", skipReason(context.DeadlineExceeded))
	assert.Equal(t, "timeout", skipReason(context.Canceled))
	assert.Equal(t, "provider", skipReason(errors.New("boom")))
}
