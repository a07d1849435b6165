// Package cache memoizes indicator scores per symbol, indicator, and
// input fingerprint. Caching here is an optimization, never a
// correctness dependency: every failure path degrades to direct
// computation.
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/virtexvirtuoso/virtuoso-core/internal/domain/models"
	domsvc "github.com/virtexvirtuoso/virtuoso-core/internal/domain/service"
	pkgcache "github.com/virtexvirtuoso/virtuoso-core/pkg/cache"
	"github.com/virtexvirtuoso/virtuoso-core/pkg/logger"
)

// fingerprintBars bounds how much of the close/volume tail feeds the
// input fingerprint. Enough to distinguish materially different data,
// cheap enough to hash every cycle.
const fingerprintBars = 32

// IndicatorCache memoizes indicator scores on a pluggable backend.
// A nil or disabled cache skips the round-trip entirely and computes
// directly.
type IndicatorCache struct {
	backend pkgcache.Service
	ttl     time.Duration
	log     *logger.Logger
	metrics domsvc.Metrics
}

// New creates an IndicatorCache. backend may be nil, in which case
// every ComputeWithCache call goes straight to the fallback function.
func New(backend pkgcache.Service, ttl time.Duration, log *logger.Logger, m domsvc.Metrics) *IndicatorCache {
	return &IndicatorCache{
		backend: backend,
		ttl:     ttl,
		log:     log,
		metrics: m,
	}
}

// Ready reports whether cache round-trips are worth attempting.
func (c *IndicatorCache) Ready() bool {
	return c != nil && c.backend != nil && c.ttl > 0
}

// Get returns a cached score when present and unexpired. Backend
// errors are reported as absence, never surfaced.
func (c *IndicatorCache) Get(ctx context.Context, key string) (float64, bool) {
	if !c.Ready() {
		return 0, false
	}

	var score float64
	if err := c.backend.Get(ctx, key, &score); err != nil {
		if err != pkgcache.ErrCacheMiss {
			c.log.Debug("indicator cache get degraded to miss",
				logger.String("key", key), logger.Error(err))
		}
		return 0, false
	}
	return score, true
}

// Set stores a score best-effort; failures are logged at debug level
// and swallowed.
func (c *IndicatorCache) Set(ctx context.Context, key string, score float64) {
	if !c.Ready() {
		return
	}

	if err := c.backend.Set(ctx, key, score, c.ttl); err != nil {
		c.log.Debug("indicator cache set failed",
			logger.String("key", key), logger.Error(err))
	}
}

// ComputeWithCache returns the cached score for key, or computes it via
// fn and stores the result. When the cache is not ready the round-trip
// is skipped entirely.
func (c *IndicatorCache) ComputeWithCache(ctx context.Context, key string, fn func() float64) float64 {
	if !c.Ready() {
		return fn()
	}

	if score, ok := c.Get(ctx, key); ok {
		c.metrics.RecordCacheHit()
		return score
	}
	c.metrics.RecordCacheMiss()

	score := fn()
	c.Set(ctx, key, score)
	return score
}

// Key builds the memoization key for one indicator computation:
// indicator:{symbol}:{name}:{timeframe}:{fingerprint}.
func Key(symbol, indicator, timeframe string, snap *models.MarketSnapshot) string {
	return pkgcache.GenerateKey("indicator", symbol, indicator, timeframe, Fingerprint(snap))
}

// Fingerprint hashes the tail of the snapshot's primary series plus
// the book top and tape length, so a stale cached score is never
// served for materially different input data.
func Fingerprint(snap *models.MarketSnapshot) string {
	if snap == nil {
		return "empty"
	}

	var b strings.Builder
	bars := snap.Primary
	if len(bars) > fingerprintBars {
		bars = bars[len(bars)-fingerprintBars:]
	}
	for _, c := range bars {
		fmt.Fprintf(&b, "%.8f|%.8f;", c.Close, c.Volume)
	}
	if len(snap.Bids) > 0 {
		fmt.Fprintf(&b, "b%.8f|%.8f;", snap.Bids[0].Price, snap.Bids[0].Qty)
	}
	if len(snap.Asks) > 0 {
		fmt.Fprintf(&b, "a%.8f|%.8f;", snap.Asks[0].Price, snap.Asks[0].Qty)
	}
	fmt.Fprintf(&b, "t%d", len(snap.Trades))

	return pkgcache.HashKey(b.String())
}
