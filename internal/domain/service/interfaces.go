package service

import (
	"context"

	"github.com/virtexvirtuoso/virtuoso-core/internal/domain/models"
)

// Indicator computes one named 0-100 score for a symbol from a market
// snapshot. 50 means neutral, above 50 bullish, below 50 bearish.
//
// Implementations never return an error: any internal failure (missing
// fields, short series, degenerate math) is converted to the neutral
// score locally. A single broken indicator must not abort signal
// generation for a symbol.
type Indicator interface {
	Name() string
	Compute(ctx context.Context, symbol string, snap *models.MarketSnapshot) float64
}

// SnapshotProvider supplies the per-symbol market snapshot for a cycle.
// The actual fetch/transport lives outside the scoring core.
type SnapshotProvider interface {
	Snapshot(ctx context.Context, symbol string) (*models.MarketSnapshot, error)
}

// ResultPublisher receives one ConfluenceResult per symbol per cycle.
type ResultPublisher interface {
	Publish(ctx context.Context, res *models.ConfluenceResult) error
}

// Metrics abstracts the engine's observability counters so tests can
// run without a prometheus registry.
type Metrics interface {
	RecordCycle(seconds float64)
	RecordFinalScore(symbol string, score float64)
	RecordIndicatorError(indicator string)
	RecordCacheHit()
	RecordCacheMiss()
	RecordSymbolSkipped(reason string)
}
