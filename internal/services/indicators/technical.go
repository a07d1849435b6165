package indicators

import (
	"context"

	"github.com/virtexvirtuoso/virtuoso-core/internal/domain/models"
	"github.com/virtexvirtuoso/virtuoso-core/pkg/logger"
)

const (
	rsiPeriod   = 14
	emaFast     = 9
	emaSlow     = 21
	minTechBars = emaSlow + 1
)

// Technical scores short-term momentum: RSI blended with the fast/slow
// EMA spread of the primary timeframe.
type Technical struct {
	log *logger.Logger
}

func NewTechnical(log *logger.Logger) *Technical {
	return &Technical{log: log}
}

func (t *Technical) Name() string { return NameTechnical }

func (t *Technical) Compute(_ context.Context, symbol string, snap *models.MarketSnapshot) float64 {
	if snap == nil || len(snap.Primary) < minTechBars {
		t.log.Warn("technical: insufficient candles, neutral fallback",
			logger.String("symbol", symbol))
		return Neutral
	}

	closes := Closes(snap.Primary)

	rsi := RSI(closes, rsiPeriod)

	fast := EMA(closes, emaFast)
	slow := EMA(closes, emaSlow)
	if slow <= 0 {
		t.log.Warn("technical: degenerate ema, neutral fallback",
			logger.String("symbol", symbol))
		return Neutral
	}
	// Spread of ±1% maps to a full-strength trend reading.
	spread := (fast - slow) / slow
	trend := DirectionalScore(spread * 100)

	return Clamp(0.6*rsi+0.4*trend, 0, 100)
}
