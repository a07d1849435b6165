package indicators

import (
	"context"

	"github.com/virtexvirtuoso/virtuoso-core/internal/domain/models"
	"github.com/virtexvirtuoso/virtuoso-core/pkg/logger"
)

const (
	structLookback = 50
	minHigherBars  = emaSlow + 1
)

// PriceStructure scores where the last close sits inside the recent
// high/low range, tilted by higher-timeframe trend agreement.
type PriceStructure struct {
	log *logger.Logger
}

func NewPriceStructure(log *logger.Logger) *PriceStructure {
	return &PriceStructure{log: log}
}

func (p *PriceStructure) Name() string { return NamePriceStructure }

func (p *PriceStructure) Compute(_ context.Context, symbol string, snap *models.MarketSnapshot) float64 {
	if snap == nil || len(snap.Primary) < 2 {
		p.log.Warn("pricestructure: insufficient candles, neutral fallback",
			logger.String("symbol", symbol))
		return Neutral
	}

	bars := snap.Primary
	if len(bars) > structLookback {
		bars = bars[len(bars)-structLookback:]
	}

	hi := bars[0].High
	lo := bars[0].Low
	for _, c := range bars[1:] {
		if c.High > hi {
			hi = c.High
		}
		if c.Low < lo {
			lo = c.Low
		}
	}
	if hi <= lo {
		p.log.Warn("pricestructure: degenerate range, neutral fallback",
			logger.String("symbol", symbol))
		return Neutral
	}

	rangePos := (snap.LastClose() - lo) / (hi - lo) * 100

	// Higher-timeframe agreement nudges the range reading; without
	// enough higher bars the reading stands on its own.
	htf := Neutral
	if len(snap.Higher) >= minHigherBars {
		closes := Closes(snap.Higher)
		fast := EMA(closes, emaFast)
		slow := EMA(closes, emaSlow)
		if slow > 0 {
			htf = DirectionalScore((fast - slow) / slow * 100)
		}
	}

	return Clamp(0.7*rangePos+0.3*htf, 0, 100)
}
