package indicators

import (
	"context"

	"github.com/virtexvirtuoso/virtuoso-core/internal/domain/models"
	"github.com/virtexvirtuoso/virtuoso-core/pkg/logger"
)

const volLookback = 20

// Volume scores how strongly the latest bar's volume confirms its
// direction: above-average volume on an up candle is bullish, on a
// down candle bearish.
type Volume struct {
	log *logger.Logger
}

func NewVolume(log *logger.Logger) *Volume {
	return &Volume{log: log}
}

func (v *Volume) Name() string { return NameVolume }

func (v *Volume) Compute(_ context.Context, symbol string, snap *models.MarketSnapshot) float64 {
	if snap == nil || len(snap.Primary) < volLookback+1 {
		v.log.Warn("volume: insufficient candles, neutral fallback",
			logger.String("symbol", symbol))
		return Neutral
	}

	bars := snap.Primary
	last := bars[len(bars)-1]
	avg := Mean(Volumes(bars[len(bars)-1-volLookback : len(bars)-1]))
	if avg <= 0 {
		v.log.Warn("volume: zero average volume, neutral fallback",
			logger.String("symbol", symbol))
		return Neutral
	}

	// Ratio 1x is neutral; 3x saturates the reading.
	strength := Clamp((last.Volume/avg-1)/2, 0, 1)

	direction := 0.0
	switch {
	case last.Close > last.Open:
		direction = 1
	case last.Close < last.Open:
		direction = -1
	}

	return DirectionalScore(direction * strength)
}
