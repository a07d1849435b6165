package indicators

import (
	"context"

	"github.com/virtexvirtuoso/virtuoso-core/internal/domain/models"
	"github.com/virtexvirtuoso/virtuoso-core/pkg/logger"
)

// Sentiment averages externally sourced positioning and mood figures:
// funding-rate bias, long/short ratio, and a 0-100 social score.
// Funding is read contrarian: heavily positive funding means a crowded
// long side.
type Sentiment struct {
	log *logger.Logger
}

func NewSentiment(log *logger.Logger) *Sentiment {
	return &Sentiment{log: log}
}

func (s *Sentiment) Name() string { return NameSentiment }

func (s *Sentiment) Compute(_ context.Context, symbol string, snap *models.MarketSnapshot) float64 {
	if snap == nil || snap.Sentiment == nil {
		s.log.Warn("sentiment: no sentiment metrics, neutral fallback",
			logger.String("symbol", symbol))
		return Neutral
	}

	m := snap.Sentiment

	// ±0.05% per-interval funding saturates the contrarian reading.
	funding := 50 - ClampSym(m.FundingRate/0.0005)*25

	// A ratio of 2:1 longs saturates bullish, 1:2 bearish.
	longShort := Neutral
	if m.LongShortRatio > 0 {
		longShort = DirectionalScore(m.LongShortRatio - 1)
	}

	social := Clamp(m.SocialScore, 0, 100)

	return Clamp((funding+longShort+social)/3, 0, 100)
}
