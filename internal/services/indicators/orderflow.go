package indicators

import (
	"context"

	"github.com/virtexvirtuoso/virtuoso-core/internal/domain/models"
	"github.com/virtexvirtuoso/virtuoso-core/pkg/logger"
)

// OrderFlow scores taker aggression from the recent trade tape: a
// CVD-style delta of taker buy volume against taker sell volume.
type OrderFlow struct {
	log *logger.Logger
}

func NewOrderFlow(log *logger.Logger) *OrderFlow {
	return &OrderFlow{log: log}
}

func (o *OrderFlow) Name() string { return NameOrderFlow }

func (o *OrderFlow) Compute(_ context.Context, symbol string, snap *models.MarketSnapshot) float64 {
	if snap == nil || len(snap.Trades) == 0 {
		o.log.Warn("orderflow: empty trade tape, neutral fallback",
			logger.String("symbol", symbol))
		return Neutral
	}

	buyVol := 0.0
	sellVol := 0.0
	for _, t := range snap.Trades {
		if t.Qty <= 0 {
			continue
		}
		if t.IsBuyerMaker {
			sellVol += t.Qty
		} else {
			buyVol += t.Qty
		}
	}

	total := buyVol + sellVol
	if total <= 0 {
		o.log.Warn("orderflow: zero traded volume, neutral fallback",
			logger.String("symbol", symbol))
		return Neutral
	}

	delta := (buyVol - sellVol) / total
	return DirectionalScore(delta)
}
