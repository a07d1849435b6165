package indicators

import (
	"context"

	"github.com/virtexvirtuoso/virtuoso-core/internal/domain/models"
	"github.com/virtexvirtuoso/virtuoso-core/pkg/logger"
)

const bookDepth = 10

// OrderBook scores standing liquidity intention: bid depth against ask
// depth over the top levels of the book.
type OrderBook struct {
	log *logger.Logger
}

func NewOrderBook(log *logger.Logger) *OrderBook {
	return &OrderBook{log: log}
}

func (o *OrderBook) Name() string { return NameOrderBook }

func (o *OrderBook) Compute(_ context.Context, symbol string, snap *models.MarketSnapshot) float64 {
	if snap == nil || len(snap.Bids) == 0 || len(snap.Asks) == 0 {
		o.log.Warn("orderbook: empty book, neutral fallback",
			logger.String("symbol", symbol))
		return Neutral
	}

	bidQty := depthQty(snap.Bids)
	askQty := depthQty(snap.Asks)
	total := bidQty + askQty
	if total <= 0 {
		o.log.Warn("orderbook: zero depth, neutral fallback",
			logger.String("symbol", symbol))
		return Neutral
	}

	imbalance := (bidQty - askQty) / total
	return DirectionalScore(imbalance)
}

func depthQty(levels []models.BookLevel) float64 {
	n := len(levels)
	if n > bookDepth {
		n = bookDepth
	}
	sum := 0.0
	for _, lvl := range levels[:n] {
		if lvl.Qty > 0 {
			sum += lvl.Qty
		}
	}
	return sum
}
