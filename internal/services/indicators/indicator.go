// Package indicators holds the closed set of scoring components the
// confluence engine runs per symbol. Every component maps a market
// snapshot to a 0-100 score and fails to the neutral 50 instead of
// returning errors.
package indicators

import (
	domsvc "github.com/virtexvirtuoso/virtuoso-core/internal/domain/service"
	"github.com/virtexvirtuoso/virtuoso-core/pkg/logger"
)

// Neutral is the score an indicator returns when it cannot form an
// opinion from the available data.
const Neutral = 50.0

// Component names. These are also the keys of the weights map in the
// configuration.
const (
	NameTechnical      = "technical"
	NameVolume         = "volume"
	NameOrderFlow      = "orderflow"
	NameSentiment      = "sentiment"
	NameOrderBook      = "orderbook"
	NamePriceStructure = "pricestructure"
)

// DefaultSet returns the full indicator set in its canonical order.
func DefaultSet(log *logger.Logger) []domsvc.Indicator {
	return []domsvc.Indicator{
		NewTechnical(log),
		NewVolume(log),
		NewOrderFlow(log),
		NewSentiment(log),
		NewOrderBook(log),
		NewPriceStructure(log),
	}
}
