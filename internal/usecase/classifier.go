package usecase

import (
	"math"

	"github.com/virtexvirtuoso/virtuoso-core/internal/domain/models"
)

// Classifier maps a final confluence score to a discrete signal.
// Thresholds are injected so boundary behavior is fully deterministic
// in tests; there are no hidden defaults in the decision itself.
type Classifier struct {
	buyThreshold  float64
	sellThreshold float64
}

func NewClassifier(buyThreshold, sellThreshold float64) *Classifier {
	return &Classifier{buyThreshold: buyThreshold, sellThreshold: sellThreshold}
}

// Classify fills Signal and Reliability on the result. Exactly hitting
// the buy threshold classifies as BUY, the sell threshold as SELL.
func (c *Classifier) Classify(res *models.ConfluenceResult) {
	switch {
	case res.FinalScore >= c.buyThreshold:
		res.Signal = models.SignalBuy
	case res.FinalScore <= c.sellThreshold:
		res.Signal = models.SignalSell
	default:
		res.Signal = models.SignalNeutral
	}

	res.Reliability = int(clamp(math.Round(res.Confidence*100), 0, 100))
}
