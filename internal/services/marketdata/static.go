// Package marketdata provides an in-process SnapshotProvider. Real
// exchange connectivity lives outside this repository; the engine only
// needs something that yields MarketSnapshot values.
package marketdata

import (
	"context"
	"hash/fnv"
	"math"
	"math/rand"
	"time"

	"github.com/virtexvirtuoso/virtuoso-core/internal/domain/models"
	domsvc "github.com/virtexvirtuoso/virtuoso-core/internal/domain/service"
)

const (
	primaryBars = 120
	higherBars  = 60
	bookLevels  = 10
	tapeTrades  = 50
)

// StaticProvider generates deterministic synthetic snapshots: a seeded
// random walk per symbol. Useful for local runs and exercising the
// full pipeline without any exchange dependency.
type StaticProvider struct {
	basePrice float64
}

func NewStaticProvider() *StaticProvider {
	return &StaticProvider{basePrice: 100}
}

func (p *StaticProvider) Snapshot(_ context.Context, symbol string) (*models.MarketSnapshot, error) {
	rng := rand.New(rand.NewSource(seedFor(symbol)))
	now := time.Now()

	primary := walk(rng, p.basePrice, primaryBars, now, 5*time.Minute)
	higher := walk(rng, p.basePrice, higherBars, now, time.Hour)
	last := primary[len(primary)-1].Close

	bids := make([]models.BookLevel, bookLevels)
	asks := make([]models.BookLevel, bookLevels)
	for i := 0; i < bookLevels; i++ {
		step := last * 0.0005 * float64(i+1)
		bids[i] = models.BookLevel{Price: last - step, Qty: 1 + 2*rng.Float64()}
		asks[i] = models.BookLevel{Price: last + step, Qty: 1 + 2*rng.Float64()}
	}

	trades := make([]models.TapeTrade, tapeTrades)
	for i := range trades {
		trades[i] = models.TapeTrade{
			Time:         now.Add(-time.Duration(tapeTrades-i) * time.Second),
			Price:        last * (1 + (rng.Float64()-0.5)*0.001),
			Qty:          rng.Float64() * 2,
			IsBuyerMaker: rng.Float64() < 0.5,
		}
	}

	return &models.MarketSnapshot{
		Symbol:    symbol,
		Timestamp: now,
		Primary:   primary,
		Higher:    higher,
		Bids:      bids,
		Asks:      asks,
		Trades:    trades,
		Sentiment: &models.SentimentMetrics{
			FundingRate:    (rng.Float64() - 0.5) * 0.0004,
			LongShortRatio: 0.8 + rng.Float64()*0.6,
			SocialScore:    30 + rng.Float64()*40,
		},
	}, nil
}

func walk(rng *rand.Rand, base float64, n int, end time.Time, step time.Duration) []models.Candle {
	candles := make([]models.Candle, n)
	price := base * (0.9 + rng.Float64()*0.2)
	for i := 0; i < n; i++ {
		drift := (rng.Float64() - 0.5) * 0.01
		open := price
		close := price * (1 + drift)
		hi := math.Max(open, close) * (1 + rng.Float64()*0.002)
		lo := math.Min(open, close) * (1 - rng.Float64()*0.002)
		candles[i] = models.Candle{
			OpenTime: end.Add(-time.Duration(n-i) * step),
			Open:     open,
			High:     hi,
			Low:      lo,
			Close:    close,
			Volume:   100 + rng.Float64()*900,
		}
		price = close
	}
	return candles
}

func seedFor(symbol string) int64 {
	h := fnv.New64a()
	h.Write([]byte(symbol))
	return int64(h.Sum64())
}

var _ domsvc.SnapshotProvider = (*StaticProvider)(nil)
