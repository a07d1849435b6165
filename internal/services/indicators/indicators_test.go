package indicators

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/virtexvirtuoso/virtuoso-core/internal/domain/models"
	domsvc "github.com/virtexvirtuoso/virtuoso-core/internal/domain/service"
	"github.com/virtexvirtuoso/virtuoso-core/pkg/logger"
)

func risingCandles(n int) []models.Candle {
	out := make([]models.Candle, n)
	price := 100.0
	for i := range out {
		out[i] = models.Candle{
			Open:   price,
			High:   price + 1.5,
			Low:    price - 0.5,
			Close:  price + 1,
			Volume: 10,
		}
		price++
	}
	return out
}

func fallingCandles(n int) []models.Candle {
	out := make([]models.Candle, n)
	price := 200.0
	for i := range out {
		out[i] = models.Candle{
			Open:   price,
			High:   price + 0.5,
			Low:    price - 1.5,
			Close:  price - 1,
			Volume: 10,
		}
		price--
	}
	return out
}

func TestAllIndicatorsNeutralOnEmptySnapshot(t *testing.T) {
	ctx := context.Background()
	for _, ind := range DefaultSet(logger.Nop()) {
		t.Run(ind.Name(), func(t *testing.T) {
			assert.Equal(t, Neutral, ind.Compute(ctx, "BTCUSDT", &models.MarketSnapshot{}))
			assert.Equal(t, Neutral, ind.Compute(ctx, "BTCUSDT", nil))
		})
	}
}

func TestDefaultSetNames(t *testing.T) {
	set := DefaultSet(logger.Nop())
	names := make(map[string]bool, len(set))
	for _, ind := range set {
		names[ind.Name()] = true
	}
	for _, want := range []string{
		NameTechnical, NameVolume, NameOrderFlow,
		NameSentiment, NameOrderBook, NamePriceStructure,
	} {
		assert.True(t, names[want], "missing indicator %s", want)
	}
	assert.Len(t, set, 6)
}

func TestTechnicalDirection(t *testing.T) {
	ind := NewTechnical(logger.Nop())
	ctx := context.Background()

	up := ind.Compute(ctx, "BTCUSDT", &models.MarketSnapshot{Primary: risingCandles(60)})
	down := ind.Compute(ctx, "BTCUSDT", &models.MarketSnapshot{Primary: fallingCandles(60)})

	assert.Greater(t, up, 60.0)
	assert.Less(t, down, 40.0)
}

func TestVolumeConfirmation(t *testing.T) {
	ind := NewVolume(logger.Nop())
	ctx := context.Background()

	base := risingCandles(21)

	surge := append([]models.Candle{}, base...)
	surge[20].Volume = 30 // 3x the trailing average saturates

	assert.Equal(t, 100.0, ind.Compute(ctx, "BTCUSDT", &models.MarketSnapshot{Primary: surge}))

	dump := append([]models.Candle{}, fallingCandles(21)...)
	dump[20].Volume = 30
	assert.Equal(t, 0.0, ind.Compute(ctx, "BTCUSDT", &models.MarketSnapshot{Primary: dump}))

	// Average volume carries no conviction either way.
	assert.Equal(t, 50.0, ind.Compute(ctx, "BTCUSDT", &models.MarketSnapshot{Primary: base}))
}

func TestOrderFlowDelta(t *testing.T) {
	ind := NewOrderFlow(logger.Nop())
	ctx := context.Background()

	buys := &models.MarketSnapshot{Trades: []models.TapeTrade{
		{Qty: 2, IsBuyerMaker: false},
		{Qty: 3, IsBuyerMaker: false},
	}}
	sells := &models.MarketSnapshot{Trades: []models.TapeTrade{
		{Qty: 2, IsBuyerMaker: true},
		{Qty: 3, IsBuyerMaker: true},
	}}
	balanced := &models.MarketSnapshot{Trades: []models.TapeTrade{
		{Qty: 5, IsBuyerMaker: false},
		{Qty: 5, IsBuyerMaker: true},
	}}

	assert.Equal(t, 100.0, ind.Compute(ctx, "BTCUSDT", buys))
	assert.Equal(t, 0.0, ind.Compute(ctx, "BTCUSDT", sells))
	assert.Equal(t, 50.0, ind.Compute(ctx, "BTCUSDT", balanced))
}

func TestOrderBookImbalance(t *testing.T) {
	ind := NewOrderBook(logger.Nop())
	ctx := context.Background()

	bidHeavy := &models.MarketSnapshot{
		Bids: []models.BookLevel{{Price: 99, Qty: 30}},
		Asks: []models.BookLevel{{Price: 101, Qty: 10}},
	}
	askHeavy := &models.MarketSnapshot{
		Bids: []models.BookLevel{{Price: 99, Qty: 10}},
		Asks: []models.BookLevel{{Price: 101, Qty: 30}},
	}

	assert.InDelta(t, 75.0, ind.Compute(ctx, "BTCUSDT", bidHeavy), 1e-9)
	assert.InDelta(t, 25.0, ind.Compute(ctx, "BTCUSDT", askHeavy), 1e-9)
}

func TestOrderBookDepthCap(t *testing.T) {
	ind := NewOrderBook(logger.Nop())
	ctx := context.Background()

	// Deep bid levels beyond the cap must not count.
	bids := make([]models.BookLevel, 15)
	for i := range bids {
		bids[i] = models.BookLevel{Price: 99, Qty: 1}
	}
	snap := &models.MarketSnapshot{
		Bids: bids,
		Asks: []models.BookLevel{{Price: 101, Qty: 10}},
	}

	// 10 counted bids vs 10 asks: balanced.
	assert.InDelta(t, 50.0, ind.Compute(ctx, "BTCUSDT", snap), 1e-9)
}

func TestSentimentComponents(t *testing.T) {
	ind := NewSentiment(logger.Nop())
	ctx := context.Background()

	neutral := &models.MarketSnapshot{Sentiment: &models.SentimentMetrics{
		FundingRate:    0,
		LongShortRatio: 1,
		SocialScore:    50,
	}}
	assert.InDelta(t, 50.0, ind.Compute(ctx, "BTCUSDT", neutral), 1e-9)

	bullish := &models.MarketSnapshot{Sentiment: &models.SentimentMetrics{
		FundingRate:    0,
		LongShortRatio: 2,
		SocialScore:    90,
	}}
	assert.Greater(t, ind.Compute(ctx, "BTCUSDT", bullish), 50.0)

	// Crowded longs read contrarian: heavy positive funding drags the
	// score down versus the same snapshot without it.
	crowded := &models.MarketSnapshot{Sentiment: &models.SentimentMetrics{
		FundingRate:    0.001,
		LongShortRatio: 2,
		SocialScore:    90,
	}}
	assert.Less(t,
		ind.Compute(ctx, "BTCUSDT", crowded),
		ind.Compute(ctx, "BTCUSDT", bullish))
}

func TestPriceStructureRangePosition(t *testing.T) {
	ind := NewPriceStructure(logger.Nop())
	ctx := context.Background()

	// Rising series closes at the top of its range; no higher-timeframe
	// bars, so the trend term stays neutral.
	top := &models.MarketSnapshot{Primary: risingCandles(50)}
	bottom := &models.MarketSnapshot{Primary: fallingCandles(50)}

	assert.Greater(t, ind.Compute(ctx, "BTCUSDT", top), 75.0)
	assert.Less(t, ind.Compute(ctx, "BTCUSDT", bottom), 25.0)
}

func TestSeriesHelpers(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 2.0, Mean([]float64{1, 2, 3}))

	assert.Equal(t, 0.0, EMA([]float64{1, 2}, 5))
	assert.Equal(t, 50.0, RSI([]float64{1, 2}, 14))
	assert.Equal(t, 50.0, RSI([]float64{5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5}, 14))

	assert.Equal(t, 100.0, DirectionalScore(2))
	assert.Equal(t, 0.0, DirectionalScore(-2))
	assert.Equal(t, 50.0, DirectionalScore(0))
}

var _ domsvc.Indicator = (*Technical)(nil)
