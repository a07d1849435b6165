package models

import "time"

// Candle represents one OHLCV bar.
type Candle struct {
	OpenTime time.Time
	Open     float64
	High     float64
	Low      float64
	Close    float64
	Volume   float64
}

// BookLevel is a single price level of the order book.
type BookLevel struct {
	Price float64
	Qty   float64
}

// TapeTrade is one executed trade from the recent trade tape.
type TapeTrade struct {
	Time  time.Time
	Price float64
	Qty   float64
	// IsBuyerMaker is true when the aggressor was a seller.
	IsBuyerMaker bool
}

// SentimentMetrics carries externally sourced sentiment figures.
type SentimentMetrics struct {
	FundingRate    float64
	LongShortRatio float64
	SocialScore    float64 // 0..100
}

// MarketSnapshot bundles everything the indicator set may read for one
// symbol in one cycle. It is owned by the market data provider; the
// engine only reads it.
type MarketSnapshot struct {
	Symbol    string
	Timestamp time.Time

	// Primary candles drive most indicator math; Higher gives broader
	// market context on a slower timeframe.
	Primary []Candle
	Higher  []Candle

	Bids []BookLevel
	Asks []BookLevel

	Trades []TapeTrade

	Sentiment *SentimentMetrics
}

// LastClose returns the latest primary close, or 0 when no candles exist.
func (s *MarketSnapshot) LastClose() float64 {
	if s == nil || len(s.Primary) == 0 {
		return 0
	}
	return s.Primary[len(s.Primary)-1].Close
}
