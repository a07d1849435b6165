package models

import "time"

// Signal is the discrete trading classification of a confluence score.
type Signal string

const (
	SignalBuy     Signal = "BUY"
	SignalSell    Signal = "SELL"
	SignalNeutral Signal = "NEUTRAL"
)

// IndicatorScore is one component's contribution to a confluence result.
type IndicatorScore struct {
	Name   string
	Score  float64 // 0..100, 50 neutral
	Weight float64 // 0..1
}

// ConfluenceResult is the final per-symbol output of a monitoring cycle.
// It is immutable after construction; downstream consumers must not
// mutate it.
type ConfluenceResult struct {
	Symbol    string
	Timestamp time.Time

	BaseScore        float64 // weighted directional score before adjustment
	WeightedVariance float64 // dispersion of components around the weighted mean
	Consensus        float64 // 0..1, agreement among components
	Confidence       float64 // 0..1, signal-to-noise adjusted trust
	FinalScore       float64 // 0..100, amplified or dampened base score

	Signal      Signal
	Reliability int // round(Confidence*100), 0..100

	// Degraded marks a result produced from an empty or zero-weight
	// component set. Degraded results are non-actionable.
	Degraded bool

	Components map[string]IndicatorScore
}
