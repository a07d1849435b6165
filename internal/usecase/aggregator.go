package usecase

import (
	"math"
	"time"

	"github.com/virtexvirtuoso/virtuoso-core/internal/domain/models"
	"github.com/virtexvirtuoso/virtuoso-core/pkg/logger"
)

// weightTolerance is the allowed drift before weights get renormalized.
const weightTolerance = 1e-6

// AggregatorConfig carries the tunable constants of the confluence
// pipeline. The defaults were calibrated empirically against a single
// documented production case; treat them as starting points for tuning.
type AggregatorConfig struct {
	Beta                float64 // variance penalty in the confidence denominator
	ConfidenceThreshold float64 // amplify only above this confidence
	ConsensusThreshold  float64 // amplify only above this consensus
	SafetyCap           float64 // max points of amplification away from base
}

// DefaultAggregatorConfig returns the production defaults.
func DefaultAggregatorConfig() AggregatorConfig {
	return AggregatorConfig{
		Beta:                2.0,
		ConfidenceThreshold: 0.50,
		ConsensusThreshold:  0.75,
		SafetyCap:           15,
	}
}

// Aggregator reduces a weighted set of indicator scores to one
// ConfluenceResult: normalize, weighted sum, weighted variance,
// consensus, signal-to-noise confidence, then amplify or dampen.
type Aggregator struct {
	cfg AggregatorConfig
	log *logger.Logger
}

func NewAggregator(cfg AggregatorConfig, log *logger.Logger) *Aggregator {
	return &Aggregator{cfg: cfg, log: log}
}

// Aggregate combines the component scores for one symbol. An empty set
// or all-zero weights produces a degraded neutral result.
func (a *Aggregator) Aggregate(symbol string, at time.Time, scores []models.IndicatorScore) *models.ConfluenceResult {
	res := &models.ConfluenceResult{
		Symbol:     symbol,
		Timestamp:  at,
		Components: make(map[string]models.IndicatorScore, len(scores)),
	}

	totalWeight := 0.0
	for _, s := range scores {
		totalWeight += s.Weight
	}
	if len(scores) == 0 || totalWeight <= 0 {
		a.log.Warn("confluence degraded: empty or zero-weight component set",
			logger.String("symbol", symbol))
		res.BaseScore = 50
		res.FinalScore = 50
		res.Degraded = true
		return res
	}

	// Renormalize so weights sum to 1 within tolerance.
	norm := make([]float64, len(scores))
	weights := make([]float64, len(scores))
	for i, s := range scores {
		w := s.Weight
		if math.Abs(totalWeight-1) > weightTolerance {
			w = s.Weight / totalWeight
		}
		weights[i] = w
		norm[i] = (clamp(s.Score, 0, 100) - 50) / 50

		comp := s
		comp.Weight = w
		res.Components[s.Name] = comp
	}

	weighted := 0.0
	for i := range norm {
		weighted += weights[i] * norm[i]
	}
	res.BaseScore = 50 + 50*weighted

	variance := 0.0
	for i := range norm {
		d := norm[i] - weighted
		variance += weights[i] * d * d
	}
	// Floating-point error can produce a tiny negative variance.
	if variance < 0 {
		variance = 0
	}
	res.WeightedVariance = variance

	res.Consensus = math.Exp(-2 * variance)

	// Signal-to-noise confidence: consensus divided by a
	// variance-penalized denominator. Unlike |W|*C this recognizes
	// strong signals whose components disagree only on magnitude.
	res.Confidence = res.Consensus / (1 + a.cfg.Beta*math.Sqrt(variance))

	deviation := res.BaseScore - 50
	var adjusted float64
	if res.Confidence > a.cfg.ConfidenceThreshold && res.Consensus > a.cfg.ConsensusThreshold {
		excess := res.Confidence - a.cfg.ConfidenceThreshold
		ampFactor := 1 + excess*0.15/0.50
		adjusted = 50 + deviation*ampFactor
		// Safety cap against runaway amplification.
		adjusted = clamp(adjusted, res.BaseScore-a.cfg.SafetyCap, res.BaseScore+a.cfg.SafetyCap)
	} else {
		adjusted = 50 + deviation*res.Confidence
	}

	res.FinalScore = clamp(adjusted, 0, 100)
	return res
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
