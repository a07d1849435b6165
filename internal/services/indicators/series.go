package indicators

import (
	"math"

	"github.com/virtexvirtuoso/virtuoso-core/internal/domain/models"
)

// Closes extracts the close series from candles.
func Closes(candles []models.Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Close
	}
	return out
}

// Volumes extracts the volume series from candles.
func Volumes(candles []models.Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Volume
	}
	return out
}

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// EMA computes an exponential moving average over the full series and
// returns the latest value. Returns 0 when the series is shorter than
// the period.
func EMA(xs []float64, period int) float64 {
	if period <= 0 || len(xs) < period {
		return 0
	}
	alpha := 2.0 / (float64(period) + 1.0)
	ema := Mean(xs[:period])
	for i := period; i < len(xs); i++ {
		ema = alpha*xs[i] + (1-alpha)*ema
	}
	return ema
}

// RSI computes the relative strength index over the last `period`
// deltas using a simple average of gains and losses. Returns 50 when
// the series is too short or flat.
func RSI(closes []float64, period int) float64 {
	if period <= 0 || len(closes) < period+1 {
		return 50
	}
	gains := 0.0
	losses := 0.0
	for i := len(closes) - period; i < len(closes); i++ {
		d := closes[i] - closes[i-1]
		if d > 0 {
			gains += d
		} else {
			losses -= d
		}
	}
	if gains+losses == 0 {
		return 50
	}
	rs := gains / (losses + 1e-12)
	return 100 - 100/(1+rs)
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampSym bounds v to [-1, 1].
func ClampSym(v float64) float64 {
	return Clamp(v, -1, 1)
}

// DirectionalScore maps a [-1,1] direction to the 0-100 score domain.
func DirectionalScore(direction float64) float64 {
	return 50 + ClampSym(direction)*50
}

var _ = math.Sqrt
