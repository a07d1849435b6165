package marketdata

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticProviderShape(t *testing.T) {
	p := NewStaticProvider()
	snap, err := p.Snapshot(context.Background(), "BTCUSDT")
	require.NoError(t, err)

	assert.Equal(t, "BTCUSDT", snap.Symbol)
	assert.Len(t, snap.Primary, primaryBars)
	assert.Len(t, snap.Higher, higherBars)
	assert.Len(t, snap.Bids, bookLevels)
	assert.Len(t, snap.Asks, bookLevels)
	assert.Len(t, snap.Trades, tapeTrades)
	require.NotNil(t, snap.Sentiment)

	// Bids descend below the last close, asks ascend above it.
	last := snap.LastClose()
	assert.Less(t, snap.Bids[0].Price, last)
	assert.Greater(t, snap.Asks[0].Price, last)
	assert.Less(t, snap.Bids[1].Price, snap.Bids[0].Price)
	assert.Greater(t, snap.Asks[1].Price, snap.Asks[0].Price)
}

func TestStaticProviderDeterministicPerSymbol(t *testing.T) {
	p := NewStaticProvider()
	ctx := context.Background()

	a, err := p.Snapshot(ctx, "BTCUSDT")
	require.NoError(t, err)
	b, err := p.Snapshot(ctx, "BTCUSDT")
	require.NoError(t, err)
	other, err := p.Snapshot(ctx, "ETHUSDT")
	require.NoError(t, err)

	// Same symbol replays the same walk; a different symbol diverges.
	assert.Equal(t, a.Primary[0].Close, b.Primary[0].Close)
	assert.Equal(t, a.LastClose(), b.LastClose())
	assert.NotEqual(t, a.LastClose(), other.LastClose())
}
