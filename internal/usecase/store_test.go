package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/virtexvirtuoso/virtuoso-core/internal/domain/models"
	"github.com/virtexvirtuoso/virtuoso-core/pkg/logger"
)

func TestResultStorePublishAndRead(t *testing.T) {
	store := NewResultStore(logger.Nop())
	ctx := context.Background()

	_, ok := store.Latest("BTCUSDT")
	assert.False(t, ok)

	first := &models.ConfluenceResult{Symbol: "BTCUSDT", FinalScore: 61, Timestamp: time.Now()}
	require.NoError(t, store.Publish(ctx, first))

	got, ok := store.Latest("BTCUSDT")
	require.True(t, ok)
	assert.Equal(t, 61.0, got.FinalScore)

	// A later publish replaces the previous result.
	second := &models.ConfluenceResult{Symbol: "BTCUSDT", FinalScore: 44, Timestamp: time.Now()}
	require.NoError(t, store.Publish(ctx, second))

	got, ok = store.Latest("BTCUSDT")
	require.True(t, ok)
	assert.Equal(t, 44.0, got.FinalScore)

	all := store.All()
	assert.Len(t, all, 1)

	// The returned map is a copy; mutating it must not affect the store.
	delete(all, "BTCUSDT")
	_, ok = store.Latest("BTCUSDT")
	assert.True(t, ok)
}

func TestResultStoreConcurrentPublish(t *testing.T) {
	store := NewResultStore(logger.Nop())
	ctx := context.Background()

	var wg sync.WaitGroup
	symbols := []string{"BTCUSDT", "ETHUSDT", "SOLUSDT"}
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sym := symbols[i%len(symbols)]
			_ = store.Publish(ctx, &models.ConfluenceResult{Symbol: sym, FinalScore: float64(i)})
		}(i)
	}
	wg.Wait()

	assert.Len(t, store.All(), len(symbols))
}

func TestPoolRunsAllTasks(t *testing.T) {
	pool := NewPool(3)

	var count int64
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		pool.Submit(func() {
			defer wg.Done()
			atomic.AddInt64(&count, 1)
		})
	}
	wg.Wait()
	pool.Close()

	assert.Equal(t, int64(50), atomic.LoadInt64(&count))
}

func TestPoolCloseIdempotent(t *testing.T) {
	pool := NewPool(1)
	pool.Close()
	assert.NotPanics(t, pool.Close)
}
