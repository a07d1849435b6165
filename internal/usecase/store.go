package usecase

import (
	"context"
	"sync"

	"github.com/virtexvirtuoso/virtuoso-core/internal/domain/models"
	"github.com/virtexvirtuoso/virtuoso-core/pkg/logger"
)

// ResultStore keeps the latest ConfluenceResult per symbol and acts as
// the in-process ResultPublisher. External alerting and dashboards read
// from here; the engine never blocks on them.
type ResultStore struct {
	mu      sync.RWMutex
	latest  map[string]*models.ConfluenceResult
	log     *logger.Logger
}

func NewResultStore(log *logger.Logger) *ResultStore {
	return &ResultStore{
		latest: make(map[string]*models.ConfluenceResult),
		log:    log,
	}
}

// Publish stores the result and logs the decision.
func (s *ResultStore) Publish(_ context.Context, res *models.ConfluenceResult) error {
	s.mu.Lock()
	s.latest[res.Symbol] = res
	s.mu.Unlock()

	s.log.Info("confluence result",
		logger.String("symbol", res.Symbol),
		logger.Float64("final_score", res.FinalScore),
		logger.Float64("confidence", res.Confidence),
		logger.String("signal", string(res.Signal)),
		logger.Bool("degraded", res.Degraded))
	return nil
}

// Latest returns the most recent result for a symbol.
func (s *ResultStore) Latest(symbol string) (*models.ConfluenceResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res, ok := s.latest[symbol]
	return res, ok
}

// All returns a copy of the latest result map.
func (s *ResultStore) All() map[string]*models.ConfluenceResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]*models.ConfluenceResult, len(s.latest))
	for k, v := range s.latest {
		out[k] = v
	}
	return out
}
