//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"github.com/virtexvirtuoso/virtuoso-core/pkg/config"
	"github.com/virtexvirtuoso/virtuoso-core/pkg/server"
)

// InitializeApp wires the full application graph from a loaded config.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,
		ProvideCacheBackend,
		ProvideIndicatorCache,
		ProvideIndicators,
		ProvideSnapshotProvider,
		ProvideAggregator,
		ProvideClassifier,
		ProvideResultStore,
		ProvidePool,
		ProvideEngine,
		ProvideHandler,
		ProvideApp,
	)
	return nil, nil
}
