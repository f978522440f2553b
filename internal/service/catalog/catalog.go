// Package catalog manages the reference data flights are built from:
// airports, routes, airplane types, airplanes and crews.
package catalog

import (
	"context"

	"go.uber.org/zap"
)

// FlightCache is invalidated whenever an entity shown in the flight list
// projection changes.
type FlightCache interface {
	InvalidateFlights(ctx context.Context) error
}

type invalidator struct {
	cache  FlightCache
	logger *zap.Logger
}

func (i invalidator) invalidate(ctx context.Context) {
	if i.cache == nil {
		return
	}
	if err := i.cache.InvalidateFlights(ctx); err != nil {
		i.logger.Warn("flight cache invalidation failed", zap.Error(err))
	}
}
