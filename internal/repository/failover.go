package repository

import (
	"context"
	"sync/atomic"
	"time"

	"hotelier/internal/domain"
	"hotelier/internal/models"

	"github.com/rs/zerolog"
)

// FailoverAvailabilityCache serves from the primary cache (Redis) and falls
// back to the in-memory cache while the primary is unreachable. Recovery is
// attempted at most once a minute.
type FailoverAvailabilityCache struct {
	primary   domain.AvailabilityCache
	fallback  domain.AvailabilityCache
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck atomic.Int64 // unix nanos of the last failed primary call
}

func NewFailoverAvailabilityCache(primary, fallback domain.AvailabilityCache, logger *zerolog.Logger) *FailoverAvailabilityCache {
	return &FailoverAvailabilityCache{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (c *FailoverAvailabilityCache) markDown(err error) {
	c.logger.Error().Err(err).Msg("Primary availability cache failed, falling back to memory")
	c.isDown.Store(true)
	c.lastCheck.Store(time.Now().UnixNano())
}

func (c *FailoverAvailabilityCache) recoveryDue() bool {
	return time.Since(time.Unix(0, c.lastCheck.Load())) > time.Minute
}

func (c *FailoverAvailabilityCache) Get(ctx context.Context, start, end time.Time) ([]models.AvailableRoom, bool, error) {
	if !c.isDown.Load() {
		rooms, ok, err := c.primary.Get(ctx, start, end)
		if err == nil {
			return rooms, ok, nil
		}
		c.markDown(err)
	}

	// Try to recover after 1 minute
	if c.isDown.Load() && c.recoveryDue() {
		rooms, ok, err := c.primary.Get(ctx, start, end)
		if err == nil {
			c.isDown.Store(false)
			return rooms, ok, nil
		}
		c.lastCheck.Store(time.Now().UnixNano())
	}

	return c.fallback.Get(ctx, start, end)
}

func (c *FailoverAvailabilityCache) Set(ctx context.Context, start, end time.Time, rooms []models.AvailableRoom) error {
	if !c.isDown.Load() {
		err := c.primary.Set(ctx, start, end, rooms)
		if err == nil {
			return nil
		}
		c.markDown(err)
	}

	return c.fallback.Set(ctx, start, end, rooms)
}

func (c *FailoverAvailabilityCache) Invalidate(ctx context.Context) error {
	// Invalidation must reach both layers, otherwise a recovered primary
	// could serve results written before the last reservation.
	var primaryErr error
	if !c.isDown.Load() {
		primaryErr = c.primary.Invalidate(ctx)
		if primaryErr != nil {
			c.markDown(primaryErr)
		}
	}

	if err := c.fallback.Invalidate(ctx); err != nil {
		return err
	}
	return primaryErr
}
