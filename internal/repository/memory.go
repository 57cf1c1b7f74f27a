package repository

import (
	"context"
	"sync"
	"time"

	"hotelier/internal/models"
)

type memoryEntry struct {
	rooms     []models.AvailableRoom
	expiresAt time.Time
}

// MemoryAvailabilityCache is a process-local availability cache, used as the
// failover fallback and in tests.
type MemoryAvailabilityCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

func NewMemoryAvailabilityCache(ttl time.Duration) *MemoryAvailabilityCache {
	return &MemoryAvailabilityCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
	}
}

func cacheKey(start, end time.Time) string {
	return "availability:" + start.Format(models.DateLayout) + ":" + end.Format(models.DateLayout)
}

func (c *MemoryAvailabilityCache) Get(ctx context.Context, start, end time.Time) ([]models.AvailableRoom, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[cacheKey(start, end)]
	c.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false, nil
	}
	return entry.rooms, true, nil
}

func (c *MemoryAvailabilityCache) Set(ctx context.Context, start, end time.Time, rooms []models.AvailableRoom) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey(start, end)] = memoryEntry{
		rooms:     rooms,
		expiresAt: time.Now().Add(c.ttl),
	}
	return nil
}

func (c *MemoryAvailabilityCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]memoryEntry)
	return nil
}
