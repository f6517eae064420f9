package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"yardflow/internal/core/cache"
	"yardflow/internal/yard/domain"
)

const (
	activeAppointmentsKeyPrefix = "active_appointments:"
	activeAppointmentsTTL       = 5 * time.Minute
)

// RedisActiveAppointmentCache implements ports.ActiveAppointmentCache
// on top of the shared cache client, one JSON entry per site.
type RedisActiveAppointmentCache struct {
	cache cache.Cache
}

// NewRedisActiveAppointmentCache creates a new RedisActiveAppointmentCache.
func NewRedisActiveAppointmentCache(c cache.Cache) *RedisActiveAppointmentCache {
	return &RedisActiveAppointmentCache{
		cache: c,
	}
}

// Get retrieves the cached active appointments for a site.
// Returns nil, nil on a cache miss.
func (r *RedisActiveAppointmentCache) Get(ctx context.Context, siteID string) ([]domain.Appointment, error) {
	data, err := r.cache.Get(ctx, activeAppointmentsKeyPrefix+siteID)
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active appointments from cache: %w", err)
	}

	var appointments []domain.Appointment
	if err := json.Unmarshal(data, &appointments); err != nil {
		return nil, fmt.Errorf("failed to unmarshal active appointments: %w", err)
	}

	return appointments, nil
}

// Set stores the active appointments for a site.
func (r *RedisActiveAppointmentCache) Set(ctx context.Context, siteID string, appointments []domain.Appointment) error {
	data, err := json.Marshal(appointments)
	if err != nil {
		return fmt.Errorf("failed to marshal active appointments: %w", err)
	}

	if err := r.cache.Set(ctx, activeAppointmentsKeyPrefix+siteID, data, activeAppointmentsTTL); err != nil {
		return fmt.Errorf("failed to save active appointments to cache: %w", err)
	}

	return nil
}

// Invalidate drops the cached entry for a site.
func (r *RedisActiveAppointmentCache) Invalidate(ctx context.Context, siteID string) error {
	if err := r.cache.Delete(ctx, activeAppointmentsKeyPrefix+siteID); err != nil {
		return fmt.Errorf("failed to invalidate active appointments cache: %w", err)
	}
	return nil
}
