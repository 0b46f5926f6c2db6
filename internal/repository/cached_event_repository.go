package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/festapass/pricing-service/internal/domain"
	"github.com/festapass/pricing-service/pkg/redis"
)

const (
	// Cache key prefixes
	eventDetailKeyPrefix = "pricing:event:detail:"
	eventSlugKeyPrefix   = "pricing:event:slug:"
	eventListKeyPrefix   = "pricing:event:list:"

	// Default TTL for event caches
	eventCacheTTL = 5 * time.Minute
)

// CachedEventRepository wraps EventRepository with Redis caching. Quote and
// pricing-table reads hit the same event graph repeatedly, so detail reads are
// the hot path here.
type CachedEventRepository struct {
	repo  EventRepository
	cache *redis.Client
}

// NewCachedEventRepository creates a new CachedEventRepository
func NewCachedEventRepository(repo EventRepository, cache *redis.Client) *CachedEventRepository {
	return &CachedEventRepository{
		repo:  repo,
		cache: cache,
	}
}

// Create creates a new event and invalidates list caches
func (r *CachedEventRepository) Create(ctx context.Context, event *domain.Event) error {
	if err := r.repo.Create(ctx, event); err != nil {
		return err
	}
	r.invalidateListCaches(ctx)
	return nil
}

// GetByID retrieves an event by ID with caching
func (r *CachedEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	cacheKey := eventDetailKeyPrefix + id
	cached, err := r.cache.Get(ctx, cacheKey).Result()
	if err == nil && cached != "" {
		var event domain.Event
		if err := json.Unmarshal([]byte(cached), &event); err == nil {
			return &event, nil
		}
	}

	event, err := r.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, nil
	}

	r.cacheEvent(ctx, cacheKey, event)

	return event, nil
}

// GetBySlug retrieves an event by slug with caching
func (r *CachedEventRepository) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	cacheKey := eventSlugKeyPrefix + slug
	cached, err := r.cache.Get(ctx, cacheKey).Result()
	if err == nil && cached != "" {
		var event domain.Event
		if err := json.Unmarshal([]byte(cached), &event); err == nil {
			return &event, nil
		}
	}

	event, err := r.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, nil
	}

	// Store under both keys so ID lookups hit too
	r.cacheEvent(ctx, cacheKey, event)
	r.cacheEvent(ctx, eventDetailKeyPrefix+event.ID, event)

	return event, nil
}

// List lists events with filters and pagination. Only unfiltered or
// status-only queries are cached; the rest bypass the cache.
func (r *CachedEventRepository) List(ctx context.Context, filter *EventFilter, limit, offset int) ([]*domain.Event, int, error) {
	if filter == nil || (filter.OrganizerID == "" && filter.Search == "") {
		status := ""
		if filter != nil {
			status = filter.Status
		}
		cacheKey := fmt.Sprintf("%sall:%s:%d:%d", eventListKeyPrefix, status, limit, offset)
		cached, err := r.cache.Get(ctx, cacheKey).Result()
		if err == nil && cached != "" {
			var result cachedEventList
			if err := json.Unmarshal([]byte(cached), &result); err == nil {
				return result.Events, result.Total, nil
			}
		}

		events, total, err := r.repo.List(ctx, filter, limit, offset)
		if err != nil {
			return nil, 0, err
		}

		r.cacheEventList(ctx, cacheKey, events, total)

		return events, total, nil
	}

	return r.repo.List(ctx, filter, limit, offset)
}

// Update updates an event and invalidates its caches
func (r *CachedEventRepository) Update(ctx context.Context, event *domain.Event) error {
	if err := r.repo.Update(ctx, event); err != nil {
		return err
	}

	r.InvalidateEvent(ctx, event.ID, event.Slug)

	return nil
}

// Delete soft deletes an event and invalidates its caches
func (r *CachedEventRepository) Delete(ctx context.Context, id string) error {
	// Fetch first so we know the slug key to drop
	event, err := r.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := r.repo.Delete(ctx, id); err != nil {
		return err
	}

	if event != nil {
		r.InvalidateEvent(ctx, id, event.Slug)
	}

	return nil
}

// SlugExists checks if a slug already exists (bypass cache)
func (r *CachedEventRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	return r.repo.SlugExists(ctx, slug)
}

// InvalidateEvent drops the cached copies of one event. The inventory
// consumer calls this when availability changes so quotes never price against
// a stale graph.
func (r *CachedEventRepository) InvalidateEvent(ctx context.Context, id, slug string) {
	r.cache.Del(ctx, eventDetailKeyPrefix+id)
	if slug != "" {
		r.cache.Del(ctx, eventSlugKeyPrefix+slug)
	}
	r.invalidateListCaches(ctx)
}

// --- Helper functions ---

type cachedEventList struct {
	Events []*domain.Event `json:"events"`
	Total  int             `json:"total"`
}

func (r *CachedEventRepository) cacheEvent(ctx context.Context, key string, event *domain.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	r.cache.Set(ctx, key, string(data), eventCacheTTL)
}

func (r *CachedEventRepository) cacheEventList(ctx context.Context, key string, events []*domain.Event, total int) {
	data, err := json.Marshal(cachedEventList{Events: events, Total: total})
	if err != nil {
		return
	}
	r.cache.Set(ctx, key, string(data), eventCacheTTL)
}

func (r *CachedEventRepository) invalidateListCaches(ctx context.Context) {
	// KEYS is off the table in production, so walk with SCAN
	iter := r.cache.Client().Scan(ctx, 0, eventListKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		r.cache.Del(ctx, iter.Val())
	}
}
