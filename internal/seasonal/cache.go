package seasonal

import (
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/varoOP/seasonal/internal/domain"
)

// DefaultCacheTTL bounds how long a resolved result is served when the
// invalidation path is bypassed
const DefaultCacheTTL = time.Hour

const activeKey = "_seasonal_images_active"

// activeEntry is the cached resolver outcome. A nil image is a cached
// "no active image".
type activeEntry struct {
	image *domain.SeasonalImage
}

// ActiveCache holds the single process-wide resolver result
type ActiveCache struct {
	items *ttlcache.Cache[string, activeEntry]
}

// NewActiveCache creates an empty cache whose entries expire after ttl
func NewActiveCache(ttl time.Duration) *ActiveCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	return &ActiveCache{
		items: ttlcache.New(
			ttlcache.WithTTL[string, activeEntry](ttl),
			ttlcache.WithDisableTouchOnHit[string, activeEntry](),
			ttlcache.WithCapacity[string, activeEntry](1),
		),
	}
}

// Get returns the cached result and whether the slot was populated
func (c *ActiveCache) Get() (*domain.SeasonalImage, bool) {
	item := c.items.Get(activeKey)
	if item == nil {
		return nil, false
	}
	return item.Value().image, true
}

// Set stores a result, nil meaning "no active image"
func (c *ActiveCache) Set(img *domain.SeasonalImage) {
	c.items.Set(activeKey, activeEntry{image: img}, ttlcache.DefaultTTL)
}

// GetOrCompute returns the cached result, or runs compute and caches what it
// returns. Errors are handed back to the caller and never cached.
func (c *ActiveCache) GetOrCompute(compute func() (*domain.SeasonalImage, error)) (*domain.SeasonalImage, error) {
	if img, ok := c.Get(); ok {
		return img, nil
	}

	img, err := compute()
	if err != nil {
		return nil, err
	}

	c.Set(img)
	return img, nil
}

// Invalidate empties the slot; the next read recomputes
func (c *ActiveCache) Invalidate() {
	c.items.Delete(activeKey)
}
