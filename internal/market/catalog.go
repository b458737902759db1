package market

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/coinbuddy/backend/internal/model/coin"
)

// CatalogLoader fetches the full coin list from upstream.
type CatalogLoader interface {
	LoadCatalog(ctx context.Context) ([]coin.Coin, error)
}

// Catalog caches the coin list for the life of the process. The first
// successful load wins; concurrent first loads are coalesced into a
// single upstream fetch. A failed load is not cached, so the next
// caller retries.
type Catalog struct {
	loader CatalogLoader
	group  singleflight.Group

	mu     sync.RWMutex
	coins  []coin.Coin
	loaded bool
}

// NewCatalog wraps a loader with the shared process-wide cache.
func NewCatalog(loader CatalogLoader) *Catalog {
	return &Catalog{loader: loader}
}

// Catalog returns the cached coin list, loading it on first use.
// Callers must treat the returned slice as read-only.
func (c *Catalog) Catalog(ctx context.Context) ([]coin.Coin, error) {
	c.mu.RLock()
	if c.loaded {
		coins := c.coins
		c.mu.RUnlock()
		return coins, nil
	}
	c.mu.RUnlock()

	v, err, _ := c.group.Do("catalog", func() (any, error) {
		c.mu.RLock()
		if c.loaded {
			coins := c.coins
			c.mu.RUnlock()
			return coins, nil
		}
		c.mu.RUnlock()

		coins, err := c.loader.LoadCatalog(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.coins = coins
		c.loaded = true
		c.mu.Unlock()
		return coins, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]coin.Coin), nil
}
