package user

import (
	"time"

	"go-vacation/internal/domain"

	"github.com/jellydator/ttlcache/v3"
)

const DefaultCacheTTL = 5 * time.Minute

// resolvedCache keeps resolved users by external id. Entries expire after a
// fixed TTL; reads do not extend it.
type resolvedCache struct {
	c   *ttlcache.Cache[string, domain.User]
	ttl time.Duration
}

func newResolvedCache(ttl time.Duration) *resolvedCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &resolvedCache{
		c: ttlcache.New[string, domain.User](
			ttlcache.WithTTL[string, domain.User](ttl),
			ttlcache.WithDisableTouchOnHit[string, domain.User](),
		),
		ttl: ttl,
	}
}

// Get returns a copy so callers cannot mutate the cached entry.
func (c *resolvedCache) Get(externalID string) (*domain.User, bool) {
	item := c.c.Get(externalID)
	if item == nil || item.IsExpired() {
		return nil, false
	}
	u := item.Value()
	return &u, true
}

func (c *resolvedCache) Set(u *domain.User) {
	if u == nil || u.ExternalID == "" {
		return
	}
	c.c.Set(u.ExternalID, *u, c.ttl)
}

func (c *resolvedCache) Delete(externalID string) {
	c.c.Delete(externalID)
}
