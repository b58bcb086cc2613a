package ssdp

import (
	"context"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// ResponseCache holds SearchResponse values keyed by service_name, with
// expiration derived from each response's MaxAge. Grounded on the
// teacher's DeviceCache (server/sonos_cast/types.go), generalized from a
// fixed RWMutex-guarded map to a TTL-aware cache backed by ttlcache/v3 so
// expiration (spec.md §3's CacheEntry invariant) is enforced by the cache
// itself rather than a hand-rolled scan.
type ResponseCache struct {
	mu          sync.Mutex
	opts        Options
	cache       *ttlcache.Cache[string, *SearchResponse]
	lastUpdated time.Time
}

func newResponseCache(opts Options) *ResponseCache {
	return &ResponseCache{
		opts:  opts,
		cache: ttlcache.New[string, *SearchResponse](),
	}
}

// Search runs SearchOnce and seeds the cache with (response, now+max_age)
// entries per spec.md §4.7.
func Search(ctx context.Context, opts Options) (*ResponseCache, error) {
	responses, err := searchOnceFn(ctx, opts)
	if err != nil {
		return nil, err
	}

	rc := newResponseCache(opts)
	rc.insert(responses)
	return rc, nil
}

func (rc *ResponseCache) insert(responses []*SearchResponse) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	for _, r := range responses {
		rc.cache.Set(r.ServiceName, r, r.MaxAge)
	}
	rc.lastUpdated = time.Now()
}

// Refresh replays SearchOnce and merges: responses whose ServiceName
// matches an existing entry replace it (the newer response's expiration
// wins, per spec.md §3), new responses are added, and entries the TTL
// cache has already expired are dropped lazily.
func (rc *ResponseCache) Refresh(ctx context.Context) error {
	responses, err := searchOnceFn(ctx, rc.opts)
	if err != nil {
		return err
	}
	rc.insert(responses)
	return nil
}

// LastUpdated returns the time of the most recent successful insert.
func (rc *ResponseCache) LastUpdated() time.Time {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.lastUpdated
}

// Responses returns the non-expired cached entries; spec.md §4.10 notes
// readers may observe expired entries but a compliant implementation
// SHOULD filter them, which this does.
func (rc *ResponseCache) Responses() []*SearchResponse {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	items := rc.cache.Items()
	out := make([]*SearchResponse, 0, len(items))
	for _, item := range items {
		if !item.IsExpired() {
			out = append(out, item.Value())
		}
	}
	return out
}
