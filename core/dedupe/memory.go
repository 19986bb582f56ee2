package dedupe

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// MemoryStore keeps processed keys in process memory.
// Keys expire after the configured TTL.
type MemoryStore struct {
	cache *ttlcache.Cache[string, struct{}]
}

// NewMemoryStore creates a store whose keys expire after ttl.
// Call Close to stop the background expiration loop.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	cache := ttlcache.New[string, struct{}](
		ttlcache.WithTTL[string, struct{}](ttl),
		ttlcache.WithDisableTouchOnHit[string, struct{}](),
	)
	go cache.Start()

	return &MemoryStore{cache: cache}
}

func (s *MemoryStore) Seen(_ context.Context, keys []string) ([]bool, error) {
	out := make([]bool, len(keys))
	for i, k := range keys {
		out[i] = s.cache.Has(k)
	}
	return out, nil
}

func (s *MemoryStore) Mark(_ context.Context, keys []string) error {
	for _, k := range keys {
		s.cache.Set(k, struct{}{}, ttlcache.DefaultTTL)
	}
	return nil
}

// Len returns the number of keys currently held.
func (s *MemoryStore) Len() int {
	return s.cache.Len()
}

// Close stops the expiration loop.
func (s *MemoryStore) Close() error {
	s.cache.Stop()
	return nil
}
