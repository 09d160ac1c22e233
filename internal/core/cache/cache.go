// Package cache memoizes verdicts per claim text so a repeated request
// performs no retrieval or classification work.
package cache

import (
	"container/list"
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/truthcheck/truthcheck/internal/core/model"
)

// Key derives the cache key from the raw input text, before claim
// extraction, so two identical requests always share an entry
// regardless of any downstream non-determinism.
func Key(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

type entry struct {
	key     string
	verdict model.Verdict
}

// VerdictCache is a bounded LRU keyed by claim-text digest. Concurrent
// identical requests are collapsed by singleflight, so at most one
// computation wins a key; later callers see the stored verdict.
type VerdictCache struct {
	mu       sync.Mutex
	entries  map[string]*list.Element
	lru      *list.List
	capacity int
	flight   singleflight.Group

	hits   int64
	misses int64
}

// New builds a cache bounded to capacity entries. capacity 0 disables
// eviction, giving process-lifetime retention.
func New(capacity int) *VerdictCache {
	return &VerdictCache{
		entries:  make(map[string]*list.Element),
		lru:      list.New(),
		capacity: capacity,
	}
}

// GetOrCompute returns the cached verdict for key, or runs fn once and
// stores its result. fn returning an error leaves the key uncached and
// the error is returned to every collapsed caller. The second return
// reports whether this was a hit.
func (c *VerdictCache) GetOrCompute(key string, fn func() (model.Verdict, error)) (model.Verdict, bool, error) {
	if v, ok := c.get(key); ok {
		return v, true, nil
	}

	result, err, _ := c.flight.Do(key, func() (interface{}, error) {
		// Re-check: another flight may have stored it between our miss
		// and acquiring the flight.
		if v, ok := c.get(key); ok {
			return v, nil
		}
		v, err := fn()
		if err != nil {
			return model.Verdict{}, err
		}
		c.put(key, v)
		return v, nil
	})
	if err != nil {
		return model.Verdict{}, false, err
	}
	return result.(model.Verdict), false, nil
}

func (c *VerdictCache) get(key string) (model.Verdict, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		c.misses++
		return model.Verdict{}, false
	}
	c.hits++
	c.lru.MoveToFront(el)
	return el.Value.(*entry).verdict, true
}

func (c *VerdictCache) put(key string, v model.Verdict) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		el.Value.(*entry).verdict = v
		c.lru.MoveToFront(el)
		return
	}

	c.entries[key] = c.lru.PushFront(&entry{key: key, verdict: v})

	if c.capacity > 0 && c.lru.Len() > c.capacity {
		oldest := c.lru.Back()
		if oldest != nil {
			c.lru.Remove(oldest)
			delete(c.entries, oldest.Value.(*entry).key)
		}
	}
}

// Len reports the number of cached verdicts.
func (c *VerdictCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Stats returns hit and miss counts since startup.
func (c *VerdictCache) Stats() (hits, misses int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
