// cache.go implements an LRU cache for signature-recovery results, keyed by
// Keccak256(digest || sig). Recovering a public key repeats real elliptic
// curve work every time; caching lets a host re-validate the same signed
// envelope (mempool re-broadcast, retried block) without paying for it
// twice. Controlled by the crypto.cache.enabled runtime knob (§6): when
// disabled, every call goes straight to Recover.
package crypto

import (
	"sync"

	"github.com/sigilaris/sigilaris-sub000/ids"
)

// DefaultCacheSize is the default number of entries in the recovery cache.
const DefaultCacheSize = 4096

type cacheEntry struct {
	key  ids.Hash
	pub  []byte
	err  error
	prev *cacheEntry
	next *cacheEntry
}

// RecoveryCache is a concurrent-safe LRU cache of Recover results.
type RecoveryCache struct {
	mu       sync.Mutex
	capacity int
	enabled  bool
	items    map[ids.Hash]*cacheEntry
	head     *cacheEntry // most recently used
	tail     *cacheEntry // least recently used
	hits     uint64
	misses   uint64
}

// NewRecoveryCache creates a recovery cache with the given capacity. Passing
// enabled=false makes every lookup a cache miss, equivalent to
// crypto.cache.enabled=false.
func NewRecoveryCache(capacity int, enabled bool) *RecoveryCache {
	return &RecoveryCache{
		capacity: capacity,
		enabled:  enabled,
		items:    make(map[ids.Hash]*cacheEntry),
	}
}

// RecoverCached is Recover with memoization through c. A nil cache (or one
// with caching disabled) behaves exactly like calling Recover directly.
func (c *RecoveryCache) RecoverCached(digest []byte, sig Signature) ([]byte, error) {
	if c == nil || !c.enabled {
		return Recover(digest, sig)
	}
	key := Keccak256Hash(digest, sig.Bytes())

	c.mu.Lock()
	if e, ok := c.items[key]; ok {
		c.moveToFront(e)
		c.hits++
		pub, err := e.pub, e.err
		c.mu.Unlock()
		return pub, err
	}
	c.misses++
	c.mu.Unlock()

	pub, err := Recover(digest, sig)

	c.mu.Lock()
	c.insert(key, pub, err)
	c.mu.Unlock()
	return pub, err
}

// Stats reports cache hit/miss counters.
func (c *RecoveryCache) Stats() (hits, misses uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

func (c *RecoveryCache) insert(key ids.Hash, pub []byte, err error) {
	if e, ok := c.items[key]; ok {
		e.pub, e.err = pub, err
		c.moveToFront(e)
		return
	}
	e := &cacheEntry{key: key, pub: pub, err: err}
	c.items[key] = e
	c.pushFront(e)
	if len(c.items) > c.capacity && c.tail != nil {
		evict := c.tail
		c.remove(evict)
		delete(c.items, evict.key)
	}
}

func (c *RecoveryCache) pushFront(e *cacheEntry) {
	e.prev, e.next = nil, c.head
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *RecoveryCache) remove(e *cacheEntry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
	e.prev, e.next = nil, nil
}

func (c *RecoveryCache) moveToFront(e *cacheEntry) {
	if c.head == e {
		return
	}
	c.remove(e)
	c.pushFront(e)
}
