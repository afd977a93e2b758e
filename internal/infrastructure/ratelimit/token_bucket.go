// Package ratelimit implements the per-client token bucket admission layer.
package ratelimit

import (
	"fmt"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/finsmart/finsmart/pkg/constants"
)

// Rule configures the buckets of one endpoint class.
type Rule struct {
	// Capacity is the maximum number of tokens a bucket holds.
	Capacity int64
	// RefillAmount is the number of tokens added per elapsed interval.
	RefillAmount int64
	// RefillInterval is the refill period.
	RefillInterval time.Duration
}

// Bucket is a single token bucket. Tokens refill in whole intervals: after n
// full intervals have elapsed, n*RefillAmount tokens are added, capped at
// capacity. The token count never goes negative and never exceeds capacity.
type Bucket struct {
	mu             sync.Mutex
	capacity       int64
	tokens         int64
	refillAmount   int64
	refillInterval time.Duration
	lastRefill     time.Time
}

// NewBucket creates a full bucket under the given rule.
func NewBucket(rule Rule, now time.Time) *Bucket {
	return &Bucket{
		capacity:       rule.Capacity,
		tokens:         rule.Capacity,
		refillAmount:   rule.RefillAmount,
		refillInterval: rule.RefillInterval,
		lastRefill:     now,
	}
}

// Allow attempts to consume one token at the given instant. The refill and
// the decrement happen under the bucket's lock, so concurrent callers cannot
// over-admit past capacity.
func (b *Bucket) Allow(now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.refill(now)

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// refill tops up whole elapsed intervals. Must be called with the lock held.
func (b *Bucket) refill(now time.Time) {
	elapsed := now.Sub(b.lastRefill)
	if elapsed < b.refillInterval {
		return
	}

	n := int64(elapsed / b.refillInterval)
	b.tokens += n * b.refillAmount
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}
	b.lastRefill = b.lastRefill.Add(time.Duration(n) * b.refillInterval)
}

// Remaining returns the current token count after refilling.
func (b *Bucket) Remaining(now time.Time) int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.refill(now)
	return b.tokens
}

// Capacity returns the bucket's maximum token count.
func (b *Bucket) Capacity() int64 {
	return b.capacity
}

// Registry owns one bucket per (client identity, endpoint class) pair.
// Buckets are created lazily on first use and evicted after sitting idle for
// the configured TTL, so the registry cannot grow without bound under many
// distinct client identities.
type Registry struct {
	buckets *gocache.Cache
	rules   map[constants.EndpointClass]Rule
	mu      sync.Mutex // serializes the touch-or-create path against eviction
	now     func() time.Time
}

// NewRegistry creates a registry with the given per-class rules. A class with
// no rule falls back to the default class rule.
func NewRegistry(rules map[constants.EndpointClass]Rule, idleTTL time.Duration) *Registry {
	return &Registry{
		buckets: gocache.New(idleTTL, 2*idleTTL),
		rules:   rules,
		now:     time.Now,
	}
}

// Admit decides whether a request from the given client identity against the
// given endpoint class may proceed. Rejection is immediate; there is no
// queueing or blocking wait.
func (r *Registry) Admit(clientID string, class constants.EndpointClass) bool {
	b := r.bucket(clientID, class)
	return b.Allow(r.now())
}

// Rule returns the effective rule for an endpoint class.
func (r *Registry) Rule(class constants.EndpointClass) Rule {
	if rule, ok := r.rules[class]; ok {
		return rule
	}
	return r.rules[constants.EndpointClassDefault]
}

// Remaining reports the tokens left in a client's bucket without consuming one.
func (r *Registry) Remaining(clientID string, class constants.EndpointClass) int64 {
	return r.bucket(clientID, class).Remaining(r.now())
}

// Size returns the number of live buckets. Exposed for metrics.
func (r *Registry) Size() int {
	return r.buckets.ItemCount()
}

func (r *Registry) bucket(clientID string, class constants.EndpointClass) *Bucket {
	key := bucketKey(clientID, class)

	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.buckets.Get(key); ok {
		// Touch the entry so active clients are never evicted mid-window.
		// Must stay under the lock: an unserialized touch racing a create
		// can re-insert an evicted bucket over a fresh one.
		r.buckets.SetDefault(key, v)
		return v.(*Bucket)
	}

	b := NewBucket(r.Rule(class), r.now())
	r.buckets.SetDefault(key, b)
	return b
}

func bucketKey(clientID string, class constants.EndpointClass) string {
	if class == constants.EndpointClassDefault {
		return clientID
	}
	return fmt.Sprintf("%s:%s", clientID, class)
}
