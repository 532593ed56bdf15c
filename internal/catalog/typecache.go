package catalog

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// MembershipFunc fetches the primary-slot membership of one category.
type MembershipFunc func(ctx context.Context, category string) (MembershipSet, error)

// FailurePolicy decides what a failed membership fetch leaves behind.
type FailurePolicy int

const (
	// RetryOnFailure caches nothing, so the next lookup fetches again.
	RetryOnFailure FailurePolicy = iota
	// CacheEmptyOnFailure stores an empty set for the failed key.
	CacheEmptyOnFailure
)

func (p FailurePolicy) String() string {
	switch p {
	case RetryOnFailure:
		return "retry"
	case CacheEmptyOnFailure:
		return "cache-empty"
	default:
		return fmt.Sprintf("FailurePolicy(%d)", int(p))
	}
}

// ParseFailurePolicy maps the config spelling to a policy.
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch s {
	case "", "retry":
		return RetryOnFailure, nil
	case "cache-empty":
		return CacheEmptyOnFailure, nil
	default:
		return RetryOnFailure, fmt.Errorf("unknown failure policy %q (valid: retry, cache-empty)", s)
	}
}

// TypeCache memoizes category membership for the life of the process.
// Entries never expire. Concurrent misses on the same key share a fetch.
type TypeCache struct {
	fetch  MembershipFunc
	policy FailurePolicy
	logger *zap.Logger

	mu      sync.RWMutex
	entries map[string]MembershipSet
	group   singleflight.Group
}

type TypeCacheOption func(*TypeCache)

func WithFailurePolicy(p FailurePolicy) TypeCacheOption {
	return func(c *TypeCache) { c.policy = p }
}

func WithCacheLogger(l *zap.Logger) TypeCacheOption {
	return func(c *TypeCache) {
		if l != nil {
			c.logger = l
		}
	}
}

func NewTypeCache(fetch MembershipFunc, opts ...TypeCacheOption) *TypeCache {
	c := &TypeCache{
		fetch:   fetch,
		logger:  zap.NewNop(),
		entries: make(map[string]MembershipSet),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lookup returns a cached set without fetching.
func (c *TypeCache) Lookup(key string) (MembershipSet, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.entries[key]
	return s, ok
}

// Len reports how many keys are cached.
func (c *TypeCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Membership returns the set for key, fetching it on first use. Failures
// yield an empty set and are never returned to the caller.
func (c *TypeCache) Membership(ctx context.Context, key string) MembershipSet {
	if s, ok := c.Lookup(key); ok {
		return s
	}

	v, _, _ := c.group.Do(key, func() (interface{}, error) {
		if s, ok := c.Lookup(key); ok {
			return s, nil
		}
		s, err := c.fetch(ctx, key)
		if err != nil || s == nil {
			if err == nil {
				err = fmt.Errorf("nil membership for %q", key)
			}
			c.logger.Warn("category membership unavailable",
				zap.String("category", key),
				zap.Stringer("policy", c.policy),
				zap.Error(err),
			)
			empty := MembershipSet{}
			if c.policy == CacheEmptyOnFailure {
				c.store(key, empty)
			}
			return empty, nil
		}
		c.store(key, s)
		return s, nil
	})
	return v.(MembershipSet)
}

func (c *TypeCache) store(key string, s MembershipSet) {
	c.mu.Lock()
	c.entries[key] = s
	c.mu.Unlock()
}
