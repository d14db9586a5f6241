package cache

import (
	"context"
	"time"

	"github.com/matzehuels/planbook/pkg/observability"
)

// Instrumented reports hits, misses and writes of the wrapped cache to the
// registered [observability.CacheHooks].
type Instrumented struct {
	Cache
}

// Instrument wraps c. Wrapping an already instrumented cache returns it
// unchanged.
func Instrument(c Cache) Cache {
	if _, ok := c.(*Instrumented); ok {
		return c
	}
	return &Instrumented{Cache: c}
}

// Get reports a hit or miss.
func (i *Instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := i.Cache.Get(ctx, key)
	if err == nil {
		if hit {
			observability.Cache().OnCacheHit(ctx, KeyType(key))
		} else {
			observability.Cache().OnCacheMiss(ctx, KeyType(key))
		}
	}
	return data, hit, err
}

// Set reports the write size.
func (i *Instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := i.Cache.Set(ctx, key, data, ttl)
	if err == nil {
		observability.Cache().OnCacheSet(ctx, KeyType(key), len(data))
	}
	return err
}

// Clear forwards to the wrapped cache when it supports clearing.
func (i *Instrumented) Clear(ctx context.Context) error {
	if c, ok := i.Cache.(Clearer); ok {
		return c.Clear(ctx)
	}
	return nil
}
