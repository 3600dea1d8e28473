package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when a key is absent from both the cache and the
// backing store.
var ErrNotFound = errors.New("store: not found")

// ErrUnavailable is returned when the backing store or the cache cannot be
// reached, or when a cache update loses the CAS race too many times.
var ErrUnavailable = errors.New("store: unavailable")

const (
	maxPutRetries  = 10
	maxBackoffMSec = 50
)

// Backend is the durable side of a collection. LoadAll scans the full
// collection; Append writes a new record without touching existing rows.
type Backend[T any] interface {
	LoadAll(ctx context.Context) (map[string]T, error)
	Append(ctx context.Context, key string, value T) error
}

// Collection is a read-through, write-through view of one named collection.
// The cache holds the entire collection as a single JSON blob keyed by the
// collection name, which trades memory and bandwidth for not needing an
// invalidation protocol. Only viable for small collections, which is the
// expected wiki workload.
type Collection[T any] struct {
	name    string
	rdb     redis.UniversalClient
	backend Backend[T]
}

// NewCollection creates a cache-backed view of the named collection.
func NewCollection[T any](name string, rdb redis.UniversalClient, backend Backend[T]) *Collection[T] {
	return &Collection[T]{name: name, rdb: rdb, backend: backend}
}

// Get returns the entity stored under key. A cold cache, or a cached blob
// that does not contain the key, falls through to a full backend scan that
// repopulates the cache before the key is checked once more.
func (c *Collection[T]) Get(ctx context.Context, key string) (T, error) {
	var zero T

	entries, ok, err := c.cached(ctx)
	if err != nil {
		return zero, err
	}
	if ok {
		if v, found := entries[key]; found {
			return v, nil
		}
	}

	entries, err = c.reload(ctx)
	if err != nil {
		return zero, err
	}
	if v, found := entries[key]; found {
		return v, nil
	}
	return zero, ErrNotFound
}

// All returns the whole collection, with the same read-through policy as Get.
func (c *Collection[T]) All(ctx context.Context) (map[string]T, error) {
	entries, ok, err := c.cached(ctx)
	if err != nil {
		return nil, err
	}
	if ok {
		return entries, nil
	}
	return c.reload(ctx)
}

// Put appends value to the backing store, then upserts it into the cached
// blob under an optimistic WATCH/MULTI loop. When two writers race on the
// blob, one EXEC fails and retries against the fresh blob, so neither upsert
// is lost. Exhausting the retries is an error rather than a success with a
// stale cache: the caller must be able to read its own write.
func (c *Collection[T]) Put(ctx context.Context, key string, value T) error {
	if err := c.backend.Append(ctx, key, value); err != nil {
		return fmt.Errorf("%w: append %s: %v", ErrUnavailable, c.name, err)
	}

	for i := 0; i < maxPutRetries; i++ {
		err := c.rdb.Watch(ctx, func(tx *redis.Tx) error {
			var entries map[string]T
			data, err := tx.Get(ctx, c.name).Bytes()
			switch {
			case err == nil:
				if jsonErr := json.Unmarshal(data, &entries); jsonErr != nil {
					entries = nil
				}
			case errors.Is(err, redis.Nil):
				// Cold cache, handled below.
			default:
				return err
			}
			if entries == nil {
				// Rebuild from the backing store instead of seeding the blob
				// with this entry alone; a one-entry blob would hide every
				// other durable record from full-collection readers.
				if entries, err = c.backend.LoadAll(ctx); err != nil {
					return err
				}
			}

			entries[key] = value
			buf, err := json.Marshal(entries)
			if err != nil {
				return err
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, c.name, buf, 0)
				return nil
			})
			return err
		}, c.name)

		if err == nil {
			return nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return fmt.Errorf("%w: cache update %s: %v", ErrUnavailable, c.name, err)
		}

		// Randomize the wait so two retrying writers do not collide again in
		// lockstep.
		time.Sleep(time.Duration(1+rand.IntN(maxBackoffMSec)) * time.Millisecond)
	}

	return fmt.Errorf("%w: cache update %s: retries exhausted", ErrUnavailable, c.name)
}

// cached reads and decodes the collection blob. The second return value is
// false on a cold cache. An undecodable blob is treated as a miss; the
// subsequent reload rewrites it.
func (c *Collection[T]) cached(ctx context.Context) (map[string]T, bool, error) {
	data, err := c.rdb.Get(ctx, c.name).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: cache read %s: %v", ErrUnavailable, c.name, err)
	}

	entries := make(map[string]T)
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, false, nil
	}
	return entries, true, nil
}

// reload scans the backing store and repopulates the cache. The write runs
// under WATCH: if a concurrent Put touched the blob during the scan, the
// snapshot is discarded instead of clobbering the writer's newer blob. The
// scanned entries are returned either way; they came straight from the
// durable store.
func (c *Collection[T]) reload(ctx context.Context) (map[string]T, error) {
	var entries map[string]T
	err := c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		var err error
		if entries, err = c.backend.LoadAll(ctx); err != nil {
			return err
		}
		buf, err := json.Marshal(entries)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, c.name, buf, 0)
			return nil
		})
		return err
	}, c.name)
	if err != nil && !errors.Is(err, redis.TxFailedErr) {
		return nil, fmt.Errorf("%w: scan %s: %v", ErrUnavailable, c.name, err)
	}
	return entries, nil
}
