// Package resultcache implements the two-tier verification result cache
// keyed by a content hash of the loaded artifact: an in-process
// hashicorp/golang-lru front tier holding *verify.Report values and a
// cockroachdb/pebble-backed persistent tier storing them
// fxamacker/cbor/v2-encoded. Grounded
// on vocdoni-davinci-node/db/pebbledb/pebledb.go's direct Get/Set usage of
// pebble.DB.
package resultcache

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/cockroachdb/pebble"
	"github.com/fxamacker/cbor/v2"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/nickboucher/electionguard-verify/internal/verify"
)

// Cache implements verify.ResultCache.
type Cache struct {
	front *lru.Cache[string, *verify.Report]
	back  *pebble.DB
}

// Open returns a Cache backed by a pebble store at dir with an in-process
// LRU front tier holding frontSize entries.
func Open(dir string, frontSize int) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating result cache directory %s: %w", dir, err)
	}
	back, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("opening result cache at %s: %w", dir, err)
	}
	front, err := lru.New[string, *verify.Report](frontSize)
	if err != nil {
		return nil, fmt.Errorf("creating result cache front tier: %w", err)
	}
	return &Cache{front: front, back: back}, nil
}

// Close releases the underlying pebble handle.
func (c *Cache) Close() error {
	return c.back.Close()
}

// Get returns the cached Report for key, consulting the LRU front tier
// before falling back to the persistent pebble tier, promoting on a back-tier
// hit.
func (c *Cache) Get(key string) (*verify.Report, bool) {
	if r, ok := c.front.Get(key); ok {
		return r, true
	}

	v, closer, err := c.back.Get([]byte(key))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, false
	}
	if err != nil {
		return nil, false
	}
	blob := bytes.Clone(v)
	_ = closer.Close()

	var report verify.Report
	if err := cbor.Unmarshal(blob, &report); err != nil {
		return nil, false
	}
	c.front.Add(key, &report)
	return &report, true
}

// Put stores r under key in both tiers.
func (c *Cache) Put(key string, r *verify.Report) {
	c.front.Add(key, r)

	blob, err := cbor.Marshal(r)
	if err != nil {
		return
	}
	_ = c.back.Set([]byte(key), blob, pebble.Sync)
}
