// Package cache stores fetched source pages so re-running the
// collection stage after a correction round does not re-scrape
// thousands of peak profile pages.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the page-cache interface shared by the memory and disk
// layers.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// PageKey derives the cache key for a fetched page URL.
func PageKey(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "page:v1:" + hex.EncodeToString(hash[:])
}
