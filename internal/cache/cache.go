// Package cache provides a read-through cache for Canvas API responses:
// a go-cache memory layer in front of a TTL'd disk layer, so restarts do
// not hammer the LMS while a course sync is being iterated on.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the storage interface shared by the layers.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a cache key from a Canvas resource URL. The version segment
// invalidates everything when the cached representation changes.
func Key(resourceURL string) string {
	sum := sha256.Sum256([]byte(resourceURL))
	return "pensum:v1:" + hex.EncodeToString(sum[:])
}
