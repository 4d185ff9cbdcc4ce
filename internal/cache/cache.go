// Package cache provides the enrichment result cache: oracle output is
// deterministic per text, so repeated triage of the same document skips
// the oracle round-trips.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key from a raw document text.
func Key(text string) string {
	hash := sha256.Sum256([]byte(text))
	return "veridict:v1:" + hex.EncodeToString(hash[:])
}
