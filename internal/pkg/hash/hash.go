// Package hash provides hashing utilities.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// SHA256 computes the SHA256 hash of data and returns it as a hex string.
func SHA256(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Content64 computes a fast non-cryptographic hash of content.
// Used for cache keys where collisions are re-verified by the caller.
func Content64(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// CacheKey builds a parse-cache key from a file path and its content.
func CacheKey(path string, content []byte) string {
	return fmt.Sprintf("%s:%016x", path, Content64(content))
}
