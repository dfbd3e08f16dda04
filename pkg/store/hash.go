package store

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash computes a SHA-256 content hash of a serialized snapshot.
// Returns the full 64-character hex string. Used for ETags and cheap
// change detection.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
