package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// UserStorageKey derives a stable, filesystem-safe directory name for a
// user's stored scans. User IDs never appear verbatim in storage paths.
func UserStorageKey(userID string) string {
	sum := sha256.Sum256([]byte(userID))
	return hex.EncodeToString(sum[:])
}
