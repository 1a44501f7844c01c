package state

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint computes the sha256 digest of a file's full byte content,
// hex-encoded. Content is the only input: path and modification time play
// no part, so an untouched copy fingerprints identically. Modification
// times are deliberately not trusted (clock skew, copies).
func Fingerprint(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
