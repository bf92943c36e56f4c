package report

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// digestLength is the number of hex characters kept from a secret digest.
const digestLength = 12

// SecretDigest returns a short SHA3-256 digest of secret.
// Equal secrets share a digest, so duplicates can be recognized in shared
// documents without revealing the secret itself.
func SecretDigest(secret string) string {
	sum := sha3.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])[:digestLength]
}
