package contenthash

import (
	"crypto/sha256"
	"encoding/hex"
)

// SHA256 is the content fingerprint used for photo duplicate detection.
// Wire it wherever a service port expects a Hasher.
type SHA256 struct{}

func (SHA256) HashString(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
