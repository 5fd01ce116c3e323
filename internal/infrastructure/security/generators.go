// Package security provides id generation, admin tokens and password hashing.
package security

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropyMu sync.Mutex
	entropy   io.Reader = ulid.Monotonic(rand.Reader, 0)
)

// GenerateULID generates a new ULID string.
func GenerateULID() string {
	return GenerateULIDAt(time.Now().UTC())
}

// GenerateULIDAt generates a ULID for the given instant. ULIDs created within
// the same millisecond sort in creation order.
func GenerateULIDAt(t time.Time) string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}

// GenerateSecureKey creates a cryptographically secure random key and returns it as a hex string.
// Used for tenant JWT secrets.
func GenerateSecureKey(length int) (string, error) {
	bytes := make([]byte, length/2)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate secure key: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
