package password

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// MaxBcryptInputLength is the number of secret bytes bcrypt actually consumes.
// Longer inputs are rejected by bcrypt.GenerateFromPassword, so both Hash and
// Verify cut the secret here; truncating in only one of them would make long
// passwords register fine and then fail every login.
const MaxBcryptInputLength = 72

// BcryptHasher hashes with bcrypt at a fixed cost.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a bcrypt strategy. A cost outside bcrypt's range falls back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash returns a bcrypt digest of the first 72 bytes of secret.
func (h *BcryptHasher) Hash(secret string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(truncate(secret), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify compares secret against digest in constant time.
func (h *BcryptHasher) Verify(secret, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), truncate(secret)) == nil
}

// Identifies matches the $2a$, $2b$ and $2y$ bcrypt prefixes.
func (h *BcryptHasher) Identifies(digest string) bool {
	return strings.HasPrefix(digest, "$2a$") ||
		strings.HasPrefix(digest, "$2b$") ||
		strings.HasPrefix(digest, "$2y$")
}

func truncate(secret string) []byte {
	b := []byte(secret)
	if len(b) > MaxBcryptInputLength {
		b = b[:MaxBcryptInputLength]
	}
	return b
}
