package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const argon2idPrefix = "$argon2id$"

// Argon2idParams tunes the argon2id key derivation.
type Argon2idParams struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
	KeyLen  uint32
	SaltLen uint32
}

// DefaultArgon2idParams follows the RFC 9106 second recommended option.
var DefaultArgon2idParams = Argon2idParams{
	Time:    3,
	Memory:  64 * 1024,
	Threads: 4,
	KeyLen:  32,
	SaltLen: 16,
}

// Argon2idHasher produces PHC formatted digests:
//
//	$argon2id$v=19$m=65536,t=3,p=4$<salt>$<key>
type Argon2idHasher struct {
	params Argon2idParams
}

// NewArgon2idHasher returns an argon2id strategy.
func NewArgon2idHasher(params Argon2idParams) *Argon2idHasher {
	return &Argon2idHasher{params: params}
}

// Hash derives a key from secret with a fresh random salt.
func (h *Argon2idHasher) Hash(secret string) (string, error) {
	salt := make([]byte, h.params.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	key := argon2.IDKey([]byte(secret), salt, h.params.Time, h.params.Memory, h.params.Threads, h.params.KeyLen)

	b64 := base64.RawStdEncoding
	return fmt.Sprintf("%sv=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2idPrefix, argon2.Version,
		h.params.Memory, h.params.Time, h.params.Threads,
		b64.EncodeToString(salt), b64.EncodeToString(key),
	), nil
}

// Verify re-derives the key with the parameters and salt stored in digest.
func (h *Argon2idHasher) Verify(secret, digest string) bool {
	params, salt, key, err := decodeArgon2id(digest)
	if err != nil {
		return false
	}
	other := argon2.IDKey([]byte(secret), salt, params.Time, params.Memory, params.Threads, uint32(len(key)))
	return subtle.ConstantTimeCompare(key, other) == 1
}

// Identifies matches the $argon2id$ prefix.
func (h *Argon2idHasher) Identifies(digest string) bool {
	return strings.HasPrefix(digest, argon2idPrefix)
}

func decodeArgon2id(digest string) (Argon2idParams, []byte, []byte, error) {
	var p Argon2idParams

	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, key
	parts := strings.Split(digest, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return p, nil, nil, fmt.Errorf("malformed argon2id digest")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return p, nil, nil, fmt.Errorf("parse version: %w", err)
	}
	if version != argon2.Version {
		return p, nil, nil, fmt.Errorf("unsupported argon2 version %d", version)
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Time, &p.Threads); err != nil {
		return p, nil, nil, fmt.Errorf("parse params: %w", err)
	}
	if p.Time == 0 || p.Threads == 0 {
		return p, nil, nil, fmt.Errorf("invalid argon2id params")
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return p, nil, nil, fmt.Errorf("decode salt: %w", err)
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return p, nil, nil, fmt.Errorf("decode key: %w", err)
	}
	if len(key) == 0 {
		return p, nil, nil, fmt.Errorf("empty argon2id key")
	}
	return p, salt, key, nil
}
