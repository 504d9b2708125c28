// Package password provides one-way hashing of user secrets behind a small
// strategy interface so the scheme can change without touching callers.
package password

// Hasher is a single password hashing scheme.
type Hasher interface {
	// Hash returns a salted digest that is safe to store.
	Hash(secret string) (string, error)
	// Verify reports whether secret matches digest. Malformed digests yield false.
	Verify(secret, digest string) bool
	// Identifies reports whether digest was produced by this scheme.
	Identifies(digest string) bool
}

// Context hashes with a primary scheme and verifies digests of any registered scheme,
// so stored hashes keep working after the primary scheme changes.
type Context struct {
	primary Hasher
	schemes []Hasher
}

// NewContext creates a Context. fallbacks are only used for verification.
func NewContext(primary Hasher, fallbacks ...Hasher) *Context {
	schemes := make([]Hasher, 0, len(fallbacks)+1)
	schemes = append(schemes, primary)
	schemes = append(schemes, fallbacks...)
	return &Context{primary: primary, schemes: schemes}
}

// Hash hashes secret with the primary scheme.
func (c *Context) Hash(secret string) (string, error) {
	return c.primary.Hash(secret)
}

// Verify checks secret against digest using whichever scheme produced it.
func (c *Context) Verify(secret, digest string) bool {
	for _, h := range c.schemes {
		if h.Identifies(digest) {
			return h.Verify(secret, digest)
		}
	}
	return false
}

// Identifies reports whether any registered scheme recognises digest.
func (c *Context) Identifies(digest string) bool {
	for _, h := range c.schemes {
		if h.Identifies(digest) {
			return true
		}
	}
	return false
}
