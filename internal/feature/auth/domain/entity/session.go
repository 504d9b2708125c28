package entity

import "time"

// Session describes the access token presented on the current request.
// It is not persisted; it is rebuilt from the token claims on every request.
type Session struct {
	TokenID   string    // jti claim
	Subject   string    // sub claim (user email)
	IssuedAt  time.Time // iat claim
	ExpiresAt time.Time // exp claim
}

// IsExpired returns true if the token has passed its expiration time.
func (s *Session) IsExpired() bool {
	return !time.Now().Before(s.ExpiresAt)
}

// RemainingTTL returns how long the token stays valid, or zero if it has expired.
func (s *Session) RemainingTTL() time.Duration {
	ttl := time.Until(s.ExpiresAt)
	if ttl < 0 {
		return 0
	}
	return ttl
}
