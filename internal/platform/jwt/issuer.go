// Package jwtmw issues and verifies access tokens and provides the gin
// middleware that guards authenticated routes.
package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultAlgorithm is used when no algorithm is configured.
const DefaultAlgorithm = "HS256"

// ErrInvalidToken is the only error Verify returns. Callers cannot tell a bad
// signature from an expired or malformed token.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the wire contract between issuance and verification:
// sub (user email), iat, exp and jti.
type Claims struct {
	jwt.RegisteredClaims
}

// Option configures an Issuer.
type Option func(*Issuer)

// WithClock overrides the time source used for iat, exp and validation.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) {
		i.now = now
	}
}

// Issuer signs and verifies HMAC JWTs with a single server-held secret.
// It is immutable after construction and safe for concurrent use.
type Issuer struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

// NewIssuer creates an Issuer. algorithm must be one of HS256, HS384 or HS512
// ("" selects HS256) and secret must not be empty.
func NewIssuer(secret []byte, algorithm string, ttl time.Duration, opts ...Option) (*Issuer, error) {
	if len(secret) == 0 {
		return nil, errors.New("jwt secret must not be empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("jwt ttl must be positive, got %v", ttl)
	}
	if algorithm == "" {
		algorithm = DefaultAlgorithm
	}
	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported jwt algorithm %q", algorithm)
	}

	i := &Issuer{
		secret: secret,
		method: method,
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}

	i.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(i.now),
	)
	return i, nil
}

// Algorithm returns the configured signing algorithm name.
func (i *Issuer) Algorithm() string {
	return i.method.Alg()
}

// TTL returns the lifetime of issued tokens.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// Issue creates a signed token for subject that expires after the configured TTL.
func (i *Issuer) Issue(subject string) (string, error) {
	if subject == "" {
		return "", errors.New("jwt subject must not be empty")
	}

	now := i.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(i.method, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature, algorithm and expiry of token and returns its claims.
// Every failure, including a missing sub claim, is reported as ErrInvalidToken.
func (i *Issuer) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := i.parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		// Only HMAC is accepted; WithValidMethods already pins the exact alg
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return i.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" || claims.ExpiresAt == nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
