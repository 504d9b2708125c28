package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"job_backend/internal/feature/auth/domain/entity"
	jwtmw "job_backend/internal/platform/jwt"
	"job_backend/internal/shared/apperr"
)

// dummyPassword is hashed once at construction. Its digest is verified when
// the email is unknown, with the same scheme and cost as stored digests.
const dummyPassword = "dummy-password-for-unknown-users"

// UserRepository abstracts the credential store.
// Interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists user and fills in ID and CreatedAt.
	// It returns ErrEmailAlreadyExists when the email is taken, including
	// when a concurrent Create won the race.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail returns the user with exactly this email, or ErrUserNotFound.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Ping reports whether the store is reachable.
	Ping(ctx context.Context) error
}

// PasswordHasher hashes and verifies secrets.
type PasswordHasher interface {
	Hash(secret string) (string, error)
	Verify(secret, digest string) bool
}

// TokenIssuer signs and verifies access tokens.
type TokenIssuer interface {
	Issue(subject string) (string, error)
	Verify(token string) (*jwtmw.Claims, error)
}

// TokenDenylist remembers revoked token ids until they expire.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// authUsecase implements registration, login and the request-time auth gate.
type authUsecase struct {
	users    UserRepository
	hasher   PasswordHasher
	tokens   TokenIssuer
	denylist TokenDenylist

	dummyDigest string
}

var _ jwtmw.Authenticator = (*authUsecase)(nil)

// NewAuthUsecase creates an authUsecase.
func NewAuthUsecase(users UserRepository, hasher PasswordHasher, tokens TokenIssuer, denylist TokenDenylist) *authUsecase {
	u := &authUsecase{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		denylist: denylist,
	}
	digest, err := hasher.Hash(dummyPassword)
	if err != nil {
		slog.Error("failed to derive dummy password digest", "error", err)
	}
	u.dummyDigest = digest
	return u
}

func validateCredentials(email, password string) error {
	if email == "" {
		return ErrEmailRequired
	}
	if password == "" {
		return ErrPasswordRequired
	}
	return nil
}

// Register stores a new user with a hashed password.
// Either the record is created or nothing is.
func (u *authUsecase) Register(ctx context.Context, email, password string) error {
	if err := validateCredentials(email, password); err != nil {
		return err
	}

	// Fast path; the unique index is what actually guarantees uniqueness
	_, err := u.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return ErrEmailAlreadyExists
	case !errors.Is(err, ErrUserNotFound):
		return storeUnavailable(err)
	}

	hashed, err := u.hasher.Hash(password)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to hash password", err)
	}

	user := &entity.User{Email: email, PasswordHash: hashed}
	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			return ErrEmailAlreadyExists
		}
		return storeUnavailable(err)
	}
	return nil
}

// Login verifies the credentials and returns a signed access token.
// Unknown email and wrong password are indistinguishable.
func (u *authUsecase) Login(ctx context.Context, email, password string) (string, error) {
	if err := validateCredentials(email, password); err != nil {
		return "", err
	}

	user, err := u.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return "", storeUnavailable(err)
	}

	digest := u.dummyDigest
	if user != nil {
		digest = user.PasswordHash
	}

	// Always verify so the response time does not reveal whether the user exists
	ok := u.hasher.Verify(password, digest)
	if user == nil || !ok {
		return "", ErrInvalidCredentials
	}

	token, err := u.tokens.Issue(user.Email)
	if err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "failed to issue token", err)
	}
	return token, nil
}

// Authenticate resolves a bearer token to its user. The token must verify,
// must not be revoked, and its subject must still exist.
func (u *authUsecase) Authenticate(ctx context.Context, token string) (*entity.User, *entity.Session, error) {
	claims, err := u.tokens.Verify(token)
	if err != nil {
		return nil, nil, ErrInvalidToken
	}

	session := &entity.Session{
		TokenID:   claims.ID,
		Subject:   claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		session.IssuedAt = claims.IssuedAt.Time
	}

	if session.TokenID != "" {
		revoked, err := u.denylist.IsRevoked(ctx, session.TokenID)
		if err != nil {
			return nil, nil, apperr.Wrap(apperr.KindUnavailable, "Token store unavailable", err)
		}
		if revoked {
			return nil, nil, ErrInvalidToken
		}
	}

	user, err := u.users.FindByEmail(ctx, session.Subject)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, nil, ErrInvalidToken
		}
		return nil, nil, storeUnavailable(err)
	}
	return user, session, nil
}

// Logout revokes the presented token until it would have expired anyway.
func (u *authUsecase) Logout(ctx context.Context, session *entity.Session) error {
	if session == nil {
		return ErrInvalidToken
	}
	if session.TokenID == "" {
		// Tokens without a jti cannot be denylisted; they lapse at exp.
		slog.Info("logout of token without jti", "subject", session.Subject)
		return nil
	}
	if session.IsExpired() {
		return nil
	}
	if err := u.denylist.Revoke(ctx, session.TokenID, session.RemainingTTL()); err != nil {
		return apperr.Wrap(apperr.KindUnavailable, "Token store unavailable", fmt.Errorf("revoke %s: %w", session.TokenID, err))
	}
	slog.Info("token revoked", "subject", session.Subject, "jti", session.TokenID)
	return nil
}

// Ping reports store readiness for the health endpoint.
func (u *authUsecase) Ping(ctx context.Context) error {
	if err := u.users.Ping(ctx); err != nil {
		return storeUnavailable(err)
	}
	return nil
}
