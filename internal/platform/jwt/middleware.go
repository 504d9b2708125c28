package jwtmw

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"job_backend/internal/feature/auth/domain/entity"
	"job_backend/internal/shared/apperr"
)

const (
	// ContextUser is the gin context key holding the authenticated *entity.User.
	ContextUser = "currentUser"
	// ContextSession is the gin context key holding the *entity.Session of the presented token.
	ContextSession = "currentSession"
)

// ErrNotAuthenticated is returned when no bearer credential was sent.
var ErrNotAuthenticated = apperr.New(apperr.KindUnauthenticated, "Not authenticated")

// Authenticator resolves a bearer token to the user it was issued for.
// Implementations must classify every failure with apperr.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entity.User, *entity.Session, error)
}

// AuthRequired returns a Gin middleware that rejects requests without a
// valid bearer token for an existing user.
func AuthRequired(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Extract the bearer credential
		token, ok := BearerToken(c.GetHeader("Authorization"))
		if !ok {
			apperr.Respond(c, ErrNotAuthenticated)
			return
		}

		// 2. Verify the token and resolve its subject
		user, session, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		// 3. Expose the user to downstream handlers
		c.Set(ContextUser, user)
		c.Set(ContextSession, session)
		c.Next()
	}
}

// BearerToken extracts the credential from an Authorization header value.
// The scheme is matched case-insensitively.
func BearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}

// CurrentUser returns the user stored by AuthRequired.
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil, false
	}
	u, ok := v.(*entity.User)
	return u, ok
}

// CurrentSession returns the token session stored by AuthRequired.
func CurrentSession(c *gin.Context) (*entity.Session, bool) {
	v, ok := c.Get(ContextSession)
	if !ok {
		return nil, false
	}
	s, ok := v.(*entity.Session)
	return s, ok
}
