package jwtmw

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"job_backend/internal/feature/auth/domain/entity"
	"job_backend/internal/shared/apperr"
)

// TestMain switches Gin to test mode before running the tests.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// mockAuthenticator is a mock implementation of the Authenticator interface.
type mockAuthenticator struct {
	AuthenticateFunc func(ctx context.Context, token string) (*entity.User, *entity.Session, error)
	calls            int
}

func (m *mockAuthenticator) Authenticate(ctx context.Context, token string) (*entity.User, *entity.Session, error) {
	m.calls++
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx, token)
	}
	return nil, nil, errors.New("not configured")
}

func runMiddleware(t *testing.T, auth Authenticator, header string) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/me", nil)
	if header != "" {
		c.Request.Header.Set("Authorization", header)
	}
	AuthRequired(auth)(c)
	return w, c
}

func TestAuthRequired_MissingBearerToken(t *testing.T) {
	tests := []struct {
		name       string
		authHeader string
	}{
		{"no header", ""},
		{"basic auth", "Basic dXNlcjpwYXNz"},
		{"scheme only", "Bearer"},
		{"scheme with blank token", "Bearer    "},
		{"no space after Bearer", "Bearertoken123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &mockAuthenticator{}
			w, c := runMiddleware(t, auth, tt.authHeader)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.True(t, c.IsAborted())
			assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
			assert.Zero(t, auth.calls, "authenticator must not be called without a token")

			var body apperr.Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "Not authenticated", body.Detail)
			assert.Equal(t, "UNAUTHENTICATED", body.Code)
		})
	}
}

func TestAuthRequired_AuthenticatorFailure(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid token", apperr.New(apperr.KindUnauthenticated, "Invalid or expired token"), http.StatusUnauthorized},
		{"store unavailable", apperr.New(apperr.KindUnavailable, "Database unavailable"), http.StatusServiceUnavailable},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &mockAuthenticator{
				AuthenticateFunc: func(ctx context.Context, token string) (*entity.User, *entity.Session, error) {
					assert.Equal(t, "abc.def.ghi", token)
					return nil, nil, tt.err
				},
			}
			w, c := runMiddleware(t, auth, "Bearer abc.def.ghi")

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.True(t, c.IsAborted())
			_, ok := CurrentUser(c)
			assert.False(t, ok)
		})
	}
}

func TestAuthRequired_ValidToken(t *testing.T) {
	want := &entity.User{ID: "1", Email: "a@x.com"}
	session := &entity.Session{TokenID: "jti-1", Subject: "a@x.com", ExpiresAt: time.Now().Add(time.Hour)}

	for _, header := range []string{"Bearer abc.def.ghi", "bearer abc.def.ghi", "  Bearer   abc.def.ghi  "} {
		t.Run(header, func(t *testing.T) {
			auth := &mockAuthenticator{
				AuthenticateFunc: func(ctx context.Context, token string) (*entity.User, *entity.Session, error) {
					assert.Equal(t, "abc.def.ghi", token)
					return want, session, nil
				},
			}
			w, c := runMiddleware(t, auth, header)

			assert.False(t, c.IsAborted(), "response: %s", w.Body.String())

			got, ok := CurrentUser(c)
			require.True(t, ok)
			assert.Equal(t, want, got)

			gotSession, ok := CurrentSession(c)
			require.True(t, ok)
			assert.Equal(t, "jti-1", gotSession.TokenID)
		})
	}
}

func TestAuthRequired_WithIssuer(t *testing.T) {
	// The gate wired to a real issuer: only tokens it signed get through.
	iss := newTestIssuer(t)
	auth := &mockAuthenticator{
		AuthenticateFunc: func(ctx context.Context, token string) (*entity.User, *entity.Session, error) {
			claims, err := iss.Verify(token)
			if err != nil {
				return nil, nil, apperr.Wrap(apperr.KindUnauthenticated, "Invalid or expired token", err)
			}
			return &entity.User{Email: claims.Subject}, &entity.Session{TokenID: claims.ID}, nil
		},
	}

	token, err := iss.Issue("a@x.com")
	require.NoError(t, err)

	_, c := runMiddleware(t, auth, "Bearer "+token)
	user, ok := CurrentUser(c)
	require.True(t, ok)
	assert.Equal(t, "a@x.com", user.Email)

	w, _ := runMiddleware(t, auth, "Bearer "+token+"x")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBearerToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer token123", "token123", true},
		{"BEARER token123", "token123", true},
		{"Bearer  token123 ", "token123", true},
		{"Token token123", "", false},
		{"token123", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := BearerToken(tt.header)
		assert.Equal(t, tt.ok, ok, "header %q", tt.header)
		assert.Equal(t, tt.want, got, "header %q", tt.header)
	}
}

func TestCurrentUser_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := CurrentUser(c)
	assert.False(t, ok)
	_, ok = CurrentSession(c)
	assert.False(t, ok)
}
