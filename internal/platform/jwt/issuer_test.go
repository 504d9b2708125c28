package jwtmw

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-0123456789abcdef"

func newTestIssuer(t *testing.T, opts ...Option) *Issuer {
	t.Helper()
	iss, err := NewIssuer([]byte(testSecret), "HS256", time.Hour, opts...)
	require.NoError(t, err)
	return iss
}

// signClaims signs arbitrary claims for negative tests.
func signClaims(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func TestNewIssuer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		secret    string
		algorithm string
		ttl       time.Duration
		wantAlg   string
		wantErr   bool
	}{
		{"default algorithm", "s", "", time.Hour, "HS256", false},
		{"HS384", "s", "HS384", time.Hour, "HS384", false},
		{"HS512", "s", "HS512", 7 * 24 * time.Hour, "HS512", false},
		{"empty secret", "", "HS256", time.Hour, "", true},
		{"asymmetric algorithm", "s", "RS256", time.Hour, "", true},
		{"none algorithm", "s", "none", time.Hour, "", true},
		{"unknown algorithm", "s", "HS1024", time.Hour, "", true},
		{"zero ttl", "s", "HS256", 0, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			iss, err := NewIssuer([]byte(tt.secret), tt.algorithm, tt.ttl)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, iss)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAlg, iss.Algorithm())
			assert.Equal(t, tt.ttl, iss.TTL())
		})
	}
}

func TestIssuer_IssueThenVerify(t *testing.T) {
	t.Parallel()

	for _, alg := range []string{"HS256", "HS384", "HS512"} {
		t.Run(alg, func(t *testing.T) {
			t.Parallel()

			iss, err := NewIssuer([]byte(testSecret), alg, 2*time.Hour)
			require.NoError(t, err)

			before := time.Now().Truncate(time.Second)
			token, err := iss.Issue("a@x.com")
			require.NoError(t, err)
			assert.NotEmpty(t, token)

			claims, err := iss.Verify(token)
			require.NoError(t, err)
			assert.Equal(t, "a@x.com", claims.Subject)
			assert.NotEmpty(t, claims.ID)
			require.NotNil(t, claims.IssuedAt)
			require.NotNil(t, claims.ExpiresAt)
			assert.Equal(t, 2*time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
			assert.False(t, claims.IssuedAt.Before(before))
		})
	}
}

func TestIssuer_Issue_EmptySubject(t *testing.T) {
	t.Parallel()

	_, err := newTestIssuer(t).Issue("")
	assert.Error(t, err)
}

func TestIssuer_Issue_UniqueTokenIDs(t *testing.T) {
	t.Parallel()

	iss := newTestIssuer(t)
	t1, err := iss.Issue("a@x.com")
	require.NoError(t, err)
	t2, err := iss.Issue("a@x.com")
	require.NoError(t, err)

	c1, err := iss.Verify(t1)
	require.NoError(t, err)
	c2, err := iss.Verify(t2)
	require.NoError(t, err)

	assert.NotEqual(t, c1.ID, c2.ID)
	assert.NotEqual(t, t1, t2)
}

func TestIssuer_Verify_Expired(t *testing.T) {
	t.Parallel()

	past := time.Now().Add(-8 * 24 * time.Hour)
	issuedLongAgo, err := NewIssuer([]byte(testSecret), "HS256", 7*24*time.Hour, WithClock(func() time.Time { return past }))
	require.NoError(t, err)

	token, err := issuedLongAgo.Issue("a@x.com")
	require.NoError(t, err)

	_, err = newTestIssuer(t).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssuer_Verify_ClockAdvancesPastExpiry(t *testing.T) {
	t.Parallel()

	now := time.Now()
	clock := func() time.Time { return now }
	iss, err := NewIssuer([]byte(testSecret), "HS256", time.Minute, WithClock(func() time.Time { return clock() }))
	require.NoError(t, err)

	token, err := iss.Issue("a@x.com")
	require.NoError(t, err)

	_, err = iss.Verify(token)
	require.NoError(t, err)

	clock = func() time.Time { return now.Add(2 * time.Minute) }
	_, err = iss.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssuer_Verify_Rejects(t *testing.T) {
	t.Parallel()

	iss := newTestIssuer(t)
	valid, err := iss.Issue("a@x.com")
	require.NoError(t, err)

	live := jwt.RegisteredClaims{
		Subject:   "a@x.com",
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	noSubject := jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	noExpiry := jwt.RegisteredClaims{
		Subject:  "a@x.com",
		IssuedAt: jwt.NewNumericDate(time.Now()),
	}
	futureIssued := jwt.RegisteredClaims{
		Subject:   "a@x.com",
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(time.Hour)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(2 * time.Hour)),
	}

	parts := strings.Split(valid, ".")
	require.Len(t, parts, 3)
	payload := []byte(parts[1])
	if payload[5] == 'A' {
		payload[5] = 'B'
	} else {
		payload[5] = 'A'
	}
	tampered := strings.Join([]string{parts[0], string(payload), parts[2]}, ".")

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"random string", "randomstring"},
		{"malformed segments", "not.a.valid.token"},
		{"tampered payload", tampered},
		{"truncated signature", valid[:len(valid)-4]},
		{"wrong secret", signClaims(t, jwt.SigningMethodHS256, []byte("another-secret"), live)},
		{"different hmac algorithm", signClaims(t, jwt.SigningMethodHS512, []byte(testSecret), live)},
		{"none algorithm", signClaims(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, live)},
		{"missing sub", signClaims(t, jwt.SigningMethodHS256, []byte(testSecret), noSubject)},
		{"missing exp", signClaims(t, jwt.SigningMethodHS256, []byte(testSecret), noExpiry)},
		{"issued in the future", signClaims(t, jwt.SigningMethodHS256, []byte(testSecret), futureIssued)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			claims, err := iss.Verify(tt.token)
			assert.Nil(t, claims)
			assert.Equal(t, ErrInvalidToken, err, "all failures collapse to ErrInvalidToken")
		})
	}
}

func TestIssuer_Verify_AcceptsTokenFromAnotherInstanceWithSameSecret(t *testing.T) {
	t.Parallel()

	a := newTestIssuer(t)
	b := newTestIssuer(t)

	token, err := a.Issue("a@x.com")
	require.NoError(t, err)

	claims, err := b.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Subject)
}
