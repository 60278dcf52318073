package auth

import (
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	ts, err := NewTokenService("test-secret")
	require.NoError(t, err)
	return ts
}

func TestNewTokenService_EmptySecret(t *testing.T) {
	_, err := NewTokenService("")
	assert.Error(t, err)
}

func TestGenerate_Validate_RoundTrip(t *testing.T) {
	ts := newTestTokenService(t)

	token, err := ts.Generate("user-abc-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := ts.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-abc-123", got)
}

func TestGenerate_DifferentUsersGetDifferentTokens(t *testing.T) {
	ts := newTestTokenService(t)

	token1, err := ts.Generate("user-aaa")
	require.NoError(t, err)
	token2, err := ts.Generate("user-bbb")
	require.NoError(t, err)

	assert.NotEqual(t, token1, token2)
}

func TestValidate_TamperedToken(t *testing.T) {
	ts := newTestTokenService(t)

	token, err := ts.Generate("user-123")
	require.NoError(t, err)

	// Flip a character in the signature segment.
	last := token[len(token)-1]
	replacement := byte('A')
	if last == 'A' {
		replacement = 'B'
	}
	tampered := token[:len(token)-1] + string(replacement)

	_, err = ts.Validate(tampered)
	assert.Error(t, err)
}

func TestValidate_Malformed(t *testing.T) {
	ts := newTestTokenService(t)

	for _, tokenStr := range []string{"", "not-a-jwt", "a.b", "a.b.c.d"} {
		_, err := ts.Validate(tokenStr)
		assert.Error(t, err, "token %q should not validate", tokenStr)
	}
}

func TestValidate_WrongSecret(t *testing.T) {
	ts := newTestTokenService(t)
	other, err := NewTokenService("a-different-secret")
	require.NoError(t, err)

	token, err := other.Generate("user-123")
	require.NoError(t, err)

	_, err = ts.Validate(token)
	assert.Error(t, err)
}

func TestValidate_RejectsNonHMACAlgorithm(t *testing.T) {
	ts := newTestTokenService(t)

	// An unsigned token claiming alg "none" must never verify.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, claims{ID: "user-123"})
	tokenStr, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ts.Validate(tokenStr)
	assert.Error(t, err)
}

func TestValidate_MissingUserID(t *testing.T) {
	ts := newTestTokenService(t)

	empty := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{})
	tokenStr, err := empty.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = ts.Validate(tokenStr)
	assert.Error(t, err)
}

func TestGenerate_NoExpiryClaim(t *testing.T) {
	ts := newTestTokenService(t)

	token, err := ts.Generate("user-123")
	require.NoError(t, err)

	// The payload segment must not carry an exp claim; tokens are
	// deliberately time-unbounded.
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	payload, err := jwt.NewParser().DecodeSegment(parts[1])
	require.NoError(t, err)
	assert.NotContains(t, string(payload), `"exp"`)
}
