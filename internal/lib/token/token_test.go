package token

import (
	"testing"
	"time"

	"github.com/deppfellow/venues/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUser = model.User{ID: "7", Username: "ada"}

func TestIssueVerify(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour, "venues")

	tok, err := issuer.Issue(testUser)
	require.NoError(t, err)

	claims, err := issuer.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "7", claims.UserID)
	assert.Equal(t, "ada", claims.Username)
	assert.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestVerify_ExpiresAfterTTL(t *testing.T) {
	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewIssuer("secret", time.Hour, "venues")
	issuer.now = func() time.Time { return issuedAt }

	tok, err := issuer.Issue(testUser)
	require.NoError(t, err)

	issuer.now = func() time.Time { return issuedAt.Add(59 * time.Minute) }
	_, err = issuer.Verify(tok)
	assert.NoError(t, err)

	issuer.now = func() time.Time { return issuedAt.Add(61 * time.Minute) }
	_, err = issuer.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerify_RejectsOtherSecret(t *testing.T) {
	tok, err := NewIssuer("secret", time.Hour, "venues").Issue(testUser)
	require.NoError(t, err)

	_, err = NewIssuer("another-secret", time.Hour, "venues").Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_RejectsOtherIssuer(t *testing.T) {
	tok, err := NewIssuer("secret", time.Hour, "someone-else").Issue(testUser)
	require.NoError(t, err)

	_, err = NewIssuer("secret", time.Hour, "venues").Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Malformed(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour, "venues")

	_, err := issuer.Verify("")
	assert.ErrorIs(t, err, ErrMissingToken)

	_, err = issuer.Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssue_RequiresIdentity(t *testing.T) {
	_, err := NewIssuer("secret", time.Hour, "venues").Issue(model.User{Username: "ada"})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestFromHeader(t *testing.T) {
	_, err := FromHeader("")
	assert.ErrorIs(t, err, ErrMissingToken)

	_, err = FromHeader("Token abc")
	assert.ErrorIs(t, err, ErrMissingToken)

	tok, err := FromHeader("Bearer abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)
}
