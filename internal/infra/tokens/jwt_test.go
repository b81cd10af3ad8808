package tokens

import (
	"testing"
	"time"

	"yamdb/internal/domain/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssuer_IssuePairAndParse(t *testing.T) {
	iss, err := NewIssuer("secret", time.Hour, 24*time.Hour)
	require.NoError(t, err)
	u := users.User{ID: 42, Username: "bob", Role: users.RoleModerator}

	pair, err := iss.IssuePair(u)
	require.NoError(t, err)
	assert.NotEqual(t, pair.Access, pair.Refresh)

	claims, err := iss.Parse(pair.Access, TypeAccess)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "bob", claims.Username)
	assert.Equal(t, "moderator", claims.Role)
	assert.NotEmpty(t, claims.ID)

	_, err = iss.Parse(pair.Refresh, TypeRefresh)
	require.NoError(t, err)
}

func TestIssuer_RejectsWrongType(t *testing.T) {
	iss, err := NewIssuer("secret", time.Hour, time.Hour)
	require.NoError(t, err)
	pair, err := iss.IssuePair(users.User{ID: 1})
	require.NoError(t, err)

	_, err = iss.Parse(pair.Refresh, TypeAccess)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestIssuer_RejectsForeignSignature(t *testing.T) {
	a, _ := NewIssuer("a", time.Hour, time.Hour)
	b, _ := NewIssuer("b", time.Hour, time.Hour)
	tok, err := a.IssueAccess(users.User{ID: 1})
	require.NoError(t, err)

	_, err = b.Parse(tok, TypeAccess)
	assert.Error(t, err)
}

func TestIssuer_RejectsExpired(t *testing.T) {
	iss, _ := NewIssuer("secret", time.Minute, time.Minute)
	issuedAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	iss.now = func() time.Time { return issuedAt }
	tok, err := iss.IssueAccess(users.User{ID: 1})
	require.NoError(t, err)

	iss.now = func() time.Time { return issuedAt.Add(2 * time.Minute) }
	_, err = iss.Parse(tok, TypeAccess)
	assert.Error(t, err)
}

func TestNewIssuer_EmptySecret(t *testing.T) {
	_, err := NewIssuer("", time.Hour, time.Hour)
	assert.Error(t, err)
}
