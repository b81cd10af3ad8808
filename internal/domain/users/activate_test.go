package users_test

import (
	"testing"
	"time"

	"yamdb/internal/domain/users"
	"yamdb/internal/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedeem_OnlyOnceForAVersion(t *testing.T) {
	db := testutils.SetupTestDB(t)
	stored := testutils.CreateTestUser(db, testutils.Pending())

	// Two requests that both checked the code against the same snapshot.
	first, second := *stored, *stored
	now := time.Now().UTC()

	ok, err := users.Redeem(db, &first, now)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, first.IsActive())
	assert.Equal(t, stored.StateVersion+1, first.StateVersion)

	ok, err = users.Redeem(db, &second, now)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, stored.StateVersion, second.StateVersion)

	var fresh users.User
	require.NoError(t, db.First(&fresh, stored.ID).Error)
	assert.Equal(t, stored.StateVersion+1, fresh.StateVersion)
	assert.NotNil(t, fresh.LastLogin)
}
