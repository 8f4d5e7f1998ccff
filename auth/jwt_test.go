package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sepnoty-tech/sepnoty-api/models"
	"github.com/sepnoty-tech/sepnoty-api/testutil"
)

func TestJWTRoundTrip(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.NewUser(t, db, "asha@example.com")

	token, err := IssueToken("secret", user)
	require.NoError(t, err)

	v := NewJWTVerifier(db, "secret", "")
	ident, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, ident.UserID)
	assert.Equal(t, user.Email, ident.Email)
	assert.False(t, ident.IsAdmin)
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.NewUser(t, db, "asha@example.com")

	token, err := IssueToken("secret", user)
	require.NoError(t, err)

	v := NewJWTVerifier(db, "other-secret", "")
	_, err = v.Verify(context.Background(), token)
	assert.Error(t, err)
}

func TestJWTRejectsGarbage(t *testing.T) {
	db := testutil.NewDB(t)
	v := NewJWTVerifier(db, "secret", "")
	_, err := v.Verify(context.Background(), "not-a-token")
	assert.Error(t, err)
}

func TestJWTRejectsDeletedUser(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.NewUser(t, db, "asha@example.com")

	token, err := IssueToken("secret", user)
	require.NoError(t, err)
	require.NoError(t, db.Delete(&models.User{}, user.ID).Error)

	v := NewJWTVerifier(db, "secret", "")
	_, err = v.Verify(context.Background(), token)
	assert.Error(t, err)
}

func TestJWTAdminEmailOverride(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.NewUser(t, db, "owner@example.com")

	token, err := IssueToken("secret", user)
	require.NoError(t, err)

	v := NewJWTVerifier(db, "secret", "owner@example.com")
	ident, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.True(t, ident.IsAdmin)
}
