package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrevia/vrevia-back/internal/models"
)

func TestIssueAndParseTokens(t *testing.T) {
	secret := []byte("test-secret")
	studentID := uint(7)
	u := &models.User{
		ID:        3,
		Email:     "aigerim@vrevia.kz",
		Role:      models.RoleStudent,
		StudentID: &studentID,
	}

	access, refresh, err := IssueTokens(secret, u)
	require.NoError(t, err)
	require.NotEqual(t, access, refresh)

	claims, err := ParseToken(secret, access)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, u.Email, claims.Email)
	assert.Equal(t, u.Role, claims.Role)
	require.NotNil(t, claims.StudentID)
	assert.Equal(t, studentID, *claims.StudentID)
	assert.Empty(t, claims.TokenType)

	claims, err = ParseToken(secret, refresh)
	require.NoError(t, err)
	assert.Equal(t, "refresh", claims.TokenType)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	u := &models.User{ID: 1, Email: "admin@vrevia.kz", Role: models.RoleAdmin}

	access, _, err := IssueTokens([]byte("right"), u)
	require.NoError(t, err)

	_, err = ParseToken([]byte("wrong"), access)
	assert.Error(t, err)
}
