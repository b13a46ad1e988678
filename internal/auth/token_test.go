package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vantage-crm/vantage-crm/internal/authz"
)

func testUser(role string) *User {
	return &User{
		ID:          uuid.New(),
		Email:       "seller@example.com",
		DisplayName: "Seller",
		Role:        role,
		IsActive:    true,
	}
}

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	manager := NewTokenManager("secret", time.Hour)
	user := testUser(RoleBasic)

	raw, err := manager.Issue(user, time.Now().UTC())
	require.NoError(t, err)

	claims, err := manager.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims["sub"])
	assert.Equal(t, RoleBasic, claims["role"])
	assert.Equal(t, "vantage-crm", claims["iss"])

	principal := authz.PrincipalFromContext(authz.ContextWithClaims(t.Context(), claims))
	require.NotNil(t, principal.UserID)
	assert.Equal(t, user.ID, *principal.UserID)
	assert.Equal(t, RoleBasic, principal.Role)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	manager := NewTokenManager("secret", time.Hour)

	raw, err := manager.Issue(testUser(RoleBasic), time.Now().UTC().Add(-2*time.Hour))
	require.NoError(t, err)

	_, err = manager.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	manager := NewTokenManager("secret", time.Hour)
	other := NewTokenManager("different", time.Hour)

	raw, err := manager.Issue(testUser(RoleBasic), time.Now().UTC())
	require.NoError(t, err)

	_, err = other.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsUnsignedToken(t *testing.T) {
	manager := NewTokenManager("secret", time.Hour)

	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": uuid.NewString(),
	})
	raw, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = manager.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	manager := NewTokenManager("secret", time.Hour)

	_, err := manager.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewTokenManagerDefaultsTTL(t *testing.T) {
	manager := NewTokenManager("secret", 0)
	assert.Equal(t, 24*time.Hour, manager.TTL())
}
