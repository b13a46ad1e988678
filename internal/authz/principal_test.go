package authz

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrincipalFromContextWithoutClaims(t *testing.T) {
	p := PrincipalFromContext(context.Background())

	assert.False(t, p.Authenticated)
	assert.Nil(t, p.UserID)
	assert.Empty(t, p.Role)
	assert.False(t, p.IsAdmin())
}

func TestPrincipalResolvesCompactClaims(t *testing.T) {
	id := uuid.New()
	ctx := ContextWithClaims(context.Background(), Claims{"sub": id.String(), "role": "Basic"})

	p := PrincipalFromContext(ctx)

	assert.True(t, p.Authenticated)
	require.NotNil(t, p.UserID)
	assert.Equal(t, id, *p.UserID)
	assert.Equal(t, "Basic", p.Role)
}

func TestPrincipalPrefersURIClaimKeys(t *testing.T) {
	uriID := uuid.New()
	compactID := uuid.New()
	ctx := ContextWithClaims(context.Background(), Claims{
		ClaimSubjectURI: uriID.String(),
		"sub":           compactID.String(),
		ClaimRoleURI:    "Admin",
		"role":          "Basic",
	})

	p := PrincipalFromContext(ctx)

	require.NotNil(t, p.UserID)
	assert.Equal(t, uriID, *p.UserID)
	assert.Equal(t, "Admin", p.Role)
}

func TestPrincipalFallsThroughEmptyURIClaim(t *testing.T) {
	id := uuid.New()
	ctx := ContextWithClaims(context.Background(), Claims{
		ClaimSubjectURI: "",
		"sub":           id.String(),
	})

	p := PrincipalFromContext(ctx)

	require.NotNil(t, p.UserID)
	assert.Equal(t, id, *p.UserID)
}

func TestPrincipalUnparseableSubjectFailsSoft(t *testing.T) {
	ctx := ContextWithClaims(context.Background(), Claims{"sub": "jsmith", "role": "Basic"})

	p := PrincipalFromContext(ctx)

	assert.True(t, p.Authenticated)
	assert.Nil(t, p.UserID)
	assert.Equal(t, "Basic", p.Role)
}

func TestPrincipalNonStringClaimIsIgnored(t *testing.T) {
	ctx := ContextWithClaims(context.Background(), Claims{"sub": 42, "role": true})

	p := PrincipalFromContext(ctx)

	assert.Nil(t, p.UserID)
	assert.Empty(t, p.Role)
}

func TestIsAdminIsCaseInsensitive(t *testing.T) {
	for _, role := range []string{"Admin", "admin", "ADMIN"} {
		p := Principal{Authenticated: true, Role: role}
		assert.True(t, p.IsAdmin(), "role %q", role)
	}
	assert.False(t, Principal{Authenticated: true, Role: "Basic"}.IsAdmin())
	assert.False(t, Principal{Authenticated: false, Role: "Admin"}.IsAdmin())
}
