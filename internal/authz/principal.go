// Package authz implements ownership-based authorization for CRM resources.
//
// A protected operation declares the entity kind it guards and the route
// parameter carrying the entity id. The evaluator allows administrators
// unconditionally; every other caller must be the recorded creator of the
// targeted resource. Listings are narrowed with ScopeToOwner.
package authz

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// RoleAdmin is the role tag that bypasses ownership checks. Comparison is
// case-insensitive.
const RoleAdmin = "Admin"

// Claim keys carried by tokens minted on the previous platform use WS-Fed
// style URIs; tokens minted here use the compact JWT names. Resolution
// tries the URI form first, then the compact form. The order is a stable
// contract, not an implementation detail.
const (
	ClaimSubjectURI = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/nameidentifier"
	ClaimRoleURI    = "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"
)

var (
	subjectClaimKeys = []string{ClaimSubjectURI, "sub"}
	roleClaimKeys    = []string{ClaimRoleURI, "role"}
)

// Claims is a verified claim set attached to the request context by the
// authentication middleware. Unverified requests carry no claim set.
type Claims map[string]any

type claimsContextKey struct{}

// ContextWithClaims stores a verified claim set in context.
func ContextWithClaims(ctx context.Context, claims Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey{}, claims)
}

// ClaimsFromContext extracts the verified claim set from context.
func ClaimsFromContext(ctx context.Context) (Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey{}).(Claims)
	return claims, ok
}

// Principal describes the authenticated actor behind a request.
type Principal struct {
	Authenticated bool
	UserID        *uuid.UUID
	Role          string
}

// IsAdmin reports whether the principal carries the administrator role.
func (p Principal) IsAdmin() bool {
	return p.Authenticated && strings.EqualFold(p.Role, RoleAdmin)
}

// PrincipalFromContext resolves the acting principal from the verified
// claim set. User id resolution fails soft: a missing or unparseable
// subject claim leaves UserID nil. Without a claim set the principal is
// unauthenticated and carries neither user id nor role.
func PrincipalFromContext(ctx context.Context) Principal {
	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		return Principal{}
	}
	p := Principal{Authenticated: true}
	if raw, ok := firstClaim(claims, subjectClaimKeys); ok {
		if id, err := uuid.Parse(raw); err == nil {
			p.UserID = &id
		}
	}
	if role, ok := firstClaim(claims, roleClaimKeys); ok {
		p.Role = role
	}
	return p
}

func firstClaim(claims Claims, keys []string) (string, bool) {
	for _, key := range keys {
		if value, ok := claims[key]; ok {
			if s, ok := value.(string); ok && s != "" {
				return s, true
			}
		}
	}
	return "", false
}
