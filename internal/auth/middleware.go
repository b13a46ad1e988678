package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/vantage-crm/vantage-crm/internal/authz"
	"github.com/vantage-crm/vantage-crm/internal/platform/httpx"
)

// Middleware extracts and verifies bearer credentials.
type Middleware struct {
	Tokens *TokenManager
	Logger *slog.Logger
}

// Authenticate verifies the Authorization header when present and stores
// the verified claim set in the request context. Requests without a
// credential continue unauthenticated; route guards decide whether that
// is acceptable. A present-but-invalid credential is rejected outright.
func (m Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "malformed authorization header")
			return
		}
		claims, err := m.Tokens.Verify(raw)
		if err != nil {
			if m.Logger != nil {
				m.Logger.Warn("bearer token rejected", slog.String("path", r.URL.Path))
			}
			httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "invalid or expired token")
			return
		}
		ctx := authz.ContextWithClaims(r.Context(), claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuthenticated rejects requests without a verified principal.
func (m Middleware) RequireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal := authz.PrincipalFromContext(r.Context())
		if !principal.Authenticated || principal.UserID == nil {
			httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
