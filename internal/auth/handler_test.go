package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/vantage-crm/vantage-crm/internal/authz"
	"github.com/vantage-crm/vantage-crm/internal/shared"
)

type stubRepo struct {
	users map[string]*User
}

func (r *stubRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	if user, ok := r.users[email]; ok {
		return user, nil
	}
	return nil, shared.ErrNotFound
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seedUser(t *testing.T, email, password, role string, active bool) *User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &User{
		ID:           uuid.New(),
		Email:        email,
		DisplayName:  "Test Seller",
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     active,
	}
}

func loginRouter(t *testing.T, repo Repository) http.Handler {
	t.Helper()
	tokens := NewTokenManager("test-secret", time.Hour)
	service := NewService(repo, tokens)
	handler := NewHandler(discardLogger(), service)

	r := chi.NewRouter()
	r.Route("/auth", handler.MountRoutes)
	return r
}

func postLogin(t *testing.T, router http.Handler, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	user := seedUser(t, "seller@example.com", "hunter22", RoleBasic, true)
	repo := &stubRepo{users: map[string]*User{user.Email: user}}
	router := loginRouter(t, repo)

	rr := postLogin(t, router, LoginRequest{Email: user.Email, Password: "hunter22"})

	require.Equal(t, http.StatusOK, rr.Code)
	var resp LoginResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, user.ID.String(), resp.UserID)
	assert.Equal(t, RoleBasic, resp.Role)

	tokens := NewTokenManager("test-secret", time.Hour)
	claims, err := tokens.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims["sub"])
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	user := seedUser(t, "seller@example.com", "hunter22", RoleBasic, true)
	repo := &stubRepo{users: map[string]*User{user.Email: user}}
	router := loginRouter(t, repo)

	rr := postLogin(t, router, LoginRequest{Email: user.Email, Password: "wrong"})

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestLoginRejectsUnknownUser(t *testing.T) {
	router := loginRouter(t, &stubRepo{users: map[string]*User{}})

	rr := postLogin(t, router, LoginRequest{Email: "nobody@example.com", Password: "hunter22"})

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestLoginRejectsInactiveUser(t *testing.T) {
	user := seedUser(t, "seller@example.com", "hunter22", RoleBasic, false)
	repo := &stubRepo{users: map[string]*User{user.Email: user}}
	router := loginRouter(t, repo)

	rr := postLogin(t, router, LoginRequest{Email: user.Email, Password: "hunter22"})

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestLoginRejectsMissingFields(t *testing.T) {
	router := loginRouter(t, &stubRepo{users: map[string]*User{}})

	rr := postLogin(t, router, map[string]string{"email": "seller@example.com"})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAuthenticateMiddlewareAttachesClaims(t *testing.T) {
	tokens := NewTokenManager("test-secret", time.Hour)
	user := seedUser(t, "seller@example.com", "hunter22", RoleBasic, true)
	raw, err := tokens.Issue(user, time.Now().UTC())
	require.NoError(t, err)

	mw := Middleware{Tokens: tokens, Logger: discardLogger()}
	var principal authz.Principal
	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal = authz.PrincipalFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, principal.UserID)
	assert.Equal(t, user.ID, *principal.UserID)
	assert.Equal(t, RoleBasic, principal.Role)
}

func TestAuthenticateMiddlewareRejectsInvalidToken(t *testing.T) {
	mw := Middleware{Tokens: NewTokenManager("test-secret", time.Hour), Logger: discardLogger()}
	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for invalid tokens")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthenticateMiddlewarePassesAnonymousThrough(t *testing.T) {
	mw := Middleware{Tokens: NewTokenManager("test-secret", time.Hour), Logger: discardLogger()}
	called := false
	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		principal := authz.PrincipalFromContext(r.Context())
		assert.False(t, principal.Authenticated)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, called)
}

func TestRequireAuthenticatedBlocksAnonymous(t *testing.T) {
	mw := Middleware{Tokens: NewTokenManager("test-secret", time.Hour), Logger: discardLogger()}
	handler := mw.RequireAuthenticated(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for anonymous callers")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/notes", nil))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
