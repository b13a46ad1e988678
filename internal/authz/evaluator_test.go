package authz

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vantage-crm/vantage-crm/internal/shared"
)

type ownedStub struct {
	owner uuid.UUID
}

func (o ownedStub) OwnerID() uuid.UUID { return o.owner }

type countingLoader struct {
	calls  int
	entity Owned
	err    error
}

func (l *countingLoader) load(ctx context.Context, id uuid.UUID) (Owned, error) {
	l.calls++
	if l.err != nil {
		return nil, l.err
	}
	return l.entity, nil
}

type observerStub struct {
	entities  []string
	decisions []string
}

func (o *observerStub) ObserveDecision(entity, decision string) {
	o.entities = append(o.entities, entity)
	o.decisions = append(o.decisions, decision)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func guardedRequest(t *testing.T, id string, claims Claims) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/notes/"+id, nil)
	routeCtx := chi.NewRouteContext()
	if id != "" {
		routeCtx.URLParams.Add("id", id)
	}
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx)
	if claims != nil {
		ctx = ContextWithClaims(ctx, claims)
	}
	return req.WithContext(ctx)
}

func userClaims(id uuid.UUID, role string) Claims {
	return Claims{"sub": id.String(), "role": role}
}

func TestEvaluateOwnerIsAllowed(t *testing.T) {
	owner := uuid.New()
	loader := &countingLoader{entity: ownedStub{owner: owner}}
	registry := NewRegistry()
	registry.Register(EntityNote, loader.load)
	eval := NewEvaluator(registry, discardLogger(), nil)

	req := guardedRequest(t, uuid.NewString(), userClaims(owner, "Basic"))
	decision := eval.Evaluate(req.Context(), req, Rule{Entity: EntityNote})

	assert.Equal(t, DecisionAllow, decision)
	assert.Equal(t, 1, loader.calls, "loader should be consulted exactly once")
}

func TestEvaluateNonOwnerIsDenied(t *testing.T) {
	loader := &countingLoader{entity: ownedStub{owner: uuid.New()}}
	registry := NewRegistry()
	registry.Register(EntityNote, loader.load)
	eval := NewEvaluator(registry, discardLogger(), nil)

	req := guardedRequest(t, uuid.NewString(), userClaims(uuid.New(), "Basic"))
	decision := eval.Evaluate(req.Context(), req, Rule{Entity: EntityNote})

	assert.Equal(t, DecisionDeny, decision)
	assert.Equal(t, 1, loader.calls)
}

func TestEvaluateRepeatedChecksAreStable(t *testing.T) {
	owner := uuid.New()
	loader := &countingLoader{entity: ownedStub{owner: owner}}
	registry := NewRegistry()
	registry.Register(EntityNote, loader.load)
	eval := NewEvaluator(registry, discardLogger(), nil)

	req := guardedRequest(t, uuid.NewString(), userClaims(owner, "Basic"))
	for i := 1; i <= 3; i++ {
		assert.Equal(t, DecisionAllow, eval.Evaluate(req.Context(), req, Rule{Entity: EntityNote}))
		assert.Equal(t, i, loader.calls, "exactly one lookup per check")
	}

	stranger := &countingLoader{entity: ownedStub{owner: uuid.New()}}
	registry.Register(EntityOpportunity, stranger.load)
	req = guardedRequest(t, uuid.NewString(), userClaims(uuid.New(), "Basic"))
	for i := 1; i <= 3; i++ {
		assert.Equal(t, DecisionDeny, eval.Evaluate(req.Context(), req, Rule{Entity: EntityOpportunity}))
		assert.Equal(t, i, stranger.calls)
	}
}

func TestEvaluateAdminBypassesLookup(t *testing.T) {
	loader := &countingLoader{entity: ownedStub{owner: uuid.New()}}
	registry := NewRegistry()
	registry.Register(EntityNote, loader.load)
	eval := NewEvaluator(registry, discardLogger(), nil)

	req := guardedRequest(t, uuid.NewString(), userClaims(uuid.New(), "Admin"))
	decision := eval.Evaluate(req.Context(), req, Rule{Entity: EntityNote})

	assert.Equal(t, DecisionAllow, decision)
	assert.Zero(t, loader.calls, "admin must not trigger an entity lookup")
}

func TestEvaluateAdminRoleIsCaseInsensitive(t *testing.T) {
	eval := NewEvaluator(NewRegistry(), discardLogger(), nil)

	for _, role := range []string{"admin", "ADMIN", "Admin"} {
		req := guardedRequest(t, uuid.NewString(), userClaims(uuid.New(), role))
		decision := eval.Evaluate(req.Context(), req, Rule{Entity: EntityNote})
		assert.Equal(t, DecisionAllow, decision, "role %q", role)
	}
}

func TestEvaluateAdminAllowedForAbsentResource(t *testing.T) {
	loader := &countingLoader{err: shared.ErrNotFound}
	registry := NewRegistry()
	registry.Register(EntityNote, loader.load)
	eval := NewEvaluator(registry, discardLogger(), nil)

	req := guardedRequest(t, uuid.NewString(), userClaims(uuid.New(), "Admin"))
	decision := eval.Evaluate(req.Context(), req, Rule{Entity: EntityNote})

	assert.Equal(t, DecisionAllow, decision)
	assert.Zero(t, loader.calls)
}

func TestEvaluateUnauthenticatedIsDenied(t *testing.T) {
	loader := &countingLoader{entity: ownedStub{owner: uuid.New()}}
	registry := NewRegistry()
	registry.Register(EntityNote, loader.load)
	eval := NewEvaluator(registry, discardLogger(), nil)

	req := guardedRequest(t, uuid.NewString(), nil)
	decision := eval.Evaluate(req.Context(), req, Rule{Entity: EntityNote})

	assert.Equal(t, DecisionDeny, decision)
	assert.Zero(t, loader.calls)
}

func TestEvaluateUnresolvableSubjectIsDenied(t *testing.T) {
	eval := NewEvaluator(NewRegistry(), discardLogger(), nil)

	req := guardedRequest(t, uuid.NewString(), Claims{"sub": "not-a-uuid", "role": "Basic"})
	decision := eval.Evaluate(req.Context(), req, Rule{Entity: EntityNote})

	assert.Equal(t, DecisionDeny, decision)
}

func TestEvaluateMissingRuleFailsClosed(t *testing.T) {
	eval := NewEvaluator(NewRegistry(), discardLogger(), nil)

	req := guardedRequest(t, uuid.NewString(), userClaims(uuid.New(), "Basic"))
	decision := eval.Evaluate(req.Context(), req, Rule{})

	assert.Equal(t, DecisionDeny, decision)
}

func TestEvaluateMissingIDParamIsDenied(t *testing.T) {
	eval := NewEvaluator(NewRegistry(), discardLogger(), nil)

	req := guardedRequest(t, "", userClaims(uuid.New(), "Basic"))
	decision := eval.Evaluate(req.Context(), req, Rule{Entity: EntityNote})

	assert.Equal(t, DecisionDeny, decision)
}

func TestEvaluateMalformedIDIsDenied(t *testing.T) {
	loader := &countingLoader{entity: ownedStub{owner: uuid.New()}}
	registry := NewRegistry()
	registry.Register(EntityNote, loader.load)
	eval := NewEvaluator(registry, discardLogger(), nil)

	req := guardedRequest(t, "42", userClaims(uuid.New(), "Basic"))
	decision := eval.Evaluate(req.Context(), req, Rule{Entity: EntityNote})

	assert.Equal(t, DecisionDeny, decision)
	assert.Zero(t, loader.calls)
}

func TestEvaluateUnregisteredEntityIsDenied(t *testing.T) {
	eval := NewEvaluator(NewRegistry(), discardLogger(), nil)

	req := guardedRequest(t, uuid.NewString(), userClaims(uuid.New(), "Basic"))
	decision := eval.Evaluate(req.Context(), req, Rule{Entity: EntityNote})

	assert.Equal(t, DecisionDeny, decision)
}

func TestEvaluateAbsentResourceIsNotFound(t *testing.T) {
	loader := &countingLoader{err: shared.ErrNotFound}
	registry := NewRegistry()
	registry.Register(EntityNote, loader.load)
	eval := NewEvaluator(registry, discardLogger(), nil)

	req := guardedRequest(t, uuid.NewString(), userClaims(uuid.New(), "Basic"))
	decision := eval.Evaluate(req.Context(), req, Rule{Entity: EntityNote})

	assert.Equal(t, DecisionNotFound, decision)
}

func TestEvaluateLookupErrorIsDenied(t *testing.T) {
	loader := &countingLoader{err: errors.New("connection reset")}
	registry := NewRegistry()
	registry.Register(EntityNote, loader.load)
	eval := NewEvaluator(registry, discardLogger(), nil)

	req := guardedRequest(t, uuid.NewString(), userClaims(uuid.New(), "Basic"))
	decision := eval.Evaluate(req.Context(), req, Rule{Entity: EntityNote})

	assert.Equal(t, DecisionDeny, decision)
}

func TestEvaluateCustomIDParam(t *testing.T) {
	owner := uuid.New()
	noteID := uuid.New()
	loader := &countingLoader{entity: ownedStub{owner: owner}}
	registry := NewRegistry()
	registry.Register(EntityNote, loader.load)
	eval := NewEvaluator(registry, discardLogger(), nil)

	req := httptest.NewRequest(http.MethodGet, "/notes/"+noteID.String(), nil)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("noteID", noteID.String())
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx)
	ctx = ContextWithClaims(ctx, userClaims(owner, "Basic"))
	req = req.WithContext(ctx)

	decision := eval.Evaluate(req.Context(), req, Rule{Entity: EntityNote, IDParam: "noteID"})
	assert.Equal(t, DecisionAllow, decision)
}

func TestEvaluateReportsObserver(t *testing.T) {
	owner := uuid.New()
	loader := &countingLoader{entity: ownedStub{owner: owner}}
	registry := NewRegistry()
	registry.Register(EntityNote, loader.load)
	observer := &observerStub{}
	eval := NewEvaluator(registry, discardLogger(), observer)

	req := guardedRequest(t, uuid.NewString(), userClaims(owner, "Basic"))
	eval.Evaluate(req.Context(), req, Rule{Entity: EntityNote})

	req = guardedRequest(t, uuid.NewString(), nil)
	eval.Evaluate(req.Context(), req, Rule{})

	require.Len(t, observer.decisions, 2)
	assert.Equal(t, []string{"note", "none"}, observer.entities)
	assert.Equal(t, []string{"allow", "deny"}, observer.decisions)
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "allow", DecisionAllow.String())
	assert.Equal(t, "deny", DecisionDeny.String())
	assert.Equal(t, "not_found", DecisionNotFound.String())
}
