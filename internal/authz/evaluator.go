package authz

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vantage-crm/vantage-crm/internal/shared"
)

// Decision is the outcome of an ownership evaluation.
type Decision int

const (
	// DecisionDeny rejects the request without confirming whether the
	// resource exists.
	DecisionDeny Decision = iota
	// DecisionAllow lets the request continue.
	DecisionAllow
	// DecisionNotFound rejects the request because the resource does not
	// exist; it surfaces as 404 rather than 403.
	DecisionNotFound
)

// String returns the decision name for logs and metric labels.
func (d Decision) String() string {
	switch d {
	case DecisionAllow:
		return "allow"
	case DecisionNotFound:
		return "not_found"
	default:
		return "deny"
	}
}

// DecisionObserver records evaluation outcomes, typically for metrics.
type DecisionObserver interface {
	ObserveDecision(entity, decision string)
}

// Evaluator decides whether a caller may act on an owned resource.
// It holds no per-request state; a single instance serves all requests.
type Evaluator struct {
	registry *Registry
	logger   *slog.Logger
	observer DecisionObserver
}

// NewEvaluator constructs an Evaluator. The observer may be nil.
func NewEvaluator(registry *Registry, logger *slog.Logger, observer DecisionObserver) *Evaluator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Evaluator{registry: registry, logger: logger, observer: observer}
}

// Evaluate runs the decision procedure for one protected invocation.
// Branch order is fixed and the first applicable branch wins:
// unusable request, unauthenticated caller, administrator bypass, missing
// rule, missing or malformed id, entity lookup, owner comparison.
// Administrators are allowed before any entity lookup, so an admin can act
// on an id that does not resolve to a resource.
func (e *Evaluator) Evaluate(ctx context.Context, r *http.Request, rule Rule) Decision {
	if r == nil || chi.RouteContext(r.Context()) == nil {
		e.logger.Warn("authz: request has no route context")
		return e.record(rule, DecisionDeny)
	}
	path := r.URL.Path

	principal := PrincipalFromContext(ctx)
	if !principal.Authenticated || principal.UserID == nil {
		e.logger.Warn("authz: unauthenticated or unresolvable principal",
			slog.String("path", path))
		return e.record(rule, DecisionDeny)
	}
	if principal.IsAdmin() {
		return e.record(rule, DecisionAllow)
	}

	if rule.Entity == "" {
		// A guarded route without a declared entity kind is a
		// configuration defect; fail closed rather than open.
		e.logger.Warn("authz: route missing ownership rule",
			slog.String("path", path),
			slog.String("user_id", principal.UserID.String()))
		return e.record(rule, DecisionDeny)
	}

	raw := chi.URLParam(r, rule.param())
	if raw == "" {
		e.logger.Warn("authz: id parameter missing",
			slog.String("path", path),
			slog.String("entity", string(rule.Entity)),
			slog.String("param", rule.param()))
		return e.record(rule, DecisionDeny)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		e.logger.Warn("authz: malformed id parameter",
			slog.String("path", path),
			slog.String("entity", string(rule.Entity)),
			slog.String("value", raw))
		return e.record(rule, DecisionDeny)
	}

	loader, ok := e.registry.loader(rule.Entity)
	if !ok {
		e.logger.Warn("authz: no loader registered for entity",
			slog.String("path", path),
			slog.String("entity", string(rule.Entity)))
		return e.record(rule, DecisionDeny)
	}

	entity, err := loader(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			e.logger.Warn("authz: resource does not exist",
				slog.String("path", path),
				slog.String("entity", string(rule.Entity)),
				slog.String("entity_id", id.String()),
				slog.String("user_id", principal.UserID.String()))
			return e.record(rule, DecisionNotFound)
		}
		e.logger.Warn("authz: entity lookup failed",
			slog.String("path", path),
			slog.String("entity", string(rule.Entity)),
			slog.String("entity_id", id.String()),
			slog.Any("error", err))
		return e.record(rule, DecisionDeny)
	}
	if entity == nil {
		e.logger.Warn("authz: entity does not expose an owner",
			slog.String("path", path),
			slog.String("entity", string(rule.Entity)),
			slog.String("entity_id", id.String()))
		return e.record(rule, DecisionDeny)
	}

	owner := entity.OwnerID()
	if owner == *principal.UserID {
		return e.record(rule, DecisionAllow)
	}
	e.logger.Warn("authz: ownership mismatch",
		slog.String("path", path),
		slog.String("entity", string(rule.Entity)),
		slog.String("entity_id", id.String()),
		slog.String("user_id", principal.UserID.String()),
		slog.String("owner_id", owner.String()))
	return e.record(rule, DecisionDeny)
}

func (e *Evaluator) record(rule Rule, d Decision) Decision {
	if e.observer != nil {
		entity := string(rule.Entity)
		if entity == "" {
			entity = "none"
		}
		e.observer.ObserveDecision(entity, d.String())
	}
	return d
}
