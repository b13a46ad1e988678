package authz

import "net/http"

// Middleware guards routes with ownership rules.
type Middleware struct {
	Evaluator *Evaluator
}

// RequireOwner returns route middleware enforcing the given rule. Allow
// continues the chain, NotFound renders 404 and every other denial renders
// 403. Response bodies carry only the status text so callers cannot tell
// which branch rejected them beyond the 403/404 split.
func (m Middleware) RequireOwner(rule Rule) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch m.Evaluator.Evaluate(r.Context(), r, rule) {
			case DecisionAllow:
				next.ServeHTTP(w, r)
			case DecisionNotFound:
				http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			default:
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			}
		})
	}
}
