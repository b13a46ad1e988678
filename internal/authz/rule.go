package authz

import "strings"

// EntityKind identifies a resource type the evaluator can load.
type EntityKind string

// Supported owner-checked entity kinds.
const (
	EntityNote        EntityKind = "note"
	EntityOpportunity EntityKind = "opportunity"
)

// DefaultIDParam is the route parameter consulted when a rule does not
// declare one.
const DefaultIDParam = "id"

// Rule declares which entity kind a protected operation guards and which
// route parameter carries the entity id. Rules are attached at route
// registration time; a route guarded without a rule denies every
// non-administrator request.
type Rule struct {
	Entity  EntityKind
	IDParam string
}

func (r Rule) param() string {
	name := strings.TrimSpace(r.IDParam)
	if name == "" {
		return DefaultIDParam
	}
	return name
}
