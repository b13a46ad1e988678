package authz

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ListQuery accumulates WHERE predicates with their arguments. Predicates
// use `?` placeholders which Clause expands into positional `$n` markers.
// The zero value is ready to use. Methods return modified copies so a
// scoped query never mutates the query it was derived from.
type ListQuery struct {
	conds []string
	args  []any
}

// Where appends a predicate and its arguments, returning a new query.
func (q ListQuery) Where(cond string, args ...any) ListQuery {
	conds := make([]string, len(q.conds), len(q.conds)+1)
	copy(conds, q.conds)
	combined := make([]any, len(q.args), len(q.args)+len(args))
	copy(combined, q.args)
	return ListQuery{
		conds: append(conds, cond),
		args:  append(combined, args...),
	}
}

// Clause renders the accumulated predicates as a WHERE clause with
// positional placeholders starting at $1, plus the argument slice. An
// empty query renders an empty clause.
func (q ListQuery) Clause() (string, []any) {
	if len(q.conds) == 0 {
		return "", nil
	}
	var sb strings.Builder
	sb.WriteString("WHERE ")
	pos := 1
	for i, cond := range q.conds {
		if i > 0 {
			sb.WriteString(" AND ")
		}
		for _, ch := range cond {
			if ch == '?' {
				sb.WriteString("$")
				sb.WriteString(strconv.Itoa(pos))
				pos++
				continue
			}
			sb.WriteRune(ch)
		}
	}
	return sb.String(), q.args
}

// NextArg returns the positional index for the first argument a caller
// appends after the accumulated ones, e.g. for LIMIT/OFFSET.
func (q ListQuery) NextArg() int {
	return len(q.args) + 1
}

// ScopeToOwner narrows a listing to rows the caller owns. Administrators
// see the query unchanged. A caller without a resolvable user id gets a
// query matching no rows rather than an unscoped one. Owned tables record
// their owner in the created_by column.
func ScopeToOwner(q ListQuery, userID *uuid.UUID, role string) ListQuery {
	if strings.EqualFold(role, RoleAdmin) {
		return q
	}
	if userID == nil {
		return q.Where("FALSE")
	}
	return q.Where("created_by = ?", *userID)
}
