package authz

import (
	"context"

	"github.com/google/uuid"
)

// Owned is the capability a resource must expose to be ownership-checked.
type Owned interface {
	OwnerID() uuid.UUID
}

// LoaderFunc loads one entity by primary key. Implementations return an
// error wrapping shared.ErrNotFound when no such entity exists.
type LoaderFunc func(ctx context.Context, id uuid.UUID) (Owned, error)

// Registry maps entity kinds to their loaders. The set of supported kinds
// is closed at startup; there is no reflection-based loading.
type Registry struct {
	loaders map[EntityKind]LoaderFunc
}

// NewRegistry constructs an empty loader registry.
func NewRegistry() *Registry {
	return &Registry{loaders: make(map[EntityKind]LoaderFunc)}
}

// Register wires a loader for an entity kind, replacing any previous one.
func (r *Registry) Register(kind EntityKind, loader LoaderFunc) {
	if kind == "" || loader == nil {
		return
	}
	r.loaders[kind] = loader
}

func (r *Registry) loader(kind EntityKind) (LoaderFunc, bool) {
	if r == nil {
		return nil, false
	}
	loader, ok := r.loaders[kind]
	return loader, ok
}
