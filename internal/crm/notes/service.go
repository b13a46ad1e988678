package notes

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vantage-crm/vantage-crm/internal/authz"
	"github.com/vantage-crm/vantage-crm/internal/shared"
)

// Service wraps note business rules.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stores a new note owned by createdBy.
func (s *Service) Create(ctx context.Context, req CreateNoteRequest, createdBy uuid.UUID) (*Note, error) {
	if err := shared.Validate(req); err != nil {
		return nil, fmt.Errorf("validate note: %w", err)
	}
	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		return nil, fmt.Errorf("parse account id: %w", err)
	}
	note := Note{
		ID:        uuid.New(),
		AccountID: accountID,
		Body:      req.Body,
		CreatedBy: createdBy,
	}
	if err := s.repo.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	return &note, nil
}

// Get fetches a note by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Note, error) {
	return s.repo.Get(ctx, id)
}

// List returns the caller's notes. Administrators see every note; other
// callers only rows they created. The scoping happens in the query, not
// after the fact.
func (s *Service) List(ctx context.Context, req ListNotesRequest, principal authz.Principal) ([]Note, int, error) {
	if err := shared.Validate(req); err != nil {
		return nil, 0, fmt.Errorf("validate list request: %w", err)
	}
	limit := req.Limit
	if limit == 0 {
		limit = 50
	}

	q := authz.ListQuery{}
	if req.AccountID != nil {
		q = q.Where("account_id = ?", *req.AccountID)
	}
	q = authz.ScopeToOwner(q, principal.UserID, principal.Role)

	return s.repo.List(ctx, q, limit, req.Offset)
}

// Update replaces a note body.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateNoteRequest) (*Note, error) {
	if err := shared.Validate(req); err != nil {
		return nil, fmt.Errorf("validate note: %w", err)
	}
	if err := s.repo.Update(ctx, id, req.Body); err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	return s.repo.Get(ctx, id)
}

// Delete removes a note.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}

// NewOwnershipLoader adapts the repository to the authz loader contract.
func NewOwnershipLoader(repo Repository) authz.LoaderFunc {
	return func(ctx context.Context, id uuid.UUID) (authz.Owned, error) {
		note, err := repo.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		return note, nil
	}
}
