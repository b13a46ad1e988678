package contacts

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vantage-crm/vantage-crm/internal/shared"
)

// Service wraps contact business rules.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stores a new contact.
func (s *Service) Create(ctx context.Context, req CreateContactRequest, createdBy uuid.UUID) (*Contact, error) {
	if err := shared.Validate(req); err != nil {
		return nil, fmt.Errorf("validate contact: %w", err)
	}
	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		return nil, fmt.Errorf("parse account id: %w", err)
	}
	contact := Contact{
		ID:        uuid.New(),
		AccountID: accountID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Title:     req.Title,
		CreatedBy: createdBy,
	}
	if err := s.repo.Create(ctx, contact); err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}
	return &contact, nil
}

// Get fetches a contact by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Contact, error) {
	return s.repo.Get(ctx, id)
}

// List returns contacts matching the filter.
func (s *Service) List(ctx context.Context, req ListContactsRequest) ([]Contact, int, error) {
	if err := shared.Validate(req); err != nil {
		return nil, 0, fmt.Errorf("validate list request: %w", err)
	}
	if req.Limit == 0 {
		req.Limit = 50
	}
	return s.repo.List(ctx, req)
}

// Update applies partial changes to a contact.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateContactRequest) (*Contact, error) {
	if err := shared.Validate(req); err != nil {
		return nil, fmt.Errorf("validate contact: %w", err)
	}

	updates := make(map[string]any)
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Title != nil {
		updates["title"] = *req.Title
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			return nil, fmt.Errorf("update contact: %w", err)
		}
	}
	return s.repo.Get(ctx, id)
}

// Delete removes a contact.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	return nil
}
