package accounts

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vantage-crm/vantage-crm/internal/shared"
)

// Service wraps account business rules.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stores a new account.
func (s *Service) Create(ctx context.Context, req CreateAccountRequest, createdBy uuid.UUID) (*Account, error) {
	if err := shared.Validate(req); err != nil {
		return nil, fmt.Errorf("validate account: %w", err)
	}
	account := Account{
		ID:        uuid.New(),
		Name:      req.Name,
		Industry:  req.Industry,
		Website:   req.Website,
		Phone:     req.Phone,
		City:      req.City,
		Country:   req.Country,
		CreatedBy: createdBy,
	}
	if err := s.repo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	return &account, nil
}

// Get fetches an account by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Account, error) {
	return s.repo.Get(ctx, id)
}

// List returns accounts matching the filter. Accounts are shared team
// data; they are not owner-scoped.
func (s *Service) List(ctx context.Context, req ListAccountsRequest) ([]Account, int, error) {
	if err := shared.Validate(req); err != nil {
		return nil, 0, fmt.Errorf("validate list request: %w", err)
	}
	if req.Limit == 0 {
		req.Limit = 50
	}
	return s.repo.List(ctx, req)
}

// Update applies partial changes to an account.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateAccountRequest) (*Account, error) {
	if err := shared.Validate(req); err != nil {
		return nil, fmt.Errorf("validate account: %w", err)
	}

	updates := make(map[string]any)
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Industry != nil {
		updates["industry"] = *req.Industry
	}
	if req.Website != nil {
		updates["website"] = *req.Website
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.Country != nil {
		updates["country"] = *req.Country
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			return nil, fmt.Errorf("update account: %w", err)
		}
	}
	return s.repo.Get(ctx, id)
}

// Delete removes an account.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}
