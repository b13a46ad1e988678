package opportunities

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vantage-crm/vantage-crm/internal/authz"
	"github.com/vantage-crm/vantage-crm/internal/shared"
)

// Service wraps opportunity business rules.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stores a new opportunity owned by createdBy.
func (s *Service) Create(ctx context.Context, req CreateOpportunityRequest, createdBy uuid.UUID) (*Opportunity, error) {
	if err := shared.Validate(req); err != nil {
		return nil, fmt.Errorf("validate opportunity: %w", err)
	}
	if !ValidStage(req.Stage) {
		return nil, fmt.Errorf("unknown stage %q", req.Stage)
	}
	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		return nil, fmt.Errorf("parse account id: %w", err)
	}

	opp := Opportunity{
		ID:        uuid.New(),
		AccountID: accountID,
		Name:      req.Name,
		Stage:     req.Stage,
		Amount:    req.Amount,
		CreatedBy: createdBy,
	}
	if req.CloseDate != nil {
		parsed, err := time.Parse("2006-01-02", *req.CloseDate)
		if err != nil {
			return nil, fmt.Errorf("parse close date: %w", err)
		}
		opp.CloseDate = &parsed
	}

	if err := s.repo.Create(ctx, opp); err != nil {
		return nil, fmt.Errorf("create opportunity: %w", err)
	}
	return &opp, nil
}

// Get fetches an opportunity by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Opportunity, error) {
	return s.repo.Get(ctx, id)
}

// List returns opportunities visible to the caller, owner-scoped for
// non-administrators.
func (s *Service) List(ctx context.Context, req ListOpportunitiesRequest, principal authz.Principal) ([]Opportunity, int, error) {
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
	if req.Stage != nil {
		q = q.Where("stage = ?", *req.Stage)
	}
	q = authz.ScopeToOwner(q, principal.UserID, principal.Role)

	return s.repo.List(ctx, q, limit, req.Offset)
}

// Update applies partial changes to an opportunity.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateOpportunityRequest) (*Opportunity, error) {
	if err := shared.Validate(req); err != nil {
		return nil, fmt.Errorf("validate opportunity: %w", err)
	}

	updates := make(map[string]any)
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Stage != nil {
		if !ValidStage(*req.Stage) {
			return nil, fmt.Errorf("unknown stage %q", *req.Stage)
		}
		updates["stage"] = *req.Stage
	}
	if req.Amount != nil {
		updates["amount"] = *req.Amount
	}
	if req.CloseDate != nil {
		parsed, err := time.Parse("2006-01-02", *req.CloseDate)
		if err != nil {
			return nil, fmt.Errorf("parse close date: %w", err)
		}
		updates["close_date"] = parsed
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			return nil, fmt.Errorf("update opportunity: %w", err)
		}
	}
	return s.repo.Get(ctx, id)
}

// Delete removes an opportunity.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete opportunity: %w", err)
	}
	return nil
}

// NewOwnershipLoader adapts the repository to the authz loader contract.
func NewOwnershipLoader(repo Repository) authz.LoaderFunc {
	return func(ctx context.Context, id uuid.UUID) (authz.Owned, error) {
		opp, err := repo.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		return opp, nil
	}
}
