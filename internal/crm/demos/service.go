package demos

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vantage-crm/vantage-crm/internal/shared"
)

// Service wraps demo scheduling rules.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create schedules a new demo.
func (s *Service) Create(ctx context.Context, req CreateDemoRequest, createdBy uuid.UUID) (*Demo, error) {
	if err := shared.Validate(req); err != nil {
		return nil, fmt.Errorf("validate demo: %w", err)
	}
	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		return nil, fmt.Errorf("parse account id: %w", err)
	}
	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		return nil, fmt.Errorf("parse scheduled_at: %w", err)
	}

	demo := Demo{
		ID:          uuid.New(),
		AccountID:   accountID,
		ScheduledAt: scheduledAt,
		Status:      StatusScheduled,
		Summary:     req.Summary,
		CreatedBy:   createdBy,
	}
	if req.ContactID != nil {
		contactID, err := uuid.Parse(*req.ContactID)
		if err != nil {
			return nil, fmt.Errorf("parse contact id: %w", err)
		}
		demo.ContactID = &contactID
	}
	if err := s.repo.Create(ctx, demo); err != nil {
		return nil, fmt.Errorf("create demo: %w", err)
	}
	return &demo, nil
}

// Get fetches a demo by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Demo, error) {
	return s.repo.Get(ctx, id)
}

// List returns demos matching the filter.
func (s *Service) List(ctx context.Context, req ListDemosRequest) ([]Demo, int, error) {
	if err := shared.Validate(req); err != nil {
		return nil, 0, fmt.Errorf("validate list request: %w", err)
	}
	if req.Limit == 0 {
		req.Limit = 50
	}
	return s.repo.List(ctx, req)
}

// Update applies partial changes to a demo.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateDemoRequest) (*Demo, error) {
	if err := shared.Validate(req); err != nil {
		return nil, fmt.Errorf("validate demo: %w", err)
	}

	updates := make(map[string]any)
	if req.ScheduledAt != nil {
		scheduledAt, err := time.Parse(time.RFC3339, *req.ScheduledAt)
		if err != nil {
			return nil, fmt.Errorf("parse scheduled_at: %w", err)
		}
		updates["scheduled_at"] = scheduledAt
	}
	if req.Status != nil {
		if !ValidStatus(*req.Status) {
			return nil, fmt.Errorf("unknown demo status %q", *req.Status)
		}
		updates["status"] = *req.Status
	}
	if req.Summary != nil {
		updates["summary"] = *req.Summary
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			return nil, fmt.Errorf("update demo: %w", err)
		}
	}
	return s.repo.Get(ctx, id)
}

// Delete removes a demo.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete demo: %w", err)
	}
	return nil
}
