package demos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vantage-crm/vantage-crm/internal/shared"
)

type mockRepo struct {
	demos map[uuid.UUID]*Demo
}

func newMockRepo() *mockRepo {
	return &mockRepo{demos: make(map[uuid.UUID]*Demo)}
}

func (m *mockRepo) Get(ctx context.Context, id uuid.UUID) (*Demo, error) {
	if demo, ok := m.demos[id]; ok {
		return demo, nil
	}
	return nil, shared.ErrNotFound
}

func (m *mockRepo) List(ctx context.Context, req ListDemosRequest) ([]Demo, int, error) {
	var result []Demo
	for _, demo := range m.demos {
		if req.Status != nil && demo.Status != *req.Status {
			continue
		}
		result = append(result, *demo)
	}
	return result, len(result), nil
}

func (m *mockRepo) Create(ctx context.Context, demo Demo) error {
	m.demos[demo.ID] = &demo
	return nil
}

func (m *mockRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	demo, ok := m.demos[id]
	if !ok {
		return shared.ErrNotFound
	}
	if status, ok := updates["status"].(string); ok {
		demo.Status = status
	}
	if at, ok := updates["scheduled_at"].(time.Time); ok {
		demo.ScheduledAt = at
	}
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.demos[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.demos, id)
	return nil
}

func TestCreateDemoStartsScheduled(t *testing.T) {
	repo := newMockRepo()
	service := NewService(repo)
	creator := uuid.New()

	demo, err := service.Create(context.Background(), CreateDemoRequest{
		AccountID:   uuid.NewString(),
		ScheduledAt: "2026-09-15T14:00:00Z",
	}, creator)

	require.NoError(t, err)
	assert.Equal(t, StatusScheduled, demo.Status)
	assert.Equal(t, creator, demo.CreatedBy)
	assert.Equal(t, time.Date(2026, 9, 15, 14, 0, 0, 0, time.UTC), demo.ScheduledAt)
}

func TestCreateDemoRejectsBadTimestamp(t *testing.T) {
	service := NewService(newMockRepo())

	_, err := service.Create(context.Background(), CreateDemoRequest{
		AccountID:   uuid.NewString(),
		ScheduledAt: "next tuesday",
	}, uuid.New())

	assert.Error(t, err)
}

func TestUpdateDemoStatusTransition(t *testing.T) {
	repo := newMockRepo()
	service := NewService(repo)

	demo, err := service.Create(context.Background(), CreateDemoRequest{
		AccountID:   uuid.NewString(),
		ScheduledAt: "2026-09-15T14:00:00Z",
	}, uuid.New())
	require.NoError(t, err)

	completed := StatusCompleted
	updated, err := service.Update(context.Background(), demo.ID, UpdateDemoRequest{Status: &completed})
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, updated.Status)

	bogus := "rescheduled"
	_, err = service.Update(context.Background(), demo.ID, UpdateDemoRequest{Status: &bogus})
	assert.Error(t, err)
}

func TestValidStatus(t *testing.T) {
	for _, status := range []string{StatusScheduled, StatusCompleted, StatusCanceled, StatusNoShow} {
		assert.True(t, ValidStatus(status), status)
	}
	assert.False(t, ValidStatus("pending"))
}
