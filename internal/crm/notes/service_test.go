package notes

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vantage-crm/vantage-crm/internal/authz"
	"github.com/vantage-crm/vantage-crm/internal/shared"
)

type mockRepo struct {
	notes     map[uuid.UUID]*Note
	lastQuery authz.ListQuery
	listed    []Note
	getCalls  int
}

func newMockRepo() *mockRepo {
	return &mockRepo{notes: make(map[uuid.UUID]*Note)}
}

func (m *mockRepo) Get(ctx context.Context, id uuid.UUID) (*Note, error) {
	m.getCalls++
	if note, ok := m.notes[id]; ok {
		return note, nil
	}
	return nil, shared.ErrNotFound
}

func (m *mockRepo) List(ctx context.Context, q authz.ListQuery, limit, offset int) ([]Note, int, error) {
	m.lastQuery = q
	return m.listed, len(m.listed), nil
}

func (m *mockRepo) Create(ctx context.Context, note Note) error {
	m.notes[note.ID] = &note
	return nil
}

func (m *mockRepo) Update(ctx context.Context, id uuid.UUID, body string) error {
	note, ok := m.notes[id]
	if !ok {
		return shared.ErrNotFound
	}
	note.Body = body
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.notes[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.notes, id)
	return nil
}

func TestCreateNoteRecordsCreator(t *testing.T) {
	repo := newMockRepo()
	service := NewService(repo)
	creator := uuid.New()
	accountID := uuid.New()

	note, err := service.Create(context.Background(), CreateNoteRequest{
		AccountID: accountID.String(),
		Body:      "met with procurement lead",
	}, creator)

	require.NoError(t, err)
	assert.Equal(t, creator, note.CreatedBy)
	assert.Equal(t, creator, note.OwnerID())
	assert.Equal(t, accountID, note.AccountID)
	assert.Contains(t, repo.notes, note.ID)
}

func TestCreateNoteRejectsInvalidInput(t *testing.T) {
	service := NewService(newMockRepo())

	_, err := service.Create(context.Background(), CreateNoteRequest{AccountID: "nope", Body: "x"}, uuid.New())
	assert.Error(t, err)

	_, err = service.Create(context.Background(), CreateNoteRequest{AccountID: uuid.NewString()}, uuid.New())
	assert.Error(t, err)
}

func TestListScopesToCreator(t *testing.T) {
	repo := newMockRepo()
	service := NewService(repo)
	userID := uuid.New()

	_, _, err := service.List(context.Background(), ListNotesRequest{}, authz.Principal{
		Authenticated: true,
		UserID:        &userID,
		Role:          "Basic",
	})
	require.NoError(t, err)

	clause, args := repo.lastQuery.Clause()
	assert.Equal(t, "WHERE created_by = $1", clause)
	require.Len(t, args, 1)
	assert.Equal(t, userID, args[0])
}

func TestListAdminIsUnscoped(t *testing.T) {
	repo := newMockRepo()
	service := NewService(repo)
	userID := uuid.New()

	_, _, err := service.List(context.Background(), ListNotesRequest{}, authz.Principal{
		Authenticated: true,
		UserID:        &userID,
		Role:          "Admin",
	})
	require.NoError(t, err)

	clause, args := repo.lastQuery.Clause()
	assert.Empty(t, clause)
	assert.Empty(t, args)
}

func TestListCombinesAccountFilterWithScope(t *testing.T) {
	repo := newMockRepo()
	service := NewService(repo)
	userID := uuid.New()
	accountID := uuid.New()

	_, _, err := service.List(context.Background(), ListNotesRequest{AccountID: &accountID}, authz.Principal{
		Authenticated: true,
		UserID:        &userID,
		Role:          "Basic",
	})
	require.NoError(t, err)

	clause, args := repo.lastQuery.Clause()
	assert.Equal(t, "WHERE account_id = $1 AND created_by = $2", clause)
	require.Len(t, args, 2)
	assert.Equal(t, accountID, args[0])
	assert.Equal(t, userID, args[1])
}

func TestListWithoutUserMatchesNothing(t *testing.T) {
	repo := newMockRepo()
	service := NewService(repo)

	_, _, err := service.List(context.Background(), ListNotesRequest{}, authz.Principal{Authenticated: true})
	require.NoError(t, err)

	clause, _ := repo.lastQuery.Clause()
	assert.Equal(t, "WHERE FALSE", clause)
}

func TestUpdateNoteReplacesBody(t *testing.T) {
	repo := newMockRepo()
	service := NewService(repo)
	creator := uuid.New()

	note, err := service.Create(context.Background(), CreateNoteRequest{
		AccountID: uuid.NewString(),
		Body:      "initial",
	}, creator)
	require.NoError(t, err)

	updated, err := service.Update(context.Background(), note.ID, UpdateNoteRequest{Body: "revised"})
	require.NoError(t, err)
	assert.Equal(t, "revised", updated.Body)
}

func TestDeleteMissingNote(t *testing.T) {
	service := NewService(newMockRepo())

	err := service.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestOwnershipLoaderAdaptsRepository(t *testing.T) {
	repo := newMockRepo()
	creator := uuid.New()
	note := Note{ID: uuid.New(), AccountID: uuid.New(), Body: "x", CreatedBy: creator}
	repo.notes[note.ID] = &note

	loader := NewOwnershipLoader(repo)

	owned, err := loader(context.Background(), note.ID)
	require.NoError(t, err)
	assert.Equal(t, creator, owned.OwnerID())

	_, err = loader(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
