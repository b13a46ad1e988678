package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListQueryEmptyClause(t *testing.T) {
	clause, args := ListQuery{}.Clause()

	assert.Empty(t, clause)
	assert.Nil(t, args)
}

func TestListQueryExpandsPlaceholders(t *testing.T) {
	accountID := uuid.New()
	userID := uuid.New()

	q := ListQuery{}.
		Where("account_id = ?", accountID).
		Where("created_by = ?", userID)

	clause, args := q.Clause()
	assert.Equal(t, "WHERE account_id = $1 AND created_by = $2", clause)
	require.Len(t, args, 2)
	assert.Equal(t, accountID, args[0])
	assert.Equal(t, userID, args[1])
	assert.Equal(t, 3, q.NextArg())
}

func TestListQueryWhereDoesNotMutateReceiver(t *testing.T) {
	base := ListQuery{}.Where("account_id = ?", uuid.New())

	scoped := base.Where("created_by = ?", uuid.New())
	other := base.Where("stage = ?", "won")

	baseClause, baseArgs := base.Clause()
	assert.Equal(t, "WHERE account_id = $1", baseClause)
	assert.Len(t, baseArgs, 1)

	scopedClause, _ := scoped.Clause()
	assert.Equal(t, "WHERE account_id = $1 AND created_by = $2", scopedClause)

	otherClause, _ := other.Clause()
	assert.Equal(t, "WHERE account_id = $1 AND stage = $2", otherClause)
}

func TestScopeToOwnerAdminSeesEverything(t *testing.T) {
	id := uuid.New()
	base := ListQuery{}.Where("account_id = ?", uuid.New())

	scoped := ScopeToOwner(base, &id, "Admin")

	clause, args := scoped.Clause()
	assert.Equal(t, "WHERE account_id = $1", clause)
	assert.Len(t, args, 1)
}

func TestScopeToOwnerNarrowsToCreator(t *testing.T) {
	id := uuid.New()

	scoped := ScopeToOwner(ListQuery{}, &id, "Basic")

	clause, args := scoped.Clause()
	assert.Equal(t, "WHERE created_by = $1", clause)
	require.Len(t, args, 1)
	assert.Equal(t, id, args[0])
}

func TestScopeToOwnerWithoutUserMatchesNothing(t *testing.T) {
	scoped := ScopeToOwner(ListQuery{}, nil, "Basic")

	clause, args := scoped.Clause()
	assert.Equal(t, "WHERE FALSE", clause)
	assert.Empty(t, args)
}
