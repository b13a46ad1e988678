package opportunities

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vantage-crm/vantage-crm/internal/authz"
	"github.com/vantage-crm/vantage-crm/internal/shared"
)

// Repository defines persistence operations for opportunities.
type Repository interface {
	Get(ctx context.Context, id uuid.UUID) (*Opportunity, error)
	List(ctx context.Context, q authz.ListQuery, limit, offset int) ([]Opportunity, int, error)
	Create(ctx context.Context, opp Opportunity) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL-backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*Opportunity, error) {
	const query = `
		SELECT id, account_id, name, stage, amount, close_date, created_by, created_at, updated_at
		FROM opportunities
		WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	opp, err := scanOpportunity(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return opp, nil
}

func (r *repository) List(ctx context.Context, q authz.ListQuery, limit, offset int) ([]Opportunity, int, error) {
	where, args := q.Clause()

	countQuery := "SELECT COUNT(*) FROM opportunities " + where
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, account_id, name, stage, amount, close_date, created_by, created_at, updated_at
		FROM opportunities ` + where + `
		ORDER BY updated_at DESC
		LIMIT $` + strconv.Itoa(q.NextArg()) + ` OFFSET $` + strconv.Itoa(q.NextArg()+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []Opportunity
	for rows.Next() {
		opp, err := scanOpportunity(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *opp)
	}
	return result, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, opp Opportunity) error {
	const query = `
		INSERT INTO opportunities (id, account_id, name, stage, amount, close_date, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	var closeDate pgtype.Date
	if opp.CloseDate != nil {
		closeDate = pgtype.Date{Time: *opp.CloseDate, Valid: true}
	}
	_, err := r.pool.Exec(ctx, query, opp.ID, opp.AccountID, opp.Name, opp.Stage, opp.Amount, closeDate, opp.CreatedBy)
	return err
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	query := "UPDATE opportunities SET updated_at = NOW()"
	args := []any{id}
	pos := 2
	for _, col := range []string{"name", "stage", "amount", "close_date"} {
		if val, ok := updates[col]; ok {
			query += ", " + col + " = $" + strconv.Itoa(pos)
			args = append(args, val)
			pos++
		}
	}
	query += " WHERE id = $1"

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM opportunities WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func scanOpportunity(row pgx.Row) (*Opportunity, error) {
	var (
		opp                  Opportunity
		amount               pgtype.Numeric
		closeDate            pgtype.Date
		createdAt, updatedAt pgtype.Timestamptz
	)
	err := row.Scan(
		&opp.ID, &opp.AccountID, &opp.Name, &opp.Stage, &amount,
		&closeDate, &opp.CreatedBy, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	if amount.Valid {
		f, _ := amount.Float64Value()
		opp.Amount = f.Float64
	}
	if closeDate.Valid {
		d := closeDate.Time
		opp.CloseDate = &d
	}
	if createdAt.Valid {
		opp.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		opp.UpdatedAt = updatedAt.Time
	}
	return &opp, nil
}
