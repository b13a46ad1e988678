package demos

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vantage-crm/vantage-crm/internal/shared"
)

// Repository defines persistence operations for demos.
type Repository interface {
	Get(ctx context.Context, id uuid.UUID) (*Demo, error)
	List(ctx context.Context, req ListDemosRequest) ([]Demo, int, error)
	Create(ctx context.Context, demo Demo) error
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

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*Demo, error) {
	const query = `
		SELECT id, account_id, contact_id, scheduled_at, status, summary, created_by, created_at, updated_at
		FROM demos
		WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	demo, err := scanDemo(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return demo, nil
}

func (r *repository) List(ctx context.Context, req ListDemosRequest) ([]Demo, int, error) {
	var conditions []string
	var args []any
	argPos := 1

	if req.AccountID != nil {
		conditions = append(conditions, fmt.Sprintf("account_id = $%d", argPos))
		args = append(args, *req.AccountID)
		argPos++
	}
	if req.Status != nil && *req.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argPos))
		args = append(args, *req.Status)
		argPos++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + conditions[0]
		for i := 1; i < len(conditions); i++ {
			whereClause += " AND " + conditions[i]
		}
	}

	countQuery := "SELECT COUNT(*) FROM demos " + whereClause
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, account_id, contact_id, scheduled_at, status, summary, created_by, created_at, updated_at
		FROM demos ` + whereClause + `
		ORDER BY scheduled_at DESC
		LIMIT $` + strconv.Itoa(argPos) + ` OFFSET $` + strconv.Itoa(argPos+1)
	args = append(args, req.Limit, req.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []Demo
	for rows.Next() {
		demo, err := scanDemo(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *demo)
	}
	return result, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, demo Demo) error {
	const query = `
		INSERT INTO demos (id, account_id, contact_id, scheduled_at, status, summary, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	var contactID pgtype.UUID
	if demo.ContactID != nil {
		contactID = pgtype.UUID{Bytes: *demo.ContactID, Valid: true}
	}
	var summary pgtype.Text
	if demo.Summary != nil {
		summary = pgtype.Text{String: *demo.Summary, Valid: true}
	}
	_, err := r.pool.Exec(ctx, query,
		demo.ID, demo.AccountID, contactID, demo.ScheduledAt, demo.Status, summary, demo.CreatedBy,
	)
	return err
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	query := "UPDATE demos SET updated_at = NOW()"
	args := []any{id}
	pos := 2
	for _, col := range []string{"scheduled_at", "status", "summary"} {
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
	const query = `DELETE FROM demos WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func scanDemo(row pgx.Row) (*Demo, error) {
	var (
		demo                 Demo
		contactID            pgtype.UUID
		scheduledAt          pgtype.Timestamptz
		summary              pgtype.Text
		createdAt, updatedAt pgtype.Timestamptz
	)
	err := row.Scan(
		&demo.ID, &demo.AccountID, &contactID, &scheduledAt, &demo.Status,
		&summary, &demo.CreatedBy, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	if contactID.Valid {
		id := uuid.UUID(contactID.Bytes)
		demo.ContactID = &id
	}
	if scheduledAt.Valid {
		demo.ScheduledAt = scheduledAt.Time
	}
	if summary.Valid {
		demo.Summary = &summary.String
	}
	if createdAt.Valid {
		demo.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		demo.UpdatedAt = updatedAt.Time
	}
	return &demo, nil
}
