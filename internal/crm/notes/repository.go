package notes

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

// Repository defines persistence operations for notes.
type Repository interface {
	Get(ctx context.Context, id uuid.UUID) (*Note, error)
	List(ctx context.Context, q authz.ListQuery, limit, offset int) ([]Note, int, error)
	Create(ctx context.Context, note Note) error
	Update(ctx context.Context, id uuid.UUID, body string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL-backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*Note, error) {
	const query = `
		SELECT id, account_id, body, created_by, created_at, updated_at
		FROM notes
		WHERE id = $1
	`
	var (
		note                 Note
		createdAt, updatedAt pgtype.Timestamptz
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&note.ID, &note.AccountID, &note.Body, &note.CreatedBy, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if createdAt.Valid {
		note.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		note.UpdatedAt = updatedAt.Time
	}
	return &note, nil
}

func (r *repository) List(ctx context.Context, q authz.ListQuery, limit, offset int) ([]Note, int, error) {
	where, args := q.Clause()

	countQuery := "SELECT COUNT(*) FROM notes " + where
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, account_id, body, created_by, created_at, updated_at
		FROM notes ` + where + `
		ORDER BY created_at DESC
		LIMIT $` + strconv.Itoa(q.NextArg()) + ` OFFSET $` + strconv.Itoa(q.NextArg()+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []Note
	for rows.Next() {
		var (
			note                 Note
			createdAt, updatedAt pgtype.Timestamptz
		)
		if err := rows.Scan(&note.ID, &note.AccountID, &note.Body, &note.CreatedBy, &createdAt, &updatedAt); err != nil {
			return nil, 0, err
		}
		if createdAt.Valid {
			note.CreatedAt = createdAt.Time
		}
		if updatedAt.Valid {
			note.UpdatedAt = updatedAt.Time
		}
		result = append(result, note)
	}
	return result, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, note Note) error {
	const query = `
		INSERT INTO notes (id, account_id, body, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	_, err := r.pool.Exec(ctx, query, note.ID, note.AccountID, note.Body, note.CreatedBy)
	return err
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, body string) error {
	const query = `UPDATE notes SET body = $2, updated_at = NOW() WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id, body)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM notes WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
