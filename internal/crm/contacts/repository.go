package contacts

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

// Repository defines persistence operations for contacts.
type Repository interface {
	Get(ctx context.Context, id uuid.UUID) (*Contact, error)
	List(ctx context.Context, req ListContactsRequest) ([]Contact, int, error)
	Create(ctx context.Context, contact Contact) error
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

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*Contact, error) {
	const query = `
		SELECT id, account_id, first_name, last_name, email, phone, title, created_by, created_at, updated_at
		FROM contacts
		WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	contact, err := scanContact(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return contact, nil
}

func (r *repository) List(ctx context.Context, req ListContactsRequest) ([]Contact, int, error) {
	var conditions []string
	var args []any
	argPos := 1

	if req.AccountID != nil {
		conditions = append(conditions, fmt.Sprintf("account_id = $%d", argPos))
		args = append(args, *req.AccountID)
		argPos++
	}
	if req.Search != nil && *req.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(first_name ILIKE $%d OR last_name ILIKE $%d OR email ILIKE $%d)", argPos, argPos, argPos))
		args = append(args, "%"+*req.Search+"%")
		argPos++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + conditions[0]
		for i := 1; i < len(conditions); i++ {
			whereClause += " AND " + conditions[i]
		}
	}

	countQuery := "SELECT COUNT(*) FROM contacts " + whereClause
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, account_id, first_name, last_name, email, phone, title, created_by, created_at, updated_at
		FROM contacts ` + whereClause + `
		ORDER BY last_name, first_name
		LIMIT $` + strconv.Itoa(argPos) + ` OFFSET $` + strconv.Itoa(argPos+1)
	args = append(args, req.Limit, req.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []Contact
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *contact)
	}
	return result, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, contact Contact) error {
	const query = `
		INSERT INTO contacts (id, account_id, first_name, last_name, email, phone, title, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err := r.pool.Exec(ctx, query,
		contact.ID, contact.AccountID, contact.FirstName, contact.LastName,
		nullText(contact.Email), nullText(contact.Phone), nullText(contact.Title),
		contact.CreatedBy,
	)
	return err
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	query := "UPDATE contacts SET updated_at = NOW()"
	args := []any{id}
	pos := 2
	for _, col := range []string{"first_name", "last_name", "email", "phone", "title"} {
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
	const query = `DELETE FROM contacts WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func scanContact(row pgx.Row) (*Contact, error) {
	var (
		contact              Contact
		email, phone, title  pgtype.Text
		createdAt, updatedAt pgtype.Timestamptz
	)
	err := row.Scan(
		&contact.ID, &contact.AccountID, &contact.FirstName, &contact.LastName,
		&email, &phone, &title, &contact.CreatedBy, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	if email.Valid {
		contact.Email = &email.String
	}
	if phone.Valid {
		contact.Phone = &phone.String
	}
	if title.Valid {
		contact.Title = &title.String
	}
	if createdAt.Valid {
		contact.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		contact.UpdatedAt = updatedAt.Time
	}
	return &contact, nil
}

func nullText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}
