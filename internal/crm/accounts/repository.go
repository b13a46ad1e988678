package accounts

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vantage-crm/vantage-crm/internal/platform/db"
	"github.com/vantage-crm/vantage-crm/internal/shared"
)

// Repository defines persistence operations for accounts.
type Repository interface {
	Get(ctx context.Context, id uuid.UUID) (*Account, error)
	List(ctx context.Context, req ListAccountsRequest) ([]Account, int, error)
	Create(ctx context.Context, account Account) error
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

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*Account, error) {
	const query = `
		SELECT id, name, industry, website, phone, city, country, created_by, created_at, updated_at
		FROM accounts
		WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return account, nil
}

func (r *repository) List(ctx context.Context, req ListAccountsRequest) ([]Account, int, error) {
	var conditions []string
	var args []any
	argPos := 1

	if req.Search != nil && *req.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR industry ILIKE $%d)", argPos, argPos))
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

	countQuery := "SELECT COUNT(*) FROM accounts " + whereClause
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT id, name, industry, website, phone, city, country, created_by, created_at, updated_at
		FROM accounts
		%s
		ORDER BY name
		LIMIT $%d OFFSET $%d
	`, whereClause, argPos, argPos+1)
	args = append(args, req.Limit, req.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *account)
	}
	return result, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, account Account) error {
	const query = `
		INSERT INTO accounts (id, name, industry, website, phone, city, country, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err := r.pool.Exec(ctx, query,
		account.ID, account.Name,
		nullText(account.Industry), nullText(account.Website), nullText(account.Phone),
		nullText(account.City), nullText(account.Country),
		account.CreatedBy,
	)
	return err
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	query := "UPDATE accounts SET updated_at = NOW()"
	args := []any{id}
	pos := 2
	for _, col := range []string{"name", "industry", "website", "phone", "city", "country"} {
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

// Delete removes an account together with its dependent rows. Children
// and the account itself go in one transaction so a failure partway
// leaves nothing half-deleted.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		for _, table := range []string{"notes", "demos", "opportunities", "contacts"} {
			if _, err := tx.Exec(ctx, "DELETE FROM "+table+" WHERE account_id = $1", id); err != nil {
				return err
			}
		}
		tag, err := tx.Exec(ctx, "DELETE FROM accounts WHERE id = $1", id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func scanAccount(row pgx.Row) (*Account, error) {
	var (
		account                  Account
		industry, website, phone pgtype.Text
		city, country            pgtype.Text
		createdAt, updatedAt     pgtype.Timestamptz
	)
	err := row.Scan(
		&account.ID, &account.Name, &industry, &website, &phone,
		&city, &country, &account.CreatedBy, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	if industry.Valid {
		account.Industry = &industry.String
	}
	if website.Valid {
		account.Website = &website.String
	}
	if phone.Valid {
		account.Phone = &phone.String
	}
	if city.Valid {
		account.City = &city.String
	}
	if country.Valid {
		account.Country = &country.String
	}
	if createdAt.Valid {
		account.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		account.UpdatedAt = updatedAt.Time
	}
	return &account, nil
}

func nullText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}
