package leaderboard

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository reads aggregated sales figures.
type Repository interface {
	TopSellers(ctx context.Context, limit int) ([]Entry, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL-backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) TopSellers(ctx context.Context, limit int) ([]Entry, error) {
	const query = `
		SELECT u.id, u.display_name, COUNT(o.id) AS won_deals, COALESCE(SUM(o.amount), 0) AS revenue
		FROM opportunities o
		JOIN users u ON u.id = o.created_by
		WHERE o.stage = 'won'
		GROUP BY u.id, u.display_name
		ORDER BY revenue DESC, won_deals DESC
		LIMIT $1
	`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry   Entry
			userID  uuid.UUID
			revenue pgtype.Numeric
		)
		if err := rows.Scan(&userID, &entry.DisplayName, &entry.WonDeals, &revenue); err != nil {
			return nil, err
		}
		entry.UserID = userID
		if revenue.Valid {
			val, err := revenue.Float64Value()
			if err != nil {
				return nil, err
			}
			entry.Revenue = val.Float64
		}
		entry.Rank = len(entries) + 1
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
