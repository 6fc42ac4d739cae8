package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quickdesk/helpdesk-api/internal/domain"
)

// ShareRepository encapsulates ticket share persistence. Shares are
// append-only; there is no update or delete.
type ShareRepository interface {
	Create(ctx context.Context, share *domain.TicketShare) error
	// ListBySharedWith returns shares naming the agent, newest first.
	ListBySharedWith(ctx context.Context, agentID string) ([]domain.TicketShare, error)
}

type shareRepository struct {
	pool *pgxpool.Pool
}

// NewShareRepository instantiates a Postgres-backed repository.
func NewShareRepository(pool *pgxpool.Pool) ShareRepository {
	return &shareRepository{pool: pool}
}

func (r *shareRepository) Create(ctx context.Context, share *domain.TicketShare) error {
	const query = `
        INSERT INTO ticket_shares (ticket_id, shared_by, shared_with, note)
        VALUES ($1,$2,$3,$4)
        RETURNING id, shared_at`
	return r.pool.QueryRow(ctx, query,
		share.TicketID,
		share.SharedBy,
		share.SharedWith,
		share.Note,
	).Scan(&share.ID, &share.SharedAt)
}

func (r *shareRepository) ListBySharedWith(ctx context.Context, agentID string) ([]domain.TicketShare, error) {
	const query = `
        SELECT id, ticket_id, shared_by, shared_with, note, shared_at
        FROM ticket_shares WHERE $1 = ANY(shared_with) ORDER BY shared_at DESC`
	rows, err := r.pool.Query(ctx, query, agentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shares []domain.TicketShare
	for rows.Next() {
		var share domain.TicketShare
		if err := rows.Scan(
			&share.ID,
			&share.TicketID,
			&share.SharedBy,
			&share.SharedWith,
			&share.Note,
			&share.SharedAt,
		); err != nil {
			return nil, err
		}
		shares = append(shares, share)
	}
	return shares, rows.Err()
}
