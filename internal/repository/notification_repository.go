package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quickdesk/helpdesk-api/internal/domain"
)

// NotificationRepository is the outbound notification queue. Records are
// appended with sent=false; an external consumer drains and marks them.
type NotificationRepository interface {
	Enqueue(ctx context.Context, notification *domain.Notification) error
	ListPending(ctx context.Context, limit int) ([]domain.Notification, error)
	MarkSent(ctx context.Context, id string) error
}

type notificationRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository instantiates a Postgres-backed repository.
func NewNotificationRepository(pool *pgxpool.Pool) NotificationRepository {
	return &notificationRepository{pool: pool}
}

func (r *notificationRepository) Enqueue(ctx context.Context, notification *domain.Notification) error {
	const query = `
        INSERT INTO notifications (recipient, subject, body, type, ticket_id, sent)
        VALUES ($1,$2,$3,$4,$5,FALSE)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		notification.To,
		notification.Subject,
		notification.Body,
		notification.Type,
		notification.TicketID,
	).Scan(&notification.ID, &notification.CreatedAt)
}

func (r *notificationRepository) ListPending(ctx context.Context, limit int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = 100
	}
	const query = `
        SELECT id, recipient, subject, body, type, ticket_id, sent, created_at
        FROM notifications WHERE NOT sent ORDER BY created_at ASC LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var notification domain.Notification
		if err := rows.Scan(
			&notification.ID,
			&notification.To,
			&notification.Subject,
			&notification.Body,
			&notification.Type,
			&notification.TicketID,
			&notification.Sent,
			&notification.CreatedAt,
		); err != nil {
			return nil, err
		}
		notifications = append(notifications, notification)
	}
	return notifications, rows.Err()
}

func (r *notificationRepository) MarkSent(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE notifications SET sent=TRUE WHERE id=$1`, id)
	if err != nil {
		if invalidIDErr(err) {
			return ErrNotFound
		}
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
