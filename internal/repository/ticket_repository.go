package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quickdesk/helpdesk-api/internal/domain"
)

// TicketFilter captures listing parameters. Equality filters and the search
// term are all applied before the total is computed, so pagination counts
// always reflect the fully filtered set.
type TicketFilter struct {
	UserID          *string
	AgentID         *string
	Status          *domain.TicketStatus
	Category        *string
	Priority        *domain.TicketPriority
	Search          *string
	SearchUserEmail bool
	SortBy          string
	SortDesc        bool
	Limit           int
	Offset          int
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	Update(ctx context.Context, ticket *domain.Ticket) error
	List(ctx context.Context, filter TicketFilter) ([]domain.Ticket, int, error)
	// Snapshot returns every ticket matching the scope, unsorted and
	// unpaginated, for dashboard aggregation.
	Snapshot(ctx context.Context, userID, agentID *string) ([]domain.Ticket, error)
	// IncrementReplyCount atomically bumps reply_count and touches updated_at.
	IncrementReplyCount(ctx context.Context, id string) error
	// AddVote atomically bumps the matching vote counter.
	AddVote(ctx context.Context, id string, vote domain.VoteType) error
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates a Postgres-backed repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, title, description, status, category, priority, user_id, user_email,
               agent_id, agent_email, attachments, tags, upvotes, downvotes, reply_count,
               created_at, updated_at`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	attachments, err := json.Marshal(ticket.Attachments)
	if err != nil {
		return err
	}
	const query = `
        INSERT INTO tickets (title, description, status, category, priority, user_id, user_email,
                             agent_id, agent_email, attachments, tags, upvotes, downvotes, reply_count)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		ticket.Title,
		ticket.Description,
		ticket.Status,
		ticket.Category,
		ticket.Priority,
		ticket.UserID,
		ticket.UserEmail,
		ticket.AgentID,
		ticket.AgentEmail,
		attachments,
		ticket.Tags,
		ticket.Upvotes,
		ticket.Downvotes,
		ticket.ReplyCount,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE id=$1`, ticketColumns)
	row := r.pool.QueryRow(ctx, query, id)
	ticket, err := scanTicket(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || invalidIDErr(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return ticket, nil
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET status=$1, agent_id=$2, agent_email=$3, updated_at=NOW()
        WHERE id=$4
        RETURNING updated_at`
	err := r.pool.QueryRow(ctx, query,
		ticket.Status,
		ticket.AgentID,
		ticket.AgentEmail,
		ticket.ID,
	).Scan(&ticket.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) || invalidIDErr(err) {
		return ErrNotFound
	}
	return err
}

func (r *ticketRepository) List(ctx context.Context, filter TicketFilter) ([]domain.Ticket, int, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		clauses = append(clauses, fmt.Sprintf("user_id=$%d", len(args)))
	}
	if filter.AgentID != nil {
		args = append(args, *filter.AgentID)
		clauses = append(clauses, fmt.Sprintf("agent_id=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		clauses = append(clauses, fmt.Sprintf("category=$%d", len(args)))
	}
	if filter.Priority != nil {
		args = append(args, *filter.Priority)
		clauses = append(clauses, fmt.Sprintf("priority=$%d", len(args)))
	}
	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.Search)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clause := fmt.Sprintf("(LOWER(title) LIKE %s OR LOWER(description) LIKE %s", placeholder, placeholder)
		if filter.SearchUserEmail {
			clause += fmt.Sprintf(" OR LOWER(user_email) LIKE %s", placeholder)
		}
		clause += ")"
		clauses = append(clauses, clause)
	}

	where := strings.Join(clauses, " AND ")

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM tickets WHERE %s`, where)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}

	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE %s ORDER BY %s %s LIMIT %d OFFSET %d`,
		ticketColumns, where, TicketSortColumn(filter.SortBy), direction, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	tickets, err := scanTickets(rows)
	if err != nil {
		return nil, 0, err
	}
	return tickets, total, nil
}

func (r *ticketRepository) Snapshot(ctx context.Context, userID, agentID *string) ([]domain.Ticket, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if userID != nil {
		args = append(args, *userID)
		clauses = append(clauses, fmt.Sprintf("user_id=$%d", len(args)))
	}
	if agentID != nil {
		args = append(args, *agentID)
		clauses = append(clauses, fmt.Sprintf("agent_id=$%d", len(args)))
	}
	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE %s`, ticketColumns, strings.Join(clauses, " AND "))
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) IncrementReplyCount(ctx context.Context, id string) error {
	const query = `UPDATE tickets SET reply_count = reply_count + 1, updated_at = NOW() WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
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

func (r *ticketRepository) AddVote(ctx context.Context, id string, vote domain.VoteType) error {
	column := "upvotes"
	if vote == domain.VoteDown {
		column = "downvotes"
	}
	query := fmt.Sprintf(`UPDATE tickets SET %s = %s + 1 WHERE id=$1`, column, column)
	cmd, err := r.pool.Exec(ctx, query, id)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTicket(row rowScanner) (*domain.Ticket, error) {
	var ticket domain.Ticket
	var attachments []byte
	if err := row.Scan(
		&ticket.ID,
		&ticket.Title,
		&ticket.Description,
		&ticket.Status,
		&ticket.Category,
		&ticket.Priority,
		&ticket.UserID,
		&ticket.UserEmail,
		&ticket.AgentID,
		&ticket.AgentEmail,
		&attachments,
		&ticket.Tags,
		&ticket.Upvotes,
		&ticket.Downvotes,
		&ticket.ReplyCount,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(attachments) > 0 {
		if err := json.Unmarshal(attachments, &ticket.Attachments); err != nil {
			return nil, err
		}
	}
	return &ticket, nil
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *ticket)
	}
	return result, rows.Err()
}
