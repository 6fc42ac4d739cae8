package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when a record does not exist in the backing store.
// Both the Postgres and the in-memory implementations report misses with it,
// so services stay ignorant of the storage technology.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a uniqueness constraint is violated.
var ErrDuplicate = errors.New("record already exists")

// invalidIDErr reports whether err is Postgres rejecting a malformed uuid
// literal (SQLSTATE 22P02). An id that cannot be parsed can never match a
// row, so lookups report it as a plain miss, matching the in-memory store.
func invalidIDErr(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}

// ticketSortColumns whitelists sortable ticket fields, mapping API names to
// storage columns. Requests naming any other field fall back to the default.
var ticketSortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"priority":  "priority",
	"status":    "status",
	"title":     "title",
}

// TicketSortColumn resolves an API sort field to a column, defaulting to
// created_at.
func TicketSortColumn(field string) string {
	if col, ok := ticketSortColumns[field]; ok {
		return col
	}
	return "created_at"
}

// ValidTicketSortField reports whether the API field name is sortable.
func ValidTicketSortField(field string) bool {
	_, ok := ticketSortColumns[field]
	return ok
}
