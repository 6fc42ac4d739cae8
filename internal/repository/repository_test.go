package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestInvalidIDErrMatchesUUIDCastFailure(t *testing.T) {
	cast := &pgconn.PgError{Code: "22P02", Message: `invalid input syntax for type uuid: "abc"`}
	assert.True(t, invalidIDErr(cast))
	assert.True(t, invalidIDErr(fmt.Errorf("get ticket: %w", cast)))

	assert.False(t, invalidIDErr(nil))
	assert.False(t, invalidIDErr(errors.New("connection reset")))
	assert.False(t, invalidIDErr(&pgconn.PgError{Code: "23505"}))
}

func TestTicketSortColumnWhitelist(t *testing.T) {
	assert.Equal(t, "updated_at", TicketSortColumn("updatedAt"))
	assert.Equal(t, "created_at", TicketSortColumn("created_at; DROP TABLE tickets"))
	assert.True(t, ValidTicketSortField("priority"))
	assert.False(t, ValidTicketSortField("reply_count"))
}
