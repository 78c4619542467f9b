// Package repository implements all database queries for the event
// management system. It uses pgx directly (no ORM) for transparency
// and performance.
package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateEmail is returned when a user with the same email exists.
var ErrDuplicateEmail = errors.New("email already in use")

// ErrDuplicateCategory is returned when a category with the same name exists.
var ErrDuplicateCategory = errors.New("category name already in use")

// ErrDuplicateRequest is returned when the same user requests the same
// event twice.
var ErrDuplicateRequest = errors.New("request already exists for this event")

// ErrCategoryInUse is returned when a category cannot be removed because
// events still reference it.
var ErrCategoryInUse = errors.New("category is referenced by events")

// ErrParticipantLimitReached is returned when an event has no remaining
// capacity for confirmed requests.
var ErrParticipantLimitReached = errors.New("participant limit reached")

// Postgres error codes used to translate integrity violations into
// domain errors at commit time.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func isPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
