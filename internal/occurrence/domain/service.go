package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type CreateOccurrenceRequest struct {
	ClassID   snowflake.ID
	StartDate time.Time
	StartTime string
	EndTime   string
}

type Service interface {
	Create(ctx context.Context, req CreateOccurrenceRequest) (ScheduledOccurrence, error)
	Get(ctx context.Context, id snowflake.ID) (ScheduledOccurrence, error)
	// Reserve adds seats to the occurrence's committed count. The row is
	// locked for the duration of the update; no ceiling is enforced.
	Reserve(ctx context.Context, id snowflake.ID, seats int) error
	// Release subtracts seats, but never drives the committed count below
	// zero; releasing an already-empty occurrence is a successful no-op.
	Release(ctx context.Context, id snowflake.ID, seats int) error

	// ReserveTx and ReleaseTx are the same operations bound to a
	// caller-owned transaction, for flows where the seat mutation must
	// commit or roll back together with other writes.
	ReserveTx(ctx context.Context, tx *gorm.DB, id snowflake.ID, seats int) error
	ReleaseTx(ctx context.Context, tx *gorm.DB, id snowflake.ID, seats int) error
}

var (
	ErrNotFound     = errors.New("occurrence_not_found")
	ErrInvalidSeats = errors.New("invalid_seat_count")
	ErrInvalidClass = errors.New("invalid_class")
	ErrInvalidDate  = errors.New("invalid_start_date")
)
