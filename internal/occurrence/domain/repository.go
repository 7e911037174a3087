package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Repository methods take the db handle per call so they run equally inside
// a caller-owned transaction or standalone.
type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, occ *ScheduledOccurrence) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*ScheduledOccurrence, error)
	// FindByIDForUpdate locks the row until the surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, db *gorm.DB, id snowflake.ID) (*ScheduledOccurrence, error)
	UpdateCommittedCount(ctx context.Context, db *gorm.DB, id snowflake.ID, count int) error
}
