package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, code *ReferralCode) error
	// FindActiveByCode matches on the code string and the active flag.
	FindActiveByCode(ctx context.Context, db *gorm.DB, code string) (*ReferralCode, error)
	// FindByCodeForUpdate locks the ledger row regardless of its state.
	FindByCodeForUpdate(ctx context.Context, db *gorm.DB, code string) (*ReferralCode, error)
	Deactivate(ctx context.Context, db *gorm.DB, code string) error
}
