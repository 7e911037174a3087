package repository

import (
	"context"
	"errors"

	"github.com/customk/booking/internal/referral/domain"
	pkgdb "github.com/customk/booking/pkg/db"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, code *domain.ReferralCode) error {
	return db.WithContext(ctx).Create(code).Error
}

func (r *repo) FindActiveByCode(ctx context.Context, db *gorm.DB, code string) (*domain.ReferralCode, error) {
	var item domain.ReferralCode
	err := db.WithContext(ctx).First(&item, "code = ? AND is_active = ?", code, true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repo) FindByCodeForUpdate(ctx context.Context, db *gorm.DB, code string) (*domain.ReferralCode, error) {
	var item domain.ReferralCode
	err := pkgdb.ForUpdate(db.WithContext(ctx)).First(&item, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repo) Deactivate(ctx context.Context, db *gorm.DB, code string) error {
	return db.WithContext(ctx).Exec(
		`UPDATE referral_codes
		 SET is_active = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE code = ?`,
		false,
		code,
	).Error
}
