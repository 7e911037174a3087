package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/customk/booking/internal/occurrence/domain"
	pkgdb "github.com/customk/booking/pkg/db"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, occ *domain.ScheduledOccurrence) error {
	return db.WithContext(ctx).Create(occ).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.ScheduledOccurrence, error) {
	var item domain.ScheduledOccurrence
	err := db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repo) FindByIDForUpdate(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.ScheduledOccurrence, error) {
	var item domain.ScheduledOccurrence
	err := pkgdb.ForUpdate(db.WithContext(ctx)).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repo) UpdateCommittedCount(ctx context.Context, db *gorm.DB, id snowflake.ID, count int) error {
	return db.WithContext(ctx).Exec(
		`UPDATE scheduled_occurrences
		 SET committed_count = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		count,
		id,
	).Error
}
