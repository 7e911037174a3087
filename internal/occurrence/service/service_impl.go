package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/customk/booking/internal/occurrence/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("occurrence.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateOccurrenceRequest) (domain.ScheduledOccurrence, error) {
	if req.ClassID == 0 {
		return domain.ScheduledOccurrence{}, domain.ErrInvalidClass
	}
	if req.StartDate.IsZero() {
		return domain.ScheduledOccurrence{}, domain.ErrInvalidDate
	}
	if strings.TrimSpace(req.StartTime) == "" || strings.TrimSpace(req.EndTime) == "" {
		return domain.ScheduledOccurrence{}, domain.ErrInvalidDate
	}

	now := time.Now().UTC()
	occ := domain.ScheduledOccurrence{
		ID:        s.genID.Generate(),
		ClassID:   req.ClassID,
		StartDate: req.StartDate,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &occ); err != nil {
		return domain.ScheduledOccurrence{}, err
	}
	return occ, nil
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (domain.ScheduledOccurrence, error) {
	occ, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.ScheduledOccurrence{}, err
	}
	if occ == nil {
		return domain.ScheduledOccurrence{}, domain.ErrNotFound
	}
	return *occ, nil
}

func (s *Service) Reserve(ctx context.Context, id snowflake.ID, seats int) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.ReserveTx(ctx, tx, id, seats)
	})
}

func (s *Service) Release(ctx context.Context, id snowflake.ID, seats int) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.ReleaseTx(ctx, tx, id, seats)
	})
}

// ReserveTx increments the committed count under the row lock. The source
// system never checked a capacity ceiling here; overbooking protection, if
// any, lives with the catalog.
func (s *Service) ReserveTx(ctx context.Context, tx *gorm.DB, id snowflake.ID, seats int) error {
	if seats <= 0 {
		return domain.ErrInvalidSeats
	}

	occ, err := s.repo.FindByIDForUpdate(ctx, tx, id)
	if err != nil {
		return err
	}
	if occ == nil {
		return domain.ErrNotFound
	}

	return s.repo.UpdateCommittedCount(ctx, tx, id, occ.CommittedCount+seats)
}

// ReleaseTx decrements the committed count, holding it at zero. Releasing an
// already-empty occurrence succeeds without mutation.
func (s *Service) ReleaseTx(ctx context.Context, tx *gorm.DB, id snowflake.ID, seats int) error {
	if seats <= 0 {
		return domain.ErrInvalidSeats
	}

	occ, err := s.repo.FindByIDForUpdate(ctx, tx, id)
	if err != nil {
		return err
	}
	if occ == nil {
		return domain.ErrNotFound
	}
	if occ.CommittedCount <= 0 {
		return nil
	}

	next := occ.CommittedCount - seats
	if next < 0 {
		next = 0
	}
	return s.repo.UpdateCommittedCount(ctx, tx, id, next)
}
