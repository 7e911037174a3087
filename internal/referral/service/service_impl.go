package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/customk/booking/internal/referral/domain"
	pkgdb "github.com/customk/booking/pkg/db"
	"github.com/shopspring/decimal"
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
		log:   p.Log.Named("referral.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

var (
	rateFloor   = decimal.Zero
	rateCeiling = decimal.NewFromInt(100)
)

func (s *Service) Create(ctx context.Context, req domain.CreateCodeRequest) (domain.ReferralCode, error) {
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return domain.ReferralCode{}, domain.ErrInvalidCode
	}
	if req.DiscountRate.LessThan(rateFloor) || req.DiscountRate.GreaterThan(rateCeiling) {
		return domain.ReferralCode{}, domain.ErrInvalidRate
	}

	now := time.Now().UTC()
	item := domain.ReferralCode{
		ID:           s.genID.Generate(),
		Code:         code,
		IsActive:     true,
		DiscountRate: req.DiscountRate.Round(2),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, s.db, &item); err != nil {
		if pkgdb.IsDuplicateKeyErr(err) {
			return domain.ReferralCode{}, domain.ErrCodeTaken
		}
		return domain.ReferralCode{}, err
	}
	return item, nil
}

func (s *Service) Verify(ctx context.Context, code string) (decimal.Decimal, error) {
	return s.VerifyTx(ctx, s.db, code)
}

func (s *Service) VerifyTx(ctx context.Context, tx *gorm.DB, code string) (decimal.Decimal, error) {
	item, err := s.repo.FindActiveByCode(ctx, tx, code)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if item == nil {
		return decimal.Decimal{}, domain.ErrInvalidCode
	}
	return item.DiscountRate, nil
}

func (s *Service) Consume(ctx context.Context, code string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.ConsumeTx(ctx, tx, code)
	})
}

// ConsumeTx flips the code inactive under the row lock. An already-inactive
// code is flipped to the same state and reported as success; the read path
// in Verify is where expired codes surface as errors.
func (s *Service) ConsumeTx(ctx context.Context, tx *gorm.DB, code string) error {
	item, err := s.repo.FindByCodeForUpdate(ctx, tx, code)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	return s.repo.Deactivate(ctx, tx, code)
}
