package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateCodeRequest struct {
	Code         string
	DiscountRate decimal.Decimal
}

type Service interface {
	// Create registers a new active code. The discount rate is a percentage
	// and must lie in [0, 100].
	Create(ctx context.Context, req CreateCodeRequest) (ReferralCode, error)
	// Verify returns the discount rate of an active code. Unknown and
	// already-consumed codes are both reported as ErrInvalidCode. Pure read.
	Verify(ctx context.Context, code string) (decimal.Decimal, error)
	// Consume deactivates the code. Consuming an already-inactive code
	// succeeds; only a missing row is an error.
	Consume(ctx context.Context, code string) error

	// ConsumeTx is Consume bound to a caller-owned transaction.
	ConsumeTx(ctx context.Context, tx *gorm.DB, code string) error
	// VerifyTx is Verify reading through a caller-owned transaction.
	VerifyTx(ctx context.Context, tx *gorm.DB, code string) (decimal.Decimal, error)
}

var (
	ErrInvalidCode = errors.New("invalid_referral_code")
	ErrNotFound    = errors.New("referral_code_not_found")
	ErrInvalidRate = errors.New("invalid_discount_rate")
	ErrCodeTaken   = errors.New("referral_code_taken")
)
