package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// ReferralCode is a single-use discount code. It is created active and
// flipped inactive exactly once, when a booking consumes it.
type ReferralCode struct {
	ID           snowflake.ID    `json:"id" gorm:"primaryKey"`
	Code         string          `json:"code" gorm:"type:text;not null;uniqueIndex"`
	IsActive     bool            `json:"is_active" gorm:"not null;default:true"`
	DiscountRate decimal.Decimal `json:"discount_rate" gorm:"type:decimal(5,2);not null"`
	CreatedAt    time.Time       `json:"created_at" gorm:"not null"`
	UpdatedAt    time.Time       `json:"updated_at" gorm:"not null"`
}

func (ReferralCode) TableName() string { return "referral_codes" }
