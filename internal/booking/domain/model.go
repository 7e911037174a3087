package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusRefunded  = "refunded"
)

const (
	MethodNone   = "none"
	MethodPayPal = "paypal"
)

// PaymentRecord is the terminal fact of a successful booking. It is created
// in one transaction with the seat reservation and referral consumption, and
// later transitions to refunded; it is never deleted by the booking flow.
type PaymentRecord struct {
	ID             snowflake.ID    `json:"id" gorm:"primaryKey"`
	OrderID        string          `json:"order_id" gorm:"type:text;not null;uniqueIndex"`
	Status         string          `json:"status" gorm:"type:text;not null"`
	Amount         decimal.Decimal `json:"amount" gorm:"type:decimal(10,2);not null"`
	RefundedAmount decimal.Decimal `json:"refunded_amount" gorm:"type:decimal(10,2);not null;default:0"`
	Currency       string          `json:"currency" gorm:"type:text;not null"`
	PaymentMethod  string          `json:"payment_method" gorm:"type:text;not null"`
	PayerEmail     string          `json:"payer_email" gorm:"type:text"`
	UserID         snowflake.ID    `json:"user_id" gorm:"not null;index"`
	OccurrenceID   snowflake.ID    `json:"occurrence_id" gorm:"not null;index"`
	Quantity       int             `json:"quantity" gorm:"not null;default:1"`
	ReferralCode   string          `json:"referral_code,omitempty" gorm:"type:text"`
	CaptureID      string          `json:"capture_id,omitempty" gorm:"type:text"`
	TransactionID  string          `json:"transaction_id,omitempty" gorm:"type:text"`
	CreatedAt      time.Time       `json:"created_at" gorm:"not null"`
	UpdatedAt      time.Time       `json:"updated_at" gorm:"not null"`
}

func (PaymentRecord) TableName() string { return "payment_records" }
