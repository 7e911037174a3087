package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/customk/booking/pkg/db/pagination"
	"github.com/shopspring/decimal"
)

type BookRequest struct {
	UserID       snowflake.ID
	OccurrenceID snowflake.ID
	Quantity     int
	Amount       decimal.Decimal
	Currency     string
	PayerEmail   string
	ReferralCode string
}

type ListPaymentsResponse struct {
	pagination.PageInfo
	Payments []PaymentRecord `json:"results"`
}

type Service interface {
	// CreateOrder opens a gateway order for the given amount and returns the
	// order id plus the approval link the payer is redirected to.
	CreateOrder(ctx context.Context, amount decimal.Decimal, currency string) (CreateOrderResult, error)

	// Book runs a direct (non-gateway) booking: seats, optional referral
	// consumption and the payment record commit or roll back together.
	Book(ctx context.Context, req BookRequest) (PaymentRecord, error)

	// BookWithGateway captures the gateway order first; the booking only
	// proceeds when the gateway reports COMPLETED. Amount, currency, payer
	// and capture id come from the capture response, not the request.
	BookWithGateway(ctx context.Context, orderID string, req BookRequest) (PaymentRecord, error)

	// CancelAndRefund computes the time-based refund for the payment, asks
	// the gateway to refund it, and only on gateway success marks the
	// payment refunded and releases the seats. Returns the refunded amount.
	CancelAndRefund(ctx context.Context, paymentID snowflake.ID) (decimal.Decimal, error)

	ListPayments(ctx context.Context, userID snowflake.ID, page pagination.Pagination) (ListPaymentsResponse, error)
	DeletePayment(ctx context.Context, paymentID snowflake.ID) error
}

var (
	ErrOccurrenceMissing   = errors.New("occurrence_missing")
	ErrInvalidReferralCode = errors.New("invalid_referral_code")
	ErrReferralExpired     = errors.New("referral_already_expired")
	ErrPaymentNotFound     = errors.New("payment_not_found")
	ErrRefundNotEligible   = errors.New("refund_not_eligible")
	ErrAlreadyRefunded     = errors.New("payment_already_refunded")
	ErrNotRefundable       = errors.New("payment_not_refundable")
	ErrInvalidQuantity     = errors.New("invalid_quantity")
	ErrInvalidAmount       = errors.New("invalid_amount")
	ErrInvalidUser         = errors.New("invalid_user")
)
