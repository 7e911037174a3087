package events

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

// PaymentCreated is emitted after a booking's transaction commits. The
// notification component consumes it; this core only publishes.
type PaymentCreated struct {
	PaymentID snowflake.ID `json:"payment_id"`
	OrderID   string       `json:"order_id"`
	Amount    string       `json:"amount"`
	Currency  string       `json:"currency"`
	CreatedAt time.Time    `json:"created_at"`
}

type Publisher interface {
	PublishPaymentCreated(ctx context.Context, event PaymentCreated) error
}
