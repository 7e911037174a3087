package domain

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

type CreateOrderResult struct {
	OrderID     string
	Status      string
	ApprovalURL string
}

// CaptureResult is what the gateway reports for a captured order. Raw keeps
// the unmodified gateway payload so rejections can be surfaced verbatim.
type CaptureResult struct {
	OrderID    string
	Status     string
	Amount     decimal.Decimal
	Currency   string
	PayerEmail string
	CaptureID  string
	Raw        json.RawMessage
}

type RefundResult struct {
	RefundID string
	Status   string
	Raw      json.RawMessage
}

// Gateway is the external payment collaborator. Authorization and capture
// happen out-of-band; the booking flow only reads the reported outcome.
type Gateway interface {
	CreateOrder(ctx context.Context, amount decimal.Decimal, currency string) (CreateOrderResult, error)
	CaptureOrder(ctx context.Context, orderID string) (CaptureResult, error)
	RefundCapture(ctx context.Context, captureID string, amount decimal.Decimal, currency string) (RefundResult, error)
}

// GatewayError reports a non-success gateway status. The raw payload is
// passed through without interpretation.
type GatewayError struct {
	Op     string
	Status string
	Raw    json.RawMessage
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway %s rejected: status %s", e.Op, e.Status)
}
