package paypal

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/customk/booking/internal/booking/domain"
	"github.com/customk/booking/internal/config"
	"github.com/plutov/paypal/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var ErrMissingCredentials = errors.New("missing_paypal_credentials")

type Gateway struct {
	client *paypal.Client
	log    *zap.Logger
}

// New builds the PayPal gateway client and verifies credentials by fetching
// an access token.
func New(cfg config.PayPalConfig, log *zap.Logger) (*Gateway, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, ErrMissingCredentials
	}

	base := paypal.APIBaseSandBox
	if cfg.Live {
		base = paypal.APIBaseLive
	}

	client, err := paypal.NewClient(cfg.ClientID, cfg.ClientSecret, base)
	if err != nil {
		return nil, err
	}
	if _, err := client.GetAccessToken(context.Background()); err != nil {
		return nil, err
	}

	return &Gateway{
		client: client,
		log:    log.Named("gateway.paypal"),
	}, nil
}

func (g *Gateway) CreateOrder(ctx context.Context, amount decimal.Decimal, currency string) (domain.CreateOrderResult, error) {
	units := []paypal.PurchaseUnitRequest{
		{
			Amount: &paypal.PurchaseUnitAmount{
				Currency: strings.ToUpper(currency),
				Value:    amount.StringFixed(2),
			},
		},
	}

	order, err := g.client.CreateOrder(ctx, paypal.OrderIntentCapture, units, nil, nil)
	if err != nil {
		return domain.CreateOrderResult{}, err
	}

	result := domain.CreateOrderResult{
		OrderID: order.ID,
		Status:  order.Status,
	}
	for _, link := range order.Links {
		if link.Rel == "approve" {
			result.ApprovalURL = link.Href
			break
		}
	}

	g.log.Info("paypal order created",
		zap.String("order_id", order.ID),
		zap.String("status", order.Status),
	)
	return result, nil
}

func (g *Gateway) CaptureOrder(ctx context.Context, orderID string) (domain.CaptureResult, error) {
	capture, err := g.client.CaptureOrder(ctx, orderID, paypal.CaptureOrderRequest{})
	if err != nil {
		return domain.CaptureResult{}, err
	}

	raw, _ := json.Marshal(capture)
	result := domain.CaptureResult{
		OrderID: capture.ID,
		Status:  capture.Status,
		Raw:     raw,
	}
	if capture.Payer != nil {
		result.PayerEmail = capture.Payer.EmailAddress
	}
	if len(capture.PurchaseUnits) > 0 && capture.PurchaseUnits[0].Payments != nil {
		captures := capture.PurchaseUnits[0].Payments.Captures
		if len(captures) > 0 {
			result.CaptureID = captures[0].ID
			if captures[0].Amount != nil {
				value, parseErr := decimal.NewFromString(captures[0].Amount.Value)
				if parseErr != nil {
					return domain.CaptureResult{}, parseErr
				}
				result.Amount = value
				result.Currency = captures[0].Amount.Currency
			}
		}
	}

	g.log.Info("paypal order captured",
		zap.String("order_id", orderID),
		zap.String("status", capture.Status),
	)
	return result, nil
}

func (g *Gateway) RefundCapture(ctx context.Context, captureID string, amount decimal.Decimal, currency string) (domain.RefundResult, error) {
	refund, err := g.client.RefundCapture(ctx, captureID, paypal.RefundCaptureRequest{
		Amount: &paypal.Money{
			Value:    amount.StringFixed(2),
			Currency: strings.ToUpper(currency),
		},
	})
	if err != nil {
		return domain.RefundResult{}, err
	}

	raw, _ := json.Marshal(refund)
	g.log.Info("paypal capture refunded",
		zap.String("capture_id", captureID),
		zap.String("status", refund.Status),
	)
	return domain.RefundResult{
		RefundID: refund.ID,
		Status:   refund.Status,
		Raw:      raw,
	}, nil
}
