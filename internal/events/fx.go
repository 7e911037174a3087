package events

import (
	"context"

	"github.com/customk/booking/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type logPublisher struct {
	log *zap.Logger
}

func (p *logPublisher) PublishPaymentCreated(_ context.Context, event PaymentCreated) error {
	p.log.Info("payment created",
		zap.String("order_id", event.OrderID),
		zap.String("amount", event.Amount),
		zap.String("currency", event.Currency),
	)
	return nil
}

func NewPublisher(cfg config.Config, log *zap.Logger) (Publisher, error) {
	if cfg.Events.QueueURL == "" {
		return &logPublisher{log: log.Named("events")}, nil
	}
	return NewSQSPublisher(context.Background(), cfg.Events.QueueURL, log)
}

var Module = fx.Module("events",
	fx.Provide(NewPublisher),
)
