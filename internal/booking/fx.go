package booking

import (
	"github.com/customk/booking/internal/booking/domain"
	"github.com/customk/booking/internal/booking/gateway/paypal"
	"github.com/customk/booking/internal/booking/repository"
	bookingservice "github.com/customk/booking/internal/booking/service"
	"github.com/customk/booking/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func provideGateway(cfg config.Config, log *zap.Logger) (domain.Gateway, error) {
	if cfg.PayPal.ClientID == "" {
		// Direct (free) bookings still work without gateway credentials.
		return nil, nil
	}
	gw, err := paypal.New(cfg.PayPal, log)
	if err != nil {
		return nil, err
	}
	return gw, nil
}

var Module = fx.Module("booking.service",
	fx.Provide(repository.Provide),
	fx.Provide(provideGateway),
	fx.Provide(bookingservice.New),
)
