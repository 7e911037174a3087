package referral

import (
	"github.com/customk/booking/internal/referral/repository"
	"github.com/customk/booking/internal/referral/service"
	"go.uber.org/fx"
)

var Module = fx.Module("referral.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
