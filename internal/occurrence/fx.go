package occurrence

import (
	"github.com/customk/booking/internal/occurrence/repository"
	"github.com/customk/booking/internal/occurrence/service"
	"go.uber.org/fx"
)

var Module = fx.Module("occurrence.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
