package app

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/Alijeyrad/portfolio_backend/config"
	"github.com/Alijeyrad/portfolio_backend/internal/service/contact"
)

// ServiceModule provides all application service dependencies.
var ServiceModule = fx.Module("services",
	fx.Provide(
		ProvideContactService,
	),
)

func ProvideContactService(relay contact.Relay, guard contact.Guard, cfg *config.Config) contact.Service {
	return contact.New(relay, guard, cfg, slog.Default())
}
