package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/Alijeyrad/portfolio_backend/config"
	"github.com/Alijeyrad/portfolio_backend/internal/service/contact"
	"github.com/Alijeyrad/portfolio_backend/pkg/email"
	"github.com/Alijeyrad/portfolio_backend/pkg/observability"
	redispkg "github.com/Alijeyrad/portfolio_backend/pkg/redis"
)

// InfraModule provides all infrastructure dependencies.
var InfraModule = fx.Module("infra",
	fx.Provide(ProvideRedis),
	fx.Provide(ProvideEmailClient),
	fx.Provide(ProvideRelay),
	fx.Provide(ProvideGuard),
	fx.Provide(ProvideOTel),
)

// ProvideRedis returns a nil client when no address is configured; consumers
// fall back to in-process state.
func ProvideRedis(lc fx.Lifecycle, cfg *config.Config) (*redis.Client, error) {
	rdb, err := redispkg.NewRedisFromCentral(cfg.Redis)
	if errors.Is(err, redispkg.ErrNoAddr) {
		slog.Info("redis not configured, using in-process guard and limiter")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("closing Redis connection")
			return rdb.Close()
		},
	})
	return rdb, nil
}

func ProvideEmailClient(cfg *config.Config) (*email.Client, error) {
	return email.NewFromCentral(cfg.Email)
}

func ProvideRelay(cfg *config.Config, mail *email.Client) (contact.Relay, error) {
	relay, err := contact.NewRelay(cfg, mail, slog.Default())
	if err != nil {
		return nil, err
	}
	slog.Info("contact relay ready", "driver", cfg.Relay.Driver)
	return relay, nil
}

func ProvideGuard(cfg *config.Config, rdb *redis.Client) contact.Guard {
	if rdb == nil {
		return contact.NewLocalGuard()
	}
	return contact.NewRedisGuard(rdb, time.Duration(cfg.Contact.GuardTTLSeconds)*time.Second, slog.Default())
}

func ProvideOTel(lc fx.Lifecycle, cfg *config.Config) (*observability.Provider, error) {
	if !cfg.Observability.Enabled {
		return nil, nil
	}
	provider, err := observability.InitTelemetry(context.Background(), observability.FromCentralConfig(cfg))
	if err != nil {
		return nil, err
	}
	slog.Info("observability initialized",
		"tracing", cfg.Observability.Tracing.Enabled,
		"metrics", cfg.Observability.Metrics.Enabled,
	)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("shutting down observability providers")
			return provider.Shutdown(ctx)
		},
	})
	return provider, nil
}
