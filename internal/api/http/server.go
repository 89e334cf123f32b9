package http

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/logger"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/Alijeyrad/portfolio_backend/config"
	"github.com/Alijeyrad/portfolio_backend/internal/api/http/middleware"
	"github.com/Alijeyrad/portfolio_backend/internal/api/http/router"
	"github.com/Alijeyrad/portfolio_backend/pkg/constants"
	"github.com/Alijeyrad/portfolio_backend/pkg/observability"
)

// Module provides the HTTP Server to the fx graph.
var Module = fx.Module("http", fx.Provide(NewServer))

type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Cfg       *config.Config
	Redis     *redis.Client `optional:"true"`
	Router    *router.Router
	OTel      *observability.Provider `optional:"true"`
}

func NewServer(p Params) *fiber.App {
	app := NewApp(p.Cfg, p.Redis, p.OTel != nil, p.Router)

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			addr := fmt.Sprintf(":%d", p.Cfg.Server.Port)
			go func() {
				if err := app.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
					slog.Error("HTTP server error", "error", err)
				}
			}()
			slog.Info("HTTP server listening", "addr", addr, "env", p.Cfg.Server.Environment)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.ShutdownWithContext(ctx)
		},
	})

	return app
}

// NewApp builds the fiber app with global middleware and routes but does not
// listen.
func NewApp(cfg *config.Config, rdb *redis.Client, tracing bool, r *router.Router) *fiber.App {
	app := fiber.New(fiberConfig(cfg))

	configureGlobalMiddleware(app, cfg, rdb)

	if tracing {
		app.Use(observability.FiberMiddleware())
	}

	r.Register(app)

	return app
}

// fiberConfig maps server settings onto fiber. c.IP() keys both the submit
// guard and the limiters, so the proxy header is honored only from
// configured proxies.
func fiberConfig(cfg *config.Config) fiber.Config {
	fcfg := fiber.Config{AppName: constants.AppName}
	if cfg.Server.TimeoutSeconds > 0 {
		timeout := time.Duration(cfg.Server.TimeoutSeconds) * time.Second
		fcfg.ReadTimeout = timeout
		fcfg.WriteTimeout = timeout
	}
	if len(cfg.Server.TrustedProxies) > 0 {
		fcfg.TrustProxy = true
		fcfg.TrustProxyConfig = fiber.TrustProxyConfig{Proxies: cfg.Server.TrustedProxies}
		fcfg.ProxyHeader = cfg.Server.ProxyHeader
	}
	return fcfg
}

func configureGlobalMiddleware(app *fiber.App, cfg *config.Config, rdb *redis.Client) {
	app.Use(middleware.RequestID())
	app.Use(recoverer.New())

	// the contact page is usually served from another origin
	if cfg.Server.CORS.Enabled {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.Server.CORS.AllowOrigins,
			AllowMethods:     cfg.Server.CORS.AllowMethods,
			AllowHeaders:     cfg.Server.CORS.AllowHeaders,
			AllowCredentials: cfg.Server.CORS.AllowCredentials,
			MaxAge:           cfg.Server.CORS.MaxAgeSeconds,
		}))
	}

	if cfg.Server.Environment == "production" {
		app.Use(helmet.New())
		app.Use(middleware.NewLimiter(120, time.Minute, rdb))
	}

	app.Use(logger.New(logger.Config{
		Format: "${ip} - [${time}] [req_id=${respHeader:X-Request-Id}] ${method} ${url} ${status} ${latency}\n",
	}))
}
