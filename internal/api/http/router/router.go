package router

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/Alijeyrad/portfolio_backend/config"
	"github.com/Alijeyrad/portfolio_backend/internal/api/http/handler"
	"github.com/Alijeyrad/portfolio_backend/internal/api/http/middleware"
	"github.com/Alijeyrad/portfolio_backend/internal/service/contact"
)

// Module provides the Router to the fx graph.
var Module = fx.Module("router", fx.Provide(NewRouter))

type Params struct {
	fx.In

	Cfg        *config.Config
	Redis      *redis.Client `optional:"true"`
	ContactSvc contact.Service
}

type Router struct {
	p Params
}

func NewRouter(p Params) *Router {
	return &Router{p: p}
}

func (r *Router) Register(app *fiber.App) {
	r.registerSystemRoutes(app)

	contactH := handler.NewContactHandler(r.p.ContactSvc)

	rl := r.p.Cfg.Contact.RateLimit
	contactLimiter := middleware.NewLimiter(rl.Max, time.Duration(rl.WindowSeconds)*time.Second, r.p.Redis)

	api := app.Group("/api/v1")
	r.registerContactRoutes(api, contactH, contactLimiter)
}

func (r *Router) registerSystemRoutes(app *fiber.App) {
	app.Get(healthcheck.LivenessEndpoint, healthcheck.New())
	app.Get(healthcheck.ReadinessEndpoint, healthcheck.New(healthcheck.Config{
		Probe: func(c fiber.Ctx) bool { return r.redisHealthy(c.Context()) },
	}))
	app.Get(healthcheck.StartupEndpoint, healthcheck.New())

	if r.p.Cfg.Observability.Enabled && r.p.Cfg.Observability.Metrics.Enabled {
		path := r.p.Cfg.Observability.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		app.Get(path, adaptor.HTTPHandler(promhttp.Handler()))
	}
}

// redisHealthy is true when Redis is not in use or answers a ping.
func (r *Router) redisHealthy(ctx context.Context) bool {
	if r.p.Redis == nil {
		return true
	}
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	return r.p.Redis.Ping(ctx).Err() == nil
}
