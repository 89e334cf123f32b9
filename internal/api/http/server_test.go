package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/portfolio_backend/config"
	"github.com/Alijeyrad/portfolio_backend/internal/api/http/router"
	"github.com/Alijeyrad/portfolio_backend/internal/service/contact"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Environment: "development",
			CORS: config.CORSConfig{
				Enabled:      true,
				AllowOrigins: []string{"https://portfolio.example.com"},
				AllowMethods: []string{"POST", "OPTIONS"},
			},
		},
		Relay: config.RelayConfig{
			Driver:         config.RelayLog,
			TimeoutSeconds: 5,
			Recipient:      config.RecipientConfig{Email: "owner@example.com"},
		},
		Contact: config.ContactConfig{
			RateLimit: config.RateLimitConfig{Max: 2, WindowSeconds: 60},
		},
	}
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	cfg := testConfig()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := contact.New(contact.NewLogRelay(log), nil, cfg, log)
	r := router.NewRouter(router.Params{Cfg: cfg, ContactSvc: svc})
	return NewApp(cfg, nil, false, r)
}

func TestNewApp_HealthRoutes(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/livez", "/readyz", "/startupz"} {
		t.Run(path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		})
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, "metrics disabled")
}

func TestNewApp_ContactRoundTrip(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/contact", strings.NewReader(
		`{"name":"Ada","email":"ada@example.com","subject":"Hello","message":"A message long enough"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "https://portfolio.example.com")

	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "https://portfolio.example.com", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
}

func TestNewApp_ContactRateLimited(t *testing.T) {
	app := newTestApp(t)

	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/contact", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	assert.Equal(t, fiber.StatusUnprocessableEntity, send())
	assert.Equal(t, fiber.StatusUnprocessableEntity, send())
	assert.Equal(t, fiber.StatusTooManyRequests, send())

	// validation is not limited
	req := httptest.NewRequest(http.MethodPost, "/api/v1/contact/validate", strings.NewReader(`{"field":"name","value":"Ada"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestFiberConfig_ClientIP(t *testing.T) {
	tests := []struct {
		name    string
		proxies []string
		want    string
	}{
		{name: "trusted proxy header", proxies: []string{"0.0.0.0/0"}, want: "203.0.113.7"},
		{name: "no trusted proxies", proxies: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Server.ProxyHeader = fiber.HeaderXForwardedFor
			cfg.Server.TrustedProxies = tt.proxies

			fcfg := fiberConfig(cfg)
			assert.Equal(t, len(tt.proxies) > 0, fcfg.TrustProxy)

			app := fiber.New(fcfg)
			app.Get("/ip", func(c fiber.Ctx) error { return c.SendString(c.IP()) })

			req := httptest.NewRequest(http.MethodGet, "/ip", nil)
			req.Header.Set(fiber.HeaderXForwardedFor, "203.0.113.7")
			resp, err := app.Test(req)
			require.NoError(t, err)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			if tt.want != "" {
				assert.Equal(t, tt.want, string(body))
			} else {
				assert.NotEqual(t, "203.0.113.7", string(body), "spoofed header ignored")
			}
		})
	}
}
