package handler

import (
	"context"
	"encoding/json"
	"errors"
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
	"github.com/Alijeyrad/portfolio_backend/internal/service/contact"
)

const validBody = `{"name":"Ada Lovelace","email":"ada@example.com","subject":"Engine notes","message":"I have some thoughts on the engine."}`

func newContactApp(t *testing.T, relay contact.Relay, guard contact.Guard) *fiber.App {
	t.Helper()

	cfg := &config.Config{Relay: config.RelayConfig{
		TimeoutSeconds: 5,
		Recipient:      config.RecipientConfig{Name: "Owner", Email: "owner@example.com"},
	}}
	svc := contact.New(relay, guard, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	h := NewContactHandler(svc)

	app := fiber.New()
	app.Post("/contact", h.Submit)
	app.Post("/contact/validate", h.ValidateField)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (int, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestContactSubmit_Created(t *testing.T) {
	var got contact.TemplateParams
	relay := contact.RelayFunc(func(_ context.Context, p contact.TemplateParams) error {
		got = p
		return nil
	})
	app := newContactApp(t, relay, nil)

	status, body := postJSON(t, app, "/contact", validBody)

	assert.Equal(t, fiber.StatusCreated, status)
	data := body["data"].(map[string]any)
	n := data["notification"].(map[string]any)
	assert.Equal(t, "success", n["kind"])
	assert.Equal(t, contact.SuccessMessage, n["message"])
	assert.EqualValues(t, 5000, n["duration_ms"])

	assert.Equal(t, "ada@example.com", got.ReplyTo)
	assert.Equal(t, "owner@example.com", got.ToEmail)
}

func TestContactSubmit_Invalid(t *testing.T) {
	called := false
	relay := contact.RelayFunc(func(context.Context, contact.TemplateParams) error {
		called = true
		return nil
	})
	app := newContactApp(t, relay, nil)

	status, body := postJSON(t, app, "/contact", `{"name":"A","email":"a@b","subject":"Hello","message":"short"}`)

	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, "validation failed", body["error"])
	assert.Equal(t, map[string]any{
		"name":    "Name must be at least 2 characters",
		"email":   "Please enter a valid email address",
		"message": "Message must be at least 10 characters",
	}, body["fields"])
	assert.False(t, called)
}

func TestContactSubmit_RelayFailure(t *testing.T) {
	relay := contact.RelayFunc(func(context.Context, contact.TemplateParams) error {
		return errors.New("upstream said no: secret detail")
	})
	app := newContactApp(t, relay, nil)

	status, body := postJSON(t, app, "/contact", validBody)

	assert.Equal(t, fiber.StatusBadGateway, status)
	assert.Equal(t, contact.FailureMessage, body["error"])
}

// busyGuard reports every client as already submitting.
type busyGuard struct{ key string }

func (g *busyGuard) Acquire(_ context.Context, key string) (func(), error) {
	g.key = key
	return nil, contact.ErrSubmitInProgress
}

func TestContactSubmit_Busy(t *testing.T) {
	guard := &busyGuard{}
	app := newContactApp(t, contact.RelayFunc(func(context.Context, contact.TemplateParams) error { return nil }), guard)

	status, body := postJSON(t, app, "/contact", validBody)

	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "submission already in progress", body["error"])
	assert.NotEmpty(t, guard.key, "guard keyed by client ip")
}

func TestContactSubmit_MalformedJSON(t *testing.T) {
	app := newContactApp(t, contact.NewLogRelay(nil), nil)

	status, body := postJSON(t, app, "/contact", `{"name":`)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "invalid request body", body["error"])
}

func TestContactValidateField(t *testing.T) {
	app := newContactApp(t, contact.NewLogRelay(nil), nil)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantField  string
		wantError  any
	}{
		{"invalid email", `{"field":"email","value":"a@b"}`, fiber.StatusOK, "email", "Please enter a valid email address"},
		{"valid name", `{"field":"name","value":"Ada"}`, fiber.StatusOK, "name", nil},
		{"empty subject", `{"field":"subject","value":"  "}`, fiber.StatusOK, "subject", "Subject is required"},
		{"unknown field", `{"field":"phone","value":"1"}`, fiber.StatusBadRequest, "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := postJSON(t, app, "/contact/validate", tt.body)
			assert.Equal(t, tt.wantStatus, status)
			if tt.wantStatus != fiber.StatusOK {
				assert.Equal(t, "unknown field", body["error"])
				return
			}
			data := body["data"].(map[string]any)
			assert.Equal(t, tt.wantField, data["field"])
			assert.Equal(t, tt.wantError, data["error"])
		})
	}
}
