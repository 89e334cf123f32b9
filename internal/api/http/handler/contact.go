package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/portfolio_backend/internal/service/contact"
)

type ContactHandler struct {
	svc contact.Service
}

func NewContactHandler(svc contact.Service) *ContactHandler {
	return &ContactHandler{svc: svc}
}

type notificationResponse struct {
	Kind       contact.NotificationKind `json:"kind"`
	Message    string                   `json:"message"`
	DurationMs int64                    `json:"duration_ms"`
}

type validateFieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type validateFieldResponse struct {
	Field contact.Field `json:"field"`
	Error *string       `json:"error"`
}

// the browser schedules the dismiss from duration_ms
func noDismiss(time.Duration, func()) {}

// POST /contact
func (h *ContactHandler) Submit(c fiber.Ctx) error {
	var req contact.Form
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	page := contact.NewPage(req, contact.WithAfterFunc(noDismiss))

	outcome, err := h.svc.Submit(c.Context(), c.IP(), page)
	if err != nil {
		var fieldErrs contact.FieldErrors
		switch {
		case errors.As(err, &fieldErrs):
			return unprocessable(c, fieldErrs)
		case errors.Is(err, contact.ErrSubmitInProgress):
			return conflict(c, err.Error())
		default:
			slog.ErrorContext(c.Context(), "contact submit failed", "error", err)
			return internalError(c)
		}
	}

	shown := page.State().Notifications
	if !outcome.Succeeded() || len(shown) == 0 {
		return badGateway(c, contact.FailureMessage)
	}

	n := shown[len(shown)-1]
	return created(c, fiber.Map{"notification": notificationResponse{
		Kind:       n.Kind,
		Message:    n.Message,
		DurationMs: n.DurationMs(),
	}})
}

// POST /contact/validate
func (h *ContactHandler) ValidateField(c fiber.Ctx) error {
	var req validateFieldRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	field, known := contact.ParseField(req.Field)
	if !known {
		return badRequest(c, "unknown field")
	}

	resp := validateFieldResponse{Field: field}
	if fe := contact.Validate(field, req.Value); fe != nil {
		resp.Error = &fe.Message
	}
	return ok(c, resp)
}
