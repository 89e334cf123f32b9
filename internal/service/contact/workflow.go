package contact

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"

	"github.com/Alijeyrad/portfolio_backend/pkg/reqctx"
)

// State is where a workflow is in its submit cycle.
type State int32

const (
	StateIdle State = iota
	StateValidating
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Outcome is the result of a relay call. A nil Err is a success.
type Outcome struct {
	Err error
}

func (o Outcome) Succeeded() bool { return o.Err == nil }

// Workflow drives one contact form: per-field validation, the submit cycle
// and the feedback shown on the UI. Only one submit runs at a time.
type Workflow struct {
	ui      UI
	relay   Relay
	to      Recipient
	timeout time.Duration
	log     *slog.Logger

	state atomic.Int32
	busy  atomic.Bool
}

type WorkflowOption func(*Workflow)

// WithRelayTimeout bounds every relay call; expiry counts as a failure.
// Zero disables the bound.
func WithRelayTimeout(d time.Duration) WorkflowOption {
	return func(w *Workflow) { w.timeout = d }
}

func WithLogger(l *slog.Logger) WorkflowOption {
	return func(w *Workflow) { w.log = l }
}

func NewWorkflow(ui UI, relay Relay, to Recipient, opts ...WorkflowOption) *Workflow {
	w := &Workflow{
		ui:    ui,
		relay: relay,
		to:    to,
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Workflow) State() State {
	return State(w.state.Load())
}

// ValidateField runs the rule for f against its current value, as on loss of
// focus. An invalid value is shown; a valid one leaves the display as it is.
func (w *Workflow) ValidateField(f Field) *FieldError {
	fe := Validate(f, w.ui.FieldValue(f))
	if fe != nil {
		w.ui.SetFieldError(f, fe.Message)
	}
	return fe
}

// ClearFieldError removes the error shown for f, as on editing it.
func (w *Workflow) ClearFieldError(f Field) {
	w.ui.SetFieldError(f, "")
}

// HandleSubmit reads the form from the UI and submits it.
func (w *Workflow) HandleSubmit(ctx context.Context) (Outcome, error) {
	var f Form
	for _, field := range Fields {
		v := w.ui.FieldValue(field)
		switch field {
		case FieldName:
			f.Name = v
		case FieldEmail:
			f.Email = v
		case FieldSubject:
			f.Subject = v
		case FieldMessage:
			f.Message = v
		}
	}
	return w.Submit(ctx, f)
}

// Submit clears every shown error, validates f and, only when all fields
// pass, sends it through the relay. Validation failures are shown on the UI
// and returned as FieldErrors; the relay is not called. A call made while
// another submit is running returns ErrSubmitInProgress.
func (w *Workflow) Submit(ctx context.Context, f Form) (Outcome, error) {
	if !w.busy.CompareAndSwap(false, true) {
		return Outcome{}, ErrSubmitInProgress
	}
	defer w.busy.Store(false)

	for _, field := range Fields {
		w.ui.SetFieldError(field, "")
	}

	w.state.Store(int32(StateValidating))
	f = f.Normalize()
	if errs := ValidateForm(f); errs != nil {
		for _, field := range Fields {
			if msg, ok := errs[field]; ok {
				w.ui.SetFieldError(field, msg)
			}
		}
		w.state.Store(int32(StateIdle))
		submissions.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "invalid")))
		w.log.DebugContext(ctx, "contact form rejected", "request_id", reqctx.RequestIDFromContext(ctx), "fields", len(errs))
		return Outcome{}, errs
	}

	return w.send(ctx, f), nil
}

func (w *Workflow) send(ctx context.Context, f Form) Outcome {
	w.state.Store(int32(StateSubmitting))
	w.ui.SetSubmitBusy(true)
	defer func() {
		w.ui.SetSubmitBusy(false)
		w.state.Store(int32(StateIdle))
	}()

	err := w.callRelay(ctx, NewTemplateParams(f, w.to))
	if err != nil {
		w.log.ErrorContext(ctx, "contact relay failed",
			"request_id", reqctx.RequestIDFromContext(ctx),
			"error", err,
		)
		submissions.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "failure")))
		w.ui.ShowNotification(failureNotification())
		return Outcome{Err: err}
	}

	w.log.InfoContext(ctx, "contact message sent", "request_id", reqctx.RequestIDFromContext(ctx))
	submissions.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "success")))
	w.ui.ResetFields()
	w.ui.ShowNotification(successNotification())
	return Outcome{}
}

func (w *Workflow) callRelay(ctx context.Context, p TemplateParams) (err error) {
	ctx, span := tracer.Start(ctx, "contact.relay.send")
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrRelayPanic, r)
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "relay failed")
		}
		span.End()
	}()

	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	return w.relay.Send(ctx, p)
}
