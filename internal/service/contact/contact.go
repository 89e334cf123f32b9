package contact

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Alijeyrad/portfolio_backend/config"
	"github.com/Alijeyrad/portfolio_backend/pkg/email"
	"github.com/Alijeyrad/portfolio_backend/pkg/emailjs"
)

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	// NewWorkflow binds a workflow to ui using the configured relay.
	NewWorkflow(ui UI) *Workflow
	// Submit runs one submit cycle for ui, refusing a second concurrent
	// submission from the same client key.
	Submit(ctx context.Context, clientKey string, ui UI) (Outcome, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type contactService struct {
	relay   Relay
	guard   Guard
	to      Recipient
	timeout time.Duration
	log     *slog.Logger
}

func New(relay Relay, guard Guard, cfg *config.Config, log *slog.Logger) Service {
	if guard == nil {
		guard = NewLocalGuard()
	}
	if log == nil {
		log = slog.Default()
	}
	return &contactService{
		relay: relay,
		guard: guard,
		to: Recipient{
			Name:  cfg.Relay.Recipient.Name,
			Email: cfg.Relay.Recipient.Email,
		},
		timeout: time.Duration(cfg.Relay.TimeoutSeconds) * time.Second,
		log:     log.With("component", "contact"),
	}
}

func (s *contactService) NewWorkflow(ui UI) *Workflow {
	return NewWorkflow(ui, s.relay, s.to,
		WithRelayTimeout(s.timeout),
		WithLogger(s.log),
	)
}

func (s *contactService) Submit(ctx context.Context, clientKey string, ui UI) (Outcome, error) {
	release, err := s.guard.Acquire(ctx, clientKey)
	if err != nil {
		return Outcome{}, err
	}
	defer release()

	return s.NewWorkflow(ui).HandleSubmit(ctx)
}

// NewRelay builds the relay selected by cfg.Relay.Driver.
func NewRelay(cfg *config.Config, mail *email.Client, log *slog.Logger) (Relay, error) {
	switch strings.ToLower(cfg.Relay.Driver) {
	case config.RelayEmailJS:
		c, err := emailjs.New(emailjs.FromCentralConfig(cfg.Relay))
		if err != nil {
			return nil, err
		}
		return NewEmailJSRelay(c), nil
	case config.RelaySMTP:
		if mail == nil || !mail.IsEnabled() {
			return nil, fmt.Errorf("smtp relay requires an enabled email client")
		}
		return NewSMTPRelay(mail, cfg.Server.Domain), nil
	case config.RelayLog:
		return NewLogRelay(log), nil
	default:
		return nil, fmt.Errorf("unknown relay driver %q", cfg.Relay.Driver)
	}
}
