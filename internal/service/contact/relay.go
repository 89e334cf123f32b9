package contact

import (
	"context"
	"log/slog"

	"github.com/Alijeyrad/portfolio_backend/pkg/email"
	"github.com/Alijeyrad/portfolio_backend/pkg/emailjs"
	"github.com/Alijeyrad/portfolio_backend/pkg/reqctx"
)

// Recipient is the fixed destination of every submission.
type Recipient struct {
	Name  string
	Email string
}

// TemplateParams is the variable set a relay template receives.
type TemplateParams struct {
	UserName    string
	UserEmail   string
	UserSubject string
	UserMessage string
	ToName      string
	ToEmail     string
	ReplyTo     string
}

// NewTemplateParams maps a validated form onto the relay template variables.
func NewTemplateParams(f Form, to Recipient) TemplateParams {
	return TemplateParams{
		UserName:    f.Name,
		UserEmail:   f.Email,
		UserSubject: f.Subject,
		UserMessage: f.Message,
		ToName:      to.Name,
		ToEmail:     to.Email,
		ReplyTo:     f.Email,
	}
}

// Map returns the params keyed by template variable name.
func (p TemplateParams) Map() map[string]string {
	return map[string]string{
		"user_name":    p.UserName,
		"user_email":   p.UserEmail,
		"user_subject": p.UserSubject,
		"user_message": p.UserMessage,
		"to_name":      p.ToName,
		"to_email":     p.ToEmail,
		"reply_to":     p.ReplyTo,
	}
}

// Relay delivers a submission. Any error means the submission failed.
type Relay interface {
	Send(ctx context.Context, p TemplateParams) error
}

// RelayFunc adapts a function to Relay.
type RelayFunc func(ctx context.Context, p TemplateParams) error

func (f RelayFunc) Send(ctx context.Context, p TemplateParams) error { return f(ctx, p) }

// ---------------------------------------------------------------------------
// Drivers
// ---------------------------------------------------------------------------

// EmailJSRelay sends through the EmailJS template API.
type EmailJSRelay struct {
	client *emailjs.Client
}

func NewEmailJSRelay(c *emailjs.Client) *EmailJSRelay {
	return &EmailJSRelay{client: c}
}

func (r *EmailJSRelay) Send(ctx context.Context, p TemplateParams) error {
	if err := r.client.Send(ctx, p.Map()); err != nil {
		return ErrSend{Provider: "emailjs", Err: err}
	}
	return nil
}

// SMTPRelay renders the params into a mail and sends it over SMTP.
type SMTPRelay struct {
	client   *email.Client
	siteName string
}

func NewSMTPRelay(c *email.Client, siteName string) *SMTPRelay {
	return &SMTPRelay{client: c, siteName: siteName}
}

// requestIDHeader ties a delivered mail back to the request that sent it.
const requestIDHeader = "X-Request-Id"

func (r *SMTPRelay) Send(ctx context.Context, p TemplateParams) error {
	if err := r.client.Send(ctx, r.message(ctx, p)); err != nil {
		return ErrSend{Provider: "smtp", Err: err}
	}
	return nil
}

func (r *SMTPRelay) message(ctx context.Context, p TemplateParams) email.Message {
	msg := email.BuildContactEmail(email.ContactEmailData{
		RecipientName:  p.ToName,
		RecipientEmail: p.ToEmail,
		SenderName:     p.UserName,
		SenderEmail:    p.ReplyTo,
		Subject:        p.UserSubject,
		Body:           p.UserMessage,
		SiteName:       r.siteName,
	})
	if id := reqctx.RequestIDFromContext(ctx); id != "" {
		msg.Headers = map[string]string{requestIDHeader: id}
	}
	return msg
}

// LogRelay accepts every submission and only logs it. Development use.
type LogRelay struct {
	log *slog.Logger
}

func NewLogRelay(log *slog.Logger) *LogRelay {
	if log == nil {
		log = slog.Default()
	}
	return &LogRelay{log: log}
}

func (r *LogRelay) Send(ctx context.Context, p TemplateParams) error {
	r.log.InfoContext(ctx, "contact submission accepted by log relay",
		"from", p.UserEmail,
		"to", p.ToEmail,
		"subject", p.UserSubject,
	)
	return nil
}
