package emailjs

import (
	"time"

	"github.com/Alijeyrad/portfolio_backend/config"
)

const DefaultEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// Config identifies the EmailJS account, service and template to send through.
type Config struct {
	Endpoint   string
	ServiceID  string
	TemplateID string
	PublicKey  string
	PrivateKey string
	Timeout    time.Duration
}

// FromCentralConfig converts central config.RelayConfig to package Config
func FromCentralConfig(c config.RelayConfig) Config {
	cfg := Config{
		Endpoint:   c.EmailJS.Endpoint,
		ServiceID:  c.EmailJS.ServiceID,
		TemplateID: c.EmailJS.TemplateID,
		PublicKey:  c.EmailJS.PublicKey,
		PrivateKey: c.EmailJS.PrivateKey,
		Timeout:    time.Duration(c.TimeoutSeconds) * time.Second,
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	return cfg
}
