package emailjs

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/client"
)

// Client sends template emails through the EmailJS REST API.
type Client struct {
	cfg  Config
	http *client.Client
}

type sendRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

func New(cfg Config) (*Client, error) {
	if cfg.ServiceID == "" || cfg.TemplateID == "" || cfg.PublicKey == "" {
		return nil, ErrNotConfigured
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}

	hc := client.New()
	if cfg.Timeout > 0 {
		hc.SetTimeout(cfg.Timeout)
	}

	return &Client{cfg: cfg, http: hc}, nil
}

// Send delivers one email rendered from the configured template with params.
func (c *Client) Send(ctx context.Context, params map[string]string) error {
	resp, err := c.http.Post(c.cfg.Endpoint, client.Config{
		Ctx: ctx,
		Header: map[string]string{
			fiber.HeaderContentType: fiber.MIMEApplicationJSON,
		},
		Body: sendRequest{
			ServiceID:      c.cfg.ServiceID,
			TemplateID:     c.cfg.TemplateID,
			UserID:         c.cfg.PublicKey,
			AccessToken:    c.cfg.PrivateKey,
			TemplateParams: params,
		},
	})
	if err != nil {
		return fmt.Errorf("emailjs request failed: %w", err)
	}
	defer resp.Close()

	if resp.StatusCode() != fiber.StatusOK {
		return ErrStatus{Code: resp.StatusCode(), Body: strings.TrimSpace(resp.String())}
	}

	return nil
}
