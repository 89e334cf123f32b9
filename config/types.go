package config

import (
	"errors"
	"fmt"
	"strings"
)

type Config struct {
	Server        ServerConfig        `mapstructure:"server" yaml:"server"`
	Redis         RedisConfig         `mapstructure:"redis" yaml:"redis"`
	Email         EmailConfig         `mapstructure:"email" yaml:"email"`
	Relay         RelayConfig         `mapstructure:"relay" yaml:"relay"`
	Contact       ContactConfig       `mapstructure:"contact" yaml:"contact"`
	Observability ObservabilityConfig `mapstructure:"observability" yaml:"observability"`
	Logging       LoggingConfig       `mapstructure:"logging" yaml:"logging"`
}

type RedisConfig struct {
	Addr                string `mapstructure:"addr" yaml:"addr"`
	DB                  int    `mapstructure:"db" yaml:"db"`
	Username            string `mapstructure:"username" yaml:"username"`
	Password            string `mapstructure:"password" yaml:"password"`
	PoolSize            int    `mapstructure:"pool_size" yaml:"pool_size"`
	MinIdleConns        int    `mapstructure:"min_idle_conns" yaml:"min_idle_conns"`
	DialTimeoutSeconds  int    `mapstructure:"dial_timeout_seconds" yaml:"dial_timeout_seconds"`
	ReadTimeoutSeconds  int    `mapstructure:"read_timeout_seconds" yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `mapstructure:"write_timeout_seconds" yaml:"write_timeout_seconds"`
}

type ServerConfig struct {
	Port           int        `mapstructure:"port" yaml:"port"`
	TimeoutSeconds int        `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	Environment    string     `mapstructure:"environment" yaml:"environment"`
	Domain         string     `mapstructure:"domain" yaml:"domain"`
	CORS           CORSConfig `mapstructure:"cors" yaml:"cors"`

	// ProxyHeader carries the client IP, and is read only when the peer
	// is one of TrustedProxies (addresses or CIDR ranges). With no trusted
	// proxies the socket peer is the client.
	ProxyHeader    string   `mapstructure:"proxy_header" yaml:"proxy_header"`
	TrustedProxies []string `mapstructure:"trusted_proxies" yaml:"trusted_proxies"`
}

type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled" yaml:"enabled"`
	AllowOrigins     []string `mapstructure:"allow_origins" yaml:"allow_origins"`
	AllowMethods     []string `mapstructure:"allow_methods" yaml:"allow_methods"`
	AllowHeaders     []string `mapstructure:"allow_headers" yaml:"allow_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials" yaml:"allow_credentials"`
	MaxAgeSeconds    int      `mapstructure:"max_age_seconds" yaml:"max_age_seconds"`
}

type EmailConfig struct {
	Enabled bool       `mapstructure:"enabled" yaml:"enabled"`
	From    string     `mapstructure:"from" yaml:"from"`
	SMTP    SMTPConfig `mapstructure:"smtp" yaml:"smtp"`
}

type SMTPConfig struct {
	Host           string `mapstructure:"host" yaml:"host"`
	Port           int    `mapstructure:"port" yaml:"port"`
	Username       string `mapstructure:"username" yaml:"username"`
	Password       string `mapstructure:"password" yaml:"password"`
	UseTLS         bool   `mapstructure:"use_tls" yaml:"use_tls"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// Relay drivers.
const (
	RelayEmailJS = "emailjs"
	RelaySMTP    = "smtp"
	RelayLog     = "log"
)

type RelayConfig struct {
	Driver         string          `mapstructure:"driver" yaml:"driver"`
	TimeoutSeconds int             `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	Recipient      RecipientConfig `mapstructure:"recipient" yaml:"recipient"`
	EmailJS        EmailJSConfig   `mapstructure:"emailjs" yaml:"emailjs"`
}

// RecipientConfig is the fixed destination every submission is delivered to.
type RecipientConfig struct {
	Name  string `mapstructure:"name" yaml:"name"`
	Email string `mapstructure:"email" yaml:"email"`
}

type EmailJSConfig struct {
	Endpoint   string `mapstructure:"endpoint" yaml:"endpoint"`
	ServiceID  string `mapstructure:"service_id" yaml:"service_id"`
	TemplateID string `mapstructure:"template_id" yaml:"template_id"`
	// PublicKey is the browser-visible key; anyone serving the page can read it.
	PublicKey  string `mapstructure:"public_key" yaml:"public_key"`
	PrivateKey string `mapstructure:"private_key" yaml:"private_key"`
}

type ContactConfig struct {
	RateLimit       RateLimitConfig `mapstructure:"rate_limit" yaml:"rate_limit"`
	GuardTTLSeconds int             `mapstructure:"guard_ttl_seconds" yaml:"guard_ttl_seconds"`
}

type RateLimitConfig struct {
	Max           int `mapstructure:"max" yaml:"max"`
	WindowSeconds int `mapstructure:"window_seconds" yaml:"window_seconds"`
}

type ObservabilityConfig struct {
	Enabled        bool          `mapstructure:"enabled" yaml:"enabled"`
	ServiceName    string        `mapstructure:"service_name" yaml:"service_name"`
	ServiceVersion string        `mapstructure:"service_version" yaml:"service_version"`
	Tracing        TracingConfig `mapstructure:"tracing" yaml:"tracing"`
	Metrics        MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
}

type TracingConfig struct {
	Enabled      bool    `mapstructure:"enabled" yaml:"enabled"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint" yaml:"otlp_endpoint"`
	OTLPInsecure bool    `mapstructure:"otlp_insecure" yaml:"otlp_insecure"`
	SamplingRate float64 `mapstructure:"sampling_rate" yaml:"sampling_rate"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" yaml:"path"`
}

type LoggingConfig struct {
	Level  string       `mapstructure:"level" yaml:"level"`   // debug, info, warn, error
	Format string       `mapstructure:"format" yaml:"format"` // text, json
	Output OutputConfig `mapstructure:"output" yaml:"output"`
}

type OutputConfig struct {
	Stdout bool          `mapstructure:"stdout" yaml:"stdout"`
	File   FileLogConfig `mapstructure:"file" yaml:"file"`
	Loki   LokiConfig    `mapstructure:"loki" yaml:"loki"`
}

type FileLogConfig struct {
	Enabled    bool   `mapstructure:"enabled" yaml:"enabled"`
	Path       string `mapstructure:"path" yaml:"path"`               // e.g. "logs/app.log"
	MaxSizeMB  int    `mapstructure:"max_size_mb" yaml:"max_size_mb"` // rotate after N MB
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days" yaml:"max_age_days"`
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

type LokiConfig struct {
	Enabled  bool   `mapstructure:"enabled" yaml:"enabled"`
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"` // e.g. "http://localhost:3100"
	TenantID string `mapstructure:"tenant_id" yaml:"tenant_id"`
	Username string `mapstructure:"username" yaml:"username"` // for Grafana Cloud basic auth
	Password string `mapstructure:"password" yaml:"password"`
}

func (c *Config) Validate() error {
	var errs []error

	if c.Relay.Recipient.Email == "" {
		errs = append(errs, errors.New("relay.recipient.email is required"))
	}

	switch strings.ToLower(c.Relay.Driver) {
	case RelayEmailJS:
		if c.Relay.EmailJS.ServiceID == "" || c.Relay.EmailJS.TemplateID == "" {
			errs = append(errs, errors.New("relay.emailjs.service_id and relay.emailjs.template_id are required"))
		}
		if c.Relay.EmailJS.PublicKey == "" {
			errs = append(errs, errors.New("relay.emailjs.public_key is required"))
		}
	case RelaySMTP:
		if !c.Email.Enabled {
			errs = append(errs, errors.New("email.enabled must be true for the smtp relay"))
		}
		if c.Email.SMTP.Host == "" {
			errs = append(errs, errors.New("email.smtp.host is required for the smtp relay"))
		}
	case RelayLog:
	default:
		errs = append(errs, fmt.Errorf("unknown relay driver %q", c.Relay.Driver))
	}

	if len(c.Server.TrustedProxies) > 0 && c.Server.ProxyHeader == "" {
		errs = append(errs, errors.New("server.proxy_header is required when server.trusted_proxies is set"))
	}

	if c.Logging.Output.Loki.Enabled && c.Logging.Output.Loki.Endpoint == "" {
		errs = append(errs, errors.New("logging.output.loki.endpoint is required when loki is enabled"))
	}

	return errors.Join(errs...)
}

// Redacted returns a copy with every secret replaced, safe to print.
func (c Config) Redacted() Config {
	const mask = "********"
	redact := func(s string) string {
		if s == "" {
			return s
		}
		return mask
	}
	c.Redis.Password = redact(c.Redis.Password)
	c.Email.SMTP.Password = redact(c.Email.SMTP.Password)
	c.Relay.EmailJS.PrivateKey = redact(c.Relay.EmailJS.PrivateKey)
	c.Logging.Output.Loki.Password = redact(c.Logging.Output.Loki.Password)
	return c
}
