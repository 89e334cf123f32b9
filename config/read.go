package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Alijeyrad/portfolio_backend/pkg/constants"
)

// ReadConfig loads configuration from configPath, which names either a
// config file or a directory searched for config.yaml.
func ReadConfig(configPath string) (*Config, error) {
	dir, file := configPath, ""
	if info, err := os.Stat(configPath); configPath != "" && (err != nil || !info.IsDir()) {
		dir, file = filepath.Dir(configPath), configPath
	}

	// A .env next to the config file seeds the environment; real env vars win.
	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigType(constants.ConfigFormat)
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(constants.ConfigName)
		v.AddConfigPath(dir)
	}

	// Allow env vars to override config values.
	// e.g. PORTFOLIO_RELAY_EMAILJS_PUBLIC_KEY overrides relay.emailjs.public_key
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// The config file is optional in container environments.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// setDefaults registers every key so AutomaticEnv can also fill keys that are
// absent from the file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.timeout_seconds", 30)
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.domain", "")
	v.SetDefault("server.proxy_header", "X-Forwarded-For")
	v.SetDefault("server.trusted_proxies", []string{})
	v.SetDefault("server.cors.enabled", false)
	v.SetDefault("server.cors.allow_origins", []string{})

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.username", "")
	v.SetDefault("redis.password", "")

	v.SetDefault("email.enabled", false)
	v.SetDefault("email.from", "")
	v.SetDefault("email.smtp.host", "")
	v.SetDefault("email.smtp.port", 587)
	v.SetDefault("email.smtp.username", "")
	v.SetDefault("email.smtp.password", "")
	v.SetDefault("email.smtp.use_tls", true)
	v.SetDefault("email.smtp.timeout_seconds", 30)

	v.SetDefault("relay.driver", RelayEmailJS)
	v.SetDefault("relay.timeout_seconds", 15)
	v.SetDefault("relay.recipient.name", "")
	v.SetDefault("relay.recipient.email", "")
	v.SetDefault("relay.emailjs.endpoint", "https://api.emailjs.com/api/v1.0/email/send")
	v.SetDefault("relay.emailjs.service_id", "")
	v.SetDefault("relay.emailjs.template_id", "")
	v.SetDefault("relay.emailjs.public_key", "")
	v.SetDefault("relay.emailjs.private_key", "")

	v.SetDefault("contact.rate_limit.max", 5)
	v.SetDefault("contact.rate_limit.window_seconds", 60)
	v.SetDefault("contact.guard_ttl_seconds", 60)

	v.SetDefault("observability.enabled", false)
	v.SetDefault("observability.service_name", constants.AppName)
	v.SetDefault("observability.service_version", "dev")
	v.SetDefault("observability.metrics.path", "/metrics")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output.stdout", true)
	v.SetDefault("logging.output.loki.enabled", false)
	v.SetDefault("logging.output.loki.endpoint", "")
}
