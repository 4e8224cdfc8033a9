package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from .env, environment and flags.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	AuthSecret      string
	AuthStrategy    string
	SessionSecret   string
	ShutdownTimeout time.Duration
	Debug           bool
	CORSOrigins     []string

	StripeSecretKey     string
	StripeWebhookSecret string
	Currency            string
	ChargeDescription   string

	SMTPHost        string
	SMTPPort        int
	SMTPUsername    string
	SMTPPassword    string
	MailFrom        string
	OperationsEmail string
	MailWorkers     int
	MailQueueSize   int

	RedisAddr string
}

const (
	defaultRunAddress        = ":8080"
	defaultAuthSecret        = "change-me-in-production"
	defaultAuthStrategy      = "hmac"
	defaultSessionSecret     = "change-me-session-secret"
	defaultShutdownTimeout   = 10 * time.Second
	defaultCurrency          = "usd"
	defaultChargeDescription = "Storefront order"
	defaultSMTPPort          = 587
	defaultMailFrom          = "noreply@storefront.local"
	defaultMailWorkers       = 2
	defaultMailQueueSize     = 64
)

// Load parses configuration from an optional .env file, environment variables and flags.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:          getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:         getString(lookup, "DATABASE_URI", ""),
		AuthSecret:          getString(lookup, "AUTH_SECRET", defaultAuthSecret),
		AuthStrategy:        getString(lookup, "AUTH_STRATEGY", defaultAuthStrategy),
		SessionSecret:       getString(lookup, "SESSION_SECRET", defaultSessionSecret),
		ShutdownTimeout:     getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		Debug:               getBool(lookup, "DEBUG", false),
		CORSOrigins:         getList(lookup, "CORS_ORIGINS"),
		StripeSecretKey:     getString(lookup, "STRIPE_SECRET_KEY", ""),
		StripeWebhookSecret: getString(lookup, "STRIPE_WEBHOOK_SECRET", ""),
		Currency:            getString(lookup, "CURRENCY", defaultCurrency),
		ChargeDescription:   getString(lookup, "CHARGE_DESCRIPTION", defaultChargeDescription),
		SMTPHost:            getString(lookup, "SMTP_HOST", ""),
		SMTPPort:            getInt(lookup, "SMTP_PORT", defaultSMTPPort),
		SMTPUsername:        getString(lookup, "SMTP_USERNAME", ""),
		SMTPPassword:        getString(lookup, "SMTP_PASSWORD", ""),
		MailFrom:            getString(lookup, "MAIL_FROM", defaultMailFrom),
		OperationsEmail:     getString(lookup, "OPERATIONS_EMAIL", ""),
		MailWorkers:         getInt(lookup, "MAIL_WORKERS", defaultMailWorkers),
		MailQueueSize:       getInt(lookup, "MAIL_QUEUE_SIZE", defaultMailQueueSize),
		RedisAddr:           getString(lookup, "REDIS_ADDR", ""),
	}

	fs := flag.NewFlagSet("storefront", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	shutdownTimeoutStr := cfg.ShutdownTimeout.String()

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.AuthStrategy, "auth-strategy", cfg.AuthStrategy, "Auth token strategy: hmac or jwt")
	fs.StringVar(&cfg.StripeSecretKey, "stripe-key", cfg.StripeSecretKey, "Stripe secret API key")
	fs.StringVar(&cfg.Currency, "currency", cfg.Currency, "ISO currency code used for charges")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Enable debug logging")
	fs.IntVar(&cfg.MailWorkers, "mail-workers", cfg.MailWorkers, "Number of concurrent mail workers")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error
	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	secrets := []struct {
		env    string
		target *string
	}{
		{"AUTH_SECRET_FILE", &cfg.AuthSecret},
		{"SESSION_SECRET_FILE", &cfg.SessionSecret},
		{"STRIPE_SECRET_KEY_FILE", &cfg.StripeSecretKey},
		{"STRIPE_WEBHOOK_SECRET_FILE", &cfg.StripeWebhookSecret},
		{"SMTP_PASSWORD_FILE", &cfg.SMTPPassword},
	}
	for _, s := range secrets {
		file, ok := lookup(s.env)
		if !ok || file == "" {
			continue
		}
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", strings.ToLower(s.env), err)
		}
		*s.target = strings.TrimSpace(string(content))
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}
	if cfg.MailWorkers <= 0 {
		cfg.MailWorkers = defaultMailWorkers
	}
	if cfg.MailQueueSize <= 0 {
		cfg.MailQueueSize = defaultMailQueueSize
	}
	if cfg.SMTPPort <= 0 {
		cfg.SMTPPort = defaultSMTPPort
	}
	cfg.Currency = strings.ToLower(cfg.Currency)

	if cfg.AuthStrategy != "hmac" && cfg.AuthStrategy != "jwt" {
		return nil, fmt.Errorf("unknown auth strategy %q", cfg.AuthStrategy)
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.StripeSecretKey == "" {
		return nil, fmt.Errorf("stripe secret key must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getBool(lookup envLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getList(lookup envLookup, key string) []string {
	v, ok := lookup(key)
	if !ok || v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
