package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from .env, environment and flags.
type Config struct {
	RunAddress            string
	DatabaseURI           string
	JWTSecret             string
	TokenTTL              time.Duration
	EncryptSecret         string
	AppServerURL          string
	SMTPHost              string
	SMTPPort              int
	SMTPUsername          string
	SMTPPassword          string
	MailFrom              string
	MailWorkers           int
	MailQueueSize         int
	PaymentGatewayAddress string
	CORSAllowedOrigins    []string
	ShutdownTimeout       time.Duration
	LogLevel              string
}

const (
	defaultRunAddress      = ":8080"
	defaultJWTSecret       = "change-me-in-production"
	defaultTokenTTL        = 24 * time.Hour
	defaultSMTPPort        = 587
	defaultMailFrom        = "no-reply@storefront.local"
	defaultMailWorkers     = 2
	defaultMailQueueSize   = 64
	defaultShutdownTimeout = 10 * time.Second
	defaultLogLevel        = "info"
)

var dotenvFiles = []string{".env"}

// Load parses configuration from an optional .env file, environment variables and flags.
func Load() (*Config, error) {
	if err := loadDotenv(dotenvFiles...); err != nil {
		return nil, err
	}
	return load(os.Args[1:], os.LookupEnv)
}

// loadDotenv exports variables from the given files without overriding the
// process environment. Missing files are ignored.
func loadDotenv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:            getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:           getString(lookup, "DATABASE_URI", ""),
		JWTSecret:             getString(lookup, "JWT_SECRET", defaultJWTSecret),
		TokenTTL:              getDuration(lookup, "TOKEN_TTL", defaultTokenTTL),
		EncryptSecret:         getString(lookup, "ENCRYPT_SECRET", ""),
		AppServerURL:          getString(lookup, "APP_SERVER_URL", ""),
		SMTPHost:              getString(lookup, "SMTP_HOST", ""),
		SMTPPort:              getInt(lookup, "SMTP_PORT", defaultSMTPPort),
		SMTPUsername:          getString(lookup, "SMTP_USERNAME", ""),
		SMTPPassword:          getString(lookup, "SMTP_PASSWORD", ""),
		MailFrom:              getString(lookup, "MAIL_FROM", defaultMailFrom),
		MailWorkers:           getInt(lookup, "MAIL_WORKERS", defaultMailWorkers),
		MailQueueSize:         getInt(lookup, "MAIL_QUEUE_SIZE", defaultMailQueueSize),
		PaymentGatewayAddress: getString(lookup, "PAYMENT_GATEWAY_ADDRESS", ""),
		CORSAllowedOrigins:    getList(lookup, "CORS_ALLOWED_ORIGINS"),
		ShutdownTimeout:       getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		LogLevel:              getString(lookup, "LOG_LEVEL", defaultLogLevel),
	}

	flags := flag.NewFlagSet("storefront", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var (
		tokenTTLStr        = cfg.TokenTTL.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	flags.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	flags.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	flags.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	flags.StringVar(&tokenTTLStr, "token-ttl", tokenTTLStr, "Lifetime of issued auth tokens")
	flags.StringVar(&cfg.AppServerURL, "app-url", cfg.AppServerURL, "Public URL used in emailed links")
	flags.StringVar(&cfg.PaymentGatewayAddress, "payment-gateway", cfg.PaymentGatewayAddress, "Payment validation service base URL")
	flags.IntVar(&cfg.MailWorkers, "mail-workers", cfg.MailWorkers, "Number of concurrent email senders")
	flags.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")

	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.TokenTTL, err = time.ParseDuration(tokenTTLStr); err != nil {
		return nil, fmt.Errorf("invalid token ttl: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.SMTPPort <= 0 {
		cfg.SMTPPort = defaultSMTPPort
	}

	if cfg.MailWorkers <= 0 {
		cfg.MailWorkers = defaultMailWorkers
	}

	if cfg.MailQueueSize <= 0 {
		cfg.MailQueueSize = defaultMailQueueSize
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	cfg.AppServerURL = strings.TrimRight(cfg.AppServerURL, "/")

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.EncryptSecret == "" {
		return nil, fmt.Errorf("encrypt secret must be provided")
	}

	if cfg.AppServerURL == "" {
		return nil, fmt.Errorf("app server url must be provided")
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
