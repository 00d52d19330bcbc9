// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
}

// PlunetConfig provides settings for the translation backend client.
type PlunetConfig interface {
	GetPlunetBaseURL() string
	GetPlunetAPIKey() string
	GetPlunetTimeout() time.Duration
}

// MollieConfig provides settings for the checkout provider client.
type MollieConfig interface {
	GetMollieBaseURL() string
	GetMollieAPIKey() string
	GetMollieTimeout() time.Duration
}

// EmailConfig provides settings for email sending.
type EmailConfig interface {
	GetEmailEnabled() bool
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromName() string
	GetEmailFromAddress() string
}

// AlertConfig provides settings for operator alert mails.
type AlertConfig interface {
	GetOperatorEmail() string
}

// PaymentPageConfig provides the public URLs woven into checkout sessions.
type PaymentPageConfig interface {
	GetPaymentPageBaseURL() string
	GetAppBaseURL() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                string
	HTTPAddr           string
	CORSAllowAll       bool
	CORSOrigins        []string
	PlunetBaseURL      string
	PlunetAPIKey       string
	PlunetTimeout      time.Duration
	MollieBaseURL      string
	MollieAPIKey       string
	MollieTimeout      time.Duration
	EmailEnabled       bool
	SMTPHost           string
	SMTPPort           int
	SMTPUsername       string
	SMTPPassword       string
	EmailFromName      string
	EmailFromAddress   string
	OperatorEmail      string
	PaymentPageBaseURL string
	AppBaseURL         string
}

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }

// PlunetConfig implementation
func (c *Config) GetPlunetBaseURL() string        { return c.PlunetBaseURL }
func (c *Config) GetPlunetAPIKey() string         { return c.PlunetAPIKey }
func (c *Config) GetPlunetTimeout() time.Duration { return c.PlunetTimeout }

// MollieConfig implementation
func (c *Config) GetMollieBaseURL() string        { return c.MollieBaseURL }
func (c *Config) GetMollieAPIKey() string         { return c.MollieAPIKey }
func (c *Config) GetMollieTimeout() time.Duration { return c.MollieTimeout }

// EmailConfig implementation
func (c *Config) GetEmailEnabled() bool       { return c.EmailEnabled }
func (c *Config) GetSMTPHost() string         { return c.SMTPHost }
func (c *Config) GetSMTPPort() int            { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string     { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string     { return c.SMTPPassword }
func (c *Config) GetEmailFromName() string    { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string { return c.EmailFromAddress }

// AlertConfig implementation
func (c *Config) GetOperatorEmail() string { return c.OperatorEmail }

// PaymentPageConfig implementation
func (c *Config) GetPaymentPageBaseURL() string { return c.PaymentPageBaseURL }
func (c *Config) GetAppBaseURL() string         { return c.AppBaseURL }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	emailEnabled := strings.EqualFold(getEnv("EMAIL_ENABLED", "true"), "true")
	smtpHost := getEnv("SMTP_HOST", "")

	cfg := &Config{
		Env:                getEnv("APP_ENV", "development"),
		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		CORSAllowAll:       strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true"),
		CORSOrigins:        splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200")),
		PlunetBaseURL:      strings.TrimRight(getEnv("PLUNET_BASE_URL", ""), "/"),
		PlunetAPIKey:       getEnv("PLUNET_API_KEY", ""),
		PlunetTimeout:      mustDuration(getEnv("PLUNET_TIMEOUT", "30s")),
		MollieBaseURL:      strings.TrimRight(getEnv("MOLLIE_BASE_URL", "https://api.mollie.com/v2"), "/"),
		MollieAPIKey:       getEnv("MOLLIE_API_KEY", ""),
		MollieTimeout:      mustDuration(getEnv("MOLLIE_TIMEOUT", "30s")),
		EmailEnabled:       emailEnabled && smtpHost != "",
		SMTPHost:           smtpHost,
		SMTPPort:           mustInt(getEnv("SMTP_PORT", "587")),
		SMTPUsername:       getEnv("SMTP_USERNAME", ""),
		SMTPPassword:       getEnv("SMTP_PASSWORD", ""),
		EmailFromName:      getEnv("EMAIL_FROM_NAME", "Website"),
		EmailFromAddress:   getEnv("EMAIL_FROM_ADDRESS", ""),
		OperatorEmail:      getEnv("OPERATOR_EMAIL", ""),
		PaymentPageBaseURL: strings.TrimRight(getEnv("PAYMENT_PAGE_BASE_URL", ""), "/"),
		AppBaseURL:         strings.TrimRight(getEnv("APP_BASE_URL", ""), "/"),
	}

	if cfg.PlunetBaseURL == "" {
		return nil, fmt.Errorf("PLUNET_BASE_URL is required")
	}
	if cfg.MollieAPIKey == "" {
		return nil, fmt.Errorf("MOLLIE_API_KEY is required")
	}
	if cfg.PaymentPageBaseURL == "" {
		return nil, fmt.Errorf("PAYMENT_PAGE_BASE_URL is required")
	}
	if cfg.AppBaseURL == "" {
		return nil, fmt.Errorf("APP_BASE_URL is required")
	}
	if cfg.EmailEnabled && cfg.EmailFromAddress == "" {
		return nil, fmt.Errorf("EMAIL_FROM_ADDRESS is required when email is enabled")
	}
	if cfg.EmailEnabled && cfg.OperatorEmail == "" {
		return nil, fmt.Errorf("OPERATOR_EMAIL is required when email is enabled")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}
