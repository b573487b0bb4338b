package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	// Firebase service account. When empty the server runs against the
	// in-memory store, which is only useful for local development.
	GoogleCredentials string `env:"GOOGLE_APPLICATION_CREDENTIALS"`

	JWTSecretKey        string `env:"JWT_SECRET_KEY"`
	JWTRefreshSecretKey string `env:"JWT_REFRESH_SECRET_KEY"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     string `env:"SMTP_PORT"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`

	RecaptchaProjectID   string `env:"GOOGLE_CLOUD_PROJECT_ID"`
	RecaptchaSiteKey     string `env:"RECAPTCHA_SITE_KEY"`
	RecaptchaCredentials string `env:"GOOGLE_APPLICATION_CREDENTIALS_RECAPTCHA"`

	ReminderInterval time.Duration `env:"REMINDER_INTERVAL" envDefault:"15m"`
}

// Load reads .env when present (local development) and then parses the
// environment into the config struct.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// SMTPConfigured reports whether the reminder mailer can send email.
func (c *Config) SMTPConfigured() bool {
	return c.SMTPHost != "" && c.SMTPPort != "" && c.SMTPUsername != "" && c.SMTPPassword != ""
}

// RecaptchaConfigured reports whether signup requests are assessed with
// reCAPTCHA Enterprise.
func (c *Config) RecaptchaConfigured() bool {
	return c.RecaptchaProjectID != "" && c.RecaptchaSiteKey != ""
}
