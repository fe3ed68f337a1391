package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	IsTestMode bool `env:"TEST_MODE" envDefault:"false"`
	Port       int  `env:"PORT" envDefault:"9090"`

	Secret        string `env:"SECRET,required"`
	PostgresqlURL string `env:"POSTGRESQL_URL,required"`

	BcryptHasherCost                int           `env:"BCRYPT_HASHER_COST" envDefault:"10"`
	PasswordResetValidDurationHours int           `env:"PASSWORD_RESET_VALID_DURATION_HOURS" envDefault:"1"`
	PasswordResetSendTimeout        time.Duration `env:"PASSWORD_RESET_SEND_TIMEOUT" envDefault:"30s"`
	PasswordResetBaseUrl            url.URL       `env:"PASSWORD_RESET_BASE_URL" envDefault:"http://localhost:3000/password-reset"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"*"`

	AwsRegion                     string `env:"AWS_REGION" envDefault:"us-east-1"`
	AwsAccessKey                  string `env:"AWS_ACCESS_KEY"`
	AwsSecretKey                  string `env:"AWS_SECRET_KEY"`
	AwsEmailSender                string `env:"AWS_EMAIL_SENDER"`
	AwsEmailPasswordResetTemplate string `env:"AWS_EMAIL_PASSWORD_RESET_TEMPLATE" envDefault:"PasswordReset"`

	SmtpHost     string `env:"SMTP_HOST"`
	SmtpPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SmtpUsername string `env:"SMTP_USERNAME"`
	SmtpPassword string `env:"SMTP_PASSWORD"`
	SmtpSender   string `env:"SMTP_SENDER"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("could not load config: %w", err)
	}
	if cfg.AwsEmailSender == "" && cfg.SmtpHost == "" {
		return nil, fmt.Errorf("either AWS_EMAIL_SENDER or SMTP_HOST must be set")
	}
	return cfg, nil
}

func (c *Config) PasswordResetValidDuration() time.Duration {
	return time.Duration(c.PasswordResetValidDurationHours) * time.Hour
}
