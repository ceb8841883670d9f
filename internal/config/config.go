package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type NotificationTransport string

const (
	NotificationTransportSES      NotificationTransport = "ses"
	NotificationTransportRabbitMQ NotificationTransport = "rabbitmq"
)

type Config struct {
	IsTestMode bool `env:"TEST_MODE" envDefault:"false"`
	Port       uint `env:"PORT" envDefault:"9090"`

	Secret        string `env:"SECRET,required,notEmpty,unset"`
	PostgresqlURL string `env:"POSTGRESQL_URL,required,notEmpty,unset"`
	RedisURL      string `env:"REDIS_URL,required,notEmpty,unset"`

	RabbitmqURL                string `env:"RABBITMQ_URL"`
	RabbitmqPasswordResetQueue string `env:"RABBITMQ_PASSWORD_RESET_QUEUE" envDefault:"password_reset_link"`

	NotificationTransport NotificationTransport `env:"NOTIFICATION_TRANSPORT" envDefault:"ses"`

	BcryptHasherCost           int           `env:"BCRYPT_HASHER_COST" envDefault:"10"`
	PasswordResetValidDuration time.Duration `env:"PASSWORD_RESET_VALID_DURATION" envDefault:"1h"`
	PasswordResetURL           url.URL       `env:"PASSWORD_RESET_URL" envDefault:"http://localhost:3000/reset-password"`
	PasswordResetRateLimit     uint16        `env:"PASSWORD_RESET_RATE_LIMIT" envDefault:"3"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	AwsRegion                     string `env:"AWS_REGION"`
	AwsAccessKey                  string `env:"AWS_ACCESS_KEY,unset"`
	AwsSecretKey                  string `env:"AWS_SECRET_KEY,unset"`
	AwsEmailSender                string `env:"AWS_EMAIL_SENDER"`
	AwsEmailPasswordResetTemplate string `env:"AWS_EMAIL_PASSWORD_RESET_TEMPLATE" envDefault:"password-reset"`

	SentryDsn *url.URL `env:"SENTRY_DSN"`

	MigrationsPath string `env:"MIGRATIONS_PATH" envDefault:"migrations"`
}

// Load reads the configuration from the environment, a local .env file
// takes effect for variables that are not set yet.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("could not read .env file: %w", err)
	}

	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, err
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) validate() error {
	if c.PasswordResetValidDuration <= 0 {
		return errors.New("PASSWORD_RESET_VALID_DURATION must be positive")
	}
	if c.PasswordResetRateLimit == 0 {
		return errors.New("PASSWORD_RESET_RATE_LIMIT must be positive")
	}
	if c.PasswordResetURL.Scheme == "" || c.PasswordResetURL.Host == "" {
		return errors.New("PASSWORD_RESET_URL must be an absolute URL")
	}
	switch c.NotificationTransport {
	case NotificationTransportSES:
		if c.AwsRegion == "" || c.AwsEmailSender == "" {
			return errors.New("AWS_REGION and AWS_EMAIL_SENDER must be set for the ses transport")
		}
	case NotificationTransportRabbitMQ:
		if c.RabbitmqURL == "" {
			return errors.New("RABBITMQ_URL must be set for the rabbitmq transport")
		}
	default:
		return fmt.Errorf("unknown NOTIFICATION_TRANSPORT %q", c.NotificationTransport)
	}
	return nil
}

// ValidateMailer checks what the mailer needs regardless of
// NOTIFICATION_TRANSPORT: it always consumes from RabbitMQ and sends via SES.
func (c *Config) ValidateMailer() error {
	if c.RabbitmqURL == "" {
		return errors.New("RABBITMQ_URL must be set for the mailer")
	}
	if c.AwsRegion == "" || c.AwsEmailSender == "" {
		return errors.New("AWS_REGION and AWS_EMAIL_SENDER must be set for the mailer")
	}
	return nil
}
