package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	aws_pkg "booking-service/pkg/aws"
)

// ErrMissingStripeSecrets is returned when the Stripe API key or webhook
// signing secret is not configured.
var ErrMissingStripeSecrets = errors.New("missing required Stripe secrets: STRIPE_SECRET_KEY and STRIPE_WEBHOOK_SECRET must be set")

// Event backends for booking notifications.
const (
	EventsBackendNone  = ""
	EventsBackendSNS   = "sns"
	EventsBackendKafka = "kafka"
)

// Secrets Manager names read when AWS_USE_SECRETS=true.
const (
	SecretStripeKey     = "booking/STRIPE_SECRET_KEY"
	SecretWebhookSecret = "booking/STRIPE_WEBHOOK_SECRET"
	SecretDBCredentials = "booking/DB_CREDENTIALS"
)

type Config struct {
	Env         string `envconfig:"APP_ENV" default:"development"`
	ServiceName string `envconfig:"SERVICE_NAME" default:"booking-service"`
	Port        string `envconfig:"PORT" default:"8088"`

	PostgresUser     string `envconfig:"POSTGRES_USER"`
	PostgresPassword string `envconfig:"POSTGRES_PASSWORD"`
	PostgresDB       string `envconfig:"POSTGRES_DB"`
	PostgresHost     string `envconfig:"POSTGRES_HOST" default:"localhost"`
	PostgresPort     string `envconfig:"POSTGRES_PORT" default:"5432"`
	PostgresSSLMode  string `envconfig:"POSTGRES_SSLMODE" default:"disable"`
	PostgresTimeZone string `envconfig:"POSTGRES_TIMEZONE" default:"UTC"`

	StripeSecretKey           string        `envconfig:"STRIPE_SECRET_KEY"`
	StripeWebhookSecret       string        `envconfig:"STRIPE_WEBHOOK_SECRET"`
	StripeWebhookTolerance    time.Duration `envconfig:"STRIPE_WEBHOOK_TOLERANCE" default:"5m"`
	StripeIgnoreAPIVersion    bool          `envconfig:"STRIPE_IGNORE_API_VERSION_MISMATCH" default:"false"`
	VerificationFailureStatus int           `envconfig:"WEBHOOK_VERIFICATION_FAILURE_STATUS" default:"500"`
	CheckoutCurrency          string        `envconfig:"CHECKOUT_CURRENCY" default:"usd"`
	FrontendURL               string        `envconfig:"FRONTEND_URL" default:"http://localhost:3000"`

	DedupEnabled bool          `envconfig:"WEBHOOK_DEDUP_ENABLED" default:"false"`
	DedupTTL     time.Duration `envconfig:"WEBHOOK_DEDUP_TTL" default:"72h"`
	RedisURL     string        `envconfig:"REDIS_URL" default:"redis://localhost:6379"`

	EventsBackend      string   `envconfig:"EVENTS_BACKEND"`
	BookingSNSTopicARN string   `envconfig:"BOOKING_SNS_TOPIC_ARN"`
	KafkaBrokers       []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	KafkaBookingTopic  string   `envconfig:"KAFKA_BOOKING_TOPIC" default:"booking.confirmed"`

	UseAWSSecrets       bool   `envconfig:"AWS_USE_SECRETS" default:"false"`
	CloudWatchEnabled   bool   `envconfig:"CLOUDWATCH_ENABLED" default:"false"`
	CloudWatchLogGroup  string `envconfig:"CLOUDWATCH_LOG_GROUP" default:"/hotel-booking/services"`
	CloudWatchNamespace string `envconfig:"CLOUDWATCH_NAMESPACE" default:"HotelBooking"`

	RequestTimeout             time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`
	CheckoutRateLimitPerMinute int           `envconfig:"CHECKOUT_RATE_LIMIT_PER_MINUTE" default:"30"`
}

// Load reads an optional .env file, then the environment, then (when
// AWS_USE_SECRETS=true) Secrets Manager, and validates the result.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if cfg.UseAWSSecrets {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		awsCfg, err := aws_pkg.LoadAWSConfig(ctx)
		if err != nil {
			return nil, err
		}
		if err := cfg.ApplySecrets(ctx, aws_pkg.NewSecretsClient(awsCfg)); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplySecrets overrides Stripe keys and DB credentials with values from sm.
// Secrets that are missing or empty leave the environment value in place.
func (c *Config) ApplySecrets(ctx context.Context, sm aws_pkg.SecretGetter) error {
	if v, err := sm.GetSecret(ctx, SecretStripeKey); err == nil && v != "" {
		c.StripeSecretKey = v
	}
	if v, err := sm.GetSecret(ctx, SecretWebhookSecret); err == nil && v != "" {
		c.StripeWebhookSecret = v
	}

	dbjson, err := sm.GetSecret(ctx, SecretDBCredentials)
	if err != nil || dbjson == "" {
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal([]byte(dbjson), &m); err != nil {
		return fmt.Errorf("invalid %s secret: %w", SecretDBCredentials, err)
	}
	for key, dst := range map[string]*string{
		"POSTGRES_USER":     &c.PostgresUser,
		"POSTGRES_PASSWORD": &c.PostgresPassword,
		"POSTGRES_DB":       &c.PostgresDB,
		"POSTGRES_HOST":     &c.PostgresHost,
		"POSTGRES_PORT":     &c.PostgresPort,
	} {
		if v := m[key]; v != "" {
			*dst = v
		}
	}
	return nil
}

// Validate checks the settings the service cannot start without.
func (c *Config) Validate() error {
	if c.StripeSecretKey == "" || c.StripeWebhookSecret == "" {
		return ErrMissingStripeSecrets
	}
	if c.PostgresUser == "" || c.PostgresPassword == "" || c.PostgresDB == "" || c.PostgresHost == "" {
		return fmt.Errorf("database config incomplete")
	}
	if c.VerificationFailureStatus != http.StatusBadRequest && c.VerificationFailureStatus != http.StatusInternalServerError {
		return fmt.Errorf("WEBHOOK_VERIFICATION_FAILURE_STATUS must be 400 or 500, got %d", c.VerificationFailureStatus)
	}
	switch c.EventsBackend {
	case EventsBackendNone:
	case EventsBackendSNS:
		if c.BookingSNSTopicARN == "" {
			return fmt.Errorf("BOOKING_SNS_TOPIC_ARN is required when EVENTS_BACKEND=sns")
		}
	case EventsBackendKafka:
		if len(c.KafkaBrokers) == 0 || c.KafkaBookingTopic == "" {
			return fmt.Errorf("KAFKA_BROKERS and KAFKA_BOOKING_TOPIC are required when EVENTS_BACKEND=kafka")
		}
	default:
		return fmt.Errorf("unknown EVENTS_BACKEND %q", c.EventsBackend)
	}
	return nil
}

// PostgresDSN builds the gorm postgres DSN.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.PostgresHost, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresPort, c.PostgresSSLMode, c.PostgresTimeZone,
	)
}

// CheckoutSuccessURL and CheckoutCancelURL are where Stripe sends the guest back to.
func (c *Config) CheckoutSuccessURL() string { return c.FrontendURL + "/users/bookings?success=true" }
func (c *Config) CheckoutCancelURL() string  { return c.FrontendURL + "/rooms?canceled=true" }
