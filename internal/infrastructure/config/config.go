package config

import (
	"errors"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the billing service.
// Values come from the environment (a local .env is loaded by main).
type Config struct {
	AppPort         string        `envconfig:"APP_PORT" default:"8080"`
	GinMode         string        `envconfig:"GIN_MODE" default:"debug"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	AWSRegion          string `envconfig:"AWS_REGION" default:"us-east-1"`
	AWSAccessKeyID     string `envconfig:"AWS_ACCESS_KEY_ID" default:"local"`
	AWSSecretAccessKey string `envconfig:"AWS_SECRET_ACCESS_KEY" default:"local"`
	DynamoDBEndpoint   string `envconfig:"DYNAMODB_ENDPOINT"`

	BillingCyclesTable string `envconfig:"BILLING_CYCLES_TABLE" default:"billing_cycles"`
	PaymentsTable      string `envconfig:"PAYMENTS_TABLE" default:"payment_obligations"`
	ExpensesTable      string `envconfig:"EXPENSES_TABLE" default:"expenses"`

	MercadoPagoAccessToken string `envconfig:"MERCADOPAGO_ACCESS_TOKEN"`
	MercadoPagoPayerEmail  string `envconfig:"MERCADOPAGO_TEST_PAYER_EMAIL"`
	PaymentGatewayMock     bool   `envconfig:"PAYMENT_GATEWAY_MOCK" default:"false"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.AppPort == "" {
		return nil, errors.New("APP_PORT must not be empty")
	}
	if cfg.BillingCyclesTable == "" || cfg.PaymentsTable == "" || cfg.ExpensesTable == "" {
		return nil, errors.New("dynamodb table names must not be empty")
	}
	return &cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.AppPort
}
