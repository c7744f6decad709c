package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/text/currency"
)

const (
	EnvPrefix = "STOREFRONT"

	EnvAppEnv = "STOREFRONT_APP_ENV"
	EnvDBDSN  = "STOREFRONT_DB_DSN"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Checkout CheckoutConfig
	Store    StoreConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Checkout.validate(); err != nil {
		return nil, err
	}
	if _, err := cfg.Store.Unit(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOREFRONT_APP_ENV" required:"true"`
	Port         string `envconfig:"STOREFRONT_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"STOREFRONT_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

type DBConfig struct {
	DSN             string        `envconfig:"STOREFRONT_DB_DSN" required:"true"`
	MaxConns        int32         `envconfig:"STOREFRONT_DB_MAX_CONNS" default:"20"`
	MinConns        int32         `envconfig:"STOREFRONT_DB_MIN_CONNS" default:"2"`
	ConnMaxLifetime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_LIFETIME" default:"1h"`
	AutoMigrate     bool          `envconfig:"STOREFRONT_DB_AUTO_MIGRATE" default:"false"`
}

type CheckoutConfig struct {
	MaxAttempts int           `envconfig:"STOREFRONT_CHECKOUT_MAX_ATTEMPTS" default:"3"`
	Timeout     time.Duration `envconfig:"STOREFRONT_CHECKOUT_TIMEOUT" default:"5s"`
	BaseBackoff time.Duration `envconfig:"STOREFRONT_CHECKOUT_BASE_BACKOFF" default:"20ms"`
	LockTimeout time.Duration `envconfig:"STOREFRONT_CHECKOUT_LOCK_TIMEOUT" default:"2s"`
}

func (c CheckoutConfig) validate() error {
	if c.MaxAttempts < 1 {
		return fmt.Errorf("checkout max attempts must be at least 1, got %d", c.MaxAttempts)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("checkout timeout must be positive, got %s", c.Timeout)
	}
	if c.BaseBackoff <= 0 {
		return fmt.Errorf("checkout base backoff must be positive, got %s", c.BaseBackoff)
	}
	return nil
}

type StoreConfig struct {
	Currency string `envconfig:"STOREFRONT_CURRENCY" default:"USD"`
}

func (s StoreConfig) Unit() (currency.Unit, error) {
	unit, err := currency.ParseISO(s.Currency)
	if err != nil {
		return currency.Unit{}, fmt.Errorf("store currency[%s] is not valid: %w", s.Currency, err)
	}
	return unit, nil
}
