package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-sql-driver/mysql"

	errorz "github.com/jack5341/otel-order-chain/internal/errors"
)

// Common holds the settings every service in the chain reads.
type Common struct {
	Port              string        `env:"PORT"`
	ServiceName       string        `env:"SERVICE_NAME"`
	LogLevel          string        `env:"LOG_LEVEL" envDefault:"info"`
	CollectorEndpoint string        `env:"JAEGER_ENDPOINT,required,notEmpty"`
	ShutdownTimeoutS  int           `env:"SHUTDOWN_TIMEOUT_SECONDS" envDefault:"10"`
	ShutdownTimeout   time.Duration `env:"-"`
}

type Gateway struct {
	Common
	OrderServiceEndpoint string        `env:"ORDERSERVICE_ENDPOINT,required,notEmpty"`
	OutboundTimeoutS     int           `env:"OUTBOUND_TIMEOUT_SECONDS" envDefault:"30"`
	OutboundTimeout      time.Duration `env:"-"`
}

type OrderService struct {
	Common
	PaymentServiceEndpoint string        `env:"PAYMENTSERVICE_ENDPOINT,required,notEmpty"`
	MySQLConnection        string        `env:"MYSQL_CONNECTION,required,notEmpty"`
	OutboundTimeoutS       int           `env:"OUTBOUND_TIMEOUT_SECONDS" envDefault:"30"`
	OutboundTimeout        time.Duration `env:"-"`
}

type PaymentService struct {
	Common
	MinDelayMs int           `env:"PAYMENT_MIN_DELAY_MS" envDefault:"80"`
	MaxDelayMs int           `env:"PAYMENT_MAX_DELAY_MS" envDefault:"200"`
	MinDelay   time.Duration `env:"-"`
	MaxDelay   time.Duration `env:"-"`
}

func LoadGateway() (Gateway, error) {
	cfg := Gateway{}
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Common.finish("gateway", "8080"); err != nil {
		return cfg, err
	}
	if err := validateEndpoint("ORDERSERVICE_ENDPOINT", cfg.OrderServiceEndpoint); err != nil {
		return cfg, err
	}
	cfg.OutboundTimeout = time.Duration(cfg.OutboundTimeoutS) * time.Second
	return cfg, nil
}

func LoadOrderService() (OrderService, error) {
	cfg := OrderService{}
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Common.finish("orderservice", "8081"); err != nil {
		return cfg, err
	}
	if err := validateEndpoint("PAYMENTSERVICE_ENDPOINT", cfg.PaymentServiceEndpoint); err != nil {
		return cfg, err
	}
	if _, err := mysql.ParseDSN(cfg.MySQLConnection); err != nil {
		return cfg, errors.Join(errorz.ErrInvalidConfig, fmt.Errorf("MYSQL_CONNECTION: %w", err))
	}
	cfg.OutboundTimeout = time.Duration(cfg.OutboundTimeoutS) * time.Second
	return cfg, nil
}

func LoadPaymentService() (PaymentService, error) {
	cfg := PaymentService{}
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Common.finish("paymentservice", "8082"); err != nil {
		return cfg, err
	}
	if cfg.MinDelayMs < 0 || cfg.MaxDelayMs <= cfg.MinDelayMs {
		return cfg, fmt.Errorf("%w: payment delay range [%d, %d) is empty", errorz.ErrInvalidConfig, cfg.MinDelayMs, cfg.MaxDelayMs)
	}
	cfg.MinDelay = time.Duration(cfg.MinDelayMs) * time.Millisecond
	cfg.MaxDelay = time.Duration(cfg.MaxDelayMs) * time.Millisecond
	return cfg, nil
}

func (c *Common) finish(serviceName, port string) error {
	if c.ServiceName == "" {
		c.ServiceName = serviceName
	}
	if c.Port == "" {
		c.Port = port
	}
	if err := validateEndpoint("JAEGER_ENDPOINT", c.CollectorEndpoint); err != nil {
		return err
	}
	c.ShutdownTimeout = time.Duration(c.ShutdownTimeoutS) * time.Second
	return nil
}

// validateEndpoint rejects anything that is not an absolute http(s) URL with a host.
func validateEndpoint(name, raw string) error {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return errors.Join(errorz.ErrInvalidConfig, fmt.Errorf("%s: %w", name, err))
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %s must be an absolute http(s) URL, got %q", errorz.ErrInvalidConfig, name, raw)
	}
	return nil
}
