package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Fieldbook"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	Store struct {
		// Driver selects the backend: "memory" (default) or "postgres".
		Driver string `envconfig:"STORE_DRIVER" default:"memory"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"fieldbook"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Finance struct {
		// StrictPayments rejects payments above the outstanding balance.
		StrictPayments bool `envconfig:"FINANCE_STRICT_PAYMENTS" default:"false"`
	}

	Inventory struct {
		// RestoreOnReduction puts stock back when a material selection shrinks.
		RestoreOnReduction bool `envconfig:"INVENTORY_RESTORE_ON_REDUCTION" default:"false"`
		// ExactMatch switches the stock matcher from substring to exact-name.
		ExactMatch bool `envconfig:"INVENTORY_EXACT_MATCH" default:"false"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
