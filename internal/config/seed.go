package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/MarketingDevWebexpR/b2b-template-sub005/pkg/config"
	"github.com/MarketingDevWebexpR/b2b-template-sub005/pkg/database"
)

// Seed targets.
const (
	SeedTargetFile     = "file"
	SeedTargetPostgres = "postgres"
)

// SeedConfig holds the settings of the demo catalog generator.
type SeedConfig struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	Products  int    `env:"SEED_PRODUCTS" envDefault:"1000"`
	Seed      uint64 `env:"SEED_SEED" envDefault:"42"`
	Target    string `env:"SEED_TARGET" envDefault:"file"`
	Output    string `env:"SEED_OUTPUT" envDefault:"catalog.json"`
	BatchSize int    `env:"SEED_BATCH_SIZE" envDefault:"500"`

	PostgresHost     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser     string `env:"POSTGRES_USER" envDefault:"catalog"`
	PostgresPassword string `env:"POSTGRES_PASSWORD" envDefault:""`
	PostgresDB       string `env:"POSTGRES_DB" envDefault:"catalog"`
	PostgresSSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`

	Timeout time.Duration `env:"SEED_TIMEOUT" envDefault:"5m"`
}

// LoadSeed reads the generator configuration from environment variables.
func LoadSeed() (*SeedConfig, error) {
	cfg := &SeedConfig{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the generator settings.
func (c *SeedConfig) Validate() error {
	if c.Products < 1 {
		return fmt.Errorf("SEED_PRODUCTS must be positive, got %d", c.Products)
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("SEED_BATCH_SIZE must be positive, got %d", c.BatchSize)
	}
	switch c.Target {
	case SeedTargetFile:
		if c.Output == "" {
			return fmt.Errorf("SEED_OUTPUT is required when SEED_TARGET is %q", SeedTargetFile)
		}
	case SeedTargetPostgres:
	default:
		return fmt.Errorf("SEED_TARGET must be %q or %q, got %q", SeedTargetFile, SeedTargetPostgres, c.Target)
	}
	return nil
}

// Postgres returns the database settings used by the postgres target.
func (c *SeedConfig) Postgres() database.PostgresConfig {
	pg := database.DefaultPostgresConfig()
	pg.Host = c.PostgresHost
	pg.Port = c.PostgresPort
	pg.User = c.PostgresUser
	pg.Password = c.PostgresPassword
	pg.DBName = c.PostgresDB
	pg.SSLMode = c.PostgresSSLMode
	return pg
}
