package config

import (
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/MarketingDevWebexpR/b2b-template-sub005/internal/catalog"
	"github.com/MarketingDevWebexpR/b2b-template-sub005/internal/search"
	pkgconfig "github.com/MarketingDevWebexpR/b2b-template-sub005/pkg/config"
	"github.com/MarketingDevWebexpR/b2b-template-sub005/pkg/database"
	"github.com/MarketingDevWebexpR/b2b-template-sub005/pkg/tracing"
)

const serviceName = "search-service"

// Config holds all configuration for the search service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	Version     string `env:"SERVICE_VERSION" envDefault:"dev"`

	// HTTP server
	HTTPPort           int           `env:"SEARCH_HTTP_PORT" envDefault:"8010"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	CORSOrigins        []string      `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	PprofAllowedCIDRs  []string      `env:"PPROF_ALLOWED_CIDRS" envSeparator:","`
	SuggestCacheMaxAge int           `env:"SUGGEST_CACHE_MAX_AGE" envDefault:"60"`

	// Catalog source: http, postgres or static.
	CatalogSource     string        `env:"CATALOG_SOURCE" envDefault:"http"`
	CatalogAPIURL     string        `env:"CATALOG_API_URL" envDefault:"http://localhost:8001/api/v1"`
	CatalogTimeout    time.Duration `env:"CATALOG_TIMEOUT" envDefault:"5s"`
	CatalogStaticFile string        `env:"CATALOG_STATIC_FILE" envDefault:"catalog.json"`

	// PostgreSQL
	PostgresHost      string        `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort      int           `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser      string        `env:"POSTGRES_USER" envDefault:"catalog"`
	PostgresPassword  string        `env:"POSTGRES_PASSWORD" envDefault:""`
	PostgresDB        string        `env:"POSTGRES_DB" envDefault:"catalog"`
	PostgresSSLMode   string        `env:"POSTGRES_SSLMODE" envDefault:"disable"`
	PostgresMaxConns  int32         `env:"POSTGRES_MAX_CONNS" envDefault:"10"`
	PostgresSlowQuery time.Duration `env:"POSTGRES_SLOW_QUERY" envDefault:"200ms"`

	// Redis (recent searches)
	RedisEnabled      bool          `env:"REDIS_ENABLED" envDefault:"true"`
	RedisHost         string        `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort         int           `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword     string        `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB           int           `env:"REDIS_DB" envDefault:"0"`
	RecentSearchLimit int           `env:"RECENT_SEARCH_LIMIT" envDefault:"10"`
	RecentSearchTTL   time.Duration `env:"RECENT_SEARCH_TTL" envDefault:"720h"`

	// Kafka (search analytics)
	KafkaBrokers        []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`
	SearchEventsEnabled bool     `env:"SEARCH_EVENTS_ENABLED" envDefault:"false"`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`

	// Rate limiting; RPS 0 disables it.
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"20"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"40"`

	// Search tuning
	DefaultPageSize     int     `env:"SEARCH_DEFAULT_PAGE_SIZE" envDefault:"20"`
	MaxPageSize         int     `env:"SEARCH_MAX_PAGE_SIZE" envDefault:"100"`
	FuzzyMatchThreshold float64 `env:"FUZZY_MATCH_THRESHOLD" envDefault:"0.5"`
	SuggestionThreshold float64 `env:"SUGGESTION_THRESHOLD" envDefault:"0.6"`

	Weights Weights
}

// Weights mirrors search.ScoringWeights.
type Weights struct {
	NameExact      float64 `env:"WEIGHT_NAME_EXACT" envDefault:"100"`
	Name           float64 `env:"WEIGHT_NAME" envDefault:"50"`
	ReferenceExact float64 `env:"WEIGHT_REFERENCE_EXACT" envDefault:"90"`
	Reference      float64 `env:"WEIGHT_REFERENCE" envDefault:"40"`
	EAN            float64 `env:"WEIGHT_EAN" envDefault:"85"`
	Collection     float64 `env:"WEIGHT_COLLECTION" envDefault:"30"`
	Brand          float64 `env:"WEIGHT_BRAND" envDefault:"25"`
	Materials      float64 `env:"WEIGHT_MATERIALS" envDefault:"20"`
	Description    float64 `env:"WEIGHT_DESCRIPTION" envDefault:"10"`
	AvailableBoost float64 `env:"WEIGHT_AVAILABLE_BOOST" envDefault:"1.1"`
	FeaturedBoost  float64 `env:"WEIGHT_FEATURED_BOOST" envDefault:"1.05"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load search config: %w", err)
	}
	return cfg, nil
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}

	switch c.CatalogSource {
	case catalog.SourceHTTP:
		u, err := url.Parse(c.CatalogAPIURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid CATALOG_API_URL: %q", c.CatalogAPIURL)
		}
	case catalog.SourcePostgres:
		if c.PostgresPort < 1 || c.PostgresPort > 65535 {
			return fmt.Errorf("invalid postgres port: %d", c.PostgresPort)
		}
	case catalog.SourceStatic:
		if c.CatalogStaticFile == "" {
			return fmt.Errorf("CATALOG_STATIC_FILE is required for the static catalog")
		}
	default:
		return fmt.Errorf("unknown catalog source %q (want http, postgres or static)", c.CatalogSource)
	}

	if c.RedisEnabled && (c.RedisPort < 1 || c.RedisPort > 65535) {
		return fmt.Errorf("invalid redis port: %d", c.RedisPort)
	}
	if c.RecentSearchLimit < 1 {
		return fmt.Errorf("RECENT_SEARCH_LIMIT must be positive, got %d", c.RecentSearchLimit)
	}
	if c.SearchEventsEnabled && len(c.KafkaBrokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required when search events are enabled")
	}
	if c.OTELSampleRate < 0 || c.OTELSampleRate > 1 {
		return fmt.Errorf("OTEL_SAMPLE_RATE must be within [0,1], got %v", c.OTELSampleRate)
	}
	if !inOpenUnit(c.FuzzyMatchThreshold) {
		return fmt.Errorf("FUZZY_MATCH_THRESHOLD must be within (0,1), got %v", c.FuzzyMatchThreshold)
	}
	if !inOpenUnit(c.SuggestionThreshold) {
		return fmt.Errorf("SUGGESTION_THRESHOLD must be within (0,1), got %v", c.SuggestionThreshold)
	}
	if c.DefaultPageSize < 1 || c.MaxPageSize < c.DefaultPageSize {
		return fmt.Errorf("invalid page sizes: default %d, max %d", c.DefaultPageSize, c.MaxPageSize)
	}
	if c.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must not be negative, got %v", c.RateLimitRPS)
	}
	for _, cidr := range c.PprofAllowedCIDRs {
		if _, _, err := net.ParseCIDR(cidr); err != nil {
			return fmt.Errorf("invalid PPROF_ALLOWED_CIDRS entry %q: %w", cidr, err)
		}
	}
	return nil
}

func inOpenUnit(v float64) bool {
	return v > 0 && v < 1
}

// ServiceName is the name reported in logs, metrics and traces.
func (c *Config) ServiceName() string {
	return serviceName
}

// ScoringWeights returns the relevance weights.
func (c *Config) ScoringWeights() search.ScoringWeights {
	w := c.Weights
	return search.ScoringWeights{
		NameExact:      w.NameExact,
		Name:           w.Name,
		ReferenceExact: w.ReferenceExact,
		Reference:      w.Reference,
		EAN:            w.EAN,
		Collection:     w.Collection,
		Brand:          w.Brand,
		Materials:      w.Materials,
		Description:    w.Description,
		AvailableBoost: w.AvailableBoost,
		FeaturedBoost:  w.FeaturedBoost,
	}
}

// EngineOptions returns the search engine tuning.
func (c *Config) EngineOptions() search.Options {
	weights := c.ScoringWeights()
	return search.Options{
		Weights:             &weights,
		FuzzyMatchThreshold: c.FuzzyMatchThreshold,
		SuggestionThreshold: c.SuggestionThreshold,
		DefaultPageSize:     c.DefaultPageSize,
	}
}

// Postgres returns the catalog database settings.
func (c *Config) Postgres() database.PostgresConfig {
	pg := database.DefaultPostgresConfig()
	pg.Host = c.PostgresHost
	pg.Port = c.PostgresPort
	pg.User = c.PostgresUser
	pg.Password = c.PostgresPassword
	pg.DBName = c.PostgresDB
	pg.SSLMode = c.PostgresSSLMode
	pg.MaxConns = c.PostgresMaxConns
	return pg
}

// Redis returns the recent-search store settings.
func (c *Config) Redis() database.RedisConfig {
	r := database.DefaultRedisConfig()
	r.Host = c.RedisHost
	r.Port = c.RedisPort
	r.Password = c.RedisPassword
	r.DB = c.RedisDB
	return r
}

// Tracing returns the OpenTelemetry settings.
func (c *Config) Tracing() tracing.Config {
	return tracing.Config{
		ServiceName:    serviceName,
		ServiceVersion: c.Version,
		Environment:    c.Environment,
		OTLPEndpoint:   c.OTELEndpoint,
		SampleRate:     c.OTELSampleRate,
		Enabled:        c.OTELEnabled,
	}
}
