// Package config manages environment variables.
//
// It loads documented local-development defaults, overlays variables
// from the process environment (and a `.env` file when present), and
// validates the result so the app fails fast on bad config.
//
// Env vars are read using the VENUES_ prefix. Nesting uses "." or "__":
// VENUES_SERVER.PORT and VENUES_SERVER__PORT both map to server.port.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads `.env` into the process env before it is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix = "VENUES_"

	// DefaultSecretKey is the signing secret used for local development.
	// Production refuses to start with it.
	DefaultSecretKey = "venues-local-development-secret"

	// MinBcryptCost is the lowest password hashing cost accepted by config.
	MinBcryptCost = 10
)

// Storage drivers.
const (
	StorageDriverPostgres = "postgres"
	StorageDriverRedis    = "redis"
	StorageDriverMemory   = "memory"
)

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Storage       StorageConfig        `koanf:"storage" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Auth          AuthConfig           `koanf:"auth" validate:"required"`
	RateLimit     RateLimitConfig      `koanf:"rate_limit"`
	Jobs          JobsConfig           `koanf:"jobs"`
	Seed          SeedConfig           `koanf:"seed"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
	PublicDir          string   `koanf:"public_dir"`
	StaticDir          string   `koanf:"static_dir"`
}

// StorageConfig selects the engine backing the venue and credential stores.
type StorageConfig struct {
	Driver string `koanf:"driver" validate:"required,oneof=postgres redis memory"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
// URL, when set, takes precedence over the individual fields.
type DatabaseConfig struct {
	URL             string `koanf:"url"`
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// RedisConfig contains Redis connection details.
// Address is "host:port".
type RedisConfig struct {
	Address  string `koanf:"address" validate:"required"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

// AuthConfig stores the token signing secret and credential settings.
type AuthConfig struct {
	SecretKey               string        `koanf:"secret_key" validate:"required"`
	Issuer                  string        `koanf:"issuer" validate:"required"`
	TokenTTL                time.Duration `koanf:"token_ttl" validate:"required"`
	BcryptCost              int           `koanf:"bcrypt_cost" validate:"required"`
	RequireAuthForMutations bool          `koanf:"require_auth_for_mutations"`
}

// RateLimitConfig limits signup/login attempts per client IP.
// A non-positive rate disables the limiter.
type RateLimitConfig struct {
	AuthRequestsPerSecond float64 `koanf:"auth_requests_per_second"`
	AuthBurst             int     `koanf:"auth_burst"`
}

// JobsConfig toggles the asynq background worker.
type JobsConfig struct {
	Enabled          bool          `koanf:"enabled"`
	Concurrency      int           `koanf:"concurrency"`
	LinkCheckTimeout time.Duration `koanf:"link_check_timeout"`
}

// SeedConfig controls the seed-on-empty bootstrap. An empty File uses the
// dataset embedded in the binary.
type SeedConfig struct {
	Enabled bool   `koanf:"enabled"`
	File    string `koanf:"file"`
}

func defaults() map[string]any {
	return map[string]any{
		"primary.env": "local",

		"server.port":                 "3000",
		"server.read_timeout":         30,
		"server.write_timeout":        30,
		"server.idle_timeout":         60,
		"server.cors_allowed_origins": []string{"*"},
		"server.public_dir":           "public",
		"server.static_dir":           "static",

		"storage.driver": StorageDriverPostgres,

		"database.host":               "localhost",
		"database.port":               5432,
		"database.user":               "postgres",
		"database.password":           "postgres",
		"database.name":               "venues",
		"database.ssl_mode":           "disable",
		"database.max_open_conns":     25,
		"database.max_idle_conns":     25,
		"database.conn_max_lifetime":  300,
		"database.conn_max_idle_time": 300,

		"redis.address": "localhost:6379",
		"redis.db":      0,

		"auth.secret_key":                 DefaultSecretKey,
		"auth.issuer":                     "venues",
		"auth.token_ttl":                  "1h",
		"auth.bcrypt_cost":                12,
		"auth.require_auth_for_mutations": false,

		"rate_limit.auth_requests_per_second": 5,
		"rate_limit.auth_burst":               10,

		"jobs.enabled":            false,
		"jobs.concurrency":        5,
		"jobs.link_check_timeout": "10s",

		"seed.enabled": true,
		"seed.file":    "",

		"observability.service_name":                          "venues",
		"observability.environment":                           "local",
		"observability.logging.level":                         "info",
		"observability.logging.format":                        "json",
		"observability.logging.slow_query_threshold":          "100ms",
		"observability.new_relic.license_key":                 "",
		"observability.new_relic.app_log_forwarding_enabled":  true,
		"observability.new_relic.distributed_tracing_enabled": true,
		"observability.new_relic.debug_logging":               false,
		"observability.health_checks.enabled":                 true,
		"observability.health_checks.timeout":                 "5s",
		"observability.health_checks.checks":                  []string{"storage", "redis"},
	}
}

// LoadConfig builds a Config from defaults and VENUES_ env vars, then validates it.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("could not load config defaults: %w", err)
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		key := strings.TrimPrefix(s, envPrefix)
		return strings.ToLower(strings.ReplaceAll(key, "__", "."))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	if err := mainConfig.Validate(); err != nil {
		return nil, err
	}

	return mainConfig, nil
}

// Validate fills in the observability identity, checks struct tags and
// applies the rules tags cannot express.
func (c *Config) Validate() error {
	if c.Observability == nil {
		c.Observability = DefaultObservabilityConfig()
	}
	c.Observability.ServiceName = "venues"
	c.Observability.Environment = c.Primary.Env

	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if err := c.Observability.Validate(); err != nil {
		return fmt.Errorf("invalid observability config: %w", err)
	}

	if c.Auth.BcryptCost < MinBcryptCost {
		return fmt.Errorf("auth bcrypt_cost must be at least %d, got %d", MinBcryptCost, c.Auth.BcryptCost)
	}

	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth token_ttl must be positive")
	}

	if c.IsProduction() && c.Auth.SecretKey == DefaultSecretKey {
		return fmt.Errorf("auth secret_key must be set in production")
	}

	return nil
}

// IsProduction reports whether primary.env is "production".
func (c *Config) IsProduction() bool {
	return c.Primary.Env == "production"
}
