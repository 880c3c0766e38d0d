package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar overrides the YAML config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{"config.yaml", "config.yml"}

// Deactivation modes for the session guard fallback.
const (
	DeactivateExpired = "expired"
	DeactivateAny     = "any"
	DeactivateOff     = "off"
)

// Config holds application level configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Redis    RedisConfig    `koanf:"redis"`
	Auth     AuthConfig     `koanf:"auth"`
	Logging  LoggingConfig  `koanf:"logging"`
}

type ServerConfig struct {
	Port        string   `koanf:"port"`
	Environment string   `koanf:"environment"`
	SwaggerHost string   `koanf:"swagger_host"`
	CORSOrigins []string `koanf:"cors_origins"`
}

type DatabaseConfig struct {
	Driver          string        `koanf:"driver"`
	DSN             string        `koanf:"dsn"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	Reset           bool          `koanf:"reset"`
}

type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

type AuthConfig struct {
	JWTSecret           string        `koanf:"jwt_secret"`
	TokenTTL            time.Duration `koanf:"token_ttl"`
	DeactivateOnInvalid string        `koanf:"deactivate_on_invalid"`
	DeactivateTimeout   time.Duration `koanf:"deactivate_timeout"`
	BcryptCost          int           `koanf:"bcrypt_cost"`
}

type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        "8080",
			Environment: "production",
			CORSOrigins: []string{"*"},
		},
		Database: DatabaseConfig{
			Driver:          "mysql",
			DSN:             "user:password@tcp(localhost:3306)/moviedb?charset=utf8mb4&parseTime=True&loc=Local",
			MaxOpenConns:    20,
			MaxIdleConns:    10,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Auth: AuthConfig{
			TokenTTL:            time.Hour,
			DeactivateOnInvalid: DeactivateExpired,
			DeactivateTimeout:   5 * time.Second,
			BcryptCost:          10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds Config from defaults, an optional YAML file and the environment,
// in increasing order of precedence.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	if raw, ok := k.Get("server.cors_origins").(string); ok {
		if err := k.Set("server.cors_origins", parseCSV(raw)); err != nil {
			return nil, fmt.Errorf("set cors origins: %w", err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// envKeys maps flat environment variable names to koanf paths.
var envKeys = map[string]string{
	"SERVER_PORT":                "server.port",
	"PORT":                       "server.port",
	"ENVIRONMENT":                "server.environment",
	"SWAGGER_HOST":               "server.swagger_host",
	"CORS_ALLOWED_ORIGINS":       "server.cors_origins",
	"DB_DRIVER":                  "database.driver",
	"DATABASE_URL":               "database.dsn",
	"MYSQL_DSN":                  "database.dsn",
	"DB_MAX_OPEN_CONNS":          "database.max_open_conns",
	"DB_MAX_IDLE_CONNS":          "database.max_idle_conns",
	"DB_CONN_MAX_LIFETIME":       "database.conn_max_lifetime",
	"RESET_DB":                   "database.reset",
	"REDIS_ADDR":                 "redis.addr",
	"REDIS_PASSWORD":             "redis.password",
	"REDIS_DB":                   "redis.db",
	"JWT_SECRET":                 "auth.jwt_secret",
	"JWT_TTL":                    "auth.token_ttl",
	"AUTH_DEACTIVATE_ON_INVALID": "auth.deactivate_on_invalid",
	"AUTH_DEACTIVATE_TIMEOUT":    "auth.deactivate_timeout",
	"BCRYPT_COST":                "auth.bcrypt_cost",
	"LOG_LEVEL":                  "logging.level",
	"LOG_FORMAT":                 "logging.format",
}

// envTransformFunc returns "" for variables the application does not read,
// which makes koanf skip them.
func envTransformFunc(key string) string {
	return envKeys[strings.ToUpper(key)]
}

func findConfigFile() string {
	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func parseCSV(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// Validate performs minimal sanity checks.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if strings.TrimSpace(c.Database.DSN) == "" {
		errs = append(errs, errors.New("database dsn is required"))
	}
	switch c.Database.Driver {
	case "mysql", "postgres":
	default:
		errs = append(errs, fmt.Errorf("unsupported database driver %q", c.Database.Driver))
	}
	switch c.Auth.DeactivateOnInvalid {
	case DeactivateExpired, DeactivateAny, DeactivateOff:
	default:
		errs = append(errs, fmt.Errorf("unsupported deactivate_on_invalid mode %q", c.Auth.DeactivateOnInvalid))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("token ttl must be positive"))
	}
	return errors.Join(errs...)
}

// IsDevelopment reports whether internal error details may be exposed.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Server.Environment, "development")
}

// HTTPAddress returns the address the HTTP server binds to.
func (c *Config) HTTPAddress() string {
	return ":" + c.Server.Port
}
