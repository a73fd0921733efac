// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file,
// when present), loads them into structured Go types and validates that
// required values are present so they can be reused across the
// application runtime.
package config

import (
	"fmt"
	"net"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: a `.env` file, if present, is loaded into the
	// process env before anything reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/robfig/cron/v3"
)

// EnvPrefix is stripped from every variable koanf reads.
const EnvPrefix = "CAMFLEET_"

/*
	Env vars are read using the CAMFLEET_ prefix. The first segment after the
	prefix names the config block and the rest is the field:

	  CAMFLEET_DATABASE_URL               -> database.url
	  CAMFLEET_SERVER_READ_TIMEOUT        -> server.read_timeout
	  CAMFLEET_OBSERVABILITY_LOGGING_LEVEL -> observability.logging.level

	The dotted form (CAMFLEET_DATABASE.URL) keeps working as well. A plain
	DATABASE_URL is honored when CAMFLEET_DATABASE_URL is not set.
*/

// Config is the root configuration object for the application.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis"`
	Auth          AuthConfig           `koanf:"auth"`
	Session       SessionConfig        `koanf:"session"`
	Email         EmailConfig          `koanf:"email"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"gte=0"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"gte=0"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"gte=0"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
//
// URL, when set, wins over the discrete connection fields.
type DatabaseConfig struct {
	URL             string `koanf:"url"`
	Host            string `koanf:"host"`
	Port            int    `koanf:"port"`
	User            string `koanf:"user"`
	Password        string `koanf:"password"`
	Name            string `koanf:"name"`
	SSLMode         string `koanf:"ssl_mode"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"gte=0"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"gte=0"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"gte=0"`
}

// DSN returns the connection string pgx should use.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}

	hostPort := net.JoinHostPort(d.Host, strconv.Itoa(d.Port))

	// The password may contain URL-reserved characters.
	encodedPassword := url.QueryEscape(d.Password)

	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		d.User,
		encodedPassword,
		hostPort,
		d.Name,
		d.SSLMode,
	)
}

// Validate reports whether enough is configured to reach the database.
func (d DatabaseConfig) Validate() error {
	if d.URL != "" {
		return nil
	}

	var missing []string
	for name, value := range map[string]string{
		"host": d.Host,
		"user": d.User,
		"name": d.Name,
	} {
		if value == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("database is not configured: set %sDATABASE_URL, %s or database %s",
			EnvPrefix, fallbackDatabaseURL, strings.Join(missing, ", "))
	}
	return nil
}

// RedisConfig contains Redis connection details ("host:port").
//
// Redis backs the login rate limiter and the job queue. Leaving it empty
// disables both.
type RedisConfig struct {
	Address  string `koanf:"address"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

// Enabled reports whether a Redis address was configured.
func (r RedisConfig) Enabled() bool {
	return r.Address != ""
}

// AuthConfig controls how passwords are stored and how hard /auth can be hit.
type AuthConfig struct {
	// PasswordScheme is used for newly written hashes. Stored hashes are
	// verified by whatever scheme they were written with.
	PasswordScheme string `koanf:"password_scheme" validate:"oneof=sha256 bcrypt"`

	// LoginAttempts per LoginWindow per client IP. Zero disables the limiter.
	LoginAttempts int           `koanf:"login_attempts" validate:"gte=0"`
	LoginWindow   time.Duration `koanf:"login_window"`
}

// SessionConfig controls the session lifecycle.
type SessionConfig struct {
	TTL time.Duration `koanf:"ttl" validate:"gt=0"`

	// Retention is how long an expired session row stays around before the
	// purge task hard-deletes it.
	Retention time.Duration `koanf:"retention" validate:"gte=0"`

	// PurgeSchedule is a cron spec ("@hourly", "*/15 * * * *").
	PurgeSchedule string `koanf:"purge_schedule"`
}

// EmailConfig configures transactional email through Resend.
type EmailConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
	From         string `koanf:"from"`
}

// Enabled reports whether outgoing email is configured.
func (e EmailConfig) Enabled() bool {
	return e.ResendAPIKey != ""
}

// applyDefaults fills optional values that were not provided.
func (c *Config) applyDefaults() {
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 30
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if len(c.Server.CORSAllowedOrigins) == 0 {
		c.Server.CORSAllowedOrigins = []string{"*"}
	}

	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}

	if c.Auth.PasswordScheme == "" {
		c.Auth.PasswordScheme = "sha256"
	}
	if c.Auth.LoginWindow == 0 {
		c.Auth.LoginWindow = time.Minute
	}

	if c.Session.TTL == 0 {
		c.Session.TTL = 24 * time.Hour
	}
	if c.Session.Retention == 0 {
		c.Session.Retention = 720 * time.Hour
	}
	if c.Session.PurgeSchedule == "" {
		c.Session.PurgeSchedule = "@hourly"
	}

	if c.Email.From == "" {
		c.Email.From = "camfleet <onboarding@resend.dev>"
	}

	defaults := DefaultObservabilityConfig()
	if c.Observability == nil {
		c.Observability = defaults
		return
	}

	// Partially configured observability keeps the defaults for the rest.
	o := c.Observability
	if o.Logging.Level == "" {
		o.Logging.Level = defaults.Logging.Level
	}
	if o.Logging.Format == "" {
		o.Logging.Format = defaults.Logging.Format
	}
	if o.Logging.SlowQueryThreshold == 0 {
		o.Logging.SlowQueryThreshold = defaults.Logging.SlowQueryThreshold
	}
	if o.HealthChecks.Interval == 0 {
		o.HealthChecks.Interval = defaults.HealthChecks.Interval
	}
	if o.HealthChecks.Timeout == 0 {
		o.HealthChecks.Timeout = defaults.HealthChecks.Timeout
	}
	if len(o.HealthChecks.Checks) == 0 {
		o.HealthChecks.Checks = defaults.HealthChecks.Checks
	}
}

// sections lists the config blocks and their nested sub-blocks so that
// underscore-only env names can be mapped back to koanf paths.
var sections = map[string][]string{
	"primary":       nil,
	"server":        nil,
	"database":      nil,
	"redis":         nil,
	"auth":          nil,
	"session":       nil,
	"email":         nil,
	"observability": {"logging", "new_relic", "health_checks"},
}

// envKey turns CAMFLEET_DATABASE_URL into database.url.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if strings.Contains(key, ".") {
		return key
	}

	for section, subs := range sections {
		rest, ok := strings.CutPrefix(key, section+"_")
		if !ok {
			continue
		}
		for _, sub := range subs {
			if field, ok := strings.CutPrefix(rest, sub+"_"); ok {
				return section + "." + sub + "." + field
			}
		}
		return section + "." + rest
	}
	return key
}

// listKeys are comma-separated in the environment.
var listKeys = map[string]bool{
	"server.cors_allowed_origins":       true,
	"observability.health_checks.checks": true,
}

func envValue(rawKey, value string) (string, any) {
	key := envKey(rawKey)
	if listKeys[key] {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return key, out
	}
	return key, value
}

// fallbackDatabaseURL is the unprefixed connection string most hosting
// platforms inject.
const fallbackDatabaseURL = "DATABASE_URL"

func fallbackKey(s string) string {
	if s != fallbackDatabaseURL {
		return ""
	}
	return "database.url"
}

// LoadConfig loads configuration from environment variables, applies
// defaults and validates the result.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	// Loaded first so the prefixed variable wins when both are set.
	if err := k.Load(env.Provider(fallbackDatabaseURL, ".", fallbackKey), nil); err != nil {
		return nil, fmt.Errorf("could not load %s: %w", fallbackDatabaseURL, err)
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	mainConfig.applyDefaults()

	if err := mainConfig.Validate(); err != nil {
		return nil, err
	}

	return mainConfig, nil
}

// Validate runs the struct-tag rules plus the cross-field checks.
func (c *Config) Validate() error {
	// Service name and environment always follow the primary block.
	if c.Observability != nil {
		c.Observability.ServiceName = "camfleet"
		c.Observability.Environment = c.Primary.Env
	}

	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if err := c.Database.Validate(); err != nil {
		return err
	}

	if _, err := cron.ParseStandard(c.Session.PurgeSchedule); err != nil {
		return fmt.Errorf("invalid session purge_schedule %q: %w", c.Session.PurgeSchedule, err)
	}

	if c.Observability == nil {
		return fmt.Errorf("observability config is missing")
	}
	if err := c.Observability.Validate(); err != nil {
		return fmt.Errorf("invalid observability config: %w", err)
	}

	return nil
}
