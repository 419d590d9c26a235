package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/multierr"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Cookie        CookieConfig
	Password      PasswordConfig
	Admin         AdminConfig
	AuthRateLimit AuthRateLimitConfig
	Catalog       CatalogConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if port := strings.TrimSpace(cfg.App.PlatformPort); port != "" {
		cfg.App.Port = port
	}
	cfg.Admin.Email = strings.ToLower(strings.TrimSpace(cfg.Admin.Email))
	cfg.Cookie.Secure = cfg.App.IsProd()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// minProdSecretLen matches the HS256 key size.
const minProdSecretLen = 32

// validate reports every problem at once so a bad deploy is fixed in one go.
func (c *Config) validate() error {
	var err error
	if !c.App.IsDev() && !c.App.IsProd() && !strings.EqualFold(c.App.Env, AppEnvTest) {
		err = multierr.Append(err, fmt.Errorf("%s must be one of %s, %s, %s", EnvAppEnv, AppEnvDev, AppEnvTest, AppEnvProd))
	}
	switch strings.ToLower(c.App.LogFormat) {
	case "json", "console":
	default:
		err = multierr.Append(err, fmt.Errorf("%s must be json or console", EnvLogFormat))
	}
	if c.App.IsProd() && len(c.JWT.Secret) < minProdSecretLen {
		err = multierr.Append(err, fmt.Errorf("%s must be at least %d bytes in prod", EnvJWTSecret, minProdSecretLen))
	}
	if c.JWT.TokenTTL <= 0 {
		err = multierr.Append(err, fmt.Errorf("%s must be positive", EnvJWTTTL))
	}
	if c.AuthRateLimit.LoginWindow <= 0 {
		err = multierr.Append(err, fmt.Errorf("%s must be positive", EnvLoginWindow))
	}
	return multierr.Append(err, c.Catalog.validate())
}

type AppConfig struct {
	Env          string   `envconfig:"ART_APP_ENV" required:"true"`
	Port         string   `envconfig:"ART_APP_PORT" default:"8080"`
	LogLevel     string   `envconfig:"ART_LOG_LEVEL" default:"info"`
	LogFormat    string   `envconfig:"ART_LOG_FORMAT" default:"json"`
	LogWarnStack bool     `envconfig:"ART_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"ART_CORS_ORIGINS" default:"http://localhost:3000"`

	// PlatformPort is the listen port some hosts assign at runtime. When set
	// it replaces Port.
	PlatformPort string `envconfig:"PORT"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"ART_DB_DSN" required:"true"`

	MaxOpenConns    int           `envconfig:"ART_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ART_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ART_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	// SlowQueryThreshold logs queries slower than this at warn; zero disables.
	SlowQueryThreshold time.Duration `envconfig:"ART_DB_SLOW_QUERY_THRESHOLD" default:"250ms"`
}

// RedisConfig is optional. An empty URL disables the login rate limit and
// the logout token deny-list.
type RedisConfig struct {
	URL          string        `envconfig:"ART_REDIS_URL"`
	PoolSize     int           `envconfig:"ART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ART_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"ART_REDIS_WRITE_TIMEOUT" default:"3s"`
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != ""
}

type JWTConfig struct {
	Secret   string        `envconfig:"ART_JWT_SECRET" required:"true"`
	Issuer   string        `envconfig:"ART_JWT_ISSUER" default:"gallery-api"`
	TokenTTL time.Duration `envconfig:"ART_JWT_TTL" default:"168h"`
}

type CookieConfig struct {
	Name   string `envconfig:"ART_COOKIE_NAME" default:"gallery_session"`
	Domain string `envconfig:"ART_COOKIE_DOMAIN"`
	Secure bool   `ignored:"true"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"ART_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"ART_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"ART_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"ART_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"ART_ARGON_KEY_LEN" default:"32"`
}

// AdminConfig holds the credentials of the single bootstrapped admin.
type AdminConfig struct {
	Email    string `envconfig:"ART_ADMIN_EMAIL" required:"true"`
	Password string `envconfig:"ART_ADMIN_PASSWORD" required:"true"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"ART_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"ART_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"ART_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type CatalogConfig struct {
	BarcodePrefix string `envconfig:"ART_BARCODE_PREFIX" default:"200"`
}

func (c CatalogConfig) validate() error {
	if len(c.BarcodePrefix) != 3 {
		return fmt.Errorf("%s must be exactly 3 digits", EnvBarcodePrefix)
	}
	for _, r := range c.BarcodePrefix {
		if r < '0' || r > '9' {
			return fmt.Errorf("%s must be exactly 3 digits", EnvBarcodePrefix)
		}
	}
	return nil
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"ART_AUTO_MIGRATE" default:"false"`
}
