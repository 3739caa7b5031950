package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	Service       ServiceConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Freshness     FreshnessConfig
	Inventory     InventoryConfig
	Cron          CronConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = DBDriverSQLite
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Freshness.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"MEDAVAIL_APP_ENV" required:"true"`
	Port         string `envconfig:"MEDAVAIL_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"MEDAVAIL_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MEDAVAIL_LOG_WARN_STACK" default:"false"`

	CORSAllowedOrigins []string `envconfig:"MEDAVAIL_CORS_ALLOWED_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd) || strings.EqualFold(a.Env, "production")
}

type ServiceConfig struct {
	Kind string `envconfig:"MEDAVAIL_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"MEDAVAIL_DB_DSN"`
	Driver string `envconfig:"MEDAVAIL_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"MEDAVAIL_DB_HOST"`
	LegacyPort     int    `envconfig:"MEDAVAIL_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"MEDAVAIL_DB_USER"`
	LegacyPassword string `envconfig:"MEDAVAIL_DB_PASSWORD"`
	LegacyName     string `envconfig:"MEDAVAIL_DB_NAME"`
	LegacySSLMode  string `envconfig:"MEDAVAIL_DB_SSLMODE" default:"disable"`

	SQLitePath string `envconfig:"MEDAVAIL_SQLITE_PATH" default:"medavail.db"`

	MaxOpenConns    int           `envconfig:"MEDAVAIL_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MEDAVAIL_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"MEDAVAIL_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MEDAVAIL_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"MEDAVAIL_REDIS_URL"`
	Address      string        `envconfig:"MEDAVAIL_REDIS_ADDR"`
	Password     string        `envconfig:"MEDAVAIL_REDIS_PASSWORD"`
	DB           int           `envconfig:"MEDAVAIL_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MEDAVAIL_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MEDAVAIL_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MEDAVAIL_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MEDAVAIL_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MEDAVAIL_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"MEDAVAIL_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"MEDAVAIL_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"MEDAVAIL_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"MEDAVAIL_REFRESH_TOKEN_TTL_MINUTES" default:"10080"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"MEDAVAIL_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"MEDAVAIL_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"MEDAVAIL_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"MEDAVAIL_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"MEDAVAIL_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"MEDAVAIL_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"MEDAVAIL_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"MEDAVAIL_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"MEDAVAIL_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"MEDAVAIL_AUTO_MIGRATE" default:"false"`
}

// FreshnessConfig holds the two read-side thresholds. FreshWithin drives the
// dashboard "verified" badge; StaleAfter drives the district stale flag.
type FreshnessConfig struct {
	FreshWithin time.Duration `envconfig:"MEDAVAIL_FRESHNESS_FRESH_WITHIN" default:"15m"`
	StaleAfter  time.Duration `envconfig:"MEDAVAIL_FRESHNESS_STALE_AFTER" default:"60m"`
}

func (f FreshnessConfig) validate() error {
	if f.FreshWithin <= 0 || f.StaleAfter <= 0 {
		return fmt.Errorf("freshness thresholds must be positive")
	}
	if f.FreshWithin > f.StaleAfter {
		return fmt.Errorf("%s (%s) must not exceed %s (%s)", EnvFreshWithin, f.FreshWithin, EnvStaleAfter, f.StaleAfter)
	}
	return nil
}

type InventoryConfig struct {
	EnforceCapacity bool `envconfig:"MEDAVAIL_INVENTORY_ENFORCE_CAPACITY" default:"true"`
}

type CronConfig struct {
	Interval time.Duration `envconfig:"MEDAVAIL_CRON_INTERVAL" default:"5m"`
	LockTTL  time.Duration `envconfig:"MEDAVAIL_CRON_LOCK_TTL" default:"4m"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" || db.Driver == DBDriverSQLite {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
