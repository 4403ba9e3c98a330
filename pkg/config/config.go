package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "shopdesk"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	LocalCache   LocalCacheConfig
	Redis        RedisConfig
	JWT          JWTConfig
	FeatureFlags FeatureFlagsConfig
	Bulk         BulkConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if !cfg.FeatureFlags.OfflineMode {
		if err := cfg.DB.ensureDSN(); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SHOPDESK_APP_ENV" default:"dev"`
	Port         string `envconfig:"SHOPDESK_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"SHOPDESK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SHOPDESK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"SHOPDESK_DB_DSN"`

	Host     string `envconfig:"SHOPDESK_DB_HOST"`
	Port     int    `envconfig:"SHOPDESK_DB_PORT" default:"5432"`
	User     string `envconfig:"SHOPDESK_DB_USER"`
	Password string `envconfig:"SHOPDESK_DB_PASSWORD"`
	Name     string `envconfig:"SHOPDESK_DB_NAME"`
	SSLMode  string `envconfig:"SHOPDESK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SHOPDESK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SHOPDESK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SHOPDESK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SHOPDESK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return fmt.Errorf("either SHOPDESK_DB_DSN or host/user/name parts are required")
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.Name,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	d.DSN = u.String()
	return nil
}

// LocalCacheConfig locates the durable offline cache database.
type LocalCacheConfig struct {
	Path string `envconfig:"SHOPDESK_LOCAL_CACHE_PATH" default:"shopdesk-cache.db"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SHOPDESK_REDIS_URL"`
	Address      string        `envconfig:"SHOPDESK_REDIS_ADDR"`
	Password     string        `envconfig:"SHOPDESK_REDIS_PASSWORD"`
	DB           int           `envconfig:"SHOPDESK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SHOPDESK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SHOPDESK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SHOPDESK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SHOPDESK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SHOPDESK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"SHOPDESK_JWT_SECRET"`
	Issuer            string `envconfig:"SHOPDESK_JWT_ISSUER" default:"shopdesk"`
	ExpirationMinutes int    `envconfig:"SHOPDESK_JWT_EXPIRATION_MINUTES" default:"60"`
}

type FeatureFlagsConfig struct {
	// OfflineMode runs the records layer against the local durable cache
	// instead of the remote store. Chosen once at boot; there is no live
	// transition back to the remote store.
	OfflineMode bool `envconfig:"SHOPDESK_OFFLINE_MODE" default:"false"`
	AutoMigrate bool `envconfig:"SHOPDESK_AUTO_MIGRATE" default:"false"`
}

type BulkConfig struct {
	// MaxBatchOps caps operations per remote batch commit. The platform
	// ceiling is 500; 450 leaves a safety margin.
	MaxBatchOps int `envconfig:"SHOPDESK_BULK_MAX_BATCH_OPS" default:"450"`
}
