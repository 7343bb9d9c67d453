package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "mealops"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Scheduling   SchedulingConfig
	CORS         CORSConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"MEALOPS_APP_ENV" default:"dev"`
	Port         string `envconfig:"MEALOPS_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"MEALOPS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MEALOPS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"MEALOPS_DB_DSN"`
	Driver string `envconfig:"MEALOPS_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"MEALOPS_DB_HOST"`
	Port     int    `envconfig:"MEALOPS_DB_PORT" default:"5432"`
	User     string `envconfig:"MEALOPS_DB_USER"`
	Password string `envconfig:"MEALOPS_DB_PASSWORD"`
	Name     string `envconfig:"MEALOPS_DB_NAME"`
	SSLMode  string `envconfig:"MEALOPS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"MEALOPS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MEALOPS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"MEALOPS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MEALOPS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return fmt.Errorf("database config requires either MEALOPS_DB_DSN or host/user/name fields")
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

type RedisConfig struct {
	URL          string        `envconfig:"MEALOPS_REDIS_URL"`
	Address      string        `envconfig:"MEALOPS_REDIS_ADDR"`
	Password     string        `envconfig:"MEALOPS_REDIS_PASSWORD"`
	DB           int           `envconfig:"MEALOPS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MEALOPS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MEALOPS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MEALOPS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MEALOPS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MEALOPS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// SchedulingConfig tunes the delivery schedule materialization.
type SchedulingConfig struct {
	// HolidayLookaheadDays controls how far past a subscription's end date
	// holidays are loaded; shifting can push deliveries beyond the end date.
	HolidayLookaheadDays int `envconfig:"MEALOPS_HOLIDAY_LOOKAHEAD_DAYS" default:"90"`
	// ItemBatchSize bounds the size of bulk delivery-item inserts.
	ItemBatchSize int `envconfig:"MEALOPS_ITEM_BATCH_SIZE" default:"200"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"MEALOPS_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"MEALOPS_FEATURE_AUTO_MIGRATE" default:"true"`
}
