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
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Idempotency   IdempotencyConfig
	FeatureFlags  FeatureFlagsConfig
	GoogleMaps    GoogleMapsConfig
	Metrics       MetricsConfig
	Pagination    PaginationConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.FeatureFlags.UseSQLite {
		if cfg.DB.DSN == "" {
			cfg.DB.DSN = cfg.FeatureFlags.SQLitePath
		}
		cfg.DB.Driver = DriverSQLite
		return &cfg, nil
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string   `envconfig:"PLANNER_APP_ENV" required:"true"`
	Port         string   `envconfig:"PLANNER_APP_PORT" required:"true"`
	LogLevel     string   `envconfig:"PLANNER_LOG_LEVEL" default:"info"`
	LogFormat    string   `envconfig:"PLANNER_LOG_FORMAT" default:"json"`
	LogWarnStack bool     `envconfig:"PLANNER_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"PLANNER_CORS_ORIGINS" default:"*"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"PLANNER_DB_DSN"`
	Driver string `envconfig:"PLANNER_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"PLANNER_DB_HOST"`
	LegacyPort     int    `envconfig:"PLANNER_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"PLANNER_DB_USER"`
	LegacyPassword string `envconfig:"PLANNER_DB_PASSWORD"`
	LegacyName     string `envconfig:"PLANNER_DB_NAME"`
	LegacySSLMode  string `envconfig:"PLANNER_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PLANNER_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PLANNER_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PLANNER_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PLANNER_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PLANNER_REDIS_URL" required:"true"`
	Address      string        `envconfig:"PLANNER_REDIS_ADDR"`
	Password     string        `envconfig:"PLANNER_REDIS_PASSWORD"`
	DB           int           `envconfig:"PLANNER_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PLANNER_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PLANNER_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PLANNER_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PLANNER_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PLANNER_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"PLANNER_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"PLANNER_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"PLANNER_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"PLANNER_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"PLANNER_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"PLANNER_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"PLANNER_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"PLANNER_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"PLANNER_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"PLANNER_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"PLANNER_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"PLANNER_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"PLANNER_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"PLANNER_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"PLANNER_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type IdempotencyConfig struct {
	TTL time.Duration `envconfig:"PLANNER_IDEMPOTENCY_TTL" default:"24h"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool   `envconfig:"PLANNER_USE_SQLITE" default:"false"`
	SQLitePath  string `envconfig:"PLANNER_SQLITE_PATH" default:"planner.db"`
	AutoMigrate bool   `envconfig:"PLANNER_AUTO_MIGRATE" default:"false"`
}

type GoogleMapsConfig struct {
	APIKey  string        `envconfig:"PLANNER_GOOGLE_MAPS_API_KEY"`
	BaseURL string        `envconfig:"PLANNER_GOOGLE_MAPS_BASE_URL" default:"https://places.googleapis.com/"`
	Timeout time.Duration `envconfig:"PLANNER_GOOGLE_MAPS_TIMEOUT" default:"5s"`
}

// Enabled reports whether place lookups can be served.
func (g GoogleMapsConfig) Enabled() bool {
	return strings.TrimSpace(g.APIKey) != ""
}

type MetricsConfig struct {
	Enabled bool   `envconfig:"PLANNER_METRICS_ENABLED" default:"true"`
	Path    string `envconfig:"PLANNER_METRICS_PATH" default:"/metrics"`
}

type PaginationConfig struct {
	DefaultLimit int `envconfig:"PLANNER_PAGINATION_DEFAULT_LIMIT" default:"25"`
	MaxLimit     int `envconfig:"PLANNER_PAGINATION_MAX_LIMIT" default:"100"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
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
