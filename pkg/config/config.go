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
	Session       SessionConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	CORS          CORSConfig
	Catalog       CatalogConfig
	Reviews       ReviewConfig
	Cron          CronConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if !cfg.FeatureFlags.UseSQLite {
		if err := cfg.DB.ensureDSN(); err != nil {
			return nil, err
		}
	}
	if err := cfg.Reviews.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"ARTESANOS_APP_ENV" required:"true"`
	Port         string `envconfig:"ARTESANOS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"ARTESANOS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ARTESANOS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"ARTESANOS_DB_DSN"`
	Driver string `envconfig:"ARTESANOS_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"ARTESANOS_DB_HOST"`
	LegacyPort     int    `envconfig:"ARTESANOS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"ARTESANOS_DB_USER"`
	LegacyPassword string `envconfig:"ARTESANOS_DB_PASSWORD"`
	LegacyName     string `envconfig:"ARTESANOS_DB_NAME"`
	LegacySSLMode  string `envconfig:"ARTESANOS_DB_SSLMODE" default:"disable"`

	SQLitePath string `envconfig:"ARTESANOS_SQLITE_PATH" default:"file:artesanos.db?cache=shared&_foreign_keys=1"`

	MaxOpenConns    int           `envconfig:"ARTESANOS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ARTESANOS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ARTESANOS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ARTESANOS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"ARTESANOS_REDIS_URL" required:"true"`
	Address      string        `envconfig:"ARTESANOS_REDIS_ADDR"`
	Password     string        `envconfig:"ARTESANOS_REDIS_PASSWORD"`
	DB           int           `envconfig:"ARTESANOS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ARTESANOS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ARTESANOS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ARTESANOS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ARTESANOS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ARTESANOS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// SessionConfig drives the signed session cookie and its Redis record.
type SessionConfig struct {
	Secret        string `envconfig:"ARTESANOS_SESSION_SECRET" required:"true"`
	Issuer        string `envconfig:"ARTESANOS_SESSION_ISSUER" default:"artesanos"`
	TTLMinutes    int    `envconfig:"ARTESANOS_SESSION_TTL_MINUTES" default:"1440"`
	CookieName    string `envconfig:"ARTESANOS_SESSION_COOKIE_NAME" default:"artesanos_session"`
	CookieSecure  bool   `envconfig:"ARTESANOS_SESSION_COOKIE_SECURE" default:"false"`
	LoginPath     string `envconfig:"ARTESANOS_LOGIN_PATH" default:"/login/"`
	BuyerLoginURL string `envconfig:"ARTESANOS_BUYER_LOGIN_PATH" default:"/compradores/login/"`
}

func (s SessionConfig) TTL() time.Duration {
	if s.TTLMinutes <= 0 {
		return 0
	}
	return time.Duration(s.TTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"ARTESANOS_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"ARTESANOS_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"ARTESANOS_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"ARTESANOS_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"ARTESANOS_ARGON_KEY_LEN" default:"32"`
	MinLength        int `envconfig:"ARTESANOS_PASSWORD_MIN_LENGTH" default:"8"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"ARTESANOS_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginUsernameLimit int           `envconfig:"ARTESANOS_AUTH_RATE_LIMIT_LOGIN_USERNAME_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"ARTESANOS_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"ARTESANOS_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterIPLimit    int           `envconfig:"ARTESANOS_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"ARTESANOS_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"ARTESANOS_AUTO_MIGRATE" default:"false"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"ARTESANOS_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type CatalogConfig struct {
	PageSize           int  `envconfig:"ARTESANOS_CATALOG_PAGE_SIZE" default:"12"`
	HideInactiveStores bool `envconfig:"ARTESANOS_CATALOG_HIDE_INACTIVE_STORES" default:"false"`
}

// ReviewConfig holds the typed rules a review must satisfy.
type ReviewConfig struct {
	RatingMin        int  `envconfig:"ARTESANOS_REVIEW_RATING_MIN" default:"1"`
	RatingMax        int  `envconfig:"ARTESANOS_REVIEW_RATING_MAX" default:"5"`
	CommentMaxLength int  `envconfig:"ARTESANOS_REVIEW_COMMENT_MAX_LENGTH" default:"2000"`
	CommentRequired  bool `envconfig:"ARTESANOS_REVIEW_COMMENT_REQUIRED" default:"false"`
}

// DefaultReviewConfig mirrors the envconfig defaults for callers that build services by hand.
func DefaultReviewConfig() ReviewConfig {
	return ReviewConfig{RatingMin: 1, RatingMax: 5, CommentMaxLength: 2000}
}

func (r ReviewConfig) validate() error {
	if r.RatingMin > r.RatingMax {
		return fmt.Errorf("%s (%d) must not exceed %s (%d)", EnvReviewRatingMin, r.RatingMin, EnvReviewRatingMax, r.RatingMax)
	}
	if r.CommentMaxLength <= 0 {
		return fmt.Errorf("%s must be positive", EnvReviewCommentMaxLength)
	}
	return nil
}

type CronConfig struct {
	Interval       time.Duration `envconfig:"ARTESANOS_CRON_INTERVAL" default:"1m"`
	LockTTL        time.Duration `envconfig:"ARTESANOS_CRON_LOCK_TTL" default:"5m"`
	SaleSweepBatch int           `envconfig:"ARTESANOS_CRON_SALE_SWEEP_BATCH" default:"100"`
	// RetentionDays bounds how long read notifications are kept.
	RetentionDays int `envconfig:"ARTESANOS_CRON_NOTIFICATION_RETENTION_DAYS" default:"90"`
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
